package adapters

import (
	"encoding/json"

	"github.com/de-tools/fleet-atlas/pkg/models/api"
	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/models/store"
)

func MapStoreUserToDomain(u store.User) domain.User {
	return domain.User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func MapUserDomainToApi(u domain.User) api.User {
	return api.User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func MapStoreVehicleToDomain(v store.Vehicle) domain.Vehicle {
	return domain.Vehicle{
		ID:               v.ID,
		UserID:           v.UserID,
		Name:             v.Name,
		VIN:              v.VIN,
		Make:             v.Make,
		Model:            v.Model,
		Year:             v.Year,
		DriverScore:      v.DriverScore,
		MaintenanceScore: v.MaintenanceScore,
		OverallScore:     v.OverallScore,
		Status:           domain.VehicleStatus(v.Status),
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func MapVehicleDomainToApi(v domain.Vehicle) api.Vehicle {
	return api.Vehicle{
		ID:               v.ID,
		UserID:           v.UserID,
		Name:             v.Name,
		VIN:              v.VIN,
		Make:             v.Make,
		Model:            v.Model,
		Year:             v.Year,
		DriverScore:      v.DriverScore,
		MaintenanceScore: v.MaintenanceScore,
		OverallScore:     v.OverallScore,
		Status:           string(v.Status),
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func MapVehiclesDomainToApi(vehicles []domain.Vehicle) []api.Vehicle {
	res := make([]api.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		res = append(res, MapVehicleDomainToApi(v))
	}
	return res
}

func MapVehicleUpdateApiToDomain(req api.VehicleUpdateRequest) domain.VehicleUpdate {
	update := domain.VehicleUpdate{
		Name:             req.Name,
		Make:             req.Make,
		Model:            req.Model,
		Year:             req.Year,
		DriverScore:      req.DriverScore,
		MaintenanceScore: req.MaintenanceScore,
		OverallScore:     req.OverallScore,
	}
	if req.Status != nil {
		status := domain.VehicleStatus(*req.Status)
		update.Status = &status
	}
	return update
}

func MapStoreIntegrationServiceToDomain(s store.IntegrationService) domain.IntegrationService {
	return domain.IntegrationService{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Description: s.Description,
		LogoURL:     s.LogoURL,
		APIEndpoint: s.APIEndpoint,
		CreatedAt:   s.CreatedAt,
	}
}

func MapIntegrationServiceDomainToApi(s domain.IntegrationService) api.IntegrationService {
	return api.IntegrationService{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Description: s.Description,
		LogoURL:     s.LogoURL,
		APIEndpoint: s.APIEndpoint,
		CreatedAt:   s.CreatedAt,
	}
}

func MapIntegrationServicesDomainToApi(services []domain.IntegrationService) []api.IntegrationService {
	res := make([]api.IntegrationService, 0, len(services))
	for _, s := range services {
		res = append(res, MapIntegrationServiceDomainToApi(s))
	}
	return res
}

func MapStoreIntegrationToDomain(i store.FleetIntegration) domain.FleetIntegration {
	integration := domain.FleetIntegration{
		ID:          i.ID,
		UserID:      i.UserID,
		ServiceID:   i.ServiceID,
		Status:      domain.IntegrationStatus(i.Status),
		Credentials: json.RawMessage(`{}`),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
	if len(i.Credentials) > 0 {
		integration.Credentials = append(json.RawMessage(nil), i.Credentials...)
	}
	if i.ServiceName.Valid {
		integration.Service = &domain.IntegrationService{
			ID:          i.ServiceID,
			Name:        i.ServiceName.String,
			Category:    i.ServiceCategory.String,
			Description: i.ServiceDescription.String,
			LogoURL:     i.ServiceLogoURL.String,
			APIEndpoint: i.ServiceAPIEndpoint.String,
		}
	}
	return integration
}

func MapIntegrationDomainToApi(i domain.FleetIntegration) api.FleetIntegration {
	res := api.FleetIntegration{
		ID:        i.ID,
		UserID:    i.UserID,
		ServiceID: i.ServiceID,
		Status:    string(i.Status),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
	if i.Service != nil {
		svc := MapIntegrationServiceDomainToApi(*i.Service)
		res.Service = &svc
	}
	return res
}

func MapIntegrationsDomainToApi(integrations []domain.FleetIntegration) []api.FleetIntegration {
	res := make([]api.FleetIntegration, 0, len(integrations))
	for _, i := range integrations {
		res = append(res, MapIntegrationDomainToApi(i))
	}
	return res
}

func MapVehicleUpdateDomainToStore(u domain.VehicleUpdate) store.VehiclePatch {
	patch := store.VehiclePatch{
		Name:             u.Name,
		Make:             u.Make,
		Model:            u.Model,
		Year:             u.Year,
		DriverScore:      u.DriverScore,
		MaintenanceScore: u.MaintenanceScore,
		OverallScore:     u.OverallScore,
	}
	if u.Status != nil {
		status := string(*u.Status)
		patch.Status = &status
	}
	return patch
}
