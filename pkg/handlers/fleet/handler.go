package fleet

import (
	"net/http"

	"github.com/de-tools/fleet-atlas/pkg/adapters"
	"github.com/de-tools/fleet-atlas/pkg/handlers/response"
	"github.com/de-tools/fleet-atlas/pkg/models/api"
	"github.com/de-tools/fleet-atlas/pkg/services/fleet"
)

type Handler struct {
	users        fleet.UserService
	vehicles     fleet.VehicleService
	integrations fleet.IntegrationService
}

func NewHandler(
	users fleet.UserService,
	vehicles fleet.VehicleService,
	integrations fleet.IntegrationService,
) *Handler {
	return &Handler{
		users:        users,
		vehicles:     vehicles,
		integrations: integrations,
	}
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := response.UserID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapUserDomainToApi(user))
}

var (
	vehicleUpdateSchema = response.MustSchema(`{
		"type": "object",
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"make": {"type": "string"},
			"model": {"type": "string"},
			"year": {"type": "integer", "minimum": 1900, "maximum": 2100},
			"driverScore": {"type": "number", "minimum": 0, "maximum": 100},
			"maintenanceScore": {"type": "number", "minimum": 0, "maximum": 100},
			"overallScore": {"type": "number", "minimum": 0, "maximum": 100},
			"status": {"type": "string", "enum": ["Good", "Needs Review", "Action Required"]}
		},
		"minProperties": 1,
		"additionalProperties": false
	}`)

	connectSchema = response.MustSchema(`{
		"type": "object",
		"properties": {
			"serviceId": {"type": "integer", "minimum": 1},
			"credentials": {
				"type": "object",
				"additionalProperties": {"type": "string"}
			}
		},
		"required": ["serviceId"],
		"additionalProperties": false
	}`)

	integrationStatusSchema = response.MustSchema(`{
		"type": "object",
		"properties": {
			"status": {"type": "string", "minLength": 1}
		},
		"required": ["status"],
		"additionalProperties": false
	}`)
)

func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	userID, err := response.UserID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	vehicles, err := h.vehicles.List(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapVehiclesDomainToApi(vehicles))
}

func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := response.IDParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	vehicle, err := h.vehicles.Get(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapVehicleDomainToApi(vehicle))
}

func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := response.IDParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req api.VehicleUpdateRequest
	if err := response.DecodeBody(r, vehicleUpdateSchema, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	vehicle, err := h.vehicles.Update(r.Context(), id, adapters.MapVehicleUpdateApiToDomain(req))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapVehicleDomainToApi(vehicle))
}

func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	var category *string
	if raw := r.URL.Query().Get("category"); raw != "" {
		category = &raw
	}

	services, err := h.integrations.ListServices(r.Context(), category)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapIntegrationServicesDomainToApi(services))
}

func (h *Handler) ListIntegrations(w http.ResponseWriter, r *http.Request) {
	userID, err := response.UserID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	integrations, err := h.integrations.ListForUser(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapIntegrationsDomainToApi(integrations))
}

func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	userID, err := response.UserID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req api.ConnectIntegrationRequest
	if err := response.DecodeBody(r, connectSchema, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	integration, err := h.integrations.Connect(r.Context(), userID, req.ServiceID, req.Credentials)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusCreated, adapters.MapIntegrationDomainToApi(integration))
}

func (h *Handler) SetIntegrationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := response.IDParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req api.SetIntegrationStatusRequest
	if err := response.DecodeBody(r, integrationStatusSchema, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	integration, err := h.integrations.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapIntegrationDomainToApi(integration))
}
