package seed

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/models/store"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/integrations"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/recommendations"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/scores"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/users"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/vehicles"
)

//go:embed seed.yaml
var defaultSeed []byte

type Data struct {
	Services []Service `yaml:"services"`
	Users    []User    `yaml:"users"`
}

type Service struct {
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	LogoURL     string `yaml:"logo_url"`
	APIEndpoint string `yaml:"api_endpoint"`
}

type User struct {
	Username        string           `yaml:"username"`
	Email           string           `yaml:"email"`
	DisplayName     string           `yaml:"display_name"`
	Vehicles        []Vehicle        `yaml:"vehicles"`
	Scores          []Score          `yaml:"scores"`
	Recommendations []Recommendation `yaml:"recommendations"`
}

type Vehicle struct {
	Name             string  `yaml:"name"`
	VIN              string  `yaml:"vin"`
	Make             string  `yaml:"make"`
	Model            string  `yaml:"model"`
	Year             int     `yaml:"year"`
	DriverScore      float64 `yaml:"driver_score"`
	MaintenanceScore float64 `yaml:"maintenance_score"`
	OverallScore     float64 `yaml:"overall_score"`
	Status           string  `yaml:"status"`
}

type Score struct {
	Goal  string  `yaml:"goal"`
	Score float64 `yaml:"score"`
}

type Recommendation struct {
	Goal              string  `yaml:"goal"`
	Title             string  `yaml:"title"`
	Description       string  `yaml:"description"`
	ActionableInsight *string `yaml:"actionable_insight"`
	PotentialImpact   *string `yaml:"potential_impact"`
	EstimatedSavings  *string `yaml:"estimated_savings"`
	TimeToImplement   *string `yaml:"time_to_implement"`
	Type              string  `yaml:"type"`
	Status            string  `yaml:"status"`
	Steps             []Step  `yaml:"steps"`
}

type Step struct {
	Title       string  `yaml:"title"`
	Description *string `yaml:"description"`
	Completed   bool    `yaml:"completed"`
}

// Parse decodes and validates a seed document.
func Parse(r io.Reader) (*Data, error) {
	var data Data
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

func Default() (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(defaultSeed, &data); err != nil {
		return nil, fmt.Errorf("failed to decode embedded seed: %w", err)
	}
	return &data, data.Validate()
}

// Load reads the seed at path, or the embedded one when path is empty.
func Load(path string) (*Data, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func (d *Data) Validate() error {
	vErr := &domain.ValidationError{}
	for i, s := range d.Services {
		if s.Name == "" {
			vErr.Add(fmt.Sprintf("services[%d].name", i), "is required")
		}
	}
	for i, u := range d.Users {
		prefix := fmt.Sprintf("users[%d]", i)
		if u.Username == "" {
			vErr.Add(prefix+".username", "is required")
		}
		for j, v := range u.Vehicles {
			if !domain.VehicleStatus(v.Status).Valid() {
				vErr.Add(fmt.Sprintf("%s.vehicles[%d].status", prefix, j), fmt.Sprintf("unsupported status %q", v.Status))
			}
			for _, sc := range []struct {
				field string
				value float64
			}{
				{"driver_score", v.DriverScore},
				{"maintenance_score", v.MaintenanceScore},
				{"overall_score", v.OverallScore},
			} {
				if sc.value < domain.MinScore || sc.value > domain.MaxScore {
					vErr.Add(fmt.Sprintf("%s.vehicles[%d].%s", prefix, j, sc.field), "must be between 0 and 100")
				}
			}
		}
		for j, s := range u.Scores {
			if !domain.GoalType(s.Goal).Valid() {
				vErr.Add(fmt.Sprintf("%s.scores[%d].goal", prefix, j), fmt.Sprintf("unsupported goal %q", s.Goal))
			}
			if s.Score < domain.MinScore || s.Score > domain.MaxScore {
				vErr.Add(fmt.Sprintf("%s.scores[%d].score", prefix, j), "must be between 0 and 100")
			}
		}
		for j, r := range u.Recommendations {
			field := fmt.Sprintf("%s.recommendations[%d]", prefix, j)
			if !domain.GoalType(r.Goal).Valid() {
				vErr.Add(field+".goal", fmt.Sprintf("unsupported goal %q", r.Goal))
			}
			if !domain.RecommendationType(r.Type).Valid() {
				vErr.Add(field+".type", fmt.Sprintf("unsupported type %q", r.Type))
			}
			if r.Status != "" && !domain.RecommendationStatus(r.Status).Valid() {
				vErr.Add(field+".status", fmt.Sprintf("unsupported status %q", r.Status))
			}
			if r.Title == "" {
				vErr.Add(field+".title", "is required")
			}
		}
	}
	return vErr.OrNil()
}

type Stores struct {
	Users           users.Store
	Vehicles        vehicles.Store
	Integrations    integrations.Store
	Recommendations recommendations.Store
	Scores          scores.Store
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result counts the rows written by a seed run.
type Result struct {
	Services        int
	Users           int
	Vehicles        int
	Recommendations int
	Steps           int
	Scores          int
	SkippedUsers    []string
}

type Seeder struct {
	stores Stores
	tx     Transactor
	now    func() time.Time
}

func NewSeeder(stores Stores, tx Transactor) (*Seeder, error) {
	if stores.Users == nil || stores.Vehicles == nil || stores.Integrations == nil ||
		stores.Recommendations == nil || stores.Scores == nil || tx == nil {
		return nil, fmt.Errorf("seed stores must not be nil")
	}
	return &Seeder{
		stores: stores,
		tx:     tx,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Seed upserts the service catalog and creates every user that does not exist yet,
// all in one transaction. Existing users are left untouched.
func (s *Seeder) Seed(ctx context.Context, data *Data) (Result, error) {
	var res Result
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		res = Result{}
		for _, svc := range data.Services {
			_, err := s.stores.Integrations.UpsertService(ctx, store.IntegrationService{
				Name:        svc.Name,
				Category:    svc.Category,
				Description: svc.Description,
				LogoURL:     svc.LogoURL,
				APIEndpoint: svc.APIEndpoint,
			})
			if err != nil {
				return err
			}
			res.Services++
		}

		for _, u := range data.Users {
			_, err := s.stores.Users.GetByUsername(ctx, u.Username)
			if err == nil {
				res.SkippedUsers = append(res.SkippedUsers, u.Username)
				continue
			}
			if !domain.IsNotFound(err) {
				return err
			}
			if err := s.seedUser(ctx, u, &res); err != nil {
				return fmt.Errorf("seed user %s: %w", u.Username, err)
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	zerolog.Ctx(ctx).Info().
		Int("services", res.Services).
		Int("users", res.Users).
		Int("recommendations", res.Recommendations).
		Strs("skipped", res.SkippedUsers).
		Msg("seed applied")
	return res, nil
}

func (s *Seeder) seedUser(ctx context.Context, u User, res *Result) error {
	user, err := s.stores.Users.Create(ctx, store.User{
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	})
	if err != nil {
		return err
	}
	res.Users++

	for _, v := range u.Vehicles {
		_, err := s.stores.Vehicles.Create(ctx, store.Vehicle{
			UserID:           user.ID,
			Name:             v.Name,
			VIN:              v.VIN,
			Make:             v.Make,
			Model:            v.Model,
			Year:             v.Year,
			DriverScore:      v.DriverScore,
			MaintenanceScore: v.MaintenanceScore,
			OverallScore:     v.OverallScore,
			Status:           v.Status,
		})
		if err != nil {
			return err
		}
		res.Vehicles++
	}

	for _, sc := range u.Scores {
		_, err := s.stores.Scores.Append(ctx, store.FleetScore{
			UserID:   user.ID,
			GoalType: sc.Goal,
			Score:    sc.Score,
			Delta:    sc.Score,
		})
		if err != nil {
			return err
		}
		res.Scores++
	}

	for _, r := range u.Recommendations {
		if err := s.seedRecommendation(ctx, user.ID, r, res); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedRecommendation(ctx context.Context, userID int64, r Recommendation, res *Result) error {
	status := r.Status
	if status == "" {
		status = string(domain.StatusNotified)
	}

	rec, err := s.stores.Recommendations.Create(ctx, store.Recommendation{
		UserID:            userID,
		GoalType:          r.Goal,
		Title:             r.Title,
		Description:       r.Description,
		ActionableInsight: nullString(r.ActionableInsight),
		PotentialImpact:   nullString(r.PotentialImpact),
		EstimatedSavings:  nullString(r.EstimatedSavings),
		TimeToImplement:   nullString(r.TimeToImplement),
		Type:              r.Type,
		Status:            status,
	})
	if err != nil {
		return err
	}
	res.Recommendations++

	for i, step := range r.Steps {
		row := store.RecommendationStep{
			RecommendationID: rec.ID,
			Position:         i + 1,
			Title:            step.Title,
			Description:      nullString(step.Description),
			IsCompleted:      step.Completed,
		}
		if step.Completed {
			row.CompletedAt.Time = s.now()
			row.CompletedAt.Valid = true
		}
		if _, err := s.stores.Recommendations.CreateStep(ctx, row); err != nil {
			return err
		}
		res.Steps++
	}
	return nil
}
