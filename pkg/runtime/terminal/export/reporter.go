package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	StatusWidth      int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        40,
		ValueWidth:       8,
		StatusWidth:      14,
		DescriptionWidth: 60,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// RecommendationRow pairs the stored status with the one derived from the steps.
type RecommendationRow struct {
	Recommendation domain.Recommendation
	Suggestion     domain.StatusSuggestion
}

type scoringView struct {
	Model domain.ScoringModel
	Bands []bandView
}

type bandView struct {
	Title  string
	Events []domain.ScoringEvent
}

func (c *Reporter) funcs() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(name string, value interface{}, status string, desc string) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*s | %-*s |",
				c.config.NameWidth, truncate(name, c.config.NameWidth),
				c.config.ValueWidth, value,
				c.config.StatusWidth, truncate(status, c.config.StatusWidth),
				c.config.DescriptionWidth, truncate(desc, c.config.DescriptionWidth))
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.StatusWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
		"progress": func(s domain.StatusSuggestion) string {
			return fmt.Sprintf("%d/%d", s.CompletedSteps, s.TotalSteps)
		},
	}
}

func (c *Reporter) Scoring(model domain.ScoringModel, bands domain.WeightBands) error {
	tmpl := `
{{.Model.Title}} ({{.Model.Goal}})
Formula: {{.Model.Formula}}
{{.Model.Description}}
{{range .Bands}}
=== {{.Title}} ===
{{separator}}
{{formatRow "Event" "Weight" "" "Description"}}
{{separator}}
{{range .Events}}{{formatRow .Name .Weight "" .Description}}
{{end}}{{separator}}
{{end}}`

	view := scoringView{
		Model: model,
		Bands: []bandView{
			{Title: "High impact (weight >= 15)", Events: bands.High},
			{Title: "Medium impact (weight 10-14)", Events: bands.Medium},
			{Title: "Low impact (weight < 10)", Events: bands.Low},
		},
	}
	return c.render("scoring", tmpl, view)
}

func (c *Reporter) Recommendations(rows []RecommendationRow) error {
	tmpl := `
{{separator}}
{{formatRow "Title" "Steps" "Status" "Suggested status"}}
{{separator}}
{{range .}}{{formatRow .Recommendation.Title (progress .Suggestion) (printf "%s" .Recommendation.Status) (printf "%s" .Suggestion.Status)}}
{{end}}{{separator}}
`
	return c.render("recommendations", tmpl, rows)
}

func (c *Reporter) Message(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(c.writer, format+"\n", args...)
	return err
}

func (c *Reporter) render(name, tmpl string, data interface{}) error {
	t, err := template.New(name).Funcs(c.funcs()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, data)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
