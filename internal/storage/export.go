// ABOUTME: Export and import functionality for athlete data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats for any Repository.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/athlete/internal/age"
	"github.com/harperreed/athlete/internal/composite"
	"github.com/harperreed/athlete/internal/i18n"
	"github.com/harperreed/athlete/internal/models"
	"github.com/harperreed/athlete/internal/units"
)

const (
	exportVersion = "1.0"
	exportTool    = "athlete"
)

// ExportData represents the full export format for athlete data.
type ExportData struct {
	Version    string            `json:"version" yaml:"version"`
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Tool       string            `json:"tool" yaml:"tool"`
	Athletes   []*models.Athlete `json:"athletes" yaml:"athletes"`
}

func newExportData(athletes []*models.Athlete) *ExportData {
	return &ExportData{
		Version:    exportVersion,
		ExportedAt: time.Now(),
		Tool:       exportTool,
		Athletes:   athletes,
	}
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	athletes, err := d.ListAthletes(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}
	return newExportData(athletes), nil
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	return importAthletes(d, data)
}

func importAthletes(repo Repository, data *ExportData) error {
	for _, a := range data.Athletes {
		if a.Results == nil {
			a.Results = make(map[string]*models.TestResult)
		}
		if !a.Language.IsValid() {
			a.Language = models.DefaultLanguage
		}
		if err := repo.CreateAthlete(a); err != nil {
			return fmt.Errorf("import athlete %s: %w", a.ID, err)
		}
	}
	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(repo Repository, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return repo.ImportData(&exportData)
}

// ImportYAML imports data from YAML bytes.
func ImportYAML(repo Repository, data []byte) error {
	var exportData ExportData
	if err := yaml.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal YAML: %w", err)
	}
	return repo.ImportData(&exportData)
}

// MarkdownOptions controls the Markdown report.
type MarkdownOptions struct {
	Sport    *models.Sport
	Language models.Language
	AsOf     time.Time
	Resolver *i18n.Resolver
}

// ExportMarkdown renders a human-readable report of every athlete's results.
func ExportMarkdown(repo Repository, opts MarkdownOptions) (string, error) {
	athletes, err := repo.ListAthletes(opts.Sport, 0)
	if err != nil {
		return "", err
	}
	if opts.Resolver == nil {
		opts.Resolver = i18n.Default()
	}
	if opts.AsOf.IsZero() {
		opts.AsOf = time.Now()
	}
	lang := opts.Language
	if !lang.IsValid() {
		lang = models.DefaultLanguage
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Athlete Export - %s\n\n", opts.AsOf.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", opts.AsOf.Format(time.RFC3339)))

	for _, a := range athletes {
		sb.WriteString(fmt.Sprintf("## %s\n\n", a.FullName()))
		if a.Sport != "" {
			sb.WriteString(fmt.Sprintf("- Sport: %s", a.Sport))
			if a.RoleInSport != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", a.RoleInSport))
			}
			sb.WriteString("\n")
		}
		if !a.DOB.IsZero() {
			sb.WriteString(fmt.Sprintf("- Age: %d\n", age.InYears(a.DOB, opts.AsOf)))
		}
		if m := a.Measurement; m != nil {
			sb.WriteString(fmt.Sprintf("- Measurement: %s, %s\n",
				units.FormatHeight(units.HeightToCm(m.Height, m.HeightUnit), m.HeightUnit),
				units.FormatWeight(units.WeightToKg(m.Weight, m.WeightUnit), m.WeightUnit)))
		}
		sb.WriteString("\n| Test | Latest | Benchmark | Standing | Observations |\n")
		sb.WriteString("|------|--------|-----------|----------|--------------|\n")
		for _, r := range a.ResultsInCatalogOrder() {
			name := r.TestID
			unit := ""
			if d, err := models.LookupTest(r.TestID); err == nil {
				name = opts.Resolver.Resolve(d.NameKey(), lang, nil)
				unit = d.Unit
			}
			latest := formatScore(r, unit)
			standing := "-"
			if !r.IsPlaceholder() {
				standing = opts.Resolver.Resolve("card_top_percentile", lang, i18n.Params{"percentile": r.TopPercent()})
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %v | %s | %d |\n",
				name, latest, r.Benchmark, standing, len(r.History)))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// formatScore renders a latest score, decoding composite height/weight scores.
func formatScore(r models.TestResult, unit string) string {
	if r.TestID == models.HeightWeightTestID {
		hw, err := composite.Decode(r.LatestScore)
		if err != nil {
			return "-"
		}
		return fmt.Sprintf("%d cm / %d kg", hw.HeightCm, hw.WeightKg)
	}
	if unit == "" {
		return fmt.Sprint(r.LatestScore)
	}
	return fmt.Sprintf("%v %s", r.LatestScore, unit)
}
