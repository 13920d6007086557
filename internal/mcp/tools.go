// ABOUTME: MCP tool implementations for athlete performance tracking.
// ABOUTME: Provides sign-up, test recording, measurements, feedback, and rankings.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/athlete/internal/i18n"
	"github.com/harperreed/athlete/internal/leaderboard"
	"github.com/harperreed/athlete/internal/models"
)

func (s *Server) registerTools() {
	// list_tests
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_tests",
		Description: "List the fitness test catalog with localized names and instructions",
	}, s.handleListTests)

	// sign_up
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "sign_up",
		Description: "Register a new athlete profile",
	}, s.handleSignUp)

	// record_test
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_test",
		Description: "Record a fitness test score for an athlete",
	}, s.handleRecordTest)

	// submit_measurement
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "submit_measurement",
		Description: "Submit an athlete's height and weight (once per athlete)",
	}, s.handleSubmitMeasurement)

	// get_latest
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_latest",
		Description: "Get an athlete's latest score, benchmark, and percentile for a test",
	}, s.handleGetLatest)

	// get_history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_history",
		Description: "Get every recorded observation of a test for an athlete",
	}, s.handleGetHistory)

	// get_feedback
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_feedback",
		Description: "Generate coaching feedback from an athlete's results",
	}, s.handleGetFeedback)

	// leaderboard
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "leaderboard",
		Description: "Rank athletes by average percentile, optionally within one sport",
	}, s.handleLeaderboard)

	// translate
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "translate",
		Description: "Resolve a localization key with English fallback",
	}, s.handleTranslate)
}

// Tool input/output types

type listTestsInput struct {
	Language string `json:"language,omitempty" jsonschema:"Language tag (en, hi, ta, te), defaults to en"`
}

type testInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
	Perform     string `json:"perform"`
	Record      string `json:"record"`
	Assess      string `json:"assess"`
}

type listTestsOutput struct {
	Language string     `json:"language"`
	Tests    []testInfo `json:"tests"`
}

type signUpInput struct {
	FirstName string `json:"first_name" jsonschema:"Athlete's first name"`
	LastName  string `json:"last_name" jsonschema:"Athlete's last name"`
	DOB       string `json:"dob" jsonschema:"Date of birth (YYYY-MM-DD)"`
	Gender    string `json:"gender,omitempty" jsonschema:"male, female, or other"`
	Sport     string `json:"sport,omitempty" jsonschema:"athletics, basketball, cricket, football, hockey, or wrestling"`
	Role      string `json:"role,omitempty" jsonschema:"Role or position in the sport"`
	Contact   string `json:"contact,omitempty" jsonschema:"Email or phone"`
	Language  string `json:"language,omitempty" jsonschema:"Preferred language tag, defaults to en"`
}

type athleteOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Message string `json:"message"`
}

type recordTestInput struct {
	Athlete string  `json:"athlete" jsonschema:"Athlete ID or prefix"`
	Test    string  `json:"test" jsonschema:"Test ID (t2-t5) or name (vertical_jump, shuttle_run, sit_ups, endurance_run)"`
	Value   float64 `json:"value" jsonschema:"Score in the test's unit"`
	Date    string  `json:"date,omitempty" jsonschema:"Observation time (ISO 8601 or YYYY-MM-DD), defaults to now"`
}

type resultOutput struct {
	AthleteID    string  `json:"athlete_id"`
	TestID       string  `json:"test_id"`
	Recorded     bool    `json:"recorded"`
	LatestScore  float64 `json:"latest_score"`
	Benchmark    float64 `json:"benchmark"`
	Percentile   int     `json:"percentile"`
	Observations int     `json:"observations"`
	Message      string  `json:"message"`
}

type submitMeasurementInput struct {
	Athlete     string  `json:"athlete" jsonschema:"Athlete ID or prefix"`
	Height      float64 `json:"height" jsonschema:"Height value"`
	HeightUnit  string  `json:"height_unit,omitempty" jsonschema:"cm (default) or ft as decimal feet"`
	Weight      float64 `json:"weight" jsonschema:"Weight value"`
	WeightUnit  string  `json:"weight_unit,omitempty" jsonschema:"kg (default) or lbs"`
	HeightVideo string  `json:"height_video,omitempty" jsonschema:"Reference to the height evidence video"`
	WeightVideo string  `json:"weight_video,omitempty" jsonschema:"Reference to the weight evidence video"`
	Date        string  `json:"date,omitempty" jsonschema:"Measurement time (ISO 8601 or YYYY-MM-DD), defaults to now"`
}

type measurementOutput struct {
	AthleteID string  `json:"athlete_id"`
	Score     float64 `json:"score"`
	HeightCm  int     `json:"height_cm"`
	WeightKg  int     `json:"weight_kg"`
	Message   string  `json:"message"`
}

type athleteTestInput struct {
	Athlete string `json:"athlete" jsonschema:"Athlete ID or prefix"`
	Test    string `json:"test" jsonschema:"Test ID or name"`
}

type observationOutput struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type historyOutput struct {
	AthleteID    string              `json:"athlete_id"`
	TestID       string              `json:"test_id"`
	Observations []observationOutput `json:"observations"`
}

type feedbackInput struct {
	Athlete  string `json:"athlete" jsonschema:"Athlete ID or prefix"`
	Language string `json:"language,omitempty" jsonschema:"Override the athlete's preferred language"`
}

type feedbackOutput struct {
	Text       string   `json:"text"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Source     string   `json:"source"`
}

type leaderboardInput struct {
	Sport string `json:"sport,omitempty" jsonschema:"Restrict the ranking to one sport"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max athletes (default 5)"`
}

type leaderboardEntry struct {
	Rank              int    `json:"rank"`
	AthleteID         string `json:"athlete_id"`
	Name              string `json:"name"`
	Sport             string `json:"sport"`
	AveragePercentile int    `json:"average_percentile"`
	Tests             int    `json:"tests"`
}

type leaderboardOutput struct {
	Entries []leaderboardEntry `json:"entries"`
}

type translateInput struct {
	Key      string            `json:"key" jsonschema:"Localization key, e.g. test_name_sit_ups"`
	Language string            `json:"language,omitempty" jsonschema:"Language tag, defaults to en"`
	Params   map[string]string `json:"params,omitempty" jsonschema:"Values for {placeholder} substitution"`
}

type translateOutput struct {
	Key      string `json:"key"`
	Language string `json:"language"`
	Text     string `json:"text"`
	Found    bool   `json:"found"`
}

// Tool handlers

func (s *Server) handleListTests(ctx context.Context, req *mcp.CallToolRequest, input listTestsInput) (*mcp.CallToolResult, listTestsOutput, error) {
	lang := models.ParseLanguage(input.Language)
	out := listTestsOutput{Language: string(lang)}
	for _, d := range models.Catalog {
		out.Tests = append(out.Tests, testInfo{
			ID:          d.ID,
			Name:        s.resolver.Resolve(d.NameKey(), lang, nil),
			Unit:        d.Unit,
			Description: s.resolver.Resolve(d.DescriptionKey, lang, nil),
			Perform:     s.resolver.Resolve(d.Instructions.Perform, lang, nil),
			Record:      s.resolver.Resolve(d.Instructions.Record, lang, nil),
			Assess:      s.resolver.Resolve(d.Instructions.Assess, lang, nil),
		})
	}
	return nil, out, nil
}

func (s *Server) handleSignUp(ctx context.Context, req *mcp.CallToolRequest, input signUpInput) (*mcp.CallToolResult, athleteOutput, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, athleteOutput{}, fmt.Errorf("first_name is required")
	}
	dob, err := time.Parse("2006-01-02", input.DOB)
	if err != nil {
		return nil, athleteOutput{}, fmt.Errorf("invalid dob %q: use YYYY-MM-DD", input.DOB)
	}

	a := models.NewAthlete(input.FirstName, input.LastName).
		WithDOB(dob).
		WithContact(input.Contact).
		WithLanguage(models.ParseLanguage(input.Language))
	if input.Gender != "" {
		g, ok := models.ParseGender(input.Gender)
		if !ok {
			return nil, athleteOutput{}, fmt.Errorf("unknown gender: %s", input.Gender)
		}
		a.WithGender(g)
	}
	if input.Sport != "" {
		sp, ok := models.ParseSport(input.Sport)
		if !ok {
			return nil, athleteOutput{}, fmt.Errorf("unknown sport: %s", input.Sport)
		}
		a.WithSport(sp, input.Role)
	}

	years, err := s.svc.SignUp(ctx, a, s.svc.Now())
	if err != nil {
		return nil, athleteOutput{}, fmt.Errorf("failed to sign up: %w", err)
	}

	return nil, athleteOutput{
		ID:      a.ID.String(),
		Name:    a.FullName(),
		Age:     years,
		Message: s.resolver.Resolve("you_are_age", a.Language, i18n.Params{"age": years}),
	}, nil
}

func (s *Server) handleRecordTest(ctx context.Context, req *mcp.CallToolRequest, input recordTestInput) (*mcp.CallToolResult, resultOutput, error) {
	date, err := parseDate(input.Date, s.svc.Now())
	if err != nil {
		return nil, resultOutput{}, err
	}

	a, r, err := s.svc.RecordTest(ctx, input.Athlete, input.Test, input.Value, date)
	if err != nil {
		return nil, resultOutput{}, fmt.Errorf("failed to record test: %w", err)
	}

	out := toResultOutput(a, r)
	out.Message = fmt.Sprintf("Recorded %s = %v for %s (%d observations)", r.TestID, input.Value, a.FullName(), len(r.History))
	return nil, out, nil
}

func (s *Server) handleSubmitMeasurement(ctx context.Context, req *mcp.CallToolRequest, input submitMeasurementInput) (*mcp.CallToolResult, measurementOutput, error) {
	date, err := parseDate(input.Date, s.svc.Now())
	if err != nil {
		return nil, measurementOutput{}, err
	}
	hu := models.HeightUnit(strings.ToLower(input.HeightUnit))
	if hu == "" {
		hu = models.HeightCm
	}
	wu := models.WeightUnit(strings.ToLower(input.WeightUnit))
	if wu == "" {
		wu = models.WeightKg
	}

	m := models.NewBodyMeasurement(input.Height, hu, input.Weight, wu).
		WithVideos(input.HeightVideo, input.WeightVideo)
	m.SubmittedAt = date

	a, hw, err := s.svc.SubmitMeasurement(ctx, input.Athlete, m, date)
	if err != nil {
		return nil, measurementOutput{}, fmt.Errorf("failed to submit measurement: %w", err)
	}

	score := a.Result(models.HeightWeightTestID).LatestScore
	return nil, measurementOutput{
		AthleteID: a.ID.String(),
		Score:     score,
		HeightCm:  hw.HeightCm,
		WeightKg:  hw.WeightKg,
		Message:   fmt.Sprintf("Stored %d cm / %d kg for %s", hw.HeightCm, hw.WeightKg, a.FullName()),
	}, nil
}

func (s *Server) handleGetLatest(ctx context.Context, req *mcp.CallToolRequest, input athleteTestInput) (*mcp.CallToolResult, resultOutput, error) {
	a, r, err := s.svc.Latest(ctx, input.Athlete, input.Test)
	if err != nil {
		return nil, resultOutput{}, fmt.Errorf("failed to get latest: %w", err)
	}

	out := toResultOutput(a, r)
	if r.IsPlaceholder() {
		out.Message = s.resolver.Resolve("card_not_recorded", a.Language, nil)
	} else {
		out.Message = s.resolver.Resolve("card_top_percentile", a.Language, i18n.Params{"percentile": r.TopPercent()})
	}
	return nil, out, nil
}

func (s *Server) handleGetHistory(ctx context.Context, req *mcp.CallToolRequest, input athleteTestInput) (*mcp.CallToolResult, historyOutput, error) {
	a, seq, err := s.svc.History(ctx, input.Athlete, input.Test)
	if err != nil {
		return nil, historyOutput{}, fmt.Errorf("failed to get history: %w", err)
	}
	def, _ := models.LookupTest(input.Test)

	out := historyOutput{
		AthleteID:    a.ID.String(),
		TestID:       def.ID,
		Observations: []observationOutput{},
	}
	for o := range seq {
		out.Observations = append(out.Observations, observationOutput{
			Date:  o.Date.Format(time.RFC3339),
			Value: o.Value,
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetFeedback(ctx context.Context, req *mcp.CallToolRequest, input feedbackInput) (*mcp.CallToolResult, feedbackOutput, error) {
	var lang models.Language
	if input.Language != "" {
		lang = models.ParseLanguage(input.Language)
	}

	doc, err := s.svc.Feedback(ctx, input.Athlete, lang)
	if err != nil {
		return nil, feedbackOutput{}, fmt.Errorf("failed to generate feedback: %w", err)
	}

	out := feedbackOutput{
		Text:       doc.Text,
		Strengths:  doc.Strengths,
		Weaknesses: doc.Weaknesses,
		Source:     doc.Source,
	}
	if out.Strengths == nil {
		out.Strengths = []string{}
	}
	if out.Weaknesses == nil {
		out.Weaknesses = []string{}
	}
	return nil, out, nil
}

func (s *Server) handleLeaderboard(ctx context.Context, req *mcp.CallToolRequest, input leaderboardInput) (*mcp.CallToolResult, leaderboardOutput, error) {
	var sport *models.Sport
	if input.Sport != "" {
		sp, ok := models.ParseSport(input.Sport)
		if !ok {
			return nil, leaderboardOutput{}, fmt.Errorf("unknown sport: %s", input.Sport)
		}
		sport = &sp
	}
	limit := input.Limit
	if limit <= 0 {
		limit = leaderboard.DefaultLimit
	}

	entries, err := s.svc.Leaderboard(ctx, sport, limit)
	if err != nil {
		return nil, leaderboardOutput{}, fmt.Errorf("failed to rank athletes: %w", err)
	}
	return nil, leaderboardOutput{Entries: toLeaderboardEntries(entries)}, nil
}

func (s *Server) handleTranslate(ctx context.Context, req *mcp.CallToolRequest, input translateInput) (*mcp.CallToolResult, translateOutput, error) {
	if input.Key == "" {
		return nil, translateOutput{}, fmt.Errorf("key is required")
	}
	lang := models.ParseLanguage(input.Language)

	params := make(i18n.Params, len(input.Params))
	for k, v := range input.Params {
		params[k] = v
	}

	return nil, translateOutput{
		Key:      input.Key,
		Language: string(lang),
		Text:     s.resolver.Resolve(input.Key, lang, params),
		Found:    s.resolver.Has(input.Key, lang),
	}, nil
}

func toResultOutput(a *models.Athlete, r *models.TestResult) resultOutput {
	return resultOutput{
		AthleteID:    a.ID.String(),
		TestID:       r.TestID,
		Recorded:     !r.IsPlaceholder(),
		LatestScore:  r.LatestScore,
		Benchmark:    r.Benchmark,
		Percentile:   r.Percentile,
		Observations: len(r.History),
	}
}

func toLeaderboardEntries(entries []leaderboard.Entry) []leaderboardEntry {
	out := make([]leaderboardEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntry{
			Rank:              e.Rank,
			AthleteID:         e.AthleteID.String(),
			Name:              e.Name,
			Sport:             string(e.Sport),
			AveragePercentile: e.AveragePercentile,
			Tests:             e.Tests,
		})
	}
	return out
}

// parseDate accepts RFC 3339, "2006-01-02 15:04" or a bare date. Empty
// means now.
func parseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use ISO 8601 or YYYY-MM-DD", s)
}
