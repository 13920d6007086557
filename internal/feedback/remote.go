// ABOUTME: Feedback generator backed by an external text-generation service.
// ABOUTME: Posts a coaching prompt to an OpenAI-style responses endpoint.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/harperreed/athlete/internal/composite"
	"github.com/harperreed/athlete/internal/i18n"
	"github.com/harperreed/athlete/internal/models"
)

// RemoteConfig configures the responses endpoint.
type RemoteConfig struct {
	URL        string
	Model      string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// RemoteGenerator asks an external model for coaching feedback.
type RemoteGenerator struct {
	cfg      RemoteConfig
	resolver *i18n.Resolver
}

// NewRemoteGenerator creates a RemoteGenerator. Test names in the prompt are
// resolved in English.
func NewRemoteGenerator(cfg RemoteConfig, r *i18n.Resolver) *RemoteGenerator {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if r == nil {
		r = i18n.Default()
	}
	return &RemoteGenerator{cfg: cfg, resolver: r}
}

// Generate implements Generator.
func (g *RemoteGenerator) Generate(ctx context.Context, s Snapshot) (Document, error) {
	url := strings.TrimSpace(g.cfg.URL)
	model := strings.TrimSpace(g.cfg.Model)
	if url == "" {
		return Document{}, errors.New("feedback url is required")
	}
	if model == "" {
		return Document{}, errors.New("feedback model is required")
	}

	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(map[string]any{
		"model": model,
		"input": g.Prompt(s),
	})
	if err != nil {
		return Document{}, fmt.Errorf("marshal feedback request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Document{}, fmt.Errorf("build feedback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key := strings.TrimSpace(g.cfg.APIKey); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	res, err := g.cfg.HTTPClient.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("feedback request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return Document{}, fmt.Errorf("feedback request status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var payload struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return Document{}, fmt.Errorf("decode feedback response: %w", err)
	}
	text := strings.TrimSpace(payload.OutputText)
	for _, item := range payload.Output {
		if text != "" {
			break
		}
		for _, c := range item.Content {
			if t := strings.TrimSpace(c.Text); t != "" {
				text = t
				break
			}
		}
	}
	if text == "" {
		return Document{}, errors.New("feedback response missing output text")
	}
	return Document{Text: text, Source: SourceRemote}, nil
}

// Prompt renders the coaching request for s.
func (g *RemoteGenerator) Prompt(s Snapshot) string {
	var summary []string
	for _, r := range s.Results {
		if r.IsPlaceholder() {
			continue
		}
		name := r.TestID
		if d, err := models.LookupTest(r.TestID); err == nil {
			name = g.resolver.Resolve(d.NameKey(), models.LanguageEnglish, nil)
		}
		score := fmt.Sprint(r.LatestScore)
		if r.TestID == models.HeightWeightTestID {
			if hw, err := composite.Decode(r.LatestScore); err == nil {
				score = fmt.Sprintf("%d cm / %d kg", hw.HeightCm, hw.WeightKg)
			}
		}
		comparison := "below"
		if r.LatestScore > r.Benchmark {
			comparison = "above"
		}
		summary = append(summary, fmt.Sprintf("- %s: Scored %s, which is %s the benchmark of %v. (Top %d%%)",
			name, score, comparison, r.Benchmark, r.TopPercent()))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert sports coach. Analyze the following performance data for an athlete named %s who is a %d-year-old %s specializing in %s.\n\n",
		s.FirstName, s.Age, strings.ToLower(string(s.Gender)), s.Sport)
	b.WriteString("Performance Summary:\n")
	b.WriteString(strings.Join(summary, "\n"))
	b.WriteString("\n\nBased on this data, provide:\n")
	b.WriteString("1. A brief, encouraging summary of their strengths.\n")
	b.WriteString("2. One key area for improvement.\n")
	b.WriteString("3. A specific, actionable drill or exercise to help with that improvement.\n\n")
	b.WriteString("Keep the feedback concise, positive, and easy to understand for a young athlete.")
	if s.Language != models.LanguageEnglish && s.Language.IsValid() {
		fmt.Fprintf(&b, " Respond in %s.", display.English.Tags().Name(language.Make(string(s.Language))))
	}
	return b.String()
}
