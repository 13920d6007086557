// ABOUTME: MCP resource implementations for athlete performance tracking.
// ABOUTME: Provides athlete://catalog and athlete://leaderboard resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/athlete/internal/leaderboard"
	"github.com/harperreed/athlete/internal/models"
)

const (
	catalogURI     = "athlete://catalog"
	leaderboardURI = "athlete://leaderboard"
)

func (s *Server) registerResources() {
	// athlete://catalog - the five fitness tests with units and names
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         catalogURI,
		Name:        "Fitness Test Catalog",
		Description: "Test IDs, units, and localized names in every supported language",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	// athlete://leaderboard - official dashboard
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         leaderboardURI,
		Name:        "Official Dashboard",
		Description: "Top athletes by average percentile and athlete count per sport",
		MIMEType:    "application/json",
	}, s.handleLeaderboardResource)
}

// Resource handlers

func (s *Server) handleCatalogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	type catalogEntry struct {
		ID        string            `json:"id"`
		Unit      string            `json:"unit"`
		Composite bool              `json:"composite"`
		Names     map[string]string `json:"names"`
	}

	entries := make([]catalogEntry, 0, len(models.Catalog))
	for _, d := range models.Catalog {
		names := make(map[string]string)
		for _, lang := range s.resolver.Languages() {
			names[string(lang)] = s.resolver.Resolve(d.NameKey(), lang, nil)
		}
		entries = append(entries, catalogEntry{
			ID:        d.ID,
			Unit:      d.Unit,
			Composite: d.Composite,
			Names:     names,
		})
	}

	return jsonResource(catalogURI, map[string]interface{}{"tests": entries})
}

func (s *Server) handleLeaderboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	entries, err := s.svc.Leaderboard(ctx, nil, leaderboard.DefaultLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank athletes: %w", err)
	}
	dist, err := s.svc.Distribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count athletes: %w", err)
	}

	total := 0
	for _, c := range dist {
		total += c.Count
	}

	result := map[string]interface{}{
		"generated_at":  s.svc.Now().Format(time.RFC3339),
		"top_athletes":  toLeaderboardEntries(entries),
		"distribution":  dist,
		"athlete_count": total,
	}
	return jsonResource(leaderboardURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
