package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/khoahotran/notion-blog/internal/domain/search"
	"github.com/khoahotran/notion-blog/pkg/logger"
)

const (
	notionVersion          = "2022-06-28"
	defaultIntegrationSize = 20
	maxIntegrationSize     = 100
)

type IntegrationConfig struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
}

// IntegrationClient searches through the public API with an internal
// integration token and reshapes pages into a record map.
type IntegrationClient struct {
	token   string
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

func NewIntegrationClient(cfg IntegrationConfig, log logger.Logger) *IntegrationClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.notion.com"
	}
	return &IntegrationClient{
		token:   cfg.Token,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  newHTTPClient(cfg.HTTPClient),
		logger:  log,
	}
}

type integrationFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

type integrationRequest struct {
	Query       string             `json:"query"`
	PageSize    int                `json:"page_size"`
	StartCursor string             `json:"start_cursor,omitempty"`
	Filter      *integrationFilter `json:"filter,omitempty"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type pageProperty struct {
	Type  string     `json:"type"`
	Title []richText `json:"title"`
}

type pageParent struct {
	Type       string `json:"type"`
	PageID     string `json:"page_id"`
	DatabaseID string `json:"database_id"`
	Workspace  bool   `json:"workspace"`
}

type integrationPage struct {
	Object         string                  `json:"object"`
	ID             string                  `json:"id"`
	URL            string                  `json:"url"`
	CreatedTime    string                  `json:"created_time"`
	LastEditedTime string                  `json:"last_edited_time"`
	Archived       bool                    `json:"archived"`
	Parent         pageParent              `json:"parent"`
	Properties     map[string]pageProperty `json:"properties"`
}

type integrationResponse struct {
	Results    []integrationPage `json:"results"`
	NextCursor *string           `json:"next_cursor"`
	HasMore    bool              `json:"has_more"`
}

func (c *IntegrationClient) Name() string {
	return string(search.StrategyIntegration)
}

func (c *IntegrationClient) Search(ctx context.Context, params search.SearchParams) (*search.SearchResults, error) {
	size := params.Limit
	if size <= 0 {
		size = defaultIntegrationSize
	}
	if size > maxIntegrationSize {
		size = maxIntegrationSize
	}

	req := integrationRequest{
		Query:       params.Query,
		PageSize:    size,
		StartCursor: params.StartCursor,
		Filter:      &integrationFilter{Property: "object", Value: "page"},
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+c.token)
	headers.Set("Notion-Version", notionVersion)

	var resp integrationResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/v1/search", headers, req, &resp); err != nil {
		return nil, err
	}

	results, err := toSearchResults(resp.Results)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Integration search finished",
		zap.String("query", params.Query),
		zap.Int("total", results.Total),
		zap.Bool("has_more", resp.HasMore),
	)
	return results, nil
}

type blockValue struct {
	ID             string                `json:"id"`
	Type           string                `json:"type"`
	Properties     map[string][][]string `json:"properties"`
	ParentID       string                `json:"parent_id,omitempty"`
	ParentTable    string                `json:"parent_table,omitempty"`
	Alive          bool                  `json:"alive"`
	CreatedTime    string                `json:"created_time,omitempty"`
	LastEditedTime string                `json:"last_edited_time,omitempty"`
}

type blockRecord struct {
	Role  string     `json:"role"`
	Value blockValue `json:"value"`
}

func toSearchResults(pages []integrationPage) (*search.SearchResults, error) {
	out := search.EmptySearchResults()
	count := len(pages)

	for i, p := range pages {
		if p.Archived {
			continue
		}
		title := pageTitle(p)
		parentID, parentTable := parentRef(p.Parent)

		record := blockRecord{
			Role: "reader",
			Value: blockValue{
				ID:             p.ID,
				Type:           "page",
				Properties:     map[string][][]string{"title": {{title}}},
				ParentID:       parentID,
				ParentTable:    parentTable,
				Alive:          true,
				CreatedTime:    p.CreatedTime,
				LastEditedTime: p.LastEditedTime,
			},
		}
		raw, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("marshal block %s: %w", p.ID, err)
		}
		out.RecordMap.Block[p.ID] = raw

		// The public API returns pages already ranked; keep that order as a descending score.
		out.Results = append(out.Results, search.SearchResult{
			ID:          p.ID,
			IsNavigable: true,
			Score:       float64(count - i),
			Highlight:   search.Highlight{Text: title},
		})
	}
	out.Total = len(out.Results)
	return out, nil
}

func pageTitle(p integrationPage) string {
	for _, prop := range p.Properties {
		if prop.Type != "title" {
			continue
		}
		var b strings.Builder
		for _, t := range prop.Title {
			b.WriteString(t.PlainText)
		}
		return b.String()
	}
	return ""
}

func parentRef(p pageParent) (string, string) {
	switch p.Type {
	case "page_id":
		return p.PageID, "block"
	case "database_id":
		return p.DatabaseID, "collection"
	case "workspace":
		return "", "space"
	}
	return "", ""
}
