package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/khoahotran/notion-blog/internal/domain/search"
	"github.com/khoahotran/notion-blog/pkg/logger"
)

const defaultLegacyLimit = 20

type LegacyConfig struct {
	TokenV2    string
	ActiveUser string
	BaseURL    string
	HTTPClient *http.Client
}

// LegacyClient searches through the private v3 API that the Notion web app
// uses. It authenticates with the token_v2 browser cookie.
type LegacyClient struct {
	tokenV2    string
	activeUser string
	baseURL    string
	client     *http.Client
	logger     logger.Logger
}

func NewLegacyClient(cfg LegacyConfig, log logger.Logger) *LegacyClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.notion.so"
	}
	return &LegacyClient{
		tokenV2:    cfg.TokenV2,
		activeUser: cfg.ActiveUser,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		client:     newHTTPClient(cfg.HTTPClient),
		logger:     log,
	}
}

type legacySort struct {
	Field string `json:"field"`
}

type legacyFilters struct {
	IsDeletedOnly                           bool           `json:"isDeletedOnly"`
	ExcludeTemplates                        bool           `json:"excludeTemplates"`
	NavigableBlockContentOnly               bool           `json:"navigableBlockContentOnly"`
	RequireEditPermissions                  bool           `json:"requireEditPermissions"`
	IncludePublicPagesWithoutExplicitAccess bool           `json:"includePublicPagesWithoutExplicitAccess"`
	Ancestors                               []string       `json:"ancestors"`
	CreatedBy                               []string       `json:"createdBy"`
	EditedBy                                []string       `json:"editedBy"`
	LastEditedTime                          map[string]any `json:"lastEditedTime"`
	CreatedTime                             map[string]any `json:"createdTime"`
}

type legacyRequest struct {
	Type            string        `json:"type"`
	Source          string        `json:"source"`
	AncestorID      string        `json:"ancestorId"`
	Sort            legacySort    `json:"sort"`
	Limit           int           `json:"limit"`
	Query           string        `json:"query"`
	Filters         legacyFilters `json:"filters"`
	SearchSessionID string        `json:"searchSessionId,omitempty"`
}

func (c *LegacyClient) Name() string {
	return string(search.StrategyLegacy)
}

func (c *LegacyClient) Search(ctx context.Context, params search.SearchParams) (*search.SearchResults, error) {
	req := newLegacyRequest(params)

	headers := http.Header{}
	if c.tokenV2 != "" {
		headers.Set("Cookie", "token_v2="+c.tokenV2)
	}
	if c.activeUser != "" {
		headers.Set("x-notion-active-user-header", c.activeUser)
	}

	var results search.SearchResults
	if err := postJSON(ctx, c.client, c.baseURL+"/api/v3/search", headers, req, &results); err != nil {
		return nil, err
	}
	normalize(&results)

	c.logger.Debug("Legacy search finished", zap.String("query", params.Query), zap.Int("total", results.Total))
	return &results, nil
}

func newLegacyRequest(params search.SearchParams) legacyRequest {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLegacyLimit
	}

	filters := legacyFilters{
		IsDeletedOnly:                           false,
		ExcludeTemplates:                        true,
		NavigableBlockContentOnly:               true,
		RequireEditPermissions:                  false,
		IncludePublicPagesWithoutExplicitAccess: true,
		Ancestors:                               []string{},
		CreatedBy:                               []string{},
		EditedBy:                                []string{},
		LastEditedTime:                          map[string]any{},
		CreatedTime:                             map[string]any{},
	}
	if f := params.Filters; f != nil {
		if f.IsDeletedOnly != nil {
			filters.IsDeletedOnly = *f.IsDeletedOnly
		}
		if f.ExcludeTemplates != nil {
			filters.ExcludeTemplates = *f.ExcludeTemplates
		}
		if f.NavigableBlockContentOnly != nil {
			filters.NavigableBlockContentOnly = *f.NavigableBlockContentOnly
		}
		if f.RequireEditPermissions != nil {
			filters.RequireEditPermissions = *f.RequireEditPermissions
		}
		if f.IncludePublicPagesWithoutExplicitAccess != nil {
			filters.IncludePublicPagesWithoutExplicitAccess = *f.IncludePublicPagesWithoutExplicitAccess
		}
	}

	return legacyRequest{
		Type:            "BlocksInAncestor",
		Source:          "quick_find_public",
		AncestorID:      params.AncestorID,
		Sort:            legacySort{Field: "relevance"},
		Limit:           limit,
		Query:           params.Query,
		Filters:         filters,
		SearchSessionID: params.SearchSessionID,
	}
}

// normalize fills the maps and slices the v3 API omits so the response
// always has the same shape as search.EmptySearchResults.
func normalize(r *search.SearchResults) {
	if r.RecordMap.Block == nil {
		r.RecordMap.Block = map[string]json.RawMessage{}
	}
	if r.RecordMap.Collection == nil {
		r.RecordMap.Collection = map[string]json.RawMessage{}
	}
	if r.RecordMap.CollectionView == nil {
		r.RecordMap.CollectionView = map[string]json.RawMessage{}
	}
	if r.RecordMap.NotionUser == nil {
		r.RecordMap.NotionUser = map[string]json.RawMessage{}
	}
	if r.Results == nil {
		r.Results = []search.SearchResult{}
	}
}
