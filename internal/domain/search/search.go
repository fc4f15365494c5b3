package search

import (
	"context"
	"encoding/json"
)

type Filters struct {
	IsDeletedOnly                           *bool `json:"isDeletedOnly,omitempty"`
	ExcludeTemplates                        *bool `json:"excludeTemplates,omitempty"`
	NavigableBlockContentOnly               *bool `json:"navigableBlockContentOnly,omitempty"`
	RequireEditPermissions                  *bool `json:"requireEditPermissions,omitempty"`
	IncludePublicPagesWithoutExplicitAccess *bool `json:"includePublicPagesWithoutExplicitAccess,omitempty"`
}

type SearchParams struct {
	AncestorID      string   `json:"ancestorId"`
	Query           string   `json:"query"`
	Filters         *Filters `json:"filters,omitempty"`
	Limit           int      `json:"limit,omitempty"`
	SearchSessionID string   `json:"searchSessionId,omitempty"`
	StartCursor     string   `json:"startCursor,omitempty"`
}

// RecordMap keeps provider records as raw JSON so they reach the caller unmodified.
type RecordMap struct {
	Block          map[string]json.RawMessage `json:"block"`
	Collection     map[string]json.RawMessage `json:"collection"`
	CollectionView map[string]json.RawMessage `json:"collection_view"`
	NotionUser     map[string]json.RawMessage `json:"notion_user"`
}

type Highlight struct {
	PathText string `json:"pathText,omitempty"`
	Text     string `json:"text"`
}

type SearchResult struct {
	ID          string    `json:"id"`
	IsNavigable bool      `json:"isNavigable"`
	Score       float64   `json:"score"`
	Highlight   Highlight `json:"highlight"`
}

type SearchResults struct {
	RecordMap RecordMap      `json:"recordMap"`
	Results   []SearchResult `json:"results"`
	Total     int            `json:"total"`
}

// EmptySearchResults returns the canonical empty value: four empty record
// maps, no results and a zero total.
func EmptySearchResults() *SearchResults {
	return &SearchResults{
		RecordMap: RecordMap{
			Block:          map[string]json.RawMessage{},
			Collection:     map[string]json.RawMessage{},
			CollectionView: map[string]json.RawMessage{},
			NotionUser:     map[string]json.RawMessage{},
		},
		Results: []SearchResult{},
		Total:   0,
	}
}

type Strategy interface {
	Name() string
	Search(ctx context.Context, params SearchParams) (*SearchResults, error)
}

type StrategyKind string

const (
	StrategyIntegration StrategyKind = "integration"
	StrategyLegacy      StrategyKind = "legacy"
)

// Tokens holds the two Notion credentials. Only their presence matters for
// strategy selection.
type Tokens struct {
	Integration string
	Legacy      string
}

// SelectStrategy picks the integration API only when an integration token
// is set and no legacy token is. Every other combination falls back to the
// legacy API.
func SelectStrategy(t Tokens) StrategyKind {
	if t.Integration != "" && t.Legacy == "" {
		return StrategyIntegration
	}
	return StrategyLegacy
}
