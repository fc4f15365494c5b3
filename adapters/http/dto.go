package http

import (
	"time"

	"github.com/khoahotran/notion-blog/internal/domain/search"
	"github.com/khoahotran/notion-blog/internal/domain/searchlog"
)

// Search DTOs

type SearchNotionRequest struct {
	AncestorID      string          `json:"ancestorId"`
	Query           string          `json:"query"`
	Filters         *search.Filters `json:"filters"`
	Limit           int             `json:"limit"`
	SearchSessionID string          `json:"searchSessionId"`
	StartCursor     string          `json:"startCursor"`
}

func (r *SearchNotionRequest) ToDomain() search.SearchParams {
	return search.SearchParams{
		AncestorID:      r.AncestorID,
		Query:           r.Query,
		Filters:         r.Filters,
		Limit:           r.Limit,
		SearchSessionID: r.SearchSessionID,
		StartCursor:     r.StartCursor,
	}
}

// Comments DTOs

type CommentCountDTO struct {
	Repo  string `json:"repo"`
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Search log DTOs

type SearchLogDTO struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	AncestorID string    `json:"ancestor_id,omitempty"`
	Strategy   string    `json:"strategy"`
	Outcome    string    `json:"outcome"`
	Total      int       `json:"total"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToSearchLogDTO(e *searchlog.Entry) SearchLogDTO {
	return SearchLogDTO{
		ID:         e.ID.String(),
		Query:      e.Query,
		AncestorID: e.AncestorID,
		Strategy:   e.Strategy,
		Outcome:    string(e.Outcome),
		Total:      e.Total,
		DurationMS: e.DurationMS,
		CreatedAt:  e.CreatedAt,
	}
}
