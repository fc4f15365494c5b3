package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/notion-blog/internal/domain/searchlog"
)

type SearchEvent struct {
	ID         uuid.UUID         `json:"id"`
	Query      string            `json:"query"`
	AncestorID string            `json:"ancestor_id"`
	Strategy   string            `json:"strategy"`
	Outcome    searchlog.Outcome `json:"outcome"`
	Total      int               `json:"total"`
	DurationMS int64             `json:"duration_ms"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func (e SearchEvent) ToEntry() *searchlog.Entry {
	return &searchlog.Entry{
		ID:         e.ID,
		Query:      e.Query,
		AncestorID: e.AncestorID,
		Strategy:   e.Strategy,
		Outcome:    e.Outcome,
		Total:      e.Total,
		DurationMS: e.DurationMS,
		CreatedAt:  e.OccurredAt,
	}
}

type SearchEventPublisher interface {
	PublishSearchEvent(ctx context.Context, evt SearchEvent) error
}
