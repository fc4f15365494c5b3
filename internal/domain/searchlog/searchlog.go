package searchlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeCacheHit      Outcome = "cache_hit"
	OutcomeEmptyFallback Outcome = "empty_fallback"
	OutcomeAuthError     Outcome = "auth_error"
)

type Entry struct {
	ID         uuid.UUID `json:"id"`
	Query      string    `json:"query"`
	AncestorID string    `json:"ancestor_id"`
	Strategy   string    `json:"strategy"`
	Outcome    Outcome   `json:"outcome"`
	Total      int       `json:"total"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

type Repository interface {
	Save(ctx context.Context, e *Entry) error
	ListRecent(ctx context.Context, limit int) ([]*Entry, error)
}
