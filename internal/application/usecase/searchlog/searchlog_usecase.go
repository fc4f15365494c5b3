package searchlog

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/notion-blog/internal/application/service"
	"github.com/khoahotran/notion-blog/internal/domain/searchlog"
	"github.com/khoahotran/notion-blog/pkg/apperror"
	"github.com/khoahotran/notion-blog/pkg/logger"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type ListSearchLogsUseCase struct {
	repo   searchlog.Repository
	logger logger.Logger
}

func NewListSearchLogsUseCase(repo searchlog.Repository, log logger.Logger) *ListSearchLogsUseCase {
	return &ListSearchLogsUseCase{repo: repo, logger: log}
}

func (uc *ListSearchLogsUseCase) Execute(ctx context.Context, limit int) ([]*searchlog.Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	entries, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		uc.logger.Error("List search logs failed", err)
		return nil, err
	}
	return entries, nil
}

type RecordSearchEventUseCase struct {
	repo   searchlog.Repository
	logger logger.Logger
}

func NewRecordSearchEventUseCase(repo searchlog.Repository, log logger.Logger) *RecordSearchEventUseCase {
	return &RecordSearchEventUseCase{repo: repo, logger: log}
}

// Execute decodes one search.events payload and stores it. Malformed
// payloads return ErrInvalidInput so the consumer can skip them.
func (uc *RecordSearchEventUseCase) Execute(ctx context.Context, payload []byte) error {
	var evt service.SearchEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return apperror.NewInvalidInput("malformed search event", err)
	}
	if evt.ID == uuid.Nil {
		return apperror.NewInvalidInput("search event without id", nil)
	}

	if err := uc.repo.Save(ctx, evt.ToEntry()); err != nil {
		uc.logger.Error("Save search log failed", err, zap.String("event_id", evt.ID.String()))
		return err
	}
	return nil
}
