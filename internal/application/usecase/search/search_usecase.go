package search

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/khoahotran/notion-blog/internal/application/service"
	"github.com/khoahotran/notion-blog/internal/domain/search"
	"github.com/khoahotran/notion-blog/internal/domain/searchlog"
	"github.com/khoahotran/notion-blog/pkg/logger"
	"github.com/khoahotran/notion-blog/pkg/metrics"
)

var tracer = otel.Tracer("github.com/khoahotran/notion-blog/search")

type Option func(*SearchUseCase)

func WithResultCache(c service.ResultCache) Option {
	return func(uc *SearchUseCase) { uc.cache = c }
}

func WithEventPublisher(p service.SearchEventPublisher) Option {
	return func(uc *SearchUseCase) { uc.events = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(uc *SearchUseCase) { uc.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(uc *SearchUseCase) { uc.now = now }
}

// SearchUseCase resolves a search request against one of two Notion
// strategies. Authentication failures are returned to the caller, every
// other failure degrades to search.EmptySearchResults.
type SearchUseCase struct {
	tokens      search.Tokens
	integration search.Strategy
	legacy      search.Strategy
	cache       service.ResultCache
	events      service.SearchEventPublisher
	metrics     *metrics.Metrics
	logger      logger.Logger
	now         func() time.Time
}

func NewSearchUseCase(tokens search.Tokens, integration, legacy search.Strategy, log logger.Logger, opts ...Option) *SearchUseCase {
	uc := &SearchUseCase{
		tokens:      tokens,
		integration: integration,
		legacy:      legacy,
		logger:      log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Strategy returns the strategy every request of this use case runs against.
func (uc *SearchUseCase) Strategy() search.Strategy {
	if search.SelectStrategy(uc.tokens) == search.StrategyIntegration {
		return uc.integration
	}
	return uc.legacy
}

func (uc *SearchUseCase) HandleSearchRequest(ctx context.Context, params search.SearchParams) (*search.SearchResults, error) {
	strategy := uc.Strategy()
	start := uc.now()

	ctx, span := tracer.Start(ctx, "search.HandleSearchRequest")
	defer span.End()
	span.SetAttributes(
		attribute.String("search.strategy", strategy.Name()),
		attribute.Int("search.query_length", len(params.Query)),
	)

	if cached, ok := uc.lookupCache(ctx, strategy.Name(), params); ok {
		uc.finish(ctx, params, strategy.Name(), searchlog.OutcomeCacheHit, cached.Total, start)
		return cached, nil
	}

	results, err := strategy.Search(ctx, params)
	if err == nil {
		uc.storeCache(ctx, strategy.Name(), params, results)
		uc.finish(ctx, params, strategy.Name(), searchlog.OutcomeOK, results.Total, start)
		return results, nil
	}

	span.RecordError(err)
	uc.logger.Error("Search error", err, zap.String("strategy", strategy.Name()), zap.String("query", params.Query))

	if search.Classify(err) == search.KindAuth {
		span.SetStatus(codes.Error, "authentication failed")
		uc.finish(ctx, params, strategy.Name(), searchlog.OutcomeAuthError, 0, start)
		return nil, search.NewAuthenticationError(err)
	}

	uc.logger.Warn("Search failed (returning empty results)",
		zap.String("strategy", strategy.Name()),
		zap.String("kind", search.Classify(err).String()),
		zap.Error(err),
	)
	uc.finish(ctx, params, strategy.Name(), searchlog.OutcomeEmptyFallback, 0, start)
	return search.EmptySearchResults(), nil
}

func (uc *SearchUseCase) lookupCache(ctx context.Context, strategy string, params search.SearchParams) (*search.SearchResults, bool) {
	if uc.cache == nil {
		return nil, false
	}
	cached, ok, err := uc.cache.Get(ctx, strategy, params)
	if err != nil {
		uc.logger.Warn("Search cache lookup failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		uc.metrics.RecordCacheMiss()
		return nil, false
	}
	uc.metrics.RecordCacheHit()
	return cached, true
}

func (uc *SearchUseCase) storeCache(ctx context.Context, strategy string, params search.SearchParams, results *search.SearchResults) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, strategy, params, results); err != nil {
		uc.logger.Warn("Search cache store failed", zap.Error(err))
	}
}

func (uc *SearchUseCase) finish(ctx context.Context, params search.SearchParams, strategy string, outcome searchlog.Outcome, total int, start time.Time) {
	elapsed := uc.now().Sub(start)
	uc.metrics.RecordSearch(strategy, string(outcome), elapsed)

	if uc.events == nil {
		return
	}
	evt := service.SearchEvent{
		ID:         uuid.New(),
		Query:      params.Query,
		AncestorID: params.AncestorID,
		Strategy:   strategy,
		Outcome:    outcome,
		Total:      total,
		DurationMS: elapsed.Milliseconds(),
		OccurredAt: start.UTC(),
	}
	if err := uc.events.PublishSearchEvent(ctx, evt); err != nil {
		uc.metrics.RecordPublishFailure()
		uc.logger.Warn("Publish search event failed", zap.Error(err), zap.String("event_id", evt.ID.String()))
	}
}
