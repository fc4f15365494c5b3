package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/khoahotran/notion-blog/adapters/event"
	httpAdapter "github.com/khoahotran/notion-blog/adapters/http"
	"github.com/khoahotran/notion-blog/adapters/issue_tracker"
	"github.com/khoahotran/notion-blog/adapters/notion"
	"github.com/khoahotran/notion-blog/adapters/persistence"
	commentsUC "github.com/khoahotran/notion-blog/internal/application/usecase/comments"
	searchUC "github.com/khoahotran/notion-blog/internal/application/usecase/search"
	searchlogUC "github.com/khoahotran/notion-blog/internal/application/usecase/searchlog"
	"github.com/khoahotran/notion-blog/internal/config"
	"github.com/khoahotran/notion-blog/internal/domain/comments"
	"github.com/khoahotran/notion-blog/internal/domain/search"
	"github.com/khoahotran/notion-blog/pkg/auth"
	"github.com/khoahotran/notion-blog/pkg/logger"
	"github.com/khoahotran/notion-blog/pkg/metrics"
	"github.com/khoahotran/notion-blog/pkg/tracing"
)

func main() {
	fmt.Println("Start Notion Blog API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "notion-blog-api")
	if err != nil {
		appLogger.Fatal("Cannot init tracer", err)
	}
	if tp != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				appLogger.Error("Tracer shutdown failed", err)
			}
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	appMetrics := metrics.New(reg)

	// Notion strategies
	integration := notion.NewIntegrationClient(notion.IntegrationConfig{
		Token:   cfg.Notion.Token,
		BaseURL: cfg.Notion.APIBaseURL,
	}, appLogger)
	legacy := notion.NewLegacyClient(notion.LegacyConfig{
		TokenV2:    cfg.Notion.TokenV2,
		ActiveUser: cfg.Notion.ActiveUser,
		BaseURL:    cfg.Notion.LegacyBaseURL,
	}, appLogger)

	searchOpts := []searchUC.Option{searchUC.WithMetrics(appMetrics)}

	// Optional infrastructure: each piece is skipped when unconfigured.
	if cfg.Redis.Addr != "" && cfg.Search.CacheTTL <= 0 {
		appLogger.Warn("Search cache disabled, SEARCH_CACHE_TTL must be positive", zap.Duration("ttl", cfg.Search.CacheTTL))
	}
	if cfg.Redis.Addr != "" && cfg.Search.CacheTTL > 0 {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Redis", err)
		}
		defer redisClient.Close()
		searchOpts = append(searchOpts, searchUC.WithResultCache(persistence.NewRedisSearchCache(redisClient, cfg.Search.CacheTTL)))
	}

	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger, appMetrics)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		searchOpts = append(searchOpts, searchUC.WithEventPublisher(kafkaClient))
	}

	tokens := search.Tokens{Integration: cfg.Notion.Token, Legacy: cfg.Notion.TokenV2}
	searchUseCase := searchUC.NewSearchUseCase(tokens, integration, legacy, appLogger, searchOpts...)
	appLogger.Info("Search strategy selected", zap.String("strategy", searchUseCase.Strategy().Name()))

	// Comments
	commentsCfg := comments.Config{GitHub: cfg.Site.GitHub, RepoName: cfg.Comments.RepoName}
	countUseCase := commentsUC.NewCountCommentsUseCase(commentsCfg, issue_tracker.NewIssueCounter(cfg.GitHub.Token), appLogger)

	deps := httpAdapter.RouterDeps{
		Search:         httpAdapter.NewSearchHandler(searchUseCase, cfg.Notion.RootPageID, appLogger),
		Comments:       httpAdapter.NewCommentsHandler(commentsCfg, countUseCase),
		MetricsHandler: metrics.HandlerFor(reg),
		Logger:         appLogger,
	}

	if cfg.DB.DSN != "" && cfg.Auth.JWTSecret != "" {
		dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Postgres", err)
		}
		defer dbPool.Close()

		jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
		logRepo := persistence.NewPostgresSearchLogRepo(dbPool, appLogger)
		deps.Admin = httpAdapter.NewAdminHandler(searchlogUC.NewListSearchLogsUseCase(logRepo, appLogger), appLogger)
		deps.AdminAuth = httpAdapter.AuthMiddleware(jwtSvc, appLogger)
	}

	router := httpAdapter.NewRouter(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
