package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/notion-blog/adapters/persistence"
	searchUC "github.com/khoahotran/notion-blog/internal/application/usecase/search"
	searchlogUC "github.com/khoahotran/notion-blog/internal/application/usecase/searchlog"
	"github.com/khoahotran/notion-blog/internal/config"
	"github.com/khoahotran/notion-blog/internal/domain/comments"
	"github.com/khoahotran/notion-blog/internal/domain/search"
	"github.com/khoahotran/notion-blog/internal/domain/searchlog"
	"github.com/khoahotran/notion-blog/pkg/auth"
	"github.com/khoahotran/notion-blog/pkg/logger"
)

type AdminE2ETestSuite struct {
	suite.Suite
	Router *gin.Engine
	dbPool *pgxpool.Pool
	jwtSvc *auth.JWTService
	seeded *searchlog.Entry
}

func (s *AdminE2ETestSuite) SetupSuite() {

	cfg, err := config.LoadConfig("../..")
	if err != nil {
		s.T().Fatalf("Failed to load config for E2E test: %v", err)
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect postgres: %v", err)
	}
	s.dbPool = dbPool

	appLogger := logger.NewZapLogger("development")

	logRepo := persistence.NewPostgresSearchLogRepo(dbPool, appLogger)
	s.seeded = &searchlog.Entry{
		ID:        uuid.New(),
		Query:     "e2e-" + uuid.NewString(),
		Strategy:  "legacy",
		Outcome:   searchlog.OutcomeOK,
		Total:     3,
		CreatedAt: time.Now().Add(time.Minute).UTC(),
	}
	if err := logRepo.Save(context.Background(), s.seeded); err != nil {
		s.T().Fatalf("E2E test failed to seed search log: %v", err)
	}

	s.jwtSvc = auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	searchUseCase := searchUC.NewSearchUseCase(search.Tokens{}, &stubStrategy{name: "integration"}, &stubStrategy{name: "legacy", results: search.EmptySearchResults()}, appLogger)

	gin.SetMode(gin.TestMode)
	s.Router = NewRouter(RouterDeps{
		Search:    NewSearchHandler(searchUseCase, cfg.Notion.RootPageID, appLogger),
		Comments:  NewCommentsHandler(comments.Config{}, nil),
		Admin:     NewAdminHandler(searchlogUC.NewListSearchLogsUseCase(logRepo, appLogger), appLogger),
		AdminAuth: AuthMiddleware(s.jwtSvc, appLogger),
		Logger:    appLogger,
	})
}

func (s *AdminE2ETestSuite) TearDownSuite() {
	if s.dbPool == nil {
		return
	}
	_, _ = s.dbPool.Exec(context.Background(), `DELETE FROM search_logs WHERE id = $1`, s.seeded.ID)
	s.dbPool.Close()
}

func TestAdminE2E(t *testing.T) {

	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests. Set E2E_TESTS=1 to run.")
	}
	suite.Run(t, new(AdminE2ETestSuite))
}

func (s *AdminE2ETestSuite) Test_SearchLogs_Flow() {

	reqNoAuth := httptest.NewRequest(http.MethodGet, "/api/admin/search-logs", nil)
	rrNoAuth := httptest.NewRecorder()
	s.Router.ServeHTTP(rrNoAuth, reqNoAuth)

	assert.Equal(s.T(), http.StatusUnauthorized, rrNoAuth.Code)

	token, err := s.jwtSvc.GenerateToken("e2e")
	s.Require().NoError(err)

	reqAuth := httptest.NewRequest(http.MethodGet, "/api/admin/search-logs?limit=5", nil)
	reqAuth.Header.Set("Authorization", "Bearer "+token)

	rrAuth := httptest.NewRecorder()
	s.Router.ServeHTTP(rrAuth, reqAuth)

	assert.Equal(s.T(), http.StatusOK, rrAuth.Code)

	var logs []SearchLogDTO
	s.Require().NoError(json.Unmarshal(rrAuth.Body.Bytes(), &logs))
	s.Require().NotEmpty(logs)
	assert.Equal(s.T(), s.seeded.ID.String(), logs[0].ID)
	assert.Equal(s.T(), s.seeded.Query, logs[0].Query)
}
