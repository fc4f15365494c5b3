package persistence

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/khoahotran/notion-blog/internal/domain/searchlog"
	"github.com/khoahotran/notion-blog/pkg/logger"
)

type SearchLogRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	repo        searchlog.Repository
}

func (s *SearchLogRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	migration, err := os.ReadFile("../../migrations/000001_create_search_logs.up.sql")
	if err != nil {
		s.T().Fatalf("Failed to read migration: %s", err)
	}
	if _, err := pool.Exec(ctx, string(migration)); err != nil {
		s.T().Fatalf("Failed to run migration: %s", err)
	}

	s.repo = NewPostgresSearchLogRepo(s.dbPool, logger.NewNopLogger())
}

func (s *SearchLogRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Logf("Failed to terminate container: %s", err)
		}
	}
}

func (s *SearchLogRepoIntegrationTestSuite) SetupTest() {
	_, err := s.dbPool.Exec(context.Background(), "TRUNCATE search_logs")
	s.Require().NoError(err)
}

func TestSearchLogRepoIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TESTS=1 to run.")
	}
	suite.Run(t, new(SearchLogRepoIntegrationTestSuite))
}

func (s *SearchLogRepoIntegrationTestSuite) Test_SaveAndListRecent() {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, q := range []string{"first", "second", "third"} {
		err := s.repo.Save(ctx, &searchlog.Entry{
			ID:         uuid.New(),
			Query:      q,
			Strategy:   "legacy",
			Outcome:    searchlog.OutcomeOK,
			Total:      i,
			DurationMS: int64(10 * i),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		s.Require().NoError(err)
	}

	entries, err := s.repo.ListRecent(ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("third", entries[0].Query)
	s.Equal("second", entries[1].Query)
	s.Equal(searchlog.OutcomeOK, entries[0].Outcome)
	s.True(entries[0].CreatedAt.Equal(base.Add(2 * time.Minute)))
}

func (s *SearchLogRepoIntegrationTestSuite) Test_SaveIsIdempotent() {
	ctx := context.Background()
	entry := &searchlog.Entry{
		ID:        uuid.New(),
		Query:     "dup",
		Strategy:  "integration",
		Outcome:   searchlog.OutcomeEmptyFallback,
		CreatedAt: time.Now().UTC(),
	}

	s.Require().NoError(s.repo.Save(ctx, entry))
	s.Require().NoError(s.repo.Save(ctx, entry))

	entries, err := s.repo.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Len(entries, 1)
}
