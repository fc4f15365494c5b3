package comments

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/khoahotran/notion-blog/internal/domain/comments"
	"github.com/khoahotran/notion-blog/pkg/apperror"
	"github.com/khoahotran/notion-blog/pkg/logger"
)

type CountCommentsUseCase struct {
	cfg     comments.Config
	counter comments.IssueCounter
	logger  logger.Logger
}

func NewCountCommentsUseCase(cfg comments.Config, counter comments.IssueCounter, log logger.Logger) *CountCommentsUseCase {
	return &CountCommentsUseCase{cfg: cfg, counter: counter, logger: log}
}

type CountCommentsOutput struct {
	Repo  string
	Path  string
	Count int
}

func (uc *CountCommentsUseCase) Execute(ctx context.Context, path string) (*CountCommentsOutput, error) {
	path = strings.TrimSpace(path)
	if path == "" || !strings.HasPrefix(path, "/") {
		return nil, apperror.NewInvalidInput("'path' must be an absolute page path", nil)
	}

	repo := uc.cfg.Repo()
	count, err := uc.counter.CountComments(ctx, repo, path)
	if err != nil {
		uc.logger.Error("Count comments failed", err, zap.String("repo", repo), zap.String("path", path))
		return nil, apperror.NewUpstream("cannot read comments from GitHub", err)
	}

	return &CountCommentsOutput{Repo: repo, Path: path, Count: count}, nil
}
