package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/notion-blog/adapters/web/utterances"
	commentsUC "github.com/khoahotran/notion-blog/internal/application/usecase/comments"
	"github.com/khoahotran/notion-blog/internal/domain/comments"
	"github.com/khoahotran/notion-blog/pkg/apperror"
)

type CommentsHandler struct {
	cfg                  comments.Config
	countCommentsUseCase *commentsUC.CountCommentsUseCase
}

func NewCommentsHandler(cfg comments.Config, countUC *commentsUC.CountCommentsUseCase) *CommentsHandler {
	return &CommentsHandler{cfg: cfg, countCommentsUseCase: countUC}
}

// Widget renders the mounted comments container for the requested theme.
func (h *CommentsHandler) Widget(c *gin.Context) {
	dark, err := strconv.ParseBool(c.DefaultQuery("dark", "false"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("'dark' must be a boolean", err))
		return
	}

	w := utterances.NewWidget(h.cfg, utterances.NewContainer(), dark)
	w.Mount()

	fragment, err := w.HTML()
	if err != nil {
		c.Error(apperror.NewInternal("failed to render comments widget", err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fragment))
}

func (h *CommentsHandler) Count(c *gin.Context) {
	if h.countCommentsUseCase == nil {
		c.Error(apperror.NewNotFound("comment counter", "github"))
		return
	}

	out, err := h.countCommentsUseCase.Execute(c.Request.Context(), c.Query("path"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, CommentCountDTO{Repo: out.Repo, Path: out.Path, Count: out.Count})
}
