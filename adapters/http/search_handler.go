package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	searchUC "github.com/khoahotran/notion-blog/internal/application/usecase/search"
	"github.com/khoahotran/notion-blog/pkg/apperror"
	"github.com/khoahotran/notion-blog/pkg/logger"
)

const searchCacheControl = "public, s-maxage=60, max-age=60, stale-while-revalidate=60"

type SearchHandler struct {
	searchUseCase *searchUC.SearchUseCase
	rootPageID    string
	logger        logger.Logger
}

func NewSearchHandler(uc *searchUC.SearchUseCase, rootPageID string, log logger.Logger) *SearchHandler {
	return &SearchHandler{
		searchUseCase: uc,
		rootPageID:    rootPageID,
		logger:        log,
	}
}

func (h *SearchHandler) SearchNotion(c *gin.Context) {
	var req SearchNotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("request body must be JSON search params", err))
		return
	}

	params := req.ToDomain()
	if params.AncestorID == "" {
		params.AncestorID = h.rootPageID
	}

	h.logger.Debug("Search request", zap.String("query", params.Query), zap.String("ancestor_id", params.AncestorID))

	results, err := h.searchUseCase.HandleSearchRequest(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Cache-Control", searchCacheControl)
	c.JSON(http.StatusOK, results)
}
