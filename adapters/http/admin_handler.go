package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	searchlogUC "github.com/khoahotran/notion-blog/internal/application/usecase/searchlog"
	"github.com/khoahotran/notion-blog/pkg/apperror"
	"github.com/khoahotran/notion-blog/pkg/logger"
)

type AdminHandler struct {
	listSearchLogsUseCase *searchlogUC.ListSearchLogsUseCase
	logger                logger.Logger
}

func NewAdminHandler(listUC *searchlogUC.ListSearchLogsUseCase, log logger.Logger) *AdminHandler {
	return &AdminHandler{listSearchLogsUseCase: listUC, logger: log}
}

func (h *AdminHandler) ListSearchLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("'limit' must be an integer", err))
		return
	}

	subject, ok := GetSubjectFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("missing admin subject", nil))
		return
	}

	entries, err := h.listSearchLogsUseCase.Execute(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}

	h.logger.Info("Admin listed search logs", zap.String("subject", subject), zap.Int("count", len(entries)))

	dtos := make([]SearchLogDTO, len(entries))
	for i, e := range entries {
		dtos[i] = ToSearchLogDTO(e)
	}
	c.JSON(http.StatusOK, dtos)
}
