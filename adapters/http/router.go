package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/notion-blog/pkg/logger"
)

type RouterDeps struct {
	Search   *SearchHandler
	Comments *CommentsHandler
	// Admin and AdminAuth are optional; admin routes are skipped without them.
	Admin          *AdminHandler
	AdminAuth      gin.HandlerFunc
	MetricsHandler http.Handler
	Logger         logger.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(deps.Logger), ErrorMiddleware(deps.Logger))

	if deps.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.POST("/search-notion", deps.Search.SearchNotion)

		commentsGroup := api.Group("/comments")
		{
			commentsGroup.GET("/widget", deps.Comments.Widget)
			commentsGroup.GET("/count", deps.Comments.Count)
		}

		if deps.Admin != nil && deps.AdminAuth != nil {
			admin := api.Group("/admin")
			admin.Use(deps.AdminAuth)
			{
				admin.GET("/search-logs", deps.Admin.ListSearchLogs)
			}
		}
	}

	return router
}
