package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/feichai0017/document-qa/api/handlers"
	"github.com/feichai0017/document-qa/api/middleware"
	"github.com/feichai0017/document-qa/pkg/logger"
)

// SetupRoutes 配置所有路由
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, log logger.Logger) {
	// 全局中间件
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(log.Named("http")))
	r.Use(middleware.CORS())

	r.GET("/health", h.QA.Health)

	r.POST("/upload", h.Document.Upload)
	r.POST("/ask", h.QA.Ask)

	history := r.Group("/history")
	{
		history.GET("", h.QA.GetHistory)
		history.DELETE("/clear", h.QA.ClearHistory)
	}
}
