package app

import (
	"sensory_sheets_backend/docs"
	"sensory_sheets_backend/internal/config"
	"sensory_sheets_backend/internal/middleware"

	"sensory_sheets_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.GET("/me", c.auth.Me)

		// 工作表生成与导出
		worksheets := authGroup.Group("/worksheets")
		{
			worksheets.POST("/mood", c.worksheet.GenerateMoodWorksheet)
			worksheets.POST("/pattern", c.worksheet.GeneratePatternWorksheet)
			worksheets.POST("/story", c.worksheet.GenerateStory)
			worksheets.POST("/preview", c.worksheet.PreviewWorksheet)
			worksheets.POST("/export", c.worksheet.ExportWorksheet)
			worksheets.POST("/story/export", c.worksheet.ExportStory)
		}
		authGroup.GET("/exports", c.worksheet.ExportHistory)

		// 自适应练习
		practice := authGroup.Group("/practice")
		{
			practice.POST("/sessions", c.practice.StartSession)
			practice.GET("/sessions/:id", c.practice.GetSession)
			practice.POST("/sessions/:id/observations", c.practice.RecordObservation)
			practice.DELETE("/sessions/:id", c.practice.EndSession)
		}
		authGroup.GET("/words/:word/chunks", c.practice.Chunks)

		// 配额与订阅
		authGroup.GET("/usage", c.usage.QuotaStatus)
		authGroup.POST("/checkout/session", c.checkout.CreateSession)
		authGroup.POST("/checkout/one-time", c.checkout.CreateOneTimeSession)
		authGroup.POST("/checkout/confirm", c.checkout.Confirm)

		// 使用分析
		authGroup.GET("/analytics/summary", c.analytics.Summary)
	}
}
