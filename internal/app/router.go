package app

import (
	"golf_practice_backend/docs"
	"golf_practice_backend/internal/config"
	"golf_practice_backend/internal/middleware"
	"golf_practice_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 练习场次
		authGroup.GET("/sessions", c.session.List)
		authGroup.POST("/sessions", c.session.Create)
		authGroup.GET("/sessions/stats", c.session.Stats)
		authGroup.GET("/sessions/:id", c.session.Get)
		authGroup.DELETE("/sessions/:id", c.session.Delete)

		// 数据导入导出
		authGroup.GET("/data/export", c.data.Export)
		authGroup.POST("/data/export/archive", c.data.ExportArchive)
		authGroup.POST("/data/import", c.data.Import)
	}
}
