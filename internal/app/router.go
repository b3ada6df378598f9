package app

import (
	"renova_backend/docs"
	"renova_backend/internal/config"
	"renova_backend/internal/middleware"
	"renova_backend/internal/model"
	"renova_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerUserRoutes(router, c, cfg)
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/tracks", c.track.ListTracks)
		public.GET("/tracks/:slug", c.track.GetTrack)
	}
}

func (a *App) registerUserRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/auth/me", c.auth.Me)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.GET("/user/preferences", c.user.GetPreferences)
		authGroup.PUT("/user/preferences", c.user.SavePreferences)

		authGroup.POST("/questionnaire", c.questionnaire.Submit)
		authGroup.GET("/questionnaire/latest", c.questionnaire.Latest)
		authGroup.GET("/questionnaire/history", c.questionnaire.History)

		authGroup.GET("/tracks/:slug/today", c.track.GetTodayContent)
		authGroup.GET("/tracks/:slug/days/:day", c.track.GetDayContent)

		authGroup.POST("/tracks/:slug/activities", c.progress.CompleteActivity)
		authGroup.POST("/tracks/:slug/activities/toggle", c.progress.ToggleActivity)
		authGroup.POST("/tracks/:slug/days/complete", c.progress.CompleteDay)
		authGroup.GET("/tracks/:slug/progress", c.progress.Summary)
		authGroup.GET("/progress", c.progress.ActiveSummary)
		authGroup.GET("/achievements", c.progress.ListAchievements)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/content", c.adminContent.ListDailyContent)
		admin.POST("/content", c.adminContent.CreateDailyContent)
		admin.PUT("/content/:id", c.adminContent.UpdateDailyContent)
		admin.DELETE("/content/:id", c.adminContent.DeleteDailyContent)

		admin.GET("/rules", c.adminContent.ListRules)
		admin.POST("/rules", c.adminContent.CreateRule)
		admin.PUT("/rules/:id", c.adminContent.UpdateRule)
		admin.DELETE("/rules/:id", c.adminContent.DeleteRule)
	}
}
