package app

import (
	"predictthis_backend/docs"
	"predictthis_backend/internal/config"
	"predictthis_backend/internal/middleware"
	"predictthis_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes: quiz consumption and participant submissions.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/admin/login", c.auth.Login)

		public.GET("/quizzes", c.quiz.ListQuizzes)
		public.GET("/quizzes/:id", c.quiz.GetQuiz)
		public.POST("/quizzes/:id/submissions", c.quiz.SubmitAnswers)
		public.GET("/quizzes/:id/leaderboard", c.quiz.Leaderboard)
	}

	// Admin routes: authoring, completion and answer validation.
	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.POST("/quizzes", c.quiz.CreateQuiz)
		admin.POST("/quizzes/:id/complete", c.quiz.CompleteQuiz)

		validation := admin.Group("/validation")
		{
			validation.POST("/search", c.validation.Search)
			validation.POST("/validate", c.validation.Validate)
			validation.POST("/ai-validate", c.validation.ValidateWithAI)
		}
	}
}
