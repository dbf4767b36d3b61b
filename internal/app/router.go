package app

import (
	"skill_insight_backend/docs"
	"skill_insight_backend/internal/config"
	"skill_insight_backend/internal/middleware"
	"skill_insight_backend/internal/model"

	"skill_insight_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需令牌)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.account))
	{
		// 评测机提交接口
		a.registerGraderRoutes(authGroup, c)

		// 查询类接口
		a.registerReaderRoutes(authGroup, c)

		// 管理员相关接口
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/token", c.auth.IssueToken)
	}
}

func (a *App) registerGraderRoutes(rg *gin.RouterGroup, c *controllers) {
	grader := rg.Group("/")
	grader.Use(middleware.RoleMiddleware(model.RoleGrader))
	{
		grader.POST("/submissions", c.submission.Submit)
	}
}

func (a *App) registerReaderRoutes(rg *gin.RouterGroup, c *controllers) {
	reader := rg.Group("/")
	reader.Use(middleware.RoleMiddleware(model.RoleReader, model.RoleGrader))
	{
		// 学习者画像
		learners := reader.Group("/learners/:learnerId")
		{
			learners.GET("/sessions", c.learner.GetSessions)
			learners.GET("/fingerprint", c.learner.GetFingerprint)
			learners.GET("/gaps", c.learner.GetGaps)
			learners.GET("/recommendations", c.learner.GetRecommendations)
			learners.GET("/report", c.learner.GetReport)
			learners.GET("/readiness", c.learner.GetReadiness)
			learners.GET("/progress", c.learner.GetProgress)
		}

		// 目标画像只读接口
		reader.GET("/profiles", c.profile.List)
		reader.GET("/profiles/:name", c.profile.Get)

		// 实时反馈推送，鉴权经 ?token= 完成
		reader.GET("/feed/ws", c.feed.Connect)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/")
	admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.PUT("/profiles/:name", c.profile.Upsert)
		admin.DELETE("/profiles/:name", c.profile.Delete)
		admin.POST("/accounts", c.account.Create)
		admin.POST("/learners/:learnerId/report/archive", c.learner.ArchiveReport)
	}
}
