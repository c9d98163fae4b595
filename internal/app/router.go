package app

import (
	"mathcoins_backend/docs"
	"mathcoins_backend/internal/config"
	"mathcoins_backend/internal/middleware"
	"mathcoins_backend/internal/model"
	"mathcoins_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
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
		authGroup.GET("/users/stats", c.user.GetUserStats)
		authGroup.POST("/user/avatar/upload", c.user.UploadAvatar)

		// 算术游戏
		authGroup.GET("/math/question", c.game.GetQuestion)
		authGroup.POST("/math/answer", c.game.SubmitAnswer)

		// 提现：创建对所有登录用户开放，审阅仅限管理员
		authGroup.POST("/withdrawals", c.withdrawal.Create)

		adminOnly := authGroup.Group("/")
		adminOnly.Use(middleware.RoleMiddleware(model.Admin))
		{
			adminOnly.GET("/withdrawals", c.withdrawal.List)
			adminOnly.POST("/withdrawals/:id/approve", c.withdrawal.Approve)
			adminOnly.POST("/withdrawals/:id/deny", c.withdrawal.Deny)

			adminOnly.GET("/settings", c.setting.GetSettings)
			adminOnly.PUT("/settings", c.setting.UpdateSettings)

			adminOnly.GET("/admin/users", c.user.GetUsers)
		}
	}
}
