package router

import (
	"fmt"
	"strings"

	"github.com/parcel-next/internal/cache"
	"github.com/parcel-next/internal/config"
	"github.com/parcel-next/internal/constants"
	adminhandlers "github.com/parcel-next/internal/http/handlers/admin"
	publichandlers "github.com/parcel-next/internal/http/handlers/public"
	"github.com/parcel-next/internal/logger"
	"github.com/parcel-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}
		apiV1.GET("/track/:trackingId", publicHandler.TrackParcel)
		apiV1.POST("/contact", publicHandler.SubmitContactMessage)

		// 登录后的接口（按角色授权）
		authorized := apiV1.Group("")
		authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), RBACMiddleware(c.AuthzService))
		{
			authorized.POST("/auth/change-password", publicHandler.ChangePassword)

			authorized.GET("/parcels/me", publicHandler.GetMyParcels)
			authorized.GET("/parcels/incoming", publicHandler.IncomingParcels)
			authorized.GET("/parcels/delivered", publicHandler.DeliveredParcels)
			authorized.GET("/parcels/:id", publicHandler.GetParcelByID)
			authorized.POST("/parcels", publicHandler.CreateParcel)
			authorized.PATCH("/parcels/:id/cancel", publicHandler.CancelParcel)
			authorized.PATCH("/parcels/:id/accept-return", publicHandler.AcceptReturnParcel)
			authorized.PATCH("/parcels/:id/received", publicHandler.ReceiveParcel)
			authorized.PATCH("/parcels/:id/return", publicHandler.ReturnParcel)

			// 管理员接口
			admin := authorized.Group("/admin")
			{
				admin.GET("/parcels", adminHandler.AdminListParcels)
				admin.GET("/parcels/:id", adminHandler.AdminGetParcel)
				admin.PATCH("/parcels/:id/approve", adminHandler.AdminApproveParcel)
				admin.PATCH("/parcels/:id/deliver", adminHandler.AdminDeliverParcel)
				admin.PATCH("/parcels/:id/cancel", adminHandler.AdminCancelParcel)
				admin.PATCH("/parcels/:id", adminHandler.AdminUpdateParcel)
				admin.DELETE("/parcels/:id", adminHandler.AdminDeleteParcel)

				admin.GET("/users", adminHandler.AdminListUsers)
				admin.GET("/users/:id", adminHandler.AdminGetUser)
				admin.PUT("/users/:id", adminHandler.AdminUpdateUser)
				admin.PATCH("/users/:id/block", adminHandler.AdminBlockUser)
				admin.PATCH("/users/:id/unblock", adminHandler.AdminUnblockUser)
				admin.DELETE("/users/:id", adminHandler.AdminDeleteUser)

				admin.GET("/contact-messages", adminHandler.AdminListContactMessages)
				admin.PATCH("/contact-messages/:id/resolve", adminHandler.AdminResolveContactMessage)

				admin.GET("/authz/roles", adminHandler.AdminListRoles)
				admin.DELETE("/authz/roles/:role", adminHandler.AdminDeleteRole)
				admin.GET("/authz/roles/:role/policies", adminHandler.AdminGetRolePolicies)
				admin.POST("/authz/roles/:role/policies", adminHandler.AdminGrantRolePolicy)
				admin.DELETE("/authz/roles/:role/policies", adminHandler.AdminRevokeRolePolicy)
				admin.GET("/authz/users/:id/policies", adminHandler.AdminGetUserPolicies)
				admin.PUT("/authz/users/:id/roles", adminHandler.AdminSetUserRoles)
				admin.POST("/authz/reload", adminHandler.AdminReloadPolicy)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
