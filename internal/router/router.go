package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bcexpress/tracking-api/internal/authz"
	"github.com/bcexpress/tracking-api/internal/cache"
	"github.com/bcexpress/tracking-api/internal/config"
	adminhandlers "github.com/bcexpress/tracking-api/internal/http/handlers/admin"
	courierhandlers "github.com/bcexpress/tracking-api/internal/http/handlers/courier"
	publichandlers "github.com/bcexpress/tracking-api/internal/http/handlers/public"
	"github.com/bcexpress/tracking-api/internal/http/response"
	"github.com/bcexpress/tracking-api/internal/logger"
	"github.com/bcexpress/tracking-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middlewares and the API route tree.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	courierHandler := courierhandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bce"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// Proof-of-delivery photos are served straight from disk.
	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	r.Static("/uploads", uploadDir)

	apiV1 := r.Group("/api/v1")
	{
		public := apiV1.Group("/public")
		{
			public.GET("/track/:awb", publicHandler.TrackShipment)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
			public.POST("/whatsapp/webhook", publicHandler.WhatsAppWebhook)
		}

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), adminHandler.Login)
		}

		courier := apiV1.Group("/courier")
		courier.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			courier.POST("/shipments/update", courierHandler.UpdateStatus)
			courier.POST("/shipments/scan", courierHandler.Scan)
			courier.POST("/upload", courierHandler.UploadProofOfDelivery)
		}

		admin := apiV1.Group("/admin")
		{
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/bookings", adminHandler.ListBookings)
				authorized.GET("/bookings/by-awb/:awb", adminHandler.GetBookingByAWB)
				authorized.POST("/bookings/:id/verify", adminHandler.VerifyBooking)
				authorized.POST("/bookings/:id/reject", adminHandler.RejectBooking)
				authorized.GET("/shipments/:awb/history", adminHandler.GetShipmentHistory)
				authorized.PUT("/password", adminHandler.UpdatePassword)
				authorized.GET("/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildPermissionCatalog(r))
				})
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type permissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildPermissionCatalog lists every guarded admin route as a grantable
// permission, derived from the live route table so it never drifts.
func buildPermissionCatalog(engine *gin.Engine) []permissionCatalogItem {
	if engine == nil {
		return []permissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]permissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, permissionCatalogItem{
			Module:     derivePermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func derivePermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}
