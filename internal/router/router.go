package router

import (
	"net/http"
	"time"

	"z2b/config"
	_ "z2b/docs" // Swagger docs
	"z2b/internal/handler"
	"z2b/internal/middleware"
	"z2b/internal/repository"
	"z2b/internal/service"
	"z2b/internal/ws"
	"z2b/pkg/events"
	"z2b/pkg/mail"
	"z2b/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the process-wide clients the API is built on. Redis may be nil, in which case
// rate limiting stays in process.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	Store  storage.Store
	Events events.Publisher
	Mailer mail.Sender
	Redis  *redis.Client
	Hub    *ws.Hub
}

func Setup(d Deps) *gin.Engine {
	cfg := d.Config
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if d.Hub == nil {
		d.Hub = ws.NewHub()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Repositories
	profileRepo := repository.NewProfileRepository(d.DB)
	referralRepo := repository.NewReferralRepository(d.DB)
	contentRepo := repository.NewContentRepository(d.DB)
	postRepo := repository.NewPostRepository(d.DB)
	adminRepo := repository.NewAdminRepository(d.DB)
	auditRepo := repository.NewAuditLogRepository(d.DB)

	// Services
	auditSvc := service.NewAuditService(auditRepo, d.Events, d.Log)
	authSvc := service.NewAuthService(cfg, d.DB, profileRepo, referralRepo, auditSvc, d.Mailer, d.Log)
	referralSvc := service.NewReferralService(cfg, profileRepo, referralRepo, auditSvc)
	contentSvc := service.NewContentService(cfg, contentRepo, profileRepo, auditSvc)
	feedSvc := service.NewFeedService(d.DB, postRepo, profileRepo, auditSvc, d.Hub)
	adminSvc := service.NewAdminService(profileRepo, adminRepo, auditSvc, d.Hub, d.Log)
	uploadSvc := service.NewUploadService(d.Store)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, d.Log)
	meHandler := handler.NewMeHandler(authSvc, referralSvc, d.Log)
	referralHandler := handler.NewReferralHandler(referralSvc, d.Log)
	contentHandler := handler.NewContentHandler(contentSvc, d.Log)
	feedHandler := handler.NewFeedHandler(feedSvc, d.Log)
	adminHandler := handler.NewAdminHandler(adminSvc, referralSvc, feedSvc, d.Log)
	uploadHandler := handler.NewUploadHandler(uploadSvc, d.Log)

	authMw := middleware.AuthRequired(&cfg.JWT)
	optionalAuth := middleware.OptionalAuth(&cfg.JWT)
	memberMw := middleware.MemberAccess(profileRepo)
	adminMw := middleware.AdminRequired(profileRepo)
	apiLimit := middleware.RateLimit(newLimiter(d.Redis, 100, time.Minute), "api", d.Log)
	authLimit := middleware.RateLimit(newLimiter(d.Redis, 10, time.Minute), "auth", d.Log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/feed", ws.UpgradeFeedWS(&cfg.JWT, d.Hub, func(userID string) bool {
		p, err := profileRepo.GetByID(userID)
		return err == nil && service.CheckMemberAccess(p.Status).HasAccess
	}))

	api := r.Group("/api/v1")
	api.Use(apiLimit)
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authLimit, authHandler.Signup)
			authGroup.POST("/login", authLimit, authHandler.Login)
			authGroup.POST("/refresh", authLimit, authHandler.Refresh)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.GET("/user", authMw, authHandler.User)
		}

		api.POST("/referrals/clicks", referralHandler.TrackClick)

		// /me/access stays reachable for blocked members.
		api.GET("/me/access", authMw, meHandler.Access)
		me := api.Group("/me", authMw, memberMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.PATCH("/profile", meHandler.UpdateProfile)
			me.GET("/dashboard", meHandler.Dashboard)
		}

		api.GET("/content", authMw, memberMw, contentHandler.List)
		api.GET("/content/:id", optionalAuth, contentHandler.Get)

		feed := api.Group("/feed/posts")
		{
			feed.GET("", feedHandler.ListPosts)
			feed.GET("/:id/workshop", optionalAuth, feedHandler.Workshop)
			feed.GET("/:id/reactions", optionalAuth, feedHandler.Reactions)
			feed.POST("/:id/reactions", authMw, memberMw, feedHandler.React)
			feed.GET("/:id/comments", optionalAuth, feedHandler.Comments)
			feed.POST("/:id/comments", authMw, memberMw, feedHandler.Comment)
		}

		admin := api.Group("/admin", authMw, memberMw, adminMw)
		{
			admin.GET("/members", adminHandler.ListMembers)
			admin.GET("/members/export", adminHandler.ExportMembers)
			admin.POST("/members/:id/actions", adminHandler.MemberAction)
			admin.GET("/members/:id/history", adminHandler.MemberHistory)

			admin.GET("/content", contentHandler.AdminList)
			admin.POST("/content", contentHandler.Create)
			admin.PATCH("/content/:id/visibility", contentHandler.ToggleVisibility)
			admin.DELETE("/content/:id", contentHandler.Delete)

			admin.POST("/workshops", adminHandler.CreateWorkshop)
			admin.POST("/uploads", uploadHandler.Upload)

			admin.GET("/referrals", adminHandler.Referrals)
			admin.GET("/referrals/export", adminHandler.ExportReferrals)
			admin.GET("/referrals/:code/tree", adminHandler.ReferralTree)
		}
	}

	return r
}

func newLimiter(client *redis.Client, limit int, window time.Duration) middleware.Limiter {
	if client != nil {
		return middleware.NewRedisRateLimiter(client, limit, window)
	}
	return middleware.NewInMemoryRateLimiter(limit, window)
}

