package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gracechapel/content-api/internal/api/handler"
	"github.com/gracechapel/content-api/internal/api/middleware"
	"github.com/gracechapel/content-api/internal/core/domain"
	"github.com/gracechapel/content-api/internal/core/service"
	"github.com/gracechapel/content-api/internal/infrastructure/config"
	mongodb "github.com/gracechapel/content-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gracechapel/content-api/internal/infrastructure/db/redis"
	"github.com/gracechapel/content-api/internal/infrastructure/email"
	"github.com/gracechapel/content-api/internal/session"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("church_content"))

	// --- Repositories ---
	postRepo := mongodb.NewPostRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	authRepo := mongodb.NewAuthRepository(db)
	subscriberRepo := mongodb.NewSubscriberRepository(db)
	receiptRepo := mongodb.NewReceiptRepository(db)
	sessions := redisdb.NewSessionStore(rdb)
	announceGuard := redisdb.NewAnnounceGuard(rdb)

	// --- Email transport ---
	var provider email.Provider
	switch cfg.Mail.Provider {
	case "brevo":
		provider = email.NewBrevoProvider(cfg.Mail.BrevoAPIKey, cfg.Mail.FromAddr, cfg.Mail.FromName, log)
	default:
		provider = email.NewMockProvider(log)
	}
	sender := email.NewSender(provider, cfg.Mail.SubjectPrefix, log)

	// --- Services ---
	identityCache := session.NewCache(cfg.CacheTTL)
	authService := service.NewAuthService(authRepo, adminRepo, sessions, identityCache, cfg.JWTSecret, cfg.SessionTTL, log)
	postService := service.NewPostService(postRepo, log)
	subscriberService := service.NewSubscriberService(subscriberRepo, log)
	notifyService := service.NewNotifyService(subscriberRepo, receiptRepo, announceGuard, sender, cfg.FanoutWorkers, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService, notifyService)
	subscriberHandler := handler.NewSubscriberHandler(subscriberService)
	receiptHandler := handler.NewReceiptHandler(receiptRepo)
	healthHandler := handler.NewHealthHandler(db, rdb)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	v1 := e.Group("/v1")

	// --- Public routes ---
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/posts", postHandler.Feed)
	v1.POST("/subscribers", subscriberHandler.Subscribe)
	v1.POST("/subscribers/unsubscribe", subscriberHandler.Unsubscribe)

	// --- Back office: every route passes the authorization gate ---
	admin := v1.Group("/admin", middleware.Auth(authService), middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin))

	admin.POST("/auth/logout", authHandler.Logout)
	admin.GET("/auth/me", authHandler.Me)
	admin.POST("/auth/register", authHandler.Register, middleware.RBAC(domain.RoleSuperAdmin))

	admin.POST("/posts", postHandler.Create)
	admin.GET("/posts", postHandler.List)
	admin.GET("/posts/:id", postHandler.Get)
	admin.PUT("/posts/:id", postHandler.Update)
	admin.DELETE("/posts/:id", postHandler.Delete)
	admin.POST("/posts/promote-due", postHandler.PromoteDue)

	admin.GET("/subscribers", subscriberHandler.ListActive)
	admin.GET("/receipts", receiptHandler.List)

	return e
}
