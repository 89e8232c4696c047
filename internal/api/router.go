package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cars-g/reporting-api/internal/api/handler"
	"github.com/cars-g/reporting-api/internal/api/middleware"
	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer needs. Limiter and Uploads may be
// nil: the rate limit is then skipped and the upload route is not registered.
type Deps struct {
	ServiceName  string
	FrontendURLs []string
	Log          zerolog.Logger

	Guard   ports.AccessGuard
	Auth    ports.AuthService
	Reports ports.ReportService
	Users   ports.UserService
	Chat    ports.ChatService
	Uploads ports.UploadSigner
	Limiter ports.RateLimiter

	Mongo *mongo.Client
	Redis *redis.Client

	// Registerer receives the HTTP request metrics. Defaults to the
	// registry /metrics serves.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	// Rate limits key on the socket address, never on client-sent headers.
	e.IPExtractor = echo.ExtractIPDirect()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.FrontendURLs,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit("10M"))
	registerer := d.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "carsg_http",
		Registerer: registerer,
	}))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler(d.ServiceName)
	e.GET("/health", healthHandler.Liveness)
	if d.Mongo != nil {
		e.GET("/health/ready", handler.NewHealthDependenciesHandler(d.Mongo, d.Redis).Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	var apiMiddleware []echo.MiddlewareFunc
	if d.Limiter != nil {
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(d.Limiter, d.Log))
	}
	api := e.Group("/api", apiMiddleware...)

	requireAuth := middleware.Auth(d.Guard)
	adminOnly := middleware.Require(domain.RuleAdmin)

	authHandler := handler.NewAuthHandler(d.Auth)
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/session", authHandler.Session, middleware.Identify(d.Guard))
	authGroup.GET("/profile", authHandler.Profile, middleware.AuthAllowBanned(d.Guard))
	authGroup.PUT("/profile", authHandler.UpdateProfile, requireAuth)
	authGroup.GET("/points", authHandler.Points, middleware.AuthAllowBanned(d.Guard))

	reportHandler := handler.NewReportHandler(d.Reports)
	reports := api.Group("/reports")
	reports.GET("", reportHandler.List, requireAuth, adminOnly)
	reports.POST("", reportHandler.Create, requireAuth)
	reports.GET("/my-reports", reportHandler.ListMine, requireAuth)
	reports.GET("/assigned", reportHandler.ListAssigned, requireAuth, middleware.Require(domain.RulePatrol))
	reports.GET("/:id", reportHandler.Get, requireAuth)
	reports.PUT("/:id/status", reportHandler.UpdateStatus, requireAuth)
	reports.PUT("/:id/assign", reportHandler.Assign, requireAuth, adminOnly)
	reports.PUT("/:id/priority", reportHandler.UpdatePriority, requireAuth, adminOnly)
	reports.PUT("/:id/proof", reportHandler.AttachProof, requireAuth)

	userHandler := handler.NewUserHandler(d.Users)
	users := api.Group("/users")
	users.GET("/leaderboard", userHandler.Leaderboard)
	users.GET("", userHandler.List, requireAuth, adminOnly)
	users.GET("/:id", userHandler.Get, requireAuth)
	users.PUT("/:id/role", userHandler.UpdateRole, requireAuth, adminOnly)
	users.PUT("/:id/ban", userHandler.SetBanned, requireAuth, adminOnly)
	users.PUT("/:id/points", userHandler.AdjustPoints, requireAuth, adminOnly)
	users.GET("/:id/points/history", userHandler.PointsHistory, requireAuth)
	users.GET("/:id/stats", userHandler.Stats, requireAuth)

	chatHandler := handler.NewChatHandler(d.Chat)
	chat := api.Group("/chat")
	chat.GET("", chatHandler.List, requireAuth)
	chat.POST("", chatHandler.Send, requireAuth)
	chat.GET("/conversation/:userId", chatHandler.Conversation, requireAuth, adminOnly)
	chat.GET("/conversations", chatHandler.Conversations, requireAuth, adminOnly)
	chat.DELETE("/:messageId", chatHandler.Delete, requireAuth, adminOnly)
	chat.PUT("/:userId/read", chatHandler.MarkRead, requireAuth, adminOnly)

	if d.Uploads != nil {
		uploadHandler := handler.NewUploadHandler(d.Uploads)
		api.POST("/uploads/signature", uploadHandler.Sign, requireAuth)
	}

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			} else if v.Status >= http.StatusBadRequest {
				evt = log.Warn()
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
