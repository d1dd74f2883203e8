package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"teesheet/internal/admin"
	"teesheet/internal/auth"
	"teesheet/internal/booking"
	"teesheet/internal/config"
	"teesheet/internal/user"
)

// Services are the domain services the HTTP layer is wired to.
type Services struct {
	Tokens   *auth.Signer
	Users    user.Service
	Bookings booking.Service
	Admin    admin.Service
	Contact  ContactSender
}

type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
}

func New(cfg *config.Config, svc Services) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		RequestLoggingMiddleware(),
		SecurityHeadersMiddleware(),
		MetricsMiddleware(),
		RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.RateLimitBurst),
	)

	userHandler := user.NewHandler(svc.Users, cfg.IsProduction())
	bookingHandler := booking.NewHandler(svc.Bookings)
	adminHandler := admin.NewHandler(svc.Admin, svc.Users)

	authMiddleware := auth.AuthMiddleware(svc.Tokens)
	activeMiddleware := auth.RequireActive(svc.Users.Account)
	adminMiddleware := auth.RequireRole(svc.Users.Account, auth.RoleAdmin)

	api := router.Group("/api")
	{
		api.GET("/health", Health)
		api.POST("/contact", Contact(svc.Contact, cfg.EmailTo))
		api.GET("/courses", bookingHandler.Courses)
		api.GET("/bookings/slots", bookingHandler.Slots)
	}

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", userHandler.Register)
		authRoutes.POST("/login", userHandler.Login)
		authRoutes.POST("/logout", userHandler.Logout)
		authRoutes.POST("/refresh", userHandler.RefreshToken)
		authRoutes.GET("/me", authMiddleware, userHandler.Me)
	}

	bookings := api.Group("/bookings")
	bookings.Use(authMiddleware, activeMiddleware)
	{
		bookings.POST("", bookingHandler.Create)
		bookings.GET("/mine", bookingHandler.Mine)
		bookings.GET("/day", bookingHandler.Day)
		bookings.DELETE("/:id", bookingHandler.Cancel)
	}

	adminRoutes := api.Group("/admin")
	adminRoutes.Use(authMiddleware, adminMiddleware)
	{
		adminRoutes.GET("/users", adminHandler.ListUsers)
		adminRoutes.PATCH("/users/:id/role", adminHandler.UpdateRole)
		adminRoutes.PATCH("/users/:id/active", adminHandler.SetActive)
		adminRoutes.GET("/bookings", bookingHandler.AdminList)
		adminRoutes.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)
		adminRoutes.GET("/stats", adminHandler.Stats)
	}

	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		config: cfg,
	}
}

// Handler returns the router wrapped in CORS handling for the frontend origin.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{s.config.FrontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
	}).Handler(s.router)
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.Handler(),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
