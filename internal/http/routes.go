package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/config"
	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/http/handlers"
	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/http/middleware"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db, version)

	// health checks bypass rate limiting
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	apiWindow := time.Duration(cfg.APIRateWindow) * time.Second
	authWindow := time.Duration(cfg.AuthRateWindow) * time.Second

	api := r.Group("/api")
	api.Use(middleware.Metrics())
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiWindow))

	// credential endpoints get a tighter window
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, authWindow)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authRL, middleware.OptionalJWT(), h.Register)
		auth.POST("/login", authRL, h.Login)
		auth.GET("/me", middleware.JWT(), h.Me)
		auth.GET("/users", middleware.JWT(), middleware.RequireAdmin(), h.ListUsers)
		auth.DELETE("/users/:id", middleware.JWT(), middleware.RequireAdmin(), h.DeleteUser)
	}

	tasks := api.Group("/tasks")
	tasks.Use(middleware.JWT())
	{
		tasks.POST("", h.CreateTask)
		tasks.GET("", h.ListTasks)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
	}
}
