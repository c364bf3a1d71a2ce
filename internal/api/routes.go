package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/api/handlers"
	"github.com/repstack/repstack/internal/api/middleware"
	"github.com/repstack/repstack/internal/config"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Health      *handlers.HealthHandler
	MuscleGroup *handlers.MuscleGroupHandler
	Equipment   *handlers.EquipmentHandler
	Exercise    *handlers.ExerciseHandler
	Workout     *handlers.WorkoutHandler
	Stats       *handlers.StatsHandler
}

// SetupRouter configures the Gin router with all routes and middleware
func SetupRouter(h *Handlers, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(requestid.New())
	r.Use(middleware.Logger(logger))

	corsOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if cfg.IsProduction() {
		corsOrigins = cfg.Server.CORSOrigins
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (no auth required)
	r.GET("/health", h.Health.Health)

	// API v1 - everything below requires a bearer token
	v1 := r.Group("/v1")
	v1.Use(middleware.JWTAuth(cfg.Auth.JWTSecret))
	{
		muscleGroups := v1.Group("/muscle-groups")
		{
			muscleGroups.GET("", h.MuscleGroup.List)
			muscleGroups.POST("", h.MuscleGroup.Create)
			muscleGroups.GET("/:id", h.MuscleGroup.Get)
			muscleGroups.PUT("/:id", h.MuscleGroup.Update)
			muscleGroups.DELETE("/:id", h.MuscleGroup.Delete)
		}

		equipment := v1.Group("/equipment")
		{
			equipment.GET("", h.Equipment.List)
			equipment.POST("", h.Equipment.Create)
			equipment.GET("/:id", h.Equipment.Get)
			equipment.PUT("/:id", h.Equipment.Update)
			equipment.DELETE("/:id", h.Equipment.Delete)
		}

		exercises := v1.Group("/exercises")
		{
			exercises.GET("", h.Exercise.List)
			exercises.POST("", h.Exercise.Create)
			exercises.GET("/:id", h.Exercise.Get)
			exercises.PUT("/:id", h.Exercise.Update)
			exercises.DELETE("/:id", h.Exercise.Delete)
		}

		workouts := v1.Group("/workouts")
		{
			workouts.GET("", h.Workout.List)
			workouts.POST("", h.Workout.Create)
			workouts.GET("/:id", h.Workout.Get)
			workouts.PUT("/:id", h.Workout.Update)
			workouts.DELETE("/:id", h.Workout.Delete)
		}

		stats := v1.Group("/stats")
		{
			stats.GET("/weekly-volume", h.Stats.WeeklyVolume)
			stats.GET("/top-exercises", h.Stats.TopExercises)
		}
	}

	return r
}
