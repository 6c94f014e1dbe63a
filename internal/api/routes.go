package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"replog/workout-app/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	catalogService service.CatalogService,
	workoutService service.WorkoutService,
	sessionService service.SessionService,
) {

	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(catalogService)
	workoutHandler := NewWorkoutHandler(workoutService)
	sessionHandler := NewSessionHandler(sessionService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.GET("/google/login", authHandler.GoogleLogin)
			authGroup.GET("/google/callback", authHandler.GoogleCallback)
		}

		// The exercise browser is a read-only pass-through to the
		// remote catalog; no identity is needed to browse.
		apiV1.GET("/exercises", exerciseHandler.SearchExercises)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			// POST /api/v1/workouts
			workoutGroup.POST("", workoutHandler.SaveWorkout)
			// GET /api/v1/workouts?limit=&offset=
			workoutGroup.GET("", workoutHandler.ListWorkouts)
		}

		// --- Session Routes ---
		// The active workout session lives server-side, one per user.
		sessionGroup := protected.Group("/session")
		{
			sessionGroup.POST("/start", sessionHandler.StartSession)
			sessionGroup.GET("", sessionHandler.GetSession)
			sessionGroup.POST("/end", sessionHandler.EndSession)
			sessionGroup.DELETE("", sessionHandler.DiscardSession)

			sessionGroup.POST("/exercises", sessionHandler.AddExercises)
			sessionGroup.DELETE("/exercises/:exerciseId", sessionHandler.RemoveExercise)

			sessionGroup.POST("/exercises/:exerciseId/sets", sessionHandler.AddSet)
			sessionGroup.PATCH("/exercises/:exerciseId/sets/:setId", sessionHandler.UpdateSet)
			sessionGroup.DELETE("/exercises/:exerciseId/sets/:setId", sessionHandler.RemoveSet)
		}
	}
}
