package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"replog/workout-app/internal/service"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs for API ---

// SetDetailRequest is the literal reps/weight of one set. It is
// accepted for audit purposes but not stored per-set; only the
// flattened aggregate on the parent exercise record persists.
type SetDetailRequest struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// WorkoutExerciseRequest is one flattened exercise record in a save body.
type WorkoutExerciseRequest struct {
	ExerciseName string             `json:"exercise_name" binding:"required"`
	MuscleGroup  string             `json:"muscle_group"`
	Sets         int                `json:"sets" binding:"min=0"`
	Reps         int                `json:"reps" binding:"min=0"`
	Weight       float64            `json:"weight" binding:"min=0"`
	SetsDetail   []SetDetailRequest `json:"sets_detail,omitempty"`
}

// SaveWorkoutRequest defines the expected JSON for saving a workout.
// Pointer fields distinguish "absent" from a legitimate zero.
type SaveWorkoutRequest struct {
	StartedAt       *time.Time               `json:"started_at" binding:"required"`
	EndedAt         *time.Time               `json:"ended_at" binding:"required"`
	DurationSeconds *int                     `json:"duration_seconds" binding:"required"`
	TotalExercises  *int                     `json:"total_exercises" binding:"required"`
	Exercises       []WorkoutExerciseRequest `json:"exercises,omitempty"`
}

// --- Handler Methods ---

// SaveWorkout handles POST /workouts. A child-row batch failure still
// returns 201 with a warning field; the parent workout persists.
func (h *WorkoutHandler) SaveWorkout(c *gin.Context) {
	var req SaveWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	authID, err := getAuthIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	input := service.SaveWorkoutInput{
		UserID:          authID,
		StartedAt:       *req.StartedAt,
		EndedAt:         *req.EndedAt,
		DurationSeconds: *req.DurationSeconds,
		TotalExercises:  *req.TotalExercises,
	}
	for _, ex := range req.Exercises {
		input.Exercises = append(input.Exercises, service.WorkoutExerciseInput{
			ExerciseName: ex.ExerciseName,
			MuscleGroup:  ex.MuscleGroup,
			Sets:         ex.Sets,
			Reps:         ex.Reps,
			Weight:       ex.Weight,
		})
	}

	workout, warning, err := h.workoutService.Save(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWorkoutInput) {
			abortWithError(c, http.StatusBadRequest, "Missing required fields")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save workout")
		}
		return
	}

	body := gin.H{
		"success": true,
		"workout": workout,
	}
	if warning != "" {
		body["warning"] = warning
	} else {
		body["message"] = "Workout saved successfully"
	}
	c.JSON(http.StatusCreated, body)
}

// ListWorkouts handles GET /workouts?limit=&offset= and returns the
// user's workouts newest first, each with its exercise rows.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	authID, err := getAuthIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		offset = 0
	}

	workouts, count, err := h.workoutService.List(c.Request.Context(), authID, limit, offset)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch workouts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"workouts": workouts,
		"count":    count,
	})
}
