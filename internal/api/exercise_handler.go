package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"replog/workout-app/internal/domain"
	"replog/workout-app/internal/service"
)

// ExerciseHandler holds the catalog service dependency.
type ExerciseHandler struct {
	catalogService service.CatalogService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(catalogService service.CatalogService) *ExerciseHandler {
	return &ExerciseHandler{catalogService: catalogService}
}

// --- DTOs for API ---

// ExerciseListResponse wraps the normalized catalog results.
type ExerciseListResponse struct {
	Success bool                     `json:"success"`
	Data    []domain.CatalogExercise `json:"data"`
	Error   string                   `json:"error,omitempty"`
}

// --- Handler Methods ---

// SearchExercises handles GET /exercises?search=<muscleGroup>. The
// search parameter is a muscle group tag; results come straight from
// the remote catalog, normalized.
func (h *ExerciseHandler) SearchExercises(c *gin.Context) {
	search := c.Query("search")
	if search == "" {
		c.JSON(http.StatusBadRequest, ExerciseListResponse{
			Success: false,
			Error:   "Missing search parameter",
			Data:    []domain.CatalogExercise{},
		})
		return
	}

	exercises, err := h.catalogService.SearchByMuscleGroup(c.Request.Context(), search)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrMissingMuscleGroup) {
			status = http.StatusBadRequest
		}
		c.JSON(status, ExerciseListResponse{
			Success: false,
			Error:   err.Error(),
			Data:    []domain.CatalogExercise{},
		})
		return
	}

	c.JSON(http.StatusOK, ExerciseListResponse{
		Success: true,
		Data:    exercises,
	})
}
