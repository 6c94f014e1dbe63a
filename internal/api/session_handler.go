package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"replog/workout-app/internal/service"
	"replog/workout-app/internal/session"
)

// SessionHandler drives the in-memory workout session state machine
// over HTTP. Every mutating endpoint returns the updated session
// snapshot so the client never has to re-fetch.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs for API ---

// AddExercisesRequest carries the exercises picked from the catalog
// browser to append to the active session.
type AddExercisesRequest struct {
	Exercises []struct {
		Name        string `json:"name" binding:"required"`
		MuscleGroup string `json:"muscle_group"`
		GifURL      string `json:"gif_url"`
	} `json:"exercises" binding:"required,min=1,dive"`
}

// UpdateSetRequest sets reps or weight on one set row. Negative values
// are clamped to zero, matching the "invalid parse becomes 0" contract.
type UpdateSetRequest struct {
	Field string  `json:"field" binding:"required,oneof=reps weight"`
	Value float64 `json:"value"`
}

// --- Handler Methods ---

// StartSession begins a workout session for the user. Starting while a
// session is already active returns the existing one unchanged.
func (h *SessionHandler) StartSession(c *gin.Context) {
	authID, err := getAuthIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	snapshot, started := h.sessionService.Start(authID)
	status := http.StatusOK
	if started {
		status = http.StatusCreated
	}
	c.JSON(status, snapshot)
}

// GetSession returns the current session snapshot.
func (h *SessionHandler) GetSession(c *gin.Context) {
	authID, err := getAuthIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	snapshot, err := h.sessionService.Get(authID)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// AddExercises appends exercises to the active session, each seeded
// with one zeroed set.
func (h *SessionHandler) AddExercises(c *gin.Context) {
	authID, err := getAuthIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req AddExercisesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	items := make([]session.NewExercise, len(req.Exercises))
	for i, ex := range req.Exercises {
		items[i] = session.NewExercise{
			Name:        ex.Name,
			MuscleGroup: ex.MuscleGroup,
			GifURL:      ex.GifURL,
		}
	}

	snapshot, err := h.sessionService.AddExercises(authID, items)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// RemoveExercise removes one exercise; unknown ids are a no-op.
func (h *SessionHandler) RemoveExercise(c *gin.Context) {
	authID, err := getAuthIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	snapshot, err := h.sessionService.RemoveExercise(authID, c.Param("exerciseId"))
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// AddSet appends a zeroed set row to an exercise.
func (h *SessionHandler) AddSet(c *gin.Context) {
	authID, err := getAuthIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	snapshot, err := h.sessionService.AddSet(authID, c.Param("exerciseId"))
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// UpdateSet writes reps or weight on a set row.
func (h *SessionHandler) UpdateSet(c *gin.Context) {
	authID, err := getAuthIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if req.Value < 0 {
		req.Value = 0
	}

	snapshot, err := h.sessionService.UpdateSet(
		authID,
		c.Param("exerciseId"),
		c.Param("setId"),
		session.SetField(req.Field),
		req.Value,
	)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// RemoveSet removes a set row. An exercise may be left with zero sets.
func (h *SessionHandler) RemoveSet(c *gin.Context) {
	authID, err := getAuthIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	snapshot, err := h.sessionService.RemoveSet(authID, c.Param("exerciseId"), c.Param("setId"))
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// EndSession saves the session through the persistence gateway. On a
// failed save the session stays active so the user can retry; on
// success it is cleared.
func (h *SessionHandler) EndSession(c *gin.Context) {
	authID, err := getAuthIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	workout, warning, durationSeconds, err := h.sessionService.End(c.Request.Context(), authID)
	if err != nil {
		if errors.Is(err, session.ErrNoActiveSession) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			// Session retained; client may call end again.
			abortWithError(c, http.StatusInternalServerError, "Failed to save workout")
		}
		return
	}

	body := gin.H{
		"success":          true,
		"workout":          workout,
		"duration_seconds": durationSeconds,
	}
	if warning != "" {
		body["warning"] = warning
	} else {
		body["message"] = "Workout saved successfully"
	}
	c.JSON(http.StatusOK, body)
}

// DiscardSession drops the active session without saving.
func (h *SessionHandler) DiscardSession(c *gin.Context) {
	authID, err := getAuthIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	h.sessionService.Discard(authID)
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) respondSessionError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrNoActiveSession) {
		abortWithError(c, http.StatusNotFound, err.Error())
		return
	}
	abortWithError(c, http.StatusInternalServerError, "An unexpected session error occurred")
}
