package service

import (
	"context"
	"time"

	"replog/workout-app/internal/domain"
	"replog/workout-app/internal/session"
)

// --- Service Interface ---

// SessionService drives a user's in-memory workout session and hands
// its final snapshot to the persistence gateway when the workout ends.
type SessionService interface {
	Start(userID string) (session.Session, bool)
	Get(userID string) (session.Session, error)
	AddExercises(userID string, items []session.NewExercise) (session.Session, error)
	RemoveExercise(userID, exerciseID string) (session.Session, error)
	AddSet(userID, exerciseID string) (session.Session, error)
	UpdateSet(userID, exerciseID, setID string, field session.SetField, value float64) (session.Session, error)
	RemoveSet(userID, exerciseID, setID string) (session.Session, error)
	// End saves the session through the gateway. On success the session
	// is discarded; on failure it stays active and untouched so the
	// user can retry.
	End(ctx context.Context, userID string) (workout *domain.Workout, warning string, durationSeconds int, err error)
	Discard(userID string)
}

// --- Service Implementation ---

type sessionService struct {
	manager        *session.Manager
	workoutService WorkoutService
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(manager *session.Manager, workoutService WorkoutService) SessionService {
	return &sessionService{
		manager:        manager,
		workoutService: workoutService,
	}
}

func (s *sessionService) Start(userID string) (session.Session, bool) {
	return s.manager.Start(userID)
}

func (s *sessionService) Get(userID string) (session.Session, error) {
	return s.manager.Get(userID)
}

func (s *sessionService) AddExercises(userID string, items []session.NewExercise) (session.Session, error) {
	return s.manager.AddExercises(userID, items)
}

func (s *sessionService) RemoveExercise(userID, exerciseID string) (session.Session, error) {
	return s.manager.RemoveExercise(userID, exerciseID)
}

func (s *sessionService) AddSet(userID, exerciseID string) (session.Session, error) {
	return s.manager.AddSet(userID, exerciseID)
}

func (s *sessionService) UpdateSet(userID, exerciseID, setID string, field session.SetField, value float64) (session.Session, error) {
	return s.manager.UpdateSet(userID, exerciseID, setID, field, value)
}

func (s *sessionService) RemoveSet(userID, exerciseID, setID string) (session.Session, error) {
	return s.manager.RemoveSet(userID, exerciseID, setID)
}

// End snapshots the active session, saves it and clears it on success.
// The save itself is the only operation here with an external effect.
func (s *sessionService) End(ctx context.Context, userID string) (*domain.Workout, string, int, error) {
	payload, err := s.manager.BuildSavePayload(userID, time.Now().UTC())
	if err != nil {
		return nil, "", 0, err
	}

	input := SaveWorkoutInput{
		UserID:          userID,
		StartedAt:       payload.StartedAt,
		EndedAt:         payload.EndedAt,
		DurationSeconds: payload.DurationSeconds,
		TotalExercises:  payload.TotalExercises,
	}
	for _, ex := range payload.Exercises {
		input.Exercises = append(input.Exercises, WorkoutExerciseInput{
			ExerciseName: ex.ExerciseName,
			MuscleGroup:  ex.MuscleGroup,
			Sets:         ex.Sets,
			Reps:         ex.Reps,
			Weight:       ex.Weight,
		})
	}

	workout, warning, err := s.workoutService.Save(ctx, input)
	if err != nil {
		// Session stays active with its data intact; the caller may retry.
		return nil, "", 0, err
	}

	s.manager.Discard(userID)
	return workout, warning, payload.DurationSeconds, nil
}

func (s *sessionService) Discard(userID string) {
	s.manager.Discard(userID)
}
