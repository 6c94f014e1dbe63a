package service

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"replog/workout-app/internal/domain"
	"replog/workout-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrInvalidWorkoutInput = errors.New("missing required workout fields")
	ErrWorkoutPersistence  = errors.New("failed to save workout")
)

// WarnPartialSave is surfaced when the workout row was written but its
// child exercise rows were not. The parent is never rolled back.
const WarnPartialSave = "Workout saved but some exercises failed to save"

// WorkoutExerciseInput is one flattened exercise record in a save
// request: set count plus a single aggregate reps/weight pair.
type WorkoutExerciseInput struct {
	ExerciseName string
	MuscleGroup  string
	Sets         int
	Reps         int
	Weight       float64
}

// SaveWorkoutInput is the payload for persisting a completed workout.
type SaveWorkoutInput struct {
	UserID          string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
	TotalExercises  int
	Exercises       []WorkoutExerciseInput
}

// --- Service Interface ---

// WorkoutService is the persistence gateway between completed sessions
// and the durable store.
type WorkoutService interface {
	// Save writes the workout row, then its child exercise rows in one
	// batch. A child-batch failure does not fail the save; it is
	// reported through the returned warning instead.
	Save(ctx context.Context, input SaveWorkoutInput) (workout *domain.Workout, warning string, err error)
	// List returns a page of the user's workouts, newest first, each
	// joined with its exercise rows.
	List(ctx context.Context, userID string, limit, offset int) ([]domain.WorkoutWithExercises, int, error)
}

// --- Service Implementation ---

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

// Save persists the workout. The parent insert and the child batch are
// separate writes with no shared transaction: if the parent fails
// nothing else is attempted, and if the children fail the parent stays.
func (s *workoutService) Save(ctx context.Context, input SaveWorkoutInput) (*domain.Workout, string, error) {
	if input.UserID == "" {
		return nil, "", ErrInvalidWorkoutInput
	}
	if input.StartedAt.IsZero() || input.EndedAt.IsZero() {
		return nil, "", ErrInvalidWorkoutInput
	}

	workout := &domain.Workout{
		UserID:          input.UserID,
		StartedAt:       input.StartedAt,
		EndedAt:         input.EndedAt,
		DurationSeconds: input.DurationSeconds,
		TotalExercises:  input.TotalExercises,
	}

	saved, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		log.Printf("ERROR: Failed to save workout for user %s: %v", input.UserID, err)
		return nil, "", ErrWorkoutPersistence
	}

	if len(input.Exercises) > 0 {
		rows := make([]domain.WorkoutExercise, len(input.Exercises))
		for i, ex := range input.Exercises {
			rows[i] = domain.WorkoutExercise{
				WorkoutID:    saved.ID,
				ExerciseName: ex.ExerciseName,
				MuscleGroup:  ex.MuscleGroup,
				Sets:         ex.Sets,
				Reps:         ex.Reps,
				Weight:       ex.Weight,
			}
		}
		if err := s.workoutRepo.CreateExercises(ctx, rows); err != nil {
			log.Printf("ERROR: Failed to save exercises for workout %s: %v", saved.ID.Hex(), err)
			return saved, WarnPartialSave, nil
		}
	}

	return saved, "", nil
}

// List fetches a page of workouts and their children. Child fetches run
// concurrently; a failed fetch degrades that one workout to an empty
// exercise list rather than failing the page.
func (s *workoutService) List(ctx context.Context, userID string, limit, offset int) ([]domain.WorkoutWithExercises, int, error) {
	if userID == "" {
		return nil, 0, ErrInvalidWorkoutInput
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	workouts, err := s.workoutRepo.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	results := make([]domain.WorkoutWithExercises, len(workouts))
	g, gctx := errgroup.WithContext(ctx)
	for i, workout := range workouts {
		i, workout := i, workout
		g.Go(func() error {
			exercises, err := s.workoutRepo.GetExercisesByWorkoutID(gctx, workout.ID)
			if err != nil {
				log.Printf("ERROR: Failed to fetch exercises for workout %s: %v", workout.ID.Hex(), err)
				exercises = []domain.WorkoutExercise{}
			}
			results[i] = domain.WorkoutWithExercises{Workout: workout, Exercises: exercises}
			return nil
		})
	}
	_ = g.Wait() // Goroutines only ever degrade, never fail.

	return results, len(results), nil
}
