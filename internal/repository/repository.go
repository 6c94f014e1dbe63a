package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"replog/workout-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	// Upsert inserts or updates a user keyed by their identity-provider
	// subject id, refreshing email/name/image on every sign-in.
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByAuthID(ctx context.Context, authID string) (*domain.User, error)
}

// WorkoutRepository defines the interface for interacting with
// persisted workouts and their child exercise rows. The parent insert
// and the child batch insert are separate writes with no shared
// transaction; callers own the partial-failure policy.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (*domain.Workout, error)
	CreateExercises(ctx context.Context, exercises []domain.WorkoutExercise) error
	// List returns a page of the user's workouts, newest first.
	List(ctx context.Context, userID string, limit, offset int) ([]domain.Workout, error)
	GetExercisesByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutExercise, error)
}
