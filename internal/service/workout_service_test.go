package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"replog/workout-app/internal/domain"
)

// fakeWorkoutRepo is an in-memory repository.WorkoutRepository with
// switchable failure points.
type fakeWorkoutRepo struct {
	createErr    error
	exercisesErr error
	listErr      error
	childErr     map[primitive.ObjectID]error

	workouts  []domain.Workout
	exercises map[primitive.ObjectID][]domain.WorkoutExercise
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{
		childErr:  map[primitive.ObjectID]error{},
		exercises: map[primitive.ObjectID][]domain.WorkoutExercise{},
	}
}

func (f *fakeWorkoutRepo) Create(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = time.Now().UTC()
	f.workouts = append(f.workouts, *workout)
	return workout, nil
}

func (f *fakeWorkoutRepo) CreateExercises(ctx context.Context, rows []domain.WorkoutExercise) error {
	if f.exercisesErr != nil {
		return f.exercisesErr
	}
	for _, row := range rows {
		f.exercises[row.WorkoutID] = append(f.exercises[row.WorkoutID], row)
	}
	return nil
}

func (f *fakeWorkoutRepo) List(ctx context.Context, userID string, limit, offset int) ([]domain.Workout, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []domain.Workout{}
	for _, w := range f.workouts {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	if offset >= len(out) {
		return []domain.Workout{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeWorkoutRepo) GetExercisesByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutExercise, error) {
	if err := f.childErr[workoutID]; err != nil {
		return nil, err
	}
	rows := f.exercises[workoutID]
	if rows == nil {
		rows = []domain.WorkoutExercise{}
	}
	return rows, nil
}

func validSaveInput(userID string) SaveWorkoutInput {
	started := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	return SaveWorkoutInput{
		UserID:          userID,
		StartedAt:       started,
		EndedAt:         started.Add(45 * time.Minute),
		DurationSeconds: 45 * 60,
		TotalExercises:  1,
		Exercises: []WorkoutExerciseInput{
			{ExerciseName: "Bench Press", MuscleGroup: "chest", Sets: 3, Reps: 10, Weight: 60},
		},
	}
}

func TestSavePersistsWorkoutAndChildren(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)

	workout, warning, err := svc.Save(context.Background(), validSaveInput("user-1"))
	require.NoError(t, err)
	assert.Empty(t, warning)
	require.NotNil(t, workout)
	assert.NotEqual(t, primitive.NilObjectID, workout.ID)

	rows := repo.exercises[workout.ID]
	require.Len(t, rows, 1)
	assert.Equal(t, "Bench Press", rows[0].ExerciseName)
	assert.Equal(t, workout.ID, rows[0].WorkoutID)
}

func TestSaveRejectsMissingFields(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)

	tests := []struct {
		name   string
		mutate func(*SaveWorkoutInput)
	}{
		{"no user", func(in *SaveWorkoutInput) { in.UserID = "" }},
		{"no started_at", func(in *SaveWorkoutInput) { in.StartedAt = time.Time{} }},
		{"no ended_at", func(in *SaveWorkoutInput) { in.EndedAt = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validSaveInput("user-1")
			tt.mutate(&input)
			_, _, err := svc.Save(context.Background(), input)
			assert.ErrorIs(t, err, ErrInvalidWorkoutInput)
		})
	}
	assert.Empty(t, repo.workouts, "nothing should have been written")
}

func TestSaveParentWriteFailureAbortsEverything(t *testing.T) {
	repo := newFakeWorkoutRepo()
	repo.createErr = errors.New("store down")
	svc := NewWorkoutService(repo)

	workout, warning, err := svc.Save(context.Background(), validSaveInput("user-1"))
	assert.ErrorIs(t, err, ErrWorkoutPersistence)
	assert.Nil(t, workout)
	assert.Empty(t, warning)
	assert.Empty(t, repo.exercises, "child insert must not be attempted")
}

func TestSaveChildWriteFailureReturnsWarningNotError(t *testing.T) {
	repo := newFakeWorkoutRepo()
	repo.exercisesErr = errors.New("batch insert failed")
	svc := NewWorkoutService(repo)

	workout, warning, err := svc.Save(context.Background(), validSaveInput("user-1"))
	require.NoError(t, err)
	require.NotNil(t, workout)
	assert.Equal(t, WarnPartialSave, warning)

	// The parent row persists and is retrievable afterwards.
	listed, count, err := svc.List(context.Background(), "user-1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, listed, 1)
	assert.Equal(t, workout.ID, listed[0].ID)
}

func TestListEmptyStore(t *testing.T) {
	svc := NewWorkoutService(newFakeWorkoutRepo())

	workouts, count, err := svc.List(context.Background(), "user-1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, workouts)
	assert.NotNil(t, workouts, "empty page must marshal as [], not null")
}

func TestListJoinsChildrenAndDegradesPerWorkout(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)

	first, _, err := svc.Save(context.Background(), validSaveInput("user-1"))
	require.NoError(t, err)

	second, _, err := svc.Save(context.Background(), validSaveInput("user-1"))
	require.NoError(t, err)

	// One workout's child fetch fails; only that workout degrades.
	repo.childErr[second.ID] = errors.New("fetch failed")

	workouts, count, err := svc.List(context.Background(), "user-1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, workouts, 2)

	byID := map[primitive.ObjectID][]domain.WorkoutExercise{}
	for _, w := range workouts {
		byID[w.ID] = w.Exercises
	}
	require.Len(t, byID[first.ID], 1)
	assert.Equal(t, "Bench Press", byID[first.ID][0].ExerciseName)
	assert.Empty(t, byID[second.ID])
	assert.NotNil(t, byID[second.ID])
}

func TestListDefaultsAndPaging(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)

	for i := 0; i < 12; i++ {
		_, _, err := svc.Save(context.Background(), validSaveInput("user-1"))
		require.NoError(t, err)
	}

	// Non-positive limit falls back to 10, negative offset to 0.
	workouts, count, err := svc.List(context.Background(), "user-1", 0, -3)
	require.NoError(t, err)
	assert.Equal(t, 10, count)
	assert.Len(t, workouts, 10)

	workouts, count, err = svc.List(context.Background(), "user-1", 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, workouts, 2)
}
