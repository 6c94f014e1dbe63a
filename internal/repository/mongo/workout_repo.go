package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"replog/workout-app/internal/domain"
	"replog/workout-app/internal/repository"
)

const (
	workoutCollectionName         = "workouts"
	workoutExerciseCollectionName = "workout_exercises"
)

// mongoWorkoutRepository implements repository.WorkoutRepository.
// Workouts and their child exercise rows live in separate collections
// with no cross-collection transaction; each insert is atomic on its own.
type mongoWorkoutRepository struct {
	workouts  *mongo.Collection
	exercises *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		workouts:  db.Collection(workoutCollectionName),
		exercises: db.Collection(workoutExerciseCollectionName),
	}
}

// Create inserts a new workout row and returns it with store-assigned
// id and creation timestamp.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	if workout.UserID == "" {
		return nil, errors.New("workout requires a user id")
	}
	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = time.Now().UTC()

	result, err := r.workouts.InsertOne(ctx, workout)
	if err != nil {
		return nil, err
	}
	if _, ok := result.InsertedID.(primitive.ObjectID); !ok {
		return nil, errors.New("failed to convert inserted workout ID")
	}
	return workout, nil
}

// CreateExercises batch-inserts the child rows for a workout. All rows
// must already carry their parent workout id.
func (r *mongoWorkoutRepository) CreateExercises(ctx context.Context, exercises []domain.WorkoutExercise) error {
	if len(exercises) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(exercises))
	for i := range exercises {
		if exercises[i].WorkoutID == primitive.NilObjectID {
			return errors.New("workout exercise requires a workout id")
		}
		exercises[i].ID = primitive.NewObjectID()
		exercises[i].CreatedAt = now
		docs[i] = exercises[i]
	}
	_, err := r.exercises.InsertMany(ctx, docs)
	return err
}

// List retrieves a page of the user's workouts ordered by creation
// time, newest first. An empty page is a nil error with an empty slice.
func (r *mongoWorkoutRepository) List(ctx context.Context, userID string, limit, offset int) ([]domain.Workout, error) {
	filter := bson.M{"userId": userID}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.workouts.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetExercisesByWorkoutID retrieves all child exercise rows of one workout.
func (r *mongoWorkoutRepository) GetExercisesByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutExercise, error) {
	filter := bson.M{"workoutId": workoutID}

	cursor, err := r.exercises.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.WorkoutExercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, workouts, exercises *mongo.Collection) {
	workoutIndexes := []mongo.IndexModel{
		{
			// List pages per user, newest first.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := workouts.Indexes().CreateMany(ctx, workoutIndexes); err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", workouts.Name(), err)
	}

	exerciseIndexes := []mongo.IndexModel{
		{
			// Child rows are always fetched by parent workout.
			Keys:    bson.D{{Key: "workoutId", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := exercises.Indexes().CreateMany(ctx, exerciseIndexes); err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", exercises.Name(), err)
	}
}
