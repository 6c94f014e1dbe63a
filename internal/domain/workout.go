package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a completed, durably stored workout. It only comes into
// existence when an in-memory session is ended and saved; duration and
// total exercise count are supplied by the caller, not recomputed here.
type Workout struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"userId" json:"-"` // Owner's auth subject id
	StartedAt       time.Time          `bson:"startedAt" json:"started_at"`
	EndedAt         time.Time          `bson:"endedAt" json:"ended_at"`
	DurationSeconds int                `bson:"durationSeconds" json:"duration_seconds"`
	TotalExercises  int                `bson:"totalExercises" json:"total_exercises"`
	CreatedAt       time.Time          `bson:"createdAt" json:"created_at"`
}

// WorkoutExercise is a child row of exactly one Workout: one flattened
// record per exercise, carrying the set count and a single aggregate
// reps/weight pair rather than one row per individual set.
type WorkoutExercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID    primitive.ObjectID `bson:"workoutId" json:"workout_id"`
	ExerciseName string             `bson:"exerciseName" json:"exercise_name"`
	MuscleGroup  string             `bson:"muscleGroup" json:"muscle_group"`
	Sets         int                `bson:"sets" json:"sets"`
	Reps         int                `bson:"reps" json:"reps"`
	Weight       float64            `bson:"weight" json:"weight"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
}

// WorkoutWithExercises is the read-back shape for listing: a workout
// joined with its child rows. Exercises is never nil in responses.
type WorkoutWithExercises struct {
	Workout   `bson:",inline"`
	Exercises []WorkoutExercise `json:"exercises"`
}
