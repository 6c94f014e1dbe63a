package session

import "time"

// SetDetail is the literal reps/weight of one set, carried in the save
// payload for audit. The persistence gateway accepts it but stores only
// the flattened aggregate per exercise.
type SetDetail struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// ExercisePayload is the flattened persistence record for one exercise:
// set count plus a single aggregate reps/weight pair.
type ExercisePayload struct {
	ExerciseName string      `json:"exercise_name"`
	MuscleGroup  string      `json:"muscle_group"`
	Sets         int         `json:"sets"`
	Reps         int         `json:"reps"`
	Weight       float64     `json:"weight"`
	SetsDetail   []SetDetail `json:"sets_detail,omitempty"`
}

// SavePayload is the final snapshot of a session handed to the
// persistence gateway when the workout ends.
type SavePayload struct {
	StartedAt       time.Time         `json:"started_at"`
	EndedAt         time.Time         `json:"ended_at"`
	DurationSeconds int               `json:"duration_seconds"`
	TotalExercises  int               `json:"total_exercises"`
	Exercises       []ExercisePayload `json:"exercises,omitempty"`
}

// BuildSavePayload maps the session into its persistence shape as of
// the given end time. The aggregate pair per exercise is the best set:
// highest reps and highest weight seen across its sets. Duration is
// whole elapsed seconds, rounded down.
func (s *Session) BuildSavePayload(endedAt time.Time) SavePayload {
	payload := SavePayload{
		StartedAt:       s.StartTime,
		EndedAt:         endedAt,
		DurationSeconds: int(endedAt.Sub(s.StartTime) / time.Second),
		TotalExercises:  len(s.Exercises),
	}
	for _, ex := range s.Exercises {
		rec := ExercisePayload{
			ExerciseName: ex.Name,
			MuscleGroup:  ex.MuscleGroup,
			Sets:         len(ex.Sets),
		}
		for _, set := range ex.Sets {
			if set.Reps > rec.Reps {
				rec.Reps = set.Reps
			}
			if set.Weight > rec.Weight {
				rec.Weight = set.Weight
			}
			rec.SetsDetail = append(rec.SetsDetail, SetDetail{Reps: set.Reps, Weight: set.Weight})
		}
		payload.Exercises = append(payload.Exercises, rec)
	}
	return payload
}
