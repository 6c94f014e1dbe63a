package session

import (
	"time"

	"github.com/google/uuid"
)

// Set is a single set row within an exercise. Reps and weight default
// to zero on creation and carry no upper bound.
type Set struct {
	ID     string  `json:"id"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"` // kilograms
}

// Exercise is one exercise within an active session. Sets keeps
// insertion order, which is also display and save order.
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
	GifURL      string `json:"gifUrl,omitempty"`
	Sets        []Set  `json:"sets"`
}

// Session is the in-memory record of a workout in progress. It has no
// durable identity; only ending the session produces a persisted row.
type Session struct {
	ID        string     `json:"id"`
	StartTime time.Time  `json:"startTime"`
	Exercises []Exercise `json:"exercises"`
	Active    bool       `json:"isActive"`
}

// NewExercise describes an exercise to append to a session, typically
// picked from the remote catalog.
type NewExercise struct {
	Name        string
	MuscleGroup string
	GifURL      string
}

// SetField selects which value UpdateSet writes.
type SetField string

const (
	FieldReps   SetField = "reps"
	FieldWeight SetField = "weight"
)

func newSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartTime: time.Now().UTC(),
		Exercises: []Exercise{},
		Active:    true,
	}
}

// AddExercises appends one exercise per item, in input order, after any
// existing exercises. Each new exercise is seeded with a single zeroed set.
func (s *Session) AddExercises(items []NewExercise) {
	for _, item := range items {
		s.Exercises = append(s.Exercises, Exercise{
			ID:          uuid.NewString(),
			Name:        item.Name,
			MuscleGroup: item.MuscleGroup,
			GifURL:      item.GifURL,
			Sets:        []Set{{ID: uuid.NewString()}},
		})
	}
}

// RemoveExercise removes the exercise with the given id, preserving the
// order of its siblings. Unknown ids are a no-op.
func (s *Session) RemoveExercise(exerciseID string) bool {
	for i, ex := range s.Exercises {
		if ex.ID == exerciseID {
			s.Exercises = append(s.Exercises[:i], s.Exercises[i+1:]...)
			return true
		}
	}
	return false
}

// AddSet appends a zeroed set row to the target exercise.
func (s *Session) AddSet(exerciseID string) bool {
	for i := range s.Exercises {
		if s.Exercises[i].ID == exerciseID {
			s.Exercises[i].Sets = append(s.Exercises[i].Sets, Set{ID: uuid.NewString()})
			return true
		}
	}
	return false
}

// UpdateSet writes reps or weight on the matching set. The value must
// already be non-negative; callers clamp invalid parses to 0 before
// calling. Unknown exercise/set ids or fields are a no-op.
func (s *Session) UpdateSet(exerciseID, setID string, field SetField, value float64) bool {
	for i := range s.Exercises {
		if s.Exercises[i].ID != exerciseID {
			continue
		}
		for j := range s.Exercises[i].Sets {
			if s.Exercises[i].Sets[j].ID != setID {
				continue
			}
			switch field {
			case FieldReps:
				s.Exercises[i].Sets[j].Reps = int(value)
			case FieldWeight:
				s.Exercises[i].Sets[j].Weight = value
			default:
				return false
			}
			return true
		}
		return false
	}
	return false
}

// RemoveSet removes the matching set row. An exercise may end up with
// zero sets; nothing prevents that.
func (s *Session) RemoveSet(exerciseID, setID string) bool {
	for i := range s.Exercises {
		if s.Exercises[i].ID != exerciseID {
			continue
		}
		for j, set := range s.Exercises[i].Sets {
			if set.ID == setID {
				s.Exercises[i].Sets = append(s.Exercises[i].Sets[:j], s.Exercises[i].Sets[j+1:]...)
				return true
			}
		}
		return false
	}
	return false
}

// clone returns a deep copy, safe to hand out after the manager's lock
// is released.
func (s *Session) clone() Session {
	out := *s
	out.Exercises = make([]Exercise, len(s.Exercises))
	for i, ex := range s.Exercises {
		out.Exercises[i] = ex
		out.Exercises[i].Sets = append([]Set(nil), ex.Sets...)
	}
	return out
}
