package domain

// CatalogExercise is a normalized entry from the remote exercise
// database: one display name, one canonical muscle group tag and an
// optional illustrative GIF URL. The upstream API is read-only; these
// are never persisted as-is, only copied into a session by the user.
type CatalogExercise struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	GifURL      string `json:"gif_url"`
}
