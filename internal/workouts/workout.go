package workouts

import "time"

const (
	PrivacyPrivate = "privado"
	PrivacyPublic  = "publico"
)

type Workout struct {
	ID          int       `json:"id"`
	Name        string    `json:"nome"`
	Description string    `json:"descricao"`
	Intensity   string    `json:"intensidade"`
	CreatedAt   time.Time `json:"dataCriacao"`
	OwnerID     int       `json:"usuarioId"`
	Privacy     string    `json:"privacidade"`
}

// WorkoutExercise is the per-workout customization of a catalog exercise.
type WorkoutExercise struct {
	ExerciseID int     `json:"id"`
	Sets       int     `json:"series"`
	Reps       int     `json:"repeticoes"`
	Weight     float64 `json:"peso"`
}

// Summary is the list/search representation of a workout.
type Summary struct {
	ID          int    `json:"id"`
	Name        string `json:"nome"`
	Description string `json:"descricao"`
	Intensity   string `json:"intensidade"`
}

// ExerciseDetail joins the association row with the catalog entry.
type ExerciseDetail struct {
	ExerciseID  int     `json:"exercicioId"`
	Name        string  `json:"nome"`
	Description string  `json:"descricao"`
	Category    string  `json:"categoria"`
	Equipment   string  `json:"equipamento"`
	Sets        int     `json:"series"`
	Reps        int     `json:"repeticoes"`
	Weight      float64 `json:"peso"`
}

type Detail struct {
	ID          int              `json:"id"`
	Name        string           `json:"nome"`
	Description string           `json:"descricao"`
	Intensity   string           `json:"intensidade"`
	CreatedAt   time.Time        `json:"dataCriacao"`
	Privacy     string           `json:"privacidade"`
	Exercises   []ExerciseDetail `json:"exercicios"`
}

// Update carries a partial workout edit. Nil fields were not sent by the
// client and keep their stored value. A nil Exercises leaves the
// associations untouched; a non-nil (even empty) list replaces them.
type Update struct {
	Name        *string            `json:"nome"`
	Description *string            `json:"descricao"`
	Intensity   *string            `json:"intensidade"`
	Privacy     *string            `json:"privacidade"`
	Exercises   *[]WorkoutExercise `json:"exercicios"`
}

func (w *Workout) Apply(update Update) {
	if update.Name != nil {
		w.Name = *update.Name
	}
	if update.Description != nil {
		w.Description = *update.Description
	}
	if update.Intensity != nil {
		w.Intensity = *update.Intensity
	}
	if update.Privacy != nil {
		w.Privacy = *update.Privacy
	}
}
