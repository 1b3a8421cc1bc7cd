package completions

import "time"

// Completion is one finished workout session.
type Completion struct {
	ID          int       `json:"id"`
	WorkoutID   int       `json:"treino_id"`
	UserID      int       `json:"usuario_id"`
	CompletedAt time.Time `json:"data_finalizacao"`
	// TotalTime is the whole session duration in seconds.
	TotalTime int `json:"total_time"`
}

// ExerciseTiming is the measured duration of one exercise within a
// completed session. Exercise ids are recorded as sent, there is no check
// that they belong to the workout's own exercise set.
type ExerciseTiming struct {
	ExerciseID int       `json:"exercicio_id"`
	Seconds    int       `json:"tempo"`
	StartedAt  time.Time `json:"data_inicio"`
	EndedAt    time.Time `json:"data_fim"`
}

// TimingDetail is a stored timing resolved to the exercise name.
type TimingDetail struct {
	ExerciseID   int    `json:"exercicio_id"`
	ExerciseName string `json:"nome"`
	Seconds      int    `json:"tempo"`
}

// Summary is one history entry: the completion joined with its workout
// and the per-exercise timings.
type Summary struct {
	ID                 int            `json:"id"`
	WorkoutID          int            `json:"treino_id"`
	WorkoutName        string         `json:"nome"`
	WorkoutDescription string         `json:"descricao"`
	CompletedAt        time.Time      `json:"data_finalizacao"`
	TotalTime          int            `json:"total_time"`
	Timings            []TimingDetail `json:"exercicios_tempo"`
}
