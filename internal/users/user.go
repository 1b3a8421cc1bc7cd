package users

import "time"

// Profile holds the onboarding questionnaire answers. All fields are
// optional and filled in gradually by the app.
type Profile struct {
	Gender           string  `json:"genero"`
	Age              int     `json:"idade"`
	Goal             string  `json:"objetivo"`
	BodyType         string  `json:"tipo_corpo"`
	BodyGoal         string  `json:"meta_corpo"`
	Motivations      string  `json:"motivacoes"`
	TargetAreas      string  `json:"areas_alvo"`
	FitnessLevel     string  `json:"nivel_condicionamento"`
	TrainingLocation string  `json:"local_treinamento"`
	Height           float64 `json:"altura"`
	Weight           float64 `json:"peso"`
	WeightGoal       float64 `json:"meta_peso"`
}

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"nome"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"dataCriacao"`
	Profile
}

// ProfileUpdate carries a partial profile edit. Nil fields were not sent
// by the client and must keep their stored value.
type ProfileUpdate struct {
	Gender           *string  `json:"genero"`
	Age              *int     `json:"idade"`
	Goal             *string  `json:"objetivo"`
	BodyType         *string  `json:"tipo_corpo"`
	BodyGoal         *string  `json:"meta_corpo"`
	Motivations      *string  `json:"motivacoes"`
	TargetAreas      *string  `json:"areas_alvo"`
	FitnessLevel     *string  `json:"nivel_condicionamento"`
	TrainingLocation *string  `json:"local_treinamento"`
	Height           *float64 `json:"altura"`
	Weight           *float64 `json:"peso"`
	WeightGoal       *float64 `json:"meta_peso"`
}

// Apply merges the supplied fields into the profile, field by field,
// leaving everything else untouched.
func (p *Profile) Apply(update ProfileUpdate) {
	if update.Gender != nil {
		p.Gender = *update.Gender
	}
	if update.Age != nil {
		p.Age = *update.Age
	}
	if update.Goal != nil {
		p.Goal = *update.Goal
	}
	if update.BodyType != nil {
		p.BodyType = *update.BodyType
	}
	if update.BodyGoal != nil {
		p.BodyGoal = *update.BodyGoal
	}
	if update.Motivations != nil {
		p.Motivations = *update.Motivations
	}
	if update.TargetAreas != nil {
		p.TargetAreas = *update.TargetAreas
	}
	if update.FitnessLevel != nil {
		p.FitnessLevel = *update.FitnessLevel
	}
	if update.TrainingLocation != nil {
		p.TrainingLocation = *update.TrainingLocation
	}
	if update.Height != nil {
		p.Height = *update.Height
	}
	if update.Weight != nil {
		p.Weight = *update.Weight
	}
	if update.WeightGoal != nil {
		p.WeightGoal = *update.WeightGoal
	}
}
