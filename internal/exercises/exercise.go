package exercises

// Exercise is one catalog entry. The catalog is fed from an external
// exercise database and read by the workout builder in the app.
type Exercise struct {
	ID       int    `json:"id"`
	Name     string `json:"nome"`
	BodyPart string `json:"tipo"`
	Category string `json:"categoria"`
	// Description carries the media reference (gif URL) of the catalog
	// entry, there is no free-text description in the feed.
	Description string `json:"descricao"`
	Equipment   string `json:"equipamento"`
	Difficulty  string `json:"dificuldade"`
}

// DefaultDifficulty is stored when the external feed has no difficulty info.
const DefaultDifficulty = "N/A"

type ListParams struct {
	BodyPart string
}
