package model

import (
	"encoding/json"
	"time"
)

type TrackType string

const (
	TrackLiberdade  TrackType = "liberdade"
	TrackEquilibrio TrackType = "equilibrio"
	TrackRenovacao  TrackType = "renovacao"
)

// Assessment category keys. CategoryOrder is the canonical declaration
// order; ties on the most affected category resolve to the first entry.
const (
	CategoryComportamento = "comportamento"
	CategoryVidaCotidiana = "vida_cotidiana"
	CategoryRelacoes      = "relacoes"
	CategoryEspiritual    = "espiritual"
)

var CategoryOrder = []string{
	CategoryComportamento,
	CategoryVidaCotidiana,
	CategoryRelacoes,
	CategoryEspiritual,
}

func IsValidCategory(c string) bool {
	for _, k := range CategoryOrder {
		if k == c {
			return true
		}
	}
	return false
}

// QuestionnaireResult is one completed questionnaire. Rows are immutable; a
// user may have many, and the most recent one is the current baseline.
// swagger:model QuestionnaireResult
type QuestionnaireResult struct {
	BaseModel
	UserID             uint            `gorm:"index;not null" json:"userId"`
	TotalScore         int             `gorm:"not null" json:"totalScore"`
	NormalizedScore    int             `gorm:"not null" json:"normalizedScore"`
	ScoreComportamento int             `json:"scoreComportamento"`
	ScoreVidaCotidiana int             `json:"scoreVidaCotidiana"`
	ScoreRelacoes      int             `json:"scoreRelacoes"`
	ScoreEspiritual    int             `json:"scoreEspiritual"`
	TrackType          TrackType       `gorm:"size:20;not null" json:"trackType"`
	TotalTimeSpent     int             `json:"totalTimeSpent"` // seconds
	CompletedAt        time.Time       `gorm:"index" json:"completedAt"`
	Answers            json.RawMessage `gorm:"type:json" json:"answers"`
}

func (QuestionnaireResult) TableName() string {
	return "questionnaire_results"
}

// Categories returns the per-category scores keyed by CategoryOrder keys.
func (r *QuestionnaireResult) Categories() map[string]int {
	return map[string]int{
		CategoryComportamento: r.ScoreComportamento,
		CategoryVidaCotidiana: r.ScoreVidaCotidiana,
		CategoryRelacoes:      r.ScoreRelacoes,
		CategoryEspiritual:    r.ScoreEspiritual,
	}
}
