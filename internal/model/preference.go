package model

import "encoding/json"

// UserPreference stores declared focus areas (ordered) and the preferred
// difficulty. Absence of a row is normal and means neutral defaults.
// swagger:model UserPreference
type UserPreference struct {
	BaseModel
	UserID     uint            `gorm:"not null;uniqueIndex" json:"userId"`
	FocusAreas json.RawMessage `gorm:"type:json" json:"focusAreas"`
	Difficulty string          `gorm:"size:10;default:'medium'" json:"difficulty"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}

// FocusAreaList decodes the ordered focus area tags; malformed or empty
// payloads decode to an empty list.
func (p *UserPreference) FocusAreaList() []string {
	var areas []string
	if len(p.FocusAreas) > 0 {
		_ = json.Unmarshal(p.FocusAreas, &areas)
	}
	return areas
}
