package model

import "encoding/json"

type RuleType string

const (
	RuleAreaBased       RuleType = "area_based"
	RuleScoreBased      RuleType = "score_based"
	RulePreferenceBased RuleType = "preference_based"
)

// RuleCondition is the decoded condition payload. Which fields apply depends
// on the rule type; anything missing defaults to "no constraint".
type RuleCondition struct {
	// area_based
	MostAffectedArea string `json:"mostAffectedArea,omitempty"`
	// score_based; nil bounds are open (0 and 100)
	MinScore *int `json:"minScore,omitempty"`
	MaxScore *int `json:"maxScore,omitempty"`
	// preference_based
	FocusAreas []string `json:"focusAreas,omitempty"`
}

// ContentOverride is the partial template override carried by a rule. Only
// non-nil fields overwrite the base template.
type ContentOverride struct {
	Title                *string `json:"title,omitempty"`
	Objective            *string `json:"objective,omitempty"`
	Verse                *string `json:"verse,omitempty"`
	Reflection           *string `json:"reflection,omitempty"`
	Prayer               *string `json:"prayer,omitempty"`
	MainActivityTitle    *string `json:"mainActivityTitle,omitempty"`
	MainActivityContent  *string `json:"mainActivityContent,omitempty"`
	ChallengeTitle       *string `json:"challengeTitle,omitempty"`
	ChallengeDescription *string `json:"challengeDescription,omitempty"`
	BonusTitle           *string `json:"bonusTitle,omitempty"`
	BonusContent         *string `json:"bonusContent,omitempty"`
}

// PersonalizationRule is scoped to one (track, day). Rules are evaluated in
// Position order; for overlapping override fields the last match wins.
// swagger:model PersonalizationRule
type PersonalizationRule struct {
	UUIDBase
	TrackSlug     string          `gorm:"size:20;not null;index:idx_rule_track_day" json:"trackSlug"`
	DayNumber     int             `gorm:"not null;index:idx_rule_track_day" json:"dayNumber"`
	Position      int             `gorm:"default:0" json:"position"`
	RuleType      RuleType        `gorm:"size:30;not null" json:"ruleType"`
	ConditionData json.RawMessage `gorm:"type:json" json:"conditionData"`
	Content       json.RawMessage `gorm:"type:json" json:"personalizedContent"`
}

func (PersonalizationRule) TableName() string {
	return "personalization_rules"
}

// Condition decodes the condition payload. A malformed or empty payload
// decodes to the zero condition, which matches as "no constraint".
func (r *PersonalizationRule) Condition() RuleCondition {
	var c RuleCondition
	if len(r.ConditionData) > 0 {
		_ = json.Unmarshal(r.ConditionData, &c)
	}
	return c
}

// Override decodes the personalized content payload.
func (r *PersonalizationRule) Override() ContentOverride {
	var o ContentOverride
	if len(r.Content) > 0 {
		_ = json.Unmarshal(r.Content, &o)
	}
	return o
}
