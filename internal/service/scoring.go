package service

import (
	"fmt"
	"math"
	"renova_backend/internal/model"
)

const (
	answerMinValue = 1
	answerMaxValue = 5
)

// Classification cutoffs on the normalized 0-100 score. The raw total is
// always normalized first so the cutoffs hold for any questionnaire length.
const (
	liberdadeMaxScore  = 50 // <=50 -> liberdade
	equilibrioMaxScore = 74 // 51-74 -> equilibrio, >=75 -> renovacao
)

// Answer is one answered question with its category tag.
type Answer struct {
	QuestionID string `json:"questionId" binding:"required"`
	Category   string `json:"category" binding:"required"`
	Value      int    `json:"value" binding:"required"`
}

// ScoreResult is the outcome of scoring one questionnaire.
type ScoreResult struct {
	TotalScore      int             `json:"totalScore"`
	MaxPossible     int             `json:"maxPossible"`
	NormalizedScore int             `json:"normalizedScore"`
	CategoryScores  map[string]int  `json:"categoryScores"`
	TrackType       model.TrackType `json:"trackType"`
}

// ValidateAnswers rejects out-of-scale values and unknown categories.
func ValidateAnswers(answers []Answer) error {
	if len(answers) == 0 {
		return fmt.Errorf("no answers provided")
	}
	for _, a := range answers {
		if a.Value < answerMinValue || a.Value > answerMaxValue {
			return fmt.Errorf("answer %s: value %d outside scale [%d,%d]", a.QuestionID, a.Value, answerMinValue, answerMaxValue)
		}
		if !model.IsValidCategory(a.Category) {
			return fmt.Errorf("answer %s: unknown category %q", a.QuestionID, a.Category)
		}
	}
	return nil
}

// Score sums the answers into category scores and a total, normalizes the
// total to 0-100 and classifies the track. Pure; persistence is the
// caller's responsibility.
func Score(answers []Answer) ScoreResult {
	categoryScores := make(map[string]int, len(model.CategoryOrder))
	for _, key := range model.CategoryOrder {
		categoryScores[key] = 0
	}

	total := 0
	for _, a := range answers {
		categoryScores[a.Category] += a.Value
		total += a.Value
	}

	maxPossible := len(answers) * answerMaxValue
	normalized := NormalizeScore(total, maxPossible)

	return ScoreResult{
		TotalScore:      total,
		MaxPossible:     maxPossible,
		NormalizedScore: normalized,
		CategoryScores:  categoryScores,
		TrackType:       ClassifyTrack(normalized),
	}
}

// NormalizeScore maps a raw total onto 0-100: round(min(total/max, 1) * 100).
func NormalizeScore(total, maxPossible int) int {
	if maxPossible <= 0 {
		return 0
	}
	ratio := float64(total) / float64(maxPossible)
	if ratio > 1 {
		ratio = 1
	}
	return int(math.Round(ratio * 100))
}

// ClassifyTrack maps a normalized score onto a track. Higher scores always
// classify to the same or a more intensive track.
func ClassifyTrack(normalized int) model.TrackType {
	switch {
	case normalized <= liberdadeMaxScore:
		return model.TrackLiberdade
	case normalized <= equilibrioMaxScore:
		return model.TrackEquilibrio
	default:
		return model.TrackRenovacao
	}
}

// MostAffectedCategory returns the category with the highest score. Ties
// resolve to the first category in model.CategoryOrder.
func MostAffectedCategory(scores map[string]int) string {
	best := model.CategoryOrder[0]
	bestScore := scores[best]
	for _, key := range model.CategoryOrder[1:] {
		if scores[key] > bestScore {
			best = key
			bestScore = scores[key]
		}
	}
	return best
}
