package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionDecode(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		rule := PersonalizationRule{
			ConditionData: json.RawMessage(`{"mostAffectedArea":"relacoes","minScore":40,"maxScore":80,"focusAreas":["oracao"]}`),
		}
		cond := rule.Condition()
		assert.Equal(t, CategoryRelacoes, cond.MostAffectedArea)
		assert.Equal(t, 40, *cond.MinScore)
		assert.Equal(t, 80, *cond.MaxScore)
		assert.Equal(t, []string{"oracao"}, cond.FocusAreas)
	})

	t.Run("empty payload", func(t *testing.T) {
		rule := PersonalizationRule{}
		cond := rule.Condition()
		assert.Nil(t, cond.MinScore)
		assert.Nil(t, cond.MaxScore)
		assert.Empty(t, cond.MostAffectedArea)
	})

	t.Run("malformed payload decodes to zero condition", func(t *testing.T) {
		rule := PersonalizationRule{ConditionData: json.RawMessage(`{"minScore": "quarenta"`)}
		cond := rule.Condition()
		assert.Nil(t, cond.MinScore)
	})
}

func TestOverrideDecode(t *testing.T) {
	rule := PersonalizationRule{
		Content: json.RawMessage(`{"title":"Novo título","prayer":"Nova oração"}`),
	}
	o := rule.Override()
	assert.Equal(t, "Novo título", *o.Title)
	assert.Equal(t, "Nova oração", *o.Prayer)
	assert.Nil(t, o.Verse, "absent fields stay nil")
}

func TestFocusAreaList(t *testing.T) {
	pref := UserPreference{FocusAreas: json.RawMessage(`["oracao","leitura"]`)}
	assert.Equal(t, []string{"oracao", "leitura"}, pref.FocusAreaList())

	empty := UserPreference{}
	assert.Empty(t, empty.FocusAreaList())

	malformed := UserPreference{FocusAreas: json.RawMessage(`{"oops":`)}
	assert.Empty(t, malformed.FocusAreaList())
}
