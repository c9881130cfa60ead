package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelChoices(t *testing.T) {
	choices := LabelChoices([]string{"one", "two", "three", "four"})

	assert.Len(t, choices, 4)
	assert.Equal(t, Choice{Label: "A", Text: "one"}, choices[0])
	assert.Equal(t, Choice{Label: "B", Text: "two"}, choices[1])
	assert.Equal(t, Choice{Label: "C", Text: "three"}, choices[2])
	assert.Equal(t, Choice{Label: "D", Text: "four"}, choices[3])
}

func TestLabelChoicesBeyondLabelRange(t *testing.T) {
	choices := LabelChoices([]string{"1", "2", "3", "4", "5"})

	assert.Len(t, choices, 5)
	assert.Equal(t, "", choices[4].Label)
}

func TestQuestionSummary(t *testing.T) {
	q := Question{ID: "q1", Subject: "Math", Prompt: "2+2?", Hint: "count"}

	summary := q.Summary()
	assert.Equal(t, QuestionSummary{ID: "q1", Subject: "Math", Prompt: "2+2?"}, summary)
}
