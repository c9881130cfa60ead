package models

import "time"

// OptionLabels are the fixed choice labels, assigned by position.
var OptionLabels = [4]string{"A", "B", "C", "D"}

// QuestionOptionCount is the number of choices every question carries.
const QuestionOptionCount = 4

// Choice is one labeled option or feedback text. The label is derived
// from the position in the sequence, never taken from user input.
type Choice struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question is a multiple-choice question with exactly four options and
// one feedback text per option.
type Question struct {
	ID           string    `json:"id"`
	Subject      string    `json:"subject"`
	Prompt       string    `json:"prompt"`
	Options      []Choice  `json:"options"`
	CorrectLabel string    `json:"correctLabel"`
	Feedbacks    []Choice  `json:"feedbacks"`
	Hint         string    `json:"hint"`
	Explanation  string    `json:"explanation"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// QuestionSummary is the shallow view used when quiz listings expand
// their question references.
type QuestionSummary struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Prompt  string `json:"prompt"`
}

// Summary returns the shallow view of the question.
func (q *Question) Summary() QuestionSummary {
	return QuestionSummary{ID: q.ID, Subject: q.Subject, Prompt: q.Prompt}
}

// LabelChoices builds the labeled choice list from raw option texts,
// assigning A..D by index.
func LabelChoices(texts []string) []Choice {
	choices := make([]Choice, 0, len(texts))
	for i, text := range texts {
		label := ""
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}
		choices = append(choices, Choice{Label: label, Text: text})
	}
	return choices
}
