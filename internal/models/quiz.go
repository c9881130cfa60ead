package models

import "time"

const (
	// DefaultEstimatedMinutes is applied when a quiz is created without
	// an estimated duration.
	DefaultEstimatedMinutes = 30

	MinEstimatedMinutes = 1
	MaxEstimatedMinutes = 180
)

// Quiz is an ordered collection of question references with metadata.
// QuestionRefs always holds at least one element once persisted.
type Quiz struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Subject          string    `json:"subject"`
	QuestionRefs     []string  `json:"questionRefs"`
	EstimatedMinutes int       `json:"estimatedMinutes"`
	Instructions     string    `json:"instructions"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	// Questions holds shallow views of the referenced questions when a
	// listing is requested with expansion. Never accepted on input.
	Questions []QuestionSummary `json:"questions,omitempty"`
}

// QuizSummary is the shallow view used when post listings expand their
// quiz reference.
type QuizSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Summary returns the shallow view of the quiz.
func (q *Quiz) Summary() QuizSummary {
	return QuizSummary{ID: q.ID, Title: q.Title, Description: q.Description}
}

// QuizWithQuestions is the eager read shape used by the quiz-taking
// flow: the quiz plus the full records of every referenced question.
type QuizWithQuestions struct {
	Quiz
	Questions []Question `json:"questions"`
}
