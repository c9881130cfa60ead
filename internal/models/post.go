package models

import "time"

// DefaultSubject is assigned to posts created without a subject.
const DefaultSubject = "General"

// Post is a weekly study post. QuizRef is empty when no quiz is
// attached; an unresolvable reference is dropped on write, never
// persisted dangling.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Body        string    `json:"body"`
	AudioLink   string    `json:"audioLink"`
	PDFLink     string    `json:"pdfLink"`
	Subject     string    `json:"subject"`
	QuizRef     string    `json:"quizRef,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Quiz holds a shallow view of the attached quiz when a listing is
	// requested with expansion. Never accepted on input.
	Quiz *QuizSummary `json:"quiz,omitempty"`
}
