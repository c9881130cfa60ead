package events

import "time"

// EventType represents different types of content-change events
type EventType string

const (
	EventPostCreated EventType = "post.created"
	EventPostUpdated EventType = "post.updated"
	EventPostDeleted EventType = "post.deleted"

	EventQuestionCreated EventType = "question.created"
	EventQuestionUpdated EventType = "question.updated"
	EventQuestionDeleted EventType = "question.deleted"

	EventQuizCreated EventType = "quiz.created"
	EventQuizUpdated EventType = "quiz.updated"
	EventQuizDeleted EventType = "quiz.deleted"
)

// ContentEvent is the base structure for all content-change events
// published after a successful write.
type ContentEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Entity    string                 `json:"entity"`
	EntityID  string                 `json:"entity_id"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewContentEvent builds an event for the given entity change.
func NewContentEvent(eventType EventType, entity, entityID string) *ContentEvent {
	return &ContentEvent{
		Type:      eventType,
		Entity:    entity,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Source:    "content-service",
		Version:   "1.0",
	}
}
