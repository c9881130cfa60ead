package services

import (
	"context"
	"strings"

	"github.com/studyfeed/content-service/internal/events"
	"github.com/studyfeed/content-service/internal/models"
	"github.com/studyfeed/content-service/internal/repositories"
	"github.com/studyfeed/content-service/internal/utils"
	"github.com/studyfeed/content-service/internal/validator"
)

// ===== REQUEST TYPES =====

// CreateQuestionRequest carries raw option and feedback texts; labels
// are assigned by position (A..D) on every write, so re-ordering during
// an edit changes labels.
type CreateQuestionRequest struct {
	Subject      string   `json:"subject" validate:"required"`
	Prompt       string   `json:"prompt" validate:"required"`
	Options      []string `json:"options" validate:"required,len=4,dive,required"`
	CorrectLabel string   `json:"correctLabel" validate:"required,oneof=A B C D"`
	Feedbacks    []string `json:"feedbacks" validate:"required,len=4,dive,required"`
	Hint         string   `json:"hint" validate:"required"`
	Explanation  string   `json:"explanation" validate:"required"`
}

type UpdateQuestionRequest = CreateQuestionRequest

// ===== SERVICE INTERFACE =====

type QuestionService interface {
	// Initialize probes the document store, selects the backing mode
	// and, under document mode, runs this entity's migration step. It
	// never fails on a probe error; the service falls back to file mode.
	Initialize(ctx context.Context) error
	Mode() BackingMode

	List(ctx context.Context, subject string) ([]models.Question, error)
	GetByID(ctx context.Context, id string) (*models.Question, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Question, error)
	Create(ctx context.Context, req *CreateQuestionRequest) (*models.Question, error)
	Update(ctx context.Context, id string, req *UpdateQuestionRequest) (*models.Question, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type questionService struct {
	fileStore repositories.QuestionStore
	docStore  repositories.QuestionStore
	probe     Prober
	migrate   MigrateFunc
	mode      BackingMode
	validator *validator.Validator
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewQuestionService(
	fileStore repositories.QuestionStore,
	docStore repositories.QuestionStore,
	probe Prober,
	migrate MigrateFunc,
	validator *validator.Validator,
	publisher events.EventPublisher,
	logger utils.Logger,
) QuestionService {
	return &questionService{
		fileStore: fileStore,
		docStore:  docStore,
		probe:     probe,
		migrate:   migrate,
		validator: validator,
		publisher: publisher,
		logger:    logger.With("service", "question"),
	}
}

func (s *questionService) Initialize(ctx context.Context) error {
	if s.mode != ModeUninitialized {
		return nil
	}

	if s.docStore == nil || s.probe == nil {
		s.mode = ModeFile
		s.logger.Info("using JSON file backing", "reason", "no document store configured")
		return nil
	}

	if err := s.probe(ctx); err != nil {
		s.mode = ModeFile
		s.logger.Warn("document store probe failed, using JSON file backing", "error", err)
		return nil
	}

	s.mode = ModeDocument
	s.logger.Info("using document store backing")

	if s.migrate != nil {
		if err := s.migrate(ctx); err != nil {
			// Startup continues; the collection simply stays empty
			// until the legacy data problem is resolved.
			s.logger.LogError(err, "question migration failed")
		}
	}
	return nil
}

func (s *questionService) Mode() BackingMode {
	return s.mode
}

func (s *questionService) store() (repositories.QuestionStore, error) {
	switch s.mode {
	case ModeFile:
		return s.fileStore, nil
	case ModeDocument:
		return s.docStore, nil
	default:
		return nil, ErrNotInitialized
	}
}

func (s *questionService) List(ctx context.Context, subject string) ([]models.Question, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	return store.List(ctx, repositories.QuestionFilters{Subject: strings.TrimSpace(subject)})
}

func (s *questionService) GetByID(ctx context.Context, id string) (*models.Question, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	return store.GetByID(ctx, id)
}

func (s *questionService) GetByIDs(ctx context.Context, ids []string) ([]models.Question, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	return store.GetByIDs(ctx, ids)
}

func (s *questionService) Create(ctx context.Context, req *CreateQuestionRequest) (*models.Question, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	created, err := store.Create(ctx, questionFromRequest(req))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventQuestionCreated, created.ID)
	return created, nil
}

func (s *questionService) Update(ctx context.Context, id string, req *UpdateQuestionRequest) (*models.Question, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	updated, err := store.UpdateByID(ctx, id, questionFromRequest(req))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventQuestionUpdated, updated.ID)
	return updated, nil
}

func (s *questionService) Delete(ctx context.Context, id string) (bool, error) {
	store, err := s.store()
	if err != nil {
		return false, err
	}

	deleted, err := store.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publish(ctx, events.EventQuestionDeleted, id)
	}
	return deleted, nil
}

// publish emits a content-change event; failures are logged, never
// surfaced to the caller.
func (s *questionService) publish(ctx context.Context, eventType events.EventType, id string) {
	if s.publisher == nil {
		return
	}
	event := events.NewContentEvent(eventType, "question", id)
	if err := s.publisher.PublishContentEvent(ctx, event); err != nil {
		s.logger.LogError(err, "failed to publish content event", "event_type", eventType)
	}
}

func questionFromRequest(req *CreateQuestionRequest) *models.Question {
	return &models.Question{
		Subject:      strings.TrimSpace(req.Subject),
		Prompt:       strings.TrimSpace(req.Prompt),
		Options:      models.LabelChoices(trimAll(req.Options)),
		CorrectLabel: strings.ToUpper(strings.TrimSpace(req.CorrectLabel)),
		Feedbacks:    models.LabelChoices(trimAll(req.Feedbacks)),
		Hint:         strings.TrimSpace(req.Hint),
		Explanation:  strings.TrimSpace(req.Explanation),
	}
}

func trimAll(texts []string) []string {
	trimmed := make([]string, len(texts))
	for i, t := range texts {
		trimmed[i] = strings.TrimSpace(t)
	}
	return trimmed
}
