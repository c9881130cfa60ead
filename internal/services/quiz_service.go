package services

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/studyfeed/content-service/internal/errors"
	"github.com/studyfeed/content-service/internal/events"
	"github.com/studyfeed/content-service/internal/models"
	"github.com/studyfeed/content-service/internal/repositories"
	"github.com/studyfeed/content-service/internal/utils"
	"github.com/studyfeed/content-service/internal/validator"
)

// ===== REQUEST TYPES =====

type CreateQuizRequest struct {
	Title            string   `json:"title" validate:"required"`
	Description      string   `json:"description"`
	Subject          string   `json:"subject"`
	QuestionRefs     []string `json:"questionRefs" validate:"required,min=1,dive,required"`
	EstimatedMinutes int      `json:"estimatedMinutes" validate:"omitempty,min=1,max=180"`
	Instructions     string   `json:"instructions"`
}

type UpdateQuizRequest = CreateQuizRequest

// ===== SERVICE INTERFACE =====

type QuizService interface {
	Initialize(ctx context.Context) error
	Mode() BackingMode

	// List returns all quizzes, newest first, with question references
	// expanded to shallow summaries where the backing supports it.
	List(ctx context.Context) ([]models.Quiz, error)

	// GetByID eagerly resolves and embeds the full referenced questions;
	// the quiz-taking flow depends on this one read path joining.
	GetByID(ctx context.Context, id string) (*models.QuizWithQuestions, error)

	// Exists reports whether a quiz id resolves in the active backing.
	Exists(ctx context.Context, id string) (bool, error)

	Create(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error)
	Update(ctx context.Context, id string, req *UpdateQuizRequest) (*models.Quiz, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type quizService struct {
	fileStore repositories.QuizStore
	docStore  repositories.QuizStore
	questions QuestionService
	probe     Prober
	migrate   MigrateFunc
	mode      BackingMode
	validator *validator.Validator
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewQuizService(
	fileStore repositories.QuizStore,
	docStore repositories.QuizStore,
	questions QuestionService,
	probe Prober,
	migrate MigrateFunc,
	validator *validator.Validator,
	publisher events.EventPublisher,
	logger utils.Logger,
) QuizService {
	return &quizService{
		fileStore: fileStore,
		docStore:  docStore,
		questions: questions,
		probe:     probe,
		migrate:   migrate,
		validator: validator,
		publisher: publisher,
		logger:    logger.With("service", "quiz"),
	}
}

func (s *quizService) Initialize(ctx context.Context) error {
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
			s.logger.LogError(err, "quiz migration failed")
		}
	}
	return nil
}

func (s *quizService) Mode() BackingMode {
	return s.mode
}

func (s *quizService) store() (repositories.QuizStore, error) {
	switch s.mode {
	case ModeFile:
		return s.fileStore, nil
	case ModeDocument:
		return s.docStore, nil
	default:
		return nil, ErrNotInitialized
	}
}

func (s *quizService) List(ctx context.Context) ([]models.Quiz, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	return store.List(ctx, repositories.QuizFilters{Populate: true})
}

func (s *quizService) GetByID(ctx context.Context, id string) (*models.QuizWithQuestions, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}

	quiz, err := store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.GetByIDs(ctx, quiz.QuestionRefs)
	if err != nil {
		return nil, err
	}

	return &models.QuizWithQuestions{Quiz: *quiz, Questions: questions}, nil
}

func (s *quizService) Exists(ctx context.Context, id string) (bool, error) {
	store, err := s.store()
	if err != nil {
		return false, err
	}

	_, err = store.GetByID(ctx, id)
	if apperrors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *quizService) Create(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := s.validateQuestionRefs(ctx, req.QuestionRefs); err != nil {
		return nil, err
	}

	created, err := store.Create(ctx, quizFromRequest(req))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventQuizCreated, created.ID)
	return created, nil
}

func (s *quizService) Update(ctx context.Context, id string, req *UpdateQuizRequest) (*models.Quiz, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := s.validateQuestionRefs(ctx, req.QuestionRefs); err != nil {
		return nil, err
	}

	updated, err := store.UpdateByID(ctx, id, quizFromRequest(req))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventQuizUpdated, updated.ID)
	return updated, nil
}

func (s *quizService) Delete(ctx context.Context, id string) (bool, error) {
	store, err := s.store()
	if err != nil {
		return false, err
	}

	deleted, err := store.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publish(ctx, events.EventQuizDeleted, id)
	}
	return deleted, nil
}

// validateQuestionRefs checks every referenced question exists in the
// currently active backing. An id from the other backing does not
// resolve and is invalid, never coerced.
func (s *quizService) validateQuestionRefs(ctx context.Context, refs []string) error {
	found, err := s.questions.GetByIDs(ctx, refs)
	if err != nil {
		return err
	}

	foundSet := make(map[string]struct{}, len(found))
	for i := range found {
		foundSet[found[i].ID] = struct{}{}
	}

	var missing []string
	for _, ref := range refs {
		if _, ok := foundSet[ref]; !ok {
			missing = append(missing, ref)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("questionRefs",
			fmt.Sprintf("references %d unknown question(s)", len(missing)), missing)
	}
	return nil
}

func (s *quizService) publish(ctx context.Context, eventType events.EventType, id string) {
	if s.publisher == nil {
		return
	}
	event := events.NewContentEvent(eventType, "quiz", id)
	if err := s.publisher.PublishContentEvent(ctx, event); err != nil {
		s.logger.LogError(err, "failed to publish content event", "event_type", eventType)
	}
}

func quizFromRequest(req *CreateQuizRequest) *models.Quiz {
	minutes := req.EstimatedMinutes
	if minutes == 0 {
		minutes = models.DefaultEstimatedMinutes
	}
	return &models.Quiz{
		Title:            strings.TrimSpace(req.Title),
		Description:      strings.TrimSpace(req.Description),
		Subject:          strings.TrimSpace(req.Subject),
		QuestionRefs:     req.QuestionRefs,
		EstimatedMinutes: minutes,
		Instructions:     strings.TrimSpace(req.Instructions),
	}
}
