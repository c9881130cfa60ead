package services

import (
	"context"
	"strings"
	"time"

	"github.com/studyfeed/content-service/internal/cache"
	"github.com/studyfeed/content-service/internal/events"
	"github.com/studyfeed/content-service/internal/models"
	"github.com/studyfeed/content-service/internal/repositories"
	"github.com/studyfeed/content-service/internal/utils"
	"github.com/studyfeed/content-service/internal/validator"
)

const (
	postListCacheKey = "posts:all"
	postListCacheTTL = 5 * time.Minute
)

// ===== REQUEST TYPES =====

type CreatePostRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Body        string `json:"body"`
	AudioLink   string `json:"audioLink" validate:"omitempty,url"`
	PDFLink     string `json:"pdfLink" validate:"omitempty,url"`
	Subject     string `json:"subject"`
	QuizRef     string `json:"quizRef"`
}

type UpdatePostRequest = CreatePostRequest

// ===== SERVICE INTERFACE =====

type PostService interface {
	Initialize(ctx context.Context) error
	Mode() BackingMode

	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, req *CreatePostRequest) (*models.Post, error)
	Update(ctx context.Context, id string, req *UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type postService struct {
	fileStore repositories.PostStore
	docStore  repositories.PostStore
	quizzes   QuizService
	probe     Prober
	migrate   MigrateFunc
	mode      BackingMode
	validator *validator.Validator
	publisher events.EventPublisher
	cache     cache.CacheService
	logger    utils.Logger
}

func NewPostService(
	fileStore repositories.PostStore,
	docStore repositories.PostStore,
	quizzes QuizService,
	probe Prober,
	migrate MigrateFunc,
	validator *validator.Validator,
	publisher events.EventPublisher,
	cacheService cache.CacheService,
	logger utils.Logger,
) PostService {
	return &postService{
		fileStore: fileStore,
		docStore:  docStore,
		quizzes:   quizzes,
		probe:     probe,
		migrate:   migrate,
		validator: validator,
		publisher: publisher,
		cache:     cacheService,
		logger:    logger.With("service", "post"),
	}
}

func (s *postService) Initialize(ctx context.Context) error {
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
			s.logger.LogError(err, "post migration failed")
		}
	}
	return nil
}

func (s *postService) Mode() BackingMode {
	return s.mode
}

func (s *postService) store() (repositories.PostStore, error) {
	switch s.mode {
	case ModeFile:
		return s.fileStore, nil
	case ModeDocument:
		return s.docStore, nil
	default:
		return nil, ErrNotInitialized
	}
}

func (s *postService) List(ctx context.Context) ([]models.Post, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}

	var cached []models.Post
	if err := s.cache.Get(ctx, postListCacheKey, &cached); err == nil {
		return cached, nil
	}

	posts, err := store.List(ctx, repositories.PostFilters{Populate: true})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, postListCacheKey, posts, postListCacheTTL); err != nil {
		s.logger.Warn("failed to cache post listing", "error", err)
	}
	return posts, nil
}

func (s *postService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	return store.GetByID(ctx, id)
}

func (s *postService) Create(ctx context.Context, req *CreatePostRequest) (*models.Post, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	post := s.postFromRequest(ctx, req)
	created, err := store.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	s.publish(ctx, events.EventPostCreated, created.ID)
	return created, nil
}

func (s *postService) Update(ctx context.Context, id string, req *UpdatePostRequest) (*models.Post, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	post := s.postFromRequest(ctx, req)
	updated, err := store.UpdateByID(ctx, id, post)
	if err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	s.publish(ctx, events.EventPostUpdated, updated.ID)
	return updated, nil
}

func (s *postService) Delete(ctx context.Context, id string) (bool, error) {
	store, err := s.store()
	if err != nil {
		return false, err
	}

	deleted, err := store.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidateListCache(ctx)
		s.publish(ctx, events.EventPostDeleted, id)
	}
	return deleted, nil
}

// postFromRequest builds the post record. The quiz reference is checked
// against the active backing and silently dropped when it does not
// resolve: a bad reference never fails the whole post write. The same
// policy applies on create and update.
func (s *postService) postFromRequest(ctx context.Context, req *CreatePostRequest) *models.Post {
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = models.DefaultSubject
	}

	quizRef := strings.TrimSpace(req.QuizRef)
	if quizRef != "" {
		exists, err := s.quizzes.Exists(ctx, quizRef)
		if err != nil {
			s.logger.Warn("quiz lookup failed, dropping quiz reference", "quiz_ref", quizRef, "error", err)
			quizRef = ""
		} else if !exists {
			s.logger.Warn("quiz reference does not resolve, dropping it", "quiz_ref", quizRef)
			quizRef = ""
		}
	}

	return &models.Post{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Body:        strings.TrimSpace(req.Body),
		AudioLink:   strings.TrimSpace(req.AudioLink),
		PDFLink:     strings.TrimSpace(req.PDFLink),
		Subject:     subject,
		QuizRef:     quizRef,
	}
}

func (s *postService) invalidateListCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, postListCacheKey); err != nil {
		s.logger.Warn("failed to invalidate post listing cache", "error", err)
	}
}

func (s *postService) publish(ctx context.Context, eventType events.EventType, id string) {
	if s.publisher == nil {
		return
	}
	event := events.NewContentEvent(eventType, "post", id)
	if err := s.publisher.PublishContentEvent(ctx, event); err != nil {
		s.logger.LogError(err, "failed to publish content event", "event_type", eventType)
	}
}
