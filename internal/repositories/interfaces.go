package repositories

import (
	"context"

	"github.com/studyfeed/content-service/internal/models"
)

// The stores expose the fixed capability set every backing implements:
// list, get, create, update, delete, plus a count used by the one-shot
// migration to decide idempotence. A backing is chosen once per service
// at startup and held for the service's lifetime.
//
// Create stamps CreatedAt/UpdatedAt only when the caller left them
// zero, so the migration can carry original timestamps through.
// GetByID and UpdateByID return a *errors.NotFoundError when the id is
// absent; DeleteByID reports absence through its boolean instead.

// ===== FILTERS =====

type PostFilters struct {
	// Populate expands QuizRef into a shallow quiz view on each post.
	Populate bool
}

type QuestionFilters struct {
	// Subject filters by case-insensitive exact match when non-empty.
	Subject string
}

type QuizFilters struct {
	// Populate expands QuestionRefs into shallow question views.
	Populate bool
}

// ===== STORES =====

type PostStore interface {
	List(ctx context.Context, filters PostFilters) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	UpdateByID(ctx context.Context, id string, post *models.Post) (*models.Post, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type QuestionStore interface {
	List(ctx context.Context, filters QuestionFilters) ([]models.Question, error)
	GetByID(ctx context.Context, id string) (*models.Question, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Question, error)
	Create(ctx context.Context, question *models.Question) (*models.Question, error)
	UpdateByID(ctx context.Context, id string, question *models.Question) (*models.Question, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type QuizStore interface {
	List(ctx context.Context, filters QuizFilters) ([]models.Quiz, error)
	GetByID(ctx context.Context, id string) (*models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error)
	UpdateByID(ctx context.Context, id string, quiz *models.Quiz) (*models.Quiz, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
