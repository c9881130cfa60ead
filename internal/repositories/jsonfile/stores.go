package jsonfile

import (
	"context"
	"sort"
	"strings"
	"time"

	apperrors "github.com/studyfeed/content-service/internal/errors"
	"github.com/studyfeed/content-service/internal/models"
	"github.com/studyfeed/content-service/internal/repositories"
)

// ===== POSTS =====

type PostStore struct {
	col *collection[models.Post]
}

func NewPostStore(path string) repositories.PostStore {
	return &PostStore{col: newCollection[models.Post](path)}
}

func (s *PostStore) List(ctx context.Context, filters repositories.PostFilters) ([]models.Post, error) {
	// Reference expansion is a document-store feature; the file backing
	// returns plain string references regardless of filters.Populate.
	posts, err := s.col.loadAll()
	if err != nil {
		return nil, apperrors.NewInfrastructureError("post", "list", "", err)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *PostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	posts, err := s.col.loadAll()
	if err != nil {
		return nil, apperrors.NewInfrastructureError("post", "get", id, err)
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("post", id)
}

func (s *PostStore) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	posts, err := s.col.loadAll()
	if err != nil {
		return nil, apperrors.NewInfrastructureError("post", "create", "", err)
	}

	created := *post
	created.ID = newRecordID(func(id string) bool {
		for i := range posts {
			if posts[i].ID == id {
				return true
			}
		}
		return false
	})
	stampTimestamps(&created.CreatedAt, &created.UpdatedAt)

	posts = append(posts, created)
	if err := s.col.saveAll(posts); err != nil {
		return nil, apperrors.NewInfrastructureError("post", "create", created.ID, err)
	}
	return &created, nil
}

func (s *PostStore) UpdateByID(ctx context.Context, id string, post *models.Post) (*models.Post, error) {
	posts, err := s.col.loadAll()
	if err != nil {
		return nil, apperrors.NewInfrastructureError("post", "update", id, err)
	}

	for i := range posts {
		if posts[i].ID != id {
			continue
		}
		updated := *post
		updated.ID = id
		updated.CreatedAt = posts[i].CreatedAt
		updated.UpdatedAt = time.Now().UTC()
		posts[i] = updated
		if err := s.col.saveAll(posts); err != nil {
			return nil, apperrors.NewInfrastructureError("post", "update", id, err)
		}
		return &posts[i], nil
	}
	return nil, apperrors.NewNotFoundError("post", id)
}

func (s *PostStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	posts, err := s.col.loadAll()
	if err != nil {
		return false, apperrors.NewInfrastructureError("post", "delete", id, err)
	}

	kept := posts[:0]
	for _, p := range posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(posts) {
		return false, nil
	}
	if err := s.col.saveAll(kept); err != nil {
		return false, apperrors.NewInfrastructureError("post", "delete", id, err)
	}
	return true, nil
}

func (s *PostStore) Count(ctx context.Context) (int64, error) {
	posts, err := s.col.loadAll()
	if err != nil {
		return 0, apperrors.NewInfrastructureError("post", "count", "", err)
	}
	return int64(len(posts)), nil
}

// ===== QUESTIONS =====

type QuestionStore struct {
	col *collection[models.Question]
}

func NewQuestionStore(path string) repositories.QuestionStore {
	return &QuestionStore{col: newCollection[models.Question](path)}
}

func (s *QuestionStore) List(ctx context.Context, filters repositories.QuestionFilters) ([]models.Question, error) {
	questions, err := s.col.loadAll()
	if err != nil {
		return nil, apperrors.NewInfrastructureError("question", "list", "", err)
	}

	if filters.Subject != "" {
		filtered := questions[:0]
		for _, q := range questions {
			if strings.EqualFold(q.Subject, filters.Subject) {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}

	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].Subject != questions[j].Subject {
			return questions[i].Subject < questions[j].Subject
		}
		return questions[i].CreatedAt.After(questions[j].CreatedAt)
	})
	return questions, nil
}

func (s *QuestionStore) GetByID(ctx context.Context, id string) (*models.Question, error) {
	questions, err := s.col.loadAll()
	if err != nil {
		return nil, apperrors.NewInfrastructureError("question", "get", id, err)
	}
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("question", id)
}

func (s *QuestionStore) GetByIDs(ctx context.Context, ids []string) ([]models.Question, error) {
	questions, err := s.col.loadAll()
	if err != nil {
		return nil, apperrors.NewInfrastructureError("question", "get", "", err)
	}

	byID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	found := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			found = append(found, q)
		}
	}
	return found, nil
}

func (s *QuestionStore) Create(ctx context.Context, question *models.Question) (*models.Question, error) {
	questions, err := s.col.loadAll()
	if err != nil {
		return nil, apperrors.NewInfrastructureError("question", "create", "", err)
	}

	created := *question
	created.ID = newRecordID(func(id string) bool {
		for i := range questions {
			if questions[i].ID == id {
				return true
			}
		}
		return false
	})
	stampTimestamps(&created.CreatedAt, &created.UpdatedAt)

	questions = append(questions, created)
	if err := s.col.saveAll(questions); err != nil {
		return nil, apperrors.NewInfrastructureError("question", "create", created.ID, err)
	}
	return &created, nil
}

func (s *QuestionStore) UpdateByID(ctx context.Context, id string, question *models.Question) (*models.Question, error) {
	questions, err := s.col.loadAll()
	if err != nil {
		return nil, apperrors.NewInfrastructureError("question", "update", id, err)
	}

	for i := range questions {
		if questions[i].ID != id {
			continue
		}
		updated := *question
		updated.ID = id
		updated.CreatedAt = questions[i].CreatedAt
		updated.UpdatedAt = time.Now().UTC()
		questions[i] = updated
		if err := s.col.saveAll(questions); err != nil {
			return nil, apperrors.NewInfrastructureError("question", "update", id, err)
		}
		return &questions[i], nil
	}
	return nil, apperrors.NewNotFoundError("question", id)
}

func (s *QuestionStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	questions, err := s.col.loadAll()
	if err != nil {
		return false, apperrors.NewInfrastructureError("question", "delete", id, err)
	}

	kept := questions[:0]
	for _, q := range questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	if len(kept) == len(questions) {
		return false, nil
	}
	if err := s.col.saveAll(kept); err != nil {
		return false, apperrors.NewInfrastructureError("question", "delete", id, err)
	}
	return true, nil
}

func (s *QuestionStore) Count(ctx context.Context) (int64, error) {
	questions, err := s.col.loadAll()
	if err != nil {
		return 0, apperrors.NewInfrastructureError("question", "count", "", err)
	}
	return int64(len(questions)), nil
}

// ===== QUIZZES =====

type QuizStore struct {
	col *collection[models.Quiz]
}

func NewQuizStore(path string) repositories.QuizStore {
	return &QuizStore{col: newCollection[models.Quiz](path)}
}

func (s *QuizStore) List(ctx context.Context, filters repositories.QuizFilters) ([]models.Quiz, error) {
	quizzes, err := s.col.loadAll()
	if err != nil {
		return nil, apperrors.NewInfrastructureError("quiz", "list", "", err)
	}
	sort.SliceStable(quizzes, func(i, j int) bool {
		return quizzes[i].CreatedAt.After(quizzes[j].CreatedAt)
	})
	return quizzes, nil
}

func (s *QuizStore) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	quizzes, err := s.col.loadAll()
	if err != nil {
		return nil, apperrors.NewInfrastructureError("quiz", "get", id, err)
	}
	for i := range quizzes {
		if quizzes[i].ID == id {
			return &quizzes[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("quiz", id)
}

func (s *QuizStore) Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	quizzes, err := s.col.loadAll()
	if err != nil {
		return nil, apperrors.NewInfrastructureError("quiz", "create", "", err)
	}

	created := *quiz
	created.ID = newRecordID(func(id string) bool {
		for i := range quizzes {
			if quizzes[i].ID == id {
				return true
			}
		}
		return false
	})
	stampTimestamps(&created.CreatedAt, &created.UpdatedAt)

	quizzes = append(quizzes, created)
	if err := s.col.saveAll(quizzes); err != nil {
		return nil, apperrors.NewInfrastructureError("quiz", "create", created.ID, err)
	}
	return &created, nil
}

func (s *QuizStore) UpdateByID(ctx context.Context, id string, quiz *models.Quiz) (*models.Quiz, error) {
	quizzes, err := s.col.loadAll()
	if err != nil {
		return nil, apperrors.NewInfrastructureError("quiz", "update", id, err)
	}

	for i := range quizzes {
		if quizzes[i].ID != id {
			continue
		}
		updated := *quiz
		updated.ID = id
		updated.CreatedAt = quizzes[i].CreatedAt
		updated.UpdatedAt = time.Now().UTC()
		quizzes[i] = updated
		if err := s.col.saveAll(quizzes); err != nil {
			return nil, apperrors.NewInfrastructureError("quiz", "update", id, err)
		}
		return &quizzes[i], nil
	}
	return nil, apperrors.NewNotFoundError("quiz", id)
}

func (s *QuizStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	quizzes, err := s.col.loadAll()
	if err != nil {
		return false, apperrors.NewInfrastructureError("quiz", "delete", id, err)
	}

	kept := quizzes[:0]
	for _, q := range quizzes {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	if len(kept) == len(quizzes) {
		return false, nil
	}
	if err := s.col.saveAll(kept); err != nil {
		return false, apperrors.NewInfrastructureError("quiz", "delete", id, err)
	}
	return true, nil
}

func (s *QuizStore) Count(ctx context.Context) (int64, error) {
	quizzes, err := s.col.loadAll()
	if err != nil {
		return 0, apperrors.NewInfrastructureError("quiz", "count", "", err)
	}
	return int64(len(quizzes)), nil
}

// stampTimestamps fills zero timestamps with the current time. Migrated
// records arrive with their original timestamps already set.
func stampTimestamps(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}
