package services

import (
	"context"

	"github.com/studyfeed/content-service/internal/cache"
	"github.com/studyfeed/content-service/internal/events"
	"github.com/studyfeed/content-service/internal/migration"
	"github.com/studyfeed/content-service/internal/repositories"
	"github.com/studyfeed/content-service/internal/utils"
	"github.com/studyfeed/content-service/internal/validator"
)

// ServiceManager wires the entity services together and owns their
// startup sequencing.
type ServiceManager interface {
	// Initialize brings every service up in migration dependency order:
	// questions first, then quizzes, then posts. Callers must not invoke
	// entity operations before this returns.
	Initialize(ctx context.Context) error

	Posts() PostService
	Questions() QuestionService
	Quizzes() QuizService
	Export() ExportService
}

// ManagerConfig carries every dependency the services need. DocStores
// may be nil when no document store is configured; the services then
// serve from the file backing permanently.
type ManagerConfig struct {
	PostsFile     repositories.PostStore
	PostsDoc      repositories.PostStore
	QuestionsFile repositories.QuestionStore
	QuestionsDoc  repositories.QuestionStore
	QuizzesFile   repositories.QuizStore
	QuizzesDoc    repositories.QuizStore

	Probe     Prober
	Migrator  *migration.Migrator
	Validator *validator.Validator
	Publisher events.EventPublisher
	Cache     cache.CacheService
	Logger    utils.Logger
}

type serviceManager struct {
	posts     PostService
	questions QuestionService
	quizzes   QuizService
	export    ExportService
}

func NewServiceManager(cfg ManagerConfig) ServiceManager {
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNoopCache()
	}

	var migrateQuestions, migrateQuizzes, migratePosts MigrateFunc
	if cfg.Migrator != nil {
		migrateQuestions = cfg.Migrator.MigrateQuestions
		migrateQuizzes = cfg.Migrator.MigrateQuizzes
		migratePosts = cfg.Migrator.MigratePosts
	}

	questions := NewQuestionService(
		cfg.QuestionsFile, cfg.QuestionsDoc, cfg.Probe, migrateQuestions,
		cfg.Validator, cfg.Publisher, cfg.Logger)
	quizzes := NewQuizService(
		cfg.QuizzesFile, cfg.QuizzesDoc, questions, cfg.Probe, migrateQuizzes,
		cfg.Validator, cfg.Publisher, cfg.Logger)
	posts := NewPostService(
		cfg.PostsFile, cfg.PostsDoc, quizzes, cfg.Probe, migratePosts,
		cfg.Validator, cfg.Publisher, cfg.Cache, cfg.Logger)

	return &serviceManager{
		posts:     posts,
		questions: questions,
		quizzes:   quizzes,
		export:    NewExportService(questions, cfg.Logger),
	}
}

func (m *serviceManager) Initialize(ctx context.Context) error {
	// Quiz migration resolves question references and post migration
	// resolves quiz references, so the order is fixed.
	if err := m.questions.Initialize(ctx); err != nil {
		return err
	}
	if err := m.quizzes.Initialize(ctx); err != nil {
		return err
	}
	return m.posts.Initialize(ctx)
}

func (m *serviceManager) Posts() PostService           { return m.posts }
func (m *serviceManager) Questions() QuestionService   { return m.questions }
func (m *serviceManager) Quizzes() QuizService         { return m.quizzes }
func (m *serviceManager) Export() ExportService        { return m.export }
