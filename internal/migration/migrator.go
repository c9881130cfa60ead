// Package migration moves legacy JSON-file records into the document
// store exactly once, at startup. Cross-entity references are remapped
// by content equality because no stable id mapping survives the switch
// of backings: a quiz's question refs resolve by (subject, prompt) and
// a post's quiz ref by (title, subject). Duplicate content therefore
// collides; this is a documented limitation of the scheme, carried
// deliberately, not a bug to fix here.
package migration

import (
	"context"

	apperrors "github.com/studyfeed/content-service/internal/errors"
	"github.com/studyfeed/content-service/internal/models"
	"github.com/studyfeed/content-service/internal/repositories"
	"github.com/studyfeed/content-service/internal/utils"
)

// Migrator transfers one entity collection at a time, in dependency
// order: questions first, then quizzes (which need migrated questions
// to resolve refs), then posts (which need migrated quizzes).
type Migrator struct {
	questionsFile repositories.QuestionStore
	questionsDoc  repositories.QuestionStore
	quizzesFile   repositories.QuizStore
	quizzesDoc    repositories.QuizStore
	postsFile     repositories.PostStore
	postsDoc      repositories.PostStore
	logger        utils.Logger
}

func NewMigrator(
	questionsFile, questionsDoc repositories.QuestionStore,
	quizzesFile, quizzesDoc repositories.QuizStore,
	postsFile, postsDoc repositories.PostStore,
	logger utils.Logger,
) *Migrator {
	return &Migrator{
		questionsFile: questionsFile,
		questionsDoc:  questionsDoc,
		quizzesFile:   quizzesFile,
		quizzesDoc:    quizzesDoc,
		postsFile:     postsFile,
		postsDoc:      postsDoc,
		logger:        logger.With("component", "migration"),
	}
}

// Run performs the full ordered migration. Normally each entity service
// triggers its own step during initialization; Run exists for callers
// that compose the steps directly.
func (m *Migrator) Run(ctx context.Context) error {
	if err := m.MigrateQuestions(ctx); err != nil {
		return err
	}
	if err := m.MigrateQuizzes(ctx); err != nil {
		return err
	}
	return m.MigratePosts(ctx)
}

// MigrateQuestions copies every file-backed question into the document
// store, preserving original timestamps. A non-empty target collection
// means the migration already ran; nothing is merged or deduplicated.
func (m *Migrator) MigrateQuestions(ctx context.Context) error {
	count, err := m.questionsDoc.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	questions, err := m.questionsFile.List(ctx, repositories.QuestionFilters{})
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return nil
	}

	m.logger.Info("migrating questions from JSON files", "count", len(questions))

	migrated := 0
	for i := range questions {
		q := questions[i]
		fileID := q.ID
		q.ID = ""

		if _, err := m.questionsDoc.Create(ctx, &q); err != nil {
			recErr := apperrors.NewMigrationRecordError("question", fileID, err)
			m.logger.LogError(recErr, "skipping question record")
			continue
		}
		migrated++
	}

	m.logger.Info("question migration finished", "migrated", migrated, "total", len(questions))
	return nil
}

// MigrateQuizzes copies file-backed quizzes, resolving each file-local
// question id to a document-store id: the original file question is
// looked up by its id, then matched against the migrated questions by
// subject and prompt. Unresolvable references are dropped; a quiz left
// with no resolved references is skipped entirely.
func (m *Migrator) MigrateQuizzes(ctx context.Context) error {
	count, err := m.quizzesDoc.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	quizzes, err := m.quizzesFile.List(ctx, repositories.QuizFilters{})
	if err != nil {
		return err
	}
	if len(quizzes) == 0 {
		return nil
	}

	m.logger.Info("migrating quizzes from JSON files", "count", len(quizzes))

	fileQuestions, err := m.questionsFile.List(ctx, repositories.QuestionFilters{})
	if err != nil {
		return err
	}
	docQuestions, err := m.questionsDoc.List(ctx, repositories.QuestionFilters{})
	if err != nil {
		return err
	}

	fileByID := make(map[string]models.Question, len(fileQuestions))
	for _, q := range fileQuestions {
		fileByID[q.ID] = q
	}

	migrated := 0
	for i := range quizzes {
		quiz := quizzes[i]
		fileID := quiz.ID

		mapped := make([]string, 0, len(quiz.QuestionRefs))
		for _, ref := range quiz.QuestionRefs {
			original, ok := fileByID[ref]
			if !ok {
				m.logger.Warn("quiz references unknown file question, dropping ref",
					"quiz_id", fileID, "question_ref", ref)
				continue
			}
			docID := matchQuestionByContent(docQuestions, original)
			if docID == "" {
				m.logger.Warn("no content match for quiz question ref, dropping ref",
					"quiz_id", fileID, "question_ref", ref)
				continue
			}
			mapped = append(mapped, docID)
		}

		if len(mapped) == 0 {
			m.logger.Warn("quiz has no resolvable question refs, skipping", "quiz_id", fileID)
			continue
		}

		quiz.ID = ""
		quiz.QuestionRefs = mapped
		quiz.Questions = nil

		if _, err := m.quizzesDoc.Create(ctx, &quiz); err != nil {
			recErr := apperrors.NewMigrationRecordError("quiz", fileID, err)
			m.logger.LogError(recErr, "skipping quiz record")
			continue
		}
		migrated++
	}

	m.logger.Info("quiz migration finished", "migrated", migrated, "total", len(quizzes))
	return nil
}

// MigratePosts copies file-backed posts, resolving each file-local quiz
// id to a document-store id by matching the original file quiz's title
// and subject against the migrated quizzes. A reference that fails to
// resolve is dropped, leaving the post with no quiz attached.
func (m *Migrator) MigratePosts(ctx context.Context) error {
	count, err := m.postsDoc.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	posts, err := m.postsFile.List(ctx, repositories.PostFilters{})
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return nil
	}

	m.logger.Info("migrating posts from JSON files", "count", len(posts))

	fileQuizzes, err := m.quizzesFile.List(ctx, repositories.QuizFilters{})
	if err != nil {
		return err
	}
	docQuizzes, err := m.quizzesDoc.List(ctx, repositories.QuizFilters{})
	if err != nil {
		return err
	}

	// file quiz id -> document-store quiz id, matched by title+subject.
	quizIDMapping := make(map[string]string, len(fileQuizzes))
	for _, fileQuiz := range fileQuizzes {
		for i := range docQuizzes {
			if docQuizzes[i].Title == fileQuiz.Title && docQuizzes[i].Subject == fileQuiz.Subject {
				quizIDMapping[fileQuiz.ID] = docQuizzes[i].ID
				break
			}
		}
	}

	migrated := 0
	for i := range posts {
		post := posts[i]
		fileID := post.ID

		if post.QuizRef != "" {
			switch {
			case quizIDMapping[post.QuizRef] != "":
				post.QuizRef = quizIDMapping[post.QuizRef]
			case isHexObjectID(post.QuizRef):
				// Already a document-store id; carried over as is.
			default:
				m.logger.Warn("no content match for post quiz ref, dropping ref",
					"post_id", fileID, "quiz_ref", post.QuizRef)
				post.QuizRef = ""
			}
		}

		post.ID = ""
		post.Quiz = nil

		if _, err := m.postsDoc.Create(ctx, &post); err != nil {
			recErr := apperrors.NewMigrationRecordError("post", fileID, err)
			m.logger.LogError(recErr, "skipping post record")
			continue
		}
		migrated++
	}

	m.logger.Info("post migration finished", "migrated", migrated, "total", len(posts))
	return nil
}

// matchQuestionByContent finds the migrated question whose subject and
// prompt equal the original file record's. First match wins; duplicate
// content cannot be disambiguated by this scheme.
func matchQuestionByContent(docQuestions []models.Question, original models.Question) string {
	for i := range docQuestions {
		if docQuestions[i].Prompt == original.Prompt && docQuestions[i].Subject == original.Subject {
			return docQuestions[i].ID
		}
	}
	return ""
}

// isHexObjectID reports whether s already looks like a document-store
// id (24 hex characters).
func isHexObjectID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
