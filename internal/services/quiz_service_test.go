package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyfeed/content-service/internal/events"
	"github.com/studyfeed/content-service/internal/models"
	"github.com/studyfeed/content-service/internal/repositories/jsonfile"
	"github.com/studyfeed/content-service/internal/utils"
	"github.com/studyfeed/content-service/internal/validator"
)

func newFileModeQuizService(t *testing.T) (QuizService, QuestionService) {
	t.Helper()
	dir := t.TempDir()
	logger := utils.NewDevelopmentLogger()
	publisher := events.NewMockEventPublisher(utils.ToSlogLogger(logger))
	v := validator.New()

	questions := NewQuestionService(
		jsonfile.NewQuestionStore(filepath.Join(dir, "questions.json")),
		nil, nil, nil, v, publisher, logger)
	quizzes := NewQuizService(
		jsonfile.NewQuizStore(filepath.Join(dir, "quizzes.json")),
		nil, questions, nil, nil, v, publisher, logger)

	ctx := context.Background()
	require.NoError(t, questions.Initialize(ctx))
	require.NoError(t, quizzes.Initialize(ctx))
	return quizzes, questions
}

func createTestQuestion(t *testing.T, questions QuestionService, subject, prompt string) *models.Question {
	t.Helper()
	created, err := questions.Create(context.Background(), &CreateQuestionRequest{
		Subject:      subject,
		Prompt:       prompt,
		Options:      []string{"1", "2", "3", "4"},
		CorrectLabel: "A",
		Feedbacks:    []string{"f1", "f2", "f3", "f4"},
		Hint:         "hint",
		Explanation:  "explanation",
	})
	require.NoError(t, err)
	return created
}

func TestQuizService_CreateRejectsEmptyRefs(t *testing.T) {
	quizzes, _ := newFileModeQuizService(t)

	_, err := quizzes.Create(context.Background(), &CreateQuizRequest{
		Title:        "Empty",
		QuestionRefs: []string{},
	})
	assert.True(t, IsValidation(err))

	listed, listErr := quizzes.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, listed)
}

func TestQuizService_CreateRejectsUnknownRefs(t *testing.T) {
	quizzes, questions := newFileModeQuizService(t)
	q := createTestQuestion(t, questions, "Math", "2+2?")

	_, err := quizzes.Create(context.Background(), &CreateQuizRequest{
		Title:        "Mixed",
		QuestionRefs: []string{q.ID, "does-not-exist"},
	})
	assert.True(t, IsValidation(err))
}

func TestQuizService_CreateAppliesDefaultDuration(t *testing.T) {
	quizzes, questions := newFileModeQuizService(t)
	q := createTestQuestion(t, questions, "Math", "2+2?")

	created, err := quizzes.Create(context.Background(), &CreateQuizRequest{
		Title:        "Arithmetic",
		QuestionRefs: []string{q.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultEstimatedMinutes, created.EstimatedMinutes)
}

func TestQuizService_CreateRejectsOutOfRangeDuration(t *testing.T) {
	quizzes, questions := newFileModeQuizService(t)
	q := createTestQuestion(t, questions, "Math", "2+2?")

	_, err := quizzes.Create(context.Background(), &CreateQuizRequest{
		Title:            "Marathon",
		QuestionRefs:     []string{q.ID},
		EstimatedMinutes: 181,
	})
	assert.True(t, IsValidation(err))
}

func TestQuizService_GetByIDEmbedsFullQuestions(t *testing.T) {
	quizzes, questions := newFileModeQuizService(t)
	ctx := context.Background()

	first := createTestQuestion(t, questions, "Math", "first")
	second := createTestQuestion(t, questions, "Math", "second")

	created, err := quizzes.Create(ctx, &CreateQuizRequest{
		Title:        "Two Questions",
		QuestionRefs: []string{second.ID, first.ID},
	})
	require.NoError(t, err)

	got, err := quizzes.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	// Reference order is the quiz's declared order, not storage order.
	assert.Equal(t, "second", got.Questions[0].Prompt)
	assert.Equal(t, "first", got.Questions[1].Prompt)
	assert.Len(t, got.Questions[0].Options, 4)
}

func TestQuizService_Exists(t *testing.T) {
	quizzes, questions := newFileModeQuizService(t)
	ctx := context.Background()
	q := createTestQuestion(t, questions, "Math", "2+2?")

	created, err := quizzes.Create(ctx, &CreateQuizRequest{
		Title:        "Arithmetic",
		QuestionRefs: []string{q.ID},
	})
	require.NoError(t, err)

	exists, err := quizzes.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = quizzes.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestQuizService_UpdateRevalidatesRefs(t *testing.T) {
	quizzes, questions := newFileModeQuizService(t)
	ctx := context.Background()
	q := createTestQuestion(t, questions, "Math", "2+2?")

	created, err := quizzes.Create(ctx, &CreateQuizRequest{
		Title:        "Arithmetic",
		QuestionRefs: []string{q.ID},
	})
	require.NoError(t, err)

	_, err = quizzes.Update(ctx, created.ID, &UpdateQuizRequest{
		Title:        "Arithmetic",
		QuestionRefs: []string{"ghost"},
	})
	assert.True(t, IsValidation(err))

	// The stored quiz is untouched by the failed update.
	got, err := quizzes.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{q.ID}, got.QuestionRefs)
}
