package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/studyfeed/content-service/internal/errors"
	"github.com/studyfeed/content-service/internal/models"
	"github.com/studyfeed/content-service/internal/repositories"
)

func newTestQuestionStore(t *testing.T) repositories.QuestionStore {
	t.Helper()
	return NewQuestionStore(filepath.Join(t.TempDir(), "questions.json"))
}

func TestQuestionStore_ListMissingFileIsEmpty(t *testing.T) {
	store := newTestQuestionStore(t)

	questions, err := store.List(context.Background(), repositories.QuestionFilters{})
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestQuestionStore_CreateAssignsIDAndTimestamps(t *testing.T) {
	store := newTestQuestionStore(t)

	created, err := store.Create(context.Background(), &models.Question{
		Subject:      "Math",
		Prompt:       "2+2?",
		Options:      models.LabelChoices([]string{"3", "4", "5", "6"}),
		CorrectLabel: "B",
		Feedbacks:    models.LabelChoices([]string{"no", "yes", "no", "no"}),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())

	got, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2+2?", got.Prompt)
}

func TestQuestionStore_CreatePreservesMigratedTimestamps(t *testing.T) {
	store := newTestQuestionStore(t)
	original := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)

	created, err := store.Create(context.Background(), &models.Question{
		Subject:   "Math",
		Prompt:    "legacy",
		CreatedAt: original,
		UpdatedAt: original,
	})
	require.NoError(t, err)
	assert.Equal(t, original, created.CreatedAt)
	assert.Equal(t, original, created.UpdatedAt)
}

func TestQuestionStore_GetByIDNotFound(t *testing.T) {
	store := newTestQuestionStore(t)

	_, err := store.GetByID(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestQuestionStore_ListSubjectFilterIsCaseInsensitive(t *testing.T) {
	store := newTestQuestionStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, &models.Question{Subject: "Math", Prompt: "q1"})
	require.NoError(t, err)
	_, err = store.Create(ctx, &models.Question{Subject: "History", Prompt: "q2"})
	require.NoError(t, err)

	questions, err := store.List(ctx, repositories.QuestionFilters{Subject: "math"})
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "q1", questions[0].Prompt)
}

func TestQuestionStore_ListSortsBySubjectThenRecency(t *testing.T) {
	store := newTestQuestionStore(t)
	ctx := context.Background()

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := store.Create(ctx, &models.Question{Subject: "Math", Prompt: "old math", CreatedAt: older, UpdatedAt: older})
	require.NoError(t, err)
	_, err = store.Create(ctx, &models.Question{Subject: "History", Prompt: "history", CreatedAt: older, UpdatedAt: older})
	require.NoError(t, err)
	_, err = store.Create(ctx, &models.Question{Subject: "Math", Prompt: "new math", CreatedAt: newer, UpdatedAt: newer})
	require.NoError(t, err)

	questions, err := store.List(ctx, repositories.QuestionFilters{})
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, "history", questions[0].Prompt)
	assert.Equal(t, "new math", questions[1].Prompt)
	assert.Equal(t, "old math", questions[2].Prompt)
}

func TestQuestionStore_GetByIDsPreservesRequestOrder(t *testing.T) {
	store := newTestQuestionStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, &models.Question{Subject: "Math", Prompt: "first"})
	require.NoError(t, err)
	second, err := store.Create(ctx, &models.Question{Subject: "Math", Prompt: "second"})
	require.NoError(t, err)

	found, err := store.GetByIDs(ctx, []string{second.ID, "missing", first.ID})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "second", found[0].Prompt)
	assert.Equal(t, "first", found[1].Prompt)
}

func TestQuestionStore_UpdatePreservesIDAndCreatedAt(t *testing.T) {
	store := newTestQuestionStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, &models.Question{Subject: "Math", Prompt: "before"})
	require.NoError(t, err)

	updated, err := store.UpdateByID(ctx, created.ID, &models.Question{Subject: "Math", Prompt: "after"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "after", updated.Prompt)
}

func TestQuestionStore_UpdateMissingReturnsNotFound(t *testing.T) {
	store := newTestQuestionStore(t)

	_, err := store.UpdateByID(context.Background(), "missing", &models.Question{Subject: "Math", Prompt: "x"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestQuestionStore_DeleteReportsAbsenceAsFalse(t *testing.T) {
	store := newTestQuestionStore(t)
	ctx := context.Background()

	deleted, err := store.DeleteByID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, deleted)

	created, err := store.Create(ctx, &models.Question{Subject: "Math", Prompt: "q"})
	require.NoError(t, err)

	deleted, err = store.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPostStore_ListSortsNewestFirst(t *testing.T) {
	store := NewPostStore(filepath.Join(t.TempDir(), "posts.json"))
	ctx := context.Background()

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := store.Create(ctx, &models.Post{Title: "old", Subject: "General", CreatedAt: older, UpdatedAt: older})
	require.NoError(t, err)
	_, err = store.Create(ctx, &models.Post{Title: "new", Subject: "General", CreatedAt: newer, UpdatedAt: newer})
	require.NoError(t, err)

	posts, err := store.List(ctx, repositories.PostFilters{})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Title)
	assert.Equal(t, "old", posts[1].Title)
}

func TestQuizStore_RoundTrip(t *testing.T) {
	store := NewQuizStore(filepath.Join(t.TempDir(), "quizzes.json"))
	ctx := context.Background()

	created, err := store.Create(ctx, &models.Quiz{
		Title:            "Algebra Basics",
		Subject:          "Math",
		QuestionRefs:     []string{"q1", "q2"},
		EstimatedMinutes: 30,
	})
	require.NoError(t, err)

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2"}, got.QuestionRefs)
	assert.Equal(t, 30, got.EstimatedMinutes)
}

func TestCollection_PersistsAcrossStoreInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	ctx := context.Background()

	first := NewQuestionStore(path)
	created, err := first.Create(ctx, &models.Question{Subject: "Math", Prompt: "persisted"})
	require.NoError(t, err)

	second := NewQuestionStore(path)
	got, err := second.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Prompt)
}

func TestCollection_WritesPrettyPrintedArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	ctx := context.Background()

	store := NewQuestionStore(path)
	_, err := store.Create(ctx, &models.Question{Subject: "Math", Prompt: "q"})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []models.Question
	require.NoError(t, json.Unmarshal(raw, &records))
	assert.Len(t, records, 1)
	assert.Contains(t, string(raw), "\n  ")
}

func TestNewRecordID_BumpsOnCollision(t *testing.T) {
	taken := map[string]bool{}
	first := newRecordID(func(id string) bool { return taken[id] })
	taken[first] = true

	second := newRecordID(func(id string) bool { return taken[id] })
	assert.NotEqual(t, first, second)
}
