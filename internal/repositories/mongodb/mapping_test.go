package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/studyfeed/content-service/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestQuestionDocToModelNormalizesID(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := questionDoc{
		ID:           oid,
		Subject:      "Math",
		Prompt:       "2+2?",
		Options:      models.LabelChoices([]string{"3", "4", "5", "6"}),
		CorrectLabel: "B",
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	q := doc.toModel()
	assert.Equal(t, oid.Hex(), q.ID)
	assert.Equal(t, "2+2?", q.Prompt)
	assert.Len(t, q.Options, 4)
}

func TestQuestionToDocNeverCarriesCallerID(t *testing.T) {
	doc := questionToDoc(&models.Question{
		ID:      "1716891234567", // file-local id, never written to the document store
		Subject: "Math",
		Prompt:  "2+2?",
	})
	assert.True(t, doc.ID.IsZero())
}

func TestQuizDocToModelNormalizesRefs(t *testing.T) {
	ref1 := primitive.NewObjectID()
	ref2 := primitive.NewObjectID()
	doc := quizDoc{
		ID:           primitive.NewObjectID(),
		Title:        "Arithmetic",
		QuestionRefs: []primitive.ObjectID{ref1, ref2},
	}

	quiz := doc.toModel()
	assert.Equal(t, doc.ID.Hex(), quiz.ID)
	assert.Equal(t, []string{ref1.Hex(), ref2.Hex()}, quiz.QuestionRefs)
}

func TestPostDocToModelOmitsNilQuizRef(t *testing.T) {
	doc := postDoc{
		ID:    primitive.NewObjectID(),
		Title: "Week 1",
	}

	post := doc.toModel()
	assert.Equal(t, doc.ID.Hex(), post.ID)
	assert.Empty(t, post.QuizRef)

	ref := primitive.NewObjectID()
	doc.QuizRef = &ref
	post = doc.toModel()
	assert.Equal(t, ref.Hex(), post.QuizRef)
}
