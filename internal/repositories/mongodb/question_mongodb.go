package mongodb

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/studyfeed/content-service/internal/errors"
	"github.com/studyfeed/content-service/internal/models"
	"github.com/studyfeed/content-service/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type questionDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Subject      string             `bson:"subject"`
	Prompt       string             `bson:"prompt"`
	Options      []models.Choice    `bson:"options"`
	CorrectLabel string             `bson:"correctLabel"`
	Feedbacks    []models.Choice    `bson:"feedbacks"`
	Hint         string             `bson:"hint"`
	Explanation  string             `bson:"explanation"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d *questionDoc) toModel() models.Question {
	return models.Question{
		ID:           d.ID.Hex(),
		Subject:      d.Subject,
		Prompt:       d.Prompt,
		Options:      d.Options,
		CorrectLabel: d.CorrectLabel,
		Feedbacks:    d.Feedbacks,
		Hint:         d.Hint,
		Explanation:  d.Explanation,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func questionToDoc(q *models.Question) questionDoc {
	return questionDoc{
		Subject:      q.Subject,
		Prompt:       q.Prompt,
		Options:      q.Options,
		CorrectLabel: q.CorrectLabel,
		Feedbacks:    q.Feedbacks,
		Hint:         q.Hint,
		Explanation:  q.Explanation,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

type QuestionStore struct {
	col *mongo.Collection
}

func NewQuestionStore(db *mongo.Database) repositories.QuestionStore {
	return &QuestionStore{col: db.Collection(questionsCollection)}
}

func (s *QuestionStore) List(ctx context.Context, filters repositories.QuestionFilters) ([]models.Question, error) {
	filter := bson.M{}
	if filters.Subject != "" {
		filter = subjectFilter(filters.Subject)
	}

	opts := options.Find().SetSort(bson.D{{Key: "subject", Value: 1}, {Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.NewInfrastructureError("question", "list", "", err)
	}
	defer cursor.Close(ctx)

	var docs []questionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.NewInfrastructureError("question", "list", "", err)
	}

	questions := make([]models.Question, 0, len(docs))
	for i := range docs {
		questions = append(questions, docs[i].toModel())
	}
	return questions, nil
}

func (s *QuestionStore) GetByID(ctx context.Context, id string) (*models.Question, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, apperrors.NewNotFoundError("question", id)
	}

	var doc questionDoc
	err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFoundError("question", id)
	}
	if err != nil {
		return nil, apperrors.NewInfrastructureError("question", "get", id, err)
	}

	q := doc.toModel()
	return &q, nil
}

func (s *QuestionStore) GetByIDs(ctx context.Context, ids []string) ([]models.Question, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := parseObjectID(id); ok {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []models.Question{}, nil
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, apperrors.NewInfrastructureError("question", "get", "", err)
	}
	defer cursor.Close(ctx)

	var docs []questionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.NewInfrastructureError("question", "get", "", err)
	}

	byID := make(map[string]models.Question, len(docs))
	for i := range docs {
		q := docs[i].toModel()
		byID[q.ID] = q
	}

	// Preserve the requested order; unresolved ids are simply absent.
	found := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			found = append(found, q)
		}
	}
	return found, nil
}

func (s *QuestionStore) Create(ctx context.Context, question *models.Question) (*models.Question, error) {
	doc := questionToDoc(question)
	stamp(&doc.CreatedAt, &doc.UpdatedAt)

	result, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, apperrors.NewInfrastructureError("question", "create", "", err)
	}

	doc.ID = result.InsertedID.(primitive.ObjectID)
	q := doc.toModel()
	return &q, nil
}

func (s *QuestionStore) UpdateByID(ctx context.Context, id string, question *models.Question) (*models.Question, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, apperrors.NewNotFoundError("question", id)
	}

	update := bson.M{"$set": bson.M{
		"subject":      question.Subject,
		"prompt":       question.Prompt,
		"options":      question.Options,
		"correctLabel": question.CorrectLabel,
		"feedbacks":    question.Feedbacks,
		"hint":         question.Hint,
		"explanation":  question.Explanation,
		"updatedAt":    time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc questionDoc
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFoundError("question", id)
	}
	if err != nil {
		return nil, apperrors.NewInfrastructureError("question", "update", id, err)
	}

	q := doc.toModel()
	return &q, nil
}

func (s *QuestionStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return false, nil
	}

	result, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, apperrors.NewInfrastructureError("question", "delete", id, err)
	}
	return result.DeletedCount > 0, nil
}

func (s *QuestionStore) Count(ctx context.Context) (int64, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.NewInfrastructureError("question", "count", "", err)
	}
	return count, nil
}
