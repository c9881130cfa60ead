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

type quizDoc struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty"`
	Title            string               `bson:"title"`
	Description      string               `bson:"description"`
	Subject          string               `bson:"subject"`
	QuestionRefs     []primitive.ObjectID `bson:"questionRefs"`
	EstimatedMinutes int                  `bson:"estimatedMinutes"`
	Instructions     string               `bson:"instructions"`
	CreatedAt        time.Time            `bson:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt"`
}

func (d *quizDoc) toModel() models.Quiz {
	refs := make([]string, 0, len(d.QuestionRefs))
	for _, oid := range d.QuestionRefs {
		refs = append(refs, oid.Hex())
	}
	return models.Quiz{
		ID:               d.ID.Hex(),
		Title:            d.Title,
		Description:      d.Description,
		Subject:          d.Subject,
		QuestionRefs:     refs,
		EstimatedMinutes: d.EstimatedMinutes,
		Instructions:     d.Instructions,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// quizRefsToObjectIDs converts string refs, rejecting malformed ids.
func quizRefsToObjectIDs(refs []string) ([]primitive.ObjectID, bool) {
	oids := make([]primitive.ObjectID, 0, len(refs))
	for _, ref := range refs {
		oid, ok := parseObjectID(ref)
		if !ok {
			return nil, false
		}
		oids = append(oids, oid)
	}
	return oids, true
}

type QuizStore struct {
	col       *mongo.Collection
	questions *mongo.Collection
}

func NewQuizStore(db *mongo.Database) repositories.QuizStore {
	return &QuizStore{
		col:       db.Collection(quizzesCollection),
		questions: db.Collection(questionsCollection),
	}
}

func (s *QuizStore) List(ctx context.Context, filters repositories.QuizFilters) ([]models.Quiz, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.NewInfrastructureError("quiz", "list", "", err)
	}
	defer cursor.Close(ctx)

	var docs []quizDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.NewInfrastructureError("quiz", "list", "", err)
	}

	quizzes := make([]models.Quiz, 0, len(docs))
	for i := range docs {
		quizzes = append(quizzes, docs[i].toModel())
	}

	if filters.Populate {
		if err := s.populateQuestionSummaries(ctx, quizzes); err != nil {
			return nil, err
		}
	}
	return quizzes, nil
}

// populateQuestionSummaries resolves every quiz's question references to
// shallow {id, subject, prompt} views with a single $in query.
func (s *QuizStore) populateQuestionSummaries(ctx context.Context, quizzes []models.Quiz) error {
	oidSet := make(map[primitive.ObjectID]struct{})
	for i := range quizzes {
		for _, ref := range quizzes[i].QuestionRefs {
			if oid, ok := parseObjectID(ref); ok {
				oidSet[oid] = struct{}{}
			}
		}
	}
	if len(oidSet) == 0 {
		return nil
	}

	oids := make([]primitive.ObjectID, 0, len(oidSet))
	for oid := range oidSet {
		oids = append(oids, oid)
	}

	opts := options.Find().SetProjection(bson.M{"subject": 1, "prompt": 1})
	cursor, err := s.questions.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return apperrors.NewInfrastructureError("quiz", "populate", "", err)
	}
	defer cursor.Close(ctx)

	var docs []questionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return apperrors.NewInfrastructureError("quiz", "populate", "", err)
	}

	summaries := make(map[string]models.QuestionSummary, len(docs))
	for i := range docs {
		q := docs[i].toModel()
		summaries[q.ID] = q.Summary()
	}

	for i := range quizzes {
		for _, ref := range quizzes[i].QuestionRefs {
			if summary, ok := summaries[ref]; ok {
				quizzes[i].Questions = append(quizzes[i].Questions, summary)
			}
		}
	}
	return nil
}

func (s *QuizStore) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, apperrors.NewNotFoundError("quiz", id)
	}

	var doc quizDoc
	err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFoundError("quiz", id)
	}
	if err != nil {
		return nil, apperrors.NewInfrastructureError("quiz", "get", id, err)
	}

	q := doc.toModel()
	return &q, nil
}

func (s *QuizStore) Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	refs, ok := quizRefsToObjectIDs(quiz.QuestionRefs)
	if !ok {
		return nil, apperrors.NewValidationError("questionRefs", "contains a malformed question reference", quiz.QuestionRefs)
	}

	doc := quizDoc{
		Title:            quiz.Title,
		Description:      quiz.Description,
		Subject:          quiz.Subject,
		QuestionRefs:     refs,
		EstimatedMinutes: quiz.EstimatedMinutes,
		Instructions:     quiz.Instructions,
		CreatedAt:        quiz.CreatedAt,
		UpdatedAt:        quiz.UpdatedAt,
	}
	stamp(&doc.CreatedAt, &doc.UpdatedAt)

	result, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, apperrors.NewInfrastructureError("quiz", "create", "", err)
	}

	doc.ID = result.InsertedID.(primitive.ObjectID)
	q := doc.toModel()
	return &q, nil
}

func (s *QuizStore) UpdateByID(ctx context.Context, id string, quiz *models.Quiz) (*models.Quiz, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, apperrors.NewNotFoundError("quiz", id)
	}

	refs, ok := quizRefsToObjectIDs(quiz.QuestionRefs)
	if !ok {
		return nil, apperrors.NewValidationError("questionRefs", "contains a malformed question reference", quiz.QuestionRefs)
	}

	update := bson.M{"$set": bson.M{
		"title":            quiz.Title,
		"description":      quiz.Description,
		"subject":          quiz.Subject,
		"questionRefs":     refs,
		"estimatedMinutes": quiz.EstimatedMinutes,
		"instructions":     quiz.Instructions,
		"updatedAt":        time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc quizDoc
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFoundError("quiz", id)
	}
	if err != nil {
		return nil, apperrors.NewInfrastructureError("quiz", "update", id, err)
	}

	q := doc.toModel()
	return &q, nil
}

func (s *QuizStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return false, nil
	}

	result, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, apperrors.NewInfrastructureError("quiz", "delete", id, err)
	}
	return result.DeletedCount > 0, nil
}

func (s *QuizStore) Count(ctx context.Context) (int64, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.NewInfrastructureError("quiz", "count", "", err)
	}
	return count, nil
}
