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

type postDoc struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Title       string              `bson:"title"`
	Description string              `bson:"description"`
	Body        string              `bson:"body"`
	AudioLink   string              `bson:"audioLink"`
	PDFLink     string              `bson:"pdfLink"`
	Subject     string              `bson:"subject"`
	QuizRef     *primitive.ObjectID `bson:"quizRef,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"`
}

func (d *postDoc) toModel() models.Post {
	quizRef := ""
	if d.QuizRef != nil {
		quizRef = d.QuizRef.Hex()
	}
	return models.Post{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Body:        d.Body,
		AudioLink:   d.AudioLink,
		PDFLink:     d.PDFLink,
		Subject:     d.Subject,
		QuizRef:     quizRef,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func postToDoc(p *models.Post) postDoc {
	doc := postDoc{
		Title:       p.Title,
		Description: p.Description,
		Body:        p.Body,
		AudioLink:   p.AudioLink,
		PDFLink:     p.PDFLink,
		Subject:     p.Subject,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	// A reference that is not a well-formed ObjectID cannot exist in
	// this backing; it is dropped rather than stored dangling.
	if oid, ok := parseObjectID(p.QuizRef); ok {
		doc.QuizRef = &oid
	}
	return doc
}

type PostStore struct {
	col     *mongo.Collection
	quizzes *mongo.Collection
}

func NewPostStore(db *mongo.Database) repositories.PostStore {
	return &PostStore{
		col:     db.Collection(postsCollection),
		quizzes: db.Collection(quizzesCollection),
	}
}

func (s *PostStore) List(ctx context.Context, filters repositories.PostFilters) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.NewInfrastructureError("post", "list", "", err)
	}
	defer cursor.Close(ctx)

	var docs []postDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.NewInfrastructureError("post", "list", "", err)
	}

	posts := make([]models.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toModel())
	}

	if filters.Populate {
		if err := s.populateQuizSummaries(ctx, posts); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// populateQuizSummaries resolves each post's quiz reference to a
// shallow {id, title, description} view with a single $in query.
func (s *PostStore) populateQuizSummaries(ctx context.Context, posts []models.Post) error {
	oidSet := make(map[primitive.ObjectID]struct{})
	for i := range posts {
		if oid, ok := parseObjectID(posts[i].QuizRef); ok {
			oidSet[oid] = struct{}{}
		}
	}
	if len(oidSet) == 0 {
		return nil
	}

	oids := make([]primitive.ObjectID, 0, len(oidSet))
	for oid := range oidSet {
		oids = append(oids, oid)
	}

	opts := options.Find().SetProjection(bson.M{"title": 1, "description": 1})
	cursor, err := s.quizzes.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return apperrors.NewInfrastructureError("post", "populate", "", err)
	}
	defer cursor.Close(ctx)

	var docs []quizDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return apperrors.NewInfrastructureError("post", "populate", "", err)
	}

	summaries := make(map[string]models.QuizSummary, len(docs))
	for i := range docs {
		q := docs[i].toModel()
		summaries[q.ID] = q.Summary()
	}

	for i := range posts {
		if summary, ok := summaries[posts[i].QuizRef]; ok {
			s := summary
			posts[i].Quiz = &s
		}
	}
	return nil
}

func (s *PostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, apperrors.NewNotFoundError("post", id)
	}

	var doc postDoc
	err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFoundError("post", id)
	}
	if err != nil {
		return nil, apperrors.NewInfrastructureError("post", "get", id, err)
	}

	p := doc.toModel()
	return &p, nil
}

func (s *PostStore) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	doc := postToDoc(post)
	stamp(&doc.CreatedAt, &doc.UpdatedAt)

	result, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, apperrors.NewInfrastructureError("post", "create", "", err)
	}

	doc.ID = result.InsertedID.(primitive.ObjectID)
	p := doc.toModel()
	return &p, nil
}

func (s *PostStore) UpdateByID(ctx context.Context, id string, post *models.Post) (*models.Post, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, apperrors.NewNotFoundError("post", id)
	}

	set := bson.M{
		"title":       post.Title,
		"description": post.Description,
		"body":        post.Body,
		"audioLink":   post.AudioLink,
		"pdfLink":     post.PDFLink,
		"subject":     post.Subject,
		"updatedAt":   time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if quizOID, ok := parseObjectID(post.QuizRef); ok {
		set["quizRef"] = quizOID
	} else {
		update["$unset"] = bson.M{"quizRef": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc postDoc
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFoundError("post", id)
	}
	if err != nil {
		return nil, apperrors.NewInfrastructureError("post", "update", id, err)
	}

	p := doc.toModel()
	return &p, nil
}

func (s *PostStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return false, nil
	}

	result, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, apperrors.NewInfrastructureError("post", "delete", id, err)
	}
	return result.DeletedCount > 0, nil
}

func (s *PostStore) Count(ctx context.Context) (int64, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.NewInfrastructureError("post", "count", "", err)
	}
	return count, nil
}
