package post_repository_mongo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type authorDocument struct {
	FirstName string `bson:"firstName"`
	LastName  string `bson:"lastName"`
}

type postDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Author    authorDocument     `bson:"author"`
	CreatedAt time.Time          `bson:"created"`
}

func (d *postDocument) toModel() *model.Post {
	return &model.Post{
		ID:      d.ID.Hex(),
		Title:   d.Title,
		Content: d.Content,
		Author: model.Author{
			FirstName: d.Author.FirstName,
			LastName:  d.Author.LastName,
		},
		CreatedAt: d.CreatedAt.UTC(),
	}
}

type PostRepository struct {
	db      *mongo.Database
	coll    *mongo.Collection
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewPostRepository(db *mongo.Database, collection string, log ports.Logger, metrics ports.MetricsProvider) *PostRepository {
	return &PostRepository{
		db:      db,
		coll:    db.Collection(collection),
		log:     log,
		metrics: metrics,
	}
}

func (p *PostRepository) record(queryType string, start time.Time, success bool) {
	p.metrics.IncrementDatabaseQueries(queryType, success)
	p.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

// translateError maps driver failures onto the service error set.
func translateError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return custom_errors.ErrPostNotFound
	case mongo.IsTimeout(err), mongo.IsNetworkError(err), errors.Is(err, mongo.ErrClientDisconnected):
		return custom_errors.ErrStoreUnavailable
	default:
		return custom_errors.ErrDatabaseQuery
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Creating new post", slog.String("title", post.Title))

	doc := postDocument{
		ID:      primitive.NewObjectID(),
		Title:   post.Title,
		Content: post.Content,
		Author: authorDocument{
			FirstName: post.Author.FirstName,
			LastName:  post.Author.LastName,
		},
		// BSON dates carry millisecond precision.
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := p.coll.InsertOne(ctx, doc); err != nil {
		p.record("post_create", start, false)
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, translateError(err)
	}

	p.record("post_create", start, true)
	p.log.Debug("Successfully created post", slog.String("id", doc.ID.Hex()))
	return doc.toModel(), nil
}

func (p *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Getting post by ID", slog.String("id", id))

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		p.log.Debug("Post id is not an ObjectID", slog.String("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	var doc postDocument
	err = p.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		p.record("post_get_by_id", start, false)
		if errors.Is(err, mongo.ErrNoDocuments) {
			p.log.Debug("Post not found by id", slog.String("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by id", slog.String("id", id), slog.String("error", err.Error()))
		return nil, translateError(err)
	}

	p.record("post_get_by_id", start, true)
	return doc.toModel(), nil
}

func (p *PostRepository) List(ctx context.Context) ([]*model.Post, error) {
	start := time.Now()
	p.log.Debug("Listing posts")

	cursor, err := p.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		p.record("post_list", start, false)
		p.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, translateError(err)
	}

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		p.record("post_list", start, false)
		p.log.Error("Error decoding posts", slog.String("error", err.Error()))
		return nil, translateError(err)
	}

	posts := make([]*model.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toModel())
	}

	p.record("post_list", start, true)
	p.log.Debug("Successfully listed posts", slog.Int("count", len(posts)))
	return posts, nil
}

func (p *PostRepository) Update(ctx context.Context, id string, update *model.UpdatePostDTO) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Updating post", slog.String("id", id), slog.Any("update_fields", map[string]bool{
		"title":   update.Title != nil,
		"content": update.Content != nil,
		"author":  update.Author != nil,
	}))

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, custom_errors.ErrPostNotFound
	}

	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if update.Author != nil {
		if update.Author.FirstName != nil {
			set["author.firstName"] = *update.Author.FirstName
		}
		if update.Author.LastName != nil {
			set["author.lastName"] = *update.Author.LastName
		}
	}

	if len(set) == 0 {
		p.log.Debug("No fields to update", slog.String("id", id))
		return p.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc postDocument
	err = p.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		p.record("post_update", start, false)
		if errors.Is(err, mongo.ErrNoDocuments) {
			p.log.Debug("Post not found by id during Update", slog.String("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error updating post", slog.String("id", id), slog.String("error", err.Error()))
		return nil, translateError(err)
	}

	p.record("post_update", start, true)
	p.log.Debug("Successfully updated post", slog.String("id", id))
	return doc.toModel(), nil
}

func (p *PostRepository) Delete(ctx context.Context, id string) error {
	start := time.Now()
	p.log.Debug("Deleting post", slog.String("id", id))

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return custom_errors.ErrPostNotFound
	}

	result, err := p.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		p.record("post_delete", start, false)
		p.log.Error("Error deleting post", slog.String("id", id), slog.String("error", err.Error()))
		return translateError(err)
	}
	if result.DeletedCount == 0 {
		p.record("post_delete", start, false)
		p.log.Debug("Post not found during deletion", slog.String("id", id))
		return custom_errors.ErrPostNotFound
	}

	p.record("post_delete", start, true)
	p.log.Debug("Successfully deleted post", slog.String("id", id))
	return nil
}

func (p *PostRepository) Drop(ctx context.Context) error {
	start := time.Now()
	p.log.Warn("Dropping posts collection", slog.String("collection", p.coll.Name()))

	if err := p.coll.Drop(ctx); err != nil {
		p.record("post_drop", start, false)
		p.log.Error("Error dropping posts collection", slog.String("error", err.Error()))
		return translateError(err)
	}

	p.record("post_drop", start, true)
	return nil
}

func (p *PostRepository) Ping(ctx context.Context) error {
	if err := p.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		p.log.Error("MongoDB ping failed", slog.String("error", err.Error()))
		return custom_errors.ErrStoreUnavailable
	}
	return nil
}
