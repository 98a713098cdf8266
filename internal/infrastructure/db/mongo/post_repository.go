package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gracechapel/content-api/internal/core/domain"
	"github.com/gracechapel/content-api/internal/core/ports"
)

const collectionPosts = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type mongoPost struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Content       string             `bson:"content"`
	Type          string             `bson:"type"`
	Status        string             `bson:"status"`
	PublishedAt   *time.Time         `bson:"published_at,omitempty"`
	ScheduledFor  *time.Time         `bson:"scheduled_for,omitempty"`
	AuthorEmail   string             `bson:"author_email"`
	AuthorName    string             `bson:"author_name"`
	CoverImageURL string             `bson:"cover_image_url,omitempty"`
	Excerpt       string             `bson:"excerpt"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func toPostDoc(p *domain.Post) mongoPost {
	return mongoPost{
		Title:         p.Title,
		Content:       p.Content,
		Type:          string(p.Type),
		Status:        string(p.Publication.Status),
		PublishedAt:   p.Publication.PublishedAt,
		ScheduledFor:  p.Publication.ScheduledFor,
		AuthorEmail:   p.AuthorEmail,
		AuthorName:    p.AuthorName,
		CoverImageURL: p.CoverImageURL,
		Excerpt:       p.Excerpt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toPost(doc mongoPost) *domain.Post {
	return &domain.Post{
		ID:      doc.ID.Hex(),
		Title:   doc.Title,
		Content: doc.Content,
		Type:    domain.PostType(doc.Type),
		Publication: domain.Publication{
			Status:       domain.PostStatus(doc.Status),
			PublishedAt:  doc.PublishedAt,
			ScheduledFor: doc.ScheduledFor,
		},
		AuthorEmail:   doc.AuthorEmail,
		AuthorName:    doc.AuthorName,
		CoverImageURL: doc.CoverImageURL,
		Excerpt:       doc.Excerpt,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

// Create inserts a new post document and returns its id.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toPostDoc(p))
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("insert post: unexpected id type")
	}
	p.ID = oid.Hex()
	return p.ID, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return toPost(doc), nil
}

// Update replaces the stored document for p.ID.
func (r *PostRepository) Update(ctx context.Context, p *domain.Post) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, toPostDoc(p))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// List returns posts matching the filter, newest first.
func (r *PostRepository) List(ctx context.Context, f ports.ListPostsFilter) ([]*domain.Post, error) {
	filter := bson.M{}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	if f.Offset > 0 {
		opts.SetSkip(int64(f.Offset))
	}
	return r.find(ctx, filter, opts)
}

// ListPublished returns the public feed ordered by published_at descending.
func (r *PostRepository) ListPublished(ctx context.Context, t domain.PostType, limit int) ([]*domain.Post, error) {
	filter := bson.M{"status": string(domain.StatusPublished)}
	if t != "" {
		filter["type"] = string(t)
	}

	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

// FindDueScheduled returns scheduled posts due at or before now.
func (r *PostRepository) FindDueScheduled(ctx context.Context, now time.Time) ([]*domain.Post, error) {
	filter := bson.M{
		"status":        string(domain.StatusScheduled),
		"scheduled_for": bson.M{"$lte": now.UTC()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_for", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *PostRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []*domain.Post
	for cur.Next(ctx) {
		var doc mongoPost
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		posts = append(posts, toPost(doc))
	}
	return posts, cur.Err()
}

// EnsureIndexes creates the indexes backing the feed and promotion queries.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "published_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "scheduled_for", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
