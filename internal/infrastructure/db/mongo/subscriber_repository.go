package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gracechapel/content-api/internal/core/domain"
)

const collectionSubscribers = "subscribers"

type SubscriberRepository struct {
	col *mongo.Collection
}

func NewSubscriberRepository(db *mongo.Database) *SubscriberRepository {
	return &SubscriberRepository{col: db.Collection(collectionSubscribers)}
}

type mongoSubscriber struct {
	Email          string     `bson:"email"`
	IsActive       bool       `bson:"is_active"`
	SubscribedAt   time.Time  `bson:"subscribed_at"`
	UnsubscribedAt *time.Time `bson:"unsubscribed_at,omitempty"`
}

func (r *SubscriberRepository) FindByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSubscriber
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubscriberNotFound
		}
		return nil, err
	}
	return &domain.Subscriber{
		Email:          ms.Email,
		IsActive:       ms.IsActive,
		SubscribedAt:   ms.SubscribedAt,
		UnsubscribedAt: ms.UnsubscribedAt,
	}, nil
}

func (r *SubscriberRepository) Insert(ctx context.Context, s *domain.Subscriber) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoSubscriber{
		Email:          s.Email,
		IsActive:       s.IsActive,
		SubscribedAt:   s.SubscribedAt,
		UnsubscribedAt: s.UnsubscribedAt,
	}
	_, err := r.col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrAlreadySubscribed
	}
	return err
}

func (r *SubscriberRepository) Update(ctx context.Context, s *domain.Subscriber) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"is_active":       s.IsActive,
		"subscribed_at":   s.SubscribedAt,
		"unsubscribed_at": s.UnsubscribedAt,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"email": s.Email}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrSubscriberNotFound
	}
	return nil
}

func (r *SubscriberRepository) ListActive(ctx context.Context) ([]*domain.Subscriber, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"is_active": true},
		options.Find().SetSort(bson.D{{Key: "subscribed_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []*domain.Subscriber
	for cur.Next(ctx) {
		var ms mongoSubscriber
		if err := cur.Decode(&ms); err != nil {
			return nil, err
		}
		subs = append(subs, &domain.Subscriber{
			Email:          ms.Email,
			IsActive:       ms.IsActive,
			SubscribedAt:   ms.SubscribedAt,
			UnsubscribedAt: ms.UnsubscribedAt,
		})
	}
	return subs, cur.Err()
}

// EnsureIndexes enforces one row per normalized email.
func (r *SubscriberRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
