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
)

const collectionReceipts = "notification_receipts"

// ReceiptRepository persists fan-out receipts. The collection is append-only:
// receipts are never updated or deleted.
type ReceiptRepository struct {
	col *mongo.Collection
}

func NewReceiptRepository(db *mongo.Database) *ReceiptRepository {
	return &ReceiptRepository{col: db.Collection(collectionReceipts)}
}

type mongoReceipt struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	PostID         string             `bson:"post_id"`
	Title          string             `bson:"title"`
	Content        string             `bson:"content"`
	Type           string             `bson:"type"`
	PublishedAt    time.Time          `bson:"published_at"`
	SentAt         time.Time          `bson:"sent_at"`
	RecipientCount int                `bson:"recipient_count"`
	Recipients     []string           `bson:"recipients"`
	Delivered      int                `bson:"delivered"`
	Failed         int                `bson:"failed"`
}

func (r *ReceiptRepository) Create(ctx context.Context, receipt *domain.NotificationReceipt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoReceipt{
		PostID:         receipt.PostID,
		Title:          receipt.Title,
		Content:        receipt.Content,
		Type:           string(receipt.Type),
		PublishedAt:    receipt.PublishedAt,
		SentAt:         receipt.SentAt,
		RecipientCount: receipt.RecipientCount,
		Recipients:     receipt.Recipients,
		Delivered:      receipt.Delivered,
		Failed:         receipt.Failed,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("insert receipt: unexpected id type")
	}
	receipt.ID = oid.Hex()
	return receipt.ID, nil
}

func (r *ReceiptRepository) List(ctx context.Context, limit int) ([]*domain.NotificationReceipt, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "sent_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var receipts []*domain.NotificationReceipt
	for cur.Next(ctx) {
		var doc mongoReceipt
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		receipts = append(receipts, &domain.NotificationReceipt{
			ID:             doc.ID.Hex(),
			PostID:         doc.PostID,
			Title:          doc.Title,
			Content:        doc.Content,
			Type:           domain.PostType(doc.Type),
			PublishedAt:    doc.PublishedAt,
			SentAt:         doc.SentAt,
			RecipientCount: doc.RecipientCount,
			Recipients:     doc.Recipients,
			Delivered:      doc.Delivered,
			Failed:         doc.Failed,
		})
	}
	return receipts, cur.Err()
}
