package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gracechapel/content-api/internal/core/domain"
)

const collectionAdmins = "admins"

type AdminRepository struct {
	col *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{col: db.Collection(collectionAdmins)}
}

type mongoAdmin struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	IdentityID string             `bson:"identity_id,omitempty"`
	Email      string             `bson:"email"`
	Name       string             `bson:"name"`
	Role       string             `bson:"role"`
	CreatedAt  time.Time          `bson:"created_at"`
	LastLogin  time.Time          `bson:"last_login,omitempty"`
}

// FindByEmail looks an admin row up by its primary key, the email. Rows are
// provisioned by email before the matching login record exists.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAdmin
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotAuthorized
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}

	return &domain.Admin{
		ID:         ma.ID.Hex(),
		IdentityID: ma.IdentityID,
		Email:      ma.Email,
		Name:       ma.Name,
		Role:       ma.Role,
		CreatedAt:  ma.CreatedAt,
		LastLogin:  ma.LastLogin,
	}, nil
}

// ReconcileIdentity stores the session's identity id on the admin row so
// both keys match going forward.
func (r *AdminRepository) ReconcileIdentity(ctx context.Context, id, identityID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotAuthorized
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"identity_id": identityID}})
	if err != nil {
		return fmt.Errorf("reconcile identity: %w", err)
	}
	return nil
}

func (r *AdminRepository) RecordLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotAuthorized
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"last_login": at.UTC()}})
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return nil
}

// EnsureIndexes enforces one admin row per email.
func (r *AdminRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
