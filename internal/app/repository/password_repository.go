package repository

import (
	"context"
	"time"

	apperrors "github.com/bancoriental/unipersonal-backend/internal/errors"

	"github.com/bancoriental/unipersonal-backend/internal/app/model"
	"github.com/bancoriental/unipersonal-backend/pkg/logger"
	"github.com/bancoriental/unipersonal-backend/pkg/util"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PasswordRepository persists first-login credentials and terms receipts
// in the document store. Insert failures from the driver propagate as-is;
// callers decide how to surface them.
type PasswordRepository interface {
	CreateTemporaryPassword(ctx context.Context, rut, ci, plaintext string, ttl time.Duration) error
	CreateTermsReceipt(ctx context.Context, rut, ci, version string, acceptedAt time.Time) error
	DeleteExpiredPasswords(ctx context.Context) (int64, error)
}

type passwordRepository struct {
	db *mongo.Database
}

func NewPasswordRepository(db *mongo.Database) PasswordRepository {
	return &passwordRepository{db: db}
}

func (r *passwordRepository) CreateTemporaryPassword(ctx context.Context, rut, ci, plaintext string, ttl time.Duration) error {
	hash, err := util.HashPassword(plaintext)
	if err != nil {
		logger.Error("Failed to hash temporary password", err, map[string]interface{}{
			"rut": rut,
		})
		return apperrors.NewServiceError("failed to hash temporary password", err)
	}

	now := time.Now()
	doc := model.TemporaryPassword{
		ID:               uuid.New().String(),
		BusinessDocument: rut,
		PersonDocument:   ci,
		PasswordHash:     hash,
		CreatedAt:        now,
		ExpiresAt:        now.Add(ttl),
	}

	_, err = r.db.Collection(model.CollectionTemporaryPasswords).InsertOne(ctx, doc)
	if err != nil {
		logger.Error("Failed to store temporary password", err, map[string]interface{}{
			"rut": rut,
		})
		return err
	}
	return nil
}

func (r *passwordRepository) CreateTermsReceipt(ctx context.Context, rut, ci, version string, acceptedAt time.Time) error {
	doc := model.TermsReceipt{
		ID:               uuid.New().String(),
		BusinessDocument: rut,
		PersonDocument:   ci,
		Version:          version,
		AcceptedAt:       acceptedAt,
	}

	_, err := r.db.Collection(model.CollectionTermsReceipts).InsertOne(ctx, doc)
	if err != nil {
		logger.Error("Failed to store terms receipt", err, map[string]interface{}{
			"rut": rut,
		})
		return err
	}
	return nil
}

// DeleteExpiredPasswords purges credentials past their expiry. Run by the
// scheduler, returns the number of removed documents.
func (r *passwordRepository) DeleteExpiredPasswords(ctx context.Context) (int64, error) {
	res, err := r.db.Collection(model.CollectionTemporaryPasswords).
		DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now()}})
	if err != nil {
		logger.Error("Failed to purge expired passwords", err, nil)
		return 0, err
	}
	return res.DeletedCount, nil
}
