package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

// MFARepository stores one settings document per identity, keyed by identity id.
type MFARepository struct {
	coll *mongo.Collection
}

func NewMFARepository(db *mongo.Database) *MFARepository {
	return &MFARepository{coll: db.Collection(collectionMFASettings)}
}

// mongoMFASettings reads is_enabled raw: older documents stored it as the
// strings "true"/"false".
type mongoMFASettings struct {
	OwnerIdentityID  string        `bson:"_id"`
	State            string        `bson:"state,omitempty"`
	IsEnabled        bson.RawValue `bson:"is_enabled,omitempty"`
	Secret           string        `bson:"secret,omitempty"`
	BackupCodeHashes []string      `bson:"backup_code_hashes,omitempty"`
	UpdatedAt        time.Time     `bson:"updated_at"`
}

func (r *MFARepository) Get(ctx context.Context, identityID string) (*domain.MfaSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoMFASettings
	if err := r.coll.FindOne(ctx, bson.M{"_id": identityID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.DisabledMFA(identityID), nil
		}
		return nil, fmt.Errorf("find mfa settings: %w", err)
	}
	return doc.toDomain(), nil
}

// Save replaces the document, always writing is_enabled as a boolean.
func (r *MFARepository) Save(ctx context.Context, s *domain.MfaSettings) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"_id":                s.OwnerIdentityID,
		"state":              string(s.State),
		"is_enabled":         s.IsEnabled,
		"secret":             s.Secret,
		"backup_code_hashes": s.BackupCodeHashes,
		"updated_at":         s.UpdatedAt,
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": s.OwnerIdentityID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save mfa settings: %w", err)
	}
	return nil
}

// ConsumeBackupCode pulls hash in a single conditional update so concurrent
// logins cannot both use it.
func (r *MFARepository) ConsumeBackupCode(ctx context.Context, identityID, hash string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":                identityID,
		"is_enabled":         bson.M{"$in": bson.A{true, "true"}},
		"backup_code_hashes": hash,
	}
	update := bson.M{
		"$pull": bson.M{"backup_code_hashes": hash},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("consume backup code: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (d mongoMFASettings) toDomain() *domain.MfaSettings {
	enabled := normalizeEnabled(d.IsEnabled)
	state := domain.MFAState(d.State)
	if state == "" {
		state = domain.MFADisabled
		if enabled {
			state = domain.MFAEnabled
		}
	}
	return &domain.MfaSettings{
		OwnerIdentityID:  d.OwnerIdentityID,
		State:            state,
		IsEnabled:        enabled,
		Secret:           d.Secret,
		BackupCodeHashes: d.BackupCodeHashes,
		UpdatedAt:        d.UpdatedAt,
	}
}

func normalizeEnabled(v bson.RawValue) bool {
	if b, ok := v.BooleanOK(); ok {
		return b
	}
	if s, ok := v.StringValueOK(); ok {
		return strings.EqualFold(strings.TrimSpace(s), "true")
	}
	return false
}
