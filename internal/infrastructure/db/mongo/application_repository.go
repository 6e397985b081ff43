package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
)

type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

// Create inserts a new application. The unique owner index turns a second
// application for the same identity into domain.ErrApplicationExists.
func (r *ApplicationRepository) Create(ctx context.Context, app *domain.CompanyApplication) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, app); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrApplicationExists
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.CompanyApplication, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ApplicationRepository) FindByOwner(ctx context.Context, ownerIdentityID string) (*domain.CompanyApplication, error) {
	return r.findOne(ctx, bson.M{"owner_identity_id": ownerIdentityID})
}

func (r *ApplicationRepository) findOne(ctx context.Context, filter bson.M) (*domain.CompanyApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var app domain.CompanyApplication
	if err := r.col.FindOne(ctx, filter).Decode(&app); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// List returns the newest applications first, optionally filtered by status.
func (r *ApplicationRepository) List(ctx context.Context, f ports.ListApplicationsFilter) ([]*domain.CompanyApplication, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find applications: %w", err)
	}
	defer cur.Close(ctx)

	apps := make([]*domain.CompanyApplication, 0, f.Limit)
	if err := cur.All(ctx, &apps); err != nil {
		return nil, 0, fmt.Errorf("decode applications: %w", err)
	}
	return apps, total, nil
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"status": string(status)})
}

// UpdateReview applies decision only if the stored version equals
// expectedVersion, incrementing it in the same write.
func (r *ApplicationRepository) UpdateReview(ctx context.Context, id string, expectedVersion int64, d domain.ReviewDecision) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": string(d.Status)}
	unset := bson.M{}
	setOrUnset(set, unset, "approved_by", d.ApprovedBy, d.ApprovedBy != "")
	setOrUnset(set, unset, "approved_at", d.ApprovedAt, d.ApprovedAt != nil)
	setOrUnset(set, unset, "reviewed_at", d.ReviewedAt, d.ReviewedAt != nil)
	setOrUnset(set, unset, "rejection_reason", d.RejectionReason, d.RejectionReason != "")

	update := bson.M{"$set": set, "$inc": bson.M{"version": 1}}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "version": expectedVersion}, update)
	if err != nil {
		return fmt.Errorf("update application review: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrStaleApplication
}

func setOrUnset(set, unset bson.M, field string, value any, present bool) {
	if present {
		set[field] = value
		return
	}
	unset[field] = ""
}

// EnsureIndexes creates the owner uniqueness index and the admin list indexes.
func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_identity_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
