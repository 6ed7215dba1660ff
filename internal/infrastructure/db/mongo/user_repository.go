package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/updates-app/updates-backend/internal/core/domain"
)

const usersCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Email            string             `bson:"email"`
	Name             string             `bson:"name"`
	PasswordHash     string             `bson:"password_hash"`
	Role             string             `bson:"role"`
	EnrollmentStatus string             `bson:"enrollment_status"`
	ResetToken       string             `bson:"password_reset_token,omitempty"`
	ResetExpiresAt   *int64             `bson:"password_reset_expires,omitempty"`
	ResetRequestedAt *int64             `bson:"password_reset_requested_at,omitempty"`
	CreatedAt        int64              `bson:"created_at"`
	UpdatedAt        int64              `bson:"updated_at"`
}

// EnsureIndexes creates the unique email index that backs the
// duplicate-registration check, plus a sparse index for reset-token lookups.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "password_reset_token", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	doc := mongoUser{
		Email:            user.Email,
		Name:             user.Name,
		PasswordHash:     user.PasswordHash,
		Role:             string(user.Role),
		EnrollmentStatus: string(user.EnrollmentStatus),
		CreatedAt:        now.Unix(),
		UpdatedAt:        now.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) FindByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"password_reset_token": token})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	if update.Empty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.EnrollmentStatus != nil {
		set["enrollment_status"] = string(*update.EnrollmentStatus)
	}

	var mu mongoUser
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) SetEnrollmentStatus(ctx context.Context, id string, status domain.EnrollmentStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"enrollment_status": string(status),
		"updated_at":        time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("set enrollment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) SetResetToken(ctx context.Context, email, token string, expiresAt, requestedAt time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{
		"password_reset_token":        token,
		"password_reset_expires":      expiresAt.Unix(),
		"password_reset_requested_at": requestedAt.Unix(),
		"updated_at":                  time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ConsumeResetToken is the single-use guarantee: the filter matches on the
// token itself, so of two concurrent consumers only one update matches and
// the other observes ErrResetTokenInvalid.
func (r *MongoUserRepository) ConsumeResetToken(ctx context.Context, id, token, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrResetTokenInvalid
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "password_reset_token": token},
		bson.M{
			"$set": bson.M{
				"password_hash": passwordHash,
				"updated_at":    time.Now().UTC().Unix(),
			},
			"$unset": bson.M{
				"password_reset_token":   "",
				"password_reset_expires": "",
			},
		},
	)
	if err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrResetTokenInvalid
	}
	return nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:               mu.ID.Hex(),
		Email:            mu.Email,
		Name:             mu.Name,
		PasswordHash:     mu.PasswordHash,
		Role:             domain.Role(mu.Role),
		EnrollmentStatus: domain.EnrollmentStatus(mu.EnrollmentStatus),
		ResetToken:       mu.ResetToken,
		ResetExpiresAt:   unixPtrToTime(mu.ResetExpiresAt),
		ResetRequestedAt: unixPtrToTime(mu.ResetRequestedAt),
		CreatedAt:        unixToTime(mu.CreatedAt),
		UpdatedAt:        unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

func unixPtrToTime(ts *int64) *time.Time {
	if ts == nil {
		return nil
	}
	t := time.Unix(*ts, 0).UTC()
	return &t
}
