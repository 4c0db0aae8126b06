package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/you/schedulo/domain"
)

// UserRepositoryImpl implements domain.UserRepository using MongoDB.
type UserRepositoryImpl struct {
	collection *mongo.Collection
}

// DBUser represents the stored shape of User (with BSON tags).
type DBUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	PasswordHash  string             `bson:"password"`
	OTP           *string            `bson:"otp,omitempty"`
	OTPExpiresAt  *time.Time         `bson:"otp_expires_at,omitempty"`
	ResetVerified bool               `bson:"reset_verified"`
	IsVerified    bool               `bson:"is_verified"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

// NewUserRepository creates a new user repository over the given
// database handle.
func NewUserRepository(db *mongo.Database) domain.UserRepository {
	return &UserRepositoryImpl{collection: db.Collection("users")}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	dbUser := r.domainToDB(user)
	res, err := r.collection.InsertOne(ctx, dbUser)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return err
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&dbUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var dbUser DBUser
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&dbUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// SetOTP implements domain.UserRepository. Code and expiry move in a
// single update so they are never observed half-set.
func (r *UserRepositoryImpl) SetOTP(ctx context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error {
	return r.updateOne(ctx, id, bson.M{
		"otp":            code,
		"otp_expires_at": expiresAt,
		"updated_at":     time.Now(),
	})
}

// ConsumeOTP implements domain.UserRepository
func (r *UserRepositoryImpl) ConsumeOTP(ctx context.Context, id primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{
		"otp":            nil,
		"otp_expires_at": nil,
		"reset_verified": true,
		"is_verified":    true,
		"updated_at":     time.Now(),
	})
}

// ClearResetVerified implements domain.UserRepository
func (r *UserRepositoryImpl) ClearResetVerified(ctx context.Context, id primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{
		"reset_verified": false,
		"updated_at":     time.Now(),
	})
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	return r.updateOne(ctx, id, bson.M{
		"password":       passwordHash,
		"reset_verified": false,
		"updated_at":     time.Now(),
	})
}

func (r *UserRepositoryImpl) updateOne(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		PasswordHash:  user.PasswordHash,
		OTP:           user.OTP,
		OTPExpiresAt:  user.OTPExpiresAt,
		ResetVerified: user.ResetVerified,
		IsVerified:    user.IsVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:            dbUser.ID,
		Name:          dbUser.Name,
		Email:         dbUser.Email,
		PasswordHash:  dbUser.PasswordHash,
		OTP:           dbUser.OTP,
		OTPExpiresAt:  dbUser.OTPExpiresAt,
		ResetVerified: dbUser.ResetVerified,
		IsVerified:    dbUser.IsVerified,
		CreatedAt:     dbUser.CreatedAt,
		UpdatedAt:     dbUser.UpdatedAt,
	}
}
