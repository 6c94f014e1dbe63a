package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"replog/workout-app/internal/domain"
	"replog/workout-app/internal/repository"
)

const userCollectionName = "users"

// mongoUserRepository implements repository.UserRepository using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Upsert inserts or updates the user keyed by authId. The profile
// fields and updatedAt are overwritten on every call; createdAt is only
// written on first insert.
func (r *mongoUserRepository) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.AuthID == "" || user.Email == "" {
		return nil, errors.New("user authId and email are required")
	}

	now := time.Now().UTC()
	filter := bson.M{"authId": user.AuthID}
	update := bson.M{
		"$set": bson.M{
			"email":     user.Email,
			"name":      user.Name,
			"image":     user.Image,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"authId":    user.AuthID,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved domain.User
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// GetByAuthID retrieves a user by their identity-provider subject id.
func (r *mongoUserRepository) GetByAuthID(ctx context.Context, authID string) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"authId": authID}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// EnsureUserIndexes creates necessary indexes. Call during startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// authId is the upsert conflict key; it must be unique.
			Keys:    bson.D{{Key: "authId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
