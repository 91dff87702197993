package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookwise/database"
	"bookwise/models"
	"bookwise/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoUserRepo implements UserRepository on the users and auths collections.
type MongoUserRepo struct {
	client *mongo.Client
	users  *mongo.Collection
	auths  *mongo.Collection
}

func NewMongoUserRepo() *MongoUserRepo {
	db := database.DB()
	repo := &MongoUserRepo{
		client: database.MongoClient,
		users:  db.Collection("users"),
		auths:  db.Collection("auths"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("User index creation failed", zap.Error(err))
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.users.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return &user, nil
}

func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user with email %s: %w", email, err)
	}
	return &user, nil
}

func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) Update(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user.UpdatedAt = time.Now().UTC()
	result, err := r.users.ReplaceOne(ctx, bson.M{"id": user.ID}, user)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", user.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepo) GetAuthByUserID(ctx context.Context, userID string) (*models.Auth, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var auth models.Auth
	if err := r.auths.FindOne(ctx, bson.M{"user_id": userID}).Decode(&auth); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAuthNotFound
		}
		return nil, fmt.Errorf("failed to fetch auth for user %s: %w", userID, err)
	}
	return &auth, nil
}

func (r *MongoUserRepo) CreateAuth(ctx context.Context, auth *models.Auth) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.auths.InsertOne(ctx, auth); err != nil {
		return fmt.Errorf("failed to create auth record: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) SetPassword(ctx context.Context, userID, hashedPassword string) error {
	return r.setAuthFields(ctx, userID, bson.M{"hashed_password": hashedPassword})
}

// SetRefreshTokenHash stores hash, or clears it when hash is empty.
func (r *MongoUserRepo) SetRefreshTokenHash(ctx context.Context, userID, hash string) error {
	if hash == "" {
		return r.updateAuth(ctx, userID, bson.M{"$unset": bson.M{"hashed_refresh_token": ""}})
	}
	return r.setAuthFields(ctx, userID, bson.M{"hashed_refresh_token": hash})
}

func (r *MongoUserRepo) DeleteAuth(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.auths.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete auth for user %s: %w", userID, err)
	}
	if result.DeletedCount == 0 {
		return ErrAuthNotFound
	}
	return nil
}

func (r *MongoUserRepo) setAuthFields(ctx context.Context, userID string, fields bson.M) error {
	return r.updateAuth(ctx, userID, bson.M{"$set": fields})
}

func (r *MongoUserRepo) updateAuth(ctx context.Context, userID string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.auths.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to update auth for user %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return ErrAuthNotFound
	}
	return nil
}

func (r *MongoUserRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
