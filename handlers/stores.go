package handlers

import (
	"context"

	"github.com/voguemanic/voguemanic-backend/database"
	"github.com/voguemanic/voguemanic-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartStore is the persistence surface of the cart handlers. Lookups report
// a missing line as mongo.ErrNoDocuments.
type CartStore interface {
	FindLine(ctx context.Context, key models.CartKey) (models.CartLine, error)
	IncrementLine(ctx context.Context, key models.CartKey) error
	InsertLine(ctx context.Context, line models.CartLine) error
	FindLines(ctx context.Context, email string) ([]models.CartLine, error)
	SetLineCount(ctx context.Context, key models.CartKey, count int) (bool, error)
	DeleteLine(ctx context.Context, key models.CartKey) (bool, error)
	ClearLines(ctx context.Context, email string) error
}

// UserStore is the persistence surface of signup and login.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	InsertUser(ctx context.Context, user models.User) error
	InsertUserInfo(ctx context.Context, info models.UserInfo) error
}

// The Mongo implementations are the defaults; tests substitute in-memory
// ones, the same way outbox tests substitute the outbox store.
var (
	CartLines CartStore = mongoCartStore{}
	Users     UserStore = mongoUserStore{}
)

type mongoCartStore struct{}

func (mongoCartStore) collection() *mongo.Collection {
	return database.DB.Collection(database.Carts)
}

func (s mongoCartStore) FindLine(ctx context.Context, key models.CartKey) (models.CartLine, error) {
	var line models.CartLine
	err := s.collection().FindOne(ctx, key.Filter()).Decode(&line)
	return line, err
}

func (s mongoCartStore) IncrementLine(ctx context.Context, key models.CartKey) error {
	_, err := s.collection().UpdateOne(ctx, key.Filter(), bson.M{"$inc": bson.M{"count": 1}})
	return err
}

func (s mongoCartStore) InsertLine(ctx context.Context, line models.CartLine) error {
	_, err := s.collection().InsertOne(ctx, line)
	return err
}

func (s mongoCartStore) FindLines(ctx context.Context, email string) ([]models.CartLine, error) {
	cursor, err := s.collection().Find(ctx, bson.M{"userEmail": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	lines := []models.CartLine{}
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s mongoCartStore) SetLineCount(ctx context.Context, key models.CartKey, count int) (bool, error) {
	result, err := s.collection().UpdateOne(ctx, key.Filter(), bson.M{"$set": bson.M{"count": count}})
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (s mongoCartStore) DeleteLine(ctx context.Context, key models.CartKey) (bool, error) {
	result, err := s.collection().DeleteOne(ctx, key.Filter())
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (s mongoCartStore) ClearLines(ctx context.Context, email string) error {
	_, err := s.collection().DeleteMany(ctx, bson.M{"userEmail": email})
	return err
}

type mongoUserStore struct{}

func (mongoUserStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := database.DB.Collection(database.Users).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, err
}

func (mongoUserStore) InsertUser(ctx context.Context, user models.User) error {
	_, err := database.DB.Collection(database.Users).InsertOne(ctx, user)
	return err
}

func (mongoUserStore) InsertUserInfo(ctx context.Context, info models.UserInfo) error {
	_, err := database.DB.Collection(database.UserInfos).InsertOne(ctx, info)
	return err
}
