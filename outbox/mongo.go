package outbox

import (
	"context"

	"github.com/voguemanic/voguemanic-backend/database"
	"github.com/voguemanic/voguemanic-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore applies transfers against the resale collection.
type MongoStore struct {
	DB *mongo.Database
}

func NewMongoStore() *MongoStore {
	return &MongoStore{DB: database.DB}
}

func (s *MongoStore) DeleteResale(ctx context.Context, productID primitive.ObjectID) error {
	_, err := s.DB.Collection(database.ResaleProducts).DeleteOne(ctx, bson.M{"_id": productID})
	return err
}

func (s *MongoStore) InsertResale(ctx context.Context, p models.ResaleProduct) error {
	_, err := s.DB.Collection(database.ResaleProducts).InsertOne(ctx, p)
	return err
}
