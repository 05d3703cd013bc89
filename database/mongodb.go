package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	Users           = "users"
	UserInfos       = "userinfos"
	Products        = "products"
	ResaleProducts  = "resaleproducts"
	ConfirmedOrders = "confirmedorders"
	Employees       = "employees"
	Carts           = "carts"
	Wishlists       = "wishlists"
)

var DB *mongo.Database

func ConnectDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGODB_URI")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return err
	}

	// Ping the database
	err = client.Ping(ctx, nil)
	if err != nil {
		return err
	}

	DB = client.Database("voguemanic")
	log.Println("🗄️ Connected to MongoDB!")
	return nil
}
