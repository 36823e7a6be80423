// Package db owns the MongoDB connection and the collections the user and
// order stores are backed by.
package db

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client          *mongo.Client
	UserCollection  *mongo.Collection
	OrderCollection *mongo.Collection
)

// Init connects the client and binds collections. Called once from main
// before any store is constructed.
func Init(ctx context.Context) error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Client = client
	UserCollection = client.Database("fleur").Collection("users")
	OrderCollection = client.Database("fleur").Collection("orders")
	return nil
}

// Close disconnects the client during shutdown.
func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
