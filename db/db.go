package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	OrganizationsCollection *mongo.Collection
	WorkspacesCollection    *mongo.Collection
	BookingsCollection      *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("DESKHIVE_DB")
	if dbName == "" {
		dbName = "deskhive"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database(dbName)
	UserCollection = database.Collection("users")
	OrganizationsCollection = database.Collection("organizations")
	WorkspacesCollection = database.Collection("workspaces")
	BookingsCollection = database.Collection("bookings")
}

// EnsureIndexes backs the hot lookups: bookings are always queried by
// workspace+interval or by user, users by email. Called once at startup.
func EnsureIndexes() {
	ctx := context.TODO()

	_, err := BookingsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "workspace_id", Value: 1}, {Key: "start_time", Value: 1}}},
		{Keys: bson.D{{Key: "userid", Value: 1}, {Key: "start_time", Value: 1}}},
	})
	if err != nil {
		log.Printf("Failed to create booking indexes: %v", err)
	}

	_, err = UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("Failed to create user email index: %v", err)
	}
}
