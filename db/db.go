package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MilanMareels/ap-gaming-hub/docstore"
)

var (
	Client *mongo.Client

	// ContentCollection holds one document per content area
	// (reservations, timetable, settings, logs, events, highscores,
	// rosters), keyed by _id. See docstore for the access primitives.
	ContentCollection *mongo.Collection

	// Content is the document store every feature package writes through.
	Content *docstore.Store
)

// Initialize MongoDB connection
func init() {
	_ = godotenv.Load()

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	ContentCollection = Client.Database("gaminghub").Collection("content")
	Content = docstore.New(ContentCollection)
}
