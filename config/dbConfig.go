package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LoadEnv loads environment variables from the .env file
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
}

func DBinstance() *mongo.Client {
	// Load environment variables
	LoadEnv()

	mongoURI := os.Getenv("DB")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	fmt.Println("Connecting to MongoDB...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Connected to MongoDB")
	return client
}

var Client *mongo.Client = DBinstance()

// DatabaseName resolves the database from the environment so tests and
// deployments can point at separate databases.
func DatabaseName() string {
	if name := os.Getenv("DB_NAME"); name != "" {
		return name
	}
	return "BicutanBites"
}

func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	return client.Database(DatabaseName()).Collection(collectionName)
}
