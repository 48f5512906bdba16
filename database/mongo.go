package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dakshininfra/purchase-api/config"
)

const Performance = 100

var (
	// Singleton client, initialized by StartMongoDB and exposed through
	// GetCollection.
	mongoClient         *mongo.Client
	clientInstanceError error
	mongoOnce           sync.Once
	dbName              string
)

func GetCollection(name string) *mongo.Collection {
	return mongoClient.Database(dbName).Collection(name)
}

func StartMongoDB() error {
	uri := config.GetEnv("MONGODB_URI")
	if uri == "" {
		return errors.New("you must set your 'MONGODB_URI' environmental variable")
	}

	database := config.GetEnv("DATABASE")
	if database == "" {
		return errors.New("you must set your 'DATABASE' environmental variable")
	}
	dbName = database

	mongoOnce.Do(func() {
		clientOptions := options.Client().ApplyURI(uri)
		ctx, cancel := NewDBContext(10 * time.Second)
		defer cancel()
		client, err := mongo.Connect(ctx, clientOptions)
		if err != nil {
			clientInstanceError = err
			return
		}
		if err = client.Ping(ctx, nil); err != nil {
			clientInstanceError = err
			return
		}
		mongoClient = client
	})

	return clientInstanceError
}

func CloseMongoDB() {
	if mongoClient == nil {
		return
	}
	ctx, cancel := NewDBContext(5 * time.Second)
	defer cancel()
	_ = mongoClient.Disconnect(ctx)
}

// NewDBContext returns a new Context according to app performance
func NewDBContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d*Performance/100)
}
