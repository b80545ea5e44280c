package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/bancoriental/unipersonal-backend/config"
	"github.com/bancoriental/unipersonal-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client   *mongo.Client
	database *mongo.Database
)

// Initialize connects to the document store.
func Initialize(cfg *config.MongoConfig) error {
	logger.Info("Connecting to document store", map[string]interface{}{
		"database": cfg.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	client, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return fmt.Errorf("failed to connect to document store: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping document store: %w", err)
	}

	database = client.Database(cfg.Database)

	logger.Info("Document store connection established successfully", nil)
	return nil
}

// GetDatabase returns the document store handle.
func GetDatabase() *mongo.Database {
	return database
}

// Close disconnects from the document store.
func Close() error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
