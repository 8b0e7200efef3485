package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sleeper-league-bot/config"
	"sleeper-league-bot/logging"
)

type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongoConnection connects and pings the archive database
func NewMongoConnection(ctx context.Context, cfg *config.Config) (*MongoDB, error) {
	logger := logging.WithPrefix("MongoDB")
	timeout := cfg.Database.Timeout
	if timeout <= 0 {
		timeout = MediumTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if cfg.Database.Username != "" && cfg.Database.Password != "" {
		logger.Infof("Connecting with authentication as user: %s", cfg.Database.Username)
	} else {
		logger.Info("Connecting without authentication")
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.GetMongoURI()).
		SetAppName("sleeper-league-bot").
		SetServerSelectionTimeout(timeout))
	if err != nil {
		logger.Errorf("Failed to connect: %v", err)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Errorf("Failed to ping: %v", err)
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Infof("Successfully connected to %s:%s database=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)

	return &MongoDB{
		client:   client,
		database: client.Database(cfg.Database.Database),
	}, nil
}

func (m *MongoDB) Close() error {
	logger := logging.WithPrefix("MongoDB")
	ctx, cancel := WithShortTimeout()
	defer cancel()

	err := m.client.Disconnect(ctx)
	if err != nil {
		logger.Errorf("Error disconnecting: %v", err)
	} else {
		logger.Info("Connection closed successfully")
	}
	return err
}

// Ping checks the connection, used by the health endpoint
func (m *MongoDB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	if err := m.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}
	return nil
}

func (m *MongoDB) GetCollection(name string) *mongo.Collection {
	return m.database.Collection(name)
}
