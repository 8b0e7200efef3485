package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sleeper-league-bot/logging"
	"sleeper-league-bot/models"
)

const (
	postsCollection = "posts"

	// DefaultPostLimit and MaxPostLimit bound FindRecent
	DefaultPostLimit = 20
	MaxPostLimit     = 200
)

// MongoPostRepository archives job results in the posts collection
type MongoPostRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

// NewMongoPostRepository creates a new MongoDB post repository
func NewMongoPostRepository(db *MongoDB) *MongoPostRepository {
	return &MongoPostRepository{
		collection: db.GetCollection(postsCollection),
		logger:     logging.WithPrefix("PostRepository"),
	}
}

// EnsureIndexes creates the indexes FindRecent relies on
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := boundedContext(ctx, MediumTimeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "started_at", Value: -1}}},
		{Keys: bson.D{{Key: "job", Value: 1}, {Key: "started_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}
	return nil
}

// SavePost upserts a record by run id
func (r *MongoPostRepository) SavePost(ctx context.Context, record *models.PostRecord) error {
	ctx, cancel := boundedContext(ctx, ShortTimeout)
	defer cancel()

	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": record.ID},
		record,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save post %s: %w", record.ID, err)
	}
	r.logger.Debugf("Archived %s run %s (%s)", record.Job, record.ID, record.Status)
	return nil
}

// FindRecent returns the newest records, optionally for one job
func (r *MongoPostRepository) FindRecent(ctx context.Context, job string, limit int) ([]*models.PostRecord, error) {
	ctx, cancel := boundedContext(ctx, MediumTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(int64(ClampLimit(limit)))

	cursor, err := r.collection.Find(ctx, PostFilter(job), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}
	defer cursor.Close(ctx)

	records := []*models.PostRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return records, nil
}

// PostFilter selects every record, or those of one job
func PostFilter(job string) bson.M {
	if job == "" {
		return bson.M{}
	}
	return bson.M{"job": job}
}

// ClampLimit applies the default and maximum page size
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultPostLimit
	case limit > MaxPostLimit:
		return MaxPostLimit
	default:
		return limit
	}
}
