// Package cloudsync replicates the log collection to MongoDB Atlas.
// Replication is whole-document: one document per user holding the full
// collection, replaced on every push. Local state always wins.
package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dailycheck-app/dailycheck/internal/domain"
)

const (
	defaultDatabase   = "dailycheck"
	defaultCollection = "activity_logs"
)

// Client is the MongoDB replica. Implements the tracker's Syncer contract.
type Client struct {
	client *mongo.Client
	col    *mongo.Collection
	userID string
}

type snapshotDoc struct {
	UserID    string               `bson:"user_id"`
	UpdatedAt time.Time            `bson:"updated_at"`
	Logs      []domain.ActivityLog `bson:"logs"`
}

// Connect dials the cluster and verifies it with a ping.
func Connect(ctx context.Context, uri, database, collection, userID string) (*Client, error) {
	if database == "" {
		database = defaultDatabase
	}
	if collection == "" {
		collection = defaultCollection
	}

	opts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(10 * time.Second)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Client{
		client: client,
		col:    client.Database(database).Collection(collection),
		userID: userID,
	}, nil
}

// Push replaces the user's remote snapshot with the given collection.
func (c *Client) Push(ctx context.Context, logs []domain.ActivityLog) error {
	doc := snapshotDoc{
		UserID:    c.userID,
		UpdatedAt: time.Now().UTC(),
		Logs:      logs,
	}
	_, err := c.col.ReplaceOne(ctx,
		bson.M{"user_id": c.userID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo push: %w", err)
	}
	return nil
}

// Pull fetches the remote snapshot. A missing document is not an error;
// it returns an empty collection for first-run devices.
func (c *Client) Pull(ctx context.Context) ([]domain.ActivityLog, error) {
	var doc snapshotDoc
	err := c.col.FindOne(ctx, bson.M{"user_id": c.userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo pull: %w", err)
	}
	return doc.Logs, nil
}

// Close tears down the connection pool.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
