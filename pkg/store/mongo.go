package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig configures a MongoDB-backed KV.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// MongoKV stores one document per key: {_id: key, value, updated_at}.
type MongoKV struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

// mongoEntry is the stored document shape.
type mongoEntry struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (c MongoConfig) withDefaults() MongoConfig {
	if c.URI == "" {
		c.URI = "mongodb://localhost:27017"
	}
	if c.Database == "" {
		c.Database = "opsboard"
	}
	if c.Collection == "" {
		c.Collection = "card_orders"
	}
	if c.Timeout <= 0 {
		c.Timeout = 2 * time.Second
	}
	return c
}

// NewMongoKV connects to MongoDB and verifies the connection with a ping.
func NewMongoKV(ctx context.Context, cfg MongoConfig) (*MongoKV, error) {
	cfg = cfg.withDefaults()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: mongo: %v", ErrUnavailable, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: mongo ping: %v", ErrUnavailable, err)
	}

	kv := NewMongoKVFromCollection(client.Database(cfg.Database).Collection(cfg.Collection))
	kv.client = client
	kv.owned = true
	return kv, nil
}

// NewMongoKVFromCollection wraps an existing collection. Close leaves the
// client connected.
func NewMongoKVFromCollection(coll *mongo.Collection) *MongoKV {
	return &MongoKV{coll: coll}
}

// Get retrieves a value. mongo.ErrNoDocuments is a miss.
func (m *MongoKV) Get(ctx context.Context, key string) (string, bool, error) {
	var entry mongoEntry
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set upserts the document for key.
func (m *MongoKV) Set(ctx context.Context, key, value string) error {
	_, err := m.coll.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value, "updated_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Close disconnects the client when this KV created it.
func (m *MongoKV) Close() error {
	if !m.owned || m.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

var _ KV = (*MongoKV)(nil)
