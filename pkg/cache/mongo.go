package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Defaults for [NewMongoCache].
const (
	DefaultMongoDatabase   = "depdot"
	DefaultMongoCollection = "cache"
)

// MongoCache stores entries as documents keyed by _id. A TTL index on
// expires_at lets the server purge old entries; Get also checks expiry
// because the TTL monitor only runs about once a minute.
type MongoCache struct {
	client  *mongo.Client
	coll    *mongo.Collection
	backoff Backoff

	database   string
	collection string
}

type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// MongoOption configures a [MongoCache].
type MongoOption func(*MongoCache)

// WithMongoCollection stores entries in database.collection instead of
// depdot.cache.
func WithMongoCollection(database, collection string) MongoOption {
	return func(c *MongoCache) { c.database, c.collection = database, collection }
}

// WithMongoBackoff replaces [DefaultBackoff] for this cache.
func WithMongoBackoff(b Backoff) MongoOption {
	return func(c *MongoCache) { c.backoff = b }
}

// NewMongoCache connects to uri ("mongodb://host:port"), pings the server,
// and ensures the TTL index exists.
func NewMongoCache(ctx context.Context, uri string, opts ...MongoOption) (*MongoCache, error) {
	c := &MongoCache{
		backoff:    DefaultBackoff,
		database:   DefaultMongoDatabase,
		collection: DefaultMongoCollection,
	}
	for _, o := range opts {
		o(c)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	c.client = client
	c.coll = client.Database(c.database).Collection(c.collection)

	err = c.backoff.Do(ctx, func() error {
		return classifyMongo(client.Ping(ctx, nil))
	})
	if err == nil {
		_, err = c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		})
	}
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return c, nil
}

// Get retrieves a value. A missing or expired document is a miss.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e mongoEntry
	err := c.backoff.Do(ctx, func() error {
		return classifyMongo(c.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&e))
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if e.ExpiresAt != nil && time.Now().After(*e.ExpiresAt) {
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set upserts a value with ttl; zero means no expiry.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		at := time.Now().Add(ttl).UTC()
		e.ExpiresAt = &at
	}
	return c.backoff.Do(ctx, func() error {
		_, err := c.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: key}}, e, options.Replace().SetUpsert(true))
		return classifyMongo(err)
	})
}

// Delete removes a value.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	return c.backoff.Do(ctx, func() error {
		_, err := c.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: key}})
		return classifyMongo(err)
	})
}

// Clear deletes every document in the collection.
func (c *MongoCache) Clear(ctx context.Context) error {
	return c.backoff.Do(ctx, func() error {
		_, err := c.coll.DeleteMany(ctx, bson.D{})
		return classifyMongo(err)
	})
}

// Close disconnects the client.
func (c *MongoCache) Close() error {
	return c.client.Disconnect(context.Background())
}

// classifyMongo marks network errors and timeouts as retryable.
func classifyMongo(err error) error {
	if err == nil || errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return Retryable(fmt.Errorf("%w: %w", ErrNetwork, err))
	}
	return err
}

var (
	_ Cache   = (*MongoCache)(nil)
	_ Clearer = (*MongoCache)(nil)
)
