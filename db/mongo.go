package db

import (
	"context"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"innova-chat/config"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init initializes the global Mongo client and database using config values.
func Init(ctx context.Context) error {
	var initErr error
	clientOnce.Do(func() {
		cfg := config.GetConfig()
		uri := cfg.Mongo.URI
		if uri == "" {
			// Fallback for local docker-compose default
			uri = "mongodb://localhost:27017"
		}
		dbName := cfg.Mongo.Database

		cl, err := mongo.NewClient(options.Client().ApplyURI(uri))
		if err != nil {
			initErr = err
			return
		}
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := cl.Connect(ctx); err != nil {
			initErr = err
			return
		}
		// Ping to verify connection
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			initErr = err
			return
		}
		client = cl
		db = client.Database(dbName)

		// Ensure indexes for all collections
		if err := ensureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
		log.Println("MongoDB connected and indexes ensured")
	})
	return initErr
}

func Client() *mongo.Client     { return client }
func Database() *mongo.Database { return db }

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	// sessions: listing is always most-recently-active first
	{
		mi := mongo.IndexModel{
			Keys:    bson.D{{Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_updated_at_desc"),
		}
		if _, err := d.Collection("sessions").Indexes().CreateOne(ctx, mi); err != nil {
			return err
		}
	}

	// messages: history reads are (session_id) ordered by timestamp then id.
	// The id tie-break matters because timestamp resolution may coincide.
	{
		mi := mongo.IndexModel{
			Keys: bson.D{
				{Key: "session_id", Value: 1},
				{Key: "timestamp", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_session_order"),
		}
		if _, err := d.Collection("messages").Indexes().CreateOne(ctx, mi); err != nil {
			return err
		}
	}

	return nil
}
