// Package database owns the MongoDB client for the application.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shashiranjanraj/vastra/config"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Open creates the client and database handle without verifying the
// deployment is reachable. Collection handles are pure, so tooling that
// never issues an operation (route listing) can use this offline.
func Open(ctx context.Context) error {
	clientOpts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	c, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	client = c
	db = c.Database(config.MongoDatabase())
	return nil
}

// Connect opens the MongoDB connection and verifies it with a ping.
// Returns an error instead of calling log.Fatal so the caller can
// shut down gracefully.
func Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := Open(ctx); err != nil {
		return err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

// Disconnect closes the client. Safe to call when Connect never succeeded.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	client = nil
	db = nil
	return nil
}

// DB returns the application database handle.
// Panics when called before Connect; that is a programming error.
func DB() *mongo.Database {
	if db == nil {
		panic("database: DB called before Connect")
	}
	return db
}

// Collection returns a handle to the named collection.
func Collection(name string) *mongo.Collection {
	return DB().Collection(name)
}
