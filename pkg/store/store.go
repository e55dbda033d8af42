// Package store is the persistence gateway: a typed wrapper over MongoDB
// collections exposing the handful of operations the resource layer needs.
//
// "Not found" is a distinct, non-error outcome from a storage fault:
// callers check errors.Is(err, store.ErrNotFound) and answer 404, while any
// other error is a 500. Malformed identifiers surface as ErrInvalidID so
// handlers can answer 400 before touching the database.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound reports that no record matched the given identifier.
	ErrNotFound = errors.New("store: not found")

	// ErrInvalidID reports a malformed identifier string.
	ErrInvalidID = errors.New("store: invalid id")
)

// ParseID converts a hex identifier from a URL or payload into an ObjectID.
func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// Collection is a typed view over one MongoDB collection.
type Collection[T any] struct {
	col *mongo.Collection
}

// NewCollection binds T to the named collection of db.
func NewCollection[T any](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{col: db.Collection(name)}
}

// Name returns the underlying collection name.
func (c *Collection[T]) Name() string { return c.col.Name() }

// Find returns every record matching filter. The result is never nil, so it
// serialises as an empty JSON array rather than null.
func (c *Collection[T]) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("store: find %s: %w", c.Name(), err)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", c.Name(), err)
	}
	return out, nil
}

// FindByID returns the record with the given identifier, or ErrNotFound.
func (c *Collection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (T, error) {
	var doc T
	err := c.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("store: find %s by id: %w", c.Name(), err)
	}
	return doc, nil
}

// Insert persists doc and returns the stored record with its assigned
// identifier, re-read from the collection.
func (c *Collection[T]) Insert(ctx context.Context, doc T) (T, error) {
	var zero T
	res, err := c.col.InsertOne(ctx, doc)
	if err != nil {
		return zero, fmt.Errorf("store: insert %s: %w", c.Name(), err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return zero, fmt.Errorf("store: insert %s: unexpected id type %T", c.Name(), res.InsertedID)
	}
	return c.FindByID(ctx, id)
}

// ReplaceByID applies fields to the identified record and returns the
// post-update state, or ErrNotFound.
func (c *Collection[T]) ReplaceByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (T, error) {
	var doc T
	after := options.After
	err := c.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("store: update %s: %w", c.Name(), err)
	}
	return doc, nil
}

// DeleteByID removes the identified record and returns its last state,
// or ErrNotFound.
func (c *Collection[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) (T, error) {
	var doc T
	err := c.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("store: delete %s: %w", c.Name(), err)
	}
	return doc, nil
}

// Count returns the number of records in the collection.
func (c *Collection[T]) Count(ctx context.Context) (int64, error) {
	n, err := c.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("store: count %s: %w", c.Name(), err)
	}
	return n, nil
}

// SumField aggregates the numeric field across all records.
// An empty collection sums to 0.
func (c *Collection[T]) SumField(ctx context.Context, field string) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + field}}},
		}}},
	}

	cur, err := c.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("store: sum %s.%s: %w", c.Name(), field, err)
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("store: sum %s.%s: %w", c.Name(), field, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
