package store_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/pkg/store"
)

func TestParseID(t *testing.T) {
	want := primitive.NewObjectID()

	got, err := store.ParseID(want.Hex())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got != want {
		t.Errorf("got %s, want %s", got.Hex(), want.Hex())
	}
}

func TestParseIDInvalid(t *testing.T) {
	for _, bad := range []string{"", "xyz", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := store.ParseID(bad)
		if !errors.Is(err, store.ErrInvalidID) {
			t.Errorf("%q: got %v, want ErrInvalidID", bad, err)
		}
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	if errors.Is(store.ErrNotFound, store.ErrInvalidID) {
		t.Error("sentinels must not alias")
	}
}
