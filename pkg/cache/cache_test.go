package cache_test

import (
	"testing"
	"time"

	"github.com/shashiranjanraj/vastra/pkg/cache"
)

// Without a connected client every helper must degrade to a miss or a
// no-op, so callers can layer caching over Mongo reads unconditionally.
func TestHelpersNoOpWhenDisconnected(t *testing.T) {
	cache.RDB = nil

	var dest []string
	if cache.Get("categories:all", &dest) {
		t.Fatal("Get reported a hit with no client")
	}
	if dest != nil {
		t.Fatalf("Get wrote into dest with no client: %v", dest)
	}

	if err := cache.Set("categories:all", []string{"a"}, time.Minute); err != nil {
		t.Fatalf("Set with no client: %v", err)
	}

	if err := cache.Del("categories:all"); err != nil {
		t.Fatalf("Del with no client: %v", err)
	}
}

func TestIncrementUnavailableWhenDisconnected(t *testing.T) {
	cache.RDB = nil

	n, ok := cache.Increment("ratelimit:test", time.Minute)
	if ok {
		t.Fatal("Increment reported ok with no client")
	}
	if n != 0 {
		t.Fatalf("Increment count = %d, want 0", n)
	}
}
