package routes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/routes"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/storage"
)

// Registration only derives collection and disk handles, so it must work
// with no Mongo, Redis, or storage server running. This is the path the
// route:list command takes.
func TestRegisterAPIWithoutLiveBackends(t *testing.T) {
	require.NoError(t, database.Open(context.Background()))
	t.Cleanup(func() { database.Disconnect(context.Background()) }) //nolint:errcheck
	storage.Connect()

	r := router.New()
	require.NotPanics(t, func() { routes.RegisterAPI(r) })

	infos := r.Routes()
	assert.Len(t, infos, 21)
}

func TestRegisterAPINamedRoutes(t *testing.T) {
	require.NoError(t, database.Open(context.Background()))
	t.Cleanup(func() { database.Disconnect(context.Background()) }) //nolint:errcheck
	storage.Connect()

	r := router.New()
	routes.RegisterAPI(r)

	for name, want := range map[string]string{
		"categories.list":   "/api/v1/categories",
		"products.featured": "/api/v1/products/get/featured/{count}",
		"products.gallery":  "/api/v1/products/gallery-images/{id}",
		"orders.userorders": "/api/v1/orders/get/userorders/{userid}",
		"orders.totalsales": "/api/v1/orders/get/totalsales",
	} {
		path, ok := r.Path(name)
		require.True(t, ok, "route %s not registered", name)
		assert.Equal(t, want, path)
	}
}
