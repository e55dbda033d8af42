// Package controllers holds the HTTP handlers. Each controller depends on a
// narrow store interface so handlers can be exercised against fakes.
//
// HTTP mapping for gateway errors, applied everywhere:
//
//	store.ErrInvalidID → 400
//	store.ErrNotFound  → 404
//	anything else      → 500 (logged)
package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

// pathID parses the {name} URL parameter as an ObjectID, answering 400
// itself when the value is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := store.ParseID(chi.URLParam(r, name))
	if err != nil {
		response.BadRequest(w, "Invalid identifier.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// storeError translates a gateway error into the right status code.
func storeError(ctx context.Context, w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		response.BadRequest(w, "Invalid identifier.")
	case errors.Is(err, store.ErrNotFound):
		response.NotFound(w, notFoundMsg)
	default:
		logger.WithCtx(ctx).Error("storage fault", "error", err)
		response.Internal(w, "")
	}
}
