// Package repositories maps resource operations onto the persistence
// gateway, performing the populate joins eagerly where the API requires
// them.
package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

// The category list is small and read on nearly every storefront view, so
// it is served read-through from Redis and invalidated on every write.
// cache helpers no-op when Redis is down, leaving Mongo as the source.
const (
	categoriesCacheKey = "categories:all"
	categoriesCacheTTL = 5 * time.Minute
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	categories *store.Collection[models.Category]
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		categories: store.NewCollection[models.Category](db, models.CategoriesCollection),
	}
}

// All returns every category, served from the cache when warm.
func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if cache.Get(categoriesCacheKey, &cached) {
		return cached, nil
	}

	cats, err := r.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	_ = cache.Set(categoriesCacheKey, cats, categoriesCacheTTL)
	return cats, nil
}

// FindByID looks up one category.
func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	return r.categories.FindByID(ctx, id)
}

// Create persists a new category and returns it with its assigned ID.
func (r *CategoryRepository) Create(ctx context.Context, c models.Category) (models.Category, error) {
	c.ID = primitive.NilObjectID
	created, err := r.categories.Insert(ctx, c)
	if err != nil {
		return models.Category{}, err
	}
	_ = cache.Del(categoriesCacheKey)
	return created, nil
}

// Replace overwrites every client-settable field of the identified category.
func (r *CategoryRepository) Replace(ctx context.Context, id primitive.ObjectID, c models.Category) (models.Category, error) {
	updated, err := r.categories.ReplaceByID(ctx, id, bson.M{
		"name":  c.Name,
		"icon":  c.Icon,
		"color": c.Color,
	})
	if err != nil {
		return models.Category{}, err
	}
	_ = cache.Del(categoriesCacheKey)
	return updated, nil
}

// Delete removes a category and returns its last state.
func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	deleted, err := r.categories.DeleteByID(ctx, id)
	if err != nil {
		return models.Category{}, err
	}
	_ = cache.Del(categoriesCacheKey)
	return deleted, nil
}
