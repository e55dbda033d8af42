package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

// ProductRepository handles database operations for Product, joining the
// category reference wherever the API returns populated products.
type ProductRepository struct {
	products   *store.Collection[models.Product]
	categories *store.Collection[models.Category]
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		products:   store.NewCollection[models.Product](db, models.ProductsCollection),
		categories: store.NewCollection[models.Category](db, models.CategoriesCollection),
	}
}

// All returns products joined with their categories, optionally restricted
// to the given category IDs.
func (r *ProductRepository) All(ctx context.Context, categoryIDs []primitive.ObjectID) ([]models.PopulatedProduct, error) {
	filter := bson.M{}
	if len(categoryIDs) > 0 {
		filter["category"] = bson.M{"$in": categoryIDs}
	}

	products, err := r.products.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return r.populate(ctx, products)
}

// FindByID returns one product joined with its category.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.PopulatedProduct, error) {
	p, err := r.products.FindByID(ctx, id)
	if err != nil {
		return models.PopulatedProduct{}, err
	}

	cat, err := r.categories.FindByID(ctx, p.Category)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return models.PopulatedProduct{}, err
	}
	return p.Populate(cat), nil
}

// Create persists a new product.
func (r *ProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	p.ID = primitive.NilObjectID
	return r.products.Insert(ctx, p)
}

// Replace overwrites every client-settable field of the identified product.
// The image URL is whatever the caller resolved (new upload or the stored
// value); dateCreated is never touched.
func (r *ProductRepository) Replace(ctx context.Context, id primitive.ObjectID, p models.Product) (models.Product, error) {
	return r.products.ReplaceByID(ctx, id, bson.M{
		"name":            p.Name,
		"description":     p.Description,
		"richDescription": p.RichDescription,
		"image":           p.Image,
		"brand":           p.Brand,
		"price":           p.Price,
		"category":        p.Category,
		"countInStock":    p.CountInStock,
		"rating":          p.Rating,
		"numReviews":      p.NumReviews,
		"isFeatured":      p.IsFeatured,
	})
}

// ReplaceGallery swaps the product's gallery URL list wholesale.
func (r *ProductRepository) ReplaceGallery(ctx context.Context, id primitive.ObjectID, urls []string) (models.Product, error) {
	return r.products.ReplaceByID(ctx, id, bson.M{"images": urls})
}

// Delete removes a product and returns its last state.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	return r.products.DeleteByID(ctx, id)
}

// Count returns the total number of products.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.products.Count(ctx)
}

// Featured returns products flagged as featured. A limit of 0 applies no
// explicit limit and returns them all.
func (r *ProductRepository) Featured(ctx context.Context, limit int64) ([]models.Product, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.products.Find(ctx, bson.M{"isFeatured": true}, opts)
}

// CategoryExists reports whether the referenced category resolves.
func (r *ProductRepository) CategoryExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	_, err := r.categories.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// populate joins each product's category with one batched lookup.
func (r *ProductRepository) populate(ctx context.Context, products []models.Product) ([]models.PopulatedProduct, error) {
	ids := make([]primitive.ObjectID, 0, len(products))
	seen := make(map[primitive.ObjectID]struct{}, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			ids = append(ids, p.Category)
		}
	}

	byID := make(map[primitive.ObjectID]models.Category, len(ids))
	if len(ids) > 0 {
		cats, err := r.categories.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		for _, c := range cats {
			byID[c.ID] = c
		}
	}

	out := make([]models.PopulatedProduct, len(products))
	for i, p := range products {
		out[i] = p.Populate(byID[p.Category])
	}
	return out, nil
}
