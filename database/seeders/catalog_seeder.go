package seeders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/vastra/app/models"
)

func init() {
	Register("catalog", SeedCatalog)
}

// SeedCatalog inserts a starter set of categories and products.
// It is idempotent: a non-empty categories collection is left alone.
func SeedCatalog(ctx context.Context, db *mongo.Database) error {
	cats := db.Collection(models.CategoriesCollection)

	n, err := cats.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Sarees", Icon: "saree", Color: "#C2185B"},
		{Name: "Kurtas", Icon: "kurta", Color: "#00796B"},
		{Name: "Accessories", Icon: "bangle", Color: "#F57C00"},
	}

	docs := make([]any, len(categories))
	for i, c := range categories {
		docs[i] = c
	}
	res, err := cats.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("insert categories: %w", err)
	}

	now := time.Now()
	products := []models.Product{
		{
			Name:         "Banarasi Silk Saree",
			Description:  "Handwoven Banarasi silk saree with zari border.",
			Brand:        "Vastra",
			Price:        4999,
			CountInStock: 12,
			IsFeatured:   true,
			DateCreated:  now,
		},
		{
			Name:         "Cotton Straight Kurta",
			Description:  "Everyday cotton kurta in indigo.",
			Brand:        "Vastra",
			Price:        899,
			CountInStock: 40,
			DateCreated:  now,
		},
		{
			Name:         "Oxidised Jhumka Earrings",
			Description:  "Oxidised silver jhumkas, lightweight.",
			Brand:        "Vastra",
			Price:        349,
			CountInStock: 80,
			IsFeatured:   true,
			DateCreated:  now,
		},
	}

	prods := db.Collection(models.ProductsCollection)
	for i, p := range products {
		catID := res.InsertedIDs[i%len(res.InsertedIDs)]
		doc := bson.M{
			"name":         p.Name,
			"description":  p.Description,
			"brand":        p.Brand,
			"price":        p.Price,
			"category":     catID,
			"countInStock": p.CountInStock,
			"isFeatured":   p.IsFeatured,
			"dateCreated":  p.DateCreated,
		}
		if _, err := prods.InsertOne(ctx, doc); err != nil {
			return fmt.Errorf("insert product %q: %w", p.Name, err)
		}
	}
	return nil
}
