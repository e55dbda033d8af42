package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalogue entry. Category holds a reference to the categories
// collection; image URLs point into the storage disk's public path.
type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description,omitempty" json:"description"`
	RichDescription string             `bson:"richDescription,omitempty" json:"richDescription"`
	Image           string             `bson:"image,omitempty" json:"image"`
	Images          []string           `bson:"images,omitempty" json:"images"`
	Brand           string             `bson:"brand,omitempty" json:"brand"`
	Price           float64            `bson:"price" json:"price"`
	Category        primitive.ObjectID `bson:"category" json:"category"`
	CountInStock    int                `bson:"countInStock" json:"countInStock"`
	Rating          float64            `bson:"rating,omitempty" json:"rating"`
	NumReviews      int                `bson:"numReviews,omitempty" json:"numReviews"`
	IsFeatured      bool               `bson:"isFeatured" json:"isFeatured"`
	DateCreated     time.Time          `bson:"dateCreated" json:"dateCreated"`
}

// PopulatedProduct is a Product with its category reference replaced by the
// category record. The outer Category field shadows the embedded reference
// in the JSON output.
type PopulatedProduct struct {
	Product  `bson:",inline"`
	Category Category `bson:"-" json:"category"`
}

// Populate attaches cat to p.
func (p Product) Populate(cat Category) PopulatedProduct {
	return PopulatedProduct{Product: p, Category: cat}
}
