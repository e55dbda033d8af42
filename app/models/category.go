// Package models defines the documents stored in MongoDB and the populated
// views the API returns, where a reference field is replaced by the
// referenced record.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Collection names, one per entity.
const (
	CategoriesCollection = "categories"
	ProductsCollection   = "products"
	OrdersCollection     = "orders"
	OrderItemsCollection = "order-items"
)

// Category groups products in the catalogue.
type Category struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name" validate:"required"`
	Icon  string             `bson:"icon,omitempty" json:"icon"`
	Color string             `bson:"color,omitempty" json:"color"`
}
