package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses an order moves through. Status is a free-form field in the
// stored document; Pending is the default on creation.
const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
)

// OrderItem is one (product, quantity) line persisted independently of the
// order that owns it.
type OrderItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Product  primitive.ObjectID `bson:"product" json:"product"`
}

// PopulatedOrderItem replaces the product reference with the full product,
// itself joined with its category.
type PopulatedOrderItem struct {
	OrderItem `bson:",inline"`
	Product   PopulatedProduct `bson:"-" json:"product"`
}

// Order owns a list of order-item references and the total computed at
// creation time. User references an external users collection and is not
// joined here.
type Order struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OrderItems       []primitive.ObjectID `bson:"orderItems" json:"orderItems"`
	ShippingAddress1 string               `bson:"shippingAddress1" json:"shippingAddress1"`
	ShippingAddress2 string               `bson:"shippingAddress2,omitempty" json:"shippingAddress2"`
	City             string               `bson:"city" json:"city"`
	Zip              string               `bson:"zip" json:"zip"`
	Country          string               `bson:"country" json:"country"`
	Phone            string               `bson:"phone" json:"phone"`
	Status           string               `bson:"status" json:"status"`
	TotalPrice       float64              `bson:"totalPrice" json:"totalPrice"`
	User             primitive.ObjectID   `bson:"user,omitempty" json:"user"`
	DateOrdered      time.Time            `bson:"dateOrdered" json:"dateOrdered"`
}

// PopulatedOrder is an Order with every line item expanded one level deep
// (item → product → category).
type PopulatedOrder struct {
	Order      `bson:",inline"`
	OrderItems []PopulatedOrderItem `bson:"-" json:"orderItems"`
}
