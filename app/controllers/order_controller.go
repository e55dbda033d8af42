package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

// OrderStore covers the read side of the order handlers.
type OrderStore interface {
	All(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.PopulatedOrder, error)
	ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedOrder, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Order, error)
	Count(ctx context.Context) (int64, error)
	TotalSales(ctx context.Context) (float64, error)
}

// OrderWorkflow covers the multi-step create and cascade delete.
type OrderWorkflow interface {
	Create(ctx context.Context, in services.OrderInput) (models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.Order, error)
}

type OrderController struct {
	orders   OrderStore
	workflow OrderWorkflow
}

func NewOrderController(orders OrderStore, workflow OrderWorkflow) *OrderController {
	return &OrderController{orders: orders, workflow: workflow}
}

type orderItemInput struct {
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Product  string `json:"product" validate:"required"`
}

type orderInput struct {
	OrderItems       []orderItemInput `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress1 string           `json:"shippingAddress1" validate:"required"`
	ShippingAddress2 string           `json:"shippingAddress2"`
	City             string           `json:"city" validate:"required"`
	Zip              string           `json:"zip" validate:"required"`
	Country          string           `json:"country" validate:"required"`
	Phone            string           `json:"phone" validate:"required"`
	Status           string           `json:"status"`
	User             string           `json:"user"`
}

// List handles GET /orders, newest first.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.All(r.Context())
	if err != nil {
		storeError(r.Context(), w, err, "")
		return
	}
	response.Success(w, orders)
}

// Get handles GET /orders/{id}, fully joined.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, err := c.orders.FindByID(r.Context(), id)
	if err != nil {
		storeError(r.Context(), w, err, "The order with the given ID was not found.")
		return
	}
	response.Success(w, order)
}

// Create handles POST /orders.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var in orderInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	input := services.OrderInput{
		ShippingAddress1: in.ShippingAddress1,
		ShippingAddress2: in.ShippingAddress2,
		City:             in.City,
		Zip:              in.Zip,
		Country:          in.Country,
		Phone:            in.Phone,
		Status:           in.Status,
	}

	for _, item := range in.OrderItems {
		productID, err := store.ParseID(item.Product)
		if err != nil {
			response.BadRequest(w, "Invalid product identifier in order items.")
			return
		}
		input.Lines = append(input.Lines, services.OrderLine{
			Product:  productID,
			Quantity: item.Quantity,
		})
	}

	if in.User != "" {
		userID, err := store.ParseID(in.User)
		if err != nil {
			response.BadRequest(w, "Invalid user identifier.")
			return
		}
		input.User = userID
	}

	created, err := c.workflow.Create(r.Context(), input)
	if err != nil {
		storeError(r.Context(), w, err, "The order cannot be created.")
		return
	}
	response.Created(w, created)
}

// UpdateStatus handles PUT /orders/{id}. Only the status field is replaced.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var in struct {
		Status string `json:"status" validate:"required"`
	}
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	updated, err := c.orders.UpdateStatus(r.Context(), id, in.Status)
	if err != nil {
		storeError(r.Context(), w, err, "The order cannot be updated.")
		return
	}
	response.Success(w, updated)
}

// Delete handles DELETE /orders/{id}, cascading over the order's line items.
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := c.workflow.Delete(r.Context(), id)
	if err != nil {
		storeError(r.Context(), w, err, "The order was not found.")
		return
	}
	response.Success(w, deleted)
}

// TotalSales handles GET /orders/get/totalsales. Zero orders sum to 0.
func (c *OrderController) TotalSales(w http.ResponseWriter, r *http.Request) {
	total, err := c.orders.TotalSales(r.Context())
	if err != nil {
		storeError(r.Context(), w, err, "")
		return
	}
	response.Success(w, map[string]float64{"totalsales": total})
}

// Count handles GET /orders/get/count.
func (c *OrderController) Count(w http.ResponseWriter, r *http.Request) {
	n, err := c.orders.Count(r.Context())
	if err != nil {
		storeError(r.Context(), w, err, "")
		return
	}
	response.Success(w, map[string]int64{"count": n})
}

// UserOrders handles GET /orders/get/userorders/{userid}.
func (c *OrderController) UserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := store.ParseID(chi.URLParam(r, "userid"))
	if err != nil {
		response.BadRequest(w, "Invalid identifier.")
		return
	}

	orders, err := c.orders.ByUser(r.Context(), userID)
	if err != nil {
		storeError(r.Context(), w, err, "")
		return
	}
	response.Success(w, orders)
}
