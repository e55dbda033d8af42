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

// OrderRepository handles database operations for Order and OrderItem.
// Single-order reads expand items two levels deep: item → product → category.
type OrderRepository struct {
	orders     *store.Collection[models.Order]
	items      *store.Collection[models.OrderItem]
	products   *store.Collection[models.Product]
	categories *store.Collection[models.Category]
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		orders:     store.NewCollection[models.Order](db, models.OrdersCollection),
		items:      store.NewCollection[models.OrderItem](db, models.OrderItemsCollection),
		products:   store.NewCollection[models.Product](db, models.ProductsCollection),
		categories: store.NewCollection[models.Category](db, models.CategoriesCollection),
	}
}

// All returns every order, newest first. Line items are not expanded on the
// list view.
func (r *OrderRepository) All(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateOrdered", Value: -1}})
	return r.orders.Find(ctx, bson.M{}, opts)
}

// FindByID returns one order, fully joined.
func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.PopulatedOrder, error) {
	o, err := r.orders.FindByID(ctx, id)
	if err != nil {
		return models.PopulatedOrder{}, err
	}
	return r.populateOrder(ctx, o)
}

// ByUser returns one user's orders, newest first, fully joined.
func (r *OrderRepository) ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedOrder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateOrdered", Value: -1}})
	orders, err := r.orders.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}

	out := make([]models.PopulatedOrder, len(orders))
	for i, o := range orders {
		populated, err := r.populateOrder(ctx, o)
		if err != nil {
			return nil, err
		}
		out[i] = populated
	}
	return out, nil
}

// Insert persists a new order.
func (r *OrderRepository) Insert(ctx context.Context, o models.Order) (models.Order, error) {
	o.ID = primitive.NilObjectID
	return r.orders.Insert(ctx, o)
}

// UpdateStatus replaces only the status field.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Order, error) {
	return r.orders.ReplaceByID(ctx, id, bson.M{"status": status})
}

// Delete removes an order and returns its last state, including the item
// references the caller cascades over.
func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	return r.orders.DeleteByID(ctx, id)
}

// Count returns the total number of orders.
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	return r.orders.Count(ctx)
}

// TotalSales sums totalPrice across all orders; 0 over an empty collection.
func (r *OrderRepository) TotalSales(ctx context.Context) (float64, error) {
	return r.orders.SumField(ctx, "totalPrice")
}

// InsertItem persists one order line item.
func (r *OrderRepository) InsertItem(ctx context.Context, item models.OrderItem) (models.OrderItem, error) {
	item.ID = primitive.NilObjectID
	return r.items.Insert(ctx, item)
}

// FindItem reads one line item back.
func (r *OrderRepository) FindItem(ctx context.Context, id primitive.ObjectID) (models.OrderItem, error) {
	return r.items.FindByID(ctx, id)
}

// DeleteItem removes one line item.
func (r *OrderRepository) DeleteItem(ctx context.Context, id primitive.ObjectID) (models.OrderItem, error) {
	return r.items.DeleteByID(ctx, id)
}

// FindProduct resolves a line item's product reference.
func (r *OrderRepository) FindProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	return r.products.FindByID(ctx, id)
}

// populateOrder expands an order's item references. A dangling item is
// skipped; a missing product or category is left zero-valued rather than
// failing the whole read.
func (r *OrderRepository) populateOrder(ctx context.Context, o models.Order) (models.PopulatedOrder, error) {
	items := make([]models.PopulatedOrderItem, 0, len(o.OrderItems))
	for _, itemID := range o.OrderItems {
		item, err := r.items.FindByID(ctx, itemID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return models.PopulatedOrder{}, err
		}

		product, err := r.products.FindByID(ctx, item.Product)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return models.PopulatedOrder{}, err
		}

		cat, err := r.categories.FindByID(ctx, product.Category)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return models.PopulatedOrder{}, err
		}

		items = append(items, models.PopulatedOrderItem{
			OrderItem: item,
			Product:   product.Populate(cat),
		})
	}

	return models.PopulatedOrder{Order: o, OrderItems: items}, nil
}
