package controllers_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

// memOrders implements OrderStore plus the gateway the real workflow needs,
// so the controller tests run the genuine multi-step create and cascade.
type memOrders struct {
	mu       sync.Mutex
	orders   map[primitive.ObjectID]models.Order
	ord      []primitive.ObjectID
	items    map[primitive.ObjectID]models.OrderItem
	products map[primitive.ObjectID]models.Product
}

func newMemOrders() *memOrders {
	return &memOrders{
		orders:   map[primitive.ObjectID]models.Order{},
		items:    map[primitive.ObjectID]models.OrderItem{},
		products: map[primitive.ObjectID]models.Product{},
	}
}

func (s *memOrders) addProduct(price float64) primitive.ObjectID {
	id := primitive.NewObjectID()
	s.products[id] = models.Product{ID: id, Price: price}
	return id
}

// OrderStore

func (s *memOrders) All(context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0, len(s.ord))
	// Newest first.
	for i := len(s.ord) - 1; i >= 0; i-- {
		out = append(out, s.orders[s.ord[i]])
	}
	return out, nil
}

func (s *memOrders) FindByID(_ context.Context, id primitive.ObjectID) (models.PopulatedOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return models.PopulatedOrder{}, store.ErrNotFound
	}
	return s.populateLocked(o), nil
}

func (s *memOrders) ByUser(_ context.Context, userID primitive.ObjectID) ([]models.PopulatedOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PopulatedOrder, 0)
	for i := len(s.ord) - 1; i >= 0; i-- {
		o := s.orders[s.ord[i]]
		if o.User == userID {
			out = append(out, s.populateLocked(o))
		}
	}
	return out, nil
}

func (s *memOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	o.Status = status
	s.orders[id] = o
	return o, nil
}

func (s *memOrders) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.orders)), nil
}

func (s *memOrders) TotalSales(context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, o := range s.orders {
		total += o.TotalPrice
	}
	return total, nil
}

func (s *memOrders) populateLocked(o models.Order) models.PopulatedOrder {
	po := models.PopulatedOrder{Order: o}
	for _, itemID := range o.OrderItems {
		item, ok := s.items[itemID]
		if !ok {
			continue
		}
		po.OrderItems = append(po.OrderItems, models.PopulatedOrderItem{
			OrderItem: item,
			Product:   s.products[item.Product].Populate(models.Category{}),
		})
	}
	return po
}

// services.OrderGateway

func (s *memOrders) InsertItem(_ context.Context, item models.OrderItem) (models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = primitive.NewObjectID()
	s.items[item.ID] = item
	return item, nil
}

func (s *memOrders) FindItem(_ context.Context, id primitive.ObjectID) (models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return models.OrderItem{}, store.ErrNotFound
	}
	return item, nil
}

func (s *memOrders) FindProduct(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, store.ErrNotFound
	}
	return p, nil
}

func (s *memOrders) Insert(_ context.Context, o models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = primitive.NewObjectID()
	s.orders[o.ID] = o
	s.ord = append(s.ord, o.ID)
	return o, nil
}

func (s *memOrders) Delete(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	delete(s.orders, id)
	for i, x := range s.ord {
		if x == id {
			s.ord = append(s.ord[:i], s.ord[i+1:]...)
			break
		}
	}
	return o, nil
}

func (s *memOrders) DeleteItem(_ context.Context, id primitive.ObjectID) (models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return models.OrderItem{}, store.ErrNotFound
	}
	delete(s.items, id)
	return item, nil
}

func orderRouter(s *memOrders) *router.Router {
	c := controllers.NewOrderController(s, services.NewOrderService(s))
	r := router.New()
	g := r.Group("/orders")
	g.Get("", "", c.List)
	g.Get("/get/totalsales", "", c.TotalSales)
	g.Get("/get/count", "", c.Count)
	g.Get("/get/userorders/{userid}", "", c.UserOrders)
	g.Get("/{id}", "", c.Get)
	g.Post("", "", c.Create)
	g.Put("/{id}", "", c.UpdateStatus)
	g.Delete("/{id}", "", c.Delete)
	return r
}

func orderPayload(items []map[string]any) map[string]any {
	return map[string]any{
		"orderItems":       items,
		"shippingAddress1": "12 MG Road",
		"city":             "Bengaluru",
		"zip":              "560001",
		"country":          "India",
		"phone":            "+91-9000000000",
	}
}

func TestOrderCreateAggregatesPrice(t *testing.T) {
	s := newMemOrders()
	saree := s.addProduct(10)
	kurta := s.addProduct(5)
	r := orderRouter(s)

	rec, env := doJSON(t, r, http.MethodPost, "/orders", orderPayload([]map[string]any{
		{"product": saree.Hex(), "quantity": 2},
		{"product": kurta.Hex(), "quantity": 3},
	}))
	checkStatus(t, rec, http.StatusCreated)

	var created models.Order
	decodeData(t, env, &created)
	assert.Equal(t, 35.0, created.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, created.Status)
	assert.Len(t, created.OrderItems, 2)
	assert.WithinDuration(t, time.Now(), created.DateOrdered, 5*time.Second)
}

func TestOrderCreateValidation(t *testing.T) {
	r := orderRouter(newMemOrders())

	rec, env := doJSON(t, r, http.MethodPost, "/orders", map[string]any{
		"orderItems": []map[string]any{},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "orderItems")
	assert.Contains(t, env.Errors, "shippingAddress1")
	assert.Contains(t, env.Errors, "phone")
}

func TestOrderCreateBadProductID(t *testing.T) {
	s := newMemOrders()
	r := orderRouter(s)

	rec, _ := doJSON(t, r, http.MethodPost, "/orders", orderPayload([]map[string]any{
		{"product": "not-an-id", "quantity": 1},
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.orders)
}

func TestOrderCreateUnknownProductFailsWholeOrder(t *testing.T) {
	s := newMemOrders()
	r := orderRouter(s)

	rec, _ := doJSON(t, r, http.MethodPost, "/orders", orderPayload([]map[string]any{
		{"product": primitive.NewObjectID().Hex(), "quantity": 1},
	}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, s.orders)
}

func TestOrderGetPopulatesItems(t *testing.T) {
	s := newMemOrders()
	saree := s.addProduct(10)
	r := orderRouter(s)

	_, env := doJSON(t, r, http.MethodPost, "/orders", orderPayload([]map[string]any{
		{"product": saree.Hex(), "quantity": 2},
	}))
	var created models.Order
	decodeData(t, env, &created)

	rec, env := doJSON(t, r, http.MethodGet, "/orders/"+created.ID.Hex(), nil)
	checkStatus(t, rec, http.StatusOK)

	var got models.PopulatedOrder
	decodeData(t, env, &got)
	require.Len(t, got.OrderItems, 1)
	assert.Equal(t, 2, got.OrderItems[0].Quantity)
	assert.Equal(t, 10.0, got.OrderItems[0].Product.Price)
}

func TestOrderUpdateStatus(t *testing.T) {
	s := newMemOrders()
	saree := s.addProduct(10)
	r := orderRouter(s)

	_, env := doJSON(t, r, http.MethodPost, "/orders", orderPayload([]map[string]any{
		{"product": saree.Hex(), "quantity": 1},
	}))
	var created models.Order
	decodeData(t, env, &created)

	rec, env := doJSON(t, r, http.MethodPut, "/orders/"+created.ID.Hex(), map[string]string{
		"status": models.OrderStatusShipped,
	})
	checkStatus(t, rec, http.StatusOK)

	var updated models.Order
	decodeData(t, env, &updated)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	// Everything else survives a status update.
	assert.Equal(t, created.TotalPrice, updated.TotalPrice)
	assert.Equal(t, created.OrderItems, updated.OrderItems)
}

func TestOrderUpdateStatusRequired(t *testing.T) {
	s := newMemOrders()
	r := orderRouter(s)

	rec, env := doJSON(t, r, http.MethodPut, "/orders/"+primitive.NewObjectID().Hex(), map[string]string{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "status")
}

func TestOrderDeleteCascades(t *testing.T) {
	s := newMemOrders()
	saree := s.addProduct(10)
	r := orderRouter(s)

	_, env := doJSON(t, r, http.MethodPost, "/orders", orderPayload([]map[string]any{
		{"product": saree.Hex(), "quantity": 1},
		{"product": saree.Hex(), "quantity": 2},
	}))
	var created models.Order
	decodeData(t, env, &created)
	require.Len(t, s.items, 2)

	rec, _ := doJSON(t, r, http.MethodDelete, "/orders/"+created.ID.Hex(), nil)
	checkStatus(t, rec, http.StatusOK)
	assert.Empty(t, s.orders)
	assert.Empty(t, s.items)

	rec, _ = doJSON(t, r, http.MethodDelete, "/orders/"+created.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderTotalSales(t *testing.T) {
	s := newMemOrders()
	r := orderRouter(s)

	rec, env := doJSON(t, r, http.MethodGet, "/orders/get/totalsales", nil)
	checkStatus(t, rec, http.StatusOK)
	assert.JSONEq(t, `{"totalsales":0}`, string(env.Data))

	saree := s.addProduct(100)
	doJSON(t, r, http.MethodPost, "/orders", orderPayload([]map[string]any{
		{"product": saree.Hex(), "quantity": 3},
	}))

	_, env = doJSON(t, r, http.MethodGet, "/orders/get/totalsales", nil)
	assert.JSONEq(t, `{"totalsales":300}`, string(env.Data))
}

func TestOrderCount(t *testing.T) {
	s := newMemOrders()
	r := orderRouter(s)

	_, env := doJSON(t, r, http.MethodGet, "/orders/get/count", nil)
	assert.JSONEq(t, `{"count":0}`, string(env.Data))
}

func TestOrderUserOrders(t *testing.T) {
	s := newMemOrders()
	saree := s.addProduct(10)
	r := orderRouter(s)

	user := primitive.NewObjectID()
	payload := orderPayload([]map[string]any{{"product": saree.Hex(), "quantity": 1}})
	payload["user"] = user.Hex()
	doJSON(t, r, http.MethodPost, "/orders", payload)
	doJSON(t, r, http.MethodPost, "/orders", orderPayload([]map[string]any{
		{"product": saree.Hex(), "quantity": 1},
	}))

	rec, env := doJSON(t, r, http.MethodGet, "/orders/get/userorders/"+user.Hex(), nil)
	checkStatus(t, rec, http.StatusOK)

	var got []models.PopulatedOrder
	decodeData(t, env, &got)
	require.Len(t, got, 1)
	assert.Equal(t, user, got[0].User)
}

func TestOrderUserOrdersBadID(t *testing.T) {
	r := orderRouter(newMemOrders())

	rec, _ := doJSON(t, r, http.MethodGet, "/orders/get/userorders/whoami", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderGetBadID(t *testing.T) {
	r := orderRouter(newMemOrders())

	rec, _ := doJSON(t, r, http.MethodGet, "/orders/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
