// Package routes wires the HTTP surface onto the router.
package routes

import (
	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/storage"
)

// RegisterAPI mounts every resource route under the configured API prefix.
func RegisterAPI(r *router.Router) {
	db := database.DB()

	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	images := services.NewImageService(storage.Use(config.StorageDefault()))
	orderWorkflow := services.NewOrderService(orderRepo)

	categoryController := controllers.NewCategoryController(categoryRepo)
	productController := controllers.NewProductController(productRepo, images)
	orderController := controllers.NewOrderController(orderRepo, orderWorkflow)

	api := r.Group(config.APIPrefix())

	cats := api.Group("/categories")
	cats.Get("", "categories.list", categoryController.List)
	cats.Get("/{id}", "categories.get", categoryController.Get)
	cats.Post("", "categories.create", categoryController.Create)
	cats.Put("/{id}", "categories.update", categoryController.Update)
	cats.Delete("/{id}", "categories.delete", categoryController.Delete)

	products := api.Group("/products")
	products.Get("", "products.list", productController.List)
	products.Get("/get/count", "products.count", productController.Count)
	products.Get("/get/featured/{count}", "products.featured", productController.Featured)
	products.Get("/{id}", "products.get", productController.Get)
	products.Post("", "products.create", productController.Create)
	products.Put("/gallery-images/{id}", "products.gallery", productController.Gallery)
	products.Put("/{id}", "products.update", productController.Update)
	products.Delete("/{id}", "products.delete", productController.Delete)

	orders := api.Group("/orders")
	orders.Get("", "orders.list", orderController.List)
	orders.Get("/get/totalsales", "orders.totalsales", orderController.TotalSales)
	orders.Get("/get/count", "orders.count", orderController.Count)
	orders.Get("/get/userorders/{userid}", "orders.userorders", orderController.UserOrders)
	orders.Get("/{id}", "orders.get", orderController.Get)
	orders.Post("", "orders.create", orderController.Create)
	orders.Put("/{id}", "orders.update", orderController.UpdateStatus)
	orders.Delete("/{id}", "orders.delete", orderController.Delete)
}
