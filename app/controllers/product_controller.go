package controllers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

// maxUploadMemory bounds the in-memory part of multipart parsing.
const maxUploadMemory = 32 << 20

// ProductStore is what the product handlers need from persistence.
type ProductStore interface {
	All(ctx context.Context, categoryIDs []primitive.ObjectID) ([]models.PopulatedProduct, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.PopulatedProduct, error)
	Create(ctx context.Context, p models.Product) (models.Product, error)
	Replace(ctx context.Context, id primitive.ObjectID, p models.Product) (models.Product, error)
	ReplaceGallery(ctx context.Context, id primitive.ObjectID, urls []string) (models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	Count(ctx context.Context) (int64, error)
	Featured(ctx context.Context, limit int64) ([]models.Product, error)
	CategoryExists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// ImageIntake validates and stores uploads, returning public URLs.
type ImageIntake interface {
	Store(fh *multipart.FileHeader) (string, error)
	StoreAll(fhs []*multipart.FileHeader) ([]string, error)
}

type ProductController struct {
	products ProductStore
	images   ImageIntake
}

func NewProductController(products ProductStore, images ImageIntake) *ProductController {
	return &ProductController{products: products, images: images}
}

// List handles GET /products?categories=a,b. Results are joined with their
// category; the optional filter restricts to the given category IDs.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	var categoryIDs []primitive.ObjectID
	if raw := r.URL.Query().Get("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := store.ParseID(strings.TrimSpace(part))
			if err != nil {
				response.BadRequest(w, "Invalid category identifier in filter.")
				return
			}
			categoryIDs = append(categoryIDs, id)
		}
	}

	products, err := c.products.All(r.Context(), categoryIDs)
	if err != nil {
		storeError(r.Context(), w, err, "")
		return
	}
	response.Success(w, products)
}

// Get handles GET /products/{id}.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	product, err := c.products.FindByID(r.Context(), id)
	if err != nil {
		storeError(r.Context(), w, err, "The product with the given ID was not found.")
		return
	}
	response.Success(w, product)
}

// Create handles POST /products (multipart). The referenced category must
// exist and exactly one image is required; both are checked before anything
// is written.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	product, ok := c.productFromForm(w, r)
	if !ok {
		return
	}

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		response.BadRequest(w, "No image in the request.")
		return
	}

	url, err := c.images.Store(files[0])
	if err != nil {
		c.imageError(r.Context(), w, err)
		return
	}

	product.Image = url
	product.DateCreated = time.Now()

	created, err := c.products.Create(r.Context(), product)
	if err != nil {
		storeError(r.Context(), w, err, "")
		return
	}
	response.Created(w, created)
}

// Update handles PUT /products/{id} (multipart). Full-field replace; the
// image is optional and falls back to the stored URL when absent.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	product, ok := c.productFromForm(w, r)
	if !ok {
		return
	}

	existing, err := c.products.FindByID(r.Context(), id)
	if err != nil {
		storeError(r.Context(), w, err, "The product with the given ID was not found.")
		return
	}

	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		url, err := c.images.Store(files[0])
		if err != nil {
			c.imageError(r.Context(), w, err)
			return
		}
		product.Image = url
	} else {
		product.Image = existing.Product.Image
	}

	updated, err := c.products.Replace(r.Context(), id, product)
	if err != nil {
		storeError(r.Context(), w, err, "The product cannot be updated.")
		return
	}
	response.Success(w, updated)
}

// Delete handles DELETE /products/{id}.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := c.products.Delete(r.Context(), id)
	if err != nil {
		storeError(r.Context(), w, err, "The product was not found.")
		return
	}
	response.Success(w, deleted)
}

// Count handles GET /products/get/count. A zero count is a valid answer.
func (c *ProductController) Count(w http.ResponseWriter, r *http.Request) {
	n, err := c.products.Count(r.Context())
	if err != nil {
		storeError(r.Context(), w, err, "")
		return
	}
	response.Success(w, map[string]int64{"count": n})
}

// Featured handles GET /products/get/featured/{count}. A count of 0 applies
// no explicit limit and returns every featured product.
func (c *ProductController) Featured(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.ParseInt(chi.URLParam(r, "count"), 10, 64)
	if err != nil || limit < 0 {
		response.BadRequest(w, "Count must be a non-negative integer.")
		return
	}

	products, err := c.products.Featured(r.Context(), limit)
	if err != nil {
		storeError(r.Context(), w, err, "")
		return
	}
	response.Success(w, products)
}

// Gallery handles PUT /products/gallery-images/{id}: replaces the gallery
// URL list wholesale with up to 10 uploaded images.
func (c *ProductController) Gallery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.BadRequest(w, "Invalid multipart request.")
		return
	}

	urls, err := c.images.StoreAll(r.MultipartForm.File["images"])
	if err != nil {
		c.imageError(r.Context(), w, err)
		return
	}

	updated, err := c.products.ReplaceGallery(r.Context(), id, urls)
	if err != nil {
		storeError(r.Context(), w, err, "The gallery cannot be updated.")
		return
	}
	response.Success(w, updated)
}

// productFromForm parses the multipart form fields shared by Create and
// Update, verifying the category reference resolves.
func (c *ProductController) productFromForm(w http.ResponseWriter, r *http.Request) (models.Product, bool) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.BadRequest(w, "Invalid multipart request.")
		return models.Product{}, false
	}

	categoryID, err := store.ParseID(r.FormValue("category"))
	if err != nil {
		response.BadRequest(w, "Invalid category.")
		return models.Product{}, false
	}

	exists, err := c.products.CategoryExists(r.Context(), categoryID)
	if err != nil {
		storeError(r.Context(), w, err, "")
		return models.Product{}, false
	}
	if !exists {
		response.BadRequest(w, "Invalid category.")
		return models.Product{}, false
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	stock, _ := strconv.Atoi(r.FormValue("countInStock"))
	rating, _ := strconv.ParseFloat(r.FormValue("rating"), 64)
	reviews, _ := strconv.Atoi(r.FormValue("numReviews"))
	featured, _ := strconv.ParseBool(r.FormValue("isFeatured"))

	return models.Product{
		Name:            r.FormValue("name"),
		Description:     r.FormValue("description"),
		RichDescription: r.FormValue("richDescription"),
		Brand:           r.FormValue("brand"),
		Price:           price,
		Category:        categoryID,
		CountInStock:    stock,
		Rating:          rating,
		NumReviews:      reviews,
		IsFeatured:      featured,
	}, true
}

func (c *ProductController) imageError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrInvalidImageType) || errors.Is(err, services.ErrTooManyImages) {
		response.BadRequest(w, err.Error())
		return
	}
	storeError(ctx, w, err, "")
}
