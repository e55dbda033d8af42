package controllers

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/response"
)

// CategoryStore is what the category handlers need from persistence.
type CategoryStore interface {
	All(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error)
	Create(ctx context.Context, c models.Category) (models.Category, error)
	Replace(ctx context.Context, id primitive.ObjectID, c models.Category) (models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.Category, error)
}

type CategoryController struct {
	categories CategoryStore
}

func NewCategoryController(categories CategoryStore) *CategoryController {
	return &CategoryController{categories: categories}
}

type categoryInput struct {
	Name  string `json:"name" validate:"required"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func (in categoryInput) model() models.Category {
	return models.Category{Name: in.Name, Icon: in.Icon, Color: in.Color}
}

// List handles GET /categories.
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	cats, err := c.categories.All(r.Context())
	if err != nil {
		storeError(r.Context(), w, err, "")
		return
	}
	response.Success(w, cats)
}

// Get handles GET /categories/{id}.
func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	cat, err := c.categories.FindByID(r.Context(), id)
	if err != nil {
		storeError(r.Context(), w, err, "The category with the given ID was not found.")
		return
	}
	response.Success(w, cat)
}

// Create handles POST /categories.
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	created, err := c.categories.Create(r.Context(), in.model())
	if err != nil {
		storeError(r.Context(), w, err, "")
		return
	}
	response.Created(w, created)
}

// Update handles PUT /categories/{id}. Full-field replace.
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var in categoryInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	updated, err := c.categories.Replace(r.Context(), id, in.model())
	if err != nil {
		storeError(r.Context(), w, err, "The category cannot be updated.")
		return
	}
	response.Success(w, updated)
}

// Delete handles DELETE /categories/{id}.
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := c.categories.Delete(r.Context(), id)
	if err != nil {
		storeError(r.Context(), w, err, "The category was not found.")
		return
	}
	response.Success(w, deleted)
}
