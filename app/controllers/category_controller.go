package controllers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/services"
	"github.com/velora-shop/velora/pkg/bind"
	"github.com/velora-shop/velora/pkg/logger"
	"github.com/velora-shop/velora/pkg/response"
	"github.com/velora-shop/velora/pkg/storage"
	"github.com/velora-shop/velora/pkg/validate"
)

// CategoryController handles category CRUD.
type CategoryController struct {
	catalog *services.CatalogService
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{catalog: services.NewCatalogService(db)}
}

// Create adds a category. Accepts JSON, or multipart form data with an
// optional "image" file.
// POST /categories
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid form data")
			return
		}
		in.Name = r.FormValue("name")

		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			key, err := services.StoreUpload("categories", header.Filename, file)
			if err != nil {
				logger.WithCtx(r.Context()).Error("category image upload failed", "error", err)
				response.Error(w, http.StatusInternalServerError, "Could not store image")
				return
			}
			in.Image = storage.URL(key)
		}

		if errs := validate.Struct(&in); len(errs) > 0 {
			response.ValidationError(w, errs)
			return
		}
	} else {
		if errs, err := bind.JSON(r, &in); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		} else if len(errs) > 0 {
			response.ValidationError(w, errs)
			return
		}
	}

	category, err := c.catalog.CreateCategory(in)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateCategory) {
			response.Conflict(w, "Category already exists")
			return
		}
		logger.WithCtx(r.Context()).Error("create category failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not create category")
		return
	}
	response.Created(w, category)
}

// List returns categories, optionally filtered by ?name=.
// GET /categories
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalog.ListCategories(r.URL.Query().Get("name"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("list categories failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not list categories")
		return
	}
	response.Success(w, categories)
}

// Get returns one category.
// GET /categories/{id}
func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	category, err := c.catalog.GetCategory(id)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("get category failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load category")
		return
	}
	response.Success(w, category)
}

// Delete removes a category and all of its products.
// DELETE /categories/{id}
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	if err := c.catalog.DeleteCategory(id); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("delete category failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not delete category")
		return
	}
	response.Message(w, "Category deleted")
}
