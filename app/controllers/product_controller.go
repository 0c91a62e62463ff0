package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/app/repositories"
	"github.com/velora-shop/velora/app/services"
	"github.com/velora-shop/velora/pkg/bind"
	"github.com/velora-shop/velora/pkg/logger"
	"github.com/velora-shop/velora/pkg/response"
	"github.com/velora-shop/velora/pkg/storage"
	"github.com/velora-shop/velora/pkg/validate"
)

// ProductController handles product CRUD.
type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{catalog: services.NewCatalogService(db)}
}

// Create adds a product. Accepts JSON, or multipart form data with an
// optional "image" file.
// POST /products
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput

	if isMultipart(r) {
		parsed, ok := c.bindMultipart(w, r, &in)
		if !ok {
			return
		}
		in = parsed
	} else {
		if errs, err := bind.JSON(r, &in); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		} else if len(errs) > 0 {
			response.ValidationError(w, errs)
			return
		}
	}

	product, err := c.catalog.CreateProduct(in)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			response.Error(w, http.StatusBadRequest, "Category does not exist")
			return
		}
		logger.WithCtx(r.Context()).Error("create product failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not create product")
		return
	}
	response.Created(w, product)
}

// List returns products, filtered by ?name= and ?gender=.
// GET /products
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ProductFilter{
		Name:   r.URL.Query().Get("name"),
		Gender: r.URL.Query().Get("gender"),
	}

	products, err := c.catalog.ListProducts(filter)
	if err != nil {
		logger.WithCtx(r.Context()).Error("list products failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not list products")
		return
	}
	response.Success(w, products)
}

// ListByCategory returns the products of one category.
// GET /categories/{id}/products
func (c *ProductController) ListByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	products, err := c.catalog.ListProductsByCategory(id)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("list by category failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not list products")
		return
	}
	response.Success(w, products)
}

// Get returns one product with its category.
// GET /products/{id}
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := c.catalog.GetProduct(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("get product failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load product")
		return
	}
	response.Success(w, product)
}

// Update applies a partial update: only the fields present in the body
// change.
// PUT /products/{id}
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var in services.ProductUpdate
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.UpdateProduct(id, in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			response.NotFound(w)
		case errors.Is(err, services.ErrCategoryNotFound):
			response.Error(w, http.StatusBadRequest, "Category does not exist")
		case errors.Is(err, services.ErrInvalidProduct):
			response.Error(w, http.StatusUnprocessableEntity, "Invalid product data")
		default:
			logger.WithCtx(r.Context()).Error("update product failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "Could not update product")
		}
		return
	}
	response.Success(w, product)
}

// Delete removes a product.
// DELETE /products/{id}
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := c.catalog.DeleteProduct(id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("delete product failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not delete product")
		return
	}
	response.Message(w, "Product deleted")
}

// bindMultipart reads a ProductInput from multipart form fields, storing
// an optional "image" file on the active disk. Returns ok=false after
// writing an error response.
func (c *ProductController) bindMultipart(w http.ResponseWriter, r *http.Request, in *services.ProductInput) (services.ProductInput, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form data")
		return *in, false
	}

	in.Name = r.FormValue("name")
	in.Description = r.FormValue("description")
	in.Gender = r.FormValue("gender")
	in.Price, _ = strconv.ParseFloat(r.FormValue("price"), 64)
	in.DiscountedPrice, _ = strconv.ParseFloat(r.FormValue("discountedPrice"), 64)
	qty, _ := strconv.Atoi(r.FormValue("quantity"))
	in.Quantity = qty
	catID, _ := strconv.ParseUint(r.FormValue("categoryId"), 10, 64)
	in.CategoryID = uint(catID)

	if raw := r.FormValue("sizes"); raw != "" {
		var sizes models.StringList
		if err := sizes.UnmarshalJSON([]byte(raw)); err == nil {
			in.Sizes = sizes
		}
	}
	if raw := r.FormValue("colors"); raw != "" {
		var colors models.StringList
		if err := colors.UnmarshalJSON([]byte(raw)); err == nil {
			in.Colors = colors
		}
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		key, err := services.StoreUpload("products", header.Filename, file)
		if err != nil {
			logger.WithCtx(r.Context()).Error("product image upload failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "Could not store image")
			return *in, false
		}
		in.Image = storage.URL(key)
	}

	if errs := validate.Struct(in); len(errs) > 0 {
		response.ValidationError(w, errs)
		return *in, false
	}
	return *in, true
}
