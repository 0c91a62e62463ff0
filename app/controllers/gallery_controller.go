package controllers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/app/services"
	"github.com/velora-shop/velora/pkg/logger"
	"github.com/velora-shop/velora/pkg/response"
)

// GalleryController handles the offer-carousel image endpoints.
type GalleryController struct {
	gallery *services.GalleryService
}

func NewGalleryController(db *gorm.DB) *GalleryController {
	return &GalleryController{gallery: services.NewGalleryService(db)}
}

// Upload stores one or more files sent under the "images" form field.
// POST /gallery
func (c *GalleryController) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		response.Error(w, http.StatusBadRequest, "No images provided")
		return
	}

	var created []models.Image
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Could not read upload")
			return
		}

		image, err := c.gallery.Add(header.Filename, file)
		file.Close()
		if err != nil {
			logger.WithCtx(r.Context()).Error("gallery upload failed", "file", header.Filename, "error", err)
			response.Error(w, http.StatusInternalServerError, "Could not store image")
			return
		}
		created = append(created, image)
	}

	response.Created(w, created)
}

// List returns all carousel images.
// GET /gallery
func (c *GalleryController) List(w http.ResponseWriter, r *http.Request) {
	images, err := c.gallery.List()
	if err != nil {
		logger.WithCtx(r.Context()).Error("gallery list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not list images")
		return
	}
	response.Success(w, images)
}

// Update replaces the file behind an existing image.
// PUT /gallery/{id}
func (c *GalleryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid image id")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "No image provided")
		return
	}
	defer file.Close()

	image, err := c.gallery.Replace(id, header.Filename, file)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("gallery update failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update image")
		return
	}
	response.Success(w, image)
}

// Delete removes an image.
// DELETE /gallery/{id}
func (c *GalleryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid image id")
		return
	}

	if err := c.gallery.Remove(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("gallery delete failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not delete image")
		return
	}
	response.Message(w, "Image deleted")
}
