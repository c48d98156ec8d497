package controllers

import (
	"context"
	"net/http"

	"bellezza-backend/services"
	"bellezza-backend/storage"
	"bellezza-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MediaController uploads employee photos and category images.
type MediaController struct {
	catalog *services.CatalogService
	storage *storage.PhotoStorage
	log     logrus.FieldLogger
}

func NewMediaController(catalog *services.CatalogService, photos *storage.PhotoStorage, log logrus.FieldLogger) *MediaController {
	return &MediaController{catalog: catalog, storage: photos, log: log}
}

// UploadEmployeePhoto handles POST /api/employees/:id/photo
func (h *MediaController) UploadEmployeePhoto(c *gin.Context) {
	h.upload(c, storage.DirEmployees, func(ctx context.Context, id uuid.UUID, path string) (interface{}, string, error) {
		return h.catalog.SetEmployeePhoto(ctx, id, path)
	})
}

// UploadCategoryImage handles POST /api/categories/:id/image
func (h *MediaController) UploadCategoryImage(c *gin.Context) {
	h.upload(c, storage.DirCategories, func(ctx context.Context, id uuid.UUID, path string) (interface{}, string, error) {
		return h.catalog.SetCategoryImage(ctx, id, path)
	})
}

type attachFunc func(ctx context.Context, id uuid.UUID, path string) (interface{}, string, error)

func (h *MediaController) upload(c *gin.Context, dir string, attach attachFunc) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.storage.MaxUploadBytes()+1<<20)
	file, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "file field is required")
		return
	}
	src, err := file.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Could not read upload")
		return
	}
	defer src.Close()

	ctx := c.Request.Context()
	path, err := h.storage.Save(ctx, dir, id, src)
	if respondErr(c, err) {
		return
	}

	entity, previous, err := attach(ctx, id, path)
	if err != nil {
		_ = h.storage.Delete(ctx, path)
		utils.RespondAppError(c, err)
		return
	}
	if err := h.storage.Delete(ctx, previous); err != nil {
		h.log.WithError(err).WithField("path", previous).Warn("failed to remove replaced file")
	}
	c.JSON(http.StatusOK, entity)
}
