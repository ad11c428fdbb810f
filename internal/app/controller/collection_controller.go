package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vendra/vendra-backend/internal/app/service"
	apperrors "github.com/vendra/vendra-backend/internal/errors"
	"github.com/vendra/vendra-backend/internal/middleware"
)

type CollectionController struct {
	collectionService service.CollectionService
}

func NewCollectionController(collectionService service.CollectionService) *CollectionController {
	return &CollectionController{
		collectionService: collectionService,
	}
}

type CollectionRequest struct {
	Title string `json:"title" binding:"required"`
}

// ListCollections returns all collections (admin)
// GET /api/v1/admin/collections
func (ctrl *CollectionController) ListCollections(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	collections, err := ctrl.collectionService.ListCollections()
	if err != nil {
		log.Error("Failed to list collections", err, nil)
		apperrors.InternalError(c, "Failed to fetch collections")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collections": collections,
		"count":       len(collections),
	})
}

// GetCollection returns one collection
// GET /api/v1/admin/collections/:id
func (ctrl *CollectionController) GetCollection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	collection, err := ctrl.collectionService.GetCollection(id)
	if err != nil {
		respondCollectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collection": collection,
	})
}

// CreateCollection creates a collection
// POST /api/v1/admin/collections
func (ctrl *CollectionController) CreateCollection(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	collection, err := ctrl.collectionService.CreateCollection(req.Title)
	if err != nil {
		respondCollectionError(c, err)
		return
	}

	log.Info("Collection created", map[string]interface{}{
		"collection_id": collection.ID,
	})
	c.JSON(http.StatusCreated, gin.H{
		"collection": collection,
	})
}

// UpdateCollection renames a collection
// PATCH /api/v1/admin/collections/:id
func (ctrl *CollectionController) UpdateCollection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	collection, err := ctrl.collectionService.UpdateCollection(id, req.Title)
	if err != nil {
		respondCollectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collection": collection,
	})
}

// DeleteCollection removes a collection, detaching its products
// DELETE /api/v1/admin/collections/:id
func (ctrl *CollectionController) DeleteCollection(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.collectionService.DeleteCollection(id); err != nil {
		respondCollectionError(c, err)
		return
	}

	log.Info("Collection deleted", map[string]interface{}{
		"collection_id": id,
	})
	c.Status(http.StatusNoContent)
}

func respondCollectionError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	if errors.Is(err, service.ErrCollectionNotFound) {
		apperrors.NotFound(c, apperrors.CollectionNotFound, "Collection not found")
		return
	}

	log.Error("Collection operation failed", err, nil)
	info := apperrors.ParseError(err, "collection")
	apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
}
