package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"resource-catalog-api/internal/apierr"
	"resource-catalog-api/internal/cache"
	"resource-catalog-api/internal/pagination"
	"resource-catalog-api/internal/realtime"
	"resource-catalog-api/internal/store"
	"resource-catalog-api/internal/validation"
	"resource-catalog-api/internal/version"
)

// CreateResourceRequest represents the request payload for creating a resource
type CreateResourceRequest struct {
	Fields map[string]any `json:"fields" binding:"required"`
}

// UpdateResourceRequest represents the request payload for a partial update
type UpdateResourceRequest struct {
	Fields map[string]any `json:"fields" binding:"required"`
}

// ResourceHandler wires the resource store, the page cache, the pagination
// engine and the event hub behind the resource endpoints. The store is owned
// here and passed nowhere else; handlers are the single mutation path.
type ResourceHandler struct {
	store    *store.Store
	pages    cache.Cache[string, pagination.Page]
	limits   pagination.Limits
	hub      *realtime.Hub
	validate *validatorv10.Validate
}

// NewResourceHandler assembles a handler around its collaborators.
func NewResourceHandler(st *store.Store, pages cache.Cache[string, pagination.Page], limits pagination.Limits, hub *realtime.Hub) *ResourceHandler {
	return &ResourceHandler{
		store:    st,
		pages:    pages,
		limits:   limits,
		hub:      hub,
		validate: validation.New(),
	}
}

// respondError translates a typed core error into an HTTP response.
func respondError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		body := gin.H{"error": apiErr.Message}
		for k, v := range apiErr.Details {
			body[k] = v
		}
		c.JSON(apiErr.Status(), body)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}

// pageCacheKey identifies one cached page by everything that shapes it.
func pageCacheKey(apiVersion, cursor, rawLimit string, fields []string) string {
	return fmt.Sprintf("page|%s|%s|%s|%s", apiVersion, cursor, rawLimit, strings.Join(fields, ","))
}

/*
*
ListResources handles GET /api/resources
Cursor-paginated listing with optional field projection; pages are served
from the TTL cache until a write invalidates them.
*/
func (h *ResourceHandler) ListResources(c *gin.Context) {
	vctx, _ := version.FromGin(c)

	req := pagination.Request{
		Cursor:   c.Query("cursor"),
		RawLimit: c.Query("limit"),
		Fields:   pagination.ParseFields(c.Query("fields")),
		BasePath: c.Request.URL.Path,
	}

	key := pageCacheKey(vctx.Version, req.Cursor, req.RawLimit, req.Fields)
	if page, ok := h.pages.Get(key); ok {
		c.Header("X-Cache", "hit")
		c.JSON(http.StatusOK, page)
		return
	}

	page, err := pagination.BuildPage(h.store, req, h.limits)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.pages.Set(key, page, 0); err != nil {
		// CacheClosed means the service is shutting down; surface it.
		respondError(c, err)
		return
	}

	c.Header("X-Cache", "miss")
	c.JSON(http.StatusOK, page)
}

/*
*
CreateResource handles POST /api/resources
Creates a new record and invalidates all cached pages.
*/
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validation.ValidateCreate(h.validate, req.Fields); err != nil {
		respondError(c, err)
		return
	}

	rec, err := h.store.Create(req.Fields)
	if err != nil {
		respondError(c, err)
		return
	}

	// Cached pages may no longer reflect the collection.
	h.pages.Clear()
	h.broadcast(userID, "resource_created", rec.ID)

	c.JSON(http.StatusCreated, rec.Map())
}

// GetResource handles GET /api/resources/:id
func (h *ResourceHandler) GetResource(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resource ID is required"})
		return
	}

	rec, err := h.store.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec.Map())
}

// UpdateResource handles PATCH /api/resources/:id
// Shallow-merges the provided fields over the existing record: each provided
// field fully replaces the prior value, omitted fields stay untouched.
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resource ID is required"})
		return
	}

	var req UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.store.Update(id, req.Fields)
	if err != nil {
		respondError(c, err)
		return
	}

	h.pages.Clear()
	h.broadcast(userID, "resource_updated", rec.ID)

	c.JSON(http.StatusOK, rec.Map())
}

// DeleteResource handles DELETE /api/resources/:id
// Cursors referencing the deleted record degrade to start-from-beginning on
// the next listing.
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resource ID is required"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	h.pages.Clear()
	h.broadcast(userID, "resource_deleted", id)

	c.JSON(http.StatusOK, gin.H{
		"message": "Resource deleted successfully",
		"id":      id,
	})
}

func (h *ResourceHandler) broadcast(userID, eventType, resourceID string) {
	if h.hub == nil {
		return
	}
	evt := map[string]any{
		"type":       eventType,
		"resourceId": resourceID,
		"userId":     userID,
		"version":    1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		h.hub.Broadcast(userID, bytes)
	}
}
