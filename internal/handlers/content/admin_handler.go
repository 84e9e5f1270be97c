// internal/handlers/content/admin_handler.go
package content

import (
	"net/http"

	"jvhelp-service/internal/domain/content"
	"jvhelp-service/internal/middleware"
	"jvhelp-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgProductNotFound = "product not found"
	msgThoughtNotFound = "thought not found"
)

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ValidationError(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// ========== Hero ==========

func (h *ContentHandler) AdminGetHero(c *gin.Context) {
	hero, err := h.contentService.AdminHero(c.Request.Context())
	if err != nil {
		h.fail(c, "get hero content", err, "")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": hero})
}

func (h *ContentHandler) AdminUpdateHero(c *gin.Context) {
	var req content.HeroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body")
		return
	}

	hero, err := h.contentService.UpdateHero(c.Request.Context(), &req, middleware.Username(c))
	if err != nil {
		h.fail(c, "update hero content", err, "")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "Hero content updated successfully",
		"data":    hero,
	})
}

// ========== Products ==========

func (h *ContentHandler) AdminListProducts(c *gin.Context) {
	products, err := h.contentService.AdminProducts(c.Request.Context())
	if err != nil {
		h.fail(c, "list products", err, "")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": products, "total": len(products)})
}

func (h *ContentHandler) AdminCreateProduct(c *gin.Context) {
	var req content.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body")
		return
	}

	product, err := h.contentService.CreateProduct(c.Request.Context(), &req, middleware.Username(c))
	if err != nil {
		h.fail(c, "create product", err, "")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    product,
	})
}

func (h *ContentHandler) AdminUpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req content.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body")
		return
	}

	product, err := h.contentService.UpdateProduct(c.Request.Context(), id, &req, middleware.Username(c))
	if err != nil {
		h.fail(c, "update product", err, msgProductNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    product,
	})
}

func (h *ContentHandler) AdminDeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.contentService.DeleteProduct(c.Request.Context(), id, middleware.Username(c)); err != nil {
		h.fail(c, "delete product", err, msgProductNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// ========== Thoughts ==========

func (h *ContentHandler) AdminListThoughts(c *gin.Context) {
	var filters content.ThoughtListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "page and limit must be numbers")
		return
	}

	page, err := h.contentService.AdminThoughts(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, "list thoughts", err, "")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"thoughts":   page.Thoughts,
		"pagination": page.Pagination,
	})
}

func (h *ContentHandler) AdminDeleteThought(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.contentService.DeleteThought(c.Request.Context(), id, middleware.Username(c)); err != nil {
		h.fail(c, "delete thought", err, msgThoughtNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Thought deleted successfully"})
}
