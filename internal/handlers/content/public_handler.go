// internal/handlers/content/public_handler.go
package content

import (
	"net/http"

	"jvhelp-service/internal/domain/content"
	"jvhelp-service/internal/pkg/response"
	contentUsecase "jvhelp-service/internal/service/content"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContentHandler struct {
	contentService *contentUsecase.ContentService
	logger         *zap.Logger
}

func NewContentHandler(contentService *contentUsecase.ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		logger:         logger,
	}
}

func language(c *gin.Context) content.Language {
	return content.ParseLanguage(c.Query("lang"))
}

// fail logs unexpected errors before mapping them onto the envelope.
func (h *ContentHandler) fail(c *gin.Context, op string, err error, notFoundMsg string) {
	if !response.IsClientError(err) {
		h.logger.Error(op+" failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	response.FromError(c, err, notFoundMsg)
}

// ========== Public site ==========

func (h *ContentHandler) GetHero(c *gin.Context) {
	view, err := h.contentService.PublicHero(c.Request.Context(), language(c))
	if err != nil {
		h.fail(c, "get hero content", err, "")
		return
	}
	response.Data(c, view)
}

func (h *ContentHandler) GetActivities(c *gin.Context) {
	list, err := h.contentService.PublicActivities(c.Request.Context(), language(c))
	if err != nil {
		h.fail(c, "list activities", err, "")
		return
	}
	response.Data(c, list)
}

func (h *ContentHandler) GetGallery(c *gin.Context) {
	list, err := h.contentService.PublicGallery(c.Request.Context(), language(c))
	if err != nil {
		h.fail(c, "list gallery", err, "")
		return
	}
	response.Data(c, list)
}

// GetProducts supports ?lang=, ?category= and ?featured=true.
func (h *ContentHandler) GetProducts(c *gin.Context) {
	list, err := h.contentService.PublicProducts(
		c.Request.Context(),
		language(c),
		c.Query("category"),
		c.Query("featured") == "true",
	)
	if err != nil {
		h.fail(c, "list products", err, "")
		return
	}
	response.Data(c, list)
}

func (h *ContentHandler) GetThoughts(c *gin.Context) {
	var filters content.ThoughtListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "page and limit must be numbers")
		return
	}

	page, err := h.contentService.PublicThoughts(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, "list thoughts", err, "")
		return
	}
	response.Data(c, page)
}

// SubmitThought accepts a visitor thought.
func (h *ContentHandler) SubmitThought(c *gin.Context) {
	var req content.CreateThoughtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body")
		return
	}

	thought, err := h.contentService.SubmitThought(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, "submit thought", err, "")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Thank you for sharing your thought",
		"thought": thought.Public(),
	})
}
