package section

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crmcore/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/module-section/:moduleId", h.ListSections)
	rg.POST("/module-section/:moduleId", h.ModifySections)
	// Without a module id, stock-named sections adopt their module as its
	// default section.
	rg.POST("/module-section", h.ModifySections)
}

func (h *Handler) ListSections(c *gin.Context) {
	sections, err := h.service.List(c.Request.Context(), c.Param("moduleId"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list sections")
		return
	}
	response.Success(c, http.StatusOK, sections)
}

// ModifySections handles POST /api/v1/module-section/:moduleId with a batch
// of layout changes.
func (h *Handler) ModifySections(c *gin.Context) {
	var req ModifySectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid section batch payload")
		return
	}

	sections, err := h.service.ModifySections(c.Request.Context(), c.Param("moduleId"), req.Items)
	if err != nil {
		switch {
		case errors.Is(err, ErrSectionNotFound):
			response.Error(c, http.StatusNotFound, "SECTION_NOT_FOUND", "Section not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to modify sections")
		}
		return
	}

	response.Success(c, http.StatusOK, sections)
}
