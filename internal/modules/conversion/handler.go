package conversion

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
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
	rg.POST("/leads/:id/convert", h.ConvertLead)
}

// ConvertLead handles POST /api/v1/leads/:id/convert?ownerId=
// @Summary Convert a lead into account, contact and optional deal
// @Tags Conversion
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param ownerId query string false "Reassign to this owner before converting"
// @Success 200 {object} Result
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /leads/{id}/convert [post]
func (h *Handler) ConvertLead(c *gin.Context) {
	deal, ok := readDealPayload(c)
	if !ok {
		return
	}

	res, err := h.service.ConvertLead(c.Request.Context(), c.Param("id"), deal, c.Query("ownerId"))
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.Is(err, ErrLeadNotFound):
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
		case errors.Is(err, ErrOwnerNotFound):
			response.Error(c, http.StatusNotFound, "OWNER_NOT_FOUND", "Owner not found")
		case errors.As(err, &verr):
			response.ValidationError(c, verr.Fields)
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to convert lead")
		}
		return
	}

	response.Success(c, http.StatusOK, res)
}

// readDealPayload distinguishes "no deal wanted" (empty body or {}) from a
// deal payload that must parse. Returns ok=false after writing the error.
func readDealPayload(c *gin.Context) (*ConvertDealRequest, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Could not read request body")
		return nil, false
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("{}")) {
		return nil, true
	}

	var req ConvertDealRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return nil, false
	}
	return &req, true
}
