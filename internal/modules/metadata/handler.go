package metadata

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crmcore/internal/domain"
	"crmcore/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/modules", h.ListModules)
	rg.GET("/modules/:id", h.GetModule)
	rg.PATCH("/modules/:id", h.ReplaceModule)
	rg.POST("/modules/:id/fields", h.UpsertField)
	rg.POST("/modules/:id/fields/move", h.MoveField)
	rg.POST("/modules/:id/groups/reorder", h.ReorderGroups)
	rg.DELETE("/modules/:id/groups/:group", h.DeleteGroup)
	rg.GET("/modules/:id/convert-targets", h.CompatibleTargets)
}

func (h *Handler) ListModules(c *gin.Context) {
	modules, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list modules")
		return
	}
	response.Success(c, http.StatusOK, modules)
}

func (h *Handler) GetModule(c *gin.Context) {
	m, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// ReplaceModule handles PATCH /api/v1/modules/:id with full-document replace
// semantics: the body must carry the complete desired meta array.
func (h *Handler) ReplaceModule(c *gin.Context) {
	var req ReplaceModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid module payload")
		return
	}

	m, err := h.service.Replace(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) UpsertField(c *gin.Context) {
	var f domain.FieldMeta
	if err := c.ShouldBindJSON(&f); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid field payload")
		return
	}

	m, err := h.service.UpsertField(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) MoveField(c *gin.Context) {
	var req MoveFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid move payload")
		return
	}

	m, err := h.service.MoveField(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) ReorderGroups(c *gin.Context) {
	var req ReorderGroupsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid reorder payload")
		return
	}

	m, err := h.service.ReorderGroups(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// DeleteGroup requires ?confirm=true; deleting a group drops all its fields
// with no way back.
func (h *Handler) DeleteGroup(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"
	m, err := h.service.DeleteGroup(c.Request.Context(), c.Param("id"), c.Param("group"), confirmed)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) CompatibleTargets(c *gin.Context) {
	field := c.Query("field")
	target := c.Query("target")
	if field == "" || target == "" {
		response.Error(c, http.StatusBadRequest, "MISSING_PARAMS", "field and target query params are required")
		return
	}

	fields, err := h.service.CompatibleTargets(c.Request.Context(), c.Param("id"), field, target)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, fields)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrModuleNotFound):
		response.Error(c, http.StatusNotFound, "MODULE_NOT_FOUND", err.Error())
	case errors.Is(err, ErrFieldNotFound):
		response.Error(c, http.StatusNotFound, "FIELD_NOT_FOUND", err.Error())
	case errors.Is(err, ErrGroupNotFound):
		response.Error(c, http.StatusNotFound, "GROUP_NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotConfirmed):
		response.Error(c, http.StatusBadRequest, "CONFIRM_REQUIRED", "Pass confirm=true to delete a group")
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrDuplicateSource),
		errors.Is(err, ErrIncompatibleTypes):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Module operation failed")
	}
}
