package study

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"prodflow/internal/domain"
	"prodflow/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/studies", h.Create)
	rg.GET("/studies", h.List)
	rg.GET("/studies/:id", h.Get)
	rg.PUT("/studies/:id/estimate/:stage", h.UpdateStageEstimate)
	rg.POST("/studies/:id/approve", h.Approve)
	rg.POST("/studies/:id/reject", h.Reject)
	rg.GET("/studies/:id/report", h.ExportReport)
}

func actorFrom(c *gin.Context) Actor {
	return Actor{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func studyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid study ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Study not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot perform this operation on this study")
	case errors.Is(err, ErrInvalidStage):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown stage")
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusBadRequest, "INVALID_STATE", err.Error())
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", "Study was modified concurrently, please retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateStudyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	st, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, st)
}

func (h *Handler) List(c *gin.Context) {
	studies, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, studies)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := studyID(c)
	if !ok {
		return
	}

	st, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, st)
}

func (h *Handler) UpdateStageEstimate(c *gin.Context) {
	id, ok := studyID(c)
	if !ok {
		return
	}

	var req EstimateUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	st, err := h.service.UpdateStageEstimate(c.Request.Context(), id, actorFrom(c), c.Param("stage"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, st)
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := studyID(c)
	if !ok {
		return
	}

	result, err := h.service.Approve(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := studyID(c)
	if !ok {
		return
	}

	st, err := h.service.Reject(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, st)
}

func (h *Handler) ExportReport(c *gin.Context) {
	id, ok := studyID(c)
	if !ok {
		return
	}

	report, err := h.service.RenderReport(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=study_%d.txt", id))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}
