package observation

import (
	"errors"
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
	rg.POST("/projects/:id/observations", h.Create)
	rg.GET("/projects/:id/observations", h.List)
	rg.GET("/observations/mentions", h.MyMentions)
}

type createRequest struct {
	Content    string  `json:"content" binding:"required"`
	Recipients []int64 `json:"recipients"`
}

func (h *Handler) Create(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid project ID")
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.Create(c.Request.Context(), CreateInput{
		ProjectID:  projectID,
		Content:    req.Content,
		Recipients: req.Recipients,
		CreatedBy:  c.GetInt64("user_id"),
		Role:       domain.UserRole(c.GetString("role")),
	})
	if err != nil {
		if errors.Is(err, ErrProjectGone) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
		return
	}

	response.Success(c, http.StatusCreated, o)
}

func (h *Handler) List(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid project ID")
		return
	}

	list, err := h.service.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
		return
	}

	response.Success(c, http.StatusOK, list)
}

func (h *Handler) MyMentions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	list, err := h.service.MyMentions(c.Request.Context(), c.GetInt64("user_id"), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
		return
	}

	response.Success(c, http.StatusOK, list)
}
