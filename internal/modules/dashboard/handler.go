package dashboard

import (
	"net/http"

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

// RegisterRoutes wires the dashboard endpoints. The KPI summary is guarded
// at the router with the superadmin middleware; the gantt feed self-scopes
// by role.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, summaryGuard gin.HandlerFunc) {
	rg.GET("/dashboard/summary", summaryGuard, h.Summary)
	rg.GET("/dashboard/gantt", h.Gantt)
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute dashboard")
		return
	}

	response.Success(c, http.StatusOK, summary)
}

func (h *Handler) Gantt(c *gin.Context) {
	tasks, err := h.service.Gantt(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build gantt data")
		return
	}

	response.Success(c, http.StatusOK, tasks)
}
