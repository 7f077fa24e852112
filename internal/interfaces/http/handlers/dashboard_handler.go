package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/internal/interfaces/http/middleware"
	"invest-desk.backend/internal/interfaces/http/response"
)

type DashboardService interface {
	Stats(ctx context.Context, caller *entities.User) (*entities.DashboardStats, error)
	MonthlyTotals(ctx context.Context, caller *entities.User) ([]entities.MonthlyTotal, error)
}

// DashboardHandler handles the office dashboard endpoint
type DashboardHandler struct {
	dashboardUsecase DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardUsecase DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// Get returns counts, the payment sum and per-month totals
// GET /api/v1/dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	stats, err := h.dashboardUsecase.Stats(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	monthly, err := h.dashboardUsecase.MonthlyTotals(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"stats":         stats,
		"monthlyTotals": monthly,
	})
}
