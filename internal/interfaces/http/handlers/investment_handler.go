package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/internal/interfaces/http/middleware"
	"invest-desk.backend/internal/interfaces/http/response"
)

type AllocationService interface {
	Allocate(ctx context.Context, caller *entities.User, paymentID uuid.UUID, input *entities.BulkInvestmentInput) ([]*entities.Investment, error)
}

type InvestmentReader interface {
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*entities.Investment, error)
}

// InvestmentHandler handles investment endpoints
type InvestmentHandler struct {
	allocationUsecase AllocationService
	investmentRepo    InvestmentReader
}

// NewInvestmentHandler creates a new investment handler
func NewInvestmentHandler(allocationUsecase AllocationService, investmentRepo InvestmentReader) *InvestmentHandler {
	return &InvestmentHandler{
		allocationUsecase: allocationUsecase,
		investmentRepo:    investmentRepo,
	}
}

// AllocateBulk splits a payment into investment rows in one transaction
// POST /api/v1/investments/bulk/:payment
func (h *InvestmentHandler) AllocateBulk(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	paymentID, err := uuid.Parse(c.Param("payment"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid payment ID"))
		return
	}

	var input entities.BulkInvestmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	investments, err := h.allocationUsecase.Allocate(c.Request.Context(), caller, paymentID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"investments": investments})
}

// ListByAccount lists the investments recorded against one account
// GET /api/v1/accounts/:id/investments
func (h *InvestmentHandler) ListByAccount(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account ID"))
		return
	}

	investments, err := h.investmentRepo.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"investments": investments})
}
