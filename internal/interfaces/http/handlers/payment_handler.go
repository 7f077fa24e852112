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
	"invest-desk.backend/pkg/utils"
)

type PaymentService interface {
	List(ctx context.Context, caller *entities.User, params entities.ListPaymentsParams) ([]*entities.Payment, utils.PaginationMeta, error)
	Get(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.Payment, error)
	Create(ctx context.Context, caller *entities.User, input *entities.PaymentInput) (*entities.Payment, error)
	Update(ctx context.Context, caller *entities.User, id uuid.UUID, input *entities.PaymentInput) (*entities.Payment, error)
	Delete(ctx context.Context, caller *entities.User, id uuid.UUID) error
	ToggleAdjusted(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.Payment, error)
}

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentUsecase PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// List lists payments with search, adjusted filter and sorting
// GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var params entities.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payments, meta, err := h.paymentUsecase.List(c.Request.Context(), caller, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, payments, meta)
}

// Get gets a payment by ID, including its allocation log
// GET /api/v1/payments/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid payment ID"))
		return
	}

	payment, err := h.paymentUsecase.Get(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// Create creates a new payment
// POST /api/v1/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payment, err := h.paymentUsecase.Create(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payment": payment})
}

// Update updates a payment; the allocation log is untouched
// PUT /api/v1/payments/:id
func (h *PaymentHandler) Update(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid payment ID"))
		return
	}

	var input entities.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payment, err := h.paymentUsecase.Update(c.Request.Context(), caller, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// Delete soft deletes a payment
// DELETE /api/v1/payments/:id
func (h *PaymentHandler) Delete(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid payment ID"))
		return
	}

	if err := h.paymentUsecase.Delete(c.Request.Context(), caller, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "payment deleted"})
}

// ToggleAdjusted flips the payment's adjusted flag
// PATCH /api/v1/payments/:id/adjust
func (h *PaymentHandler) ToggleAdjusted(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid payment ID"))
		return
	}

	payment, err := h.paymentUsecase.ToggleAdjusted(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}
