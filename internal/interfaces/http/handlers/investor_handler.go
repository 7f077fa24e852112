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

type InvestorService interface {
	List(ctx context.Context, caller *entities.User, params entities.ListInvestorsParams) ([]*entities.Investor, utils.PaginationMeta, error)
	Get(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.Investor, error)
	Create(ctx context.Context, caller *entities.User, input *entities.InvestorInput) (*entities.Investor, error)
	CreateWithUser(ctx context.Context, caller *entities.User, input *entities.InvestorWithUserInput) (*entities.Investor, error)
	Update(ctx context.Context, caller *entities.User, id uuid.UUID, input *entities.InvestorInput) (*entities.Investor, error)
	Delete(ctx context.Context, caller *entities.User, id uuid.UUID) error
	Activate(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.Investor, error)
	SetPending(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.Investor, error)
}

// InvestorHandler handles investor endpoints
type InvestorHandler struct {
	investorUsecase InvestorService
}

// NewInvestorHandler creates a new investor handler
func NewInvestorHandler(investorUsecase InvestorService) *InvestorHandler {
	return &InvestorHandler{investorUsecase: investorUsecase}
}

// List lists investors with search, status filter and sorting
// GET /api/v1/investors
func (h *InvestorHandler) List(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var params entities.ListInvestorsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	investors, meta, err := h.investorUsecase.List(c.Request.Context(), caller, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, investors, meta)
}

// Get gets an investor by ID
// GET /api/v1/investors/:id
func (h *InvestorHandler) Get(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid investor ID"))
		return
	}

	investor, err := h.investorUsecase.Get(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"investor": investor})
}

// Create creates a new investor owned by the caller
// POST /api/v1/investors
func (h *InvestorHandler) Create(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.InvestorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	investor, err := h.investorUsecase.Create(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"investor": investor})
}

// CreateWithUser creates a user account and an investor owned by it
// POST /api/v1/investors/with-user
func (h *InvestorHandler) CreateWithUser(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.InvestorWithUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	investor, err := h.investorUsecase.CreateWithUser(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"investor": investor})
}

// Update updates an investor
// PUT /api/v1/investors/:id
func (h *InvestorHandler) Update(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid investor ID"))
		return
	}

	var input entities.InvestorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	investor, err := h.investorUsecase.Update(c.Request.Context(), caller, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"investor": investor})
}

// Delete soft deletes an investor
// DELETE /api/v1/investors/:id
func (h *InvestorHandler) Delete(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid investor ID"))
		return
	}

	if err := h.investorUsecase.Delete(c.Request.Context(), caller, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "investor deleted"})
}

// Activate marks an investor active
// PATCH /api/v1/investors/:id/activate
func (h *InvestorHandler) Activate(c *gin.Context) {
	h.setStatus(c, true)
}

// SetPending marks an investor pending
// PATCH /api/v1/investors/:id/pending
func (h *InvestorHandler) SetPending(c *gin.Context) {
	h.setStatus(c, false)
}

func (h *InvestorHandler) setStatus(c *gin.Context, activate bool) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid investor ID"))
		return
	}

	var investor *entities.Investor
	if activate {
		investor, err = h.investorUsecase.Activate(c.Request.Context(), caller, id)
	} else {
		investor, err = h.investorUsecase.SetPending(c.Request.Context(), caller, id)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"investor": investor})
}
