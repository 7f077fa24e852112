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

type AccountService interface {
	List(ctx context.Context, caller *entities.User, params entities.ListAccountsParams) ([]*entities.Account, utils.PaginationMeta, error)
	Get(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.Account, error)
	Create(ctx context.Context, caller *entities.User, input *entities.AccountInput) (*entities.Account, error)
	Update(ctx context.Context, caller *entities.User, id uuid.UUID, input *entities.AccountInput) (*entities.Account, error)
	Delete(ctx context.Context, caller *entities.User, id uuid.UUID) error
	ToggleActive(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.Account, error)
	ListActiveByInvestor(ctx context.Context, caller *entities.User, investorID uuid.UUID) ([]*entities.Account, error)
}

// AccountHandler handles account endpoints
type AccountHandler struct {
	accountUsecase AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountUsecase AccountService) *AccountHandler {
	return &AccountHandler{accountUsecase: accountUsecase}
}

// List lists accounts with search, verified filter and sorting
// GET /api/v1/accounts
func (h *AccountHandler) List(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var params entities.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	accounts, meta, err := h.accountUsecase.List(c.Request.Context(), caller, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, accounts, meta)
}

// Get gets an account by ID, including its invested total
// GET /api/v1/accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account ID"))
		return
	}

	account, err := h.accountUsecase.Get(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"account": account})
}

// Create creates a new account
// POST /api/v1/accounts
func (h *AccountHandler) Create(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.AccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	account, err := h.accountUsecase.Create(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"account": account})
}

// Update updates an account
// PUT /api/v1/accounts/:id
func (h *AccountHandler) Update(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account ID"))
		return
	}

	var input entities.AccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	account, err := h.accountUsecase.Update(c.Request.Context(), caller, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"account": account})
}

// Delete soft deletes an account
// DELETE /api/v1/accounts/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account ID"))
		return
	}

	if err := h.accountUsecase.Delete(c.Request.Context(), caller, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "account deleted"})
}

// ToggleActive flips the account's active flag
// PATCH /api/v1/accounts/:id/activate
func (h *AccountHandler) ToggleActive(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account ID"))
		return
	}

	account, err := h.accountUsecase.ToggleActive(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"account": account})
}

// ListActiveByInvestor lists an investor's active accounts
// GET /api/v1/investors/:id/accounts
func (h *AccountHandler) ListActiveByInvestor(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	investorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid investor ID"))
		return
	}

	accounts, err := h.accountUsecase.ListActiveByInvestor(c.Request.Context(), caller, investorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"accounts": accounts})
}
