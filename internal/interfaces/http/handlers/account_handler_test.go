package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/pkg/utils"
)

type stubAccountService struct {
	account    *entities.Account
	accounts   []*entities.Account
	meta       utils.PaginationMeta
	err        error
	lastParams entities.ListAccountsParams
	lastInput  *entities.AccountInput
	toggled    []uuid.UUID
}

func (s *stubAccountService) List(_ context.Context, _ *entities.User, params entities.ListAccountsParams) ([]*entities.Account, utils.PaginationMeta, error) {
	s.lastParams = params
	return s.accounts, s.meta, s.err
}

func (s *stubAccountService) Get(_ context.Context, _ *entities.User, _ uuid.UUID) (*entities.Account, error) {
	return s.account, s.err
}

func (s *stubAccountService) Create(_ context.Context, _ *entities.User, input *entities.AccountInput) (*entities.Account, error) {
	s.lastInput = input
	return s.account, s.err
}

func (s *stubAccountService) Update(_ context.Context, _ *entities.User, _ uuid.UUID, input *entities.AccountInput) (*entities.Account, error) {
	s.lastInput = input
	return s.account, s.err
}

func (s *stubAccountService) Delete(_ context.Context, _ *entities.User, _ uuid.UUID) error {
	return s.err
}

func (s *stubAccountService) ToggleActive(_ context.Context, _ *entities.User, id uuid.UUID) (*entities.Account, error) {
	s.toggled = append(s.toggled, id)
	return s.account, s.err
}

func (s *stubAccountService) ListActiveByInvestor(_ context.Context, _ *entities.User, _ uuid.UUID) ([]*entities.Account, error) {
	return s.accounts, s.err
}

func newAccountRouter(svc *stubAccountService) *gin.Engine {
	h := NewAccountHandler(svc)
	r := newTestRouter()
	admin := &entities.User{ID: uuid.New(), Email: "admin@example.com", Role: entities.UserRoleAdmin}
	g := r.Group("/api/v1", asUser(admin))
	g.GET("/accounts", h.List)
	g.POST("/accounts", h.Create)
	g.GET("/accounts/:id", h.Get)
	g.PUT("/accounts/:id", h.Update)
	g.DELETE("/accounts/:id", h.Delete)
	g.PATCH("/accounts/:id/activate", h.ToggleActive)
	g.GET("/investors/:id/accounts", h.ListActiveByInvestor)
	return r
}

func sampleAccount() *entities.Account {
	return &entities.Account{
		ID: uuid.New(), InvestorID: uuid.New(),
		Name: "DPS", Amount: "1000.00", TotalInvested: "150.50", IsActive: true,
	}
}

func TestAccountHandler_ListAndGet(t *testing.T) {
	svc := &stubAccountService{
		account:  sampleAccount(),
		accounts: []*entities.Account{sampleAccount()},
		meta:     utils.CalculateMeta(1, 1, 10),
	}
	r := newAccountRouter(svc)

	w := performJSON(t, r, http.MethodGet, "/api/v1/accounts?verified=verified&sort=investor", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "verified", svc.lastParams.Verified)
	require.Equal(t, "investor", svc.lastParams.Sort)

	w = performJSON(t, r, http.MethodGet, "/api/v1/accounts/"+svc.account.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"totalInvested":"150.50"`)

	w = performJSON(t, r, http.MethodGet, "/api/v1/accounts/nope", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandler_CreateAndToggle(t *testing.T) {
	svc := &stubAccountService{account: sampleAccount()}
	r := newAccountRouter(svc)

	w := performJSON(t, r, http.MethodPost, "/api/v1/accounts", map[string]string{
		"name": "DPS", "amount": "1000.00", "investorId": uuid.New().String(),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "DPS", svc.lastInput.Name)

	id := uuid.New()
	w = performJSON(t, r, http.MethodPatch, "/api/v1/accounts/"+id.String()+"/activate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []uuid.UUID{id}, svc.toggled)
}

func TestAccountHandler_ListActiveByInvestor(t *testing.T) {
	svc := &stubAccountService{accounts: []*entities.Account{sampleAccount()}}
	r := newAccountRouter(svc)

	w := performJSON(t, r, http.MethodGet, "/api/v1/investors/"+uuid.New().String()+"/accounts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"accounts"`)

	svc.err = domainerrors.ErrNotFound
	w = performJSON(t, r, http.MethodGet, "/api/v1/investors/"+uuid.New().String()+"/accounts", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
