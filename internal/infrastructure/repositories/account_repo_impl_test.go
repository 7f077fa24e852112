package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
)

func seedInvestor(t *testing.T, repo *InvestorRepository, uid, name, email string) *entities.Investor {
	t.Helper()
	inv := newInvestor(uuid.New(), uid, name, email)
	require.NoError(t, repo.Create(context.Background(), inv))
	return inv
}

func TestAccountRepository_CRUDAndToggle(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createInvestorTable(t, db)
	createAccountTable(t, db)
	createInvestmentTable(t, db)
	investorRepo := NewInvestorRepository(db)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	inv := seedInvestor(t, investorRepo, "INV-100", "Owner", "owner@example.com")

	acc := &entities.Account{InvestorID: inv.ID, Name: "Family Fund", Amount: "1000.00"}
	require.NoError(t, repo.Create(ctx, acc))

	got, err := repo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	require.Equal(t, "Family Fund", got.Name)
	require.False(t, got.IsActive)
	require.Equal(t, "0.00", got.TotalInvested)
	require.NotNil(t, got.Investor)
	require.Equal(t, inv.ID, got.Investor.ID)

	require.NoError(t, repo.UpdateActive(ctx, acc.ID, true))
	got, err = repo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	require.True(t, got.IsActive)

	acc.Name = "Family Fund B"
	acc.Amount = "1200.00"
	require.NoError(t, repo.Update(ctx, acc))
	got, err = repo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	require.Equal(t, "Family Fund B", got.Name)
	require.Equal(t, "1200.00", got.Amount)

	require.NoError(t, repo.SoftDelete(ctx, acc.ID))
	_, err = repo.GetByID(ctx, acc.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAccountRepository_InvestedTotals(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createInvestorTable(t, db)
	createAccountTable(t, db)
	createInvestmentTable(t, db)
	investorRepo := NewInvestorRepository(db)
	accountRepo := NewAccountRepository(db)
	investmentRepo := NewInvestmentRepository(db)
	ctx := context.Background()

	inv := seedInvestor(t, investorRepo, "INV-110", "Owner", "owner110@example.com")
	acc := &entities.Account{InvestorID: inv.ID, Name: "Main", Amount: "500.00"}
	require.NoError(t, accountRepo.Create(ctx, acc))

	require.NoError(t, investmentRepo.Create(ctx, &entities.Investment{
		AccountID: acc.ID, ForMonth: "2026-01", Amount: "100.00", Type: entities.InvestmentTypeRegular,
	}))
	require.NoError(t, investmentRepo.Create(ctx, &entities.Investment{
		AccountID: acc.ID, ForMonth: "2026-02", Amount: "50.50", Type: entities.InvestmentTypeEid,
	}))

	got, err := accountRepo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	require.Equal(t, "150.50", got.TotalInvested)

	list, total, err := accountRepo.List(ctx, entities.ListAccountsParams{}, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "150.50", list[0].TotalInvested)
}

func TestAccountRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createInvestorTable(t, db)
	createAccountTable(t, db)
	createInvestmentTable(t, db)
	investorRepo := NewInvestorRepository(db)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	invA := seedInvestor(t, investorRepo, "INV-120", "Aleya", "aleya@example.com")
	invB := seedInvestor(t, investorRepo, "INV-121", "Belal", "belal@example.com")

	active := &entities.Account{InvestorID: invA.ID, Name: "Savings", Amount: "100.00", IsActive: true}
	idle := &entities.Account{InvestorID: invB.ID, Name: "Fixed", Amount: "200.00"}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, idle))

	verified, total, err := repo.List(ctx, entities.ListAccountsParams{Verified: "verified"}, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Savings", verified[0].Name)

	unverified, _, err := repo.List(ctx, entities.ListAccountsParams{Verified: "unverified"}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, "Fixed", unverified[0].Name)

	// search hits the owning investor's name too
	byInvestor, _, err := repo.List(ctx, entities.ListAccountsParams{Search: "Belal"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, byInvestor, 1)
	require.Equal(t, "Fixed", byInvestor[0].Name)

	sorted, _, err := repo.List(ctx, entities.ListAccountsParams{Sort: "investor", Direction: "asc"}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, "Savings", sorted[0].Name)
	require.Equal(t, "Fixed", sorted[1].Name)
}

func TestAccountRepository_ListActiveByInvestor(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createInvestorTable(t, db)
	createAccountTable(t, db)
	investorRepo := NewInvestorRepository(db)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	inv := seedInvestor(t, investorRepo, "INV-130", "Owner", "owner130@example.com")
	other := seedInvestor(t, investorRepo, "INV-131", "Other", "other131@example.com")

	require.NoError(t, repo.Create(ctx, &entities.Account{InvestorID: inv.ID, Name: "B", Amount: "1.00", IsActive: true}))
	require.NoError(t, repo.Create(ctx, &entities.Account{InvestorID: inv.ID, Name: "A", Amount: "1.00", IsActive: true}))
	require.NoError(t, repo.Create(ctx, &entities.Account{InvestorID: inv.ID, Name: "C", Amount: "1.00"}))
	require.NoError(t, repo.Create(ctx, &entities.Account{InvestorID: other.ID, Name: "D", Amount: "1.00", IsActive: true}))

	accounts, err := repo.ListActiveByInvestor(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	require.Equal(t, "A", accounts[0].Name)
	require.Equal(t, "B", accounts[1].Name)
}

func TestAccountRepository_Exists(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createInvestorTable(t, db)
	createAccountTable(t, db)
	investorRepo := NewInvestorRepository(db)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	inv := seedInvestor(t, investorRepo, "INV-140", "Owner", "owner140@example.com")
	acc := &entities.Account{InvestorID: inv.ID, Name: "X", Amount: "1.00"}
	require.NoError(t, repo.Create(ctx, acc))

	exists, err := repo.Exists(ctx, acc.ID)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.Exists(ctx, uuid.New())
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, repo.SoftDelete(ctx, acc.ID))
	exists, err = repo.Exists(ctx, acc.ID)
	require.NoError(t, err)
	require.False(t, exists)
}
