package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
)

func newPaymentDB(t *testing.T) (*gorm.DB, *PaymentRepository, *entities.Investor) {
	t.Helper()
	db := newTestDB(t)
	createUserTable(t, db)
	createInvestorTable(t, db)
	createPaymentTable(t, db)
	investorRepo := NewInvestorRepository(db)
	inv := seedInvestor(t, investorRepo, "INV-PAY", "Payer", "payer@example.com")
	return db, NewPaymentRepository(db), inv
}

func TestPaymentRepository_CRUD(t *testing.T) {
	_, repo, inv := newPaymentDB(t)
	ctx := context.Background()
	creator := uuid.New()

	pay := &entities.Payment{
		InvestorID: inv.ID,
		Amount:     "500.00",
		Remarks:    null.StringFrom("august deposit"),
		CreatedBy:  creator,
	}
	require.NoError(t, repo.Create(ctx, pay))
	require.NotEqual(t, uuid.Nil, pay.ID)

	got, err := repo.GetByID(ctx, pay.ID)
	require.NoError(t, err)
	require.Equal(t, "500.00", got.Amount)
	require.Equal(t, "august deposit", got.Remarks.String)
	require.Equal(t, creator, got.CreatedBy)
	require.False(t, got.IsAdjusted)
	require.Empty(t, got.Logs)
	require.Equal(t, 0, got.LogVersion)
	require.NotNil(t, got.Investor)
	require.Equal(t, inv.ID, got.Investor.ID)

	pay.Amount = "650.00"
	pay.Remarks = null.String{}
	require.NoError(t, repo.Update(ctx, pay))
	got, err = repo.GetByID(ctx, pay.ID)
	require.NoError(t, err)
	require.Equal(t, "650.00", got.Amount)
	require.False(t, got.Remarks.Valid)

	require.NoError(t, repo.SoftDelete(ctx, pay.ID))
	_, err = repo.GetByID(ctx, pay.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.SoftDelete(ctx, pay.ID), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, pay), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.UpdateAdjusted(ctx, pay.ID, true), domainerrors.ErrNotFound)
}

func TestPaymentRepository_UpdateAdjusted(t *testing.T) {
	_, repo, inv := newPaymentDB(t)
	ctx := context.Background()

	pay := &entities.Payment{InvestorID: inv.ID, Amount: "100.00", CreatedBy: uuid.New()}
	require.NoError(t, repo.Create(ctx, pay))

	require.NoError(t, repo.UpdateAdjusted(ctx, pay.ID, true))
	got, err := repo.GetByID(ctx, pay.ID)
	require.NoError(t, err)
	require.True(t, got.IsAdjusted)

	require.NoError(t, repo.UpdateAdjusted(ctx, pay.ID, false))
	got, err = repo.GetByID(ctx, pay.ID)
	require.NoError(t, err)
	require.False(t, got.IsAdjusted)
}

func TestPaymentRepository_UpdatePreservesLogsAndFlag(t *testing.T) {
	_, repo, inv := newPaymentDB(t)
	ctx := context.Background()

	pay := &entities.Payment{InvestorID: inv.ID, Amount: "300.00", CreatedBy: uuid.New()}
	require.NoError(t, repo.Create(ctx, pay))

	lines := []entities.AllocationLine{
		{AccountID: uuid.New(), ForMonth: "2026-01", Amount: "300.00", Type: string(entities.InvestmentTypeRegular)},
	}
	require.NoError(t, repo.AppendLogs(ctx, pay.ID, lines, 0))
	require.NoError(t, repo.UpdateAdjusted(ctx, pay.ID, true))

	pay.Amount = "350.00"
	require.NoError(t, repo.Update(ctx, pay))

	got, err := repo.GetByID(ctx, pay.ID)
	require.NoError(t, err)
	require.Equal(t, "350.00", got.Amount)
	require.True(t, got.IsAdjusted)
	require.Len(t, got.Logs, 1)
	require.Equal(t, 1, got.LogVersion)
}

func TestPaymentRepository_AppendLogs(t *testing.T) {
	_, repo, inv := newPaymentDB(t)
	ctx := context.Background()

	pay := &entities.Payment{InvestorID: inv.ID, Amount: "900.00", CreatedBy: uuid.New()}
	require.NoError(t, repo.Create(ctx, pay))

	first := entities.AllocationLine{AccountID: uuid.New(), ForMonth: "2026-01", Amount: "400.00", Type: string(entities.InvestmentTypeRegular)}
	second := entities.AllocationLine{AccountID: uuid.New(), ForMonth: "2026-02", Amount: "500.00", Type: string(entities.InvestmentTypeEid)}

	require.NoError(t, repo.AppendLogs(ctx, pay.ID, []entities.AllocationLine{first}, 0))

	got, err := repo.GetByID(ctx, pay.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.LogVersion)
	require.Len(t, got.Logs, 1)

	combined := append(got.Logs, second)
	require.NoError(t, repo.AppendLogs(ctx, pay.ID, combined, got.LogVersion))

	got, err = repo.GetByID(ctx, pay.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.LogVersion)
	require.Len(t, got.Logs, 2)
	require.Equal(t, first.AccountID, got.Logs[0].AccountID)
	require.Equal(t, "2026-01", got.Logs[0].ForMonth)
	require.Equal(t, second.AccountID, got.Logs[1].AccountID)
	require.Equal(t, string(entities.InvestmentTypeEid), got.Logs[1].Type)
}

func TestPaymentRepository_AppendLogsStaleVersion(t *testing.T) {
	_, repo, inv := newPaymentDB(t)
	ctx := context.Background()

	pay := &entities.Payment{InvestorID: inv.ID, Amount: "200.00", CreatedBy: uuid.New()}
	require.NoError(t, repo.Create(ctx, pay))

	line := entities.AllocationLine{AccountID: uuid.New(), ForMonth: "2026-03", Amount: "200.00", Type: string(entities.InvestmentTypeOthers)}
	require.NoError(t, repo.AppendLogs(ctx, pay.ID, []entities.AllocationLine{line}, 0))

	// A writer still holding version 0 must not clobber the first append.
	err := repo.AppendLogs(ctx, pay.ID, []entities.AllocationLine{line}, 0)
	require.ErrorIs(t, err, domainerrors.ErrConflict)

	got, err := repo.GetByID(ctx, pay.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.LogVersion)
	require.Len(t, got.Logs, 1)
}

func TestPaymentRepository_ListFilters(t *testing.T) {
	db, repo, inv := newPaymentDB(t)
	ctx := context.Background()
	investorRepo := NewInvestorRepository(db)
	other := seedInvestor(t, investorRepo, "INV-OTH", "Quiet Partner", "quiet@example.com")

	adjusted := &entities.Payment{InvestorID: inv.ID, Amount: "100.00", CreatedBy: uuid.New(), IsAdjusted: true}
	pending := &entities.Payment{InvestorID: inv.ID, Amount: "200.00", CreatedBy: uuid.New()}
	foreign := &entities.Payment{InvestorID: other.ID, Amount: "300.00", CreatedBy: uuid.New()}
	require.NoError(t, repo.Create(ctx, adjusted))
	require.NoError(t, repo.Create(ctx, pending))
	require.NoError(t, repo.Create(ctx, foreign))

	list, total, err := repo.List(ctx, entities.ListPaymentsParams{}, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, list, 3)

	list, total, err = repo.List(ctx, entities.ListPaymentsParams{IsAdjusted: "is_adjusted"}, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, adjusted.ID, list[0].ID)

	list, total, err = repo.List(ctx, entities.ListPaymentsParams{IsAdjusted: "not_adjusted"}, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	list, total, err = repo.List(ctx, entities.ListPaymentsParams{Search: "Quiet"}, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, foreign.ID, list[0].ID)
	require.NotNil(t, list[0].Investor)
	require.Equal(t, "Quiet Partner", list[0].Investor.Name)

	list, _, err = repo.List(ctx, entities.ListPaymentsParams{Sort: "investor", Direction: "asc"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "Payer", list[0].Investor.Name)
	require.Equal(t, "Quiet Partner", list[2].Investor.Name)

	list, _, err = repo.List(ctx, entities.ListPaymentsParams{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestPaymentRepository_Totals(t *testing.T) {
	db, repo, inv := newPaymentDB(t)
	ctx := context.Background()

	for _, amount := range []string{"100.50", "200.25", "300.00"} {
		require.NoError(t, repo.Create(ctx, &entities.Payment{InvestorID: inv.ID, Amount: amount, CreatedBy: uuid.New()}))
	}

	sum, err := repo.SumAmount(ctx)
	require.NoError(t, err)
	require.InDelta(t, 600.75, sum, 0.001)

	mustExec(t, db, `UPDATE payments SET created_at = ? WHERE amount = '100.50'`, "2026-01-10 09:00:00")
	mustExec(t, db, `UPDATE payments SET created_at = ? WHERE amount = '200.25'`, "2026-01-20 09:00:00")
	mustExec(t, db, `UPDATE payments SET created_at = ? WHERE amount = '300.00'`, "2026-02-05 09:00:00")

	totals, err := repo.MonthlyTotals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	require.Equal(t, "2026-01", totals[0].Month)
	require.InDelta(t, 300.75, totals[0].Total, 0.001)
	require.Equal(t, "2026-02", totals[1].Month)
	require.InDelta(t, 300.0, totals[1].Total, 0.001)
}
