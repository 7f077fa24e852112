package usecases

import (
	"context"

	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/internal/domain/policies"
	"invest-desk.backend/internal/domain/repositories"
)

// DashboardUsecase aggregates the office landing page numbers.
type DashboardUsecase struct {
	investorRepo repositories.InvestorRepository
	accountRepo  repositories.AccountRepository
	paymentRepo  repositories.PaymentRepository
	policy       *policies.LedgerPolicy
}

// NewDashboardUsecase creates a new dashboard usecase
func NewDashboardUsecase(
	investorRepo repositories.InvestorRepository,
	accountRepo repositories.AccountRepository,
	paymentRepo repositories.PaymentRepository,
) *DashboardUsecase {
	return &DashboardUsecase{
		investorRepo: investorRepo,
		accountRepo:  accountRepo,
		paymentRepo:  paymentRepo,
		policy:       policies.NewLedgerPolicy(),
	}
}

// Stats returns investor and account counts plus the payment sum.
func (u *DashboardUsecase) Stats(ctx context.Context, caller *entities.User) (*entities.DashboardStats, error) {
	if !u.policy.View(caller) {
		return nil, domainerrors.Forbidden("not allowed to view the dashboard")
	}

	investors, err := u.investorRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := u.accountRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	total, err := u.paymentRepo.SumAmount(ctx)
	if err != nil {
		return nil, err
	}
	return &entities.DashboardStats{
		TotalInvestors: investors,
		TotalAccounts:  accounts,
		TotalAmount:    total,
	}, nil
}

// MonthlyTotals returns payment sums grouped per calendar month, oldest
// first, for the dashboard chart.
func (u *DashboardUsecase) MonthlyTotals(ctx context.Context, caller *entities.User) ([]entities.MonthlyTotal, error) {
	if !u.policy.View(caller) {
		return nil, domainerrors.Forbidden("not allowed to view the dashboard")
	}
	return u.paymentRepo.MonthlyTotals(ctx)
}
