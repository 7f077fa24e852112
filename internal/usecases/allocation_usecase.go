package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/internal/domain/policies"
	"invest-desk.backend/internal/domain/repositories"
	"invest-desk.backend/pkg/utils"
)

// AllocationUsecase runs the bulk allocation workflow: splitting one
// payment into dated, typed investment rows against accounts, with the
// payment's log recording every line in submission order.
type AllocationUsecase struct {
	paymentRepo    repositories.PaymentRepository
	accountRepo    repositories.AccountRepository
	investmentRepo repositories.InvestmentRepository
	uow            repositories.UnitOfWork
	policy         *policies.LedgerPolicy
}

// NewAllocationUsecase creates a new allocation usecase
func NewAllocationUsecase(
	paymentRepo repositories.PaymentRepository,
	accountRepo repositories.AccountRepository,
	investmentRepo repositories.InvestmentRepository,
	uow repositories.UnitOfWork,
) *AllocationUsecase {
	return &AllocationUsecase{
		paymentRepo:    paymentRepo,
		accountRepo:    accountRepo,
		investmentRepo: investmentRepo,
		uow:            uow,
		policy:         policies.NewLedgerPolicy(),
	}
}

// Allocate validates the whole batch up front and then, in one
// transaction, creates one investment row per line and appends the lines to
// the payment's log in the same order. A single bad line fails the whole
// batch; nothing is written.
func (u *AllocationUsecase) Allocate(ctx context.Context, caller *entities.User, paymentID uuid.UUID, input *entities.BulkInvestmentInput) ([]*entities.Investment, error) {
	if !u.policy.Mutate(caller) {
		return nil, domainerrors.Forbidden("not allowed to allocate payments")
	}

	if _, err := u.paymentRepo.GetByID(ctx, paymentID); err != nil {
		return nil, err
	}

	ve := domainerrors.NewValidationError()
	if len(input.Investments) == 0 {
		ve.Add("investments", "at least one investment line is required")
	}
	lines := make([]entities.AllocationLine, 0, len(input.Investments))
	for i, raw := range input.Investments {
		field := func(name string) string { return fmt.Sprintf("investments.%d.%s", i, name) }

		line := entities.AllocationLine{ForMonth: raw.ForMonth, Type: raw.Type}
		accountID, parseErr := uuid.Parse(raw.AccountID)
		if parseErr != nil {
			ve.Add(field("accountId"), "account id must be a valid uuid")
		} else if exists, err := u.accountRepo.Exists(ctx, accountID); err != nil {
			return nil, err
		} else if !exists {
			ve.Add(field("accountId"), "the selected account does not exist")
		} else {
			line.AccountID = accountID
		}
		if !validMonth(raw.ForMonth) {
			ve.Add(field("forMonth"), "for month must be a YYYY-MM value")
		}
		amount, amountErr := utils.ParseAmount(raw.Amount)
		if amountErr != nil {
			ve.Add(field("amount"), amountErr.Error())
		} else {
			line.Amount = amount
		}
		if !entities.ValidInvestmentType(raw.Type) {
			ve.Add(field("type"), "type must be regular, eid or others")
		}
		lines = append(lines, line)
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	investments := make([]*entities.Investment, 0, len(lines))
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		// Re-read inside the transaction so the version check guards
		// against an allocation that landed since the first read.
		current, err := u.paymentRepo.GetByID(txCtx, paymentID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			inv := &entities.Investment{
				AccountID: line.AccountID,
				ForMonth:  line.ForMonth,
				Amount:    line.Amount,
				Type:      entities.InvestmentType(line.Type),
			}
			if err := u.investmentRepo.Create(txCtx, inv); err != nil {
				return err
			}
			investments = append(investments, inv)
		}
		combined := append(append([]entities.AllocationLine{}, current.Logs...), lines...)
		return u.paymentRepo.AppendLogs(txCtx, paymentID, combined, current.LogVersion)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, domainerrors.NewAppError(http.StatusConflict, "the payment was allocated concurrently, retry", domainerrors.ErrConflict)
		}
		return nil, err
	}
	return investments, nil
}
