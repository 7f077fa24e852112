package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/internal/domain/policies"
	"invest-desk.backend/internal/domain/repositories"
	"invest-desk.backend/pkg/utils"
)

const paymentPageSize = 10

// PaymentUsecase handles payment business logic
type PaymentUsecase struct {
	paymentRepo  repositories.PaymentRepository
	investorRepo repositories.InvestorRepository
	policy       *policies.LedgerPolicy
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	paymentRepo repositories.PaymentRepository,
	investorRepo repositories.InvestorRepository,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo:  paymentRepo,
		investorRepo: investorRepo,
		policy:       policies.NewLedgerPolicy(),
	}
}

// List returns a page of payments matching the filters.
func (u *PaymentUsecase) List(ctx context.Context, caller *entities.User, params entities.ListPaymentsParams) ([]*entities.Payment, utils.PaginationMeta, error) {
	if !u.policy.ViewAny(caller) {
		return nil, utils.PaginationMeta{}, domainerrors.Forbidden("not allowed to list payments")
	}

	p := utils.GetPaginationParams(params.Page, paymentPageSize)
	payments, total, err := u.paymentRepo.List(ctx, params, p.Limit, p.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return payments, utils.CalculateMeta(total, p.Page, p.Limit), nil
}

// Get returns a single payment including its allocation log.
func (u *PaymentUsecase) Get(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.Payment, error) {
	if !u.policy.View(caller) {
		return nil, domainerrors.Forbidden("not allowed to view payments")
	}
	return u.paymentRepo.GetByID(ctx, id)
}

// Create validates and stores a new payment attributed to the caller.
func (u *PaymentUsecase) Create(ctx context.Context, caller *entities.User, input *entities.PaymentInput) (*entities.Payment, error) {
	if !u.policy.Mutate(caller) {
		return nil, domainerrors.Forbidden("not allowed to create payments")
	}
	payment, err := u.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}
	payment.CreatedBy = caller.ID
	payment.Logs = []entities.AllocationLine{}
	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Update replaces amount, investor and remarks. The allocation log and the
// adjusted flag stay as they are.
func (u *PaymentUsecase) Update(ctx context.Context, caller *entities.User, id uuid.UUID, input *entities.PaymentInput) (*entities.Payment, error) {
	if !u.policy.Mutate(caller) {
		return nil, domainerrors.Forbidden("not allowed to update payments")
	}
	existing, err := u.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	payment, err := u.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}
	payment.ID = existing.ID
	payment.CreatedBy = existing.CreatedBy
	if err := u.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return u.paymentRepo.GetByID(ctx, id)
}

// Delete soft deletes a payment; admins only.
func (u *PaymentUsecase) Delete(ctx context.Context, caller *entities.User, id uuid.UUID) error {
	if !u.policy.Mutate(caller) {
		return domainerrors.Forbidden("not allowed to delete payments")
	}
	if _, err := u.paymentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return u.paymentRepo.SoftDelete(ctx, id)
}

// ToggleAdjusted flips the payment's adjusted flag. The flag is bookkeeping
// set by hand and is independent of whether allocations exist.
func (u *PaymentUsecase) ToggleAdjusted(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.Payment, error) {
	if !u.policy.Mutate(caller) {
		return nil, domainerrors.Forbidden("not allowed to change payment state")
	}
	payment, err := u.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.paymentRepo.UpdateAdjusted(ctx, id, !payment.IsAdjusted); err != nil {
		return nil, err
	}
	payment.IsAdjusted = !payment.IsAdjusted
	return payment, nil
}

func (u *PaymentUsecase) validateInput(ctx context.Context, input *entities.PaymentInput) (*entities.Payment, error) {
	ve := domainerrors.NewValidationError()
	amount, err := utils.ParseAmount(input.Amount)
	if err != nil {
		ve.Add("amount", err.Error())
	}
	investorID, err := uuid.Parse(input.InvestorID)
	if err != nil {
		ve.Add("investorId", "investor id must be a valid uuid")
	} else if _, err := u.investorRepo.GetByID(ctx, investorID); err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		ve.Add("investorId", "the selected investor does not exist")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	payment := &entities.Payment{
		InvestorID: investorID,
		Amount:     amount,
	}
	if input.Remarks != "" {
		payment.Remarks = null.StringFrom(input.Remarks)
	}
	return payment, nil
}
