package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/internal/domain/policies"
	"invest-desk.backend/internal/domain/repositories"
	"invest-desk.backend/pkg/utils"
)

const accountPageSize = 10

// AccountUsecase handles account business logic
type AccountUsecase struct {
	accountRepo  repositories.AccountRepository
	investorRepo repositories.InvestorRepository
	policy       *policies.LedgerPolicy
}

// NewAccountUsecase creates a new account usecase
func NewAccountUsecase(
	accountRepo repositories.AccountRepository,
	investorRepo repositories.InvestorRepository,
) *AccountUsecase {
	return &AccountUsecase{
		accountRepo:  accountRepo,
		investorRepo: investorRepo,
		policy:       policies.NewLedgerPolicy(),
	}
}

// List returns a page of accounts matching the filters.
func (u *AccountUsecase) List(ctx context.Context, caller *entities.User, params entities.ListAccountsParams) ([]*entities.Account, utils.PaginationMeta, error) {
	if !u.policy.ViewAny(caller) {
		return nil, utils.PaginationMeta{}, domainerrors.Forbidden("not allowed to list accounts")
	}

	p := utils.GetPaginationParams(params.Page, accountPageSize)
	accounts, total, err := u.accountRepo.List(ctx, params, p.Limit, p.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return accounts, utils.CalculateMeta(total, p.Page, p.Limit), nil
}

// Get returns a single account with its invested total.
func (u *AccountUsecase) Get(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.Account, error) {
	if !u.policy.View(caller) {
		return nil, domainerrors.Forbidden("not allowed to view accounts")
	}
	return u.accountRepo.GetByID(ctx, id)
}

// Create validates and stores a new account; admins only.
func (u *AccountUsecase) Create(ctx context.Context, caller *entities.User, input *entities.AccountInput) (*entities.Account, error) {
	if !u.policy.Mutate(caller) {
		return nil, domainerrors.Forbidden("not allowed to create accounts")
	}
	account, err := u.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := u.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Update validates and replaces the account's fields; admins only.
func (u *AccountUsecase) Update(ctx context.Context, caller *entities.User, id uuid.UUID, input *entities.AccountInput) (*entities.Account, error) {
	if !u.policy.Mutate(caller) {
		return nil, domainerrors.Forbidden("not allowed to update accounts")
	}
	existing, err := u.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account, err := u.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}
	account.ID = existing.ID
	account.IsActive = existing.IsActive
	if err := u.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return u.accountRepo.GetByID(ctx, id)
}

// Delete soft deletes an account; admins only.
func (u *AccountUsecase) Delete(ctx context.Context, caller *entities.User, id uuid.UUID) error {
	if !u.policy.Mutate(caller) {
		return domainerrors.Forbidden("not allowed to delete accounts")
	}
	if _, err := u.accountRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return u.accountRepo.SoftDelete(ctx, id)
}

// ToggleActive flips the account's active flag. Two calls in a row restore
// the original state.
func (u *AccountUsecase) ToggleActive(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.Account, error) {
	if !u.policy.Mutate(caller) {
		return nil, domainerrors.Forbidden("not allowed to change account state")
	}
	account, err := u.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.accountRepo.UpdateActive(ctx, id, !account.IsActive); err != nil {
		return nil, err
	}
	account.IsActive = !account.IsActive
	return account, nil
}

// ListActiveByInvestor returns the active accounts of one investor, used to
// feed the allocation workflow's account picker.
func (u *AccountUsecase) ListActiveByInvestor(ctx context.Context, caller *entities.User, investorID uuid.UUID) ([]*entities.Account, error) {
	if !u.policy.View(caller) {
		return nil, domainerrors.Forbidden("not allowed to view accounts")
	}
	if _, err := u.investorRepo.GetByID(ctx, investorID); err != nil {
		return nil, err
	}
	return u.accountRepo.ListActiveByInvestor(ctx, investorID)
}

func (u *AccountUsecase) validateInput(ctx context.Context, input *entities.AccountInput) (*entities.Account, error) {
	ve := domainerrors.NewValidationError()
	if input.Name == "" || len(input.Name) > 255 {
		ve.Add("name", "name is required and must be at most 255 characters")
	}
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

	return &entities.Account{
		InvestorID: investorID,
		Name:       input.Name,
		Amount:     amount,
	}, nil
}
