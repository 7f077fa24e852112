package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/internal/domain/policies"
	"invest-desk.backend/internal/domain/repositories"
	"invest-desk.backend/pkg/crypto"
	"invest-desk.backend/pkg/utils"
)

const investorPageSize = 15

// InvestorUsecase handles investor business logic
type InvestorUsecase struct {
	investorRepo repositories.InvestorRepository
	userRepo     repositories.UserRepository
	uow          repositories.UnitOfWork
	policy       *policies.InvestorPolicy
}

// NewInvestorUsecase creates a new investor usecase
func NewInvestorUsecase(
	investorRepo repositories.InvestorRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
) *InvestorUsecase {
	return &InvestorUsecase{
		investorRepo: investorRepo,
		userRepo:     userRepo,
		uow:          uow,
		policy:       policies.NewInvestorPolicy(),
	}
}

// List returns a page of investors matching the filters.
func (u *InvestorUsecase) List(ctx context.Context, caller *entities.User, params entities.ListInvestorsParams) ([]*entities.Investor, utils.PaginationMeta, error) {
	if !u.policy.ViewAny(caller) {
		return nil, utils.PaginationMeta{}, domainerrors.Forbidden("not allowed to list investors")
	}

	p := utils.GetPaginationParams(params.Page, investorPageSize)
	investors, total, err := u.investorRepo.List(ctx, params, p.Limit, p.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return investors, utils.CalculateMeta(total, p.Page, p.Limit), nil
}

// Get returns one investor; only its owner may see it.
func (u *InvestorUsecase) Get(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.Investor, error) {
	investor, err := u.investorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.policy.View(caller, investor) {
		return nil, domainerrors.Forbidden("not allowed to view this investor")
	}
	return investor, nil
}

// Create validates and stores a new investor owned by the caller.
func (u *InvestorUsecase) Create(ctx context.Context, caller *entities.User, input *entities.InvestorInput) (*entities.Investor, error) {
	if !u.policy.Create(caller) {
		return nil, domainerrors.Forbidden("not allowed to create investors")
	}
	if err := u.validateInput(ctx, input, uuid.Nil); err != nil {
		return nil, err
	}

	investor := u.fromInput(input)
	investor.UserID = caller.ID
	if err := u.investorRepo.Create(ctx, investor); err != nil {
		return nil, err
	}
	return investor, nil
}

// CreateWithUser creates a fresh user and an investor owned by it inside a
// single transaction; neither row survives a failure of the other.
func (u *InvestorUsecase) CreateWithUser(ctx context.Context, caller *entities.User, input *entities.InvestorWithUserInput) (*entities.Investor, error) {
	if !u.policy.Create(caller) {
		return nil, domainerrors.Forbidden("not allowed to create investors")
	}

	ve := domainerrors.NewValidationError()
	if input.UserName == "" || len(input.UserName) > 255 {
		ve.Add("userName", "user name is required and must be at most 255 characters")
	}
	if !validEmail(input.UserEmail) {
		ve.Add("userEmail", "a valid user email is required")
	} else if exists, err := u.userRepo.ExistsByEmail(ctx, input.UserEmail, uuid.Nil); err != nil {
		return nil, err
	} else if exists {
		ve.Add("userEmail", "the user email has already been taken")
	}
	if len(input.Password) < 8 {
		ve.Add("password", "password must be at least 8 characters")
	} else if input.Password != input.PasswordConfirmation {
		ve.Add("password", "password confirmation does not match")
	}
	role := entities.UserRole(input.UserRole)
	if role != entities.UserRoleAdmin && role != entities.UserRoleMember {
		ve.Add("userRole", "role must be admin or member")
	}
	if err := u.collectInputErrors(ctx, ve, &input.InvestorInput, uuid.Nil); err != nil {
		return nil, err
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	investor := u.fromInput(&input.InvestorInput)
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		owner := &entities.User{
			Name:         input.UserName,
			Email:        input.UserEmail,
			PasswordHash: passwordHash,
			Role:         role,
		}
		if err := u.userRepo.Create(txCtx, owner); err != nil {
			return err
		}
		investor.UserID = owner.ID
		return u.investorRepo.Create(txCtx, investor)
	})
	if err != nil {
		return nil, err
	}
	return investor, nil
}

// Update validates and replaces the investor's fields; owner only.
func (u *InvestorUsecase) Update(ctx context.Context, caller *entities.User, id uuid.UUID, input *entities.InvestorInput) (*entities.Investor, error) {
	investor, err := u.investorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.policy.Update(caller, investor) {
		return nil, domainerrors.Forbidden("not allowed to update this investor")
	}
	if err := u.validateInput(ctx, input, id); err != nil {
		return nil, err
	}

	updated := u.fromInput(input)
	updated.ID = investor.ID
	updated.UserID = investor.UserID
	if err := u.investorRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return u.investorRepo.GetByID(ctx, id)
}

// Delete soft deletes an investor; owner only.
func (u *InvestorUsecase) Delete(ctx context.Context, caller *entities.User, id uuid.UUID) error {
	investor, err := u.investorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !u.policy.Delete(caller, investor) {
		return domainerrors.Forbidden("not allowed to delete this investor")
	}
	return u.investorRepo.SoftDelete(ctx, id)
}

// Activate sets the investor status to active. Calling it on an already
// active investor is a no-op, not an error.
func (u *InvestorUsecase) Activate(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.Investor, error) {
	return u.setStatus(ctx, caller, id, entities.InvestorStatusActive)
}

// SetPending sets the investor status to pending, idempotently.
func (u *InvestorUsecase) SetPending(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.Investor, error) {
	return u.setStatus(ctx, caller, id, entities.InvestorStatusPending)
}

func (u *InvestorUsecase) setStatus(ctx context.Context, caller *entities.User, id uuid.UUID, status entities.InvestorStatus) (*entities.Investor, error) {
	investor, err := u.investorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.policy.Activate(caller, investor) {
		return nil, domainerrors.Forbidden("not allowed to change this investor's status")
	}
	if investor.Status == status {
		return investor, nil
	}
	if err := u.investorRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	investor.Status = status
	return investor, nil
}

func (u *InvestorUsecase) validateInput(ctx context.Context, input *entities.InvestorInput, excludeID uuid.UUID) error {
	ve := domainerrors.NewValidationError()
	if err := u.collectInputErrors(ctx, ve, input, excludeID); err != nil {
		return err
	}
	return ve.OrNil()
}

func (u *InvestorUsecase) collectInputErrors(ctx context.Context, ve *domainerrors.ValidationError, input *entities.InvestorInput, excludeID uuid.UUID) error {
	if input.UID == "" || len(input.UID) > 255 {
		ve.Add("uid", "uid is required and must be at most 255 characters")
	} else if exists, err := u.investorRepo.ExistsByUID(ctx, input.UID, excludeID); err != nil {
		return err
	} else if exists {
		ve.Add("uid", "the uid has already been taken")
	}
	if input.Name == "" || len(input.Name) > 255 {
		ve.Add("name", "name is required and must be at most 255 characters")
	}
	if len(input.Nickname) > 255 {
		ve.Add("nickname", "nickname must be at most 255 characters")
	}
	if !validEmail(input.Email) {
		ve.Add("email", "a valid email is required")
	} else if exists, err := u.investorRepo.ExistsByEmail(ctx, input.Email, excludeID); err != nil {
		return err
	} else if exists {
		ve.Add("email", "the email has already been taken")
	}
	if input.PermanentAddress == "" {
		ve.Add("permanentAddress", "permanent address is required")
	}
	if input.CurrentAddress == "" {
		ve.Add("currentAddress", "current address is required")
	}
	if input.Mobile == "" || len(input.Mobile) > 20 {
		ve.Add("mobile", "mobile is required and must be at most 20 characters")
	}
	if len(input.EmergencyMobile) > 20 {
		ve.Add("emergencyMobile", "emergency mobile must be at most 20 characters")
	}
	status := entities.InvestorStatus(input.Status)
	if status != entities.InvestorStatusPending && status != entities.InvestorStatusActive {
		ve.Add("status", "status must be pending or active")
	}
	return nil
}

func (u *InvestorUsecase) fromInput(input *entities.InvestorInput) *entities.Investor {
	investor := &entities.Investor{
		UID:              input.UID,
		Name:             input.Name,
		Email:            input.Email,
		PermanentAddress: input.PermanentAddress,
		CurrentAddress:   input.CurrentAddress,
		PersonalInfo:     input.PersonalInfo,
		Mobile:           input.Mobile,
		Status:           entities.InvestorStatus(input.Status),
	}
	if input.Nickname != "" {
		investor.Nickname = null.StringFrom(input.Nickname)
	}
	if input.EmergencyMobile != "" {
		investor.EmergencyMobile = null.StringFrom(input.EmergencyMobile)
	}
	return investor
}
