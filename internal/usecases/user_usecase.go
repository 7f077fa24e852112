package usecases

import (
	"context"

	"github.com/google/uuid"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/internal/domain/policies"
	"invest-desk.backend/internal/domain/repositories"
	"invest-desk.backend/pkg/crypto"
	"invest-desk.backend/pkg/utils"
)

const userPageSize = 10

// UserUsecase handles user management business logic
type UserUsecase struct {
	userRepo repositories.UserRepository
	policy   *policies.UserPolicy
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{
		userRepo: userRepo,
		policy:   policies.NewUserPolicy(),
	}
}

// List returns a page of users matching the filters.
func (u *UserUsecase) List(ctx context.Context, caller *entities.User, params repositories.ListUsersParams) ([]*entities.User, utils.PaginationMeta, error) {
	if !u.policy.ViewAny(caller) {
		return nil, utils.PaginationMeta{}, domainerrors.Forbidden("not allowed to list users")
	}

	p := utils.GetPaginationParams(params.Page, userPageSize)
	users, total, err := u.userRepo.List(ctx, params, p.Limit, p.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return users, utils.CalculateMeta(total, p.Page, p.Limit), nil
}

// Get returns a single user.
func (u *UserUsecase) Get(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.User, error) {
	target, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.policy.View(caller, target) {
		return nil, domainerrors.Forbidden("not allowed to view users")
	}
	return target, nil
}

// Create validates and stores a new user.
func (u *UserUsecase) Create(ctx context.Context, caller *entities.User, input *entities.CreateUserInput) (*entities.User, error) {
	if !u.policy.Create(caller) {
		return nil, domainerrors.Forbidden("not allowed to create users")
	}

	ve := domainerrors.NewValidationError()
	if err := u.checkProfile(ctx, ve, input.Name, input.Email, input.Role, uuid.Nil); err != nil {
		return nil, err
	}
	if len(input.Password) < 8 {
		ve.Add("password", "password must be at least 8 characters")
	} else if input.Password != input.PasswordConfirmation {
		ve.Add("password", "password confirmation does not match")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &entities.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         entities.UserRole(input.Role),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update replaces a user's profile fields; callers may only update
// themselves. A blank password leaves the stored hash untouched.
func (u *UserUsecase) Update(ctx context.Context, caller *entities.User, id uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error) {
	target, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.policy.Update(caller, target) {
		return nil, domainerrors.Forbidden("not allowed to update this user")
	}

	ve := domainerrors.NewValidationError()
	if err := u.checkProfile(ctx, ve, input.Name, input.Email, input.Role, id); err != nil {
		return nil, err
	}
	if input.Password != "" {
		if len(input.Password) < 8 {
			ve.Add("password", "password must be at least 8 characters")
		} else if input.Password != input.PasswordConfirmation {
			ve.Add("password", "password confirmation does not match")
		}
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	target.Name = input.Name
	target.Email = input.Email
	target.Role = entities.UserRole(input.Role)
	if input.Password != "" {
		hash, err := crypto.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = hash
	}
	if err := u.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// Delete is blocked for every caller; the policy has no allow path.
func (u *UserUsecase) Delete(ctx context.Context, caller *entities.User, id uuid.UUID) error {
	target, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !u.policy.Delete(caller, target) {
		return domainerrors.Forbidden("user deletion is not permitted")
	}
	return u.userRepo.SoftDelete(ctx, id)
}

func (u *UserUsecase) checkProfile(ctx context.Context, ve *domainerrors.ValidationError, name, email, role string, excludeID uuid.UUID) error {
	if name == "" || len(name) > 255 {
		ve.Add("name", "name is required and must be at most 255 characters")
	}
	if !validEmail(email) {
		ve.Add("email", "a valid email is required")
	} else if exists, err := u.userRepo.ExistsByEmail(ctx, email, excludeID); err != nil {
		return err
	} else if exists {
		ve.Add("email", "the email has already been taken")
	}
	r := entities.UserRole(role)
	if r != entities.UserRoleAdmin && r != entities.UserRoleMember {
		ve.Add("role", "role must be admin or member")
	}
	return nil
}
