package usecases

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
)

func validInvestorInput(uid, email string) *entities.InvestorInput {
	return &entities.InvestorInput{
		UID:              uid,
		Name:             "Rahim Uddin",
		Email:            email,
		PermanentAddress: "House 12, Road 3, Dhaka",
		CurrentAddress:   "House 12, Road 3, Dhaka",
		Mobile:           "01700000000",
		Status:           "pending",
	}
}

func newInvestorUsecase() (*InvestorUsecase, *memInvestorRepo, *memUserRepo) {
	investors := newMemInvestorRepo()
	users := newMemUserRepo()
	return NewInvestorUsecase(investors, users, passthroughUOW{}), investors, users
}

func TestInvestorUsecase_CreateAndGet(t *testing.T) {
	u, _, _ := newInvestorUsecase()
	ctx := context.Background()
	caller := memberCaller()

	created, err := u.Create(ctx, caller, validInvestorInput("INV-1", "rahim@example.com"))
	require.NoError(t, err)
	require.Equal(t, caller.ID, created.UserID)
	require.Equal(t, entities.InvestorStatusPending, created.Status)

	got, err := u.Get(ctx, caller, created.ID)
	require.NoError(t, err)
	require.Equal(t, "INV-1", got.UID)
}

func TestInvestorUsecase_CreateValidation(t *testing.T) {
	u, _, _ := newInvestorUsecase()
	ctx := context.Background()

	input := &entities.InvestorInput{Status: "archived", Email: "not-an-email"}
	_, err := u.Create(ctx, memberCaller(), input)
	ve, ok := domainerrors.AsValidation(err)
	require.True(t, ok)
	require.Contains(t, ve.Fields, "uid")
	require.Contains(t, ve.Fields, "name")
	require.Contains(t, ve.Fields, "email")
	require.Contains(t, ve.Fields, "permanentAddress")
	require.Contains(t, ve.Fields, "currentAddress")
	require.Contains(t, ve.Fields, "mobile")
	require.Contains(t, ve.Fields, "status")
}

func TestInvestorUsecase_UniquenessChecks(t *testing.T) {
	u, _, _ := newInvestorUsecase()
	ctx := context.Background()
	caller := memberCaller()

	first, err := u.Create(ctx, caller, validInvestorInput("INV-1", "rahim@example.com"))
	require.NoError(t, err)

	_, err = u.Create(ctx, caller, validInvestorInput("INV-1", "rahim@example.com"))
	ve, ok := domainerrors.AsValidation(err)
	require.True(t, ok)
	require.Contains(t, ve.Fields, "uid")
	require.Contains(t, ve.Fields, "email")

	// Updating a record with its own uid and email is not a collision.
	_, err = u.Update(ctx, caller, first.ID, validInvestorInput("INV-1", "rahim@example.com"))
	require.NoError(t, err)
}

func TestInvestorUsecase_OwnershipDenied(t *testing.T) {
	u, investors, _ := newInvestorUsecase()
	ctx := context.Background()
	owner := memberCaller()
	stranger := memberCaller()

	created, err := u.Create(ctx, owner, validInvestorInput("INV-1", "rahim@example.com"))
	require.NoError(t, err)

	_, err = u.Get(ctx, stranger, created.ID)
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 403, appErr.Status)

	_, err = u.Update(ctx, stranger, created.ID, validInvestorInput("INV-2", "other@example.com"))
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 403, appErr.Status)

	require.Error(t, u.Delete(ctx, stranger, created.ID))

	// The record is untouched after the denied calls.
	stored, err := investors.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "INV-1", stored.UID)
	require.Equal(t, "rahim@example.com", stored.Email)
}

func TestInvestorUsecase_ActivateIsIdempotent(t *testing.T) {
	u, investors, _ := newInvestorUsecase()
	ctx := context.Background()
	caller := memberCaller()

	created, err := u.Create(ctx, caller, validInvestorInput("INV-1", "rahim@example.com"))
	require.NoError(t, err)

	activated, err := u.Activate(ctx, caller, created.ID)
	require.NoError(t, err)
	require.Equal(t, entities.InvestorStatusActive, activated.Status)
	require.Equal(t, 1, investors.statusUpdateCalls)

	// Second activation changes nothing and issues no write.
	activated, err = u.Activate(ctx, caller, created.ID)
	require.NoError(t, err)
	require.Equal(t, entities.InvestorStatusActive, activated.Status)
	require.Equal(t, 1, investors.statusUpdateCalls)

	pending, err := u.SetPending(ctx, caller, created.ID)
	require.NoError(t, err)
	require.Equal(t, entities.InvestorStatusPending, pending.Status)
	require.Equal(t, 2, investors.statusUpdateCalls)
}

func TestInvestorUsecase_Delete(t *testing.T) {
	u, _, _ := newInvestorUsecase()
	ctx := context.Background()
	caller := memberCaller()

	created, err := u.Create(ctx, caller, validInvestorInput("INV-1", "rahim@example.com"))
	require.NoError(t, err)

	require.NoError(t, u.Delete(ctx, caller, created.ID))
	_, err = u.Get(ctx, caller, created.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestInvestorUsecase_CreateWithUser(t *testing.T) {
	u, _, users := newInvestorUsecase()
	ctx := context.Background()

	input := &entities.InvestorWithUserInput{
		UserName:             "Karim",
		UserEmail:            "karim@example.com",
		Password:             "strongpassword",
		PasswordConfirmation: "strongpassword",
		UserRole:             "member",
		InvestorInput:        *validInvestorInput("INV-9", "karim.inv@example.com"),
	}
	created, err := u.CreateWithUser(ctx, adminCaller(), input)
	require.NoError(t, err)

	owner, err := users.GetByEmail(ctx, "karim@example.com")
	require.NoError(t, err)
	require.Equal(t, owner.ID, created.UserID)
	require.Equal(t, entities.UserRoleMember, owner.Role)
	require.NotEqual(t, "strongpassword", owner.PasswordHash)
}

func TestInvestorUsecase_CreateWithUserValidation(t *testing.T) {
	u, _, users := newInvestorUsecase()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &entities.User{Name: "Taken", Email: "taken@example.com", PasswordHash: "x", Role: entities.UserRoleMember}))

	input := &entities.InvestorWithUserInput{
		UserName:             "Karim",
		UserEmail:            "taken@example.com",
		Password:             "short",
		PasswordConfirmation: "short",
		UserRole:             "superuser",
		InvestorInput:        *validInvestorInput("INV-9", "karim.inv@example.com"),
	}
	_, err := u.CreateWithUser(ctx, adminCaller(), input)
	ve, ok := domainerrors.AsValidation(err)
	require.True(t, ok)
	require.Contains(t, ve.Fields, "userEmail")
	require.Contains(t, ve.Fields, "password")
	require.Contains(t, ve.Fields, "userRole")
}

func TestInvestorUsecase_List(t *testing.T) {
	u, _, _ := newInvestorUsecase()
	ctx := context.Background()
	caller := memberCaller()

	for i := 0; i < 3; i++ {
		_, err := u.Create(ctx, caller, validInvestorInput(
			uuid.New().String(), uuid.New().String()+"@example.com"))
		require.NoError(t, err)
	}

	list, meta, err := u.List(ctx, caller, entities.ListInvestorsParams{Page: 1})
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.EqualValues(t, 3, meta.TotalCount)
	require.Equal(t, 15, meta.Limit)
	require.Equal(t, 1, meta.TotalPages)

	_, _, err = u.List(ctx, nil, entities.ListInvestorsParams{})
	require.Error(t, err)
}
