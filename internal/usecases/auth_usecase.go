package usecases

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/internal/domain/repositories"
	"invest-desk.backend/pkg/crypto"
	"invest-desk.backend/pkg/jwt"
	"invest-desk.backend/pkg/logger"
	"invest-desk.backend/pkg/redis"
)

const sessionTTL = 24 * time.Hour

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	jwtService   *jwt.JWTService
	sessionStore *redis.SessionStore
}

// NewAuthUsecase creates a new auth usecase. sessionStore may be nil when
// Redis-backed sessions are disabled; token login still works.
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.JWTService,
	sessionStore *redis.SessionStore,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// Register creates a self-service account. Signups always get the member
// role; only an existing admin can mint another admin.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	ve := domainerrors.NewValidationError()
	if input.Name == "" || len(input.Name) > 255 {
		ve.Add("name", "name is required and must be at most 255 characters")
	}
	if !validEmail(input.Email) {
		ve.Add("email", "a valid email is required")
	} else if exists, err := u.userRepo.ExistsByEmail(ctx, input.Email, uuid.Nil); err != nil {
		return nil, err
	} else if exists {
		ve.Add("email", "the email has already been taken")
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
		Role:         entities.UserRoleMember,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "user registered", zap.String("user_id", user.ID.String()))
	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// Login verifies credentials and issues a token pair. With UseSession set
// the pair is parked encrypted in Redis and only the session id goes back
// to the client.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid email or password")
		}
		return nil, err
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("invalid email or password")
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	if input.UseSession && u.sessionStore != nil {
		sessionID, err := crypto.GenerateRandomToken(32)
		if err != nil {
			return nil, err
		}
		data := &redis.SessionData{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		}
		if err := u.sessionStore.CreateSession(ctx, sessionID, data, sessionTTL); err != nil {
			return nil, err
		}
		logger.Info(ctx, "session login", zap.String("user_id", user.ID.String()))
		return &entities.AuthResponse{SessionID: sessionID, User: user}, nil
	}

	logger.Info(ctx, "token login", zap.String("user_id", user.ID.String()))
	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// Logout drops the Redis session if one exists. Token-only logins have
// nothing server-side to revoke.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" || u.sessionStore == nil {
		return nil
	}
	return u.sessionStore.DeleteSession(ctx, sessionID)
}

// RefreshToken exchanges a valid refresh token for a fresh pair.
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.NewAppError(http.StatusUnauthorized, "refresh token expired", domainerrors.ErrTokenExpired)
		}
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}
	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}
	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// GetMe returns the caller's own profile.
func (u *AuthUsecase) GetMe(ctx context.Context, caller *entities.User) (*entities.User, error) {
	if caller == nil {
		return nil, domainerrors.Unauthorized("authentication required")
	}
	return u.userRepo.GetByID(ctx, caller.ID)
}

// ChangePassword verifies the current password and stores a new hash.
func (u *AuthUsecase) ChangePassword(ctx context.Context, caller *entities.User, input *entities.ChangePasswordInput) error {
	if caller == nil {
		return domainerrors.Unauthorized("authentication required")
	}
	user, err := u.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		return err
	}
	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.Unauthorized("current password is incorrect")
	}
	if len(input.NewPassword) < 8 {
		ve := domainerrors.NewValidationError()
		ve.Add("newPassword", "password must be at least 8 characters")
		return ve
	}
	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return u.userRepo.Update(ctx, user)
}
