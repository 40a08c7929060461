package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"microblog/internal/auth"
	apperrors "microblog/internal/errors"
	"microblog/internal/model"
	"microblog/internal/repository"
)

// RegisterInput carries the validated fields of a registration request.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

// ProfileUpdateInput carries the fields present in a profile update request.
// Nil fields are left untouched.
type ProfileUpdateInput struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// AuthService handles the credential and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
	IssueTokens(userID uint) (accessToken, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	GetActiveUser(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User, input ProfileUpdateInput) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	bcryptCost int
}

// NewAuthService creates a new authentication service. bcryptCost is
// configurable so tests and development can hash faster than production.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, bcryptCost int) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user with a hashed password. Username and email
// uniqueness is pre-checked; a concurrent insert that slips past the
// pre-check is caught at the unique constraint and classified the same way.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if existing, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateUsername
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashed),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch repository.UniqueViolationColumn(err) {
		case "username":
			return nil, apperrors.ErrDuplicateUsername
		case "email":
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials. Unknown usernames and wrong passwords produce
// the same error so accounts cannot be enumerated.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDeactivated
	}

	return user, nil
}

// IssueTokens mints an access/refresh token pair for the user.
func (s *authService) IssueTokens(userID uint) (string, string, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.jwtService.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

// Refresh validates a refresh token, re-fetches the user and confirms the
// account is still active, then mints a new access token. The refresh token
// itself is neither rotated nor invalidated.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", apperrors.ErrUnauthorized
	}
	if !user.IsActive {
		return "", apperrors.ErrAccountDeactivated
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// GetActiveUser loads the user behind a resolved token identity, rejecting
// missing and deactivated accounts.
func (s *authService) GetActiveUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// UpdateProfile merges the provided fields into the user's profile. A changed
// email must not belong to another user.
func (s *authService) UpdateProfile(ctx context.Context, user *model.User, input ProfileUpdateInput) (*model.User, error) {
	if input.FirstName != nil {
		user.FirstName = input.FirstName
	}
	if input.LastName != nil {
		user.LastName = input.LastName
	}
	if input.Email != nil && *input.Email != user.Email {
		existing, err := s.userRepo.FindByEmail(ctx, *input.Email)
		if err == nil && existing != nil && existing.ID != user.ID {
			return nil, apperrors.ErrDuplicateEmail
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		user.Email = *input.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.UniqueViolationColumn(err) == "email" {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}
