package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskbox/internal/auth"
	"taskbox/internal/errors"
	"taskbox/internal/mailer"
	"taskbox/internal/model"
	"taskbox/internal/repository"
)

const bcryptCost = 10

// AuthService handles account and email-confirmation flows.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	ForgotPassword(ctx context.Context, username, email string) (*model.User, string, error)
	ResetPassword(ctx context.Context, userID, newPassword string) error
	ConfirmToken(token string) (string, error)
}

type authService struct {
	userRepo      repository.UserRepository
	jwtService    *auth.JWTService
	mailer        mailer.Mailer
	verifyBaseURL string
}

// NewAuthService creates a new authentication service. verifyBaseURL is the
// external base under which the confirmation routes are reachable; emailed
// links are built against it.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, m mailer.Mailer, verifyBaseURL string) AuthService {
	return &authService{
		userRepo:      userRepo,
		jwtService:    jwtService,
		mailer:        m,
		verifyBaseURL: verifyBaseURL,
	}
}

// Register creates a new user with a hashed password and returns it together
// with a session token. Registration sends no confirmation email.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, "", errors.ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID.String())
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Login checks the credentials, emails a login-confirmation link and returns
// the user with a session token. The token is handed back before the link is
// followed, so the confirmation step stays advisory.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", errors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID.String())
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	link := fmt.Sprintf("%s/verify-mfa?token=%s&userId=%s", s.verifyBaseURL, token, user.ID)
	body := "Please click this link to log in to your account " + link
	if err := s.mailer.Send(ctx, user.Email, "Account verification", body); err != nil {
		return nil, "", fmt.Errorf("%w: %v", errors.ErrEmailDelivery, err)
	}

	return user, token, nil
}

// ForgotPassword matches username and email against one user, emails a reset
// link carrying a one-hour token and returns the user and token.
func (s *authService) ForgotPassword(ctx context.Context, username, email string) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsernameAndEmail(ctx, username, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", errors.ErrDetailsMismatch
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	token, err := s.jwtService.GenerateResetToken(user.ID.String(), auth.ResetTokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	link := fmt.Sprintf("%s/verify-email?token=%s&user=%s", s.verifyBaseURL, token, user.ID)
	body := "Please click this link to reset your password " + link
	if err := s.mailer.Send(ctx, user.Email, "Account verification", body); err != nil {
		return nil, "", fmt.Errorf("%w: %v", errors.ErrEmailDelivery, err)
	}

	return user, token, nil
}

// ResetPassword re-hashes and stores a new password for the given user.
func (s *authService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return errors.ErrUserNotFound
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, id, string(hashed)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ConfirmToken verifies an emailed confirmation token and returns its subject.
func (s *authService) ConfirmToken(token string) (string, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
