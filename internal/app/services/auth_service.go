package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/app/repositories"
	"github.com/edunet/edunet/internal/pkg/apperrors"
	"github.com/edunet/edunet/internal/pkg/auth"
	"github.com/edunet/edunet/internal/pkg/email"
)

// UserStore is the data access surface the auth service needs
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	SetVerified(ctx context.Context, email string) error
	UpdateDetails(ctx context.Context, email string, updates repositories.UserDetailUpdates) (*models.User, error)
}

// VerificationTokens issues and validates email verification tokens
type VerificationTokens interface {
	GenerateVerificationToken(email string) (string, error)
	ParseVerificationToken(token string) (string, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) error
	Login(ctx context.Context, email, password string) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) error
	ManualVerify(ctx context.Context, email string) (*models.User, error)
	UpdateUserDetails(ctx context.Context, req *dto.UpdateUserDetailsRequest) (*models.User, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo UserStore
	tokens   VerificationTokens
	mailer   email.Service
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserStore,
	tokens VerificationTokens,
	mailer email.Service,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
		logger:   logger,
	}
}

// Signup registers a new unverified user and sends a verification email
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) error {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	dob, err := parseDate(req.DOB)
	if err != nil {
		return apperrors.NewBadRequestError("Invalid date of birth")
	}

	user := &models.User{
		Fullname:   req.Fullname,
		Email:      req.Email,
		DOB:        dob,
		Password:   hashed,
		IsVerified: false,
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	token, err := s.tokens.GenerateVerificationToken(user.Email)
	if err != nil {
		return err
	}

	if err := s.mailer.SendVerificationEmail(user.Email, user.Fullname, token); err != nil {
		s.logger.Error().Err(err).
			Str("email", user.Email).
			Msg("Failed to send verification email")
		return err
	}

	return nil
}

// Login authenticates a user by email and password. Unverified accounts
// and wrong passwords are reported with dedicated errors so the handler
// can answer with the soft 202 status the frontend expects.
func (s *authServiceImpl) Login(ctx context.Context, emailAddr, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	if !user.IsVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrIncorrectPassword
	}

	return user, nil
}

// VerifyEmail validates the token from the verification link and marks
// the user as verified
func (s *authServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	emailAddr, err := s.tokens.ParseVerificationToken(token)
	if err != nil {
		return apperrors.ErrTokenInvalid
	}

	if err := s.userRepo.SetVerified(ctx, emailAddr); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}

	return nil
}

// ManualVerify marks a user verified without a token
func (s *authServiceImpl) ManualVerify(ctx context.Context, emailAddr string) (*models.User, error) {
	if err := s.userRepo.SetVerified(ctx, emailAddr); err != nil {
		return nil, err
	}
	return s.userRepo.GetByEmail(ctx, emailAddr)
}

// UpdateUserDetails applies a partial profile update. The password is
// re-hashed when a new one is supplied.
func (s *authServiceImpl) UpdateUserDetails(ctx context.Context, req *dto.UpdateUserDetailsRequest) (*models.User, error) {
	updates := repositories.UserDetailUpdates{}

	if req.Fullname != "" {
		updates.Fullname = &req.Fullname
	}
	if req.DOB != "" {
		updates.DOB = &req.DOB
	}
	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		updates.Password = &hashed
	}

	// A body carrying only the email is a no-op update; answer with
	// the current row instead of issuing an empty UPDATE
	if updates == (repositories.UserDetailUpdates{}) {
		return s.userRepo.GetByEmail(ctx, req.Email)
	}

	return s.userRepo.UpdateDetails(ctx, req.Email, updates)
}
