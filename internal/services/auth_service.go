package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/projectsclub/collab-api/internal/constants"
	"github.com/projectsclub/collab-api/internal/mailer"
	"github.com/projectsclub/collab-api/internal/models"
	"github.com/projectsclub/collab-api/internal/repository"
	"github.com/projectsclub/collab-api/internal/token"
	"github.com/projectsclub/collab-api/internal/utils"
)

var (
	ErrMissingCredentials   = errors.New("email and password are required")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrEmailRequired        = errors.New("email is required")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidResetToken    = errors.New("invalid or expired reset token")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrFailedToIssueToken   = errors.New("failed to issue token")
)

const welcomeSendTimeout = 30 * time.Second

// MailRecorder observes outbound email attempts.
type MailRecorder interface {
	EmailSent(kind string, err error)
}

type noopRecorder struct{}

func (noopRecorder) EmailSent(string, error) {}

// AuthDeps are the collaborators of AuthService.
type AuthDeps struct {
	Users       repository.UserRepository
	Resets      repository.PasswordResetRepository
	Tokens      *token.Manager
	Mailer      mailer.Mailer
	FrontendURL string
	Logger      *zap.Logger
	Recorder    MailRecorder
}

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo    repository.UserRepository
	resetRepo   repository.PasswordResetRepository
	tokens      *token.Manager
	mail        mailer.Mailer
	frontendURL string
	log         *zap.Logger
	recorder    MailRecorder
	now         func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(deps AuthDeps) *AuthService {
	s := &AuthService{
		userRepo:    deps.Users,
		resetRepo:   deps.Resets,
		tokens:      deps.Tokens,
		mail:        deps.Mailer,
		frontendURL: strings.TrimRight(deps.FrontendURL, "/"),
		log:         deps.Logger,
		recorder:    deps.Recorder,
		now:         time.Now,
	}
	if s.mail == nil {
		s.mail = mailer.Disabled{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.recorder == nil {
		s.recorder = noopRecorder{}
	}
	return s
}

// AuthResult is a freshly issued bearer token and the user it identifies.
type AuthResult struct {
	User        *models.User
	AccessToken string
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Email    string
	Password string
	Name     string
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a new user with an empty profile and issues a token.
// The welcome email is sent in the background; its failure is only logged.
func (s *AuthService) Signup(input SignupInput) (*AuthResult, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	profile := &models.Profile{FullName: strings.TrimSpace(input.Name)}

	if err := s.userRepo.CreateWithProfile(user, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: %w", ErrFailedToCreateUser, err)
	}

	accessToken, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, ErrFailedToIssueToken
	}

	go s.sendWelcome(user.ID, user.Email)

	return &AuthResult{User: user, AccessToken: accessToken}, nil
}

func (s *AuthService) sendWelcome(userID uint64, email string) {
	ctx, cancel := context.WithTimeout(context.Background(), welcomeSendTimeout)
	defer cancel()

	msg, err := mailer.Welcome(email)
	if err == nil {
		err = s.mail.Send(ctx, msg)
	}
	s.recorder.EmailSent("welcome", err)
	if err != nil {
		s.log.Warn("Welcome email not delivered", zap.Uint64("user_id", userID), zap.Error(err))
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, ErrFailedToIssueToken
	}

	return &AuthResult{User: user, AccessToken: accessToken}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// DeleteAccount removes the user and everything they own.
func (s *AuthService) DeleteAccount(id uint64) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// RequestPasswordReset issues a reset token and emails the link when the
// address belongs to an account. Unknown addresses and delivery failures
// are indistinguishable from success to the caller.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return ErrEmailRequired
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	now := s.now()
	if purged, err := s.resetRepo.PurgeStale(now); err != nil {
		s.log.Warn("Failed to purge stale reset tokens", zap.Error(err))
	} else if purged > 0 {
		s.log.Debug("Purged stale reset tokens", zap.Int64("count", purged))
	}

	value, err := utils.GenerateToken(constants.ResetTokenByteLength)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	resetToken := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     value,
		ExpiresAt: now.Add(constants.ResetTokenTTL),
	}
	if err := s.resetRepo.Create(resetToken); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	msg, err := mailer.PasswordReset(user.Email, s.ResetLink(value))
	if err == nil {
		err = s.mail.Send(ctx, msg)
	}
	s.recorder.EmailSent("reset", err)
	if err != nil {
		s.log.Warn("Password reset email not delivered", zap.Uint64("user_id", user.ID), zap.Error(err))
	}

	return nil
}

// ResetLink is the frontend route that accepts token.
func (s *AuthService) ResetLink(value string) string {
	return s.frontendURL + "/#/reset-password?token=" + value
}

// ResetPasswordInput carries a reset token and the replacement password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// ResetPassword redeems a token and replaces the password hash.
func (s *AuthService) ResetPassword(input ResetPasswordInput) error {
	if len(input.NewPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}
	value := strings.TrimSpace(input.Token)
	if value == "" {
		return ErrInvalidResetToken
	}

	resetToken, err := s.resetRepo.FindByToken(value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to find reset token: %w", err)
	}
	if !resetToken.Redeemable(s.now()) {
		return ErrInvalidResetToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	if err := s.resetRepo.Redeem(resetToken.ID, resetToken.UserID, string(hashedPassword)); err != nil {
		if errors.Is(err, repository.ErrTokenAlreadyUsed) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}
