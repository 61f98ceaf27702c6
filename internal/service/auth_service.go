package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brainswarm/booking-api/internal/auth"
	"github.com/brainswarm/booking-api/internal/domain"
	"github.com/brainswarm/booking-api/internal/events"
	"github.com/brainswarm/booking-api/internal/observability"
	"github.com/brainswarm/booking-api/internal/repository"
)

// Sign-in outcomes recorded in metrics.
const (
	signInSuccess  = "success"
	signInInvalid  = "invalid"
	signInDisabled = "disabled"
	signInLocked   = "locked"
)

// SignUpInput carries registration fields after request validation.
type SignUpInput struct {
	Username string
	Email    string
	Password string
	FullName *string
}

// AuthResult is returned by successful sign-up and sign-in.
type AuthResult struct {
	User        *domain.User
	AccessToken string
	ExpiresAt   time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	hasher     *auth.PasswordHasher
	tokens     *auth.TokenManager
	limiter    SignInLimiter
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
// Limiter, Dispatcher, Metrics and Logger are optional.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Hasher     *auth.PasswordHasher
	Tokens     *auth.TokenManager
	Limiter    SignInLimiter
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	limiter := deps.Limiter
	if limiter == nil {
		limiter = NoopSignInLimiter{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		hasher:     deps.Hasher,
		tokens:     deps.Tokens,
		limiter:    limiter,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// CreateUser stores a new active account with role user. Duplicate usernames
// or emails return a conflict error and create nothing.
func (s *AuthService) CreateUser(ctx context.Context, in SignUpInput) (*domain.User, error) {
	return s.createUser(ctx, in, domain.RoleUser)
}

func (s *AuthService) createUser(ctx context.Context, in SignUpInput, role domain.Role) (*domain.User, error) {
	// Sign-in matches either column, so a new username must not equal any
	// existing email and a new email must not equal any existing username.
	if err := s.ensureLoginFree(ctx, in.Username, domain.ErrUsernameTaken); err != nil {
		return nil, err
	}
	if err := s.ensureLoginFree(ctx, in.Email, domain.ErrEmailTaken); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ensureLoginFree(ctx context.Context, identifier string, taken error) error {
	_, err := s.users.GetByLogin(ctx, identifier)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return err
	}
}

// Authenticate resolves identifier (username or email) and checks the
// password. Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	user, err := s.users.GetByLogin(ctx, identifier)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// SignUp registers an account and issues its first access token.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*AuthResult, error) {
	user, err := s.CreateUser(ctx, in)
	if err != nil {
		return nil, err
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	s.publish(ctx, events.NewEvent(events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Username: user.Username,
		Email:    user.Email,
	}))
	return result, nil
}

// SignIn authenticates and issues an access token. The active flag is checked
// only after the password matches.
func (s *AuthService) SignIn(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if !s.limiter.Allow(ctx, identifier) {
		s.metrics.RecordSignIn(signInLocked)
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.Authenticate(ctx, identifier, password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		s.limiter.RecordFailure(ctx, identifier)
		s.metrics.RecordSignIn(signInInvalid)
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		s.metrics.RecordSignIn(signInDisabled)
		return nil, domain.ErrAccountDisabled
	}

	s.limiter.Reset(ctx, identifier)
	s.metrics.RecordSignIn(signInSuccess)
	return s.issue(user)
}

// Me returns the caller's current stored record.
func (s *AuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.GetUserByID(ctx, userID)
}

// GetUserByID returns ErrUserNotFound when no such user exists.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetUserByUsername returns ErrUserNotFound when no such user exists.
func (s *AuthService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: user, AccessToken: token, ExpiresAt: exp}, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
