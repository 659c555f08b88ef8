package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Credentials is a username and plaintext password pair.
type Credentials struct {
	Username string
	Password string
}

// LogValue keeps the password out of logs.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(slog.String("username", c.Username))
}

// SignInResult is returned by a successful sign-in.
type SignInResult struct {
	AccessToken string `json:"accessToken"`
}

// AuthService registers users and issues and checks their access tokens.
type AuthService interface {
	// SignUp validates the credentials against the credential policy, hashes
	// the password, and stores the new user.
	// Returns a *domain.ValidationError, ErrUsernameTaken or ErrInternal.
	SignUp(ctx context.Context, creds Credentials) error

	// SignIn checks the credentials and returns a signed access token.
	// Returns ErrInvalidCredentials for an unknown user or a wrong password.
	SignIn(ctx context.Context, creds Credentials) (*SignInResult, error)

	// Authenticate resolves an access token to the user it was issued for.
	// Returns auth.ErrInvalidToken, auth.ErrExpiredToken, auth.ErrTokenNotYetValid,
	// ErrInvalidCredentials when the user no longer exists, or ErrInternal.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type authServiceImpl struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	tokens auth.JWTService
	logger *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	tokens auth.JWTService,
	logger *slog.Logger,
) (AuthService, error) {
	if users == nil {
		return nil, errors.New("user store cannot be nil")
	}
	if hasher == nil {
		return nil, errors.New("password hasher cannot be nil")
	}
	if tokens == nil {
		return nil, errors.New("jwt service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &authServiceImpl{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With(slog.String("component", "auth_service")),
	}, nil
}

// SignUp implements AuthService.SignUp.
func (s *authServiceImpl) SignUp(ctx context.Context, creds Credentials) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateCredentials(creds.Username, creds.Password); err != nil {
		log.Debug("signup rejected by credential policy",
			slog.String("username", creds.Username),
			slog.String("reason", err.Error()))
		return err
	}

	hashed, err := s.hasher.Hash(creds.Password)
	if err != nil {
		log.Error("failed to hash password",
			slog.String("username", creds.Username),
			redact.Attr(err))
		return ErrInternal
	}

	user, err := domain.NewUser(creds.Username, hashed)
	if err != nil {
		log.Error("failed to build user",
			slog.String("username", creds.Username),
			redact.Attr(err))
		return ErrInternal
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			log.Debug("signup rejected: username taken", slog.String("username", creds.Username))
			return ErrUsernameTaken
		}
		log.Error("failed to create user",
			slog.String("username", creds.Username),
			redact.Attr(err),
			errOrigin(err))
		return ErrInternal
	}

	log.Info("user signed up",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// SignIn implements AuthService.SignIn.
func (s *authServiceImpl) SignIn(ctx context.Context, creds Credentials) (*SignInResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if creds.Username == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("signin rejected: unknown username", slog.String("username", creds.Username))
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to load user for signin",
			slog.String("username", creds.Username),
			redact.Attr(err),
			errOrigin(err))
		return nil, ErrInternal
	}

	if err := s.hasher.Compare(user.HashedPassword, creds.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("signin rejected: wrong password", slog.String("username", creds.Username))
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to compare password hash",
			slog.String("username", creds.Username),
			redact.Attr(err))
		return nil, ErrInternal
	}

	token, err := s.tokens.GenerateToken(ctx, user.Username)
	if err != nil {
		log.Error("failed to generate access token",
			slog.String("username", creds.Username),
			redact.Attr(err))
		return nil, ErrInternal
	}

	log.Debug("user signed in", slog.String("user_id", user.ID.String()))
	return &SignInResult{AccessToken: token}, nil
}

// Authenticate implements AuthService.Authenticate.
func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if token == "" {
		return nil, auth.ErrMissingToken
	}

	claims, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("token refers to unknown user", slog.String("username", claims.Username))
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to resolve token user",
			slog.String("username", claims.Username),
			redact.Attr(err),
			errOrigin(err))
		return nil, ErrInternal
	}

	return user, nil
}
