package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dtroode/taskkeeper/internal/logger"
	"github.com/dtroode/taskkeeper/internal/model"
	"github.com/dtroode/taskkeeper/internal/password"
	"github.com/dtroode/taskkeeper/internal/validation"
)

// dummyPassword is hashed once at startup so logins for unknown emails still
// pay for one bcrypt comparison.
const dummyPassword = "taskkeeper-dummy-password"

type registerInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenService *TokenService
	validator    *validation.Validator
	logger       *logger.Logger
	dummyHash    string
}

func NewAuth(
	userStore model.UserStore,
	authTokenStore model.AuthTokenStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	validator *validation.Validator,
	logger *logger.Logger,
) (*Auth, error) {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenService: NewTokenService(tokenManager, authTokenStore, logger),
		validator:    validator,
		logger:       logger,
		dummyHash:    dummyHash,
	}, nil
}

// Register creates a user and issues a token of the given kind for it.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams, kind model.TokenKind) (model.AuthResult, error) {
	input := registerInput{
		Name:     strings.TrimSpace(params.Name),
		Email:    normalizeEmail(params.Email),
		Password: params.Password,
	}

	a.logger.Debug("Auth service: starting user registration",
		"email", input.Email)

	fields, err := a.validator.Struct(input)
	if err != nil {
		return model.AuthResult{}, err
	}
	if fields == nil {
		fields = model.FieldErrors{}
	}
	if len(input.Password) > password.MaxLength {
		fields.Add("password", validation.Message("password", "max", strconv.Itoa(password.MaxLength)))
	}

	if _, invalid := fields["email"]; !invalid {
		_, err := a.userStore.GetByEmail(ctx, input.Email)
		switch {
		case err == nil:
			fields.Add("email", validation.Message("email", "unique", ""))
		case !errors.Is(err, model.ErrNotFound):
			a.logger.Error("Auth service: failed to get user by email",
				"email", input.Email,
				"error", err.Error())
			return model.AuthResult{}, fmt.Errorf("failed to get user by email: %w", err)
		}
	}

	if len(fields) > 0 {
		return model.AuthResult{}, model.NewValidationError(fields)
	}

	hash, err := a.hasher.Hash(input.Password)
	if err != nil {
		return model.AuthResult{}, err
	}

	user, err := a.userStore.Create(ctx, model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, model.ErrEmailTaken) {
		a.logger.Info("Auth service: email taken concurrently",
			"email", input.Email)
		return model.AuthResult{}, model.NewValidationError(model.FieldErrors{
			"email": {validation.Message("email", "unique", "")},
		})
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", input.Email,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := a.tokenService.Issue(ctx, user.ID, kind)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"user_id", user.ID,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID)

	return model.AuthResult{User: user, Token: token}, nil
}

// Login checks credentials and issues a token of the given kind. Unknown
// emails and wrong passwords both return model.ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, params model.LoginParams, kind model.TokenKind) (model.AuthResult, error) {
	input := loginInput{
		Email:    normalizeEmail(params.Email),
		Password: params.Password,
	}

	fields, err := a.validator.Struct(input)
	if err != nil {
		return model.AuthResult{}, err
	}
	if len(fields) > 0 {
		return model.AuthResult{}, model.NewValidationError(fields)
	}

	user, err := a.userStore.GetByEmail(ctx, input.Email)
	if errors.Is(err, model.ErrNotFound) {
		a.hasher.Compare(a.dummyHash, input.Password)
		a.logger.Info("Auth service: login failed",
			"email", input.Email)
		return model.AuthResult{}, model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", input.Email,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Compare(user.PasswordHash, input.Password) {
		a.logger.Info("Auth service: login failed",
			"email", input.Email)
		return model.AuthResult{}, model.ErrInvalidCredentials
	}

	token, err := a.tokenService.Issue(ctx, user.ID, kind)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"user_id", user.ID,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	return model.AuthResult{User: user, Token: token}, nil
}

// Logout revokes token. It succeeds for empty or already revoked tokens.
func (a *Auth) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := a.tokenService.Revoke(ctx, token); err != nil {
		a.logger.Error("Auth service: failed to revoke token",
			"error", err.Error())
		return err
	}
	return nil
}

// Authenticate resolves token, which must be of the given kind, to its user.
func (a *Auth) Authenticate(ctx context.Context, token string, kind model.TokenKind) (model.User, error) {
	if token == "" {
		return model.User{}, model.ErrUnauthenticated
	}

	userID, err := a.tokenService.Resolve(ctx, token, kind)
	if err != nil {
		return model.User{}, err
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUnauthenticated
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
