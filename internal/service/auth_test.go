package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/taskkeeper/internal/mocks"
	"github.com/dtroode/taskkeeper/internal/model"
	"github.com/dtroode/taskkeeper/internal/password"
	"github.com/dtroode/taskkeeper/internal/testutil"
	"github.com/dtroode/taskkeeper/internal/token"
	"github.com/dtroode/taskkeeper/internal/validation"
)

type authFixture struct {
	users  *mocks.UserStore
	tokens *mocks.AuthTokenStore
	hasher *password.Bcrypt
	auth   *Auth
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		users:  mocks.NewUserStore(t),
		tokens: mocks.NewAuthTokenStore(t),
		hasher: password.NewBcrypt(bcrypt.MinCost),
	}
	auth, err := NewAuth(f.users, f.tokens, f.hasher, token.NewJWT("test-secret", time.Hour),
		validation.New(), testutil.MakeNoopLogger())
	require.NoError(t, err)
	f.auth = auth
	return f
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", errors.New("bad cost") }

func (failingHasher) Compare(string, string) bool { return false }

func TestNewAuth_HasherError(t *testing.T) {
	auth, err := NewAuth(mocks.NewUserStore(t), mocks.NewAuthTokenStore(t), failingHasher{},
		token.NewJWT("test-secret", time.Hour), validation.New(), testutil.MakeNoopLogger())
	require.Error(t, err)
	assert.Nil(t, auth)
	assert.Contains(t, err.Error(), "bad cost")
}

func (f *authFixture) userWithPassword(t *testing.T, id int64, email, plain string) model.User {
	t.Helper()
	hash, err := f.hasher.Hash(plain)
	require.NoError(t, err)
	return model.User{ID: id, Name: "Ann", Email: email, PasswordHash: hash}
}

func validationFields(t *testing.T, err error) model.FieldErrors {
	t.Helper()
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestAuth_Register_Success(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	var created model.User
	f.users.On("GetByEmail", mock.Anything, "ann@example.com").Return(model.User{}, model.ErrNotFound)
	f.users.On("Create", mock.Anything, mock.AnythingOfType("model.User")).
		Return(func(_ context.Context, u model.User) (model.User, error) {
			created = u
			u.ID = 1
			return u, nil
		})
	f.tokens.On("Create", mock.Anything, mock.MatchedBy(func(at model.AuthToken) bool {
		return at.UserID == 1 && at.Kind == model.TokenKindAPI
	})).Return(nil)

	res, err := f.auth.Register(ctx, model.RegisterParams{
		Name:     "  Ann ",
		Email:    " Ann@Example.com",
		Password: "secret1",
	}, model.TokenKindAPI)
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.User.ID)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "Ann", created.Name)
	assert.Equal(t, "ann@example.com", created.Email)
	assert.NotEqual(t, "secret1", created.PasswordHash)
	assert.True(t, f.hasher.Compare(created.PasswordHash, "secret1"))
}

func TestAuth_Register_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params model.RegisterParams
		field  string
		msg    string
	}{
		{
			name:   "missing name",
			params: model.RegisterParams{Name: "   ", Email: "a@b.co", Password: "secret1"},
			field:  "name",
			msg:    "The name field is required.",
		},
		{
			name:   "bad email",
			params: model.RegisterParams{Name: "Ann", Email: "not-an-email", Password: "secret1"},
			field:  "email",
			msg:    "The email field must be a valid email address.",
		},
		{
			name:   "short password",
			params: model.RegisterParams{Name: "Ann", Email: "a@b.co", Password: "12345"},
			field:  "password",
			msg:    "The password field must be at least 6 characters.",
		},
		{
			name:   "long password",
			params: model.RegisterParams{Name: "Ann", Email: "a@b.co", Password: strings.Repeat("x", 73)},
			field:  "password",
			msg:    "The password field must not be greater than 72 characters.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(model.User{}, model.ErrNotFound).Maybe()

			_, err := f.auth.Register(context.Background(), tt.params, model.TokenKindAPI)
			fields := validationFields(t, err)
			assert.Equal(t, []string{tt.msg}, fields[tt.field])
			f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	t.Run("found by lookup in any case", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("GetByEmail", mock.Anything, "ann@example.com").Return(model.User{ID: 1, Email: "ann@example.com"}, nil)

		_, err := f.auth.Register(context.Background(), model.RegisterParams{
			Name: "Ann", Email: "ANN@example.com", Password: "secret1",
		}, model.TokenKindAPI)
		fields := validationFields(t, err)
		assert.Equal(t, []string{"The email has already been taken."}, fields["email"])
	})

	t.Run("unique violation on insert", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("GetByEmail", mock.Anything, "ann@example.com").Return(model.User{}, model.ErrNotFound)
		f.users.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrEmailTaken)

		_, err := f.auth.Register(context.Background(), model.RegisterParams{
			Name: "Ann", Email: "ann@example.com", Password: "secret1",
		}, model.TokenKindAPI)
		fields := validationFields(t, err)
		assert.Equal(t, []string{"The email has already been taken."}, fields["email"])
	})
}

func TestAuth_Register_StoreError(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByEmail", mock.Anything, "ann@example.com").Return(model.User{}, errors.New("db down"))

	_, err := f.auth.Register(context.Background(), model.RegisterParams{
		Name: "Ann", Email: "ann@example.com", Password: "secret1",
	}, model.TokenKindAPI)
	require.Error(t, err)

	var verr *model.ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.userWithPassword(t, 3, "ann@example.com", "secret1")
		f.users.On("GetByEmail", mock.Anything, "ann@example.com").Return(user, nil)
		f.tokens.On("Create", mock.Anything, mock.MatchedBy(func(at model.AuthToken) bool {
			return at.UserID == 3 && at.Kind == model.TokenKindSession
		})).Return(nil)

		res, err := f.auth.Login(ctx, model.LoginParams{Email: "Ann@example.com ", Password: "secret1"}, model.TokenKindSession)
		require.NoError(t, err)
		assert.Equal(t, int64(3), res.User.ID)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.userWithPassword(t, 3, "ann@example.com", "secret1")
		f.users.On("GetByEmail", mock.Anything, "ann@example.com").Return(user, nil)
		f.users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, model.ErrNotFound)

		_, wrongPassword := f.auth.Login(ctx, model.LoginParams{Email: "ann@example.com", Password: "nope"}, model.TokenKindAPI)
		_, unknownEmail := f.auth.Login(ctx, model.LoginParams{Email: "nobody@example.com", Password: "secret1"}, model.TokenKindAPI)

		assert.ErrorIs(t, wrongPassword, model.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, model.ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
		f.tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("validation", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.auth.Login(ctx, model.LoginParams{Email: "", Password: ""}, model.TokenKindAPI)
		fields := validationFields(t, err)
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
	})

	t.Run("multiple live tokens", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.userWithPassword(t, 3, "ann@example.com", "secret1")
		f.users.On("GetByEmail", mock.Anything, "ann@example.com").Return(user, nil)
		f.tokens.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

		first, err := f.auth.Login(ctx, model.LoginParams{Email: "ann@example.com", Password: "secret1"}, model.TokenKindAPI)
		require.NoError(t, err)
		second, err := f.auth.Login(ctx, model.LoginParams{Email: "ann@example.com", Password: "secret1"}, model.TokenKindAPI)
		require.NoError(t, err)
		assert.NotEqual(t, first.Token, second.Token)
	})
}

func TestAuth_AuthenticateAndLogout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	user := f.userWithPassword(t, 5, "bob@example.com", "hunter22")

	var stored model.AuthToken
	f.users.On("GetByEmail", mock.Anything, "bob@example.com").Return(user, nil)
	f.users.On("GetByID", mock.Anything, int64(5)).Return(user, nil)
	f.tokens.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(model.AuthToken) }).
		Return(nil)

	res, err := f.auth.Login(ctx, model.LoginParams{Email: "bob@example.com", Password: "hunter22"}, model.TokenKindAPI)
	require.NoError(t, err)
	f.tokens.On("GetByID", mock.Anything, stored.ID).Return(stored, nil).Once()

	got, err := f.auth.Authenticate(ctx, res.Token, model.TokenKindAPI)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)

	f.tokens.On("Revoke", mock.Anything, stored.ID).Return(nil)
	require.NoError(t, f.auth.Logout(ctx, res.Token))

	revokedAt := time.Now()
	revoked := stored
	revoked.RevokedAt = &revokedAt
	f.tokens.On("GetByID", mock.Anything, stored.ID).Return(revoked, nil)

	_, err = f.auth.Authenticate(ctx, res.Token, model.TokenKindAPI)
	assert.ErrorIs(t, err, model.ErrUnauthenticated)

	require.NoError(t, f.auth.Logout(ctx, res.Token))
}

func TestAuth_Authenticate_Rejects(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Authenticate(context.Background(), "", model.TokenKindAPI)
	assert.ErrorIs(t, err, model.ErrUnauthenticated)

	_, err = f.auth.Authenticate(context.Background(), "not-a-jwt", model.TokenKindAPI)
	assert.ErrorIs(t, err, model.ErrUnauthenticated)
}

func TestAuth_Logout_EmptyToken(t *testing.T) {
	f := newAuthFixture(t)
	require.NoError(t, f.auth.Logout(context.Background(), ""))
}
