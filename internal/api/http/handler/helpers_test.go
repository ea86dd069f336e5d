package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/taskkeeper/internal/api/http/view"
	"github.com/dtroode/taskkeeper/internal/mocks"
	"github.com/dtroode/taskkeeper/internal/model"
	"github.com/dtroode/taskkeeper/internal/testutil"
)

var testIdentity = model.Identity{
	User:  model.User{ID: 1, Name: "Ann", Email: "ann@example.com"},
	Token: "tok",
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(testutil.MakeNoopLogger()),
		Views:        view.New(),
	})
}

func signedInContextManager(t *testing.T) *mocks.ContextManager {
	t.Helper()
	cm := mocks.NewContextManager(t)
	cm.On("GetIdentityFromContext", mock.Anything).Return(testIdentity, true)
	return cm
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return req
}

func formRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func ptr[T any](v T) *T { return &v }
