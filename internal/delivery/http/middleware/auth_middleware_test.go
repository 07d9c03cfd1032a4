package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "passage/internal/domain/errors"
	"passage/internal/domain/service"
	mockSvc "passage/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAuthenticated(t *testing.T, tokenSvc service.TokenService, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := NewAuthMiddleware(tokenSvc).Authenticate(func(c echo.Context) error {
		reached = true

		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec, reached
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().
		Verify("valid-token").
		Return(&service.Claims{UserID: userID, Email: "alice@example.com"}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewAuthMiddleware(tokenSvc).Authenticate(func(c echo.Context) error {
		assert.Equal(t, userID, c.Get(ContextKeyUserID))
		assert.Equal(t, "alice@example.com", c.Get(ContextKeyUserEmail))

		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)

	rec, reached := runAuthenticated(t, tokenSvc, "")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)

	rec, reached := runAuthenticated(t, tokenSvc, "Basic dXNlcjpwYXNz")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().
		Verify("expired").
		Return(nil, domainerrors.ErrInvalidToken.WrapMessage("token verification failed"))

	rec, reached := runAuthenticated(t, tokenSvc, "Bearer expired")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
