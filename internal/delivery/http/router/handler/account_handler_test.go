package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"passage/internal/delivery/http/validator"
	"passage/internal/domain/entity"
	domainerrors "passage/internal/domain/errors"
	mockUC "passage/internal/mocks/usecase"
	"passage/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func newTestHandler(t *testing.T) (*AccountHandler, *mockUC.MockAccountUsecase) {
	uc := mockUC.NewMockAccountUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAccountHandler(uc, logger), uc
}

func TestAccountHandler_Register_Success(t *testing.T) {
	h, uc := newTestHandler(t)
	e := newTestEcho()

	userID := uuid.New()
	uc.EXPECT().
		Register(mock.Anything, &usecase.RegisterInput{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "Password123!",
		}).
		Return(&usecase.RegisterOutput{
			User: entity.Identity{ID: userID, Email: "alice@example.com"},
		}, nil)

	body := `{"name":"Alice","email":"alice@example.com","password":"Password123!"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Register(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
	assert.NotContains(t, rec.Body.String(), "Password123!")
}

func TestAccountHandler_Register_ValidationFailure(t *testing.T) {
	h, _ := newTestHandler(t)
	e := newTestEcho()

	cases := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"email":"a@b.com","password":"secret1"}`},
		{name: "bad email", body: `{"name":"A","email":"not-an-email","password":"secret1"}`},
		{name: "short password", body: `{"name":"A","email":"a@b.com","password":"abc"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			err := h.Register(e.NewContext(req, rec))
			// The usecase is never reached; the validation error bubbles to
			// the error middleware.
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestAccountHandler_Login_Success(t *testing.T) {
	h, uc := newTestHandler(t)
	e := newTestEcho()

	uc.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{
			Email:    "alice@example.com",
			Password: "Password123!",
		}).
		Return(&usecase.LoginOutput{
			AccessToken: "session-token",
			User:        entity.Identity{ID: uuid.New(), Email: "alice@example.com"},
		}, nil)

	body := `{"email":"alice@example.com","password":"Password123!"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "session-token")
}

func TestAccountHandler_Login_InvalidCredentialsPropagates(t *testing.T) {
	h, uc := newTestHandler(t)
	e := newTestEcho()

	uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch"))

	body := `{"email":"alice@example.com","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountHandler_VerifyEmail_Success(t *testing.T) {
	h, uc := newTestHandler(t)
	e := newTestEcho()

	uc.EXPECT().
		VerifyEmail(mock.Anything, &usecase.VerifyEmailInput{Token: "the-token"}).
		Return(&usecase.VerifyEmailOutput{
			Message: "user verified successfully",
			User:    entity.Identity{ID: uuid.New(), Email: "alice@example.com"},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/verify-email?token=the-token", nil)
	rec := httptest.NewRecorder()

	err := h.VerifyEmail(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user verified successfully")
}

func TestAccountHandler_VerifyEmail_MissingTokenPropagates(t *testing.T) {
	h, uc := newTestHandler(t)
	e := newTestEcho()

	uc.EXPECT().
		VerifyEmail(mock.Anything, &usecase.VerifyEmailInput{Token: ""}).
		Return(nil, domainerrors.ErrMissingToken.WrapMessage("verification token is empty"))

	req := httptest.NewRequest(http.MethodGet, "/auth/verify-email", nil)
	rec := httptest.NewRecorder()

	err := h.VerifyEmail(e.NewContext(req, rec))
	assert.ErrorIs(t, err, domainerrors.ErrMissingToken)
}

func TestAccountHandler_Profile_Success(t *testing.T) {
	h, uc := newTestHandler(t)
	e := newTestEcho()
	userID := uuid.New()

	uc.EXPECT().
		Profile(mock.Anything, userID).
		Return(&usecase.ProfileOutput{
			ID:         userID,
			Email:      "alice@example.com",
			Name:       "Alice",
			IsVerified: true,
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("userID", userID)

	err := h.Profile(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
}

func TestAccountHandler_Profile_MissingIdentity(t *testing.T) {
	h, _ := newTestHandler(t)
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	rec := httptest.NewRecorder()

	err := h.Profile(e.NewContext(req, rec))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}
