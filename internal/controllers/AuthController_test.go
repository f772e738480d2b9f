package controllers

import (
	"context"
	"errors"
	"net/http"
	"resultsd/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockAuthService struct {
	err error
}

func (m *mockAuthService) ValidateToken(string) (string, error) { return "user-1", m.err }
func (m *mockAuthService) Login(context.Context, string, string) (string, error) {
	return "token-1", m.err
}
func (m *mockAuthService) GenerateOTP(context.Context, string) error       { return m.err }
func (m *mockAuthService) VerifyOTP(context.Context, string, string) error { return m.err }
func (m *mockAuthService) ResetPassword(context.Context, string, string, string) (string, error) {
	return "token-2", m.err
}
func (m *mockAuthService) CreateUser(context.Context, *models.User, string) error { return m.err }

func TestLogin(t *testing.T) {
	ac := NewAuthController(&mockLogger{}, &mockAuthService{})
	rr := serve(http.MethodPost, "/login", "/login", `{"email":"a@example.com","password":"pw"}`, ac.Login)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Login successful","authCode":"token-1"}`, rr.Body.String())

	ac = NewAuthController(&mockLogger{}, &mockAuthService{err: models.ErrUnauthorized})
	rr = serve(http.MethodPost, "/login", "/login", `{"email":"a@example.com","password":"pw"}`, ac.Login)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid email or password", decode(rr)["message"])

	rr = serve(http.MethodPost, "/login", "/login", `{"email":"not-an-email","password":"pw"}`, ac.Login)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGenerateOTP(t *testing.T) {
	body := `{"email":"a@example.com"}`
	cases := map[error]int{
		nil:                http.StatusOK,
		models.ErrNotFound: http.StatusNotFound,
		errors.New("boom"): http.StatusInternalServerError,
	}
	for err, code := range cases {
		ac := NewAuthController(&mockLogger{}, &mockAuthService{err: err})
		rr := serve(http.MethodPost, "/generate-otp", "/generate-otp", body, ac.GenerateOTP)
		assert.Equal(t, code, rr.Code, "%v", err)
	}
}

func TestVerifyOTP(t *testing.T) {
	body := `{"email":"a@example.com","otp":"123456"}`
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{nil, http.StatusOK, "OTP verified successfully. Account activated."},
		{models.ErrNotFound, http.StatusNotFound, "User not found or wrong OTP"},
		{models.ErrOTPExpired, http.StatusBadRequest, "OTP has expired"},
	}
	for _, tc := range cases {
		ac := NewAuthController(&mockLogger{}, &mockAuthService{err: tc.err})
		rr := serve(http.MethodPost, "/verify-otp", "/verify-otp", body, ac.VerifyOTP)
		assert.Equal(t, tc.code, rr.Code)
		assert.Equal(t, tc.message, decode(rr)["message"])
	}
}

func TestResetPassword(t *testing.T) {
	body := `{"email":"a@example.com","oldPassword":"old-pw","newPassword":"new-pw1"}`
	ac := NewAuthController(&mockLogger{}, &mockAuthService{})
	rr := serve(http.MethodPost, "/resetpassword", "/resetpassword", body, ac.ResetPassword)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Password reset successful","authCode":"token-2"}`, rr.Body.String())

	logger := &mockLogger{}
	ac = NewAuthController(logger, &mockAuthService{err: errors.New("store down")})
	rr = serve(http.MethodPost, "/resetpassword", "/resetpassword", body, ac.ResetPassword)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Server error", decode(rr)["message"])
	assert.Equal(t, 1, logger.errors)
}
