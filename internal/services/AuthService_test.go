package services

import (
	"context"
	"errors"
	"resultsd/internal/models"
	"resultsd/internal/structures"
	"resultsd/internal/testutil"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	users   *testutil.MemUserStore
	mailer  *testutil.MockMailer
	clock   *clockwork.FakeClock
	service AuthServiceInterface
	user    *models.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	conf := &structures.Config{Auth: structures.AuthConfig{
		JWTSecret: "test-secret-value",
		TokenTTL:  time.Hour,
		OTPTTL:    10 * time.Minute,
	}}
	f := &authFixture{
		users:  &testutil.MemUserStore{},
		mailer: &testutil.MockMailer{},
		clock:  clockwork.NewFakeClockAt(time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)),
	}
	f.service = NewAuthService(f.users, f.mailer, conf, &testutil.MockLogger{}, f.clock)

	f.user = &models.User{Email: "Admin@Example.com", FirstName: "Ada", Authenticated: true}
	require.NoError(t, f.service.CreateUser(context.Background(), f.user, "hunter22"))
	return f
}

func TestLogin_IssuesValidToken(t *testing.T) {
	f := newAuthFixture(t)

	token, err := f.service.Login(context.Background(), " Admin@Example.com ", "hunter22")
	require.NoError(t, err)

	userID, err := f.service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, f.user.ID.Hex(), userID)
}

func TestLogin_Rejections(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Login(ctx, "Admin@Example.com", "wrong")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = f.service.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestValidateToken_Expiry(t *testing.T) {
	f := newAuthFixture(t)
	token, err := f.service.Login(context.Background(), "Admin@Example.com", "hunter22")
	require.NoError(t, err)

	f.clock.Advance(2 * time.Hour)
	_, err = f.service.ValidateToken(token)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestValidateToken_RejectsForeignSignature(t *testing.T) {
	f := newAuthFixture(t)
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": f.user.ID.Hex(),
		"exp":    f.clock.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("someone-else"))
	require.NoError(t, err)

	_, err = f.service.ValidateToken(forged)
	assert.Error(t, err)

	_, err = f.service.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestOTPFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.GenerateOTP(ctx, "Admin@Example.com"))
	otp := f.mailer.OTPFor("Admin@Example.com")
	assert.Len(t, otp, otpDigits)

	pending, err := f.users.FindByEmail(ctx, "Admin@Example.com")
	require.NoError(t, err)
	assert.False(t, pending.Authenticated)

	err = f.service.VerifyOTP(ctx, "Admin@Example.com", "not-it")
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, f.service.VerifyOTP(ctx, "Admin@Example.com", otp))
	active, err := f.users.FindByEmail(ctx, "Admin@Example.com")
	require.NoError(t, err)
	assert.True(t, active.Authenticated)
	assert.Empty(t, active.OTP)
}

func TestVerifyOTP_Expired(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.GenerateOTP(ctx, "Admin@Example.com"))
	otp := f.mailer.OTPFor("Admin@Example.com")

	f.clock.Advance(11 * time.Minute)
	assert.ErrorIs(t, f.service.VerifyOTP(ctx, "Admin@Example.com", otp), models.ErrOTPExpired)
}

func TestGenerateOTP_MailFailureStillSucceeds(t *testing.T) {
	f := newAuthFixture(t)
	f.mailer.Err = errors.New("smtp down")

	assert.NoError(t, f.service.GenerateOTP(context.Background(), "Admin@Example.com"))
	assert.ErrorIs(t, f.service.GenerateOTP(context.Background(), "ghost@example.com"), models.ErrNotFound)
}

func TestResetPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.ResetPassword(ctx, "Admin@Example.com", "wrong", "newpass1")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	token, err := f.service.ResetPassword(ctx, "Admin@Example.com", "hunter22", "newpass1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = f.service.Login(ctx, "Admin@Example.com", "hunter22")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	_, err = f.service.Login(ctx, "Admin@Example.com", "newpass1")
	assert.NoError(t, err)
}

func TestCreateUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.service.CreateUser(ctx, &models.User{Email: "x@example.com"}, ""), models.ErrInvalidRequest)
	assert.ErrorIs(t, f.service.CreateUser(ctx, &models.User{Email: "Admin@Example.com"}, "pw"), models.ErrAlreadyExists)

	stored, err := f.users.FindByEmail(ctx, "Admin@Example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.Password)
}
