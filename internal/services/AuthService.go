package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"resultsd/internal/models"
	"resultsd/internal/providers"
	"resultsd/internal/repositories/interfaces"
	"resultsd/internal/structures"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
)

const otpDigits = 6

type AuthServiceInterface interface {
	providers.TokenValidator
	Login(ctx context.Context, email, password string) (string, error)
	GenerateOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	// ResetPassword replaces the password after checking the old one and
	// returns a fresh auth code.
	ResetPassword(ctx context.Context, email, oldPassword, newPassword string) (string, error)
	CreateUser(ctx context.Context, user *models.User, password string) error
}

type authClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users    interfaces.UserStoreInterface
	mailer   MailerInterface
	logger   providers.Logger
	clock    clockwork.Clock
	secret   []byte
	tokenTTL time.Duration
	otpTTL   time.Duration
}

func NewAuthService(users interfaces.UserStoreInterface, mailer MailerInterface, conf *structures.Config, logger providers.Logger, clock clockwork.Clock) AuthServiceInterface {
	return &AuthService{
		users:    users,
		mailer:   mailer,
		logger:   logger,
		clock:    clock,
		secret:   []byte(conf.Auth.JWTSecret),
		tokenTTL: conf.Auth.TokenTTL,
		otpTTL:   conf.Auth.OTPTTL,
	}
}

func (s *AuthService) issueToken(userID string) (string, error) {
	now := s.clock.Now()
	claims := authClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *AuthService) ValidateToken(token string) (string, error) {
	var claims authClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock.Now), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if claims.UserID == "" {
		return "", errors.New("token carries no user id")
	}
	return claims.UserID, nil
}

// authenticate finds the user and checks the password. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, models.ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		s.logger.Infof(providers.TypeAuth, "Login rejected for %s: %s", email, err)
		return "", err
	}
	s.logger.Infof(providers.TypeAuth, "Login for %s", user.Email)
	return s.issueToken(user.ID.Hex())
}

func (s *AuthService) GenerateOTP(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	otp, err := randomDigits(otpDigits)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := s.users.SetOTP(ctx, user.ID, otp, s.clock.Now().Add(s.otpTTL)); err != nil {
		return err
	}

	if err := s.mailer.SendOTP(user.Email, otp); err != nil {
		s.logger.Errorf(providers.TypeAuth, "OTP mail to %s failed: %s", user.Email, err)
	}
	s.logger.Infof(providers.TypeAuth, "OTP issued for %s", user.Email)
	return nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) error {
	user, err := s.users.FindByEmailAndOTP(ctx, normalizeEmail(email), strings.TrimSpace(otp))
	if err != nil {
		return err
	}
	if user.OTPExpiry == nil || user.OTPExpiry.Before(s.clock.Now()) {
		return models.ErrOTPExpired
	}
	if err := s.users.Activate(ctx, user.ID); err != nil {
		return err
	}
	s.logger.Infof(providers.TypeAuth, "Account %s activated", user.Email)
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, oldPassword, newPassword string) (string, error) {
	user, err := s.authenticate(ctx, email, oldPassword)
	if err != nil {
		s.logger.Infof(providers.TypeAuth, "Password reset rejected for %s: %s", email, err)
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.SetPassword(ctx, user.ID, string(hash)); err != nil {
		return "", err
	}
	s.logger.Infof(providers.TypeAuth, "Password reset for %s", user.Email)
	return s.issueToken(user.ID.Hex())
}

func (s *AuthService) CreateUser(ctx context.Context, user *models.User, password string) error {
	user.Email = normalizeEmail(user.Email)
	if user.Email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", models.ErrInvalidRequest)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)
	return s.users.Insert(ctx, user)
}

// Stored emails keep their original case, so lookups only trim.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func randomDigits(n int) (string, error) {
	var b strings.Builder
	for range n {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}
