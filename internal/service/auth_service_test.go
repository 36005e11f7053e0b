package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
	"github.com/Afaq499/cms/internal/service"
)

const testSecret = "test-secret"

func newAuthService(db *gorm.DB) service.AuthService {
	return service.NewAuthService(repository.NewUserRepository(db), newValidator(), testSecret, time.Hour, discardLogger())
}

func TestSignupAndLoginRoundtrip(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, dto.SignupRequest{
		Name:     "Ayesha",
		Email:    "ayesha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, signup.Token)
	require.Equal(t, models.RoleStudent, signup.User.Role)

	login, err := svc.Login(ctx, dto.LoginRequest{Email: "ayesha@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, signup.User.ID, login.User.ID)

	// The stored password is a bcrypt hash, never the plaintext.
	var stored models.User
	require.NoError(t, db.First(&stored, signup.User.ID).Error)
	require.NotEqual(t, "secret123", stored.Password)
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	payload := dto.SignupRequest{Name: "Ayesha", Email: "ayesha@example.com", Password: "secret123"}
	_, err := svc.Signup(ctx, payload)
	require.NoError(t, err)

	_, err = svc.Signup(ctx, payload)
	require.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	_, err := svc.Signup(ctx, dto.SignupRequest{Name: "Ayesha", Email: "ayesha@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "ayesha@example.com", Password: "wrong-pass"})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestIssuedTokenCarriesIdentityClaims(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	response, err := svc.Signup(context.Background(), dto.SignupRequest{
		Name:     "Dr. Khan",
		Email:    "khan@example.com",
		Password: "secret123",
		Role:     models.RoleTeacher,
	})
	require.NoError(t, err)

	claims := &service.AuthClaims{}
	parsed, err := jwt.ParseWithClaims(response.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, response.User.ID, claims.UserID)
	require.Equal(t, models.RoleTeacher, claims.Role)
	require.Equal(t, "khan@example.com", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	require.True(t, claims.ExpiresAt.After(time.Now()))
}
