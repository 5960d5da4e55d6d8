package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/repositories"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return NewAuthService(repositories.NewUserRepository(db))
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register("Admin", "admin@shop.test", "secret123", "admin")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")

	got, pair, err := svc.Login("admin@shop.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register("Admin", "admin@shop.test", "secret123", "admin")
	require.NoError(t, err)

	_, _, err = svc.Login("admin@shop.test", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@shop.test", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Refresh(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register("Cashier", "cash@shop.test", "secret123", "cashier")
	require.NoError(t, err)
	_, pair, err := svc.Login("cash@shop.test", "secret123")
	require.NoError(t, err)

	fresh, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	_, err = svc.Refresh("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
