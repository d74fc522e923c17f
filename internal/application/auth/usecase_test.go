package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrace/itad-api/internal/application/auth"
	"github.com/ecotrace/itad-api/internal/application/dto"
	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/infrastructure/memory"
	"github.com/ecotrace/itad-api/pkg/jwt"
)

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "ecotrace-test"}

func newUseCase() *auth.UseCase {
	return auth.NewUseCase(memory.NewStore().Users(), testJWT)
}

func TestRegister(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	out, err := uc.Register(ctx, dto.RegisterRequest{
		Email:    "dana@ecotrace.io",
		Password: "s3cret",
		Name:     "Dana Driver",
		Role:     "driver",
		Vehicle:  "VAN-07",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "driver", out.Role)
	assert.Equal(t, "VAN-07", out.Vehicle)
	assert.Equal(t, "active", out.Status)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	req := dto.RegisterRequest{Email: "ops@ecotrace.io", Password: "s3cret"}

	_, err := uc.Register(ctx, req)
	require.NoError(t, err)
	_, err = uc.Register(ctx, req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validation(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "a@b.c", Password: "x", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_DefaultsToOperator(t *testing.T) {
	uc := newUseCase()

	out, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "operator", out.Role)
}

func TestLogin(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "admin@ecotrace.io", Password: "s3cret", Role: "admin"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@ecotrace.io", Password: "s3cret"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "admin", out.User.Role)

	userID, role, err := jwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "admin", role)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "admin@ecotrace.io", Password: "s3cret"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@ecotrace.io", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ghost@ecotrace.io", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
