package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrace/itad-api/pkg/jwt"
)

const testSecret = "test-secret-0123456789"

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "driver", "ecotrace", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "driver", role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "admin", "ecotrace", 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("another-secret", token)
	assert.Error(t, err)
}

func TestParse_ExpiredToken(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "admin", "ecotrace", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, _, err := jwt.Parse(testSecret, "not.a.token")
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "admin", "ecotrace", 60)
	assert.Error(t, err)
}
