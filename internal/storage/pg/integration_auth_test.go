package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studycircle-dev/studycircle/internal/domain"
	internal_errors "github.com/studycircle-dev/studycircle/internal/errors"
)

func TestSaveUser(t *testing.T) {
	id, err := storage.SaveUser(domain.User{Email: "save@example.com", DisplayName: "Ada", PassHash: []byte("hash")})
	require.NoError(t, err, "SaveUser should not return an error")
	assert.Greater(t, id, int64(0), "Expected ID > 0")

	_, err = storage.SaveUser(domain.User{Email: "save@example.com", PassHash: []byte("hash")})
	require.Error(t, err, "Saving user twice should return an error")
	assert.True(t, internal_errors.IsConflict(err), "Duplicate email should surface as a conflict")
}

func TestUser(t *testing.T) {
	_, err := storage.SaveUser(domain.User{Email: "lookup@example.com", DisplayName: "Ada", PassHash: []byte("hash")})
	require.NoError(t, err)

	user, err := storage.User("lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, "lookup@example.com", user.Email)
	assert.Equal(t, "Ada", user.DisplayName)
	assert.Equal(t, "hash", string(user.PassHash))
	assert.False(t, user.Admin)
	assert.False(t, user.CreatedAt.IsZero())

	_, err = storage.User("nonexistent@example.com")
	require.Error(t, err, "Expected error for nonexistent user")
	assert.True(t, internal_errors.IsNotFound(err))
}
