package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("sturdyPass1")
	require.NoError(t, err)
	assert.NotEqual(t, "sturdyPass1", hash)

	assert.True(t, CheckPassword(hash, "sturdyPass1"))
	assert.False(t, CheckPassword(hash, "wrongPass1"))
	assert.False(t, CheckPassword("not-a-hash", "sturdyPass1"))
}
