package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tahmidr/matrimony-backend/pkg/config"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashPassword(t *testing.T) {
	cfg := testPasswordConfig()

	hash, err := HashPassword("s3cret-password", cfg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	other, err := HashPassword("s3cret-password", cfg)
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salts must differ between hashes")
}

func TestHashPasswordEmpty(t *testing.T) {
	_, err := HashPassword("", testPasswordConfig())
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	cfg := testPasswordConfig()
	hash, err := HashPassword("correct horse battery staple", cfg)
	require.NoError(t, err)

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	cases := []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=1024,t=1,p=1$abc$def",
		"$argon2id$v=19$m=oops,t=1,p=1$abc$def",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$def",
	}
	for _, encoded := range cases {
		_, err := VerifyPassword("anything", encoded)
		assert.ErrorIs(t, err, ErrInvalidHash, encoded)
	}
}

func TestDecodeHashRoundTrip(t *testing.T) {
	cfg := testPasswordConfig()
	hash, err := HashPassword("roundtrip", cfg)
	require.NoError(t, err)

	params, salt, key, err := decodeHash(hash)
	require.NoError(t, err)
	assert.Equal(t, uint32(1024), params.Memory)
	assert.Equal(t, uint32(1), params.Time)
	assert.Equal(t, uint8(1), params.Parallelism)
	assert.Len(t, salt, 16)
	assert.Len(t, key, 32)
}
