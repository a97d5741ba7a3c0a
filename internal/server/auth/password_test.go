package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func fastArgon2idParams() Argon2idParams {
	return Argon2idParams{Time: 1, MemoryKiB: 1024, Parallelism: 1, SaltLen: 16, KeyLen: 32}
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, &BcryptHasher{}, h)

	h, err = NewPasswordHasher("argon2id")
	require.NoError(t, err)
	assert.IsType(t, &Argon2idHasher{}, h)

	_, err = NewPasswordHasher("md5")
	assert.ErrorIs(t, err, ErrUnknownHasher)
}

func TestHashers_VerifyIffSecretMatches(t *testing.T) {
	hashers := map[string]PasswordHasher{
		"bcrypt":   NewBcryptHasher(bcrypt.MinCost),
		"argon2id": NewArgon2idHasher(fastArgon2idParams()),
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash("mi-password")
			require.NoError(t, err)
			assert.NotContains(t, hash, "mi-password")

			assert.True(t, h.Verify("mi-password", hash))
			assert.False(t, h.Verify("mi-passwore", hash))
			assert.False(t, h.Verify("", hash))
			assert.False(t, h.Verify("mi-password", "garbage"))

			again, err := h.Hash("mi-password")
			require.NoError(t, err)
			assert.NotEqual(t, hash, again, "hashes must be salted")
		})
	}
}

func TestHashers_RejectLongSecret(t *testing.T) {
	long := strings.Repeat("x", MaxSecretLength+1)

	_, err := NewBcryptHasher(bcrypt.MinCost).Hash(long)
	assert.ErrorIs(t, err, ErrSecretTooLong)

	_, err = NewArgon2idHasher(fastArgon2idParams()).Hash(long)
	assert.ErrorIs(t, err, ErrSecretTooLong)

	_, err = NewBcryptHasher(bcrypt.MinCost).Hash(strings.Repeat("x", MaxSecretLength))
	assert.NoError(t, err)
}

func TestArgon2idHash_Format(t *testing.T) {
	hash, err := NewArgon2idHasher(fastArgon2idParams()).Hash("s3cret")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"), hash)
	assert.Len(t, strings.Split(hash, "$"), 6)
}

func TestArgon2idVerify_UsesStoredParams(t *testing.T) {
	hash, err := NewArgon2idHasher(fastArgon2idParams()).Hash("s3cret")
	require.NoError(t, err)

	other := NewArgon2idHasher(Argon2idParams{Time: 2, MemoryKiB: 2048, Parallelism: 2, SaltLen: 8, KeyLen: 16})
	assert.True(t, other.Verify("s3cret", hash))
}

func TestDecodeArgon2idHash_Malformed(t *testing.T) {
	tests := []struct {
		name string
		hash string
		want error
	}{
		{name: "empty", hash: "", want: ErrMalformedHash},
		{name: "bcrypt hash", hash: "$2a$10$abcdefghijklmnopqrstuv", want: ErrMalformedHash},
		{name: "bad version", hash: "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$a2V5", want: ErrArgon2idVersion},
		{name: "bad params", hash: "$argon2id$v=19$m=x$c2FsdA$a2V5", want: ErrMalformedHash},
		{name: "bad salt", hash: "$argon2id$v=19$m=1024,t=1,p=1$!!$a2V5", want: ErrMalformedHash},
		{name: "empty key", hash: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$", want: ErrMalformedHash},
		{name: "zero time", hash: "$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$a2V5", want: ErrMalformedHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := decodeArgon2idHash(tt.hash)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
