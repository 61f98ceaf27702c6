package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A low work factor keeps the suite fast; the format does not depend on it.
const testIterations = 1000

func TestPasswordHasher_HashFormat(t *testing.T) {
	h := NewPasswordHasher(testIterations)

	stored, err := h.Hash("secret1")
	require.NoError(t, err)

	salt, digest, ok := strings.Cut(stored, ":")
	require.True(t, ok)
	assert.Len(t, salt, 32)
	assert.Len(t, digest, 64)
	assert.NotContains(t, stored, "secret1")
}

func TestPasswordHasher_VerifyRoundTrip(t *testing.T) {
	h := NewPasswordHasher(testIterations)

	passwords := []string{"secret1", "p@ssw0rd!@#$%^&*()", "", "with:colon", "пароль"}
	for _, p := range passwords {
		t.Run(p, func(t *testing.T) {
			stored, err := h.Hash(p)
			require.NoError(t, err)
			assert.True(t, h.Verify(p, stored))
		})
	}
}

func TestPasswordHasher_RejectsOtherPassword(t *testing.T) {
	h := NewPasswordHasher(testIterations)

	stored, err := h.Hash("correct_password")
	require.NoError(t, err)

	assert.False(t, h.Verify("wrong_password", stored))
	assert.False(t, h.Verify("", stored))
	assert.False(t, h.Verify("correct_password ", stored))
}

func TestPasswordHasher_SaltIsRandom(t *testing.T) {
	h := NewPasswordHasher(testIterations)

	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same", first))
	assert.True(t, h.Verify("same", second))
}

func TestPasswordHasher_MalformedStoredHash(t *testing.T) {
	h := NewPasswordHasher(testIterations)

	tests := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"no separator", "deadbeef"},
		{"empty salt", ":abcdef"},
		{"empty digest", "abcdef:"},
		{"too many parts", "a:b:c"},
		{"bcrypt hash", "$2a$10$abcdefghijklmnopqrstuv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, h.Verify("anything", tt.stored))
			})
		})
	}
}

func TestPasswordHasher_IterationsAffectDigest(t *testing.T) {
	stored, err := NewPasswordHasher(testIterations).Hash("secret1")
	require.NoError(t, err)

	assert.False(t, NewPasswordHasher(testIterations+1).Verify("secret1", stored))
}

func TestPasswordHasher_KnownVector(t *testing.T) {
	h := NewPasswordHasher(testIterations)
	stored := "00112233445566778899aabbccddeeff:a8cf06f9df28b456af00eb9fcc11693a21763672ec67dba0e23216ce06a0f02a"

	assert.True(t, h.Verify("secret1", stored))
	assert.False(t, h.Verify("secret2", stored))
}

func TestNewPasswordHasher_DefaultsIterations(t *testing.T) {
	assert.Equal(t, DefaultPBKDF2Iterations, NewPasswordHasher(0).iterations)
}
