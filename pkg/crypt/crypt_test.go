package crypt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velora-shop/velora/pkg/crypt"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc, err := crypt.Encrypt("hello world")
	require.NoError(t, err)
	require.NotEmpty(t, enc)
	assert.NotEqual(t, "hello world", enc)

	plain, err := crypt.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "hello world", plain)
}

func TestEncryptIsNondeterministic(t *testing.T) {
	a, err := crypt.Encrypt("same input")
	require.NoError(t, err)
	b, err := crypt.Encrypt("same input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptRejectsTampering(t *testing.T) {
	enc, err := crypt.Encrypt("sensitive")
	require.NoError(t, err)

	tampered := []byte(enc)
	if tampered[0] == 'A' {
		tampered[0] = 'B'
	} else {
		tampered[0] = 'A'
	}
	_, err = crypt.Decrypt(string(tampered))
	assert.ErrorIs(t, err, crypt.ErrDecrypt)

	_, err = crypt.Decrypt("not base64 at all!!!")
	assert.ErrorIs(t, err, crypt.ErrDecrypt)
}

func TestJSONHelpers(t *testing.T) {
	type claim struct {
		UserID uint  `json:"uid"`
		Exp    int64 `json:"exp"`
	}

	enc, err := crypt.EncryptJSON(claim{UserID: 42, Exp: 1234567890})
	require.NoError(t, err)

	var out claim
	require.NoError(t, crypt.DecryptJSON(enc, &out))
	assert.Equal(t, uint(42), out.UserID)
	assert.Equal(t, int64(1234567890), out.Exp)
}
