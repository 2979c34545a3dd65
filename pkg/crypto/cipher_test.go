package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipherRoundTrip(t *testing.T) {
	c := NewCipher("s3cret")

	sealed, err := c.Encrypt("ya29.access-token")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, "enc:"))
	assert.NotContains(t, sealed, "ya29")

	plain, err := c.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "ya29.access-token", plain)
}

func TestCipherNonceDiffers(t *testing.T) {
	c := NewCipher("s3cret")

	a, err := c.Encrypt("same")
	require.NoError(t, err)
	b, err := c.Encrypt("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNilCipherPassesThrough(t *testing.T) {
	c := NewCipher("")
	assert.Nil(t, c)

	v, err := c.Encrypt("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", v)

	v, err = c.Decrypt("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", v)
}

func TestDecryptLegacyPlainValue(t *testing.T) {
	v, err := NewCipher("k").Decrypt("stored-before-key")
	require.NoError(t, err)
	assert.Equal(t, "stored-before-key", v)
}

func TestDecryptWrongKey(t *testing.T) {
	sealed, err := NewCipher("one").Encrypt("token")
	require.NoError(t, err)

	_, err = NewCipher("two").Decrypt(sealed)
	assert.Error(t, err)

	_, err = NewCipher("two").Decrypt("enc:!!!")
	assert.ErrorIs(t, err, ErrMalformed)
}
