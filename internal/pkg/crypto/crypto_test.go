package crypto

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syukri21/chat/internal/pkg/apperr"
)

func testKey() []byte {
	return bytes.Repeat([]byte("k"), KeySize)
}

func TestNewCipherRejectsWrongKeyLength(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 16, 24, 31, 33, 64} {
		_, err := NewCipher(bytes.Repeat([]byte("x"), n))
		assert.Error(t, err, "key length %d must be rejected", n)
	}

	_, err := NewCipher(testKey())
	assert.NoError(t, err)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := NewCipher(testKey())
	require.NoError(t, err)

	cases := []string{
		"",
		"hello, world",
		"d9428888-122b-11e1-b85c-61cd3cbb3210",
		strings.Repeat("long payload ", 100),
		"unicode: héllo wörld — 你好",
	}
	for _, plaintext := range cases {
		token, err := c.Encrypt(plaintext)
		require.NoError(t, err)

		got, err := c.Decrypt(token)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestNonceSegmentIsSixteenChars(t *testing.T) {
	t.Parallel()

	c, err := NewCipher(testKey())
	require.NoError(t, err)

	token, err := c.Encrypt("some-user-id")
	require.NoError(t, err)

	assert.Greater(t, len(token), 16)
	// URL-safe, unpadded output end to end.
	assert.NotContains(t, token, "=")
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
}

func TestEncryptNeverReusesNonce(t *testing.T) {
	t.Parallel()

	c, err := NewCipher(testKey())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := c.Encrypt("same plaintext")
		require.NoError(t, err)
		assert.False(t, seen[token], "opaque token repeated")
		seen[token] = true
	}
}

func TestDecryptDetectsTampering(t *testing.T) {
	t.Parallel()

	c, err := NewCipher(testKey())
	require.NoError(t, err)

	token, err := c.Encrypt("a8098c1a-f86e-11da-bd1a-00112444be1e")
	require.NoError(t, err)

	// Flip one character at every position; decryption must always fail.
	// Strict decoding also rejects flips in the final character, whose low
	// bits a lenient decoder would ignore.
	for i := 0; i < len(token); i++ {
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == token {
			continue
		}
		got, err := c.Decrypt(string(mutated))
		assert.Error(t, err, "tampered byte %d accepted", i)
		assert.Empty(t, got)
	}
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	c, err := NewCipher(testKey())
	require.NoError(t, err)

	token, err := c.Encrypt("payload")
	require.NoError(t, err)

	cases := []string{
		"",
		"short",
		token[:16],      // nonce only
		token[:len(token)-4], // truncated ciphertext
		"!!!!invalid-base64!!!!" + token[22:],
	}
	for _, in := range cases {
		_, err := c.Decrypt(in)
		require.Error(t, err, "input %q accepted", in)
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	}
}

func TestDifferentKeysCannotDecrypt(t *testing.T) {
	t.Parallel()

	c1, err := NewCipher(testKey())
	require.NoError(t, err)
	c2, err := NewCipher(bytes.Repeat([]byte("z"), KeySize))
	require.NoError(t, err)

	token, err := c1.Encrypt("secret")
	require.NoError(t, err)

	_, err = c2.Decrypt(token)
	assert.Error(t, err)
}
