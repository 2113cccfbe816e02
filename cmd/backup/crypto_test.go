package main

import (
	"bytes"
	"crypto/aes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundtrip(t *testing.T) {
	key := encryptionKey("correct horse battery staple")
	plaintext := []byte("-- PostgreSQL database dump\nCREATE TABLE orders (id bigserial);\n")

	encrypted, err := encryptCBC(key, plaintext)
	require.NoError(t, err)
	assert.NotContains(t, string(encrypted), "CREATE TABLE")

	decrypted, err := decryptCBC(key, encrypted)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptProducesFreshIV(t *testing.T) {
	key := encryptionKey("passphrase")
	plaintext := []byte("same input")

	a, err := encryptCBC(key, plaintext)
	require.NoError(t, err)
	b, err := encryptCBC(key, plaintext)
	require.NoError(t, err)

	assert.False(t, bytes.Equal(a, b), "two encryptions of the same input must differ")
}

func TestDecryptWrongKey(t *testing.T) {
	encrypted, err := encryptCBC(encryptionKey("key-a"), []byte("secret dump"))
	require.NoError(t, err)

	decrypted, err := decryptCBC(encryptionKey("key-b"), encrypted)
	if err == nil {
		assert.NotEqual(t, []byte("secret dump"), decrypted)
	}
}

func TestDecryptRejectsTruncatedInput(t *testing.T) {
	key := encryptionKey("passphrase")

	_, err := decryptCBC(key, []byte("short"))
	assert.Error(t, err)

	_, err = decryptCBC(key, make([]byte, aes.BlockSize+3))
	assert.Error(t, err)
}

func TestEncryptEmptyPlaintext(t *testing.T) {
	key := encryptionKey("passphrase")

	encrypted, err := encryptCBC(key, nil)
	require.NoError(t, err)

	decrypted, err := decryptCBC(key, encrypted)
	require.NoError(t, err)
	assert.Empty(t, decrypted)
}

func TestPkcs7PadUnpad(t *testing.T) {
	for _, size := range []int{0, 1, 15, 16, 17, 31, 32} {
		data := bytes.Repeat([]byte{0xAB}, size)

		padded := pkcs7Pad(data, aes.BlockSize)
		assert.Equal(t, 0, len(padded)%aes.BlockSize, "size %d", size)
		assert.Greater(t, len(padded), size, "padding always adds at least one byte")

		unpadded, err := pkcs7Unpad(padded, aes.BlockSize)
		require.NoError(t, err, "size %d", size)
		assert.Equal(t, data, unpadded, "size %d", size)
	}
}

func TestPkcs7UnpadRejectsGarbage(t *testing.T) {
	_, err := pkcs7Unpad(nil, aes.BlockSize)
	assert.Error(t, err)

	bad := bytes.Repeat([]byte{0x00}, aes.BlockSize)
	_, err = pkcs7Unpad(bad, aes.BlockSize)
	assert.Error(t, err, "zero padding byte is invalid")

	inconsistent := append(bytes.Repeat([]byte{0xAB}, 13), 0x02, 0x03, 0x03)
	_, err = pkcs7Unpad(inconsistent, aes.BlockSize)
	assert.Error(t, err)
}

func TestChecksumHex(t *testing.T) {
	// SHA-256 of the empty string.
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		checksumHex(nil))

	assert.Len(t, checksumHex([]byte("data")), 64)
	assert.NotEqual(t, checksumHex([]byte("a")), checksumHex([]byte("b")))
}

func TestEncryptionKeyDeterministic(t *testing.T) {
	assert.Equal(t, encryptionKey("pass"), encryptionKey("pass"))
	assert.NotEqual(t, encryptionKey("pass"), encryptionKey("pass2"))
}
