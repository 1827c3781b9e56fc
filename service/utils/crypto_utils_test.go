/*
 * @module service/utils/crypto_utils_test
 * @description 加密工具单元测试
 * @architecture 测试层
 */

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptCredential(t *testing.T) {
	crypto := NewCryptoUtils("test-key")

	ciphertext, err := crypto.EncryptCredential("geheim123")
	require.NoError(t, err)
	assert.NotEqual(t, "geheim123", ciphertext)

	plaintext, err := crypto.DecryptCredential(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "geheim123", plaintext)
}

func TestEncryptCredential_RandomIV(t *testing.T) {
	crypto := NewCryptoUtils("test-key")

	first, err := crypto.EncryptCredential("geheim123")
	require.NoError(t, err)
	second, err := crypto.EncryptCredential("geheim123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "随机IV保证相同明文密文不同")
}

func TestDecryptCredential_WrongKey(t *testing.T) {
	ciphertext, err := NewCryptoUtils("key-a").EncryptCredential("geheim123")
	require.NoError(t, err)

	plaintext, err := NewCryptoUtils("key-b").DecryptCredential(ciphertext)
	require.NoError(t, err)
	assert.NotEqual(t, "geheim123", plaintext, "不同密钥不应还原出明文")
}

func TestDecryptCredential_Invalid(t *testing.T) {
	crypto := NewCryptoUtils("test-key")

	_, err := crypto.DecryptCredential("not-base64!!!")
	assert.Error(t, err)

	_, err = crypto.DecryptCredential("c2hvcnQ=")
	assert.Error(t, err, "短于IV长度的密文应报错")
}

func TestApiKeyHashVerify(t *testing.T) {
	crypto := NewCryptoUtils("")

	hash, err := crypto.HashApiKey("mk_live_abcdef123456")
	require.NoError(t, err)

	assert.True(t, crypto.VerifyApiKey("mk_live_abcdef123456", hash))
	assert.False(t, crypto.VerifyApiKey("mk_live_wrong", hash))
}
