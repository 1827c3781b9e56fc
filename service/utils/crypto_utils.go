/*
 * @module service/utils/crypto_utils
 * @description 加密工具，负责源库连接口令的静态加密和管理接口 API 密钥哈希
 * @architecture 工具层 - 无状态加密
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 明文 -> AES-CFB -> base64 密文 / 密文 -> 解密 -> 明文
 * @rules 口令只以密文落库；API 密钥只存 bcrypt 哈希，不可逆
 * @dependencies crypto/aes, golang.org/x/crypto/bcrypt
 * @refs service/models/migration.go, api/middleware
 */

package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"
)

// CryptoUtils 加密工具
type CryptoUtils struct {
	defaultKey []byte
}

// NewCryptoUtils 创建新的加密工具实例
func NewCryptoUtils(key string) *CryptoUtils {
	if key == "" {
		key = "migration-default-key-32-character"
	}

	// 通过SHA-256派生32字节密钥（AES-256）
	hasher := sha256.New()
	hasher.Write([]byte(key))

	return &CryptoUtils{
		defaultKey: hasher.Sum(nil),
	}
}

// EncryptCredential 加密连接口令
func (cu *CryptoUtils) EncryptCredential(plaintext string) (string, error) {
	block, err := aes.NewCipher(cu.defaultKey)
	if err != nil {
		return "", fmt.Errorf("创建AES块失败: %w", err)
	}

	// 生成随机IV
	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("生成IV失败: %w", err)
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	ciphertext := make([]byte, len(plaintext))
	stream.XORKeyStream(ciphertext, []byte(plaintext))

	// IV 与密文合并后编码
	return base64.StdEncoding.EncodeToString(append(iv, ciphertext...)), nil
}

// DecryptCredential 解密连接口令
func (cu *CryptoUtils) DecryptCredential(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("解码base64失败: %w", err)
	}
	if len(data) < aes.BlockSize {
		return "", fmt.Errorf("密文长度不足")
	}

	block, err := aes.NewCipher(cu.defaultKey)
	if err != nil {
		return "", fmt.Errorf("创建AES块失败: %w", err)
	}

	iv := data[:aes.BlockSize]
	stream := cipher.NewCFBDecrypter(block, iv)
	plaintext := make([]byte, len(data)-aes.BlockSize)
	stream.XORKeyStream(plaintext, data[aes.BlockSize:])

	return string(plaintext), nil
}

// HashApiKey 生成 API 密钥的 bcrypt 哈希
func (cu *CryptoUtils) HashApiKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("生成密钥哈希失败: %w", err)
	}
	return string(hash), nil
}

// VerifyApiKey 校验 API 密钥与哈希是否匹配
func (cu *CryptoUtils) VerifyApiKey(key, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
