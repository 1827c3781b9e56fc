/*
 * @module api/middleware/api_key_auth
 * @description API密钥鉴权中间件，校验管理接口请求携带的密钥
 * @architecture 中间件模式 - HTTP请求拦截和验证
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 提取密钥 -> 按前缀查库 -> bcrypt校验 -> 下一个处理器
 * @rules 密钥以bcrypt哈希存储；未启用鉴权（库中无密钥）时直接放行，便于本地开发
 * @dependencies gorm.io/gorm, golang.org/x/crypto/bcrypt
 * @refs api/routes.go, service/models
 */

package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"gorm.io/gorm"

	"migration-service/service/models"
	"migration-service/service/utils"
)

const apiKeyHeader = "X-Api-Key"

// 密钥前缀长度，用于先按前缀缩小比对范围
const keyPrefixLen = 8

// ApiKeyAuth API密钥鉴权中间件
type ApiKeyAuth struct {
	db     *gorm.DB
	crypto *utils.CryptoUtils
}

// NewApiKeyAuth 创建API密钥鉴权中间件
func NewApiKeyAuth(db *gorm.DB, crypto *utils.CryptoUtils) *ApiKeyAuth {
	return &ApiKeyAuth{db: db, crypto: crypto}
}

// Handler 鉴权处理器
func (a *ApiKeyAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var total int64
		if err := a.db.Model(&models.ApiKey{}).Where("is_active = ?", true).Count(&total).Error; err == nil && total == 0 {
			// 未配置任何密钥时视为鉴权未启用
			next.ServeHTTP(w, r)
			return
		}

		key := extractKey(r)
		if key == "" {
			unauthorized(w, r, "缺少API密钥")
			return
		}

		prefix := key
		if len(prefix) > keyPrefixLen {
			prefix = prefix[:keyPrefixLen]
		}

		var candidates []models.ApiKey
		if err := a.db.Where("key_prefix = ? AND is_active = ?", prefix, true).Find(&candidates).Error; err != nil {
			unauthorized(w, r, "密钥校验失败")
			return
		}

		for i := range candidates {
			if candidates[i].ExpiresAt != nil && candidates[i].ExpiresAt.Before(time.Now()) {
				continue
			}
			if a.crypto.VerifyApiKey(key, candidates[i].KeyHash) {
				next.ServeHTTP(w, r)
				return
			}
		}

		unauthorized(w, r, "API密钥无效或已过期")
	})
}

// extractKey 从请求头提取密钥，兼容 Authorization: Bearer 形式
func extractKey(r *http.Request) string {
	if key := r.Header.Get(apiKeyHeader); key != "" {
		return key
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, map[string]interface{}{
		"status": http.StatusUnauthorized,
		"msg":    msg,
	})
}
