package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"assignflow/backend/pkg/response"
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

// MustGetTokenJTI 从 Gin 上下文中安全提取 token_jti。
func MustGetTokenJTI(c *gin.Context) (string, bool) {
	v, exists := c.Get("token_jti")
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

// MustGetTokenExp 从 Gin 上下文中安全提取 token_exp。
func MustGetTokenExp(c *gin.Context) (time.Time, bool) {
	v, exists := c.Get("token_exp")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return time.Time{}, false
	}
	return t, true
}
