package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"progress-hub/backend/internal/service"
	"progress-hub/backend/pkg/response"
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

// MustGetCaller 同时提取 user_id 与 role
func MustGetCaller(c *gin.Context) (userID, role string, ok bool) {
	if userID, ok = MustGetUserID(c); !ok {
		return "", "", false
	}
	if role, ok = MustGetRole(c); !ok {
		return "", "", false
	}
	return userID, role, true
}

// getTokenMeta 读取当前 Access Token 的 jti 与过期时间
func getTokenMeta(c *gin.Context) (string, time.Time) {
	jti := c.GetString("token_jti")
	exp, _ := c.Get("token_exp")
	expiresAt, _ := exp.(time.Time)
	return jti, expiresAt
}

// resolveTargetUser 解析查询参数 user_id 指定的目标用户。
// 缺省时为调用方本人；member 只能查询自己，admin 与 trainer 可查询任意用户。
func resolveTargetUser(c *gin.Context) (string, bool) {
	callerID, role, ok := MustGetCaller(c)
	if !ok {
		return "", false
	}

	target := c.Query("user_id")
	if target == "" || target == callerID {
		return callerID, true
	}
	if role == service.RoleMember {
		response.Forbidden(c, 10003, "无权查看其他用户的数据")
		return "", false
	}
	return target, true
}
