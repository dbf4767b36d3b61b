package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"skill_insight_backend/internal/config"
	"skill_insight_backend/internal/model"
	"skill_insight_backend/internal/util"
)

// AuthMiddleware 校验 Bearer JWT；WebSocket 升级请求允许用 ?token= 传递
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("account", claims)
		c.Next()
	}
}

// RoleMiddleware 角色门禁；管理员账号对所有角色直接放行
func RoleMiddleware(roles ...model.AccountRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := util.GetAccountFromContext(c)
		if account == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if account.Role == model.RoleAdmin {
				hasRole = true
				break
			}
			if account.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type AccountActivityRepo interface {
	UpdateLastUsed(accountID uint) error
}

// ActivityMiddleware 记录服务账号最近一次调用时间
func ActivityMiddleware(repo AccountActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetAccountFromContext(c)
		if claims != nil {
			// 异步更新，不阻塞主流程
			go repo.UpdateLastUsed(claims.AccountID)
		}
		c.Next()
	}
}
