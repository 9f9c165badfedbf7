package middleware

import (
	"net/http"
	"strings"

	"fadu-store/internal/service"
	"fadu-store/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys for user info
const (
	CtxUserID    = "user_id"
	CtxUserRole  = "user_role"
	CtxUserEmail = "user_email"
)

// AuthRequired проверяет Bearer JWT (HS256) и кладёт user_id/role/email в
// контекст. Сессии и выдача токенов — забота внешнего auth-сервиса.
func AuthRequired(secret string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("missing Authorization header"))
			return
		}
		token, ok := ExtractBearerToken(authz)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid Authorization header"))
			return
		}

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !parsed.Valid {
			if err != nil {
				log.Warn("token verification failed", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token"))
			return
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token claims"))
			return
		}

		uidStr, _ := claims["user_id"].(string)
		uid, err := uuid.Parse(uidStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid user id in token"))
			return
		}
		role, _ := claims["role"].(string)
		email, _ := claims["email"].(string)

		c.Set(CtxUserID, uid)
		c.Set(CtxUserRole, role)
		c.Set(CtxUserEmail, email)
		c.Next()
	}
}

// AdminRequired — поверх AuthRequired, пускает только role=admin.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(CtxUserRole)
		if role != string(service.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewForbiddenError("admin role required"))
			return
		}
		c.Next()
	}
}

func ExtractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.TrimSpace(parts[1])
	t = strings.Trim(t, " \"'")
	if i := strings.IndexRune(t, ','); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.Trim(t, " \"'")
	if i := strings.IndexByte(t, ' '); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.Trim(t, " \"'")
	return t, true
}
