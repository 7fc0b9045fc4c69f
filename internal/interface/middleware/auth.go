package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user-access-service/internal/domain/entity"
	"user-access-service/internal/principal"
	"user-access-service/pkg/helpers"
	"user-access-service/pkg/response"
)

// RequireAdmin validates the bearer token from the Authorization header and
// only lets administrators through. On success the token subject becomes the
// acting principal for downstream audit stamping.
func RequireAdmin(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response.Fail[any](response.KindBadRequest, "missing bearer token"))
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response.Fail[any](response.KindBadRequest, "invalid bearer token"))
			return
		}
		if claims.Role != entity.RoleAdmin.String() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				response.Fail[any](response.KindBadRequest, "administrator role required"))
			return
		}

		c.Set("username", claims.Username)
		ctx := principal.WithName(c.Request.Context(), claims.Username)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
