package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/studyboss/study-service/internal/auth"
)

const principalContextKey = "principal"

// RequireAuth validates the Bearer token and stores the resulting principal
// in the request context. Requests without a valid token get a 401.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing authorization header",
				Code:    "UNAUTHORIZED",
			})
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authorization header must be a Bearer token",
				Code:    "UNAUTHORIZED",
			})
			return
		}

		principal, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired token",
				Code:    "UNAUTHORIZED",
			})
			return
		}

		c.Set(principalContextKey, principal)
		c.Next()
	}
}

// RequireAdmin rejects authenticated requests whose principal lacks the
// admin claim. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Admin access required",
				Code:    "FORBIDDEN",
			})
			return
		}
		c.Next()
	}
}

// PrincipalFromContext extracts the authenticated principal set by RequireAuth.
func PrincipalFromContext(c *gin.Context) (*auth.Principal, bool) {
	value, exists := c.Get(principalContextKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*auth.Principal)
	return principal, ok
}
