package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/repstack/repstack/internal/domain"
	"github.com/repstack/repstack/pkg/result"
)

// Claims represents the JWT claims issued by the upstream identity provider
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

const contextIdentity = "identity"

// JWTAuth validates the bearer token and stores the caller's identity in the
// request context. Token issuance happens upstream; this middleware is the
// authenticated-identity accessor only.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "missing or malformed authorization header")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			abortUnauthorized(c, "invalid token claims")
			return
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "invalid token claims")
			return
		}

		role := claims.Role
		if role == "" {
			role = domain.RoleMember
		}
		c.Set(contextIdentity, domain.Identity{UserID: userID, Role: role})
		c.Next()
	}
}

// CurrentIdentity returns the authenticated caller stored by JWTAuth. The
// zero Identity is returned on unauthenticated routes.
func CurrentIdentity(c *gin.Context) domain.Identity {
	if v, ok := c.Get(contextIdentity); ok {
		if id, ok := v.(domain.Identity); ok {
			return id
		}
	}
	return domain.Identity{}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"errors": []result.Error{result.Unauthorized(msg)},
	})
}
