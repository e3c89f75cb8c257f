package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
)

// principalClaims are the JWT claims the authorization collaborator issues:
// the role, the bound company for enterprise principals, and the assigned
// company scope for town reviewers.
type principalClaims struct {
	jwt.RegisteredClaims
	Role      string   `json:"role"`
	CompanyID string   `json:"cid,omitempty"`
	Companies []string `json:"companies,omitempty"`
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and places the resulting domain.Authorization into the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &principalClaims{}, func(token *jwt.Token) (interface{}, error) {
			// Check the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*principalClaims)
		if !ok || !token.Valid || claims.Subject == "" {
			logger.Error("Token valid but claims malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		auth, err := buildAuthorization(claims)
		if err != nil {
			logger.Warn("Token carries an unusable principal", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		enrichedLogger := logger.With(
			slog.String("user_id", auth.UserID),
			slog.String("role", string(auth.Role)),
		)
		ctx := context.WithValue(c.Request.Context(), authCtxKey, auth)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// buildAuthorization turns validated claims into the capability checked at
// each service entry point.
func buildAuthorization(claims *principalClaims) (domain.Authorization, error) {
	auth := domain.Authorization{UserID: claims.Subject}
	switch domain.Role(claims.Role) {
	case domain.RoleEnterprise:
		if claims.CompanyID == "" {
			return domain.Authorization{}, errors.New("enterprise token missing bound company")
		}
		auth.Role = domain.RoleEnterprise
		auth.CompanyID = claims.CompanyID
	case domain.RoleTownReviewer:
		auth.Role = domain.RoleTownReviewer
		auth.Scope = domain.ReviewerScope{Companies: make(map[string]struct{}, len(claims.Companies))}
		for _, id := range claims.Companies {
			auth.Scope.Companies[id] = struct{}{}
		}
	case domain.RoleSuperAdmin:
		auth.Role = domain.RoleSuperAdmin
		auth.Scope = domain.ReviewerScope{All: true}
	default:
		return domain.Authorization{}, errors.New("unknown role " + claims.Role)
	}
	return auth, nil
}
