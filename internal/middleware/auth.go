package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/response"
)

// Context keys set by the middleware chain.
const (
	ContextUserID = "user_id"
	ContextUser   = "user"
	ContextThread = "thread"
)

type AuthMiddleware struct {
	userRepo repository.UserRepository
	secret   string
}

func NewAuthMiddleware(userRepo repository.UserRepository, secret string) *AuthMiddleware {
	return &AuthMiddleware{userRepo: userRepo, secret: secret}
}

// RequireAuth validates the bearer token and stores the user ID in the
// context. A "token" query parameter is accepted as a fallback so websocket
// clients can authenticate.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			response.Error(c, apperror.New(apperror.CodeUnauthorized))
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, apperror.New(apperror.CodeUnauthorized))
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || claims.Subject == "" {
			response.Error(c, apperror.New(apperror.CodeUnauthorized))
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Next()
	}
}

// RequireAdmin loads the authenticated user and rejects non-admins. The
// loaded user is stored under ContextUser for handlers that need it.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := response.GetUserID(c)
		if err != nil {
			response.Error(c, err)
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, apperror.New(apperror.CodeUnauthorized))
				return
			}
			response.Error(c, apperror.Wrap(apperror.CodeInternal, err))
			return
		}

		if !user.IsAdmin() {
			response.Error(c, apperror.New(apperror.CodeAdminRequired))
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// IsAdmin reports whether the authenticated user has the admin role. Used
// by handlers whose routes are open to both members and admins.
func (m *AuthMiddleware) IsAdmin(c *gin.Context) bool {
	userID, err := response.GetUserID(c)
	if err != nil {
		return false
	}
	user, err := m.userRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return user.IsAdmin()
}
