package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/middleware"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/response"
	"parastaran.ir/nursesforum/pkg/validator"
)

// bindingError writes the 400 body for a failed JSON/query bind, with the
// field errors flattened into one localized message.
func bindingError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
}

// isAdmin resolves the authenticated user's role, caching the loaded user in
// the context so a handler and its policies share one lookup.
func isAdmin(c *gin.Context, users repository.UserRepository) bool {
	if cached, ok := c.Get(middleware.ContextUser); ok {
		if user, ok := cached.(*entity.User); ok {
			return user.IsAdmin()
		}
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		return false
	}

	user, err := users.FindByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}

	c.Set(middleware.ContextUser, user)
	return user.IsAdmin()
}
