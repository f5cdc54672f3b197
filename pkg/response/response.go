package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/pkg/apperror"
)

// Pagination is the envelope attached to every paginated list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes totalPages as ceil(total/limit). Page and limit
// fall back to the same defaults the query layer applies, so the envelope
// always reflects the values the query actually ran with.
func NewPagination(page, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// OK writes {success:true, data?, message?}.
func OK(c *gin.Context, data any, message string) {
	write(c, http.StatusOK, data, message)
}

// Created writes a 201 with {success:true, data?, message?}.
func Created(c *gin.Context, data any, message string) {
	write(c, http.StatusCreated, data, message)
}

// Paginated writes {success:true, data, pagination}.
func Paginated(c *gin.Context, data any, pagination Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       data,
		"pagination": pagination,
	})
}

func write(c *gin.Context, status int, data any, message string) {
	body := gin.H{"success": true}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// Error writes the standardized {error: <localized message>} body. Known
// application errors keep their mapped status and message; anything else is
// logged and converted to a generic internal error so raw detail never
// reaches the client.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.Wrap(apperror.CodeInternal, err)
	}

	if appErr.Status() == http.StatusInternalServerError {
		log.Printf("[internal error] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	c.AbortWithStatusJSON(appErr.Status(), gin.H{"error": appErr.Message})
}

// GetUserID retrieves the authenticated user ID stored by the auth middleware.
func GetUserID(c *gin.Context) (string, error) {
	value, exists := c.Get("user_id")
	if !exists {
		return "", apperror.New(apperror.CodeUnauthorized)
	}

	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", apperror.New(apperror.CodeUnauthorized)
	}

	return userID, nil
}
