package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, New(CodeThreadNotFound).Status())
	assert.Equal(t, http.StatusConflict, New(CodeUsernameTaken).Status())
	assert.Equal(t, http.StatusTooManyRequests, New(CodeRateLimitExceeded).Status())
	assert.Equal(t, http.StatusInternalServerError, New(Code("UNKNOWN")).Status())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeInternal, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "connection refused", err.Error())
	// the client-facing message never contains the cause
	assert.NotContains(t, err.Message, "connection refused")
}

func TestIsMatchesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeCategoryNotFound))
	assert.True(t, Is(err, CodeCategoryNotFound))
	assert.False(t, Is(err, CodeThreadNotFound))
	assert.False(t, Is(errors.New("plain"), CodeCategoryNotFound))
}
