package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", NotFound("user not found"))

	assert.True(t, HasCode(wrapped, http.StatusNotFound))
	assert.False(t, HasCode(wrapped, http.StatusConflict))
	assert.False(t, HasCode(errors.New("plain"), http.StatusNotFound))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, "Internal Server Error", err.Error())
	assert.ErrorIs(t, err, cause)
}
