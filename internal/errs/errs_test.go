package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Is(t *testing.T) {
	wrapped := fmt.Errorf("create article: %w", &ValidationError{Field: "slug", Reason: "has already been taken"})

	assert.ErrorIs(t, wrapped, ErrDuplicateSlug)
	assert.NotErrorIs(t, wrapped, ErrDuplicateUsername)
	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsValidation(ErrForbidden))
	assert.False(t, IsValidation(errors.New("boom")))
}

func TestBlank(t *testing.T) {
	err := Blank("title")
	assert.Equal(t, "title can't be blank", err.Error())
	assert.ErrorIs(t, err, Blank("title"))
	assert.NotErrorIs(t, err, Blank("body"))
}
