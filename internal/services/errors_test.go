package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodesSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("update menu: %w", NewNotFoundError("menu item %d not found", 999))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.Equal(t, "NOT_FOUND: menu item 999 not found", errors.Unwrap(err).Error())
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("disk full")))
	assert.Equal(t, "INTERNAL", CodeOf(nil).String())
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("name is required")))
	assert.True(t, IsEmptyOrder(NewEmptyOrderError("no items in order")))
	assert.True(t, IsFormat(NewFormatError("invalid menu file format")))
	assert.Equal(t, "EMPTY_ORDER", CodeEmptyOrder.String())
	assert.Equal(t, "FORMAT", CodeFormat.String())
}
