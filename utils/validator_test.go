package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Email  string `validate:"required,email"`
		Status string `validate:"omitempty,oneof=pending completed"`
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(payload{Email: "jane@example.com"}))
	})

	t.Run("missing required", func(t *testing.T) {
		err := ValidateStruct(payload{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "email is required")
	})

	t.Run("bad enum value", func(t *testing.T) {
		err := ValidateStruct(payload{Email: "jane@example.com", Status: "archived"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "status must be one of")
	})
}
