package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateErr(t *testing.T) {
	assert.True(t, isDuplicateErr(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateErr(errors.New("UNIQUE constraint failed: profiles.email")))
	assert.True(t, isDuplicateErr(errors.New(`duplicate key value violates unique constraint "uni_profiles_email"`)))
	assert.False(t, isDuplicateErr(errors.New("connection refused")))
	assert.False(t, isDuplicateErr(gorm.ErrRecordNotFound))
}
