package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGormConfigTranslatesDriverErrors(t *testing.T) {
	cfg := gormConfig()

	// Duplicate inserts must surface as gorm.ErrDuplicatedKey so the
	// assignment service can map unique violations to a conflict.
	assert.True(t, cfg.TranslateError)
}

func TestGormConfigPoolSafety(t *testing.T) {
	cfg := gormConfig()

	assert.False(t, cfg.AllowGlobalUpdate)
	assert.True(t, cfg.PrepareStmt)
}
