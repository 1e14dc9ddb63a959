package main

import (
	"testing"

	"marketplace-be/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		opts, err := parseFlags(nil)
		require.NoError(t, err)
		assert.Equal(t, db.MigrateUp, opts.mode)
		assert.Zero(t, opts.steps)
	})

	t.Run("DownWithSteps", func(t *testing.T) {
		opts, err := parseFlags([]string{"-mode", "down", "-steps", "2"})
		require.NoError(t, err)
		assert.Equal(t, db.MigrateDown, opts.mode)
		assert.Equal(t, 2, opts.steps)
	})

	t.Run("UnknownMode", func(t *testing.T) {
		_, err := parseFlags([]string{"-mode", "sideways"})
		assert.ErrorIs(t, err, db.ErrUnknownMigrateMode)
	})

	t.Run("NegativeSteps", func(t *testing.T) {
		_, err := parseFlags([]string{"-steps", "-1"})
		assert.ErrorContains(t, err, "steps must be >= 0")
	})

	t.Run("BadFlag", func(t *testing.T) {
		_, err := parseFlags([]string{"-force"})
		assert.Error(t, err)
	})
}
