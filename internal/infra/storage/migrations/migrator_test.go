package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(embedMigrations, "*.sql")
	require.NoError(t, err)
	require.Len(t, files, 3)

	for _, name := range files {
		body, err := fs.ReadFile(embedMigrations, name)
		require.NoError(t, err)

		content := string(body)
		assert.True(t, strings.Contains(content, "-- +goose Up"), name)
		assert.True(t, strings.Contains(content, "-- +goose Down"), name)
	}
}

func TestEmbeddedMigrations_Tables(t *testing.T) {
	var all strings.Builder
	files, _ := fs.Glob(embedMigrations, "*.sql")
	for _, name := range files {
		body, _ := fs.ReadFile(embedMigrations, name)
		all.Write(body)
	}

	for _, table := range []string{"provider_availability", "appointment_slots", "availability_templates"} {
		assert.Contains(t, all.String(), "CREATE TABLE IF NOT EXISTS "+table)
	}
}
