package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-marketplace-api/pkg/config"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	out := &bytes.Buffer{}
	app := NewApp()
	app.out = out
	app.loadConfig = func() (*config.Config, error) {
		return &config.Config{
			Env:      config.EnvDevelopment,
			Log:      config.LogConfig{Level: "error", Format: "json"},
			Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: "file::memory:"},
		}, nil
	}
	return app, out
}

func TestVersionCommand(t *testing.T) {
	app, out := newTestApp(t)
	app.root.SetArgs([]string{"version"})

	require.NoError(t, app.Execute(context.Background()))
	assert.Equal(t, "tutor-api dev (commit: none)\n", out.String())
}

func TestMigrateUp(t *testing.T) {
	app, out := newTestApp(t)
	app.root.SetArgs([]string{"migrate", "up"})

	require.NoError(t, app.Execute(context.Background()))
	assert.Contains(t, out.String(), "schema at version 2")
}

func TestMigrateStatusOnFreshDatabase(t *testing.T) {
	app, out := newTestApp(t)
	app.root.SetArgs([]string{"migrate", "status"})

	require.NoError(t, app.Execute(context.Background()))
	assert.Contains(t, out.String(), "VERSION")
	assert.Contains(t, out.String(), "pending")
	assert.NotContains(t, out.String(), "applied")
	assert.Contains(t, out.String(), "00001_create_classes.sql")
}

func TestUnknownDriverFails(t *testing.T) {
	app, _ := newTestApp(t)
	app.loadConfig = func() (*config.Config, error) {
		return &config.Config{Database: config.DatabaseConfig{Driver: "oracle"}}, nil
	}
	app.root.SetArgs([]string{"migrate", "up"})

	assert.Error(t, app.Execute(context.Background()))
}
