package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "/tmp/calllog.sqlite"},
		Fetch:    FetchConfig{Limit: 50},
		Logger:   LoggerConfig{Level: "info", File: "/tmp/calleditor.log"},
		Daemon:   DaemonConfig{Socket: "/tmp/calleditor.sock"},
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calleditor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyDatabasePath(t *testing.T) {
	c := validConfig()
	c.Database.Path = ""
	assert.Error(t, c.Validate())
}

func TestValidate_LimitOutOfRange(t *testing.T) {
	c := validConfig()
	c.Fetch.Limit = 0
	assert.Error(t, c.Validate())

	c.Fetch.Limit = 501
	assert.Error(t, c.Validate())
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	assert.Error(t, c.Validate())
}

func TestValidate_BadLocation(t *testing.T) {
	c := validConfig()
	c.Location = "Mars/Olympus_Mons"
	assert.Error(t, c.Validate())
}

func TestTimeLocation(t *testing.T) {
	c := validConfig()
	loc, err := c.TimeLocation()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	c.Location = "UTC"
	loc, err = c.TimeLocation()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /var/lib/calleditor/calls.sqlite
fetch:
  limit: 20
logger:
  level: debug
daemon:
  socket: /run/calleditor.sock
  remote: true
location: UTC
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, conf.Path)
	assert.Equal(t, "/var/lib/calleditor/calls.sqlite", conf.Database.Path)
	assert.Equal(t, 20, conf.Fetch.Limit)
	assert.Equal(t, "debug", conf.Logger.Level)
	assert.Equal(t, "/run/calleditor.sock", conf.Daemon.Socket)
	assert.True(t, conf.Daemon.Remote)
	assert.Equal(t, "UTC", conf.Location)
}

func TestLoad_DefaultsExpandHome(t *testing.T) {
	path := writeConfig(t, "logger:\n  level: warn\n")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50, conf.Fetch.Limit)
	assert.True(t, filepath.IsAbs(conf.Database.Path), conf.Database.Path)
	assert.Equal(t, "calllog.sqlite", filepath.Base(conf.Database.Path))
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "fetch:\n  limit: 20\n")
	t.Setenv("CALLEDITOR_FETCH_LIMIT", "7")

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, conf.Fetch.Limit)
}

func TestLoad_InvalidFileRejected(t *testing.T) {
	path := writeConfig(t, "fetch:\n  limit: 0\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
