package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("08:00"), cfg.Policy.OpeningStart)
	assert.Equal(t, types.TimeString("18:00"), cfg.Policy.OpeningEnd)
	assert.Equal(t, 60, cfg.Policy.LockThresholdMinutes)
	assert.True(t, cfg.Policy.RetainCancelled)
	assert.False(t, cfg.Policy.LockRescheduledStart)
	assert.Equal(t, "X-User", cfg.Auth.UserHeader)
	assert.Len(t, cfg.Resources, 6)
}

func TestLoad_OverridesAndCatalog(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "memory"

[policy]
opening_start = "07:30"
opening_end = "20:00"
lock_threshold_minutes = 15
location = "UTC"

[auth]
admins = ["alice"]

[[resources]]
id = "van1"
name = "Van"
category = "Vervoer"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, types.TimeString("07:30"), cfg.Policy.OpeningStart)
	assert.Equal(t, 15, cfg.Policy.LockThresholdMinutes)
	assert.Equal(t, []string{"alice"}, cfg.Auth.Admins)
	require.Len(t, cfg.Resources, 1)
	assert.Equal(t, ResourceConfig{ID: "van1", Name: "Van", Category: "Vervoer"}, cfg.Resources[0])

	loc, err := cfg.Policy.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "[database]\ndriver = \"oracle\"\n"},
		{"sqlite in-memory path", "[database]\ndriver = \"sqlite\"\npath = \":memory:\"\n"},
		{"inverted opening hours", "[policy]\nopening_start = \"18:00\"\nopening_end = \"08:00\"\n"},
		{"malformed opening time", "[policy]\nopening_start = \"8am\"\n"},
		{"negative lock threshold", "[policy]\nlock_threshold_minutes = -1\n"},
		{"unknown location", "[policy]\nlocation = \"Mars/Olympus\"\n"},
		{"events without brokers", "[events]\nenabled = true\n"},
		{"duplicate resource", "[[resources]]\nid = \"a\"\n[[resources]]\nid = \"a\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_BrokenTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\nhttp_port = 1"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	pg := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: 5432, User: "app", Password: "secret", DBName: "reservations", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:secret@db:5432/reservations?sslmode=disable", pg.DSN())
	assert.Equal(t, "postgres", pg.SQLDriverName())

	lite := DatabaseConfig{Driver: DriverSQLite, Path: "data.db"}
	assert.Contains(t, lite.DSN(), "file:data.db?")
	assert.Contains(t, lite.DSN(), "_txlock=immediate")
	assert.Equal(t, "sqlite3", lite.SQLDriverName())
}
