package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfigFile("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, 4, cfg.MaxConns)
	assert.Empty(t, cfg.Database)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pgmodel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
host: db.internal
port: 5433
database: appdb
user: app
`), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "appdb", cfg.Database)
	assert.Equal(t, "app", cfg.User)
	// Unset keys keep their defaults.
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, 4, cfg.MaxConns)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pgmodel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: db.internal\ndatabase: filedb\n"), 0o644))

	t.Setenv("POSTGRES_HOST", "env.internal")
	t.Setenv("POSTGRES_DB", "envdb") // POSTGRES_DB maps to database
	t.Setenv("POSTGRES_PASSWORD", "hunter2")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "env.internal", cfg.Host)
	assert.Equal(t, "envdb", cfg.Database)
	assert.Equal(t, "hunter2", cfg.Password)
}

func TestLoadConfigMissingFileIsSkipped(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "zero value falls back to defaults",
			cfg:  Config{},
			want: "host=localhost port=5432 dbname= sslmode=disable",
		},
		{
			name: "full config",
			cfg: Config{
				Host: "db.internal", Port: 5433, Database: "appdb",
				User: "app", Password: "hunter2", SSLMode: "require",
			},
			want: "host=db.internal port=5433 dbname=appdb sslmode=require user=app password=hunter2",
		},
		{
			name: "credentials omitted when empty",
			cfg:  Config{Host: "h", Port: 1, Database: "d", SSLMode: "disable"},
			want: "host=h port=1 dbname=d sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.dsn())
		})
	}
}
