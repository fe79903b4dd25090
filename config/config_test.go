package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 10*time.Second, cfg.SlotLockTTL)
	assert.Equal(t, 5*time.Minute, cfg.ScheduleCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_DRIVER", StoragePostgres)
	t.Setenv("POSTGRES_DSN", "postgres://localhost/mentorbook")
	t.Setenv("SLOT_LOCK_TTL", "3s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, 3*time.Second, cfg.SlotLockTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

func TestValidate(t *testing.T) {
	base := Config{StorageDriver: StorageMemory, SlotLockTTL: time.Second, Timezone: "UTC"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"memory ok", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.StorageDriver = "sqlite" }, true},
		{"postgres without dsn", func(c *Config) { c.StorageDriver = StoragePostgres }, true},
		{"mongo without url", func(c *Config) { c.StorageDriver = StorageMongo }, true},
		{"zero lock ttl", func(c *Config) { c.SlotLockTTL = 0 }, true},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
		{"production without jwt secret", func(c *Config) { c.Env = "production" }, true},
		{"production with jwt secret", func(c *Config) { c.Env = "production"; c.JWTSecret = "s3cret" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
