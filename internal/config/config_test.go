package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GARAGE_AUTH_JWTSECRET", validSecret)
	t.Setenv("GARAGE_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("GARAGE_AUTH_TOKENTTLMINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "data/garage.db", cfg.Database.Path)
	assert.Equal(t, validSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL())
	assert.Equal(t, "admin@mail.com", cfg.Seed.Email)
	assert.Equal(t, 10, cfg.RateLimit.LoginPerMinute)
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	env := "# comment\nexport GARAGE_LOG_LEVEL=debug\nGARAGE_SEED_PASSWORD=\"from-file\"\nGARAGE_DATABASE_PATH='file.db'\nbroken-line\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Setenv("GARAGE_DATABASE_PATH", "env.db")
	// registered so t.Setenv restores them after loadDotEnv sets them
	t.Setenv("GARAGE_LOG_LEVEL", "")
	os.Unsetenv("GARAGE_LOG_LEVEL")
	t.Setenv("GARAGE_SEED_PASSWORD", "")
	os.Unsetenv("GARAGE_SEED_PASSWORD")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "from-file", cfg.Seed.Password)
	assert.Equal(t, "env.db", cfg.Database.Path)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.Server.Addr = ":8080"
		c.Database.Path = "data/garage.db"
		c.Log.Level = "info"
		c.Auth.JWTSecret = validSecret
		c.Auth.TokenTTLMinutes = 60
		c.Seed.Email = "admin@mail.com"
		c.Seed.Password = "Admin"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "short secret", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }, wantErr: "auth.jwtsecret"},
		{name: "zero ttl", mutate: func(c *Config) { c.Auth.TokenTTLMinutes = 0 }, wantErr: "auth.tokenttlminutes"},
		{name: "no database", mutate: func(c *Config) { c.Database.Path = " " }, wantErr: "database.path"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log.level"},
		{name: "seed without password", mutate: func(c *Config) { c.Seed.Password = "" }, wantErr: "seed.password"},
		{name: "seeding disabled", mutate: func(c *Config) { c.Seed.Email = ""; c.Seed.Password = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAcceptedLogLevelsParse(t *testing.T) {
	for _, level := range []string{"panic", "fatal", "error", "warn", "warning", "info", "debug", "trace"} {
		var cfg Config
		cfg.Server.Addr = ":8080"
		cfg.Database.Path = "data/garage.db"
		cfg.Log.Level = level
		cfg.Auth.JWTSecret = validSecret
		cfg.Auth.TokenTTLMinutes = 60

		require.NoError(t, cfg.Validate(), level)
		_, err := logrus.ParseLevel(level)
		assert.NoError(t, err, level)
	}
}
