package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `{
		"addr": ":9090",
		"database_url": "postgres://localhost/resumate",
		"redis_url": "redis://localhost:6379",
		"history_limit": 50,
		"allowed_origins": ["https://app.resumate.dev"]
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "postgres://localhost/resumate", cfg.DatabaseURL)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, []string{"https://app.resumate.dev"}, cfg.AllowedOrigins)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeTempConfig(t, `{not json`)
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{HistoryLimit: -1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{ChromePath: filepath.Join(t.TempDir(), "no-such-chrome")}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Addr: ":8080", HistoryLimit: 100}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Addr: ":3000"}
	defaults := Config{
		Addr:         ":8080",
		DatabaseURL:  "postgres://localhost/resumate",
		RedisURL:     "redis://localhost:6379",
		HistoryLimit: 100,
	}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, ":3000", merged.Addr, "explicit value wins")
	assert.Equal(t, "postgres://localhost/resumate", merged.DatabaseURL)
	assert.Equal(t, "redis://localhost:6379", merged.RedisURL)
	assert.Equal(t, 100, merged.HistoryLimit)
}

func TestJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, "resumate", cfg.Issuer)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestJWTConfig_Errors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_EXPIRATION_HOURS", "abc")
	_, err = NewJWTConfig()
	assert.Error(t, err)

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err = NewJWTConfig()
	assert.Error(t, err)
}

func TestPasswordConfig(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)

	t.Setenv("BCRYPT_COST", "9")
	_, err = NewPasswordConfig()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "15")
	_, err = NewPasswordConfig()
	assert.Error(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, cfg.VerifyPassword("hunter22", hash))
	assert.False(t, cfg.VerifyPassword("wrong", hash))
	assert.False(t, cfg.VerifyPassword("hunter22", "not-a-hash"))
}

func TestPasswordPepper(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "secret-pepper"}
	plain := &PasswordConfig{BcryptCost: 10}

	hash, err := peppered.HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("hunter22", hash))
	assert.False(t, plain.VerifyPassword("hunter22", hash), "hash is bound to the pepper")
}
