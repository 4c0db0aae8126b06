package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  port: 8080
  gin_mode: release
  cors_origins:
    - http://localhost:5173
  cookie_secure: true
mongo:
  uri: mongodb://localhost:27017
  database: schedulo
redis:
  addr: localhost:6379
  password: ""
  db: 0
jwt:
  secret: file-secret
  issuer: schedulo
  ttl: 1h
otp:
  register_ttl: 10m
  reset_ttl: 5m
login_limit:
  max_attempts: 5
  window: 15m
sendgrid:
  api_key: ""
  from_name: Schedulo
  from_email: no-reply@schedulo.dev
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom(t *testing.T) {
	cfg, err := LoadFrom(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "schedulo", cfg.MongoDatabase)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.OTPRegisterTTL)
	assert.Equal(t, 5*time.Minute, cfg.OTPResetTTL)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LoginWindow)
	assert.Equal(t, "no-reply@schedulo.dev", cfg.SendGridFromEmail)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://mongo.internal:27017")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SENDGRID_API_KEY", "SG.test-key")

	cfg, err := LoadFrom(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://mongo.internal:27017", cfg.MongoURI)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "SG.test-key", cfg.SendGridAPIKey)
	assert.Equal(t, "schedulo", cfg.MongoDatabase, "non-secret values stay file-driven")
}

func TestLoadFrom_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		bad := writeConfig(t, `
app:
  port: 8080
jwt:
  ttl: soon
otp:
  register_ttl: 10m
  reset_ttl: 5m
login_limit:
  window: 15m
`)
		_, err := LoadFrom(bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT TTL")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadFrom(writeConfig(t, "app: [unclosed"))
		assert.Error(t, err)
	})
}
