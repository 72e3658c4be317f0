package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  name: sweetshop-api
  host: 127.0.0.1
  port: 5000
mongodb:
  uri: mongodb://localhost:27017
  database: sweetshop
jwt:
  secret: s3cret
admin:
  username: admin
  email: admin@gmail.com
  password: admin@123
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sweetshop-api", cfg.Server.Name)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "sweetshop", cfg.MongoDB.Database)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 7, cfg.JWT.ExpiryDays, "defaulted")
	assert.Equal(t, "sweet-shop", cfg.Cloudinary.Folder, "defaulted")
	assert.Equal(t, "admin@gmail.com", cfg.Admin.Email)
}

func TestLoadMissingSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 5000
mongodb:
  uri: mongodb://localhost:27017
  database: sweetshop
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
