package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 8083
read_timeout = 10
write_timeout = 10
idle_timeout = 60
shutdown_timeout = 15

[database]
host = "localhost"
port = 5432
user = "svc"
password = "secret"
dbname = "appointments"
sslmode = "disable"
max_open_conns = 25
max_idle_conns = 5
conn_max_lifetime = 300

[logs]
file = "logs/app.log"
level = "info"

[metrics]
enabled = true
service_name = "appointment-service"
path = "/metrics"

[provider_service]
url = "http://localhost:8081"
timeout = 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8083, cfg.Server.HTTPPort)
	assert.Equal(t, "appointments", cfg.Database.DBName)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "http://localhost:8081", cfg.ProviderService.URL)
	assert.Equal(t,
		"host=localhost port=5432 user=svc password=secret dbname=appointments sslmode=disable",
		cfg.Database.DSN(),
	)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 8083

[database]
host = "localhost"

[provider_service]
url = "http://localhost:8081"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dbname")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
