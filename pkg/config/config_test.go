package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-documentos/pkg/config"
)

// chdir cambia el directorio de trabajo durante el test y lo restaura al
// terminar (equivalente a testing.T.Chdir, disponible desde Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

// ──────────────────────────────────────────────────────────────────────────────
// Load
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, config.SessionStoreMemory, cfg.Editor.SessionStore)
	assert.Equal(t, 2*time.Hour, cfg.Editor.SessionTTL)
	assert.Equal(t, 20, cfg.Editor.PageSize)
	assert.Equal(t, "inventario:editor:session:", cfg.Redis.Prefix)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("EDITOR_SESSION_STORE", "REDIS")
	t.Setenv("EDITOR_SESSION_TTL", "45m")
	t.Setenv("EDITOR_SWEEP_INTERVAL", "30")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("REDIS_DB", "3")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, config.SessionStoreRedis, cfg.Editor.SessionStore)
	assert.Equal(t, 45*time.Minute, cfg.Editor.SessionTTL)
	assert.Equal(t, 30*time.Second, cfg.Editor.SweepInterval)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_Invalida(t *testing.T) {
	chdir(t, t.TempDir())

	t.Run("almacén desconocido", func(t *testing.T) {
		t.Setenv("EDITOR_SESSION_STORE", "memcached")
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("página mayor al tope de la API", func(t *testing.T) {
		t.Setenv("EDITOR_PAGE_SIZE", "500")
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("producción sin secreto", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "")
		_, err := config.Load()
		assert.Error(t, err)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// DBConfig
// ──────────────────────────────────────────────────────────────────────────────

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "inv", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/inv?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
