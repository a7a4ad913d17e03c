package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "api", cfg.Backend.AuthSource)
	assert.Equal(t, 20*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 40, cfg.Editor.PageSize)
	assert.Equal(t, 400*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, StateMemory, cfg.State.Backend)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 20, cfg.Search.ListLimit)
	assert.Equal(t, time.Hour, cfg.Workspace.Idle)
	assert.Equal(t, 5*time.Minute, cfg.Workspace.SweepEvery)
}

func TestFromViper_EnvStringsAndTrailingSlash(t *testing.T) {
	v := viper.New()
	v.Set("BACKEND_BASE_URL", "https://erp.example.com/api/")
	v.Set("EDITOR_PAGE_SIZE", "25")
	v.Set("STATE_BACKEND", "Redis")
	v.Set("SEARCH_DEBOUNCE_MS", "no-numero")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "https://erp.example.com/api", cfg.Backend.BaseURL)
	assert.Equal(t, 25, cfg.Editor.PageSize)
	assert.Equal(t, StateRedis, cfg.State.Backend)
	assert.Equal(t, 400*time.Millisecond, cfg.Search.Debounce, "valor inválido vuelve al default")
}

func TestFromViper_BackendDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STATE_BACKEND", "sqlite")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "ladger", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/ladger?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
