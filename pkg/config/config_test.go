package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Ledger.LowStockThreshold)
	assert.False(t, cfg.Ledger.ReconcileOnStart)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "postgres://postgres:@localhost:5432/pos_ledger?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_Sobrescrituras(t *testing.T) {
	v := viper.New()
	v.Set("LOW_STOCK_THRESHOLD", "5")
	v.Set("STORE_DRIVER", "Memory")
	v.Set("LEDGER_RECONCILE_ON_START", true)
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Ledger.LowStockThreshold)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.True(t, cfg.Ledger.ReconcileOnStart)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
}

func TestFromViper_UmbralInvalido(t *testing.T) {
	for _, raw := range []any{0, "-3"} {
		v := viper.New()
		v.Set("LOW_STOCK_THRESHOLD", raw)
		_, err := fromViper(v)
		assert.Error(t, err, "umbral %v", raw)
	}
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "sqlite")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss:word", DBName: "ledger", SSLMode: "require"}
	assert.Equal(t, "postgres://pos:p%40ss%3Aword@db:5432/ledger?sslmode=require", c.DSN())
}
