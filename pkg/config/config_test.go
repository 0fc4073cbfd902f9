package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-sync/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(1), cfg.Warehouse.ReceivingLocationID)
	assert.False(t, cfg.Warehouse.StrictDecrement)
	assert.Equal(t, 5*time.Second, cfg.Sync.WatermarkLag)
	assert.True(t, cfg.Notify.LargeTransferQty.IsZero())
	assert.False(t, cfg.Notify.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RECEIVING_LOCATION_ID", "12")
	t.Setenv("LEDGER_STRICT_DECREMENT", "true")
	t.Setenv("SYNC_WATERMARK_LAG", "30")
	t.Setenv("NOTIFY_LARGE_TRANSFER_QTY", "250.5")
	t.Setenv("NOTIFY_DEDUP_WINDOW", "90s")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(12), cfg.Warehouse.ReceivingLocationID)
	assert.True(t, cfg.Warehouse.StrictDecrement)
	assert.Equal(t, 30*time.Second, cfg.Sync.WatermarkLag)
	assert.Equal(t, "250.5", cfg.Notify.LargeTransferQty.String())
	assert.Equal(t, 90*time.Second, cfg.Notify.DedupWindow)
	assert.True(t, cfg.Notify.Enabled())
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestLoad_Invalidos(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NOTIFY_LARGE_TRANSFER_QTY", "mucho")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("NOTIFY_LARGE_TRANSFER_QTY", "10")
	t.Setenv("RECEIVING_LOCATION_ID", "-3")
	_, err = config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "wms", Password: "p@ss/word", DBName: "wms", SSLMode: "disable"}
	assert.Equal(t, "postgres://wms:p%40ss%2Fword@db:5432/wms?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
