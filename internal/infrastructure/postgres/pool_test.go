package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-sync/pkg/config"
)

func TestBuildPoolConfig_SinForzarIPv4ConservaHost(t *testing.T) {
	cfg := config.DBConfig{Host: "db.invalid", Port: 5433, User: "wms", DBName: "wms", SSLMode: "disable", MaxConns: 7}

	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "db.invalid", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, int32(7), pc.MaxConns)
}

func TestBuildPoolConfig_ForzarIPv4ConIPLiteral(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://wms@127.0.0.1:5432/wms?sslmode=disable", ForceIPv4: true}

	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", pc.ConnConfig.Host)
	assert.Equal(t, int32(25), pc.MaxConns)
}

func TestDatabaseURLWithIPv4_IPv6SeConserva(t *testing.T) {
	in := "postgres://wms@[::1]:5432/wms"
	assert.Equal(t, in, databaseURLWithIPv4(in))
}
