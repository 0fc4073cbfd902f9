package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHorizonFrom(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.FixedZone("COT", -5*3600))
	older := now.Add(-90 * time.Second)
	newer := now.Add(time.Second)

	assert.Equal(t, now.UTC(), horizonFrom(now, nil), "sin transacciones abiertas")
	assert.Equal(t, older.UTC(), horizonFrom(now, &older), "una escritura abierta retrasa el horizonte")
	assert.Equal(t, now.UTC(), horizonFrom(now, &newer))
	assert.Equal(t, time.UTC, horizonFrom(now, nil).Location())
}

func TestSyncRepo_HorizonEsElCalculadoAlAbrir(t *testing.T) {
	at := time.Date(2024, 6, 1, 11, 58, 30, 0, time.UTC)
	got, err := NewSyncRepository(nil, at).Horizon(context.Background())
	require.NoError(t, err)
	assert.Equal(t, at, got)
}
