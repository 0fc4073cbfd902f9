package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-sync/internal/application/devicesync"
	"github.com/jhoicas/wms-sync/internal/application/dto"
	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/internal/infrastructure/memory"
)

func memoryBackend(t *testing.T) (connectFunc, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })
	receiving := s.AddLocation("RAMPA", "Rampa")
	s.AddLocation("A-01", "Rack A")

	ledger := inventory.NewStockLedger(false, nil)
	coord := devicesync.NewCoordinator(s,
		inventory.NewReceiptProcessor(s, ledger, nil, nil, receiving.ID),
		inventory.NewTransferProcessor(s, ledger, nil, nil, decimal.Zero),
		s.Requests(), nil, nil, 0)

	connect := func(context.Context) (*backend, error) {
		return &backend{
			coord:   coord,
			migrate: func(context.Context) ([]string, error) { return []string{"001_init"}, nil },
			close:   func() {},
		}, nil
	}
	return connect, s
}

func run(t *testing.T, connect connectFunc, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(connect)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "ops.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(nil)
	for _, name := range []string{"migrate", "apply", "delta"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	assert.Equal(t, "text", cmd.PersistentFlags().Lookup("format").DefValue)
}

func TestFormatoInvalido(t *testing.T) {
	connect, _ := memoryBackend(t)
	_, err := run(t, connect, "delta", "--format", "yaml")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitCommandError, exitErr.Code)
}

func TestMigrate(t *testing.T) {
	connect, _ := memoryBackend(t)
	out, err := run(t, connect, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "aplicada 001_init")
}

func TestApply_ArregloYReintento(t *testing.T) {
	connect, s := memoryBackend(t)
	path := writeFile(t, `[
		{"local_id":1,"idempotency_key":"dev1-1","type":"goods_receipt","data":{"header":{"actor":"op"},"items":[{"item_id":9,"quantity":3}]}}
	]`)

	out, err := run(t, connect, "apply", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "#1 goods_receipt ok receipt_id=")

	out, err = run(t, connect, "apply", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(ya procesada)")
	assert.Len(t, s.Receipts(), 1)
}

func TestApply_FalloDevuelveExitFailure(t *testing.T) {
	connect, _ := memoryBackend(t)
	path := writeFile(t, `{"operations":[{"local_id":5,"type":"teleport","data":{}}]}`)

	out, err := run(t, connect, "apply", "--file", path, "--format", "json")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitFailure, exitErr.Code)

	var resp dto.SyncUploadResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "UNKNOWN_OPERATION", resp.Results[0].ErrorCode)
}

func TestApply_ArchivoInvalido(t *testing.T) {
	connect, _ := memoryBackend(t)
	_, err := run(t, connect, "apply", "--file", writeFile(t, `{"ops":[]}`))
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitCommandError, exitErr.Code)
}

func TestApply_ErrorDeConexion(t *testing.T) {
	connect := func(context.Context) (*backend, error) { return nil, errors.New("sin base") }
	_, err := run(t, connect, "apply", "--file", writeFile(t, `[]`))
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitCommandError, exitErr.Code)
}

func TestDelta(t *testing.T) {
	connect, _ := memoryBackend(t)

	out, err := run(t, connect, "delta")
	require.NoError(t, err)
	assert.Contains(t, out, "bootstrap: true")
	assert.Contains(t, out, "locations: 2")

	out, err = run(t, connect, "delta", "--since", "2030-01-01T00:00:00Z", "--format", "json")
	require.NoError(t, err)
	var resp dto.SyncDownloadResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Bootstrap)
	assert.Empty(t, resp.Data.Locations)
}
