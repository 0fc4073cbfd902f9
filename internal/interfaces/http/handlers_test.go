package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-sync/internal/application/devicesync"
	"github.com/jhoicas/wms-sync/internal/application/dto"
	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/internal/domain"
	"github.com/jhoicas/wms-sync/internal/domain/entity"
	"github.com/jhoicas/wms-sync/internal/infrastructure/memory"
	httpRouter "github.com/jhoicas/wms-sync/internal/interfaces/http"
)

type testApp struct {
	app       *fiber.App
	store     *memory.Store
	receiving entity.Location
	a, b      entity.Location
}

func newTestApp(t *testing.T, strict bool) testApp {
	t.Helper()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := memory.NewStore()
	s.SetClock(func() time.Time { return now })
	receiving := s.AddLocation("RAMPA", "Rampa")
	a := s.AddLocation("A-01", "Rack A")
	b := s.AddLocation("B-01", "Rack B")

	ledger := inventory.NewStockLedger(strict, nil)
	receipts := inventory.NewReceiptProcessor(s, ledger, nil, nil, receiving.ID)
	transfers := inventory.NewTransferProcessor(s, ledger, nil, nil, decimal.Zero)
	coord := devicesync.NewCoordinator(s, receipts, transfers, s.Requests(), nil, nil, 0)

	app := fiber.New()
	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   "wms-sync-test",
		Receipts:  receipts,
		Transfers: transfers,
		Sync:      coord,
		Ledger:    ledger,
	})
	return testApp{app: app, store: s, receiving: receiving, a: a, b: b}
}

func (ta testApp) do(t *testing.T, method, path, body string, headers ...string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestGoodsReceipt_Creada(t *testing.T) {
	ta := newTestApp(t, false)

	status, raw := ta.do(t, http.MethodPost, "/v1/goods-receipts",
		`{"header":{"employee_id":"op-1","invoice_number":"F-1"},"items":[{"item_id":"7","quantity":"2.5"}]}`)
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	var out dto.CreateReceiptResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "success", out.Status)
	assert.NotZero(t, out.ReceiptID)

	row, ok := ta.store.Row(entity.StockKey{ItemID: 7, LocationID: ta.receiving.ID})
	require.True(t, ok)
	assert.True(t, row.Quantity.Equal(decimal.RequireFromString("2.5")))
}

func TestGoodsReceipt_Errores(t *testing.T) {
	ta := newTestApp(t, false)

	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"json roto", `{"header":`, fiber.StatusBadRequest, "INVALID_BODY"},
		{"sin header", `{"items":[{"item_id":1,"quantity":1}]}`, fiber.StatusBadRequest, domain.CodeValidation},
		{"cantidad cero", `{"header":{"actor":"op"},"items":[{"item_id":1,"quantity":0}]}`, fiber.StatusBadRequest, domain.CodeValidation},
		{"orden inexistente", `{"header":{"actor":"op","purchase_order_id":999},"items":[{"item_id":1,"quantity":1}]}`, fiber.StatusNotFound, domain.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, raw := ta.do(t, http.MethodPost, "/v1/goods-receipts", tc.body)
			assert.Equal(t, tc.status, status, string(raw))
			var out dto.ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &out))
			assert.Equal(t, tc.code, out.Code)
		})
	}
	assert.Empty(t, ta.store.Receipts())
}

func TestGoodsReceipt_IdempotencyKeyRepetida(t *testing.T) {
	ta := newTestApp(t, false)
	body := `{"header":{"actor":"op"},"items":[{"item_id":1,"quantity":1}]}`

	status, _ := ta.do(t, http.MethodPost, "/v1/goods-receipts", body, "Idempotency-Key", "k-1")
	require.Equal(t, fiber.StatusCreated, status)

	status, raw := ta.do(t, http.MethodPost, "/v1/goods-receipts", body, "Idempotency-Key", "k-1")
	assert.Equal(t, fiber.StatusConflict, status, string(raw))
	assert.Len(t, ta.store.Receipts(), 1)
}

func TestTransfer_MueveStock(t *testing.T) {
	ta := newTestApp(t, false)
	ta.store.PutStock(entity.StockKey{ItemID: 1, LocationID: ta.a.ID}, decimal.NewFromInt(10))

	body := `{"header":{"operation_type":"box_transfer","source_location_id":` + itoa(ta.a.ID) +
		`,"target_location_id":` + itoa(ta.b.ID) + `,"actor":"op"},"items":[{"item_id":1,"quantity":4}]}`
	status, raw := ta.do(t, http.MethodPost, "/v1/transfers", body)
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var out dto.CreateTransferResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "success", out.Status)
	assert.NotEmpty(t, out.TransferRef)

	src, _ := ta.store.Row(entity.StockKey{ItemID: 1, LocationID: ta.a.ID})
	dst, _ := ta.store.Row(entity.StockKey{ItemID: 1, LocationID: ta.b.ID})
	assert.True(t, src.Quantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, dst.Quantity.Equal(decimal.NewFromInt(4)))
}

func TestTransfer_StockInsuficienteEnModoEstricto(t *testing.T) {
	ta := newTestApp(t, true)

	body := `{"header":{"source_location_id":` + itoa(ta.a.ID) + `,"target_location_id":` + itoa(ta.b.ID) +
		`,"actor":"op"},"items":[{"item_id":1,"quantity":4}]}`
	status, raw := ta.do(t, http.MethodPost, "/v1/transfers", body)
	assert.Equal(t, fiber.StatusConflict, status, string(raw))

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, domain.CodeInsufficientStock, out.Code)
	assert.Empty(t, ta.store.Movements())
}

func TestHealth_ReportaFaltantes(t *testing.T) {
	ta := newTestApp(t, false)

	body := `{"header":{"source_location_id":` + itoa(ta.a.ID) + `,"target_location_id":` + itoa(ta.b.ID) +
		`,"actor":"op"},"items":[{"item_id":1,"quantity":4}]}`
	status, _ := ta.do(t, http.MethodPost, "/v1/transfers", body)
	require.Equal(t, fiber.StatusOK, status)

	status, raw := ta.do(t, http.MethodGet, "/health", "")
	require.Equal(t, fiber.StatusOK, status)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "ok", out["status"])
	assert.EqualValues(t, 1, out["ledger_missing_source"])
}

func TestHealth_SinLedger(t *testing.T) {
	app := fiber.New()
	httpRouter.Router(app, httpRouter.RouterDeps{AppName: "wms-sync-test"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "wms-sync-test", out["service"])
	assert.NotContains(t, out, "ledger_missing_source")
}

func TestSync_DescargaSinCuerpoYSubida(t *testing.T) {
	ta := newTestApp(t, false)

	status, raw := ta.do(t, http.MethodPost, "/api/sync/upload",
		`{"operations":[{"local_id":1,"type":"goods_receipt","data":{"header":{"actor":"op"},"items":[{"item_id":3,"quantity":2}]}},`+
			`{"local_id":2,"type":"teleport","data":{}}]}`)
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var up dto.SyncUploadResponse
	require.NoError(t, json.Unmarshal(raw, &up))
	require.Len(t, up.Results, 2)
	assert.True(t, up.Results[0].Success)
	assert.False(t, up.Results[1].Success)
	assert.Equal(t, domain.CodeUnknownOperation, up.Results[1].ErrorCode)

	status, raw = ta.do(t, http.MethodPost, "/api/sync/download", "")
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var down dto.SyncDownloadResponse
	require.NoError(t, json.Unmarshal(raw, &down))
	assert.True(t, down.Bootstrap)
	assert.Len(t, down.Data.Locations, 3)
	assert.Len(t, down.Data.GoodsReceipts, 1)
	assert.NotEmpty(t, down.Timestamp)
}

func TestSync_UploadCuerpoInvalido(t *testing.T) {
	ta := newTestApp(t, false)
	status, _ := ta.do(t, http.MethodPost, "/api/sync/upload", `not json`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
