package devicesync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/wms-sync/internal/application/dto"
	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/internal/domain"
	"github.com/jhoicas/wms-sync/internal/domain/entity"
	"github.com/jhoicas/wms-sync/internal/domain/repository"
	"github.com/jhoicas/wms-sync/pkg/logger"
)

// Coordinator sincronización delta con terminales desconectados.
// El servidor no guarda cursor por dispositivo: el cliente conserva la marca de agua.
type Coordinator struct {
	snapshots    SnapshotRunner
	receipts     ReceiptCreator
	transfers    TransferCreator
	requests     repository.ProcessedRequestRepository
	notifier     FailureNotifier
	log          *logger.Logger
	watermarkLag time.Duration
	now          func() time.Time
}

// NewCoordinator construye el coordinador. requests debe estar atado al pool (fuera de tx).
// watermarkLag se resta a la hora del snapshot al emitir la próxima marca de agua, para
// cubrir transacciones que escribieron con una hora anterior y confirmaron después.
func NewCoordinator(
	snapshots SnapshotRunner,
	receipts ReceiptCreator,
	transfers TransferCreator,
	requests repository.ProcessedRequestRepository,
	notifier FailureNotifier,
	log *logger.Logger,
	watermarkLag time.Duration,
) *Coordinator {
	if notifier == nil {
		notifier = nopFailureNotifier{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Coordinator{
		snapshots:    snapshots,
		receipts:     receipts,
		transfers:    transfers,
		requests:     requests,
		notifier:     notifier,
		log:          log,
		watermarkLag: watermarkLag,
		now:          time.Now,
	}
}

// DownloadSince interpreta la marca de agua enviada por el cliente. Una marca ilegible se
// trata como ausente: reenviar todo es seguro, omitir filas no.
func (c *Coordinator) DownloadSince(ctx context.Context, lastSync *string) (dto.SyncDownloadResponse, error) {
	var watermark *time.Time
	if lastSync != nil && strings.TrimSpace(*lastSync) != "" {
		t, err := dto.ParseFlexTime(*lastSync)
		if err != nil {
			c.log.Warn().Str("last_sync", *lastSync).Msg("marca de agua ilegible, se envía bootstrap")
		} else {
			watermark = &t
		}
	}
	return c.Download(ctx, watermark)
}

// Download devuelve, por entidad, las filas creadas o modificadas desde watermark
// (todas si watermark es nil). Las líneas viajan cuando su cabecera califica, por lo que
// puede sobre-incluir pero nunca omitir.
func (c *Coordinator) Download(ctx context.Context, watermark *time.Time) (dto.SyncDownloadResponse, error) {
	var (
		data    dto.SyncData
		horizon time.Time
	)
	err := c.snapshots.RunReadOnly(ctx, func(repo repository.SyncRepository) error {
		var err error
		if horizon, err = repo.Horizon(ctx); err != nil {
			return err
		}
		locations, err := repo.Locations(ctx, watermark)
		if err != nil {
			return err
		}
		orders, err := repo.PurchaseOrders(ctx, watermark)
		if err != nil {
			return err
		}
		orderLines, err := repo.PurchaseOrderLines(ctx, watermark)
		if err != nil {
			return err
		}
		stock, err := repo.Stock(ctx, watermark)
		if err != nil {
			return err
		}
		removals, err := repo.StockRemovals(ctx, watermark)
		if err != nil {
			return err
		}
		receipts, err := repo.Receipts(ctx, watermark)
		if err != nil {
			return err
		}
		receiptLines, err := repo.ReceiptLines(ctx, watermark)
		if err != nil {
			return err
		}
		movements, err := repo.Movements(ctx, watermark)
		if err != nil {
			return err
		}
		data = dto.SyncData{
			Locations:          toLocationRows(locations),
			PurchaseOrders:     toPurchaseOrderRows(orders),
			PurchaseOrderLines: toPurchaseOrderLineRows(orderLines),
			InventoryStock:     toStockRows(stock),
			StockRemovals:      toStockRemovalRows(removals),
			GoodsReceipts:      toReceiptRows(receipts),
			GoodsReceiptItems:  toReceiptLineRows(receiptLines),
			InventoryTransfers: toMovementRows(movements),
		}
		return nil
	})
	if err != nil {
		return dto.SyncDownloadResponse{}, fmt.Errorf("sync download: %w", err)
	}

	next := horizon.Add(-c.watermarkLag).UTC()
	ev := c.log.Info().Bool("bootstrap", watermark == nil)
	for name, n := range data.Counts() {
		ev = ev.Int(name, n)
	}
	ev.Msg("descarga de sincronización")

	return dto.SyncDownloadResponse{
		Success:   true,
		Bootstrap: watermark == nil,
		Data:      data,
		Timestamp: next.Format(time.RFC3339Nano),
	}, nil
}

// Upload aplica las operaciones en el orden enviado, cada una en su propia transacción.
// Un fallo se registra en su resultado y no afecta a las demás operaciones del lote.
func (c *Coordinator) Upload(ctx context.Context, ops []dto.SyncOperation) []dto.SyncOperationResult {
	results := make([]dto.SyncOperationResult, 0, len(ops))
	failed := 0
	for _, op := range ops {
		res := c.apply(ctx, op)
		if !res.Success {
			failed++
		}
		results = append(results, res)
	}
	c.log.Info().Int("operations", len(ops)).Int("failed", failed).Msg("subida de sincronización")
	return results
}

func (c *Coordinator) apply(ctx context.Context, op dto.SyncOperation) dto.SyncOperationResult {
	res := dto.SyncOperationResult{
		LocalID:        op.LocalID,
		IdempotencyKey: strings.TrimSpace(op.IdempotencyKey),
		Type:           op.Type,
	}
	key := res.IdempotencyKey

	if key != "" {
		prev, err := c.requests.Get(ctx, key)
		if err != nil {
			return c.fail(ctx, op, res, err)
		}
		if prev != nil {
			return replay(res, prev)
		}
	}

	err := c.dispatch(ctx, op, key, &res)
	if err == nil {
		res.Success = true
		return res
	}
	if key != "" && errors.Is(err, domain.ErrDuplicate) {
		// Otra petición con la misma clave confirmó primero
		if prev, gerr := c.requests.Get(ctx, key); gerr == nil && prev != nil {
			return replay(res, prev)
		}
	}
	return c.fail(ctx, op, res, err)
}

func (c *Coordinator) dispatch(ctx context.Context, op dto.SyncOperation, key string, res *dto.SyncOperationResult) error {
	t := parseOperationType(op.Type)
	switch t.kind {
	case kindReceipt:
		var req dto.CreateReceiptRequest
		if err := decodeData(op.Data, &req); err != nil {
			return err
		}
		in, err := inventory.ReceiptInputFromRequest(req)
		if err != nil {
			return err
		}
		in.IdempotencyKey = key
		out, err := c.receipts.CreateReceipt(ctx, in)
		if err != nil {
			return err
		}
		res.ReceiptID = out.ReceiptID
		return nil
	case kindTransfer:
		var req dto.CreateTransferRequest
		if err := decodeData(op.Data, &req); err != nil {
			return err
		}
		in, err := inventory.TransferInputFromRequest(req, t.mode)
		if err != nil {
			return err
		}
		in.IdempotencyKey = key
		out, err := c.transfers.CreateTransfer(ctx, in)
		if err != nil {
			return err
		}
		res.TransferRef = out.TransferRef
		return nil
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownOperation, op.Type)
	}
}

// fail completa el resultado con el error. Los errores deterministas se registran bajo la
// clave de idempotencia; los de almacenamiento no, para que el terminal pueda reintentar.
func (c *Coordinator) fail(ctx context.Context, op dto.SyncOperation, res dto.SyncOperationResult, err error) dto.SyncOperationResult {
	res.Success = false
	res.ErrorCode = domain.ErrorCode(err)
	res.Message = err.Error()

	if res.IdempotencyKey != "" && domain.IsDeterministic(err) {
		rec := &entity.ProcessedRequest{
			IdempotencyKey: res.IdempotencyKey,
			OperationKind:  operationKindName(op.Type),
			Status:         entity.RequestFailed,
			ErrorCode:      res.ErrorCode,
			Message:        res.Message,
			CreatedAt:      c.now(),
		}
		if serr := c.requests.Save(ctx, rec); serr != nil && !errors.Is(serr, domain.ErrDuplicate) {
			c.log.Error().Err(serr).Str("idempotency_key", res.IdempotencyKey).Msg("registrar fallo de operación")
		}
	}

	c.log.Warn().
		Err(err).
		Int64("local_id", op.LocalID).
		Str("type", op.Type).
		Str("code", res.ErrorCode).
		Msg("operación de sincronización fallida")

	ev := OperationFailure{
		LocalID:   op.LocalID,
		Type:      op.Type,
		Actor:     actorOf(op.Data),
		ErrorCode: res.ErrorCode,
		Message:   res.Message,
	}
	if nerr := c.notifier.OperationFailed(ctx, ev); nerr != nil {
		c.log.Warn().Err(nerr).Msg("aviso de operación fallida")
	}
	return res
}

func replay(res dto.SyncOperationResult, prev *entity.ProcessedRequest) dto.SyncOperationResult {
	res.Replayed = true
	if prev.Status != entity.RequestSucceeded {
		res.Success = false
		res.ErrorCode = prev.ErrorCode
		res.Message = prev.Message
		return res
	}
	res.Success = true
	switch prev.OperationKind {
	case inventory.OperationGoodsReceipt:
		if id, err := strconv.ParseInt(prev.ResultRef, 10, 64); err == nil {
			res.ReceiptID = id
		}
	case inventory.OperationInventoryTransfer:
		res.TransferRef = prev.ResultRef
	}
	return res
}

func operationKindName(opType string) string {
	switch parseOperationType(opType).kind {
	case kindReceipt:
		return inventory.OperationGoodsReceipt
	case kindTransfer:
		return inventory.OperationInventoryTransfer
	default:
		return "unknown"
	}
}

func decodeData(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return fmt.Errorf("%w: operación sin data", domain.ErrInvalidInput)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: data: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// actorOf extrae el actor de la cabecera para los avisos, sin validar el resto.
func actorOf(raw json.RawMessage) string {
	var probe struct {
		Header struct {
			Actor      dto.FlexString `json:"actor"`
			EmployeeID dto.FlexString `json:"employee_id"`
		} `json:"header"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	if probe.Header.Actor != "" {
		return string(probe.Header.Actor)
	}
	return string(probe.Header.EmployeeID)
}
