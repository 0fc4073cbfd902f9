package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sync/internal/domain"
	"github.com/jhoicas/wms-sync/internal/domain/entity"
	"github.com/jhoicas/wms-sync/pkg/logger"
)

// OperationInventoryTransfer tipo de operación registrado para idempotencia.
const OperationInventoryTransfer = "inventory_transfer"

// TransferLineInput línea de traslado.
type TransferLineInput struct {
	ItemID   int64
	Quantity decimal.Decimal
}

// TransferInput entrada para registrar un traslado.
// Mode: entity.TransferContainerMove, entity.TransferSplitFromContainer o
// entity.TransferLooseMove (vacío = loose_move).
type TransferInput struct {
	Mode             string
	SourceLocationID int64
	TargetLocationID int64
	Container        entity.ContainerID
	Actor            string
	TransferDate     time.Time
	Lines            []TransferLineInput
	IdempotencyKey   string
}

// TransferResult resultado de CreateTransfer.
type TransferResult struct {
	Status      string
	TransferRef string
	// MissingSourceLines líneas cuyo descuento en origen se ignoró por falta de stock.
	MissingSourceLines int
}

// TransferProcessor mueve stock entre ubicaciones: cada línea son dos ajustes inversos
// sobre el ledger más un registro en inventory_transfers, todo en una transacción.
type TransferProcessor struct {
	txRunner         TxRunner
	ledger           *StockLedger
	notifier         Notifier
	log              *logger.Logger
	largeTransferQty decimal.Decimal
	now              func() time.Time
}

// NewTransferProcessor construye el caso de uso. largeTransferQty <= 0 desactiva el aviso
// de traslados grandes.
func NewTransferProcessor(
	txRunner TxRunner,
	ledger *StockLedger,
	notifier Notifier,
	log *logger.Logger,
	largeTransferQty decimal.Decimal,
) *TransferProcessor {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &TransferProcessor{
		txRunner:         txRunner,
		ledger:           ledger,
		notifier:         notifier,
		log:              log,
		largeTransferQty: largeTransferQty,
		now:              time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (p *TransferProcessor) WithClock(now func() time.Time) *TransferProcessor {
	p.now = now
	return p
}

func validateTransfer(in *TransferInput) error {
	if in.Mode == "" {
		in.Mode = entity.TransferLooseMove
	}
	switch in.Mode {
	case entity.TransferContainerMove, entity.TransferSplitFromContainer:
		if in.Container.IsNone() {
			return fmt.Errorf("%w: %s requiere container_id", domain.ErrInvalidInput, in.Mode)
		}
	case entity.TransferLooseMove:
	default:
		return fmt.Errorf("%w: operation_type %q", domain.ErrInvalidInput, in.Mode)
	}
	if strings.TrimSpace(in.Actor) == "" {
		return fmt.Errorf("%w: actor requerido", domain.ErrInvalidInput)
	}
	if in.SourceLocationID <= 0 || in.TargetLocationID <= 0 {
		return fmt.Errorf("%w: ubicación de origen y destino requeridas", domain.ErrInvalidInput)
	}
	// Mover un pallet o cajas sueltas a la misma ubicación no tiene efecto; sacar cajas de un
	// pallet sí tiene sentido en la misma ubicación.
	if in.SourceLocationID == in.TargetLocationID && in.Mode != entity.TransferSplitFromContainer {
		return fmt.Errorf("%w: origen y destino iguales", domain.ErrInvalidInput)
	}
	if len(in.Lines) == 0 {
		return fmt.Errorf("%w: el traslado no tiene líneas", domain.ErrInvalidInput)
	}
	for i, l := range in.Lines {
		if l.ItemID <= 0 {
			return fmt.Errorf("%w: línea %d sin item_id", domain.ErrInvalidInput, i)
		}
		if !l.Quantity.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: línea %d con cantidad no positiva", domain.ErrInvalidInput, i)
		}
	}
	return nil
}

// transferKeys devuelve la fila de origen y la de destino de una línea según el modo.
func transferKeys(in TransferInput, itemID int64) (src, dst entity.StockKey) {
	switch in.Mode {
	case entity.TransferContainerMove:
		src = entity.StockKey{ItemID: itemID, LocationID: in.SourceLocationID, Container: in.Container}
		dst = entity.StockKey{ItemID: itemID, LocationID: in.TargetLocationID, Container: in.Container}
	case entity.TransferSplitFromContainer:
		src = entity.StockKey{ItemID: itemID, LocationID: in.SourceLocationID, Container: in.Container}
		dst = entity.StockKey{ItemID: itemID, LocationID: in.TargetLocationID, Container: entity.NoContainer()}
	default:
		src = entity.StockKey{ItemID: itemID, LocationID: in.SourceLocationID, Container: entity.NoContainer()}
		dst = entity.StockKey{ItemID: itemID, LocationID: in.TargetLocationID, Container: entity.NoContainer()}
	}
	return src, dst
}

// CreateTransfer registra el traslado. Las líneas se aplican en el orden recibido.
func (p *TransferProcessor) CreateTransfer(ctx context.Context, in TransferInput) (TransferResult, error) {
	if err := validateTransfer(&in); err != nil {
		return TransferResult{}, err
	}
	now := p.now()
	date := in.TransferDate
	if date.IsZero() {
		date = now
	}
	ref := uuid.New().String()
	// El log conserva el contenedor de origen también en split_from_container (trazabilidad)
	logContainer := in.Container
	if in.Mode == entity.TransferLooseMove {
		logContainer = entity.NoContainer()
	}

	var res TransferResult
	err := p.txRunner.Run(ctx, func(repos Repos) error {
		res = TransferResult{Status: "success", TransferRef: ref}
		for _, id := range []int64{in.SourceLocationID, in.TargetLocationID} {
			loc, err := repos.Locations.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if loc == nil {
				return fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, id)
			}
		}

		for _, l := range in.Lines {
			src, dst := transferKeys(in, l.ItemID)
			out, err := p.ledger.Adjust(ctx, repos.Stock, src, l.Quantity.Neg())
			if err != nil {
				return err
			}
			if out.MissingSource {
				res.MissingSourceLines++
			}
			if _, err := p.ledger.Adjust(ctx, repos.Stock, dst, l.Quantity); err != nil {
				return err
			}
			mov := &entity.Movement{
				TransferRef:    ref,
				ItemID:         l.ItemID,
				FromLocationID: in.SourceLocationID,
				ToLocationID:   in.TargetLocationID,
				Quantity:       l.Quantity,
				Container:      logContainer,
				Mode:           in.Mode,
				Actor:          strings.TrimSpace(in.Actor),
				TransferDate:   date,
				CreatedAt:      now,
			}
			if err := repos.Movements.Create(ctx, mov); err != nil {
				return err
			}
		}

		if in.IdempotencyKey != "" {
			return repos.Requests.Save(ctx, &entity.ProcessedRequest{
				IdempotencyKey: in.IdempotencyKey,
				OperationKind:  OperationInventoryTransfer,
				Status:         entity.RequestSucceeded,
				ResultRef:      ref,
				CreatedAt:      now,
			})
		}
		return nil
	})
	if err != nil {
		return TransferResult{}, err
	}

	if res.MissingSourceLines > 0 {
		p.log.Warn().
			Str("transfer_ref", ref).
			Int("lines", res.MissingSourceLines).
			Msg("traslado con líneas sin stock de origen: la cantidad total no se conservó")
	}
	p.notifyIfLarge(ctx, in, ref)
	return res, nil
}

func (p *TransferProcessor) notifyIfLarge(ctx context.Context, in TransferInput, ref string) {
	if !p.largeTransferQty.GreaterThan(decimal.Zero) {
		return
	}
	total := decimal.Zero
	for _, l := range in.Lines {
		total = total.Add(l.Quantity)
	}
	if total.LessThan(p.largeTransferQty) {
		return
	}
	ev := LargeTransfer{
		TransferRef:      ref,
		Mode:             in.Mode,
		SourceLocationID: in.SourceLocationID,
		TargetLocationID: in.TargetLocationID,
		Container:        in.Container.Code(),
		TotalQuantity:    total,
		Lines:            len(in.Lines),
		Actor:            in.Actor,
	}
	if err := p.notifier.LargeTransfer(ctx, ev); err != nil {
		p.log.Warn().Err(err).Str("transfer_ref", ref).Msg("aviso de traslado grande")
	}
}
