package inventory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sync/internal/domain"
	"github.com/jhoicas/wms-sync/internal/domain/entity"
	inv "github.com/jhoicas/wms-sync/internal/domain/inventory"
	"github.com/jhoicas/wms-sync/pkg/logger"
)

// OperationGoodsReceipt tipo de operación registrado para idempotencia.
const OperationGoodsReceipt = "goods_receipt"

// ReceiptLineInput línea de recepción.
type ReceiptLineInput struct {
	ItemID    int64
	Quantity  decimal.Decimal
	Container entity.ContainerID
}

// ReceiptInput entrada para registrar una recepción de mercancía.
// PurchaseOrderID es opcional (recepción libre). ReceiptDate cero = ahora.
type ReceiptInput struct {
	PurchaseOrderID *int64
	InvoiceNumber   string
	Actor           string
	ReceiptDate     time.Time
	Lines           []ReceiptLineInput
	// IdempotencyKey si no está vacío se registra en la misma transacción.
	IdempotencyKey string
}

// ReceiptResult resultado de CreateReceipt.
type ReceiptResult struct {
	ReceiptID      int64
	OrderCompleted bool // la orden pasó a COMPLETED en esta recepción
}

// ReceiptProcessor registra recepciones: cabecera, líneas y crédito en la ubicación de recepción,
// todo en una sola transacción, y reevalúa el estado de la orden de compra.
type ReceiptProcessor struct {
	txRunner            TxRunner
	ledger              *StockLedger
	notifier            Notifier
	log                 *logger.Logger
	receivingLocationID int64
	now                 func() time.Time
}

// NewReceiptProcessor construye el caso de uso. receivingLocationID es la rampa donde
// aterrizan todas las recepciones.
func NewReceiptProcessor(
	txRunner TxRunner,
	ledger *StockLedger,
	notifier Notifier,
	log *logger.Logger,
	receivingLocationID int64,
) *ReceiptProcessor {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &ReceiptProcessor{
		txRunner:            txRunner,
		ledger:              ledger,
		notifier:            notifier,
		log:                 log,
		receivingLocationID: receivingLocationID,
		now:                 time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (p *ReceiptProcessor) WithClock(now func() time.Time) *ReceiptProcessor {
	p.now = now
	return p
}

func validateReceipt(in ReceiptInput) error {
	if strings.TrimSpace(in.Actor) == "" {
		return fmt.Errorf("%w: actor requerido", domain.ErrInvalidInput)
	}
	if len(in.Lines) == 0 {
		return fmt.Errorf("%w: la recepción no tiene líneas", domain.ErrInvalidInput)
	}
	if in.PurchaseOrderID != nil && *in.PurchaseOrderID <= 0 {
		return fmt.Errorf("%w: purchase_order_id inválido", domain.ErrInvalidInput)
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

// CreateReceipt registra la recepción. Si falla cualquier línea no queda nada persistido.
func (p *ReceiptProcessor) CreateReceipt(ctx context.Context, in ReceiptInput) (ReceiptResult, error) {
	if err := validateReceipt(in); err != nil {
		return ReceiptResult{}, err
	}
	now := p.now()
	date := in.ReceiptDate
	if date.IsZero() {
		date = now
	}

	var res ReceiptResult
	err := p.txRunner.Run(ctx, func(repos Repos) error {
		res = ReceiptResult{}
		if in.PurchaseOrderID != nil {
			// Bloquea la orden: dos recepciones concurrentes no evalúan el cierre con totales viejos
			order, err := repos.Orders.GetForUpdate(ctx, *in.PurchaseOrderID)
			if err != nil {
				return err
			}
			if order == nil {
				return fmt.Errorf("%w: orden de compra %d", domain.ErrNotFound, *in.PurchaseOrderID)
			}
		}

		receipt := &entity.Receipt{
			PurchaseOrderID: in.PurchaseOrderID,
			InvoiceNumber:   strings.TrimSpace(in.InvoiceNumber),
			Actor:           strings.TrimSpace(in.Actor),
			ReceiptDate:     date,
			CreatedAt:       now,
		}
		if err := repos.Receipts.Create(ctx, receipt); err != nil {
			return err
		}
		res.ReceiptID = receipt.ID

		for _, l := range in.Lines {
			line := &entity.ReceiptLine{
				ReceiptID: receipt.ID,
				ItemID:    l.ItemID,
				Quantity:  l.Quantity,
				Container: l.Container,
			}
			if err := repos.Receipts.AddLine(ctx, line); err != nil {
				return err
			}
			key := entity.StockKey{ItemID: l.ItemID, LocationID: p.receivingLocationID, Container: l.Container}
			if _, err := p.ledger.Adjust(ctx, repos.Stock, key, l.Quantity); err != nil {
				return err
			}
		}

		if in.PurchaseOrderID != nil {
			completed, err := p.checkOrderCompletion(ctx, repos, *in.PurchaseOrderID)
			if err != nil {
				return err
			}
			res.OrderCompleted = completed
		}

		if in.IdempotencyKey != "" {
			return repos.Requests.Save(ctx, &entity.ProcessedRequest{
				IdempotencyKey: in.IdempotencyKey,
				OperationKind:  OperationGoodsReceipt,
				Status:         entity.RequestSucceeded,
				ResultRef:      strconv.FormatInt(receipt.ID, 10),
				CreatedAt:      now,
			})
		}
		return nil
	})
	if err != nil {
		return ReceiptResult{}, err
	}

	if res.OrderCompleted {
		ev := OrderCompletion{
			PurchaseOrderID: *in.PurchaseOrderID,
			ReceiptID:       res.ReceiptID,
			Actor:           in.Actor,
			CompletedAt:     now,
		}
		if err := p.notifier.OrderCompleted(ctx, ev); err != nil {
			p.log.Warn().Err(err).Int64("purchase_order_id", ev.PurchaseOrderID).Msg("aviso de orden completada")
		}
	}
	return res, nil
}

// checkOrderCompletion compara lo recibido (todas las recepciones de la orden) contra lo pedido.
// Se reevalúa en cada recepción; repetirlo sobre una orden ya completada no tiene efectos.
func (p *ReceiptProcessor) checkOrderCompletion(ctx context.Context, repos Repos, orderID int64) (bool, error) {
	ordered, err := repos.Orders.OrderedByItem(ctx, orderID)
	if err != nil {
		return false, err
	}
	received, err := repos.Receipts.ReceivedByOrder(ctx, orderID)
	if err != nil {
		return false, err
	}
	if !inv.IsOrderFulfilled(ordered, received) {
		return false, nil
	}
	return repos.Orders.MarkCompleted(ctx, orderID)
}
