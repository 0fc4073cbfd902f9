package inventory

import (
	"fmt"

	"github.com/jhoicas/wms-sync/internal/application/dto"
	"github.com/jhoicas/wms-sync/internal/domain"
	"github.com/jhoicas/wms-sync/internal/domain/entity"
)

// ReceiptInputFromRequest adapta el request HTTP (o el data de una operación de sync) a ReceiptInput.
// Usar desde handlers HTTP o desde el coordinador de sincronización.
func ReceiptInputFromRequest(in dto.CreateReceiptRequest) (ReceiptInput, error) {
	if in.Header == nil {
		return ReceiptInput{}, fmt.Errorf("%w: falta header", domain.ErrInvalidInput)
	}
	out := ReceiptInput{
		InvoiceNumber: in.Header.Invoice(),
		Actor:         in.Header.ActorName(),
		ReceiptDate:   in.Header.ReceiptDate.Time,
	}
	if po := in.Header.PurchaseOrder(); po != 0 {
		out.PurchaseOrderID = &po
	}
	for _, item := range in.AllLines() {
		out.Lines = append(out.Lines, ReceiptLineInput{
			ItemID:    item.Item(),
			Quantity:  item.Quantity,
			Container: entity.NewContainerID(item.Container()),
		})
	}
	return out, nil
}

// TransferInputFromRequest adapta el request HTTP (o el data de una operación de sync) a TransferInput.
// defaultMode se usa cuando la cabecera no trae operation_type (el tipo de la operación de sync
// ya indica el modo).
func TransferInputFromRequest(in dto.CreateTransferRequest, defaultMode string) (TransferInput, error) {
	if in.Header == nil {
		return TransferInput{}, fmt.Errorf("%w: falta header", domain.ErrInvalidInput)
	}
	h := in.Header
	opType := h.OperationType
	if opType == "" {
		opType = defaultMode
	}
	mode, ok := dto.NormalizeTransferMode(opType)
	if !ok {
		return TransferInput{}, fmt.Errorf("%w: operation_type %q", domain.ErrInvalidInput, h.OperationType)
	}

	container := h.Container()
	lines := in.AllLines()
	if container == "" && (mode == entity.TransferContainerMove || mode == entity.TransferSplitFromContainer) {
		// Terminales viejos mandan el pallet en cada línea; debe ser el mismo en todas.
		// En movimientos sueltos el pallet de la línea es informativo.
		for i, item := range lines {
			if item.PalletID == nil || *item.PalletID == "" {
				continue
			}
			code := entity.NewContainerID(*item.PalletID).Code()
			if container != "" && code != container {
				return TransferInput{}, fmt.Errorf("%w: línea %d con pallet distinto", domain.ErrInvalidInput, i)
			}
			container = code
		}
	}

	out := TransferInput{
		Mode:             mode,
		SourceLocationID: int64(h.SourceLocationID),
		TargetLocationID: int64(h.TargetLocationID),
		Container:        entity.NewContainerID(container),
		Actor:            h.ActorName(),
		TransferDate:     h.TransferDate.Time,
	}
	for _, item := range lines {
		out.Lines = append(out.Lines, TransferLineInput{ItemID: item.Item(), Quantity: item.Quantity})
	}
	return out, nil
}
