package devicesync

import (
	"github.com/jhoicas/wms-sync/internal/application/dto"
	"github.com/jhoicas/wms-sync/internal/domain/entity"
)

func toLocationRows(in []entity.Location) []dto.LocationRow {
	out := make([]dto.LocationRow, 0, len(in))
	for _, l := range in {
		out = append(out, dto.LocationRow{
			ID: l.ID, Code: l.Code, Name: l.Name, IsActive: l.IsActive,
			CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt,
		})
	}
	return out
}

func toPurchaseOrderRows(in []entity.PurchaseOrder) []dto.PurchaseOrderRow {
	out := make([]dto.PurchaseOrderRow, 0, len(in))
	for _, p := range in {
		out = append(out, dto.PurchaseOrderRow{
			ID: p.ID, Number: p.Number, Status: p.Status,
			CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
		})
	}
	return out
}

func toPurchaseOrderLineRows(in []entity.PurchaseOrderLine) []dto.PurchaseOrderLineRow {
	out := make([]dto.PurchaseOrderLineRow, 0, len(in))
	for _, l := range in {
		out = append(out, dto.PurchaseOrderLineRow{
			ID: l.ID, PurchaseOrderID: l.PurchaseOrderID, ItemID: l.ItemID,
			Quantity: l.Quantity, Unit: l.Unit,
		})
	}
	return out
}

func toStockRows(in []entity.StockRow) []dto.StockRow {
	out := make([]dto.StockRow, 0, len(in))
	for _, s := range in {
		out = append(out, dto.StockRow{
			ID: s.ID, ItemID: s.ItemID, LocationID: s.LocationID,
			ContainerID: s.Container, Quantity: s.Quantity, UpdatedAt: s.UpdatedAt,
		})
	}
	return out
}

func toStockRemovalRows(in []entity.StockRemoval) []dto.StockRemovalRow {
	out := make([]dto.StockRemovalRow, 0, len(in))
	for _, r := range in {
		out = append(out, dto.StockRemovalRow{
			ItemID: r.ItemID, LocationID: r.LocationID,
			ContainerID: r.Container, DeletedAt: r.DeletedAt,
		})
	}
	return out
}

func toReceiptRows(in []entity.Receipt) []dto.ReceiptRow {
	out := make([]dto.ReceiptRow, 0, len(in))
	for _, r := range in {
		out = append(out, dto.ReceiptRow{
			ID: r.ID, PurchaseOrderID: r.PurchaseOrderID, InvoiceNumber: r.InvoiceNumber,
			Actor: r.Actor, ReceiptDate: r.ReceiptDate, CreatedAt: r.CreatedAt,
		})
	}
	return out
}

func toReceiptLineRows(in []entity.ReceiptLine) []dto.ReceiptLineRow {
	out := make([]dto.ReceiptLineRow, 0, len(in))
	for _, l := range in {
		out = append(out, dto.ReceiptLineRow{
			ID: l.ID, ReceiptID: l.ReceiptID, ItemID: l.ItemID,
			Quantity: l.Quantity, ContainerID: l.Container,
		})
	}
	return out
}

func toMovementRows(in []entity.Movement) []dto.MovementRow {
	out := make([]dto.MovementRow, 0, len(in))
	for _, m := range in {
		out = append(out, dto.MovementRow{
			ID: m.ID, TransferRef: m.TransferRef, ItemID: m.ItemID,
			FromLocationID: m.FromLocationID, ToLocationID: m.ToLocationID,
			Quantity: m.Quantity, ContainerID: m.Container, OperationType: m.Mode,
			Actor: m.Actor, TransferDate: m.TransferDate, CreatedAt: m.CreatedAt,
		})
	}
	return out
}
