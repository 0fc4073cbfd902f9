package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/wms-sync/internal/domain/entity"
	"github.com/jhoicas/wms-sync/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo log de traslados sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste una línea de traslado y asigna ID y created_at.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO inventory_transfers
			(transfer_ref, item_id, from_location_id, to_location_id, quantity, container_id, operation_type, actor, transfer_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		m.TransferRef, m.ItemID, m.FromLocationID, m.ToLocationID, m.Quantity,
		m.Container.Nullable(), m.Mode, m.Actor, m.TransferDate,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create inventory transfer: %w", err)
	}
	return nil
}
