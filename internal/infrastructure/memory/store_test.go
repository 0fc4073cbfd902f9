package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/internal/domain"
	"github.com/jhoicas/wms-sync/internal/domain/entity"
	"github.com/jhoicas/wms-sync/internal/domain/repository"
	"github.com/jhoicas/wms-sync/internal/infrastructure/memory"
)

func key(item, loc int64, container string) entity.StockKey {
	return entity.StockKey{ItemID: item, LocationID: loc, Container: entity.NewContainerID(container)}
}

func TestStore_RollbackDescartaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	boom := errors.New("boom")
	err := s.Run(ctx, func(repos inventory.Repos) error {
		require.NoError(t, repos.Stock.Insert(ctx, key(1, 1, ""), decimal.NewFromInt(5)))
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, s.Stock(), "una tx fallida no deja filas")

	require.NoError(t, s.Run(ctx, func(repos inventory.Repos) error {
		return repos.Stock.Insert(ctx, key(1, 1, ""), decimal.NewFromInt(5))
	}))
	assert.Len(t, s.Stock(), 1)
}

func TestStore_ContenedorNoEsComodin(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	s.PutStock(key(1, 1, "P1"), decimal.NewFromInt(3))

	require.NoError(t, s.Run(ctx, func(repos inventory.Repos) error {
		row, err := repos.Stock.GetForUpdate(ctx, key(1, 1, ""))
		require.NoError(t, err)
		assert.Nil(t, row, "NONE no coincide con P1")

		row, err = repos.Stock.GetForUpdate(ctx, key(1, 1, "P1"))
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.True(t, row.Quantity.Equal(decimal.NewFromInt(3)))
		return nil
	}))
}

func TestStore_DeleteDejaLapida(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return at })
	s.PutStock(key(7, 2, ""), decimal.NewFromInt(1))
	row, ok := s.Row(key(7, 2, ""))
	require.True(t, ok)

	require.NoError(t, s.Run(ctx, func(repos inventory.Repos) error {
		return repos.Stock.Delete(ctx, row.ID)
	}))
	removals := s.StockRemovals()
	require.Len(t, removals, 1)
	assert.Equal(t, int64(7), removals[0].ItemID)
	assert.True(t, removals[0].Container.IsNone())
	assert.Equal(t, at, removals[0].DeletedAt)
}

func TestStore_RequestsDuplicado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	reqs := s.Requests()

	rec := &entity.ProcessedRequest{IdempotencyKey: "k1", OperationKind: "goods_receipt", Status: entity.RequestSucceeded, ResultRef: "10"}
	require.NoError(t, reqs.Save(ctx, rec))
	err := reqs.Save(ctx, &entity.ProcessedRequest{IdempotencyKey: "k1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := reqs.Get(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "10", got.ResultRef)

	missing, err := reqs.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_SyncFiltraPorMarcaDeAgua(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	t0 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	s.SetClock(func() time.Time { return t0 })
	s.AddLocation("RAMPA", "Rampa de recepción")
	old := s.AddPurchaseOrder("PO-1", entity.PurchaseOrderLine{ItemID: 1, Quantity: decimal.NewFromInt(2)})

	s.SetClock(func() time.Time { return t1 })
	s.AddLocation("A-01", "Rack A")
	s.PutStock(key(1, 1, ""), decimal.NewFromInt(4))

	require.NoError(t, s.Run(ctx, func(repos inventory.Repos) error {
		_, err := repos.Orders.MarkCompleted(ctx, old.ID)
		return err
	}))

	since := t1
	require.NoError(t, s.RunReadOnly(ctx, func(repo repository.SyncRepository) error {
		locs, err := repo.Locations(ctx, &since)
		require.NoError(t, err)
		require.Len(t, locs, 1)
		assert.Equal(t, "A-01", locs[0].Code)

		orders, err := repo.PurchaseOrders(ctx, &since)
		require.NoError(t, err)
		require.Len(t, orders, 1, "la orden se actualizó en t1")
		lines, err := repo.PurchaseOrderLines(ctx, &since)
		require.NoError(t, err)
		assert.Len(t, lines, 1, "las líneas viajan con su cabecera")

		all, err := repo.Locations(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, all, 2)
		return nil
	}))
}

func TestStore_FailOn(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	boom := errors.New("conexión perdida")
	s.FailOn("movement.create", boom)

	err := s.Run(ctx, func(repos inventory.Repos) error {
		return repos.Movements.Create(ctx, &entity.Movement{ItemID: 1})
	})
	assert.ErrorIs(t, err, boom)

	s.FailOn("movement.create", nil)
	require.NoError(t, s.Run(ctx, func(repos inventory.Repos) error {
		return repos.Movements.Create(ctx, &entity.Movement{ItemID: 1})
	}))
	assert.Len(t, s.Movements(), 1)
}
