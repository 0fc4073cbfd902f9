package inventory_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/internal/domain/entity"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func stockKey(item, loc int64, container string) entity.StockKey {
	return entity.StockKey{ItemID: item, LocationID: loc, Container: entity.NewContainerID(container)}
}

// recordingNotifier guarda los avisos recibidos.
type recordingNotifier struct {
	mu        sync.Mutex
	completed []inventory.OrderCompletion
	large     []inventory.LargeTransfer
}

func (n *recordingNotifier) OrderCompleted(_ context.Context, ev inventory.OrderCompletion) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed = append(n.completed, ev)
	return nil
}

func (n *recordingNotifier) LargeTransfer(_ context.Context, ev inventory.LargeTransfer) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.large = append(n.large, ev)
	return nil
}
