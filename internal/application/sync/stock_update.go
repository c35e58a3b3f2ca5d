package sync

import (
	"context"
	stdsync "sync"

	"github.com/Anvarmag/skladoptima/internal/application/ports"
	"github.com/Anvarmag/skladoptima/internal/domain"
	"github.com/Anvarmag/skladoptima/internal/domain/entity"
	"github.com/Anvarmag/skladoptima/internal/domain/repository"
	"github.com/Anvarmag/skladoptima/pkg/logger"
)

// Per-marketplace status tags returned to the caller of Apply.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// MarketplaceStatus reports per-marketplace outcome of a user-initiated
// stock update.
type MarketplaceStatus struct {
	WB   string `json:"wb"`
	Ozon string `json:"ozon"`
}

// UpdateResult is the outcome of a user-initiated stock update.
type UpdateResult struct {
	Product      *entity.Product
	Marketplaces MarketplaceStatus
}

// StockUpdater handles a single user-initiated quantity change: persist it
// locally first, then push the new master value to every configured
// marketplace in parallel, and record only the pushes that succeeded.
//
// Unlike the reconciler's tie-break, both marketplaces are always attempted
// here: a direct user edit is supposed to reach every configured marketplace.
type StockUpdater struct {
	stores   repository.StoreRepository
	products repository.ProductRepository
	wb       ports.WBGateway
	ozon     ports.OzonGateway
	log      *logger.Logger
}

// NewStockUpdater builds the orchestrator with injected ports.
func NewStockUpdater(
	stores repository.StoreRepository,
	products repository.ProductRepository,
	wb ports.WBGateway,
	ozon ports.OzonGateway,
	log *logger.Logger,
) *StockUpdater {
	return &StockUpdater{stores: stores, products: products, wb: wb, ozon: ozon, log: log}
}

// pushBranch is the collected outcome of one marketplace push attempt.
type pushBranch struct {
	attempted bool
	result    ports.PushResult
}

func (b pushBranch) status() string {
	switch {
	case !b.attempted:
		return StatusSkipped
	case b.result.Success:
		return StatusOK
	default:
		return StatusError
	}
}

// Apply performs the update for (storeID, sku).
//
// Supplied fields are persisted locally before any network call so the record
// survives push failures. Pushes only happen when a master quantity was
// supplied; explicit wb/ozon values are direct overwrites without a push.
// The two push branches are dispatched concurrently and both are always
// awaited: one branch failing never cancels the other.
func (u *StockUpdater) Apply(ctx context.Context, storeID, sku string, fields entity.StockFields) (*UpdateResult, error) {
	if fields.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	store, err := u.stores.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := u.products.GetBySKU(storeID, sku)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	// Local persistence first.
	product, err := u.products.UpdateStocks(storeID, sku, fields)
	if err != nil {
		return nil, err
	}

	status := MarketplaceStatus{WB: StatusSkipped, Ozon: StatusSkipped}
	if fields.Master == nil {
		return &UpdateResult{Product: product, Marketplaces: status}, nil
	}
	amount := *fields.Master

	var wbBr, ozonBr pushBranch
	var wg stdsync.WaitGroup

	if store.HasWB() {
		if existing.Barcode == "" {
			// Not an error: the product is excluded from WB until it gets a barcode.
			u.log.Warn().Str("sku", sku).Msg("wb push skipped: product has no barcode")
		} else {
			wbBr.attempted = true
			wg.Add(1)
			go func() {
				defer wg.Done()
				wbBr.result = u.wb.PushStock(ctx, existing.Barcode, amount, WBCreds(store))
			}()
		}
	}
	if store.HasOzon() {
		ozonBr.attempted = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			ozonBr.result = u.ozon.PushStock(ctx, sku, amount, OzonCreds(store))
		}()
	}
	wg.Wait()

	confirm := entity.StockFields{}
	if wbBr.attempted {
		if wbBr.result.Success {
			confirm.WB = &amount
		} else {
			u.log.Error().Str("sku", sku).Int("status", wbBr.result.StatusCode).
				Str("detail", wbBr.result.Detail).Msg("wb push failed")
		}
	}
	if ozonBr.attempted {
		if ozonBr.result.Success {
			confirm.Ozon = &amount
		} else {
			u.log.Error().Str("sku", sku).Int("status", ozonBr.result.StatusCode).
				Str("detail", ozonBr.result.Detail).Msg("ozon push failed")
		}
	}

	// Record only confirmed pushes; failed branches keep their stale value
	// and self-heal on the next sync cycle.
	if !confirm.IsZero() {
		product, err = u.products.UpdateStocks(storeID, sku, confirm)
		if err != nil {
			return nil, err
		}
	}

	status.WB = wbBr.status()
	status.Ozon = ozonBr.status()
	return &UpdateResult{Product: product, Marketplaces: status}, nil
}
