// Package sync holds the stock synchronization core: the per-store
// reconciliation engine, the background scheduler driving it, and the
// orchestrator for user-initiated stock updates.
package sync

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Anvarmag/skladoptima/internal/application/ports"
	"github.com/Anvarmag/skladoptima/internal/domain"
	"github.com/Anvarmag/skladoptima/internal/domain/entity"
	"github.com/Anvarmag/skladoptima/internal/domain/repository"
	"github.com/Anvarmag/skladoptima/pkg/logger"
)

// Reconciler compares local master stock against marketplace-reported stock
// and issues the minimal writes needed to converge all three values.
//
// Precedence: when both marketplaces report a value different from the local
// master in the same cycle, Ozon wins and the conflicting WB report is
// deferred to the next cycle. The branches are exclusive: once Ozon has
// triggered a local change, the WB snapshot pulled at cycle start is stale
// and must not be acted on.
type Reconciler struct {
	stores   repository.StoreRepository
	products repository.ProductRepository
	wb       ports.WBGateway
	ozon     ports.OzonGateway
	log      *logger.Logger
}

// NewReconciler builds the engine with injected ports.
func NewReconciler(
	stores repository.StoreRepository,
	products repository.ProductRepository,
	wb ports.WBGateway,
	ozon ports.OzonGateway,
	log *logger.Logger,
) *Reconciler {
	return &Reconciler{stores: stores, products: products, wb: wb, ozon: ozon, log: log}
}

// RunCycle reconciles every store, one at a time. A repository failure aborts
// the whole cycle; marketplace failures only degrade the affected store's
// snapshot and are retried naturally on the next cycle.
func (r *Reconciler) RunCycle(ctx context.Context) error {
	stores, err := r.stores.ListAll()
	if err != nil {
		return fmt.Errorf("list stores: %w", err)
	}
	if len(stores) == 0 {
		r.log.Debug().Msg("sync: no stores")
		return nil
	}
	for _, store := range stores {
		if err := r.ReconcileStore(ctx, store); err != nil {
			return fmt.Errorf("store %q: %w", store.ID, err)
		}
	}
	return nil
}

// ReconcileStoreByID resolves the store and reconciles it. Returns
// domain.ErrNotFound for an unknown id.
func (r *Reconciler) ReconcileStoreByID(ctx context.Context, storeID string) error {
	store, err := r.stores.GetByID(storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	return r.ReconcileStore(ctx, store)
}

// ReconcileStore runs one full pull-compare-write pass over the store's
// products. Products are processed strictly sequentially so no two writers
// ever touch the same row inside a cycle. A store with zero products makes no
// network calls.
func (r *Reconciler) ReconcileStore(ctx context.Context, store *entity.Store) error {
	products, err := r.products.ListByStore(store.ID)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if len(products) == 0 {
		return nil
	}

	wbStocks := r.pullWB(ctx, store, products)
	ozonRows := r.pullOzon(ctx, store, products)

	for _, p := range products {
		if err := r.reconcileProduct(ctx, store, p, wbStocks, ozonRows); err != nil {
			return err
		}
	}
	return nil
}

// pullWB returns the barcode->amount snapshot, or nil when WB is not
// configured, no product has a barcode, or the pull failed. A failed pull is
// logged and treated as "no data" for this cycle.
func (r *Reconciler) pullWB(ctx context.Context, store *entity.Store, products []*entity.Product) map[string]int {
	if !store.HasWB() {
		return nil
	}
	barcodes := make([]string, 0, len(products))
	for _, p := range products {
		if p.Barcode != "" {
			barcodes = append(barcodes, p.Barcode)
		}
	}
	if len(barcodes) == 0 {
		return nil
	}
	stocks, err := r.wb.PullStocks(ctx, barcodes, WBCreds(store))
	if err != nil {
		r.log.Error().Err(err).Str("store", store.Name).Msg("sync: wb pull failed")
		return nil
	}
	return stocks
}

// pullOzon returns the raw warehouse stock rows, or nil when Ozon is not
// configured or the pull failed.
func (r *Reconciler) pullOzon(ctx context.Context, store *entity.Store, products []*entity.Product) []ports.OzonStockRow {
	if !store.HasOzon() {
		return nil
	}
	offerIDs := make([]string, 0, len(products))
	for _, p := range products {
		offerIDs = append(offerIDs, p.SKU)
	}
	rows, err := r.ozon.PullStocks(ctx, offerIDs, OzonCreds(store))
	if err != nil {
		r.log.Error().Err(err).Str("store", store.Name).Msg("sync: ozon pull failed")
		return nil
	}
	return rows
}

// reconcileProduct applies the two-step decision for one product:
//
//  1. Ozon differs from master -> Ozon wins: master and ozon take the remote
//     value, then the value is pushed to WB (if configured and the product
//     has a barcode); wb is only recorded on push success.
//  2. Otherwise WB differs from master -> WB wins, mirrored towards Ozon.
//  3. Otherwise nothing changes.
//
// A failed push leaves the pushed-to marketplace's stored value stale on
// purpose: the next cycle's pull will disagree with the new master again and
// retry the push as a fresh comparison.
func (r *Reconciler) reconcileProduct(
	ctx context.Context,
	store *entity.Store,
	p *entity.Product,
	wbStocks map[string]int,
	ozonRows []ports.OzonStockRow,
) error {
	ozonRemote := matchOzonRow(ozonRows, p.SKU, store.OzonWarehouseID)
	var wbRemote *int
	if p.Barcode != "" {
		if v, ok := wbStocks[p.Barcode]; ok {
			wbRemote = &v
		}
	}
	dbStock := p.StockMaster

	switch {
	case ozonRemote != nil && *ozonRemote != dbStock:
		remote := *ozonRemote
		r.log.Info().Str("store", store.Name).Str("sku", p.SKU).
			Int("from", dbStock).Int("to", remote).Msg("sync: ozon change detected")

		if _, err := r.products.UpdateStocks(store.ID, p.SKU, entity.StockFields{Master: &remote, Ozon: &remote}); err != nil {
			return fmt.Errorf("apply ozon value for %q: %w", p.SKU, err)
		}
		if store.HasWB() && p.Barcode != "" {
			res := r.wb.PushStock(ctx, p.Barcode, remote, WBCreds(store))
			if res.Success {
				if _, err := r.products.UpdateStocks(store.ID, p.SKU, entity.StockFields{WB: &remote}); err != nil {
					return fmt.Errorf("record wb push for %q: %w", p.SKU, err)
				}
			} else {
				r.log.Warn().Str("sku", p.SKU).Int("status", res.StatusCode).
					Str("detail", res.Detail).Msg("sync: wb push failed")
			}
		}

	case wbRemote != nil && *wbRemote != dbStock:
		remote := *wbRemote
		r.log.Info().Str("store", store.Name).Str("sku", p.SKU).
			Int("from", dbStock).Int("to", remote).Msg("sync: wb change detected")

		if _, err := r.products.UpdateStocks(store.ID, p.SKU, entity.StockFields{Master: &remote, WB: &remote}); err != nil {
			return fmt.Errorf("apply wb value for %q: %w", p.SKU, err)
		}
		if store.HasOzon() {
			res := r.ozon.PushStock(ctx, p.SKU, remote, OzonCreds(store))
			if res.Success {
				if _, err := r.products.UpdateStocks(store.ID, p.SKU, entity.StockFields{Ozon: &remote}); err != nil {
					return fmt.Errorf("record ozon push for %q: %w", p.SKU, err)
				}
			} else {
				r.log.Warn().Str("sku", p.SKU).Int("status", res.StatusCode).
					Str("detail", res.Detail).Msg("sync: ozon push failed")
			}
		}
	}
	return nil
}

// matchOzonRow finds the row for this product on the store's warehouse.
// Matching is exact string equality on trimmed offer_id and warehouse id; a
// mismatch means "no data", not an error.
func matchOzonRow(rows []ports.OzonStockRow, sku, warehouseID string) *int {
	wantSKU := strings.TrimSpace(sku)
	wantWH := strings.TrimSpace(warehouseID)
	for _, row := range rows {
		if strings.TrimSpace(row.OfferID) == wantSKU && strconv.FormatInt(row.WarehouseID, 10) == wantWH {
			v := row.Present
			return &v
		}
	}
	return nil
}

// WBCreds extracts the store's Wildberries credentials.
func WBCreds(store *entity.Store) ports.WBCredentials {
	return ports.WBCredentials{Token: store.WBToken, WarehouseID: store.WBWarehouseID}
}

// OzonCreds extracts the store's Ozon credentials.
func OzonCreds(store *entity.Store) ports.OzonCredentials {
	return ports.OzonCredentials{
		ClientID:    store.OzonClientID,
		APIKey:      store.OzonAPIKey,
		WarehouseID: store.OzonWarehouseID,
	}
}
