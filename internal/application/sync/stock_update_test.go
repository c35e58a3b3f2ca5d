package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anvarmag/skladoptima/internal/application/ports"
	"github.com/Anvarmag/skladoptima/internal/domain"
	"github.com/Anvarmag/skladoptima/internal/domain/entity"
	"github.com/Anvarmag/skladoptima/pkg/logger"
)

func newUpdater(stores *fakeStoreRepo, products *fakeProductRepo, wb *fakeWB, oz *fakeOzon) *StockUpdater {
	return NewStockUpdater(stores, products, wb, oz, logger.Nop())
}

func TestApply_MasterChange_PushedToBothMarketplaces(t *testing.T) {
	store := bothStore()
	products := newFakeProductRepo(&entity.Product{
		SKU: "sku-1", StoreID: store.ID, Barcode: "460123", StockMaster: 10, StockWB: 10, StockOzon: 10,
	})
	wb := &fakeWB{pushResult: okPush()}
	oz := &fakeOzon{pushResult: okPush()}

	u := newUpdater(&fakeStoreRepo{stores: []*entity.Store{store}}, products, wb, oz)
	res, err := u.Apply(context.Background(), store.ID, "sku-1", entity.StockFields{Master: intp(42)})
	require.NoError(t, err)

	assert.Equal(t, MarketplaceStatus{WB: StatusOK, Ozon: StatusOK}, res.Marketplaces)
	assert.Equal(t, 42, res.Product.StockMaster)
	assert.Equal(t, 42, res.Product.StockWB)
	assert.Equal(t, 42, res.Product.StockOzon)
	require.Len(t, wb.pushes, 1)
	assert.Equal(t, wbPush{Barcode: "460123", Amount: 42}, wb.pushes[0])
	require.Len(t, oz.pushes, 1)
	assert.Equal(t, ozonPush{OfferID: "sku-1", Amount: 42}, oz.pushes[0])
}

func TestApply_OzonFailure_DoesNotAffectWB(t *testing.T) {
	store := bothStore()
	products := newFakeProductRepo(&entity.Product{
		SKU: "sku-1", StoreID: store.ID, Barcode: "460123", StockMaster: 10, StockWB: 10, StockOzon: 10,
	})
	wb := &fakeWB{pushResult: okPush()}
	oz := &fakeOzon{pushResult: ports.PushResult{Success: false, StatusCode: 503, Detail: "unavailable"}}

	u := newUpdater(&fakeStoreRepo{stores: []*entity.Store{store}}, products, wb, oz)
	res, err := u.Apply(context.Background(), store.ID, "sku-1", entity.StockFields{Master: intp(7)})
	require.NoError(t, err)

	// The update itself succeeds: the failure is reported per marketplace.
	assert.Equal(t, MarketplaceStatus{WB: StatusOK, Ozon: StatusError}, res.Marketplaces)
	got := products.get("sku-1")
	assert.Equal(t, 7, got.StockMaster)
	assert.Equal(t, 7, got.StockWB)
	assert.Equal(t, 10, got.StockOzon) // stale until the next sync cycle
}

func TestApply_MissingBarcode_WBSkipped(t *testing.T) {
	store := bothStore()
	products := newFakeProductRepo(&entity.Product{
		SKU: "sku-1", StoreID: store.ID, Barcode: "", StockMaster: 10,
	})
	wb := &fakeWB{pushResult: okPush()}
	oz := &fakeOzon{pushResult: okPush()}

	u := newUpdater(&fakeStoreRepo{stores: []*entity.Store{store}}, products, wb, oz)
	res, err := u.Apply(context.Background(), store.ID, "sku-1", entity.StockFields{Master: intp(5)})
	require.NoError(t, err)

	assert.Equal(t, MarketplaceStatus{WB: StatusSkipped, Ozon: StatusOK}, res.Marketplaces)
	assert.Empty(t, wb.pushes)
}

func TestApply_UnconfiguredStore_BothSkipped(t *testing.T) {
	store := &entity.Store{ID: "store-1", Name: "Bare"}
	products := newFakeProductRepo(&entity.Product{
		SKU: "sku-1", StoreID: store.ID, Barcode: "460123", StockMaster: 10,
	})
	wb := &fakeWB{pushResult: okPush()}
	oz := &fakeOzon{pushResult: okPush()}

	u := newUpdater(&fakeStoreRepo{stores: []*entity.Store{store}}, products, wb, oz)
	res, err := u.Apply(context.Background(), store.ID, "sku-1", entity.StockFields{Master: intp(5)})
	require.NoError(t, err)

	assert.Equal(t, MarketplaceStatus{WB: StatusSkipped, Ozon: StatusSkipped}, res.Marketplaces)
	assert.Empty(t, wb.pushes)
	assert.Empty(t, oz.pushes)
	assert.Equal(t, 5, res.Product.StockMaster)
}

func TestApply_NoMasterValue_PersistsWithoutPushes(t *testing.T) {
	store := bothStore()
	products := newFakeProductRepo(&entity.Product{
		SKU: "sku-1", StoreID: store.ID, Barcode: "460123", StockMaster: 10, StockWB: 1, StockOzon: 2,
	})
	wb := &fakeWB{pushResult: okPush()}
	oz := &fakeOzon{pushResult: okPush()}

	u := newUpdater(&fakeStoreRepo{stores: []*entity.Store{store}}, products, wb, oz)
	res, err := u.Apply(context.Background(), store.ID, "sku-1", entity.StockFields{WB: intp(9)})
	require.NoError(t, err)

	assert.Equal(t, MarketplaceStatus{WB: StatusSkipped, Ozon: StatusSkipped}, res.Marketplaces)
	assert.Equal(t, 9, res.Product.StockWB)
	assert.Empty(t, wb.pushes)
	assert.Empty(t, oz.pushes)
}

func TestApply_EmptyFields_InvalidInput(t *testing.T) {
	u := newUpdater(&fakeStoreRepo{}, newFakeProductRepo(), &fakeWB{}, &fakeOzon{})

	_, err := u.Apply(context.Background(), "store-1", "sku-1", entity.StockFields{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_UnknownStoreOrProduct_NotFound(t *testing.T) {
	store := bothStore()
	products := newFakeProductRepo(&entity.Product{SKU: "sku-1", StoreID: store.ID})
	u := newUpdater(&fakeStoreRepo{stores: []*entity.Store{store}}, products, &fakeWB{}, &fakeOzon{})

	_, err := u.Apply(context.Background(), "missing-store", "sku-1", entity.StockFields{Master: intp(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = u.Apply(context.Background(), store.ID, "missing-sku", entity.StockFields{Master: intp(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
