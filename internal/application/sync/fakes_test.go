package sync

import (
	"context"
	"errors"
	stdsync "sync"

	"github.com/Anvarmag/skladoptima/internal/application/ports"
	"github.com/Anvarmag/skladoptima/internal/domain/entity"
)

// In-memory doubles for the repository and gateway ports.

type fakeStoreRepo struct {
	stores []*entity.Store
	err    error
}

func (r *fakeStoreRepo) Create(store *entity.Store) error { r.stores = append(r.stores, store); return nil }

func (r *fakeStoreRepo) GetByID(id string) (*entity.Store, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, s := range r.stores {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeStoreRepo) ListByUser(userID string) ([]*entity.Store, error) {
	var out []*entity.Store
	for _, s := range r.stores {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStoreRepo) ListAll() ([]*entity.Store, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.stores, nil
}

func (r *fakeStoreRepo) Update(store *entity.Store) error { return nil }
func (r *fakeStoreRepo) Delete(id, userID string) error   { return nil }

type fakeProductRepo struct {
	mu       stdsync.Mutex
	products map[string]*entity.Product // keyed by sku; tests use a single store
	updates  []entity.StockFields
	err      error
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		m[p.SKU] = p
	}
	return &fakeProductRepo{products: m}
}

func (r *fakeProductRepo) Upsert(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.SKU] = product
	return nil
}

func (r *fakeProductRepo) GetBySKU(storeID, sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.products[sku]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) ListByStore(storeID string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) UpdateStocks(storeID, sku string, fields entity.StockFields) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.products[sku]
	if !ok {
		return nil, errors.New("no such product")
	}
	if fields.Master != nil {
		p.StockMaster = *fields.Master
	}
	if fields.WB != nil {
		p.StockWB = *fields.WB
	}
	if fields.Ozon != nil {
		p.StockOzon = *fields.Ozon
	}
	r.updates = append(r.updates, fields)
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Delete(storeID, sku string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, sku)
	return nil
}

func (r *fakeProductRepo) get(sku string) entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.products[sku]
}

type wbPush struct {
	Barcode string
	Amount  int
}

type fakeWB struct {
	mu         stdsync.Mutex
	stocks     map[string]int // barcode -> amount returned by PullStocks
	pullErr    error
	pushResult ports.PushResult
	pushes     []wbPush
	pulls      int
}

func okPush() ports.PushResult { return ports.PushResult{Success: true, StatusCode: 200} }

func (g *fakeWB) PushStock(ctx context.Context, barcode string, amount int, creds ports.WBCredentials) ports.PushResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pushes = append(g.pushes, wbPush{Barcode: barcode, Amount: amount})
	return g.pushResult
}

func (g *fakeWB) PullStocks(ctx context.Context, barcodes []string, creds ports.WBCredentials) (map[string]int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pulls++
	if g.pullErr != nil {
		return nil, g.pullErr
	}
	return g.stocks, nil
}

type ozonPush struct {
	OfferID string
	Amount  int
}

type fakeOzon struct {
	mu         stdsync.Mutex
	rows       []ports.OzonStockRow
	pullErr    error
	pushResult ports.PushResult
	pushes     []ozonPush
	pulls      int
}

func (g *fakeOzon) PushStock(ctx context.Context, offerID string, amount int, creds ports.OzonCredentials) ports.PushResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pushes = append(g.pushes, ozonPush{OfferID: offerID, Amount: amount})
	return g.pushResult
}

func (g *fakeOzon) PullStocks(ctx context.Context, offerIDs []string, creds ports.OzonCredentials) ([]ports.OzonStockRow, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pulls++
	if g.pullErr != nil {
		return nil, g.pullErr
	}
	return g.rows, nil
}

// bothStore has credentials for both marketplaces.
func bothStore() *entity.Store {
	return &entity.Store{
		ID:              "store-1",
		UserID:          "user-1",
		Name:            "Main",
		WBToken:         "wb-token",
		WBWarehouseID:   "777",
		OzonClientID:    "client",
		OzonAPIKey:      "key",
		OzonWarehouseID: "123456",
	}
}

func intp(v int) *int { return &v }
