package editor_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-documentos/internal/application/editor"
	"github.com/jhoicas/inventario-documentos/internal/domain"
	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
	"github.com/jhoicas/inventario-documentos/internal/domain/repository"
	"github.com/jhoicas/inventario-documentos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memoryDB struct {
	mu         sync.Mutex
	docs       map[string]entity.Document
	seq        int
	detailSeq  int64
	stock      map[[2]int64]decimal.Decimal
	items      map[int64]entity.ItemReference
	warehouses map[int64]entity.WarehouseReference
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		docs:       map[string]entity.Document{},
		stock:      map[[2]int64]decimal.Decimal{},
		items:      map[int64]entity.ItemReference{},
		warehouses: map[int64]entity.WarehouseReference{},
	}
}

func docKey(t entity.DocumentType, id string) string { return string(t) + "/" + id }

type fakeDocRepo struct{ db *memoryDB }

func (r *fakeDocRepo) GetByID(_ context.Context, t entity.DocumentType, id string) (*entity.Document, error) {
	d, ok := r.db.docs[docKey(t, id)]
	if !ok || d.Deleted {
		return nil, domain.ErrNotFound
	}
	out := d.Clone()
	sort.SliceStable(out.Details, func(i, j int) bool { return out.Details[i].LineNumber > out.Details[j].LineNumber })
	return &out, nil
}

func (r *fakeDocRepo) GetForUpdate(ctx context.Context, t entity.DocumentType, id string) (*entity.Document, error) {
	return r.GetByID(ctx, t, id)
}

func (r *fakeDocRepo) syncDetails(rows []entity.Detail) []entity.Detail {
	out := make([]entity.Detail, 0, len(rows))
	for _, d := range rows {
		if d.Deleted {
			continue
		}
		d = d.Clone()
		if d.ID == nil {
			r.db.detailSeq++
			d.ID = entity.Int64Ptr(r.db.detailSeq)
		}
		out = append(out, d)
	}
	return out
}

func (r *fakeDocRepo) Create(_ context.Context, doc *entity.Document) error {
	r.db.seq++
	doc.ID = fmt.Sprintf("%s%010d", doc.Type.Prefix(), r.db.seq)
	stored := doc.Clone()
	stored.Details = r.syncDetails(doc.Details)
	r.db.docs[docKey(doc.Type, doc.ID)] = stored
	return nil
}

func (r *fakeDocRepo) Update(_ context.Context, doc *entity.Document) error {
	k := docKey(doc.Type, doc.ID)
	current, ok := r.db.docs[k]
	if !ok {
		return domain.ErrNotFound
	}
	stored := doc.Clone()
	stored.Status = current.Status
	stored.Details = r.syncDetails(doc.Details)
	r.db.docs[k] = stored
	return nil
}

func (r *fakeDocRepo) UpdateStatus(_ context.Context, t entity.DocumentType, id string, status entity.DocumentStatus) error {
	k := docKey(t, id)
	d, ok := r.db.docs[k]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	r.db.docs[k] = d
	return nil
}

func (r *fakeDocRepo) Delete(_ context.Context, t entity.DocumentType, id string) error {
	k := docKey(t, id)
	d, ok := r.db.docs[k]
	if !ok {
		return domain.ErrNotFound
	}
	d.Deleted = true
	r.db.docs[k] = d
	return nil
}

func (r *fakeDocRepo) ListByType(_ context.Context, t entity.DocumentType, limit, offset int) ([]*entity.Document, int, error) {
	var all []*entity.Document
	for _, d := range r.db.docs {
		if d.Type == t && !d.Deleted {
			c := d.Clone()
			all = append(all, &c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

type fakeStockRepo struct{ db *memoryDB }

func (r *fakeStockRepo) Get(_ context.Context, warehouseID, itemID int64) (*entity.Stock, error) {
	return &entity.Stock{WarehouseID: warehouseID, ItemID: itemID, Quantity: r.db.stock[[2]int64{warehouseID, itemID}]}, nil
}

func (r *fakeStockRepo) GetForUpdate(ctx context.Context, warehouseID, itemID int64) (*entity.Stock, error) {
	return r.Get(ctx, warehouseID, itemID)
}

func (r *fakeStockRepo) Upsert(_ context.Context, s *entity.Stock) error {
	r.db.stock[[2]int64{s.WarehouseID, s.ItemID}] = s.Quantity
	return nil
}

type fakeItemRepo struct{ db *memoryDB }

func (r *fakeItemRepo) GetByID(_ context.Context, id int64) (*entity.ItemReference, error) {
	it, ok := r.db.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (r *fakeItemRepo) GetByBarcode(_ context.Context, barcode string) (*entity.ItemReference, error) {
	for _, it := range r.db.items {
		if it.Barcode == barcode {
			it := it
			return &it, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeWarehouseRepo struct{ db *memoryDB }

func (r *fakeWarehouseRepo) GetByID(_ context.Context, id int64) (*entity.WarehouseReference, error) {
	w, ok := r.db.warehouses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &w, nil
}

func (r *fakeWarehouseRepo) List(_ context.Context, includeDeleted bool) ([]*entity.WarehouseReference, error) {
	var out []*entity.WarehouseReference
	for _, w := range r.db.warehouses {
		if w.Deleted && !includeDeleted {
			continue
		}
		w := w
		out = append(out, &w)
	}
	return out, nil
}

// fakeTxRunner restaura documentos y existencias si fn falla.
type fakeTxRunner struct{ db *memoryDB }

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.DocumentRepository, repository.StockRepository) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	docs := make(map[string]entity.Document, len(r.db.docs))
	for k, v := range r.db.docs {
		docs[k] = v.Clone()
	}
	stock := make(map[[2]int64]decimal.Decimal, len(r.db.stock))
	for k, v := range r.db.stock {
		stock[k] = v
	}
	seq, detailSeq := r.db.seq, r.db.detailSeq

	if err := fn(&fakeDocRepo{db: r.db}, &fakeStockRepo{db: r.db}); err != nil {
		r.db.docs, r.db.stock, r.db.seq, r.db.detailSeq = docs, stock, seq, detailSeq
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture del caso de uso
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerID    = "user-1"
	otherOwner = "user-2"
)

type fixture struct {
	db       *memoryDB
	sessions *editor.MemoryStore
	uc       *editor.EditorUseCase
}

func newFixture() *fixture {
	db := newMemoryDB()
	db.warehouses[1] = entity.WarehouseReference{ID: 1, WarehouseName: "warehouse one"}
	db.warehouses[2] = entity.WarehouseReference{ID: 2, WarehouseName: "warehouse locked", Locked: true}
	db.items[1] = entity.ItemReference{ID: 1, ItemName: "item one", Description: "item description one", ValuationType: "AVERAGE", Barcode: "7700000000011"}
	db.items[2] = entity.ItemReference{ID: 2, ItemName: "item two", Description: "item description two", ValuationType: "AVERAGE", Barcode: "7700000000028"}
	db.items[3] = entity.ItemReference{ID: 3, ItemName: "item locked", Locked: true, Barcode: "7700000000035"}

	sessions := editor.NewMemoryStore(0)
	uc := editor.NewEditorUseCase(
		sessions,
		&fakeTxRunner{db: db},
		&fakeDocRepo{db: db},
		&fakeItemRepo{db: db},
		&fakeWarehouseRepo{db: db},
		&fakeStockRepo{db: db},
		logger.Nop(),
	)
	return &fixture{db: db, sessions: sessions, uc: uc}
}
