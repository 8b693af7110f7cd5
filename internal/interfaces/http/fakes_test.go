package http_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-documentos/internal/application/editor"
	"github.com/jhoicas/inventario-documentos/internal/application/report"
	"github.com/jhoicas/inventario-documentos/internal/domain"
	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
	"github.com/jhoicas/inventario-documentos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Persistencia en memoria para probar los handlers de punta a punta
// ──────────────────────────────────────────────────────────────────────────────

type store struct {
	mu         sync.Mutex
	docs       map[string]entity.Document
	seq        int
	detailSeq  int64
	stock      map[[2]int64]decimal.Decimal
	items      map[int64]entity.ItemReference
	warehouses map[int64]entity.WarehouseReference
}

func newStore() *store {
	return &store{
		docs:  map[string]entity.Document{},
		stock: map[[2]int64]decimal.Decimal{},
		items: map[int64]entity.ItemReference{
			1: {ID: 1, ItemName: "item one", ValuationType: "AVERAGE", Barcode: "7700000000011"},
			2: {ID: 2, ItemName: "item two", ValuationType: "AVERAGE", Barcode: "7700000000028"},
		},
		warehouses: map[int64]entity.WarehouseReference{
			1: {ID: 1, WarehouseName: "warehouse one"},
		},
	}
}

type docRepo struct{ s *store }

func (r *docRepo) GetByID(_ context.Context, t entity.DocumentType, id string) (*entity.Document, error) {
	d, ok := r.s.docs[string(t)+id]
	if !ok || d.Deleted {
		return nil, domain.ErrNotFound
	}
	out := d.Clone()
	sort.SliceStable(out.Details, func(i, j int) bool { return out.Details[i].LineNumber > out.Details[j].LineNumber })
	return &out, nil
}

func (r *docRepo) GetForUpdate(ctx context.Context, t entity.DocumentType, id string) (*entity.Document, error) {
	return r.GetByID(ctx, t, id)
}

func (r *docRepo) persist(doc *entity.Document, status entity.DocumentStatus) {
	stored := doc.Clone()
	stored.Status = status
	stored.Details = stored.Details[:0]
	for _, d := range doc.Details {
		if d.Deleted {
			continue
		}
		d = d.Clone()
		if d.ID == nil {
			r.s.detailSeq++
			d.ID = entity.Int64Ptr(r.s.detailSeq)
		}
		stored.Details = append(stored.Details, d)
	}
	r.s.docs[string(doc.Type)+doc.ID] = stored
}

func (r *docRepo) Create(_ context.Context, doc *entity.Document) error {
	r.s.seq++
	doc.ID = fmt.Sprintf("%s%010d", doc.Type.Prefix(), r.s.seq)
	r.persist(doc, doc.Status)
	return nil
}

func (r *docRepo) Update(_ context.Context, doc *entity.Document) error {
	current, ok := r.s.docs[string(doc.Type)+doc.ID]
	if !ok {
		return domain.ErrNotFound
	}
	r.persist(doc, current.Status)
	return nil
}

func (r *docRepo) UpdateStatus(_ context.Context, t entity.DocumentType, id string, status entity.DocumentStatus) error {
	d, ok := r.s.docs[string(t)+id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	r.s.docs[string(t)+id] = d
	return nil
}

func (r *docRepo) Delete(_ context.Context, t entity.DocumentType, id string) error {
	d, ok := r.s.docs[string(t)+id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Deleted = true
	r.s.docs[string(t)+id] = d
	return nil
}

func (r *docRepo) ListByType(_ context.Context, t entity.DocumentType, limit, offset int) ([]*entity.Document, int, error) {
	var all []*entity.Document
	for _, d := range r.s.docs {
		if d.Type == t && !d.Deleted {
			c := d.Clone()
			c.Details = []entity.Detail{}
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

type stockRepo struct{ s *store }

func (r *stockRepo) Get(_ context.Context, w, i int64) (*entity.Stock, error) {
	return &entity.Stock{WarehouseID: w, ItemID: i, Quantity: r.s.stock[[2]int64{w, i}]}, nil
}

func (r *stockRepo) GetForUpdate(ctx context.Context, w, i int64) (*entity.Stock, error) {
	return r.Get(ctx, w, i)
}

func (r *stockRepo) Upsert(_ context.Context, st *entity.Stock) error {
	r.s.stock[[2]int64{st.WarehouseID, st.ItemID}] = st.Quantity
	return nil
}

type itemRepo struct{ s *store }

func (r *itemRepo) GetByID(_ context.Context, id int64) (*entity.ItemReference, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (r *itemRepo) GetByBarcode(_ context.Context, barcode string) (*entity.ItemReference, error) {
	for _, it := range r.s.items {
		if it.Barcode == barcode {
			it := it
			return &it, nil
		}
	}
	return nil, domain.ErrNotFound
}

type warehouseRepo struct{ s *store }

func (r *warehouseRepo) GetByID(_ context.Context, id int64) (*entity.WarehouseReference, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &w, nil
}

func (r *warehouseRepo) List(_ context.Context, _ bool) ([]*entity.WarehouseReference, error) {
	var out []*entity.WarehouseReference
	for _, w := range r.s.warehouses {
		w := w
		out = append(out, &w)
	}
	return out, nil
}

// txRunner sin rollback: los handlers bajo prueba no dependen de él.
type txRunner struct{ s *store }

func (r *txRunner) Run(_ context.Context, fn func(repository.DocumentRepository, repository.StockRepository) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(&docRepo{s: r.s}, &stockRepo{s: r.s})
}

type pdfGenerator struct{}

func (pdfGenerator) GenerateDocumentPDF(context.Context, *entity.Document) ([]byte, error) {
	return []byte("%PDF-1.3 documento"), nil
}

func (pdfGenerator) GenerateBarcodeSheetPDF(_ context.Context, _ *entity.Document, cells []*report.Label) ([]byte, error) {
	return []byte(fmt.Sprintf("%%PDF-1.3 %d celdas", len(cells))), nil
}

func newUseCases(s *store) (*editor.EditorUseCase, *report.ReportUseCase) {
	docs := &docRepo{s: s}
	editorUC := editor.NewEditorUseCase(editor.NewMemoryStore(0), &txRunner{s: s}, docs,
		&itemRepo{s: s}, &warehouseRepo{s: s}, &stockRepo{s: s}, nil)
	return editorUC, report.NewReportUseCase(docs, pdfGenerator{}, nil)
}
