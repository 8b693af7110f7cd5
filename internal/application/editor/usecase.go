package editor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-documentos/internal/domain"
	"github.com/jhoicas/inventario-documentos/internal/domain/document"
	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
	"github.com/jhoicas/inventario-documentos/internal/domain/repository"
	"github.com/jhoicas/inventario-documentos/pkg/logger"
)

// EditorUseCase orquesta las sesiones de edición contra la persistencia:
// abrir, editar, guardar, liberar y eliminar documentos de inventario.
type EditorUseCase struct {
	sessions      SessionStore
	txRunner      TxRunner
	docRepo       repository.DocumentRepository
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockRepository
	log           *logger.Logger
	now           func() time.Time
	newID         func() string
}

// NewEditorUseCase construye el caso de uso.
func NewEditorUseCase(
	sessions SessionStore,
	txRunner TxRunner,
	docRepo repository.DocumentRepository,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
	log *logger.Logger,
) *EditorUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &EditorUseCase{
		sessions:      sessions,
		txRunner:      txRunner,
		docRepo:       docRepo,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
		log:           log.Component("editor"),
		now:           time.Now,
		newID:         func() string { return uuid.New().String() },
	}
}

// OpenInput datos para abrir una sesión. ID vacío abre un documento en blanco.
type OpenInput struct {
	OwnerID string
	Type    entity.DocumentType
	ID      string
}

// Open abre una sesión de edición en blanco o cargando el documento indicado.
func (uc *EditorUseCase) Open(ctx context.Context, in OpenInput) (*View, error) {
	sess, err := NewSession(uc.newID(), in.OwnerID, in.Type, uc.now())
	if err != nil {
		return nil, err
	}
	if in.ID != "" {
		doc, err := uc.docRepo.GetByID(ctx, in.Type, in.ID)
		if err != nil {
			return nil, err
		}
		if doc == nil || doc.Deleted {
			return nil, domain.ErrNotFound
		}
		sess.LoadFromService(document.DateToString(*doc))
	}
	if err := uc.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("session_id", sess.ID).
		Str("type", string(in.Type)).
		Str("document_id", in.ID).
		Msg("sesión de edición abierta")
	return sess.View(), nil
}

// Get devuelve la vista de la sesión.
func (uc *EditorUseCase) Get(ctx context.Context, sessionID, ownerID string) (*View, error) {
	sess, err := uc.load(ctx, sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	return sess.View(), nil
}

// Close cierra la sesión descartando los cambios sin guardar.
func (uc *EditorUseCase) Close(ctx context.Context, sessionID, ownerID string) error {
	if _, err := uc.load(ctx, sessionID, ownerID); err != nil {
		return err
	}
	return uc.sessions.Delete(ctx, sessionID)
}

// Apply ejecuta una operación síncrona del motor sobre la sesión y la guarda.
func (uc *EditorUseCase) Apply(ctx context.Context, sessionID, ownerID string, fn func(*Session) error) (*View, error) {
	sess, err := uc.sessions.Update(ctx, sessionID, func(s *Session) error {
		if s.OwnerID != ownerID {
			return domain.ErrForbidden
		}
		return fn(s)
	})
	if err != nil {
		return nil, err
	}
	return sess.View(), nil
}

// SetDocumentField asigna un campo de la cabecera. Una bodega se valida contra el catálogo:
// debe existir y no estar bloqueada ni eliminada.
func (uc *EditorUseCase) SetDocumentField(ctx context.Context, sessionID, ownerID, field string, value any) (*View, error) {
	if field == document.FieldWarehouse {
		if w, ok := value.(*entity.WarehouseReference); ok && !entity.IsWarehouseEmpty(w) {
			stored, err := uc.warehouseRepo.GetByID(ctx, w.ID)
			if err != nil {
				return nil, err
			}
			if stored == nil {
				return nil, domain.ErrNotFound
			}
			if stored.Locked || stored.Deleted {
				return nil, fmt.Errorf("%w: bodega %s no disponible", domain.ErrConflict, stored.WarehouseName)
			}
			value = stored
		}
	}
	return uc.Apply(ctx, sessionID, ownerID, func(s *Session) error {
		return s.SetField(field, value)
	})
}

// SetDraftField asigna un campo del borrador. Un artículo se toma del catálogo.
func (uc *EditorUseCase) SetDraftField(ctx context.Context, sessionID, ownerID, field string, value any) (*View, error) {
	if field == document.FieldItem {
		if it, ok := value.(entity.ItemReference); ok && !it.IsEmpty() {
			stored, err := uc.lookupItem(ctx, it.ID)
			if err != nil {
				return nil, err
			}
			value = *stored
		}
	}
	return uc.Apply(ctx, sessionID, ownerID, func(s *Session) error {
		return s.SetDraftField(field, value)
	})
}

// SetDraft reemplaza el borrador completo; el artículo, si viene, se toma del catálogo.
func (uc *EditorUseCase) SetDraft(ctx context.Context, sessionID, ownerID string, d entity.Detail) (*View, error) {
	if !d.Item.IsEmpty() {
		stored, err := uc.lookupItem(ctx, d.Item.ID)
		if err != nil {
			return nil, err
		}
		d.Item = *stored
	}
	return uc.Apply(ctx, sessionID, ownerID, func(s *Session) error {
		s.SetDraft(d)
		return nil
	})
}

// UpdateDetail reemplaza una línea guardada con el artículo vigente del catálogo.
func (uc *EditorUseCase) UpdateDetail(ctx context.Context, sessionID, ownerID string, d entity.Detail) (*View, error) {
	if d.Item.IsEmpty() {
		return nil, ValidateNotEmpty(d.Item, "articulo")
	}
	stored, err := uc.lookupItem(ctx, d.Item.ID)
	if err != nil {
		return nil, err
	}
	d.Item = *stored
	return uc.Apply(ctx, sessionID, ownerID, func(s *Session) error {
		return s.UpdateDetail(d)
	})
}

// Warehouses bodegas disponibles para nuevos documentos (sin bloqueadas ni eliminadas).
func (uc *EditorUseCase) Warehouses(ctx context.Context) ([]*entity.WarehouseReference, error) {
	all, err := uc.warehouseRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.WarehouseReference, 0, len(all))
	for _, w := range all {
		if !w.Locked && !w.Deleted {
			out = append(out, w)
		}
	}
	return out, nil
}

func (uc *EditorUseCase) lookupItem(ctx context.Context, id int64) (*entity.ItemReference, error) {
	it, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	if it.Locked {
		return nil, fmt.Errorf("%w: articulo %s bloqueado", domain.ErrConflict, it.ItemName)
	}
	return it, nil
}

// ScanBarcode busca el artículo por código de barras y lo integra a las líneas.
// En despachos el artículo debe tener existencias en la bodega del documento.
func (uc *EditorUseCase) ScanBarcode(ctx context.Context, sessionID, ownerID, barcode string) (*View, error) {
	if err := ValidateNotEmpty(barcode, "codigo de barras"); err != nil {
		return nil, err
	}
	sess, err := uc.load(ctx, sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := sess.guardEditable(); err != nil {
		return nil, err
	}
	doc := sess.Document()
	if err := ValidateNotEmpty(doc.Warehouse, "bodega"); err != nil {
		return nil, err
	}

	it, err := uc.itemRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("%w: codigo %s", domain.ErrNotFound, barcode)
	}
	if it.Locked {
		return nil, fmt.Errorf("%w: articulo %s bloqueado", domain.ErrConflict, it.ItemName)
	}
	if doc.Type.IsDispatch() {
		st, err := uc.stockRepo.Get(ctx, doc.Warehouse.ID, it.ID)
		if err != nil {
			return nil, err
		}
		if st == nil || !st.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: articulo %s sin existencias en la bodega", domain.ErrConflict, it.ItemName)
		}
	}

	scanned := entity.Detail{Item: *it, Description: it.Description}
	view, err := uc.Apply(ctx, sessionID, ownerID, func(s *Session) error {
		_, err := s.ScanBarcode(scanned)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("session_id", sessionID).Str("barcode", barcode).Int64("item_id", it.ID).Msg("lectura de código de barras")
	return view, nil
}

// Save guarda el documento: alta si aún no tiene id, modificación si ya lo tiene.
// Al terminar, la versión devuelta por la base queda como nuevo punto limpio de la sesión.
func (uc *EditorUseCase) Save(ctx context.Context, sessionID, ownerID string) (*View, error) {
	sess, err := uc.load(ctx, sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := sess.guardEditable(); err != nil {
		return nil, err
	}
	if sess.SaveDisabled() {
		return sess.View(), nil
	}

	doc := sess.ComposeForSave(uc.now())
	if err := ValidateNotEmpty(doc.Warehouse, "bodega"); err != nil {
		return nil, err
	}
	if len(activeDetails(doc.Details)) == 0 {
		return nil, fmt.Errorf("%w: el documento no tiene lineas", domain.ErrInvalidInput)
	}

	creating := doc.ID == ""
	var saved *entity.Document
	err = uc.txRunner.Run(ctx, func(docRepo repository.DocumentRepository, _ repository.StockRepository) error {
		if creating {
			doc.Status = entity.DocumentStatusOpen
			if err := docRepo.Create(ctx, &doc); err != nil {
				return err
			}
		} else {
			current, err := docRepo.GetForUpdate(ctx, doc.Type, doc.ID)
			if err != nil {
				return err
			}
			if current.IsReleased() {
				return domain.ErrReleasedDocument
			}
			if err := docRepo.Update(ctx, &doc); err != nil {
				return err
			}
		}
		var err error
		saved, err = docRepo.GetByID(ctx, doc.Type, doc.ID)
		return err
	})
	if err != nil {
		uc.log.Error().Err(err).Str("session_id", sessionID).Str("document_id", doc.ID).Msg("error al guardar documento")
		return nil, err
	}

	view, err := uc.rebaseline(ctx, sessionID, ownerID, *saved)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("session_id", sessionID).
		Str("document_id", saved.ID).
		Bool("created", creating).
		Str("total_amount", saved.TotalAmount.StringFixed(2)).
		Msg("documento guardado")
	return view, nil
}

// Release libera el documento y mueve las existencias de la bodega en la misma transacción.
// Un despacho que deje existencias negativas se rechaza completo.
func (uc *EditorUseCase) Release(ctx context.Context, sessionID, ownerID string) (*View, error) {
	sess, err := uc.load(ctx, sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := sess.guardEditable(); err != nil {
		return nil, err
	}
	if sess.ReleaseDisabled() {
		return nil, fmt.Errorf("%w: el documento debe estar guardado y con totales positivos", domain.ErrConflict)
	}

	doc := sess.Persisted()
	var released *entity.Document
	err = uc.txRunner.Run(ctx, func(docRepo repository.DocumentRepository, stockRepo repository.StockRepository) error {
		current, err := docRepo.GetForUpdate(ctx, doc.Type, doc.ID)
		if err != nil {
			return err
		}
		if current.IsReleased() {
			return domain.ErrReleasedDocument
		}
		if entity.IsWarehouseEmpty(current.Warehouse) {
			return fmt.Errorf("%w: documento sin bodega", domain.ErrInvalidInput)
		}
		for _, d := range activeDetails(current.Details) {
			if err := applyStock(ctx, stockRepo, current.Type, current.Warehouse.ID, d); err != nil {
				return err
			}
		}
		if err := docRepo.UpdateStatus(ctx, current.Type, current.ID, entity.DocumentStatusReleased); err != nil {
			return err
		}
		released, err = docRepo.GetByID(ctx, current.Type, current.ID)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("session_id", sessionID).Str("document_id", doc.ID).Msg("no se pudo liberar el documento")
		return nil, err
	}

	view, err := uc.rebaseline(ctx, sessionID, ownerID, *released)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("session_id", sessionID).Str("document_id", released.ID).Msg("documento liberado")
	return view, nil
}

func applyStock(ctx context.Context, stockRepo repository.StockRepository, t entity.DocumentType, warehouseID int64, d entity.Detail) error {
	st, err := stockRepo.GetForUpdate(ctx, warehouseID, d.Item.ID)
	if err != nil {
		return err
	}
	current := decimal.Zero
	if st != nil {
		current = st.Quantity
	}
	next := current.Add(entity.StockDelta(t, d.Quantity))
	if next.IsNegative() {
		return fmt.Errorf("%w: existencias insuficientes de %s (disponible %s, requerido %s)",
			domain.ErrConflict, d.Item.ItemName, current.String(), d.Quantity.String())
	}
	return stockRepo.Upsert(ctx, &entity.Stock{WarehouseID: warehouseID, ItemID: d.Item.ID, Quantity: next})
}

// Delete elimina el documento persistido y deja la sesión con un documento en blanco del mismo tipo.
func (uc *EditorUseCase) Delete(ctx context.Context, sessionID, ownerID string) (*View, error) {
	sess, err := uc.load(ctx, sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := sess.guardEditable(); err != nil {
		return nil, err
	}
	if sess.DeleteDisabled() {
		return nil, fmt.Errorf("%w: el documento debe estar guardado y sin cambios", domain.ErrConflict)
	}
	doc := sess.Persisted()
	if err := uc.docRepo.Delete(ctx, doc.Type, doc.ID); err != nil {
		return nil, err
	}
	view, err := uc.Apply(ctx, sessionID, ownerID, func(s *Session) error {
		s.New()
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("session_id", sessionID).Str("document_id", doc.ID).Msg("documento eliminado")
	return view, nil
}

// DocumentPage página de documentos de un tipo.
type DocumentPage struct {
	Items []entity.DocumentPayload
	Total int
}

// List lista los documentos de un tipo (más recientes primero).
func (uc *EditorUseCase) List(ctx context.Context, t entity.DocumentType, limit, offset int) (*DocumentPage, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownType, t)
	}
	docs, total, err := uc.docRepo.ListByType(ctx, t, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]entity.DocumentPayload, 0, len(docs))
	for _, d := range docs {
		items = append(items, document.DateToString(*d))
	}
	return &DocumentPage{Items: items, Total: total}, nil
}

func (uc *EditorUseCase) load(ctx context.Context, sessionID, ownerID string) (*Session, error) {
	sess, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return sess, nil
}

func (uc *EditorUseCase) rebaseline(ctx context.Context, sessionID, ownerID string, saved entity.Document) (*View, error) {
	payload := document.DateToString(saved)
	view, err := uc.Apply(ctx, sessionID, ownerID, func(s *Session) error {
		s.LoadFromService(payload)
		return nil
	})
	if errors.Is(err, domain.ErrSessionNotFound) {
		uc.log.Warn().Str("session_id", sessionID).Str("document_id", saved.ID).Msg("la sesión expiró durante la operación; el documento quedó persistido")
	}
	return view, err
}

func activeDetails(rows []entity.Detail) []entity.Detail {
	out := make([]entity.Detail, 0, len(rows))
	for _, r := range rows {
		if !r.Deleted {
			out = append(out, r)
		}
	}
	return out
}
