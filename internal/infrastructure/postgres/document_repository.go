package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-documentos/internal/domain"
	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
	"github.com/jhoicas/inventario-documentos/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo documentos de inventario y sus líneas sobre PostgreSQL (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `
	d.id, d.type, d.date, d.status, w.id, w.warehouse_name, w.locked, w.deleted,
	d.description, d.total_quantity, d.total_amount, d.counter, d.deleted`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var doc entity.Document
	var w entity.WarehouseReference
	err := row.Scan(
		&doc.ID, &doc.Type, &doc.Date, &doc.Status, &w.ID, &w.WarehouseName, &w.Locked, &w.Deleted,
		&doc.Description, &doc.TotalQuantity, &doc.TotalAmount, &doc.Counter, &doc.Deleted,
	)
	if err != nil {
		return nil, err
	}
	doc.Warehouse = &w
	doc.Details = []entity.Detail{}
	return &doc, nil
}

// GetByID obtiene el documento con sus líneas (número de línea descendente).
func (r *DocumentRepo) GetByID(ctx context.Context, docType entity.DocumentType, id string) (*entity.Document, error) {
	return r.get(ctx, "", docType, id)
}

// GetForUpdate igual que GetByID pero bloquea la cabecera hasta el fin de la tx.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, docType entity.DocumentType, id string) (*entity.Document, error) {
	return r.get(ctx, " FOR UPDATE OF d", docType, id)
}

func (r *DocumentRepo) get(ctx context.Context, lock string, docType entity.DocumentType, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + `
		FROM inventory_documents d JOIN warehouses w ON w.id = d.warehouse_id
		WHERE d.type = $1 AND d.id = $2 AND NOT d.deleted` + lock
	doc, err := scanDocument(r.q.QueryRow(ctx, query, docType, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	details, err := r.listDetails(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	doc.Details = details
	return doc, nil
}

func (r *DocumentRepo) listDetails(ctx context.Context, documentID string) ([]entity.Detail, error) {
	query := `
		SELECT dd.id, dd.line_number, i.id, i.item_name, i.description, i.valuation_type,
		       COALESCE(i.barcode, ''), i.locked, dd.description, dd.quantity, dd.unit_price, dd.total_price
		FROM inventory_document_details dd JOIN items i ON i.id = dd.item_id
		WHERE dd.document_id = $1 ORDER BY dd.line_number DESC`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document details: %w", err)
	}
	defer rows.Close()
	details := []entity.Detail{}
	for rows.Next() {
		var d entity.Detail
		var id int64
		if err := rows.Scan(&id, &d.LineNumber, &d.Item.ID, &d.Item.ItemName, &d.Item.Description, &d.Item.ValuationType,
			&d.Item.Barcode, &d.Item.Locked, &d.Description, &d.Quantity, &d.UnitPrice, &d.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan document detail: %w", err)
		}
		d.ID = &id
		details = append(details, d)
	}
	return details, rows.Err()
}

// Create asigna el ID (prefijo del tipo + secuencia de 10 dígitos) e inserta cabecera y líneas.
// Las líneas marcadas como Deleted se omiten.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	if entity.IsWarehouseEmpty(doc.Warehouse) {
		return fmt.Errorf("%w: documento sin bodega", domain.ErrInvalidInput)
	}
	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('inventory_document_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("next document id: %w", err)
	}
	id := fmt.Sprintf("%s%010d", doc.Type.Prefix(), seq)

	query := `
		INSERT INTO inventory_documents (id, type, date, status, warehouse_id, description, total_quantity, total_amount, counter)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, id, doc.Type, doc.Date, doc.Status, doc.Warehouse.ID,
		doc.Description, doc.TotalQuantity, doc.TotalAmount, doc.Counter)
	if err != nil {
		return mapWriteError("insert document", err)
	}
	doc.ID = id
	return r.syncDetails(ctx, id, doc.Details)
}

// Update reemplaza la cabecera (sin tocar el estado) y sincroniza las líneas.
func (r *DocumentRepo) Update(ctx context.Context, doc *entity.Document) error {
	if entity.IsWarehouseEmpty(doc.Warehouse) {
		return fmt.Errorf("%w: documento sin bodega", domain.ErrInvalidInput)
	}
	query := `
		UPDATE inventory_documents
		SET date = $3, warehouse_id = $4, description = $5, total_quantity = $6, total_amount = $7,
		    counter = $8, updated_at = now()
		WHERE type = $1 AND id = $2 AND NOT deleted`
	cmd, err := r.q.Exec(ctx, query, doc.Type, doc.ID, doc.Date, doc.Warehouse.ID, doc.Description,
		doc.TotalQuantity, doc.TotalAmount, doc.Counter)
	if err != nil {
		return mapWriteError("update document", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return r.syncDetails(ctx, doc.ID, doc.Details)
}

// syncDetails envía en un solo batch: bajas de líneas con id, altas de líneas sin id y
// actualizaciones del resto.
func (r *DocumentRepo) syncDetails(ctx context.Context, documentID string, details []entity.Detail) error {
	b := &pgx.Batch{}
	for _, d := range details {
		if d.Deleted && d.ID != nil {
			b.Queue(`DELETE FROM inventory_document_details WHERE id = $1 AND document_id = $2`, *d.ID, documentID)
		}
	}
	for _, d := range details {
		switch {
		case d.Deleted:
		case d.ID == nil:
			b.Queue(`
				INSERT INTO inventory_document_details (document_id, line_number, item_id, description, quantity, unit_price, total_price)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				documentID, d.LineNumber, d.Item.ID, d.Description, d.Quantity, d.UnitPrice, d.TotalPrice)
		default:
			b.Queue(`
				UPDATE inventory_document_details
				SET item_id = $3, description = $4, quantity = $5, unit_price = $6, total_price = $7
				WHERE id = $1 AND document_id = $2`,
				*d.ID, documentID, d.Item.ID, d.Description, d.Quantity, d.UnitPrice, d.TotalPrice)
		}
	}
	if b.Len() == 0 {
		return nil
	}
	br := r.q.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return mapWriteError("sync document details", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("sync document details: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado (ej. OPEN -> RELEASED).
func (r *DocumentRepo) UpdateStatus(ctx context.Context, docType entity.DocumentType, id string, status entity.DocumentStatus) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_documents SET status = $3, updated_at = now() WHERE type = $1 AND id = $2 AND NOT deleted`,
		docType, id, status)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete baja lógica de la cabecera; las líneas se conservan.
func (r *DocumentRepo) Delete(ctx context.Context, docType entity.DocumentType, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_documents SET deleted = TRUE, updated_at = now() WHERE type = $1 AND id = $2 AND NOT deleted`,
		docType, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByType lista cabeceras vigentes de un tipo, más recientes primero, con el total para paginar.
// Las cabeceras listadas no traen líneas.
func (r *DocumentRepo) ListByType(ctx context.Context, docType entity.DocumentType, limit, offset int) ([]*entity.Document, int, error) {
	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_documents WHERE type = $1 AND NOT deleted`, docType).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	query := `SELECT ` + documentColumns + `
		FROM inventory_documents d JOIN warehouses w ON w.id = d.warehouse_id
		WHERE d.type = $1 AND NOT d.deleted
		ORDER BY d.date DESC, d.id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, docType, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, doc)
	}
	return list, total, rows.Err()
}

func mapWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: bodega o artículo inexistente", op, domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}
