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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo catálogo de artículos sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, item_name, description, valuation_type, COALESCE(barcode, ''), locked`

func scanItem(row pgx.Row) (*entity.ItemReference, error) {
	var it entity.ItemReference
	if err := row.Scan(&it.ID, &it.ItemName, &it.Description, &it.ValuationType, &it.Barcode, &it.Locked); err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.ItemReference, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetByBarcode obtiene un artículo por código de barras; los bloqueados no se leen.
func (r *ItemRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.ItemReference, error) {
	it, err := scanItem(r.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE barcode = $1 AND NOT locked`, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item by barcode: %w", err)
	}
	return it, nil
}
