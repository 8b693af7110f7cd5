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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// GetByID obtiene una bodega por ID, incluidas las dadas de baja.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.WarehouseReference, error) {
	query := `
		SELECT id, warehouse_name, locked, deleted
		FROM warehouses WHERE id = $1`
	var w entity.WarehouseReference
	err := r.q.QueryRow(ctx, query, id).Scan(&w.ID, &w.WarehouseName, &w.Locked, &w.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// List lista bodegas ordenadas por nombre.
func (r *WarehouseRepo) List(ctx context.Context, includeDeleted bool) ([]*entity.WarehouseReference, error) {
	query := `
		SELECT id, warehouse_name, locked, deleted
		FROM warehouses WHERE $1 OR NOT deleted ORDER BY warehouse_name`
	rows, err := r.q.Query(ctx, query, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseReference
	for rows.Next() {
		var w entity.WarehouseReference
		if err := rows.Scan(&w.ID, &w.WarehouseName, &w.Locked, &w.Deleted); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}
