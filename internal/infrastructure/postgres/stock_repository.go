package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
	"github.com/jhoicas/inventario-documentos/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la existencia actual de un artículo en una bodega.
func (r *StockRepo) Get(ctx context.Context, warehouseID, itemID int64) (*entity.Stock, error) {
	return r.get(ctx, `
		SELECT warehouse_id, item_id, quantity, updated_at
		FROM warehouse_stock WHERE warehouse_id = $1 AND item_id = $2`, warehouseID, itemID)
}

// GetForUpdate obtiene la existencia con bloqueo de fila (SELECT FOR UPDATE). Usar dentro de una tx.
func (r *StockRepo) GetForUpdate(ctx context.Context, warehouseID, itemID int64) (*entity.Stock, error) {
	return r.get(ctx, `
		SELECT warehouse_id, item_id, quantity, updated_at
		FROM warehouse_stock WHERE warehouse_id = $1 AND item_id = $2
		FOR UPDATE`, warehouseID, itemID)
}

func (r *StockRepo) get(ctx context.Context, query string, warehouseID, itemID int64) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, warehouseID, itemID).Scan(&s.WarehouseID, &s.ItemID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{WarehouseID: warehouseID, ItemID: itemID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad (por bodega y artículo).
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO warehouse_stock (warehouse_id, item_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (warehouse_id, item_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, stock.WarehouseID, stock.ItemID, stock.Quantity); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
