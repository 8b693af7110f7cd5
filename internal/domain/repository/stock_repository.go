package repository

import (
	"context"

	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar existencias por bodega+artículo.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve la existencia; sin fila devuelve cantidad cero, no error.
	Get(ctx context.Context, warehouseID, itemID int64) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); sin fila devuelve cantidad cero.
	GetForUpdate(ctx context.Context, warehouseID, itemID int64) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
}
