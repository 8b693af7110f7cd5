package repository

import (
	"context"

	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para bodegas (DIP).
type WarehouseRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.WarehouseReference, error)
	List(ctx context.Context, includeDeleted bool) ([]*entity.WarehouseReference, error)
}
