package repository

import (
	"context"

	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// ItemRepository puerto de consulta del catálogo de artículos.
type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.ItemReference, error)
	// GetByBarcode busca un artículo activo por su código de barras (CODE128).
	GetByBarcode(ctx context.Context, barcode string) (*entity.ItemReference, error)
}
