package editor

import (
	"context"

	"github.com/jhoicas/inventario-documentos/internal/domain/repository"
)

// SessionStore persiste las sesiones de edición abiertas.
// Update carga la sesión, aplica fn y guarda el resultado de forma atómica respecto de otras
// actualizaciones de la misma sesión; si fn devuelve error no se guarda nada.
type SessionStore interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la liberación de un documento y el movimiento de existencias sean atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		stockRepo repository.StockRepository,
	) error) error
}
