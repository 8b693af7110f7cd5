package repository

import (
	"context"

	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para documentos de inventario y sus líneas.
type DocumentRepository interface {
	// GetByID devuelve el documento con sus líneas vigentes, ordenadas por número de línea descendente.
	GetByID(ctx context.Context, docType entity.DocumentType, id string) (*entity.Document, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera (SELECT ... FOR UPDATE). Solo dentro de una tx.
	GetForUpdate(ctx context.Context, docType entity.DocumentType, id string) (*entity.Document, error)
	// Create asigna ID (prefijo del tipo + secuencia) e ids de línea.
	Create(ctx context.Context, doc *entity.Document) error
	// Update reemplaza la cabecera y sincroniza las líneas: inserta las nuevas, actualiza las existentes
	// y elimina las marcadas como Deleted.
	Update(ctx context.Context, doc *entity.Document) error
	UpdateStatus(ctx context.Context, docType entity.DocumentType, id string, status entity.DocumentStatus) error
	// Delete baja lógica de la cabecera.
	Delete(ctx context.Context, docType entity.DocumentType, id string) error
	ListByType(ctx context.Context, docType entity.DocumentType, limit, offset int) ([]*entity.Document, int, error)
}
