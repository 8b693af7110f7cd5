package document

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
	"github.com/jhoicas/inventario-documentos/pkg/dates"
)

// DefaultDocument cabecera en blanco para el tipo indicado.
func DefaultDocument(t entity.DocumentType) entity.Document {
	return entity.Document{
		Type:          t,
		Status:        entity.DocumentStatusOpen,
		TotalQuantity: decimal.Zero,
		TotalAmount:   decimal.Zero,
		Details:       []entity.Detail{},
	}
}

// StringToDate normaliza el documento recibido del servicio: la fecha en texto pasa a time.Time.
// Una fecha vacía o ilegible queda en cero.
func StringToDate(p entity.DocumentPayload) entity.Document {
	date, _ := dates.Parse(p.Date)
	var warehouse *entity.WarehouseReference
	if p.Warehouse != nil {
		w := *p.Warehouse
		warehouse = &w
	}
	return entity.Document{
		ID:            p.ID,
		Type:          p.Type,
		Date:          date,
		Status:        p.Status,
		Warehouse:     warehouse,
		Description:   p.Description,
		TotalQuantity: p.TotalQuantity,
		TotalAmount:   p.TotalAmount,
		Counter:       p.Counter,
		Deleted:       p.Deleted,
		Details:       entity.DetailsFromPayload(p.Details),
	}
}

// DateToString prepara el documento para el servicio: la fecha viaja como texto.
func DateToString(d entity.Document) entity.DocumentPayload {
	d = d.Clone()
	return entity.DocumentPayload{
		ID:            d.ID,
		Type:          d.Type,
		Date:          dates.Format(d.Date),
		Status:        d.Status,
		Warehouse:     d.Warehouse,
		Description:   d.Description,
		TotalQuantity: d.TotalQuantity,
		TotalAmount:   d.TotalAmount,
		Counter:       d.Counter,
		Deleted:       d.Deleted,
		Details:       entity.DetailsToPayload(d.Details),
	}
}
