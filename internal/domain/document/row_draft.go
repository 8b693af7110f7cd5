package document

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// RowDraft línea en edición antes de agregarse a la colección de detalles.
type RowDraft struct {
	row entity.Detail
}

// EmptyDetail valor por defecto de una línea.
func EmptyDetail() entity.Detail {
	return entity.Detail{
		Quantity:   decimal.Zero,
		UnitPrice:  decimal.Zero,
		TotalPrice: decimal.Zero,
	}
}

// NewRowDraft construye el borrador vacío.
func NewRowDraft() *RowDraft {
	return &RowDraft{row: EmptyDetail()}
}

// Row copia del borrador actual.
func (r *RowDraft) Row() entity.Detail {
	return r.row.Clone()
}

// UpdateRowData reemplaza el borrador completo, sin validar.
func (r *RowDraft) UpdateRowData(detail entity.Detail) {
	r.row = detail.Clone()
}

// UpdateRowDataField asigna un campo. quantity y unitPrice normalizan vacíos a cero y
// recalculan totalPrice con los valores vigentes de ambos campos.
func (r *RowDraft) UpdateRowDataField(field string, value any) error {
	switch field {
	case FieldQuantity:
		r.row.Quantity = toDecimal(value)
		r.row.TotalPrice = entity.ComputeTotal(r.row.Quantity, r.row.UnitPrice)
	case FieldUnitPrice:
		r.row.UnitPrice = toDecimal(value)
		r.row.TotalPrice = entity.ComputeTotal(r.row.Quantity, r.row.UnitPrice)
	case FieldTotalPrice:
		r.row.TotalPrice = toDecimal(value)
	case FieldDescription:
		s, ok := toString(value)
		if !ok {
			return ErrInvalidValue
		}
		r.row.Description = s
	case FieldItem:
		item, ok := toItem(value)
		if !ok {
			return ErrInvalidValue
		}
		r.row.Item = item
	case FieldID:
		id, ok := toOptionalID(value)
		if !ok {
			return ErrInvalidValue
		}
		r.row.ID = id
	case FieldLineNumber:
		r.row.LineNumber = toInt(value)
	case FieldDeleted:
		b, ok := toBool(value)
		if !ok {
			return ErrInvalidValue
		}
		r.row.Deleted = b
	default:
		return ErrUnknownField
	}
	return nil
}

// ClearRowData vuelve al borrador vacío.
func (r *RowDraft) ClearRowData() {
	r.row = EmptyDetail()
}

// AddButtonDisabled sin artículo o con total cero la línea no se puede agregar.
func (r *RowDraft) AddButtonDisabled() bool {
	return r.row.Item.IsEmpty() || r.row.TotalPrice.LessThanOrEqual(decimal.Zero)
}

func toItem(value any) (entity.ItemReference, bool) {
	switch v := value.(type) {
	case nil:
		return entity.ItemReference{}, true
	case entity.ItemReference:
		return v, true
	case *entity.ItemReference:
		if v == nil {
			return entity.ItemReference{}, true
		}
		return *v, true
	}
	return entity.ItemReference{}, false
}
