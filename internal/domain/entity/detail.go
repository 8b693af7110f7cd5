package entity

import "github.com/shopspring/decimal"

// ItemReference referencia al artículo de una línea. La identidad es ID.
type ItemReference struct {
	ID            int64  `json:"id,omitempty"`
	ItemName      string `json:"itemName,omitempty"`
	Description   string `json:"description,omitempty"`
	ValuationType string `json:"valuationType,omitempty"`
	Barcode       string `json:"barcode,omitempty"`
	Locked        bool   `json:"locked,omitempty"`
}

// IsEmpty true si no hay artículo seleccionado.
func (i ItemReference) IsEmpty() bool {
	return i.ID == 0
}

// Equal igualdad estructural.
func (i ItemReference) Equal(o ItemReference) bool {
	return i == o
}

// SameItem compara solo la identidad del artículo.
func (i ItemReference) SameItem(o ItemReference) bool {
	return !i.IsEmpty() && i.ID == o.ID
}

// Detail línea de detalle de un documento.
// ID es nil hasta que el backend lo asigna; LineNumber se asigna al agregar la línea y no cambia.
// Deleted es una baja lógica: la línea permanece para informar al backend qué ids retirar.
type Detail struct {
	ID          *int64
	LineNumber  int
	Item        ItemReference
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Deleted     bool
}

// Round2 redondea a dos decimales (montos).
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// ComputeTotal devuelve round2(quantity * unitPrice).
func ComputeTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return Round2(quantity.Mul(unitPrice))
}

// SameID true si ambas líneas tienen id y coincide.
func (d Detail) SameID(o Detail) bool {
	return d.ID != nil && o.ID != nil && *d.ID == *o.ID
}

// SameRow identifica la misma línea de la colección: por id si ambas lo tienen; si ninguna
// lo tiene (línea aún sin guardar), por número de línea.
func (d Detail) SameRow(o Detail) bool {
	if d.ID != nil || o.ID != nil {
		return d.SameID(o)
	}
	return d.LineNumber > 0 && d.LineNumber == o.LineNumber
}

// Clone copia profunda de la línea.
func (d Detail) Clone() Detail {
	out := d
	if d.ID != nil {
		id := *d.ID
		out.ID = &id
	}
	return out
}

// Equal igualdad estructural de dos líneas.
func (d Detail) Equal(o Detail) bool {
	if (d.ID == nil) != (o.ID == nil) {
		return false
	}
	if d.ID != nil && *d.ID != *o.ID {
		return false
	}
	return d.LineNumber == o.LineNumber &&
		d.Item.Equal(o.Item) &&
		d.Description == o.Description &&
		d.Quantity.Equal(o.Quantity) &&
		d.UnitPrice.Equal(o.UnitPrice) &&
		d.TotalPrice.Equal(o.TotalPrice) &&
		d.Deleted == o.Deleted
}

// CloneDetails copia profunda de una secuencia; nunca devuelve nil.
func CloneDetails(in []Detail) []Detail {
	out := make([]Detail, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}

// DetailsEqual compara dos secuencias elemento a elemento (nil y vacía son iguales).
func DetailsEqual(a, b []Detail) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Int64Ptr helper para ids opcionales.
func Int64Ptr(v int64) *int64 {
	return &v
}
