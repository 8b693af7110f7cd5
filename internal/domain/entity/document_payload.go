package entity

import "github.com/shopspring/decimal"

// DocumentPayload forma del documento en la frontera con la capa de servicio:
// mismos campos que Document pero la fecha viaja como texto "DD-MM-YYYY HH:mm:ss.SSS".
type DocumentPayload struct {
	ID            string              `json:"id,omitempty"`
	Type          DocumentType        `json:"type"`
	Date          string              `json:"date"`
	Status        DocumentStatus      `json:"status"`
	Warehouse     *WarehouseReference `json:"warehouse"`
	Description   string              `json:"description"`
	TotalQuantity decimal.Decimal     `json:"totalQuantity"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	Counter       int                 `json:"counter"`
	Deleted       bool                `json:"deleted"`
	Details       []DetailPayload     `json:"details"`
}

// DetailPayload forma de una línea en la frontera con la capa de servicio.
type DetailPayload struct {
	ID          *int64          `json:"id"`
	LineNumber  int             `json:"lineNumber"`
	Item        ItemReference   `json:"item"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Deleted     bool            `json:"deleted"`
}

// ToDetail convierte la línea recibida al modelo de dominio.
func (p DetailPayload) ToDetail() Detail {
	return Detail{
		ID:          p.ID,
		LineNumber:  p.LineNumber,
		Item:        p.Item,
		Description: p.Description,
		Quantity:    p.Quantity,
		UnitPrice:   p.UnitPrice,
		TotalPrice:  p.TotalPrice,
		Deleted:     p.Deleted,
	}.Clone()
}

// DetailToPayload convierte una línea de dominio a su forma de intercambio.
func DetailToPayload(d Detail) DetailPayload {
	d = d.Clone()
	return DetailPayload{
		ID:          d.ID,
		LineNumber:  d.LineNumber,
		Item:        d.Item,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		TotalPrice:  d.TotalPrice,
		Deleted:     d.Deleted,
	}
}

// DetailsFromPayload convierte una secuencia recibida; nunca devuelve nil.
func DetailsFromPayload(in []DetailPayload) []Detail {
	out := make([]Detail, len(in))
	for i, p := range in {
		out[i] = p.ToDetail()
	}
	return out
}

// DetailsToPayload convierte una secuencia de dominio; nunca devuelve nil.
func DetailsToPayload(in []Detail) []DetailPayload {
	out := make([]DetailPayload, len(in))
	for i, d := range in {
		out[i] = DetailToPayload(d)
	}
	return out
}
