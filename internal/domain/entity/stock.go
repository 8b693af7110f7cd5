package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock existencia de un artículo en una bodega. Se actualiza al liberar documentos.
type Stock struct {
	WarehouseID int64
	ItemID      int64
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

// StockDelta variación de existencias que produce una línea al liberarse el documento:
// positiva en recepciones, negativa en despachos.
func StockDelta(t DocumentType, quantity decimal.Decimal) decimal.Decimal {
	if t.IsDispatch() {
		return quantity.Neg()
	}
	return quantity
}
