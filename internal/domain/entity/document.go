package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType tipo de documento de inventario.
type DocumentType string

// Tipos de documento: recepciones (INPUT, SALE_RETURN) y despachos (OUTPUT, PURCHASE_RETURN).
const (
	DocumentTypeInput          DocumentType = "INPUT"           // ingreso
	DocumentTypeSaleReturn     DocumentType = "SALE_RETURN"     // devolución por venta
	DocumentTypeOutput         DocumentType = "OUTPUT"          // salida
	DocumentTypePurchaseReturn DocumentType = "PURCHASE_RETURN" // devolución por compra
)

// Valid indica si el tipo es uno de los conocidos.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeInput, DocumentTypeSaleReturn, DocumentTypeOutput, DocumentTypePurchaseReturn:
		return true
	}
	return false
}

// IsReception true para documentos que ingresan mercadería a la bodega.
func (t DocumentType) IsReception() bool {
	return t == DocumentTypeInput || t == DocumentTypeSaleReturn
}

// IsDispatch true para documentos que sacan mercadería de la bodega.
func (t DocumentType) IsDispatch() bool {
	return t == DocumentTypeOutput || t == DocumentTypePurchaseReturn
}

// Prefix prefijo del identificador que asigna el backend (ej. "OU0000000001").
func (t DocumentType) Prefix() string {
	switch t {
	case DocumentTypeInput:
		return "IN"
	case DocumentTypeSaleReturn:
		return "SR"
	case DocumentTypeOutput:
		return "OU"
	case DocumentTypePurchaseReturn:
		return "PR"
	}
	return ""
}

// DocumentStatus estado del documento.
type DocumentStatus string

const (
	DocumentStatusOpen     DocumentStatus = "OPEN"
	DocumentStatusReleased DocumentStatus = "RELEASED"
)

// Document cabecera de un documento de inventario (recepción o despacho) con sus líneas.
type Document struct {
	ID            string
	Type          DocumentType
	Date          time.Time
	Status        DocumentStatus
	Warehouse     *WarehouseReference
	Description   string
	TotalQuantity decimal.Decimal
	TotalAmount   decimal.Decimal
	Counter       int
	Deleted       bool
	Details       []Detail
}

// Clone devuelve una copia profunda; el documento resultante no comparte memoria con d.
func (d Document) Clone() Document {
	out := d
	if d.Warehouse != nil {
		w := *d.Warehouse
		out.Warehouse = &w
	}
	out.Details = CloneDetails(d.Details)
	return out
}

// Equal igualdad estructural campo a campo (decimales por valor, fechas por instante).
func (d Document) Equal(o Document) bool {
	if d.ID != o.ID || d.Type != o.Type || d.Status != o.Status ||
		d.Description != o.Description || d.Counter != o.Counter || d.Deleted != o.Deleted {
		return false
	}
	if !d.Date.Equal(o.Date) {
		return false
	}
	if !d.Warehouse.Equal(o.Warehouse) {
		return false
	}
	if !d.TotalQuantity.Equal(o.TotalQuantity) || !d.TotalAmount.Equal(o.TotalAmount) {
		return false
	}
	return DetailsEqual(d.Details, o.Details)
}

// IsReleased true si el documento ya no admite cambios.
func (d Document) IsReleased() bool {
	return d.Status == DocumentStatusReleased
}
