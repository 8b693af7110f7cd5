package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-documentos/internal/application/editor"
	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// OpenSessionRequest abre una sesión; sin id empieza un documento en blanco.
type OpenSessionRequest struct {
	Type string `json:"type" validate:"required,oneof=INPUT SALE_RETURN OUTPUT PURCHASE_RETURN"`
	ID   string `json:"id" validate:"omitempty,alphanum,max=20"`
}

// FieldRequest asigna un campo de la cabecera o del borrador. Value se interpreta según el campo.
type FieldRequest struct {
	Field string          `json:"field" validate:"required"`
	Value json.RawMessage `json:"value"`
}

// ChangeTypeRequest cambia el tipo del documento en edición.
type ChangeTypeRequest struct {
	Type string `json:"type" validate:"required,oneof=INPUT SALE_RETURN OUTPUT PURCHASE_RETURN"`
}

// ChangeTypeResponse indica si el tipo cambió (y con él se vaciaron las líneas).
type ChangeTypeResponse struct {
	Changed bool         `json:"changed"`
	View    *editor.View `json:"view"`
}

// DetailRequest línea completa (borrador o línea a actualizar). El artículo se identifica por id.
type DetailRequest struct {
	ID          *int64          `json:"id"`
	LineNumber  int             `json:"lineNumber" validate:"min=0"`
	ItemID      int64           `json:"itemId" validate:"min=0"`
	Description string          `json:"description" validate:"max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// ToDetail convierte la solicitud en una línea; el artículo se completa desde el catálogo.
func (r DetailRequest) ToDetail() entity.Detail {
	return entity.Detail{
		ID:          r.ID,
		LineNumber:  r.LineNumber,
		Item:        entity.ItemReference{ID: r.ItemID},
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		TotalPrice:  r.TotalPrice,
	}
}

// RemoveDetailsRequest líneas a dar de baja: las guardadas por id, las aún sin guardar por
// número de línea. Se exige al menos una.
type RemoveDetailsRequest struct {
	IDs         []int64 `json:"ids" validate:"omitempty,dive,gt=0"`
	LineNumbers []int   `json:"lineNumbers" validate:"omitempty,dive,gt=0"`
}

// Empty true si la solicitud no selecciona ninguna línea.
func (r RemoveDetailsRequest) Empty() bool {
	return len(r.IDs) == 0 && len(r.LineNumbers) == 0
}

// RemoveDetailsResponse cantidad de líneas que cambiaron.
type RemoveDetailsResponse struct {
	Removed int          `json:"removed"`
	View    *editor.View `json:"view"`
}

// BarcodeRequest lectura de un código de barras.
type BarcodeRequest struct {
	Barcode string `json:"barcode" validate:"required,max=64"`
}

// BarcodeSheetRequest posiciones marcadas en la hoja (30 por página).
type BarcodeSheetRequest struct {
	Positions []bool `json:"positions" validate:"required,min=1"`
}

// DocumentListResponse página de documentos.
type DocumentListResponse struct {
	Items []entity.DocumentPayload `json:"items"`
	Page  PageResponse             `json:"page"`
}

// WarehouseListResponse bodegas disponibles.
type WarehouseListResponse struct {
	Items []*entity.WarehouseReference `json:"items"`
}
