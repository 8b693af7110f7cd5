package editor

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// View estado de la pantalla de edición: cabecera, líneas, borrador e indicadores de botones.
// Las líneas viajan en Rows; Document.Details va vacío.
type View struct {
	SessionID     string                 `json:"sessionId"`
	Document      entity.DocumentPayload `json:"document"`
	Rows          []entity.DetailPayload `json:"rows"`
	Draft         entity.DetailPayload   `json:"draft"`
	LineCounter   int                    `json:"lineCounter"`
	TotalAmount   decimal.Decimal        `json:"totalAmount"`
	TotalQuantity decimal.Decimal        `json:"totalQuantity"`

	DocumentEdited        bool `json:"documentEdited"`
	RowsEdited            bool `json:"rowsEdited"`
	ReadOnly              bool `json:"readOnly"`
	AddButtonDisabled     bool `json:"addButtonDisabled"`
	AddRowButtonDisabled  bool `json:"addRowButtonDisabled"`
	SaveButtonDisabled    bool `json:"saveButtonDisabled"`
	DeleteButtonDisabled  bool `json:"deleteButtonDisabled"`
	ReleaseButtonDisabled bool `json:"releaseButtonDisabled"`
}
