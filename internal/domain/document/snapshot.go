package document

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// Snapshot captura serializable del motor completo de una sesión de edición:
// cabecera (tres instantáneas), colección de líneas con su semilla y borrador.
type Snapshot struct {
	Document        entity.DocumentPayload `json:"document"`
	DocumentCopy    entity.DocumentPayload `json:"documentCopy"`
	InitialDocument entity.DocumentPayload `json:"initialDocument"`

	Rows          []entity.DetailPayload `json:"rows"`
	LineCounter   int                    `json:"lineCounter"`
	TotalAmount   decimal.Decimal        `json:"totalAmount"`
	TotalQuantity decimal.Decimal        `json:"totalQuantity"`
	RowsEdited    bool                   `json:"rowsEdited"`

	SeedRows     []entity.DetailPayload `json:"seedRows"`
	SeedCounter  int                    `json:"seedCounter"`
	SeedAmount   decimal.Decimal        `json:"seedAmount"`
	SeedQuantity decimal.Decimal        `json:"seedQuantity"`

	Draft entity.DetailPayload `json:"draft"`
}

// Capture toma la instantánea de los tres componentes.
func Capture(state *State, details *DetailCollection, draft *RowDraft) Snapshot {
	return Snapshot{
		Document:        DateToString(state.document),
		DocumentCopy:    DateToString(state.documentCopy),
		InitialDocument: DateToString(state.initialDocument),
		Rows:            entity.DetailsToPayload(details.rows),
		LineCounter:     details.lineCounter,
		TotalAmount:     details.totalAmount,
		TotalQuantity:   details.totalQuantity,
		RowsEdited:      details.rowsEdited,
		SeedRows:        entity.DetailsToPayload(details.seed.Details),
		SeedCounter:     details.seed.Counter,
		SeedAmount:      details.seed.Amount,
		SeedQuantity:    details.seed.Quantity,
		Draft:           entity.DetailToPayload(draft.row),
	}
}

// Restore reconstruye los tres componentes a partir de la instantánea.
// Las fechas viajan con precisión de milisegundos en la zona local.
func (s Snapshot) Restore() (*State, *DetailCollection, *RowDraft) {
	state := &State{
		document:        StringToDate(s.Document),
		documentCopy:    StringToDate(s.DocumentCopy),
		initialDocument: StringToDate(s.InitialDocument),
	}
	details := &DetailCollection{
		rows:          entity.DetailsFromPayload(s.Rows),
		lineCounter:   s.LineCounter,
		totalAmount:   s.TotalAmount,
		totalQuantity: s.TotalQuantity,
		rowsEdited:    s.RowsEdited,
		seed: DetailSeed{
			Details:  entity.DetailsFromPayload(s.SeedRows),
			Counter:  s.SeedCounter,
			Amount:   s.SeedAmount,
			Quantity: s.SeedQuantity,
		},
	}
	draft := &RowDraft{row: s.Draft.ToDetail()}
	return state, details, draft
}
