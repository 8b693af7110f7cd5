package document

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// DetailSeed valores iniciales de una colección (normalmente los que envía el servidor).
type DetailSeed struct {
	Details  []entity.Detail
	Counter  int
	Amount   decimal.Decimal
	Quantity decimal.Decimal
}

// DetailCollection líneas confirmadas de un documento con sus totales.
// Invariante: totalAmount y totalQuantity suman solo las líneas con Deleted == false.
type DetailCollection struct {
	rows          []entity.Detail
	lineCounter   int
	totalAmount   decimal.Decimal
	totalQuantity decimal.Decimal
	rowsEdited    bool
	seed          DetailSeed
}

// NewDetailCollection construye la colección. Con semilla, las líneas se toman tal cual
// (sin ordenar) y los totales son los de la semilla; un total sembrado en cero con líneas
// presentes se calcula a partir de ellas.
func NewDetailCollection(seed *DetailSeed) *DetailCollection {
	c := &DetailCollection{}
	var s DetailSeed
	if seed != nil {
		s = *seed
	}
	c.applySeed(s)
	return c
}

func (c *DetailCollection) applySeed(s DetailSeed) {
	rows := entity.CloneDetails(s.Details)
	amount, quantity := Aggregate(rows)
	if !s.Amount.IsZero() || len(rows) == 0 {
		amount = s.Amount
	}
	if !s.Quantity.IsZero() || len(rows) == 0 {
		quantity = s.Quantity
	}
	c.seed = DetailSeed{
		Details:  entity.CloneDetails(rows),
		Counter:  s.Counter,
		Amount:   amount,
		Quantity: quantity,
	}
	c.rows = rows
	c.lineCounter = s.Counter
	c.totalAmount = amount
	c.totalQuantity = quantity
	c.rowsEdited = false
}

// Aggregate suma totalPrice y quantity de las líneas no eliminadas.
func Aggregate(rows []entity.Detail) (amount, quantity decimal.Decimal) {
	amount, quantity = decimal.Zero, decimal.Zero
	for _, r := range rows {
		if r.Deleted {
			continue
		}
		amount = amount.Add(r.TotalPrice)
		quantity = quantity.Add(r.Quantity)
	}
	return amount, quantity
}

func (c *DetailCollection) recompute() {
	c.totalAmount, c.totalQuantity = Aggregate(c.rows)
}

// Rows copia de las líneas (más reciente primero).
func (c *DetailCollection) Rows() []entity.Detail { return entity.CloneDetails(c.rows) }

// ActiveRows copia de las líneas no eliminadas.
func (c *DetailCollection) ActiveRows() []entity.Detail {
	out := make([]entity.Detail, 0, len(c.rows))
	for _, r := range c.rows {
		if !r.Deleted {
			out = append(out, r.Clone())
		}
	}
	return out
}

func (c *DetailCollection) LineCounter() int { return c.lineCounter }
func (c *DetailCollection) TotalAmount() decimal.Decimal { return c.totalAmount }
func (c *DetailCollection) TotalQuantity() decimal.Decimal { return c.totalQuantity }
func (c *DetailCollection) RowsEdited() bool { return c.rowsEdited }

// IncrementLineCounter incrementa y devuelve el contador de líneas.
func (c *DetailCollection) IncrementLineCounter() int {
	c.lineCounter++
	return c.lineCounter
}

// CreateDetail copia el candidato en una línea nueva; no modifica la colección.
func (c *DetailCollection) CreateDetail(candidate entity.Detail) entity.Detail {
	return candidate.Clone()
}

// AddDetail numera la línea, la inserta al inicio y suma sus valores a los totales.
func (c *DetailCollection) AddDetail(detail entity.Detail) entity.Detail {
	d := detail.Clone()
	d.LineNumber = c.IncrementLineCounter()
	c.rows = append([]entity.Detail{d}, c.rows...)
	if !d.Deleted {
		c.totalAmount = c.totalAmount.Add(d.TotalPrice)
		c.totalQuantity = c.totalQuantity.Add(d.Quantity)
	}
	c.rowsEdited = true
	return d.Clone()
}

// UpdateDetails reemplaza en su posición la línea con el mismo id y recalcula los totales completos.
func (c *DetailCollection) UpdateDetails(detail entity.Detail) bool {
	found := false
	for i := range c.rows {
		if c.rows[i].SameID(detail) {
			c.rows[i] = detail.Clone()
			found = true
			break
		}
	}
	c.recompute()
	c.rowsEdited = true
	return found
}

// RemoveDetails marca como eliminadas las líneas de selection (por id, o por número de línea
// las que aún no tienen id). Las líneas no se retiran de la colección. Devuelve cuántas cambiaron.
func (c *DetailCollection) RemoveDetails(selection []entity.Detail) int {
	changed := 0
	for i := range c.rows {
		for _, s := range selection {
			if c.rows[i].SameRow(s) {
				if !c.rows[i].Deleted {
					c.rows[i].Deleted = true
					changed++
				}
				break
			}
		}
	}
	c.recompute()
	if changed > 0 {
		c.rowsEdited = true
	}
	return changed
}

// SortRow devuelve una copia ordenada por lineNumber descendente.
func (c *DetailCollection) SortRow(rows []entity.Detail) []entity.Detail {
	return SortByLineNumberDesc(rows)
}

// SortByLineNumberDesc copia ordenada por lineNumber descendente (estable).
func SortByLineNumberDesc(rows []entity.Detail) []entity.Detail {
	out := entity.CloneDetails(rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].LineNumber > out[j].LineNumber })
	return out
}

// ResetDetails descarta los cambios y vuelve a la última semilla.
func (c *DetailCollection) ResetDetails() {
	c.rows = entity.CloneDetails(c.seed.Details)
	c.lineCounter = c.seed.Counter
	c.totalAmount = c.seed.Amount
	c.totalQuantity = c.seed.Quantity
	c.rowsEdited = false
}

// ClearDetails vacía la colección. Quitar líneas existentes cuenta como edición.
func (c *DetailCollection) ClearDetails() {
	if len(c.rows) > 0 {
		c.rowsEdited = true
	}
	c.rows = []entity.Detail{}
	c.lineCounter = 0
	c.totalAmount = decimal.Zero
	c.totalQuantity = decimal.Zero
}

// UpdateDetailFromService reemplaza líneas, contador y totales con los valores confirmados por el servidor.
func (c *DetailCollection) UpdateDetailFromService(rows []entity.Detail, counter int, totalAmount, totalQuantity decimal.Decimal) {
	c.rows = entity.CloneDetails(rows)
	c.lineCounter = counter
	c.totalAmount = totalAmount
	c.totalQuantity = totalQuantity
}

// Reseed reemplaza los datos con los del servidor y los fija como nuevo punto de ResetDetails.
func (c *DetailCollection) Reseed(seed DetailSeed) {
	c.applySeed(seed)
	c.UpdateDetailFromService(c.seed.Details, c.seed.Counter, c.seed.Amount, c.seed.Quantity)
	c.rowsEdited = false
}

// ReadDetailFromBarcode integra una lectura: incrementa la línea del mismo artículo o crea una nueva.
// Una lectura sin artículo no hace nada y devuelve false.
func (c *DetailCollection) ReadDetailFromBarcode(scanned entity.Detail) (entity.Detail, bool) {
	if scanned.Item.IsEmpty() {
		return entity.Detail{}, false
	}
	res := MergeScanned(c.rows, c.lineCounter, scanned)
	c.rows = res.Rows
	c.lineCounter = res.Counter
	c.recompute()
	c.rowsEdited = true
	return res.Detail, true
}
