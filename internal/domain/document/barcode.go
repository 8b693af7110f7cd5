package document

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// MergeResult resultado de integrar una lectura de código de barras.
type MergeResult struct {
	Rows    []entity.Detail // nueva secuencia de líneas
	Counter int             // contador de líneas tras la lectura
	Detail  entity.Detail   // línea incrementada o creada
	Matched bool            // true: se incrementó una línea existente; false: se insertó
}

// MergeScanned integra una lectura sobre rows sin modificar la entrada.
//
// Si alguna línea (incluidas las dadas de baja) tiene el mismo artículo, su cantidad sube
// exactamente en 1 y el total se recalcula con su propio precio unitario. Si no, se crea
// una línea nueva al inicio con cantidad 1 y precio 0, copiando solo artículo y descripción.
// Cantidad y precios de la lectura se ignoran siempre: el código solo identifica el artículo.
func MergeScanned(rows []entity.Detail, counter int, scanned entity.Detail) MergeResult {
	out := entity.CloneDetails(rows)

	for i := range out {
		if out[i].Item.SameItem(scanned.Item) {
			out[i].Quantity = out[i].Quantity.Add(decimal.NewFromInt(1))
			out[i].TotalPrice = entity.ComputeTotal(out[i].Quantity, out[i].UnitPrice)
			return MergeResult{Rows: out, Counter: counter, Detail: out[i].Clone(), Matched: true}
		}
	}

	counter++
	created := entity.Detail{
		LineNumber:  counter,
		Item:        scanned.Item,
		Description: scanned.Description,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.Zero,
		TotalPrice:  decimal.Zero,
	}
	out = append([]entity.Detail{created}, out...)
	return MergeResult{Rows: out, Counter: counter, Detail: created.Clone()}
}
