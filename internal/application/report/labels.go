package report

import (
	"fmt"
	"sort"

	"github.com/jhoicas/inventario-documentos/internal/domain"
	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// LayoutLabels reparte las etiquetas de las líneas vigentes (número de línea ascendente) sobre las
// posiciones marcadas de la grilla. Las líneas sin código de barras se omiten.
// La grilla se completa hasta un múltiplo de LabelsPerPage; las posiciones sobrantes quedan vacías.
func LayoutLabels(details []entity.Detail, positions []bool) ([]*Label, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("%w: no se indicaron posiciones", domain.ErrInvalidInput)
	}
	pages := (len(positions) + LabelsPerPage - 1) / LabelsPerPage
	if pages > MaxLabelPages {
		return nil, fmt.Errorf("%w: máximo %d hojas", domain.ErrInvalidInput, MaxLabelPages)
	}

	labels := labelsFor(details)
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: el documento no tiene artículos con código de barras", domain.ErrInvalidInput)
	}

	cells := make([]*Label, pages*LabelsPerPage)
	next := 0
	for i, selected := range positions {
		if !selected || next == len(labels) {
			continue
		}
		l := labels[next]
		cells[i] = &l
		next++
	}
	if next < len(labels) {
		return nil, fmt.Errorf("%w: se necesitan %d posiciones y se marcaron %d",
			domain.ErrInvalidInput, len(labels), next)
	}
	return cells, nil
}

func labelsFor(details []entity.Detail) []Label {
	active := make([]entity.Detail, 0, len(details))
	for _, d := range details {
		if !d.Deleted && d.Item.Barcode != "" {
			active = append(active, d)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].LineNumber < active[j].LineNumber })

	out := make([]Label, len(active))
	for i, d := range active {
		out[i] = Label{Barcode: d.Item.Barcode, ItemName: d.Item.ItemName, Line: d.LineNumber}
	}
	return out
}
