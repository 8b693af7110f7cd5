package entity

// WarehouseReference bodega tal como la referencia un documento.
// Locked impide registrar documentos nuevos; Deleted es una baja lógica.
type WarehouseReference struct {
	ID            int64  `json:"id"`
	WarehouseName string `json:"warehouseName"`
	Locked        bool   `json:"locked"`
	Deleted       bool   `json:"deleted"`
}

// IsWarehouseEmpty true si no hay bodega seleccionada (nil o sin id).
func IsWarehouseEmpty(w *WarehouseReference) bool {
	return w == nil || w.ID == 0
}

// Equal compara dos referencias por valor. nil solo es igual a nil: quien asigna una
// bodega sin id debe normalizarla a nil antes (ver IsWarehouseEmpty).
func (w *WarehouseReference) Equal(o *WarehouseReference) bool {
	if w == nil || o == nil {
		return w == nil && o == nil
	}
	return *w == *o
}
