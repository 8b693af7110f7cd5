package editor

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-documentos/internal/domain"
	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// ValidateRepeatedItem falla si el artículo de detail ya está en alguna línea vigente.
func ValidateRepeatedItem(detail entity.Detail, rows []entity.Detail) error {
	for _, r := range rows {
		if r.Deleted {
			continue
		}
		if r.Item.SameItem(detail.Item) {
			return fmt.Errorf("%w: %s", domain.ErrRepeatedItem, detail.Item.ItemName)
		}
	}
	return nil
}

// ValidateNotEmpty falla si value es nil, texto en blanco o una bodega/artículo sin id.
func ValidateNotEmpty(value any, label string) error {
	empty := false
	switch v := value.(type) {
	case nil:
		empty = true
	case string:
		empty = strings.TrimSpace(v) == ""
	case *entity.WarehouseReference:
		empty = entity.IsWarehouseEmpty(v)
	case entity.ItemReference:
		empty = v.IsEmpty()
	}
	if empty {
		return fmt.Errorf("%w: el campo %s esta vacio", domain.ErrEmptyField, label)
	}
	return nil
}

// IsReleasedOrLocked true si el documento ya fue liberado o su bodega está bloqueada.
func IsReleasedOrLocked(doc entity.Document) bool {
	if doc.IsReleased() {
		return true
	}
	return doc.Warehouse != nil && doc.Warehouse.Locked
}
