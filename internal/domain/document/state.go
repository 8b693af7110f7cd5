package document

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
	"github.com/jhoicas/inventario-documentos/pkg/dates"
)

// State cabecera en edición con sus tres instantáneas:
//   - document: valor vivo que edita el usuario.
//   - documentCopy: último valor sincronizado con el backend (tras cargar o guardar).
//   - initialDocument: cabecera en blanco del tipo seleccionado.
//
// document y documentCopy son estructuralmente iguales si y solo si no hay cambios sin guardar.
// Los indicadores de botones se derivan en cada consulta; no se almacenan.
type State struct {
	document        entity.Document
	documentCopy    entity.Document
	initialDocument entity.Document
}

// NewState construye el estado. Con initial nil se parte de la cabecera por defecto.
func NewState(initial *entity.Document, defaultDocument entity.Document) *State {
	s := &State{initialDocument: defaultDocument.Clone()}
	if initial == nil {
		s.document = defaultDocument.Clone()
		s.documentCopy = defaultDocument.Clone()
		return s
	}
	s.document = initial.Clone()
	s.documentCopy = initial.Clone()
	return s
}

func (s *State) Document() entity.Document { return s.document.Clone() }
func (s *State) DocumentCopy() entity.Document { return s.documentCopy.Clone() }
func (s *State) InitialDocument() entity.Document { return s.initialDocument.Clone() }

// UpdateDocumentField asigna un campo de document. Los campos numéricos normalizan la entrada;
// un campo desconocido o un valor de tipo incompatible no modifica nada.
func (s *State) UpdateDocumentField(field string, value any) error {
	d := s.document.Clone()
	switch field {
	case FieldID:
		v, ok := toString(value)
		if !ok {
			return ErrInvalidValue
		}
		d.ID = v
	case FieldType:
		t, ok := toDocumentType(value)
		if !ok {
			return ErrInvalidValue
		}
		d.Type = t
	case FieldDate:
		t, ok := toDate(value)
		if !ok {
			return ErrInvalidValue
		}
		d.Date = t
	case FieldStatus:
		st, ok := toStatus(value)
		if !ok {
			return ErrInvalidValue
		}
		d.Status = st
	case FieldWarehouse:
		w, ok := toWarehouse(value)
		if !ok {
			return ErrInvalidValue
		}
		d.Warehouse = w
	case FieldDescription:
		v, ok := toString(value)
		if !ok {
			return ErrInvalidValue
		}
		d.Description = v
	case FieldTotalQuantity:
		d.TotalQuantity = toDecimal(value)
	case FieldTotalAmount:
		d.TotalAmount = toDecimal(value)
	case FieldCounter:
		d.Counter = toInt(value)
	case FieldDeleted:
		b, ok := toBool(value)
		if !ok {
			return ErrInvalidValue
		}
		d.Deleted = b
	default:
		return ErrUnknownField
	}
	s.document = d
	return nil
}

// UpdateDocument reemplaza document; documentCopy e initialDocument no cambian.
func (s *State) UpdateDocument(doc entity.Document) {
	s.document = doc.Clone()
}

// UpdateDocumentCopy fija un nuevo punto "limpio" (tras guardar o cargar).
func (s *State) UpdateDocumentCopy(doc entity.Document) {
	s.documentCopy = doc.Clone()
}

// UpdateDocumentFromService normaliza las fechas del documento recibido y lo fija como
// document y documentCopy: un documento recién cargado no tiene cambios.
func (s *State) UpdateDocumentFromService(payload entity.DocumentPayload) {
	doc := StringToDate(payload)
	s.document = doc.Clone()
	s.documentCopy = doc.Clone()
}

// ClearDocument vuelve document y documentCopy a la cabecera en blanco.
func (s *State) ClearDocument() {
	s.document = s.initialDocument.Clone()
	s.documentCopy = s.initialDocument.Clone()
}

// UpdateInitialDocument cambia el tipo seleccionado. Si el tipo difiere del de document,
// las tres instantáneas pasan a la cabecera en blanco del nuevo tipo y devuelve true.
// Con el mismo tipo solo se refresca initialDocument y devuelve false.
func (s *State) UpdateInitialDocument(newType entity.DocumentType) bool {
	def := DefaultDocument(newType)
	s.initialDocument = def.Clone()
	if newType == s.document.Type {
		return false
	}
	s.document = def.Clone()
	s.documentCopy = def.Clone()
	return true
}

// DocumentEdited true si document difiere de documentCopy.
func (s *State) DocumentEdited() bool {
	return !s.document.Equal(s.documentCopy)
}

// AddButtonDisabled no se agregan líneas sin bodega seleccionada.
func (s *State) AddButtonDisabled() bool {
	return entity.IsWarehouseEmpty(s.document.Warehouse)
}

// DeleteButtonDisabled solo se elimina un documento persistido y sin cambios.
func (s *State) DeleteButtonDisabled() bool {
	return s.document.ID == "" || s.DocumentEdited()
}

// ReleaseButtonDisabled además exige totales positivos.
func (s *State) ReleaseButtonDisabled() bool {
	return s.document.ID == "" ||
		s.DocumentEdited() ||
		s.document.TotalAmount.LessThanOrEqual(decimal.Zero) ||
		s.document.TotalQuantity.LessThanOrEqual(decimal.Zero)
}

func toDocumentType(value any) (entity.DocumentType, bool) {
	switch v := value.(type) {
	case entity.DocumentType:
		return v, true
	case string:
		return entity.DocumentType(v), true
	}
	return "", false
}

func toStatus(value any) (entity.DocumentStatus, bool) {
	switch v := value.(type) {
	case entity.DocumentStatus:
		return v, true
	case string:
		return entity.DocumentStatus(v), true
	}
	return "", false
}

func toDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, true
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, true
		}
		return *v, true
	case string:
		t, _ := dates.Parse(v)
		return t, true
	}
	return time.Time{}, false
}

// toWarehouse copia la referencia; una referencia sin id equivale a no tener bodega.
func toWarehouse(value any) (*entity.WarehouseReference, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case entity.WarehouseReference:
		if entity.IsWarehouseEmpty(&v) {
			return nil, true
		}
		return &v, true
	case *entity.WarehouseReference:
		if entity.IsWarehouseEmpty(v) {
			return nil, true
		}
		w := *v
		return &w, true
	}
	return nil, false
}
