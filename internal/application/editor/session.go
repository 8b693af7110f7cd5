package editor

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventario-documentos/internal/domain"
	"github.com/jhoicas/inventario-documentos/internal/domain/document"
	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// Session pantalla de edición de un documento: combina la cabecera (State), las líneas
// confirmadas (DetailCollection) y el borrador de línea (RowDraft).
type Session struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time

	state   *document.State
	details *document.DetailCollection
	draft   *document.RowDraft
}

// NewSession abre una sesión con la cabecera en blanco del tipo indicado.
func NewSession(id, ownerID string, docType entity.DocumentType, now time.Time) (*Session, error) {
	if !docType.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownType, docType)
	}
	return &Session{
		ID:        id,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
		state:     document.NewState(nil, document.DefaultDocument(docType)),
		details:   document.NewDetailCollection(nil),
		draft:     document.NewRowDraft(),
	}, nil
}

// Type tipo de documento que se está editando.
func (s *Session) Type() entity.DocumentType {
	return s.state.Document().Type
}

// Document copia de la cabecera en edición.
func (s *Session) Document() entity.Document {
	return s.state.Document()
}

// Persisted copia de la última versión sincronizada con el backend.
func (s *Session) Persisted() entity.Document {
	return s.state.DocumentCopy()
}

// Rows copia de las líneas confirmadas.
func (s *Session) Rows() []entity.Detail {
	return s.details.Rows()
}

// Draft copia del borrador de línea.
func (s *Session) Draft() entity.Detail {
	return s.draft.Row()
}

// ReadOnly true si el documento persistido ya no admite cambios.
func (s *Session) ReadOnly() bool {
	return IsReleasedOrLocked(s.state.DocumentCopy())
}

func (s *Session) guardEditable() error {
	if s.ReadOnly() {
		return domain.ErrReleasedDocument
	}
	return nil
}

// LoadFromService fija como punto limpio la versión devuelta por el backend:
// cabecera y copia, líneas (más reciente primero) y semilla de ResetDetails.
func (s *Session) LoadFromService(payload entity.DocumentPayload) {
	s.state.UpdateDocumentFromService(payload)
	doc := s.state.Document()
	s.details.Reseed(document.DetailSeed{
		Details:  document.SortByLineNumberDesc(doc.Details),
		Counter:  doc.Counter,
		Amount:   doc.TotalAmount,
		Quantity: doc.TotalQuantity,
	})
}

// ChangeType cambia el tipo seleccionado. Si realmente cambia, la cabecera y las líneas
// vuelven a estar en blanco.
func (s *Session) ChangeType(t entity.DocumentType) (bool, error) {
	if !t.Valid() {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownType, t)
	}
	changed := s.state.UpdateInitialDocument(t)
	if changed {
		s.details.Reseed(document.DetailSeed{})
		s.draft.ClearRowData()
	}
	return changed, nil
}

// New descarta el documento actual y empieza uno en blanco del mismo tipo.
func (s *Session) New() {
	s.state.ClearDocument()
	s.details.Reseed(document.DetailSeed{})
	s.draft.ClearRowData()
}

// SetField asigna un campo de la cabecera.
func (s *Session) SetField(field string, value any) error {
	if err := s.guardEditable(); err != nil {
		return err
	}
	return s.state.UpdateDocumentField(field, value)
}

// SetDraft reemplaza el borrador completo.
func (s *Session) SetDraft(d entity.Detail) {
	s.draft.UpdateRowData(d)
}

// SetDraftField asigna un campo del borrador.
func (s *Session) SetDraftField(field string, value any) error {
	return s.draft.UpdateRowDataField(field, value)
}

// ClearDraft vacía el borrador.
func (s *Session) ClearDraft() {
	s.draft.ClearRowData()
}

// CommitDraft agrega el borrador como línea nueva y lo vacía.
// Exige bodega seleccionada, borrador habilitado y que el artículo no esté repetido.
func (s *Session) CommitDraft() (entity.Detail, error) {
	if err := s.guardEditable(); err != nil {
		return entity.Detail{}, err
	}
	if err := ValidateNotEmpty(s.state.Document().Warehouse, "bodega"); err != nil {
		return entity.Detail{}, err
	}
	row := s.draft.Row()
	if err := ValidateNotEmpty(row.Item, "articulo"); err != nil {
		return entity.Detail{}, err
	}
	if s.draft.AddButtonDisabled() {
		return entity.Detail{}, fmt.Errorf("%w: el total de la linea debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if err := ValidateRepeatedItem(row, s.details.Rows()); err != nil {
		return entity.Detail{}, err
	}
	row.ID = nil
	row.Deleted = false
	added := s.details.AddDetail(s.details.CreateDetail(row))
	s.draft.ClearRowData()
	return added, nil
}

// UpdateDetail reemplaza artículo, descripción, cantidad y precio de una línea persistida.
// El número de línea no cambia y una línea dada de baja no se edita.
// El total se recalcula a partir de cantidad y precio.
func (s *Session) UpdateDetail(d entity.Detail) error {
	if err := s.guardEditable(); err != nil {
		return err
	}
	if d.ID == nil {
		return fmt.Errorf("%w: la linea no tiene id", domain.ErrInvalidInput)
	}
	var (
		current entity.Detail
		others  []entity.Detail
		found   bool
	)
	for _, r := range s.details.Rows() {
		if r.SameID(d) {
			current, found = r, true
			continue
		}
		others = append(others, r)
	}
	if !found {
		return fmt.Errorf("%w: linea %d", domain.ErrNotFound, *d.ID)
	}
	if current.Deleted {
		return fmt.Errorf("%w: la linea %d fue dada de baja", domain.ErrConflict, current.LineNumber)
	}
	if err := ValidateRepeatedItem(d, others); err != nil {
		return err
	}
	d.LineNumber = current.LineNumber
	d.Deleted = false
	d.TotalPrice = entity.ComputeTotal(d.Quantity, d.UnitPrice)
	s.details.UpdateDetails(d)
	return nil
}

// RemoveDetails da de baja las líneas guardadas con los ids indicados y las líneas sin guardar
// con los números de línea indicados. Devuelve cuántas cambiaron.
func (s *Session) RemoveDetails(ids []int64, lineNumbers []int) (int, error) {
	if err := s.guardEditable(); err != nil {
		return 0, err
	}
	selection := make([]entity.Detail, 0, len(ids)+len(lineNumbers))
	for _, id := range ids {
		selection = append(selection, entity.Detail{ID: entity.Int64Ptr(id)})
	}
	for _, ln := range lineNumbers {
		selection = append(selection, entity.Detail{LineNumber: ln})
	}
	return s.details.RemoveDetails(selection), nil
}

// ScanBarcode integra la lectura de un artículo.
func (s *Session) ScanBarcode(scanned entity.Detail) (entity.Detail, error) {
	if err := s.guardEditable(); err != nil {
		return entity.Detail{}, err
	}
	if err := ValidateNotEmpty(s.state.Document().Warehouse, "bodega"); err != nil {
		return entity.Detail{}, err
	}
	d, ok := s.details.ReadDetailFromBarcode(scanned)
	if !ok {
		return entity.Detail{}, fmt.Errorf("%w: lectura sin articulo", domain.ErrInvalidInput)
	}
	return d, nil
}

// DiscardDetailChanges vuelve las líneas a la última versión sincronizada.
func (s *Session) DiscardDetailChanges() {
	s.details.ResetDetails()
}

// ComposeForSave arma el documento a enviar: líneas y totales salen de la colección y
// una fecha sin asignar toma now.
func (s *Session) ComposeForSave(now time.Time) entity.Document {
	doc := s.state.Document()
	doc.Details = s.details.Rows()
	doc.TotalAmount = s.details.TotalAmount()
	doc.TotalQuantity = s.details.TotalQuantity()
	doc.Counter = s.details.LineCounter()
	if doc.Date.IsZero() {
		doc.Date = now.Truncate(time.Millisecond)
	}
	return doc
}

// SaveDisabled sin cambios en cabecera ni en líneas no hay nada que guardar.
func (s *Session) SaveDisabled() bool {
	return s.ReadOnly() || !(s.state.DocumentEdited() || s.details.RowsEdited())
}

// DeleteDisabled además del estado de la cabecera exige que no haya líneas sin guardar.
func (s *Session) DeleteDisabled() bool {
	return s.state.DeleteButtonDisabled() || s.details.RowsEdited() || s.ReadOnly()
}

// ReleaseDisabled mismas condiciones que DeleteDisabled más totales positivos.
func (s *Session) ReleaseDisabled() bool {
	return s.state.ReleaseButtonDisabled() || s.details.RowsEdited() || s.ReadOnly()
}

// View proyección de la sesión para la interfaz.
func (s *Session) View() *View {
	doc := document.DateToString(s.state.Document())
	doc.Details = []entity.DetailPayload{}
	return &View{
		SessionID:             s.ID,
		Document:              doc,
		Rows:                  entity.DetailsToPayload(s.details.Rows()),
		Draft:                 entity.DetailToPayload(s.draft.Row()),
		LineCounter:           s.details.LineCounter(),
		TotalAmount:           s.details.TotalAmount(),
		TotalQuantity:         s.details.TotalQuantity(),
		DocumentEdited:        s.state.DocumentEdited(),
		RowsEdited:            s.details.RowsEdited(),
		ReadOnly:              s.ReadOnly(),
		AddButtonDisabled:     s.state.AddButtonDisabled() || s.ReadOnly(),
		AddRowButtonDisabled:  s.draft.AddButtonDisabled() || s.state.AddButtonDisabled() || s.ReadOnly(),
		SaveButtonDisabled:    s.SaveDisabled(),
		DeleteButtonDisabled:  s.DeleteDisabled(),
		ReleaseButtonDisabled: s.ReleaseDisabled(),
	}
}

// sessionRecord forma serializable de una sesión (Redis o memoria).
type sessionRecord struct {
	ID        string            `json:"id"`
	OwnerID   string            `json:"ownerId"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Engine    document.Snapshot `json:"engine"`
}

func (s *Session) record() sessionRecord {
	return sessionRecord{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Engine:    document.Capture(s.state, s.details, s.draft),
	}
}

func (r sessionRecord) session() *Session {
	state, details, draft := r.Engine.Restore()
	return &Session{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		state:     state,
		details:   details,
		draft:     draft,
	}
}
