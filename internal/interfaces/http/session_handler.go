package http

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-documentos/internal/application/dto"
	"github.com/jhoicas/inventario-documentos/internal/application/editor"
	"github.com/jhoicas/inventario-documentos/internal/domain/document"
	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
	"github.com/jhoicas/inventario-documentos/pkg/logger"
)

// SessionHandler expone la pantalla de edición: una sesión por documento abierto.
type SessionHandler struct {
	uc  *editor.EditorUseCase
	log *logger.Logger
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *editor.EditorUseCase, log *logger.Logger) *SessionHandler {
	return &SessionHandler{uc: uc, log: log}
}

// Open godoc
// @Summary      Abrir sesión de edición
// @Description  Sin id empieza un documento en blanco; con id carga el documento guardado.
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenSessionRequest  true  "Tipo y documento"
// @Success      201   {object}  editor.View
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sessions [post]
func (h *SessionHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenSessionRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	view, err := h.uc.Open(c.Context(), editor.OpenInput{
		OwnerID: GetUserID(c),
		Type:    entity.DocumentType(in.Type),
		ID:      in.ID,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Get godoc
// @Summary      Vista de la sesión
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  editor.View
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{sid} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.Get(c.Context(), c.Params("sid"), GetUserID(c)))
}

// Close descarta la sesión sin guardar.
func (h *SessionHandler) Close(c *fiber.Ctx) error {
	if err := h.uc.Close(c.Context(), c.Params("sid"), GetUserID(c)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetDocumentField godoc
// @Summary      Asignar campo de la cabecera
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sid   path  string            true  "ID de la sesión"
// @Param        body  body  dto.FieldRequest  true  "Campo y valor"
// @Success      200   {object}  editor.View
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sessions/{sid}/document [patch]
func (h *SessionHandler) SetDocumentField(c *fiber.Ctx) error {
	var in dto.FieldRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	if in.Field == document.FieldType {
		return writeError(c, h.log, badRequest("VALIDATION", "el tipo se cambia con PUT /type"))
	}
	value, err := decodeFieldValue(in.Field, in.Value)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c)(h.uc.SetDocumentField(c.Context(), c.Params("sid"), GetUserID(c), in.Field, value))
}

// ChangeType cambia el tipo; si cambia, las líneas y el borrador se vacían.
func (h *SessionHandler) ChangeType(c *fiber.Ctx) error {
	var in dto.ChangeTypeRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	var changed bool
	view, err := h.uc.Apply(c.Context(), c.Params("sid"), GetUserID(c), func(s *editor.Session) error {
		var err error
		changed, err = s.ChangeType(entity.DocumentType(in.Type))
		return err
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ChangeTypeResponse{Changed: changed, View: view})
}

// New descarta el documento actual y deja uno en blanco del mismo tipo.
func (h *SessionHandler) New(c *fiber.Ctx) error {
	return h.apply(c, func(s *editor.Session) error {
		s.New()
		return nil
	})
}

// SetDraftField asigna un campo del borrador de línea.
func (h *SessionHandler) SetDraftField(c *fiber.Ctx) error {
	var in dto.FieldRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	value, err := decodeFieldValue(in.Field, in.Value)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c)(h.uc.SetDraftField(c.Context(), c.Params("sid"), GetUserID(c), in.Field, value))
}

// SetDraft reemplaza el borrador completo.
func (h *SessionHandler) SetDraft(c *fiber.Ctx) error {
	var in dto.DetailRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c)(h.uc.SetDraft(c.Context(), c.Params("sid"), GetUserID(c), in.ToDetail()))
}

// ClearDraft vacía el borrador.
func (h *SessionHandler) ClearDraft(c *fiber.Ctx) error {
	return h.apply(c, func(s *editor.Session) error {
		s.ClearDraft()
		return nil
	})
}

// CommitDraft godoc
// @Summary      Agregar el borrador como línea
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  editor.View
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "artículo repetido"
// @Router       /api/sessions/{sid}/draft/commit [post]
func (h *SessionHandler) CommitDraft(c *fiber.Ctx) error {
	return h.apply(c, func(s *editor.Session) error {
		_, err := s.CommitDraft()
		return err
	})
}

// UpdateDetail reemplaza una línea ya guardada.
func (h *SessionHandler) UpdateDetail(c *fiber.Ctx) error {
	var in dto.DetailRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	if in.ID == nil {
		return writeError(c, h.log, badRequest("VALIDATION", "id de la línea requerido"))
	}
	return h.respond(c)(h.uc.UpdateDetail(c.Context(), c.Params("sid"), GetUserID(c), in.ToDetail()))
}

// RemoveDetails da de baja las líneas indicadas.
func (h *SessionHandler) RemoveDetails(c *fiber.Ctx) error {
	var in dto.RemoveDetailsRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	if in.Empty() {
		return writeError(c, h.log, badRequest("VALIDATION", "indique ids o lineNumbers"))
	}
	var removed int
	view, err := h.uc.Apply(c.Context(), c.Params("sid"), GetUserID(c), func(s *editor.Session) error {
		var err error
		removed, err = s.RemoveDetails(in.IDs, in.LineNumbers)
		return err
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.RemoveDetailsResponse{Removed: removed, View: view})
}

// ResetDetails descarta los cambios de líneas desde el último guardado.
func (h *SessionHandler) ResetDetails(c *fiber.Ctx) error {
	return h.apply(c, func(s *editor.Session) error {
		s.DiscardDetailChanges()
		return nil
	})
}

// ScanBarcode godoc
// @Summary      Leer código de barras
// @Description  Agrega el artículo como línea nueva o suma uno a la línea existente.
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sid   path  string              true  "ID de la sesión"
// @Param        body  body  dto.BarcodeRequest  true  "Código leído"
// @Success      200   {object}  editor.View
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "sin existencias en despachos"
// @Router       /api/sessions/{sid}/barcode [post]
func (h *SessionHandler) ScanBarcode(c *fiber.Ctx) error {
	var in dto.BarcodeRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c)(h.uc.ScanBarcode(c.Context(), c.Params("sid"), GetUserID(c), in.Barcode))
}

// Save godoc
// @Summary      Guardar documento
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        sid  path  string  true  "ID de la sesión"
// @Success      200  {object}  editor.View
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{sid}/save [post]
func (h *SessionHandler) Save(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.Save(c.Context(), c.Params("sid"), GetUserID(c)))
}

// Release libera el documento y mueve existencias.
func (h *SessionHandler) Release(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.Release(c.Context(), c.Params("sid"), GetUserID(c)))
}

// Delete elimina el documento guardado; la sesión queda con uno en blanco.
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.Delete(c.Context(), c.Params("sid"), GetUserID(c)))
}

func (h *SessionHandler) apply(c *fiber.Ctx, fn func(*editor.Session) error) error {
	return h.respond(c)(h.uc.Apply(c.Context(), c.Params("sid"), GetUserID(c), fn))
}

func (h *SessionHandler) respond(c *fiber.Ctx) func(*editor.View, error) error {
	return func(view *editor.View, err error) error {
		if err != nil {
			return writeError(c, h.log, err)
		}
		return c.JSON(view)
	}
}

// decodeFieldValue interpreta el valor según el campo: bodega y artículo aceptan el id o el objeto;
// el resto se entrega al motor con números como json.Number.
func decodeFieldValue(field string, raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	switch field {
	case document.FieldWarehouse:
		var w entity.WarehouseReference
		if err := json.Unmarshal(raw, &w.ID); err != nil {
			if err := json.Unmarshal(raw, &w); err != nil {
				return nil, fmt.Errorf("%w: bodega", document.ErrInvalidValue)
			}
		}
		if entity.IsWarehouseEmpty(&w) {
			return nil, nil
		}
		return &w, nil
	case document.FieldItem:
		var id int64
		if err := json.Unmarshal(raw, &id); err == nil {
			return entity.ItemReference{ID: id}, nil
		}
		var it entity.ItemReference
		if err := json.Unmarshal(raw, &it); err != nil {
			return nil, fmt.Errorf("%w: articulo", document.ErrInvalidValue)
		}
		return it, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %s", document.ErrInvalidValue, field)
	}
	return v, nil
}
