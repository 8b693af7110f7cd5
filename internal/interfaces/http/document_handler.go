package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-documentos/internal/application/dto"
	"github.com/jhoicas/inventario-documentos/internal/application/editor"
	"github.com/jhoicas/inventario-documentos/internal/application/report"
	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
	"github.com/jhoicas/inventario-documentos/pkg/logger"
)

// DocumentHandler consultas de documentos guardados: listado, reporte y etiquetas.
type DocumentHandler struct {
	editorUC *editor.EditorUseCase
	reportUC *report.ReportUseCase
	pageSize int
	log      *logger.Logger
}

// NewDocumentHandler construye el handler. pageSize es el límite por defecto del listado.
func NewDocumentHandler(editorUC *editor.EditorUseCase, reportUC *report.ReportUseCase, pageSize int, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{editorUC: editorUC, reportUC: reportUC, pageSize: pageSize, log: log}
}

func docTypeParam(c *fiber.Ctx) entity.DocumentType {
	return entity.DocumentType(strings.ToUpper(c.Params("type")))
}

// List godoc
// @Summary      Listar documentos de un tipo
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        type    path   string  true   "INPUT | SALE_RETURN | OUTPUT | PURCHASE_RETURN"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.DocumentListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/documents/{type} [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, h.log, badRequest("INVALID_QUERY", "parámetros de paginación inválidos"))
	}
	page.DefaultPage(h.pageSize)
	if err := validateStruct(&page); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.editorUC.List(c.Context(), docTypeParam(c), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.DocumentListResponse{
		Items: out.Items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: out.Total},
	})
}

// PDF godoc
// @Summary      Reporte PDF del documento
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        type  path  string  true  "Tipo de documento"
// @Param        id    path  string  true  "ID del documento"
// @Success      200   {file}    binary
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/{type}/{id}/pdf [get]
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.reportUC.DocumentPDF(c.Context(), docTypeParam(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendPDF(c, pdfBytes, filename)
}

// Barcodes godoc
// @Summary      Hoja de etiquetas CODE128 (OD5160)
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        type  path  string                   true  "Tipo de documento"
// @Param        id    path  string                   true  "ID del documento"
// @Param        body  body  dto.BarcodeSheetRequest  true  "Posiciones marcadas, 30 por hoja"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/documents/{type}/{id}/barcodes [post]
func (h *DocumentHandler) Barcodes(c *fiber.Ctx) error {
	var in dto.BarcodeSheetRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	pdfBytes, filename, err := h.reportUC.BarcodeSheet(c.Context(), docTypeParam(c), c.Params("id"), in.Positions)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendPDF(c, pdfBytes, filename)
}

// Warehouses bodegas disponibles para nuevos documentos.
func (h *DocumentHandler) Warehouses(c *fiber.Ctx) error {
	list, err := h.editorUC.Warehouses(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.WarehouseListResponse{Items: list})
}

func sendPDF(c *fiber.Ctx, pdfBytes []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
