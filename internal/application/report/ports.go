package report

import (
	"context"

	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// Hoja de etiquetas soportada y simbología de los códigos de barras.
const (
	SheetOD5160    = "OD5160"
	BarcodeCODE128 = "CODE128"
	// LabelsPerPage celdas por hoja OD5160 (3 columnas x 10 filas).
	LabelsPerPage = 30
	// MaxLabelPages tope de hojas por solicitud.
	MaxLabelPages = 50
)

// Label contenido de una celda de la hoja; una celda vacía es nil.
type Label struct {
	Barcode  string
	ItemName string
	Line     int
}

// PDFGenerator puerto de salida para el render de los reportes.
type PDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *entity.Document) ([]byte, error)
	// GenerateBarcodeSheetPDF recibe las celdas de todas las hojas, LabelsPerPage por hoja.
	GenerateBarcodeSheetPDF(ctx context.Context, doc *entity.Document, cells []*Label) ([]byte, error)
}
