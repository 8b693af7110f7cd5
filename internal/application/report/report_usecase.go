package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-documentos/internal/domain"
	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
	"github.com/jhoicas/inventario-documentos/internal/domain/repository"
	"github.com/jhoicas/inventario-documentos/pkg/logger"
)

// ReportUseCase genera los PDF de un documento guardado: el reporte del documento y la hoja de
// etiquetas con códigos de barras.
type ReportUseCase struct {
	docRepo   repository.DocumentRepository
	generator PDFGenerator
	log       *logger.Logger
}

// NewReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReportUseCase(docRepo repository.DocumentRepository, generator PDFGenerator, log *logger.Logger) *ReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{docRepo: docRepo, generator: generator, log: log.Component("report")}
}

// DocumentPDF devuelve el PDF del documento y el nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrUnknownType si el tipo no es de inventario.
//   - domain.ErrNotFound    si el documento no existe o fue eliminado.
func (uc *ReportUseCase) DocumentPDF(ctx context.Context, docType entity.DocumentType, id string) ([]byte, string, error) {
	doc, err := uc.load(ctx, docType, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateDocumentPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	uc.log.Info().Str("document_id", doc.ID).Int("bytes", len(pdfBytes)).Msg("reporte de documento generado")
	return pdfBytes, fmt.Sprintf("documento_%s.pdf", doc.ID), nil
}

// BarcodeSheet devuelve la hoja OD5160 con una etiqueta CODE128 por línea, ubicadas en las
// posiciones marcadas.
func (uc *ReportUseCase) BarcodeSheet(ctx context.Context, docType entity.DocumentType, id string, positions []bool) ([]byte, string, error) {
	doc, err := uc.load(ctx, docType, id)
	if err != nil {
		return nil, "", err
	}
	cells, err := LayoutLabels(doc.Details, positions)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateBarcodeSheetPDF(ctx, doc, cells)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	uc.log.Info().Str("document_id", doc.ID).Int("pages", len(cells)/LabelsPerPage).Msg("hoja de etiquetas generada")
	return pdfBytes, fmt.Sprintf("etiquetas_%s_%s.pdf", doc.ID, SheetOD5160), nil
}

func (uc *ReportUseCase) load(ctx context.Context, docType entity.DocumentType, id string) (*entity.Document, error) {
	if !docType.Valid() {
		return nil, domain.ErrUnknownType
	}
	doc, err := uc.docRepo.GetByID(ctx, docType, id)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener documento: %w", err)
	}
	return doc, nil
}
