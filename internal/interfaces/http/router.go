package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-documentos/internal/application/dto"
	"github.com/jhoicas/inventario-documentos/internal/application/editor"
	"github.com/jhoicas/inventario-documentos/internal/application/report"
	"github.com/jhoicas/inventario-documentos/pkg/jwt"
	"github.com/jhoicas/inventario-documentos/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EditorUC  *editor.EditorUseCase
	ReportUC  *report.ReportUseCase
	JWTSecret string
	PageSize  int
	Log       *logger.Logger
}

// Router registra las rutas de la API. Todo bajo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")
	deps.PageSize = dto.PageSize(deps.PageSize)

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero, jwt.RoleConsulta)
	editors := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)

	// Sesiones de edición
	sessionHandler := NewSessionHandler(deps.EditorUC, log)
	sessions := api.Group("/sessions", editors)
	sessions.Post("/", sessionHandler.Open)
	sessions.Get("/:sid", sessionHandler.Get)
	sessions.Delete("/:sid", sessionHandler.Close)
	sessions.Patch("/:sid/document", sessionHandler.SetDocumentField)
	sessions.Put("/:sid/type", sessionHandler.ChangeType)
	sessions.Post("/:sid/new", sessionHandler.New)
	sessions.Patch("/:sid/draft", sessionHandler.SetDraftField)
	sessions.Put("/:sid/draft", sessionHandler.SetDraft)
	sessions.Delete("/:sid/draft", sessionHandler.ClearDraft)
	sessions.Post("/:sid/draft/commit", sessionHandler.CommitDraft)
	sessions.Put("/:sid/details", sessionHandler.UpdateDetail)
	sessions.Post("/:sid/details/remove", sessionHandler.RemoveDetails)
	sessions.Post("/:sid/details/reset", sessionHandler.ResetDetails)
	sessions.Post("/:sid/barcode", sessionHandler.ScanBarcode)
	sessions.Post("/:sid/save", sessionHandler.Save)
	sessions.Post("/:sid/release", sessionHandler.Release)
	sessions.Post("/:sid/delete", RequireRole(jwt.RoleAdmin), sessionHandler.Delete)

	// Documentos guardados (consulta)
	documentHandler := NewDocumentHandler(deps.EditorUC, deps.ReportUC, deps.PageSize, log)
	api.Get("/warehouses", anyRole, documentHandler.Warehouses)
	documents := api.Group("/documents", anyRole)
	documents.Get("/:type", documentHandler.List)
	documents.Get("/:type/:id/pdf", documentHandler.PDF)
	documents.Post("/:type/:id/barcodes", documentHandler.Barcodes)
}
