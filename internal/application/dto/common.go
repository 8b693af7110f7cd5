package dto

// Límites del listado de documentos. MaxPageSize acota también el tamaño configurado.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest paginación de /api/documents/{type}: ?limit=&offset=.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage completa lo que no vino en la consulta. size es el tamaño configurado
// (EDITOR_PAGE_SIZE); si no es válido se usa DefaultPageSize.
func (p *PageRequest) DefaultPage(size int) {
	if p.Limit <= 0 {
		p.Limit = PageSize(size)
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageSize normaliza un tamaño de página configurado al rango [1, MaxPageSize].
func PageSize(size int) int {
	switch {
	case size <= 0:
		return DefaultPageSize
	case size > MaxPageSize:
		return MaxPageSize
	}
	return size
}

// PageResponse página devuelta; Total cuenta los documentos del tipo, no solo los de la página.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error de la API: code estable para el cliente y mensaje legible.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse error de validación con el detalle por campo.
type ValidationErrorResponse struct {
	ErrorResponse
	Fields map[string]string `json:"fields,omitempty"`
}
