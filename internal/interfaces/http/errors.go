package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-documentos/internal/application/dto"
	"github.com/jhoicas/inventario-documentos/internal/domain"
	"github.com/jhoicas/inventario-documentos/internal/domain/document"
	"github.com/jhoicas/inventario-documentos/pkg/logger"
)

var validate = validator.New()

// requestError cuerpo o parámetros inválidos; se responde 400 con el detalle por campo.
type requestError struct {
	code    string
	message string
	fields  map[string]string
}

func (e *requestError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &requestError{code: code, message: message}
}

// bind decodifica el cuerpo JSON en dst y valida sus tags.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return badRequest("INVALID_BODY", "cuerpo inválido")
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return badRequest("VALIDATION", err.Error())
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &requestError{code: "VALIDATION", message: "datos inválidos", fields: fields}
}

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: los errores específicos antes que los genéricos que envuelven.
var errorMappings = []errorMapping{
	{domain.ErrSessionNotFound, fiber.StatusNotFound, "SESSION_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnknownType, fiber.StatusBadRequest, "UNKNOWN_TYPE"},
	{domain.ErrEmptyField, fiber.StatusBadRequest, "EMPTY_FIELD"},
	{document.ErrUnknownField, fiber.StatusBadRequest, "UNKNOWN_FIELD"},
	{document.ErrInvalidValue, fiber.StatusBadRequest, "INVALID_VALUE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrRepeatedItem, fiber.StatusConflict, "REPEATED_ITEM"},
	{domain.ErrReleasedDocument, fiber.StatusConflict, "RELEASED_DOCUMENT"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
}

// writeError traduce errores de dominio a dto.ErrorResponse; lo no reconocido es 500 y se registra.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var re *requestError
	if errors.As(err, &re) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			ErrorResponse: dto.ErrorResponse{Code: re.code, Message: re.message},
			Fields:        re.fields,
		})
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
