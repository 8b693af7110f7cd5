package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrSessionNotFound  = errors.New("sesión de edición no encontrada")
	ErrRepeatedItem     = errors.New("el artículo ya se encuentra en este documento")
	ErrEmptyField       = errors.New("campo obligatorio vacío")
	ErrUnknownType      = errors.New("tipo de documento desconocido")
	ErrReleasedDocument = errors.New("el documento ya fue liberado")
)
