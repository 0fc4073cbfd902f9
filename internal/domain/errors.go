package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnknownOperation  = errors.New("tipo de operación desconocido")
)

// Códigos estables expuestos en respuestas HTTP y resultados de sincronización.
const (
	CodeValidation        = "VALIDATION"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeUnknownOperation  = "UNKNOWN_OPERATION"
	CodeDuplicate         = "DUPLICATE"
	CodeInternal          = "INTERNAL"
)

// ErrorCode traduce un error (posiblemente envuelto) a su código estable.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return CodeValidation
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInsufficientStock):
		return CodeInsufficientStock
	case errors.Is(err, ErrUnknownOperation):
		return CodeUnknownOperation
	case errors.Is(err, ErrDuplicate):
		return CodeDuplicate
	default:
		return CodeInternal
	}
}

// IsValidation indica si el error es de validación (datos o referencias inválidas).
// Ninguna mutación ocurre cuando se devuelve un error de este tipo.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound)
}

// IsDeterministic indica si repetir la misma operación produciría el mismo error.
// Los errores de almacenamiento (conexión, commit) no lo son y se pueden reintentar.
func IsDeterministic(err error) bool {
	return IsValidation(err) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrUnknownOperation)
}
