package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidQuantity     = errors.New("la cantidad debe ser mayor que cero")
	ErrPasswordRequired    = errors.New("la contraseña es obligatoria")
	ErrSelfDeactivation    = errors.New("no puedes desactivar tu propia cuenta")
	ErrManagerDeactivation = errors.New("solo un superusuario puede desactivar a otro gerente")
	ErrCategoryInUse       = errors.New("no se puede eliminar una categoría que aún tiene productos")
)
