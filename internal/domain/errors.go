package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotAuthenticated  = errors.New("usuario no autenticado")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
)
