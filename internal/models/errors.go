package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: el documento no existe
	ErrNotFound = errors.New("not found")

	// ErrCapacityReached: crear o duplicar superaría MaxProducts
	ErrCapacityReached = fmt.Errorf("catalog is full: at most %d products are allowed", MaxProducts)

	// ErrInvalidTransition: cambio de estado de reseña no permitido
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError representa un error de validación. No se escribe nada cuando ocurre.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

type BulkItemError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BulkResult cuenta éxitos y fallos de una operación masiva. Los éxitos no se revierten.
type BulkResult struct {
	Requested int             `json:"requested"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Errors    []BulkItemError `json:"errors,omitempty"`
}

// Record registra el resultado de un item
func (r *BulkResult) Record(id string, err error) {
	r.Requested++
	if err != nil {
		r.Failed++
		r.Errors = append(r.Errors, BulkItemError{ID: id, Error: err.Error()})
		return
	}
	r.Succeeded++
}

// Partial indica si fallaron algunos items pero no todos
func (r *BulkResult) Partial() bool {
	return r.Failed > 0 && r.Succeeded > 0
}
