package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidState       = errors.New("estado inválido para la operación")
	ErrDataIntegrity      = errors.New("inconsistencia de datos")
	ErrPersistence        = errors.New("error de persistencia")
)

// Códigos de violación usados en ValidationError.
const (
	ViolationDuplicateID     = "DUPLICATE_ID"
	ViolationNotMember       = "NOT_MEMBER"
	ViolationExceedsRemain   = "EXCEEDS_REMAINING"
	ViolationCountMismatch   = "COUNT_MISMATCH"
	ViolationInvalidQuantity = "INVALID_QUANTITY"
	ViolationDuplicateSerial = "DUPLICATE_SERIAL"
	ViolationSerialExists    = "SERIAL_EXISTS"
	ViolationEmptySerial     = "EMPTY_SERIAL"
	ViolationAssetNotFound   = "ASSET_NOT_FOUND"
	ViolationDuplicateAsset  = "DUPLICATE_ASSET"
	ViolationLineMismatch    = "LINE_MISMATCH"
	ViolationAssetState      = "ASSET_NOT_IN_TRANSIT"
	ViolationRequired        = "REQUIRED"
	ViolationLineType        = "INVALID_LINE_TYPE"
	ViolationInvalidValue    = "INVALID_VALUE"
)

// NotFoundError indica que una o varias entidades no existen.
type NotFoundError struct {
	Entity string
	IDs    []int64
}

func (e *NotFoundError) Error() string {
	if len(e.IDs) == 1 {
		return fmt.Sprintf("%s %d no encontrado", e.Entity, e.IDs[0])
	}
	return fmt.Sprintf("%s no encontrados: %v", e.Entity, e.IDs)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound construye un NotFoundError.
func NewNotFound(entity string, ids ...int64) *NotFoundError {
	return &NotFoundError{Entity: entity, IDs: ids}
}

// Violation describe un problema puntual de la solicitud.
type Violation struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	ID      int64  `json:"id,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// ValidationError agrupa todas las violaciones encontradas en una solicitud.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validación fallida: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// InvalidStateError indica que la entidad no está en un estado que permita la operación.
type InvalidStateError struct {
	Entity  string
	ID      int64
	Status  string
	Allowed []string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %d en estado %q; se requiere uno de %v", e.Entity, e.ID, e.Status, e.Allowed)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// DataIntegrityError indica una violación de invariantes descubierta dentro de la transacción.
type DataIntegrityError struct {
	Message string
}

func (e *DataIntegrityError) Error() string { return "integridad: " + e.Message }

func (e *DataIntegrityError) Unwrap() error { return ErrDataIntegrity }

// NewIntegrity construye un DataIntegrityError con formato.
func NewIntegrity(format string, args ...any) *DataIntegrityError {
	return &DataIntegrityError{Message: fmt.Sprintf(format, args...)}
}
