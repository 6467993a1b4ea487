package procurement

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Bodega-api/internal/domain"
)

// lineValidator acumula violaciones de una solicitud por líneas. Es el único punto de
// validación para la creación de manifiestos y las dos variantes de recepción:
// duplicados, pertenencia al padre y cantidad contra lo pendiente.
type lineValidator struct {
	label      string
	members    map[int64]bool
	seen       map[int64]bool
	violations []domain.Violation
}

func newLineValidator(label string, memberIDs []int64) *lineValidator {
	members := make(map[int64]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}
	return &lineValidator{label: label, members: members, seen: map[int64]bool{}}
}

// Line registra un id solicitado. Devuelve false si es duplicado o no pertenece al padre.
func (lv *lineValidator) Line(id int64) bool {
	if lv.seen[id] {
		lv.add(domain.Violation{Code: domain.ViolationDuplicateID, Field: "line_id", ID: id,
			Message: fmt.Sprintf("%s %d repetida en la solicitud", lv.label, id)})
		return false
	}
	lv.seen[id] = true
	if !lv.members[id] {
		lv.add(domain.Violation{Code: domain.ViolationNotMember, Field: "line_id", ID: id,
			Message: fmt.Sprintf("%s %d no pertenece al documento", lv.label, id)})
		return false
	}
	return true
}

// Positive exige qty > 0.
func (lv *lineValidator) Positive(id int64, field string, qty int) bool {
	if qty > 0 {
		return true
	}
	lv.add(domain.Violation{Code: domain.ViolationInvalidQuantity, Field: field, ID: id,
		Message: fmt.Sprintf("%s %d: la cantidad debe ser mayor que cero", lv.label, id)})
	return false
}

// Quantity exige requested <= remaining.
func (lv *lineValidator) Quantity(id int64, requested, remaining int) {
	if requested <= remaining {
		return
	}
	lv.add(domain.Violation{Code: domain.ViolationExceedsRemain, Field: "quantity", ID: id,
		Message: fmt.Sprintf("%s %d: la cantidad %d supera lo pendiente (%d)", lv.label, id, requested, remaining)})
}

// Count exige que el número de unidades enviadas coincida con la cantidad declarada.
func (lv *lineValidator) Count(id int64, declared, actual int) {
	if declared == actual {
		return
	}
	lv.add(domain.Violation{Code: domain.ViolationCountMismatch, Field: "asset_items", ID: id,
		Message: fmt.Sprintf("%s %d: count mismatch, se declararon %d y se enviaron %d unidades", lv.label, id, declared, actual)})
}

func (lv *lineValidator) add(v domain.Violation) {
	lv.violations = append(lv.violations, v)
}

// Err devuelve un ValidationError con todas las violaciones, o nil.
func (lv *lineValidator) Err() error {
	if len(lv.violations) == 0 {
		return nil
	}
	return &domain.ValidationError{Violations: lv.violations}
}

// serialSet registra seriales suministrados por el cliente y detecta duplicados.
type serialSet struct {
	owner map[string]int64
	order []string
}

func newSerialSet() *serialSet {
	return &serialSet{owner: map[string]int64{}}
}

// Add registra serial para la línea lineID; reporta vacíos y duplicados en lv.
func (s *serialSet) Add(lv *lineValidator, lineID int64, serial string) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		lv.add(domain.Violation{Code: domain.ViolationEmptySerial, Field: "serial_numbers", ID: lineID,
			Message: fmt.Sprintf("%s %d: número de serie vacío", lv.label, lineID)})
		return
	}
	if prev, ok := s.owner[serial]; ok {
		lv.add(domain.Violation{Code: domain.ViolationDuplicateSerial, Field: "serial_numbers", ID: lineID, Value: serial,
			Message: fmt.Sprintf("serial %q repetido (líneas %d y %d)", serial, prev, lineID)})
		return
	}
	s.owner[serial] = lineID
	s.order = append(s.order, serial)
}

// Values devuelve los seriales únicos en orden de llegada.
func (s *serialSet) Values() []string { return s.order }

// Existing reporta en lv los seriales que ya están registrados.
func (s *serialSet) Existing(lv *lineValidator, existing []string) {
	sort.Strings(existing)
	for _, serial := range existing {
		lv.add(domain.Violation{Code: domain.ViolationSerialExists, Field: "serial_numbers", ID: s.owner[serial], Value: serial,
			Message: fmt.Sprintf("serial %q ya existe", serial)})
	}
}
