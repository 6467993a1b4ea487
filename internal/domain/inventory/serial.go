package inventory

import (
	"strings"

	"github.com/google/uuid"
)

// SerialGenerator genera números de serie y de recibo aleatorios.
type SerialGenerator interface {
	Serial() string
	ReceiptNumber() string
}

// UUIDSerials genera identificadores a partir de UUID v4 (alfanumérico en mayúsculas).
type UUIDSerials struct {
	ReceiptPrefix string
}

// NewUUIDSerials construye el generador; prefix vacío usa "GR".
func NewUUIDSerials(receiptPrefix string) *UUIDSerials {
	if receiptPrefix == "" {
		receiptPrefix = "GR"
	}
	return &UUIDSerials{ReceiptPrefix: receiptPrefix}
}

// Serial devuelve "SN-" seguido de 12 caracteres.
func (g *UUIDSerials) Serial() string {
	return "SN-" + randomCode(12)
}

// ReceiptNumber devuelve "<prefijo>-" seguido de 10 caracteres.
func (g *UUIDSerials) ReceiptNumber() string {
	return g.ReceiptPrefix + "-" + randomCode(10)
}

func randomCode(n int) string {
	s := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return s[:n]
}
