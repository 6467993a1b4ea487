package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/procurement"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

func TestGenerateReceiptPDF(t *testing.T) {
	manifestID := int64(3)
	doc := procurement.ReceiptDocument{
		Receipt: &entity.GoodsReceipt{
			ID: 1, ReceiptNumber: "GR-ABC123", PurchaseOrderID: 9,
			ShipmentManifestID: &manifestID, ReceivedByUserID: 2, ReceivedAt: time.Now(),
		},
		Supplier: &entity.Supplier{Name: "Distribuidora Andina"},
		Lines: []procurement.ReceiptDocumentLine{
			{PurchaseOrderItemID: 1, ProductSKU: "LAP-001", ProductName: "Portátil",
				Accepted: []string{"SN-1", "SN-2", "SN-3", "SN-4", "SN-5", "SN-6", "SN-7"}, Rejected: []string{"SN-8"}},
		},
	}

	out, err := NewMarotoPDFGenerator("Bodega").GenerateReceiptPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateReceiptPDF_SinRecepcion(t *testing.T) {
	_, err := NewMarotoPDFGenerator("Bodega").GenerateReceiptPDF(context.Background(), procurement.ReceiptDocument{})
	assert.Error(t, err)
}

func TestChunkSerials(t *testing.T) {
	assert.Equal(t, []string{"a, b", "c"}, chunkSerials([]string{"a", "b", "c"}, 2))
	assert.Nil(t, chunkSerials(nil, 2))
}
