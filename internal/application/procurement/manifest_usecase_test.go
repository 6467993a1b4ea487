package procurement_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/procurement"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ─── Creación de manifiestos ──────────────────────────────────────────────────

func TestManifestCreate_CantidadDeclarada(t *testing.T) {
	f := newFixture(t)
	po := f.issuedPO(t, 10)
	item := po.Items[0].ID

	out := f.manifest(t, po.ID, declared(item, 10))

	assert.Equal(t, "SM-1", out.Code)
	assert.Equal(t, entity.ManifestStatusPosted, out.Status, "sin status explícito el manifiesto queda publicado")
	assert.Equal(t, 1, out.LinesCreated)
	assert.Equal(t, 10, out.AssetsCreated)
	assert.Equal(t, 1, out.MovesCreated)

	moves := f.store.Moves()
	require.Len(t, moves, 1)
	assert.Equal(t, entity.LocationVendor, moves[0].Source)
	assert.Equal(t, entity.LocationInTransit, moves[0].Destination)
	assert.Equal(t, 10, moves[0].Quantity)
	assert.Len(t, f.store.Links(), 10, "cada activo queda vinculado al movimiento")

	for _, a := range f.store.AllAssets() {
		assert.Equal(t, entity.AssetStatusInTransit, a.Status)
		require.NotNil(t, a.ZoneID)
		assert.Equal(t, storageZone, *a.ZoneID)
	}

	s := f.stats(t, po.ID, item)
	assert.Equal(t, 10, s.InTransit)
	assert.Equal(t, 10, s.Shipped)
	assert.Equal(t, 0, s.Remaining)
}

func TestManifestCreate_SerialesDeclarados(t *testing.T) {
	f := newFixture(t)
	po := f.issuedPO(t, 3)

	out := f.manifest(t, po.ID, specified(po.Items[0].ID, "ABC-1", " ABC-2 "))

	assert.Equal(t, 2, out.AssetsCreated)
	assets := f.store.AllAssets()
	require.Len(t, assets, 2)
	assert.Equal(t, "ABC-1", assets[0].SerialNumber)
	assert.Equal(t, "ABC-2", assets[1].SerialNumber, "los seriales se guardan sin espacios")
}

func TestManifestCreate_CantidadExcedida(t *testing.T) {
	f := newFixture(t)
	po := f.issuedPO(t, 10)

	_, err := f.manifests.Create(f.ctx, warehouseID, procurement.CreateManifestInput{
		PurchaseOrderID: po.ID,
		Lines:           []procurement.ManifestLineInput{declared(po.Items[0].ID, 11)},
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, []string{domain.ViolationExceedsRemain}, violations(t, err))
	assert.Zero(t, f.store.ManifestCount(), "no se escribe ningún manifiesto")
	assert.Empty(t, f.store.Moves())
	assert.Empty(t, f.store.AllAssets())
}

func TestManifestCreate_Monotonia(t *testing.T) {
	f := newFixture(t)
	po := f.issuedPO(t, 10)
	item := po.Items[0].ID

	f.manifest(t, po.ID, declared(item, 4))
	assert.Equal(t, 6, f.stats(t, po.ID, item).Remaining)

	f.manifest(t, po.ID, declared(item, 6))
	assert.Equal(t, 0, f.stats(t, po.ID, item).Remaining)

	_, err := f.manifests.Create(f.ctx, warehouseID, procurement.CreateManifestInput{
		PurchaseOrderID: po.ID,
		Lines:           []procurement.ManifestLineInput{declared(item, 1)},
	})
	assert.Equal(t, []string{domain.ViolationExceedsRemain}, violations(t, err),
		"la línea ya fue despachada por completo")
}

func TestManifestCreate_LineasRepetidasYAjenas(t *testing.T) {
	f := newFixture(t)
	po := f.issuedPO(t, 5)
	item := po.Items[0].ID

	_, err := f.manifests.Create(f.ctx, warehouseID, procurement.CreateManifestInput{
		PurchaseOrderID: po.ID,
		Lines: []procurement.ManifestLineInput{
			declared(item, 1),
			declared(item, 1),
			declared(9999, 1),
		},
	})

	assert.ElementsMatch(t, []string{domain.ViolationDuplicateID, domain.ViolationNotMember}, violations(t, err),
		"todas las violaciones se reportan juntas")
	assert.Zero(t, f.store.ManifestCount())
}

func TestManifestCreate_SerialesInvalidos(t *testing.T) {
	f := newFixture(t)
	po := f.issuedPO(t, 10, 10)
	f.manifest(t, po.ID, specified(po.Items[0].ID, "EXIST-1"))

	_, err := f.manifests.Create(f.ctx, warehouseID, procurement.CreateManifestInput{
		PurchaseOrderID: po.ID,
		Lines: []procurement.ManifestLineInput{
			specified(po.Items[0].ID, "X-1", "EXIST-1", ""),
			specified(po.Items[1].ID, "X-1"),
		},
	})

	assert.ElementsMatch(t, []string{
		domain.ViolationEmptySerial,
		domain.ViolationDuplicateSerial,
		domain.ViolationSerialExists,
	}, violations(t, err))
}

func TestManifestCreate_OrdenNoEmitida(t *testing.T) {
	f := newFixture(t)
	po := f.draftPO(t, 5)

	_, err := f.manifests.Create(f.ctx, warehouseID, procurement.CreateManifestInput{
		PurchaseOrderID: po.ID,
		Lines:           []procurement.ManifestLineInput{declared(po.Items[0].ID, 1)},
	})

	require.ErrorIs(t, err, domain.ErrInvalidState)
	var serr *domain.InvalidStateError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, []string{string(entity.POStatusIssued)}, serr.Allowed)
}

func TestManifestCreate_OrdenInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.manifests.Create(f.ctx, warehouseID, procurement.CreateManifestInput{
		PurchaseOrderID: 404,
		Lines:           []procurement.ManifestLineInput{declared(1, 1)},
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestManifestCreate_Atomicidad(t *testing.T) {
	f := newFixture(t)
	po := f.issuedPO(t, 5)
	f.store.FailOn("StockMoves.LinkAssets", errors.New("conexión perdida"))

	_, err := f.manifests.Create(f.ctx, warehouseID, procurement.CreateManifestInput{
		PurchaseOrderID: po.ID,
		Lines:           []procurement.ManifestLineInput{declared(po.Items[0].ID, 5)},
	})

	require.Error(t, err)
	assert.Zero(t, f.store.ManifestCount(), "la transacción se revierte completa")
	assert.Empty(t, f.store.Moves())
	assert.Empty(t, f.store.AllAssets())
	assert.Equal(t, 5, f.stats(t, po.ID, po.Items[0].ID).Remaining)
}

func TestManifestCreate_VinculosIncompletos(t *testing.T) {
	f := newFixture(t)
	po := f.issuedPO(t, 4)
	f.store.ShortOn("StockMoves.LinkAssets", 1)

	_, err := f.manifests.Create(f.ctx, warehouseID, procurement.CreateManifestInput{
		PurchaseOrderID: po.ID,
		Lines:           []procurement.ManifestLineInput{declared(po.Items[0].ID, 4)},
	})

	require.ErrorIs(t, err, domain.ErrDataIntegrity)
	assert.Contains(t, err.Error(), "3 vínculos insertados para 4 activos")
	assert.Zero(t, f.store.ManifestCount())
	assert.Empty(t, f.store.Moves())
	assert.Empty(t, f.store.Links())
	assert.Empty(t, f.store.AllAssets())
	assert.Equal(t, 4, f.stats(t, po.ID, po.Items[0].ID).Remaining)
}

func TestManifestInputFromRequest_TipoInvalido(t *testing.T) {
	_, err := procurement.ManifestInputFromRequest(dto.CreateManifestRequest{
		PurchaseOrderID: 1,
		Lines: []dto.ManifestLineRequest{
			{Type: "asset_specified", PurchaseOrderItemID: 1, SerialNumbers: []string{"A"}},
			{Type: "pallet", PurchaseOrderItemID: 2},
		},
	})

	assert.Equal(t, []string{domain.ViolationLineType}, violations(t, err))
}

func TestManifestInputFromRequest_Variantes(t *testing.T) {
	in, err := procurement.ManifestInputFromRequest(dto.CreateManifestRequest{
		PurchaseOrderID: 1,
		TrackingNumber:  "  TRK  ",
		Lines: []dto.ManifestLineRequest{
			{Type: "asset_specified", PurchaseOrderItemID: 1, SerialNumbers: []string{"A"}},
			{Type: "quantity_declared", PurchaseOrderItemID: 2, Quantity: 3},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "TRK", in.TrackingNumber)
	require.Len(t, in.Lines, 2)
	assert.IsType(t, procurement.AssetSpecifiedLine{}, in.Lines[0])
	assert.Equal(t, procurement.QuantityDeclaredLine{LineBase: procurement.LineBase{PurchaseOrderItemID: 2}, Quantity: 3}, in.Lines[1])
}

// ─── Publicación y consultas ─────────────────────────────────────────────────

func TestManifestPost_BorradorAPublicado(t *testing.T) {
	f := newFixture(t)
	po := f.issuedPO(t, 2)
	out, err := f.manifests.Create(f.ctx, warehouseID, procurement.CreateManifestInput{
		PurchaseOrderID: po.ID,
		Status:          entity.ManifestStatusDraft,
		Lines:           []procurement.ManifestLineInput{declared(po.Items[0].ID, 2)},
	})
	require.NoError(t, err)

	m, err := f.manifests.Post(f.ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ManifestStatusPosted, m.Status)

	_, err = f.manifests.Post(f.ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "solo un borrador puede publicarse")
}

func TestManifestVerifyLineAssets(t *testing.T) {
	f := newFixture(t)
	po := f.issuedPO(t, 3)
	out := f.manifest(t, po.ID, specified(po.Items[0].ID, "A-1", "A-2", "A-3"))
	lineID := f.lineID(out, po.Items[0].ID)

	res, err := f.manifests.VerifyLineAssets(f.ctx, lineID, []string{"A-1", "A-2", "A-2", "Z-9"})
	require.NoError(t, err)

	assert.Equal(t, []string{"A-1", "A-2"}, res.Matched)
	assert.Equal(t, []string{"A-3"}, res.Missing)
	assert.Equal(t, []string{"Z-9"}, res.Redundant)
	assert.False(t, res.IsComplete)

	res, err = f.manifests.VerifyLineAssets(f.ctx, lineID, []string{"A-3", "A-2", "A-1"})
	require.NoError(t, err)
	assert.True(t, res.IsComplete)

	_, err = f.manifests.VerifyLineAssets(f.ctx, 999, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestManifestSearchYLines(t *testing.T) {
	f := newFixture(t)
	po := f.issuedPO(t, 4)
	out := f.manifest(t, po.ID, declared(po.Items[0].ID, 4))

	rows, err := f.manifests.Search(f.ctx, dto.ManifestSearchRequest{SupplierName: "andina"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SM-1", rows[0].Code)
	assert.Equal(t, "Distribuidora Andina", rows[0].SupplierName)
	assert.Equal(t, 1, rows[0].ItemCount)

	rows, err = f.manifests.Search(f.ctx, dto.ManifestSearchRequest{TrackingNumber: "otro"})
	require.NoError(t, err)
	assert.Empty(t, rows)

	lines, err := f.manifests.Lines(f.ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].QuantityDeclared)
	assert.Equal(t, 0, lines[0].QuantityReceived)
	assert.Equal(t, 4, lines[0].QuantityRemaining)
}
