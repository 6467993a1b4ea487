package procurement

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// ReceiptPDFGenerator genera el comprobante PDF de una recepción.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, doc ReceiptDocument) ([]byte, error)
}

// ReceiptDocument datos necesarios para el comprobante.
type ReceiptDocument struct {
	Receipt  *entity.GoodsReceipt
	Supplier *entity.Supplier
	Lines    []ReceiptDocumentLine
}

// ReceiptDocumentLine resumen por línea de orden en el comprobante.
type ReceiptDocumentLine struct {
	PurchaseOrderItemID int64
	ProductSKU          string
	ProductName         string
	Accepted            []string // seriales
	Rejected            []string
}

// ReceiptUseCase recepción de mercancía: directa desde la orden o contra un manifiesto publicado.
type ReceiptUseCase struct {
	tx        TxRunner
	receipts  repository.GoodsReceiptRepository
	assets    repository.AssetRepository
	moves     repository.StockMoveRepository
	pos       repository.PurchaseOrderRepository
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
	pdf       ReceiptPDFGenerator
	zones     ZoneConfig
	serials   inventory.SerialGenerator
	log       *logger.Logger
	now       func() time.Time
}

// ReceiptDeps dependencias de ReceiptUseCase.
type ReceiptDeps struct {
	Tx        TxRunner
	Receipts  repository.GoodsReceiptRepository
	Assets    repository.AssetRepository
	Moves     repository.StockMoveRepository
	Orders    repository.PurchaseOrderRepository
	Suppliers repository.SupplierRepository
	Products  repository.ProductRepository
	PDF       ReceiptPDFGenerator
	Zones     ZoneConfig
	Serials   inventory.SerialGenerator
	Log       *logger.Logger
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(d ReceiptDeps) *ReceiptUseCase {
	return &ReceiptUseCase{
		tx: d.Tx, receipts: d.Receipts, assets: d.Assets, moves: d.Moves, pos: d.Orders,
		suppliers: d.Suppliers, products: d.Products, pdf: d.PDF, zones: d.Zones, serials: d.Serials,
		log: d.Log.Named("receipt"), now: time.Now,
	}
}

// receivedLine unidades de una línea partidas en aceptadas y rechazadas.
type receivedLine struct {
	itemID   int64
	product  int64
	accepted []*entity.Asset
	rejected []*entity.Asset
}

// ReceiveFromPurchaseOrder registra una recepción sin manifiesto. Crea los activos recibidos y
// los movimientos Vendor -> Awaiting QC / Rejected Dock.
func (uc *ReceiptUseCase) ReceiveFromPurchaseOrder(ctx context.Context, userID, poID int64, in dto.ReceivePurchaseOrderRequest) (*dto.ReceiptResponse, error) {
	if len(in.Lines) == 0 {
		return nil, requiredLines()
	}
	var out *dto.ReceiptResponse
	err := uc.tx.Run(ctx, func(r TxRepos) error {
		po, err := r.PurchaseOrders.GetForUpdate(ctx, poID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.NewNotFound("orden de compra", poID)
		}
		if err := po.RequireStatus(entity.POStatusDelivered, entity.POStatusPartiallyReceived); err != nil {
			return err
		}

		stats, err := lineStats(ctx, r.StockMoves, po, nil)
		if err != nil {
			return err
		}
		lv := newLineValidator("línea de orden", po.ItemIDs())
		serials := newSerialSet()
		var valid []dto.ReceivePOLineRequest
		for _, l := range in.Lines {
			if !lv.Line(l.LineID) {
				continue
			}
			if !lv.Positive(l.LineID, "received_quantity", l.ReceivedQuantity) {
				continue
			}
			lv.Quantity(l.LineID, l.ReceivedQuantity, stats[l.LineID].Remaining)
			lv.Count(l.LineID, l.ReceivedQuantity, len(l.AssetItems))
			for _, a := range l.AssetItems {
				if strings.TrimSpace(a.SerialNumber) != "" {
					serials.Add(lv, l.LineID, a.SerialNumber)
				}
			}
			valid = append(valid, l)
		}
		if len(serials.Values()) > 0 {
			existing, err := r.Assets.ExistingSerials(ctx, serials.Values())
			if err != nil {
				return err
			}
			serials.Existing(lv, existing)
		}
		if err := lv.Err(); err != nil {
			return err
		}

		now := uc.now()
		receipt, err := uc.createReceipt(ctx, r, po.ID, nil, userID, in.Notes, now)
		if err != nil {
			return err
		}

		used := map[string]bool{}
		for _, sn := range serials.Values() {
			used[sn] = true
		}
		var lines []*receivedLine
		var created []*entity.Asset
		for _, l := range valid {
			item, _ := po.Item(l.LineID)
			rl := &receivedLine{itemID: item.ID, product: item.ProductID}
			missing := 0
			for _, a := range l.AssetItems {
				if strings.TrimSpace(a.SerialNumber) == "" {
					missing++
				}
			}
			generated, err := uniqueSerials(ctx, r.Assets, uc.serials, missing, used)
			if err != nil {
				return err
			}
			for _, a := range l.AssetItems {
				sn := strings.TrimSpace(a.SerialNumber)
				if sn == "" {
					sn, generated = generated[0], generated[1:]
				}
				asset := &entity.Asset{
					SerialNumber:        sn,
					ProductID:           item.ProductID,
					PurchaseOrderItemID: item.ID,
					GoodsReceiptID:      &receipt.ID,
					LastMovementDate:    now,
					CreatedAt:           now,
				}
				uc.place(asset, a.IsAccepted)
				if a.IsAccepted {
					rl.accepted = append(rl.accepted, asset)
				} else {
					rl.rejected = append(rl.rejected, asset)
				}
				created = append(created, asset)
			}
			lines = append(lines, rl)
		}
		if err := r.Assets.CreateBatch(ctx, created); err != nil {
			return err
		}

		accepted, rejected, err := uc.writeMoves(ctx, r, lines, entity.LocationVendor, receipt, nil, userID, now)
		if err != nil {
			return err
		}
		if err := refreshPurchaseOrderStatus(ctx, r, po, now, uc.log); err != nil {
			return err
		}
		uc.logReceipt(receipt, accepted, rejected)
		out = toReceiptResponse(receipt, po, accepted, rejected)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReceiveFromManifest registra la recepción de activos de un manifiesto publicado. Los activos
// deben pertenecer a la línea indicada y seguir en tránsito.
func (uc *ReceiptUseCase) ReceiveFromManifest(ctx context.Context, userID, manifestID int64, in dto.ReceiveManifestRequest) (*dto.ReceiptResponse, error) {
	if len(in.Lines) == 0 {
		return nil, requiredLines()
	}
	var out *dto.ReceiptResponse
	err := uc.tx.Run(ctx, func(r TxRepos) error {
		m, err := r.Manifests.GetForUpdate(ctx, manifestID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NewNotFound("manifiesto", manifestID)
		}
		if m.Status != entity.ManifestStatusPosted {
			return &domain.InvalidStateError{Entity: "manifiesto", ID: m.ID, Status: m.Status, Allowed: []string{entity.ManifestStatusPosted}}
		}
		po, err := r.PurchaseOrders.GetForUpdate(ctx, m.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.NewIntegrity("manifiesto %d referencia la orden %d inexistente", m.ID, m.PurchaseOrderID)
		}

		lv := newLineValidator("línea de manifiesto", m.LineIDs())
		claim := map[int64]int64{}
		accept := map[int64]bool{}
		var ids []int64
		var valid []dto.ReceiveManifestLineRequest
		for _, l := range in.Lines {
			ok := lv.Line(l.LineID)
			if ok && !lv.Positive(l.LineID, "asset_items", len(l.AssetItems)) {
				ok = false
			}
			for _, a := range l.AssetItems {
				if _, dup := claim[a.AssetID]; dup {
					lv.add(domain.Violation{Code: domain.ViolationDuplicateAsset, Field: "asset_id", ID: a.AssetID,
						Message: fmt.Sprintf("activo %d repetido en la solicitud", a.AssetID)})
					continue
				}
				claim[a.AssetID] = l.LineID
				accept[a.AssetID] = a.IsAccepted
				ids = append(ids, a.AssetID)
			}
			if ok {
				valid = append(valid, l)
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		locked, err := r.Assets.GetForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[int64]*entity.Asset, len(locked))
		for _, a := range locked {
			byID[a.ID] = a
		}
		for _, id := range ids {
			a, ok := byID[id]
			switch {
			case !ok:
				lv.add(domain.Violation{Code: domain.ViolationAssetNotFound, Field: "asset_id", ID: id,
					Message: fmt.Sprintf("activo %d no existe", id)})
			case a.ShipmentManifestLineID == nil || *a.ShipmentManifestLineID != claim[id]:
				lv.add(domain.Violation{Code: domain.ViolationLineMismatch, Field: "asset_id", ID: id,
					Message: fmt.Sprintf("activo %d no pertenece a la línea de manifiesto %d", id, claim[id])})
			case a.Status != entity.AssetStatusInTransit:
				lv.add(domain.Violation{Code: domain.ViolationAssetState, Field: "asset_id", ID: id, Value: string(a.Status),
					Message: fmt.Sprintf("activo %d no está en tránsito (%s)", id, a.Status)})
			}
		}
		if err := lv.Err(); err != nil {
			return err
		}

		stats, err := lineStats(ctx, r.StockMoves, po, nil)
		if err != nil {
			return err
		}
		var lines []*receivedLine
		leaving := map[int64]int{}
		for _, l := range valid {
			ml, _ := m.Line(l.LineID)
			rl := &receivedLine{itemID: ml.PurchaseOrderItemID}
			for _, a := range l.AssetItems {
				asset := byID[a.AssetID]
				if asset.PurchaseOrderItemID != ml.PurchaseOrderItemID {
					return domain.NewIntegrity("activo %d: línea de orden %d, la línea de manifiesto %d apunta a %d",
						asset.ID, asset.PurchaseOrderItemID, ml.ID, ml.PurchaseOrderItemID)
				}
				if accept[a.AssetID] {
					rl.accepted = append(rl.accepted, asset)
				} else {
					rl.rejected = append(rl.rejected, asset)
				}
			}
			leaving[ml.PurchaseOrderItemID] += len(l.AssetItems)
			lines = append(lines, rl)
		}
		for itemID, n := range leaving {
			if inTransit := stats[itemID].InTransit; inTransit < n {
				return domain.NewIntegrity("línea de orden %d: %d en tránsito según el ledger, se reciben %d", itemID, inTransit, n)
			}
		}

		now := uc.now()
		receipt, err := uc.createReceipt(ctx, r, po.ID, &m.ID, userID, in.Notes, now)
		if err != nil {
			return err
		}
		var updates []entity.AssetReceiptUpdate
		for _, rl := range lines {
			for _, a := range rl.accepted {
				uc.place(a, true)
				updates = append(updates, receiptUpdate(a, receipt.ID, now))
			}
			for _, a := range rl.rejected {
				uc.place(a, false)
				updates = append(updates, receiptUpdate(a, receipt.ID, now))
			}
		}
		n, err := r.Assets.ApplyReceipt(ctx, updates)
		if err != nil {
			return err
		}
		if n != int64(len(updates)) {
			return domain.NewIntegrity("recepción %s: %d activos actualizados de %d", receipt.ReceiptNumber, n, len(updates))
		}

		accepted, rejected, err := uc.writeMoves(ctx, r, lines, entity.LocationInTransit, receipt, &m.ID, userID, now)
		if err != nil {
			return err
		}

		pending, err := r.Assets.CountByManifestAndStatus(ctx, m.ID, entity.AssetStatusInTransit)
		if err != nil {
			return err
		}
		if pending == 0 {
			if err := r.Manifests.UpdateStatus(ctx, m.ID, entity.ManifestStatusReceived, now); err != nil {
				return err
			}
		}
		if err := refreshPurchaseOrderStatus(ctx, r, po, now, uc.log); err != nil {
			return err
		}
		uc.logReceipt(receipt, accepted, rejected)
		out = toReceiptResponse(receipt, po, accepted, rejected)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *ReceiptUseCase) createReceipt(ctx context.Context, r TxRepos, poID int64, manifestID *int64, userID int64, notes string, now time.Time) (*entity.GoodsReceipt, error) {
	receipt := &entity.GoodsReceipt{
		ReceiptNumber:      uc.serials.ReceiptNumber(),
		PurchaseOrderID:    poID,
		ShipmentManifestID: manifestID,
		ReceivedByUserID:   userID,
		ReceivedAt:         now,
		Notes:              strings.TrimSpace(notes),
	}
	if err := r.Receipts.Create(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// place asigna estado y zona según el resultado de la inspección.
func (uc *ReceiptUseCase) place(a *entity.Asset, accepted bool) {
	zone := uc.zones.QuarantineZoneID
	a.Status = entity.AssetStatusRejected
	if accepted {
		zone = uc.zones.DefaultStorageZoneID
		a.Status = entity.AssetStatusAwaitingQC
	}
	a.ZoneID = &zone
}

func receiptUpdate(a *entity.Asset, receiptID int64, now time.Time) entity.AssetReceiptUpdate {
	a.GoodsReceiptID = &receiptID
	a.LastMovementDate = now
	return entity.AssetReceiptUpdate{AssetID: a.ID, Status: a.Status, ZoneID: *a.ZoneID, GoodsReceiptID: receiptID, MovedAt: now}
}

// writeMoves inserta un movimiento por línea y destino con al menos una unidad, y vincula cada activo.
func (uc *ReceiptUseCase) writeMoves(ctx context.Context, r TxRepos, lines []*receivedLine, source entity.Location,
	receipt *entity.GoodsReceipt, manifestID *int64, userID int64, now time.Time) (accepted, rejected int, err error) {
	var moves []*entity.StockMove
	var groups [][]*entity.Asset
	add := func(itemID int64, dest entity.Location, assets []*entity.Asset) {
		if len(assets) == 0 {
			return
		}
		moves = append(moves, &entity.StockMove{
			PurchaseOrderItemID: itemID,
			Source:              source,
			Destination:         dest,
			Quantity:            len(assets),
			GoodsReceiptID:      &receipt.ID,
			ShipmentManifestID:  manifestID,
			CreatedByUserID:     userID,
			MovedAt:             now,
		})
		groups = append(groups, assets)
	}
	for _, rl := range lines {
		add(rl.itemID, entity.LocationAwaitingQC, rl.accepted)
		add(rl.itemID, entity.LocationRejectedDock, rl.rejected)
		accepted += len(rl.accepted)
		rejected += len(rl.rejected)
	}
	if err := r.StockMoves.CreateBatch(ctx, moves); err != nil {
		return 0, 0, err
	}
	var links []entity.AssetStockMove
	for i, mv := range moves {
		for _, a := range groups[i] {
			links = append(links, entity.AssetStockMove{AssetID: a.ID, StockMoveID: mv.ID})
		}
	}
	n, err := r.StockMoves.LinkAssets(ctx, links)
	if err != nil {
		return 0, 0, err
	}
	if n != int64(accepted+rejected) {
		return 0, 0, domain.NewIntegrity("recepción %s: %d vínculos para %d activos", receipt.ReceiptNumber, n, accepted+rejected)
	}
	return accepted, rejected, nil
}

func (uc *ReceiptUseCase) logReceipt(receipt *entity.GoodsReceipt, accepted, rejected int) {
	ev := uc.log.Info().
		Int64("receipt_id", receipt.ID).
		Str("receipt_number", receipt.ReceiptNumber).
		Int64("purchase_order_id", receipt.PurchaseOrderID).
		Int("accepted", accepted).
		Int("rejected", rejected)
	if receipt.ShipmentManifestID != nil {
		ev = ev.Int64("manifest_id", *receipt.ShipmentManifestID)
	}
	ev.Msg("recepción registrada")
}

func toReceiptResponse(receipt *entity.GoodsReceipt, po *entity.PurchaseOrder, accepted, rejected int) *dto.ReceiptResponse {
	return &dto.ReceiptResponse{
		ReceiptID:           receipt.ID,
		ReceiptNumber:       receipt.ReceiptNumber,
		PurchaseOrderID:     po.ID,
		ShipmentManifestID:  receipt.ShipmentManifestID,
		PurchaseOrderStatus: string(po.Status),
		Accepted:            accepted,
		Rejected:            rejected,
	}
}

func requiredLines() error {
	return &domain.ValidationError{Violations: []domain.Violation{{
		Code: domain.ViolationRequired, Field: "lines", Message: "la recepción requiere al menos una línea",
	}}}
}

// Get devuelve la recepción con sus activos y movimientos.
func (uc *ReceiptUseCase) Get(ctx context.Context, id int64) (*dto.ReceiptDetailResponse, error) {
	receipt, err := uc.receipts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.NewNotFound("recepción", id)
	}
	assets, err := uc.assets.ListByReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	moves, err := uc.moves.ListByReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.ReceiptDetailResponse{
		ID:                 receipt.ID,
		ReceiptNumber:      receipt.ReceiptNumber,
		PurchaseOrderID:    receipt.PurchaseOrderID,
		ShipmentManifestID: receipt.ShipmentManifestID,
		ReceivedByUserID:   receipt.ReceivedByUserID,
		ReceivedAt:         receipt.ReceivedAt,
		Notes:              receipt.Notes,
		Assets:             make([]dto.ReceiptAssetResponse, 0, len(assets)),
		StockMoves:         make([]dto.StockMoveResponse, 0, len(moves)),
	}
	for _, a := range assets {
		out.Assets = append(out.Assets, dto.ReceiptAssetResponse{
			ID:                  a.ID,
			SerialNumber:        a.SerialNumber,
			ProductID:           a.ProductID,
			PurchaseOrderItemID: a.PurchaseOrderItemID,
			Status:              string(a.Status),
			ZoneID:              a.ZoneID,
		})
	}
	for _, mv := range moves {
		out.StockMoves = append(out.StockMoves, dto.StockMoveResponse{
			ID:                  mv.ID,
			PurchaseOrderItemID: mv.PurchaseOrderItemID,
			Source:              mv.Source.String(),
			Destination:         mv.Destination.String(),
			Quantity:            mv.Quantity,
			MovedAt:             mv.MovedAt,
		})
	}
	return out, nil
}

// PDF genera el comprobante de la recepción.
func (uc *ReceiptUseCase) PDF(ctx context.Context, id int64) ([]byte, string, error) {
	receipt, err := uc.receipts.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if receipt == nil {
		return nil, "", domain.NewNotFound("recepción", id)
	}
	po, err := uc.pos.GetByID(ctx, receipt.PurchaseOrderID)
	if err != nil {
		return nil, "", err
	}
	if po == nil {
		return nil, "", domain.NewIntegrity("recepción %d referencia la orden %d inexistente", id, receipt.PurchaseOrderID)
	}
	supplier, err := uc.suppliers.GetByID(ctx, po.SupplierID)
	if err != nil {
		return nil, "", err
	}
	assets, err := uc.assets.ListByReceipt(ctx, id)
	if err != nil {
		return nil, "", err
	}

	byItem := map[int64]*ReceiptDocumentLine{}
	var order []int64
	for _, a := range assets {
		l, ok := byItem[a.PurchaseOrderItemID]
		if !ok {
			l = &ReceiptDocumentLine{PurchaseOrderItemID: a.PurchaseOrderItemID}
			if p, err := uc.products.GetByID(ctx, a.ProductID); err != nil {
				return nil, "", err
			} else if p != nil {
				l.ProductSKU, l.ProductName = p.SKU, p.Name
			}
			byItem[a.PurchaseOrderItemID] = l
			order = append(order, a.PurchaseOrderItemID)
		}
		if a.Status == entity.AssetStatusRejected {
			l.Rejected = append(l.Rejected, a.SerialNumber)
		} else {
			l.Accepted = append(l.Accepted, a.SerialNumber)
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	doc := ReceiptDocument{Receipt: receipt, Supplier: supplier}
	for _, itemID := range order {
		doc.Lines = append(doc.Lines, *byItem[itemID])
	}

	pdf, err := uc.pdf.GenerateReceiptPDF(ctx, doc)
	if err != nil {
		return nil, "", err
	}
	return pdf, receipt.ReceiptNumber + ".pdf", nil
}
