package procurement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

const maxSerialAttempts = 5

// LineBase campos comunes a las dos variantes de línea de manifiesto.
type LineBase struct {
	PurchaseOrderItemID int64
	SupplierSKU         string
}

func (b LineBase) base() LineBase { return b }

// ManifestLineInput línea de manifiesto: AssetSpecifiedLine o QuantityDeclaredLine.
type ManifestLineInput interface {
	base() LineBase
}

// AssetSpecifiedLine el proveedor declara los seriales exactos de cada unidad.
type AssetSpecifiedLine struct {
	LineBase
	SerialNumbers []string
}

// QuantityDeclaredLine el proveedor declara solo la cantidad; los seriales se generan.
type QuantityDeclaredLine struct {
	LineBase
	Quantity int
}

// CreateManifestInput datos para crear un manifiesto.
type CreateManifestInput struct {
	PurchaseOrderID  int64
	TrackingNumber   string
	CarrierName      string
	EstimatedArrival *time.Time
	Status           string
	Lines            []ManifestLineInput
}

// ManifestInputFromRequest traduce el DTO HTTP a la entrada tipada según el campo type de cada línea.
func ManifestInputFromRequest(req dto.CreateManifestRequest) (CreateManifestInput, error) {
	in := CreateManifestInput{
		PurchaseOrderID:  req.PurchaseOrderID,
		TrackingNumber:   strings.TrimSpace(req.TrackingNumber),
		CarrierName:      strings.TrimSpace(req.CarrierName),
		EstimatedArrival: req.EstimatedArrival,
		Status:           req.Status,
	}
	var violations []domain.Violation
	for i, l := range req.Lines {
		b := LineBase{PurchaseOrderItemID: l.PurchaseOrderItemID, SupplierSKU: strings.TrimSpace(l.SupplierSKU)}
		switch entity.ManifestLineKind(l.Type) {
		case entity.LineKindAssetSpecified:
			in.Lines = append(in.Lines, AssetSpecifiedLine{LineBase: b, SerialNumbers: l.SerialNumbers})
		case entity.LineKindQuantityDeclared:
			in.Lines = append(in.Lines, QuantityDeclaredLine{LineBase: b, Quantity: l.Quantity})
		default:
			violations = append(violations, domain.Violation{
				Code: domain.ViolationLineType, Field: fmt.Sprintf("lines[%d].type", i), ID: l.PurchaseOrderItemID, Value: l.Type,
				Message: fmt.Sprintf("tipo de línea %q inválido; use asset_specified o quantity_declared", l.Type),
			})
		}
	}
	if len(violations) > 0 {
		return in, &domain.ValidationError{Violations: violations}
	}
	return in, nil
}

// ManifestUseCase construcción y consulta de manifiestos de envío.
type ManifestUseCase struct {
	tx        TxRunner
	manifests repository.ShipmentManifestRepository
	assets    repository.AssetRepository
	zones     ZoneConfig
	serials   inventory.SerialGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewManifestUseCase construye el caso de uso.
func NewManifestUseCase(
	tx TxRunner,
	manifests repository.ShipmentManifestRepository,
	assets repository.AssetRepository,
	zones ZoneConfig,
	serials inventory.SerialGenerator,
	log *logger.Logger,
) *ManifestUseCase {
	return &ManifestUseCase{
		tx: tx, manifests: manifests, assets: assets, zones: zones, serials: serials,
		log: log.Named("manifest"), now: time.Now,
	}
}

// plannedLine línea validada lista para persistir.
type plannedLine struct {
	item    entity.PurchaseOrderItem
	kind    entity.ManifestLineKind
	sku     string
	qty     int
	serials []string // vacío para quantity_declared
}

// Create valida la orden y las líneas y, en una sola transacción, crea el manifiesto, sus líneas,
// un movimiento Vendor -> In Transit por línea, un activo por unidad y los vínculos activo-movimiento.
func (uc *ManifestUseCase) Create(ctx context.Context, userID int64, in CreateManifestInput) (*dto.ManifestCreatedResponse, error) {
	status := in.Status
	if status == "" {
		status = entity.ManifestStatusPosted
	}
	if status != entity.ManifestStatusPosted && status != entity.ManifestStatusDraft {
		return nil, &domain.ValidationError{Violations: []domain.Violation{{
			Code: domain.ViolationInvalidValue, Field: "status", Value: status,
			Message: "status debe ser Draft o posted",
		}}}
	}
	if len(in.Lines) == 0 {
		return nil, &domain.ValidationError{Violations: []domain.Violation{{
			Code: domain.ViolationRequired, Field: "lines", Message: "el manifiesto requiere al menos una línea",
		}}}
	}

	var out *dto.ManifestCreatedResponse
	err := uc.tx.Run(ctx, func(r TxRepos) error {
		po, err := r.PurchaseOrders.GetForUpdate(ctx, in.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.NewNotFound("orden de compra", in.PurchaseOrderID)
		}
		if err := po.RequireStatus(entity.POStatusIssued); err != nil {
			return err
		}

		plan, err := uc.validate(ctx, r, po, in.Lines)
		if err != nil {
			return err
		}

		now := uc.now()
		m := &entity.ShipmentManifest{
			PurchaseOrderID:  po.ID,
			SupplierID:       po.SupplierID,
			TrackingNumber:   in.TrackingNumber,
			CarrierName:      in.CarrierName,
			EstimatedArrival: in.EstimatedArrival,
			Status:           status,
			CreatedByUserID:  userID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		for _, p := range plan {
			m.Lines = append(m.Lines, entity.ShipmentManifestLine{
				PurchaseOrderItemID: p.item.ID,
				Kind:                p.kind,
				SupplierSKU:         p.sku,
				QuantityDeclared:    p.qty,
			})
		}
		if err := r.Manifests.Create(ctx, m); err != nil {
			return err
		}

		moves := make([]*entity.StockMove, 0, len(plan))
		for _, p := range plan {
			moves = append(moves, &entity.StockMove{
				PurchaseOrderItemID: p.item.ID,
				Source:              entity.LocationVendor,
				Destination:         entity.LocationInTransit,
				Quantity:            p.qty,
				ShipmentManifestID:  &m.ID,
				CreatedByUserID:     userID,
				MovedAt:             now,
			})
		}
		if err := r.StockMoves.CreateBatch(ctx, moves); err != nil {
			return err
		}

		if err := uc.fillGeneratedSerials(ctx, r, plan); err != nil {
			return err
		}
		zoneID := uc.zones.DefaultStorageZoneID
		var assets []*entity.Asset
		var moveOf []int
		for i, p := range plan {
			lineID := m.Lines[i].ID
			for _, sn := range p.serials {
				assets = append(assets, &entity.Asset{
					SerialNumber:           sn,
					ProductID:              p.item.ProductID,
					PurchaseOrderItemID:    p.item.ID,
					ShipmentManifestLineID: &lineID,
					ZoneID:                 &zoneID,
					Status:                 entity.AssetStatusInTransit,
					LastMovementDate:       now,
					CreatedAt:              now,
				})
				moveOf = append(moveOf, i)
			}
		}
		if err := r.Assets.CreateBatch(ctx, assets); err != nil {
			return err
		}

		links := make([]entity.AssetStockMove, 0, len(assets))
		for i, a := range assets {
			links = append(links, entity.AssetStockMove{AssetID: a.ID, StockMoveID: moves[moveOf[i]].ID})
		}
		n, err := r.StockMoves.LinkAssets(ctx, links)
		if err != nil {
			return err
		}
		if n != int64(len(assets)) {
			return domain.NewIntegrity("manifiesto: %d vínculos insertados para %d activos", n, len(assets))
		}

		if m.EstimatedArrival != nil && m.EstimatedArrival.Before(now) {
			uc.log.Warn().
				Int64("manifest_id", m.ID).
				Time("estimated_arrival", *m.EstimatedArrival).
				Msg("fecha estimada de llegada en el pasado")
		}
		uc.log.Info().
			Int64("manifest_id", m.ID).
			Int64("purchase_order_id", po.ID).
			Int("lines", len(m.Lines)).
			Int("assets", len(assets)).
			Msg("manifiesto creado")

		out = &dto.ManifestCreatedResponse{
			ID:            m.ID,
			Code:          m.Code(),
			Status:        m.Status,
			LinesCreated:  len(m.Lines),
			AssetsCreated: len(assets),
			MovesCreated:  len(moves),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// validate aplica identidad de línea, seriales y cantidad; acumula todas las violaciones.
func (uc *ManifestUseCase) validate(ctx context.Context, r TxRepos, po *entity.PurchaseOrder, lines []ManifestLineInput) ([]plannedLine, error) {
	lv := newLineValidator("línea de orden", po.ItemIDs())
	serials := newSerialSet()
	var plan []plannedLine
	for _, l := range lines {
		b := l.base()
		if !lv.Line(b.PurchaseOrderItemID) {
			continue
		}
		item, _ := po.Item(b.PurchaseOrderItemID)
		p := plannedLine{item: item, sku: b.SupplierSKU}
		switch v := l.(type) {
		case AssetSpecifiedLine:
			p.kind = entity.LineKindAssetSpecified
			p.qty = len(v.SerialNumbers)
			for _, sn := range v.SerialNumbers {
				serials.Add(lv, item.ID, sn)
				p.serials = append(p.serials, strings.TrimSpace(sn))
			}
		case QuantityDeclaredLine:
			p.kind = entity.LineKindQuantityDeclared
			p.qty = v.Quantity
		}
		if !lv.Positive(item.ID, "quantity_declared", p.qty) {
			continue
		}
		plan = append(plan, p)
	}

	if len(serials.Values()) > 0 {
		existing, err := r.Assets.ExistingSerials(ctx, serials.Values())
		if err != nil {
			return nil, err
		}
		serials.Existing(lv, existing)
	}

	stats, err := lineStats(ctx, r.StockMoves, po, nil)
	if err != nil {
		return nil, err
	}
	for _, p := range plan {
		lv.Quantity(p.item.ID, p.qty, stats[p.item.ID].Remaining)
	}
	if err := lv.Err(); err != nil {
		return nil, err
	}
	return plan, nil
}

// fillGeneratedSerials genera seriales únicos para las líneas quantity_declared.
func (uc *ManifestUseCase) fillGeneratedSerials(ctx context.Context, r TxRepos, plan []plannedLine) error {
	used := map[string]bool{}
	for _, p := range plan {
		for _, sn := range p.serials {
			used[sn] = true
		}
	}
	for i := range plan {
		if plan[i].kind != entity.LineKindQuantityDeclared {
			continue
		}
		generated, err := uniqueSerials(ctx, r.Assets, uc.serials, plan[i].qty, used)
		if err != nil {
			return err
		}
		plan[i].serials = generated
	}
	return nil
}

// uniqueSerials genera n seriales que no están en used ni en la base de datos.
func uniqueSerials(ctx context.Context, assets repository.AssetRepository, gen inventory.SerialGenerator, n int, used map[string]bool) ([]string, error) {
	out := make([]string, 0, n)
	for attempt := 0; len(out) < n; attempt++ {
		if attempt == maxSerialAttempts {
			return nil, domain.NewIntegrity("no fue posible generar %d seriales únicos", n)
		}
		var batch []string
		for len(out)+len(batch) < n {
			sn := gen.Serial()
			if used[sn] {
				continue
			}
			used[sn] = true
			batch = append(batch, sn)
		}
		taken, err := assets.ExistingSerials(ctx, batch)
		if err != nil {
			return nil, err
		}
		clash := make(map[string]bool, len(taken))
		for _, sn := range taken {
			clash[sn] = true
		}
		for _, sn := range batch {
			if !clash[sn] {
				out = append(out, sn)
			}
		}
	}
	return out, nil
}

// Post publica un manifiesto en borrador (Draft -> posted) para habilitar su recepción.
func (uc *ManifestUseCase) Post(ctx context.Context, id int64) (*dto.ManifestResponse, error) {
	err := uc.tx.Run(ctx, func(r TxRepos) error {
		m, err := r.Manifests.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NewNotFound("manifiesto", id)
		}
		if m.Status != entity.ManifestStatusDraft {
			return &domain.InvalidStateError{Entity: "manifiesto", ID: id, Status: m.Status, Allowed: []string{entity.ManifestStatusDraft}}
		}
		return r.Manifests.UpdateStatus(ctx, id, entity.ManifestStatusPosted, uc.now())
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Get devuelve el manifiesto con sus líneas.
func (uc *ManifestUseCase) Get(ctx context.Context, id int64) (*dto.ManifestResponse, error) {
	m, err := uc.manifests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NewNotFound("manifiesto", id)
	}
	out := &dto.ManifestResponse{
		ID:               m.ID,
		Code:             m.Code(),
		PurchaseOrderID:  m.PurchaseOrderID,
		SupplierID:       m.SupplierID,
		TrackingNumber:   m.TrackingNumber,
		CarrierName:      m.CarrierName,
		EstimatedArrival: m.EstimatedArrival,
		Status:           m.Status,
		CreatedByUserID:  m.CreatedByUserID,
		CreatedAt:        m.CreatedAt,
		Lines:            make([]dto.ManifestLineResponse, 0, len(m.Lines)),
	}
	for _, l := range m.Lines {
		out.Lines = append(out.Lines, dto.ManifestLineResponse{
			ID:                  l.ID,
			PurchaseOrderItemID: l.PurchaseOrderItemID,
			Type:                string(l.Kind),
			SupplierSKU:         l.SupplierSKU,
			QuantityDeclared:    l.QuantityDeclared,
		})
	}
	return out, nil
}

// Lines devuelve el avance de recepción de cada línea del manifiesto.
func (uc *ManifestUseCase) Lines(ctx context.Context, id int64) ([]dto.ManifestLineProgressResponse, error) {
	m, err := uc.manifests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NewNotFound("manifiesto", id)
	}
	out := make([]dto.ManifestLineProgressResponse, 0, len(m.Lines))
	for _, l := range m.Lines {
		assets, err := uc.assets.ListByManifestLine(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		received := 0
		for _, a := range assets {
			if a.Status != entity.AssetStatusInTransit {
				received++
			}
		}
		out = append(out, dto.ManifestLineProgressResponse{
			ID:                  l.ID,
			PurchaseOrderItemID: l.PurchaseOrderItemID,
			SupplierSKU:         l.SupplierSKU,
			QuantityDeclared:    l.QuantityDeclared,
			QuantityReceived:    received,
			QuantityRemaining:   l.QuantityDeclared - received,
		})
	}
	return out, nil
}

// Search busca manifiestos por id, proveedor, guía y rango de fechas.
func (uc *ManifestUseCase) Search(ctx context.Context, req dto.ManifestSearchRequest) ([]dto.ManifestSummaryResponse, error) {
	req.DefaultPage()
	rows, err := uc.manifests.Search(ctx, entity.ManifestFilter{
		ManifestID:     req.ManifestID,
		SupplierName:   strings.TrimSpace(req.SupplierName),
		TrackingNumber: strings.TrimSpace(req.TrackingNumber),
		From:           req.From,
		To:             req.To,
		Limit:          req.Limit,
		Offset:         req.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ManifestSummaryResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, dto.ManifestSummaryResponse{
			ID:               s.ID,
			Code:             fmt.Sprintf("SM-%d", s.ID),
			PurchaseOrderID:  s.PurchaseOrderID,
			PONumber:         PurchaseOrderNumber(s.PurchaseOrderID),
			SupplierName:     s.SupplierName,
			TrackingNumber:   s.TrackingNumber,
			CarrierName:      s.CarrierName,
			EstimatedArrival: s.EstimatedArrival,
			Status:           s.Status,
			ItemCount:        s.ItemCount,
			CreatedAt:        s.CreatedAt,
		})
	}
	return out, nil
}

// VerifyLineAssets compara los seriales escaneados con los registrados en la línea. No escribe.
func (uc *ManifestUseCase) VerifyLineAssets(ctx context.Context, lineID int64, scanned []string) (*dto.VerifyAssetsResponse, error) {
	line, err := uc.manifests.GetLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.NewNotFound("línea de manifiesto", lineID)
	}
	assets, err := uc.assets.ListByManifestLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	expected := make(map[string]bool, len(assets))
	for _, a := range assets {
		expected[a.SerialNumber] = true
	}
	out := &dto.VerifyAssetsResponse{LineID: lineID, Matched: []string{}, Missing: []string{}, Redundant: []string{}}
	seen := map[string]bool{}
	for _, sn := range scanned {
		sn = strings.TrimSpace(sn)
		if sn == "" || seen[sn] {
			continue
		}
		seen[sn] = true
		if expected[sn] {
			out.Matched = append(out.Matched, sn)
		} else {
			out.Redundant = append(out.Redundant, sn)
		}
	}
	for _, a := range assets {
		if !seen[a.SerialNumber] {
			out.Missing = append(out.Missing, a.SerialNumber)
		}
	}
	out.IsComplete = len(out.Missing) == 0 && len(out.Redundant) == 0
	return out, nil
}
