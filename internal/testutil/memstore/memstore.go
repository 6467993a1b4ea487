// Package memstore implementa los puertos de repositorio en memoria para pruebas de casos de uso.
// Run toma una copia del estado y la restaura si la función devuelve error.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/procurement"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

type state struct {
	seq       map[string]int64
	products  map[int64]entity.Product
	users     map[int64]entity.User
	suppliers map[int64]entity.Supplier
	zones     map[int64]entity.Zone
	orders    map[int64]entity.PurchaseOrder
	manifests map[int64]entity.ShipmentManifest
	assets    map[int64]entity.Asset
	moves     []entity.StockMove
	links     []entity.AssetStockMove
	receipts  map[int64]entity.GoodsReceipt
}

func newState() state {
	return state{
		seq:       map[string]int64{},
		products:  map[int64]entity.Product{},
		users:     map[int64]entity.User{},
		suppliers: map[int64]entity.Supplier{},
		zones:     map[int64]entity.Zone{},
		orders:    map[int64]entity.PurchaseOrder{},
		manifests: map[int64]entity.ShipmentManifest{},
		assets:    map[int64]entity.Asset{},
		receipts:  map[int64]entity.GoodsReceipt{},
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone copia el estado; las órdenes y manifiestos copian también sus slices.
func (s state) clone() state {
	c := state{
		seq:       copyMap(s.seq),
		products:  copyMap(s.products),
		users:     copyMap(s.users),
		suppliers: copyMap(s.suppliers),
		zones:     copyMap(s.zones),
		orders:    make(map[int64]entity.PurchaseOrder, len(s.orders)),
		manifests: make(map[int64]entity.ShipmentManifest, len(s.manifests)),
		assets:    copyMap(s.assets),
		moves:     append([]entity.StockMove(nil), s.moves...),
		links:     append([]entity.AssetStockMove(nil), s.links...),
		receipts:  copyMap(s.receipts),
	}
	for k, v := range s.orders {
		v.Items = append([]entity.PurchaseOrderItem(nil), v.Items...)
		c.orders[k] = v
	}
	for k, v := range s.manifests {
		v.Lines = append([]entity.ShipmentManifestLine(nil), v.Lines...)
		c.manifests[k] = v
	}
	return c
}

// Store base de datos en memoria.
type Store struct {
	txMu   sync.Mutex
	mu     sync.Mutex
	st     state
	faults map[string]error
	shorts map[string]int
}

// New crea un Store vacío.
func New() *Store {
	return &Store{st: newState(), faults: map[string]error{}, shorts: map[string]int{}}
}

// FailOn hace que la operación op (p.ej. "StockMoves.LinkAssets") devuelva err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	return s.faults[op]
}

// ShortOn hace que la escritura masiva op ("Assets.ApplyReceipt", "StockMoves.LinkAssets")
// omita sus últimas n filas y reporte solo las escritas.
func (s *Store) ShortOn(op string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shorts[op] = n
}

func (s *Store) keep(op string, total int) int {
	if n := total - s.shorts[op]; n > 0 {
		return n
	}
	return 0
}

func (s *Store) next(kind string) int64 {
	s.st.seq[kind]++
	return s.st.seq[kind]
}

// Run ejecuta fn con los repositorios del Store; si fn falla restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(repos procurement.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()
	if err := fn(s.TxRepos()); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// TxRepos repositorios transaccionales sobre el Store.
func (s *Store) TxRepos() procurement.TxRepos {
	return procurement.TxRepos{
		PurchaseOrders: s.PurchaseOrders(),
		Manifests:      s.Manifests(),
		Assets:         s.Assets(),
		StockMoves:     s.StockMoves(),
		Receipts:       s.Receipts(),
	}
}

// Moves copia del ledger completo.
func (s *Store) Moves() []entity.StockMove {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockMove(nil), s.st.moves...)
}

// Links copia de las asociaciones activo-movimiento.
func (s *Store) Links() []entity.AssetStockMove {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.AssetStockMove(nil), s.st.links...)
}

// AllAssets copia de todos los activos ordenados por ID.
func (s *Store) AllAssets() []entity.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Asset, 0, len(s.st.assets))
	for _, a := range s.st.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ReceiptCount número de recepciones registradas.
func (s *Store) ReceiptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.receipts)
}

// ManifestCount número de manifiestos registrados.
func (s *Store) ManifestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.manifests)
}

// ─── Products ────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

// Products repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.st.products {
		if o.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	p.ID = r.s.next("product")
	r.s.st.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedKeys(r.s.st.products)
	var out []*entity.Product
	for _, id := range page(ids, limit, offset) {
		p := r.s.st.products[id]
		out = append(out, &p)
	}
	return out, nil
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.products[p.ID] = *p
	return nil
}

// ─── Users ───────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.st.users {
		if strings.EqualFold(o.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	u.ID = r.s.next("user")
	r.s.st.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, id := range page(sortedKeys(r.s.st.users), limit, offset) {
		u := r.s.st.users[id]
		out = append(out, &u)
	}
	return out, nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.users[u.ID] = *u
	return nil
}

// ─── Suppliers ───────────────────────────────────────────────────────────────

type supplierRepo struct{ s *Store }

// Suppliers repositorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository { return supplierRepo{s} }

func (r supplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp.ID = r.s.next("supplier")
	r.s.st.suppliers[sp.ID] = *sp
	return nil
}

func (r supplierRepo) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.st.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}

func (r supplierRepo) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Supplier
	for _, id := range page(sortedKeys(r.s.st.suppliers), limit, offset) {
		sp := r.s.st.suppliers[id]
		out = append(out, &sp)
	}
	return out, nil
}

func (r supplierRepo) Update(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.suppliers[sp.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.suppliers[sp.ID] = *sp
	return nil
}

// ─── Zones ───────────────────────────────────────────────────────────────────

type zoneRepo struct{ s *Store }

// Zones repositorio de zonas.
func (s *Store) Zones() repository.ZoneRepository { return zoneRepo{s} }

// PutZone inserta una zona con ID fijo.
func (s *Store) PutZone(z entity.Zone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.zones[z.ID] = z
}

func (r zoneRepo) nameTaken(name string, except int64) bool {
	for id, o := range r.s.st.zones {
		if id != except && strings.EqualFold(o.Name, name) {
			return true
		}
	}
	return false
}

func (r zoneRepo) Create(_ context.Context, z *entity.Zone) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(z.Name, 0) {
		return domain.ErrDuplicate
	}
	for {
		z.ID = r.s.next("zone")
		if _, taken := r.s.st.zones[z.ID]; !taken {
			break
		}
	}
	r.s.st.zones[z.ID] = *z
	return nil
}

func (r zoneRepo) GetByID(_ context.Context, id int64) (*entity.Zone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	z, ok := r.s.st.zones[id]
	if !ok {
		return nil, nil
	}
	return &z, nil
}

func (r zoneRepo) List(_ context.Context) ([]*entity.Zone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Zone
	for _, id := range sortedKeys(r.s.st.zones) {
		z := r.s.st.zones[id]
		out = append(out, &z)
	}
	return out, nil
}

func (r zoneRepo) Update(_ context.Context, z *entity.Zone) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.zones[z.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.nameTaken(z.Name, z.ID) {
		return domain.ErrDuplicate
	}
	r.s.st.zones[z.ID] = *z
	return nil
}

// ─── Purchase orders ─────────────────────────────────────────────────────────

type orderRepo struct{ s *Store }

// PurchaseOrders repositorio de órdenes de compra.
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository { return orderRepo{s} }

func (r orderRepo) assignItems(poID int64, items []entity.PurchaseOrderItem) []entity.PurchaseOrderItem {
	out := make([]entity.PurchaseOrderItem, len(items))
	for i, it := range items {
		it.ID = r.s.next("po_item")
		it.PurchaseOrderID = poID
		items[i] = it
		out[i] = it
	}
	return out
}

func (r orderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("PurchaseOrders.Create"); err != nil {
		return err
	}
	po.ID = r.s.next("po")
	stored := *po
	stored.Items = r.assignItems(po.ID, po.Items)
	r.s.st.orders[po.ID] = stored
	return nil
}

func (r orderRepo) get(id int64) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	po, ok := r.s.st.orders[id]
	if !ok {
		return nil, nil
	}
	po.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
	return &po, nil
}

func (r orderRepo) GetByID(_ context.Context, id int64) (*entity.PurchaseOrder, error) {
	return r.get(id)
}

func (r orderRepo) GetForUpdate(_ context.Context, id int64) (*entity.PurchaseOrder, error) {
	return r.get(id)
}

func (r orderRepo) List(_ context.Context, status entity.PurchaseOrderStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []int64
	for _, id := range sortedKeys(r.s.st.orders) {
		if status == "" || r.s.st.orders[id].Status == status {
			ids = append(ids, id)
		}
	}
	var out []*entity.PurchaseOrder
	for _, id := range page(ids, limit, offset) {
		po := r.s.st.orders[id]
		po.Items = nil
		out = append(out, &po)
	}
	return out, nil
}

func (r orderRepo) Update(_ context.Context, po *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.orders[po.ID]
	if !ok {
		return domain.ErrNotFound
	}
	items := cur.Items
	cur = *po
	cur.Items = items
	r.s.st.orders[po.ID] = cur
	return nil
}

func (r orderRepo) ReplaceItems(_ context.Context, poID int64, items []entity.PurchaseOrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.orders[poID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Items = r.assignItems(poID, items)
	r.s.st.orders[poID] = cur
	return nil
}

func (r orderRepo) UpdateStatus(_ context.Context, id int64, status entity.PurchaseOrderStatus, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = status
	cur.UpdatedAt = at
	r.s.st.orders[id] = cur
	return nil
}

// ─── Manifests ───────────────────────────────────────────────────────────────

type manifestRepo struct{ s *Store }

// Manifests repositorio de manifiestos.
func (s *Store) Manifests() repository.ShipmentManifestRepository { return manifestRepo{s} }

func (r manifestRepo) Create(_ context.Context, m *entity.ShipmentManifest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Manifests.Create"); err != nil {
		return err
	}
	m.ID = r.s.next("manifest")
	for i := range m.Lines {
		m.Lines[i].ID = r.s.next("manifest_line")
		m.Lines[i].ShipmentManifestID = m.ID
	}
	stored := *m
	stored.Lines = append([]entity.ShipmentManifestLine(nil), m.Lines...)
	r.s.st.manifests[m.ID] = stored
	return nil
}

func (r manifestRepo) get(id int64) (*entity.ShipmentManifest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.st.manifests[id]
	if !ok {
		return nil, nil
	}
	m.Lines = append([]entity.ShipmentManifestLine(nil), m.Lines...)
	return &m, nil
}

func (r manifestRepo) GetByID(_ context.Context, id int64) (*entity.ShipmentManifest, error) {
	return r.get(id)
}

func (r manifestRepo) GetForUpdate(_ context.Context, id int64) (*entity.ShipmentManifest, error) {
	return r.get(id)
}

func (r manifestRepo) GetLine(_ context.Context, lineID int64) (*entity.ShipmentManifestLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.st.manifests {
		if l, ok := m.Line(lineID); ok {
			return &l, nil
		}
	}
	return nil, nil
}

func (r manifestRepo) UpdateStatus(_ context.Context, id int64, status string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.st.manifests[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Status = status
	m.UpdatedAt = at
	r.s.st.manifests[id] = m
	return nil
}

func (r manifestRepo) Search(_ context.Context, f entity.ManifestFilter) ([]entity.ManifestSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.ManifestSummary
	ids := sortedKeys(r.s.st.manifests)
	for i := len(ids) - 1; i >= 0; i-- {
		m := r.s.st.manifests[ids[i]]
		supplier := r.s.st.suppliers[m.SupplierID].Name
		switch {
		case f.ManifestID != 0 && m.ID != f.ManifestID,
			f.SupplierName != "" && !strings.Contains(strings.ToLower(supplier), strings.ToLower(f.SupplierName)),
			f.TrackingNumber != "" && !strings.Contains(strings.ToLower(m.TrackingNumber), strings.ToLower(f.TrackingNumber)),
			f.From != nil && m.CreatedAt.Before(*f.From),
			f.To != nil && m.CreatedAt.After(*f.To):
			continue
		}
		out = append(out, entity.ManifestSummary{
			ID: m.ID, PurchaseOrderID: m.PurchaseOrderID, SupplierName: supplier,
			TrackingNumber: m.TrackingNumber, CarrierName: m.CarrierName, EstimatedArrival: m.EstimatedArrival,
			Status: m.Status, ItemCount: len(m.Lines), CreatedAt: m.CreatedAt,
		})
	}
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// ─── Stock ───────────────────────────────────────────────────────────────────

type stockRepo struct{ s *Store }

// Stock repositorio de niveles de stock derivados de los activos.
func (s *Store) Stock() repository.StockRepository { return stockRepo{s} }

func (r stockRepo) Levels(_ context.Context, productID int64) ([]entity.StockLevel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	type key struct {
		product int64
		zone    int64
		status  entity.AssetStatus
	}
	counts := map[key]int{}
	for _, a := range r.s.st.assets {
		if productID != 0 && a.ProductID != productID {
			continue
		}
		k := key{product: a.ProductID, status: a.Status}
		if a.ZoneID != nil {
			k.zone = *a.ZoneID
		}
		counts[k]++
	}
	out := make([]entity.StockLevel, 0, len(counts))
	for k, n := range counts {
		l := entity.StockLevel{ProductID: k.product, Status: k.status, Quantity: n}
		if k.zone != 0 {
			zone := k.zone
			l.ZoneID = &zone
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ProductID != b.ProductID {
			return a.ProductID < b.ProductID
		}
		za, zb := zoneKey(a.ZoneID), zoneKey(b.ZoneID)
		if za != zb {
			return za < zb
		}
		return a.Status < b.Status
	})
	return out, nil
}

func zoneKey(z *int64) int64 {
	if z == nil {
		return 0
	}
	return *z
}

// ─── Assets ──────────────────────────────────────────────────────────────────

type assetRepo struct{ s *Store }

// Assets repositorio de activos.
func (s *Store) Assets() repository.AssetRepository { return assetRepo{s} }

// PutAsset sobrescribe un activo existente tal cual, sin validar.
func (s *Store) PutAsset(a entity.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.assets[a.ID] = a
}

func (r assetRepo) CreateBatch(_ context.Context, assets []*entity.Asset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Assets.CreateBatch"); err != nil {
		return err
	}
	for _, a := range assets {
		for _, o := range r.s.st.assets {
			if o.SerialNumber == a.SerialNumber {
				return domain.ErrDuplicate
			}
		}
		a.ID = r.s.next("asset")
		r.s.st.assets[a.ID] = *a
	}
	return nil
}

func (r assetRepo) ExistingSerials(_ context.Context, serials []string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := map[string]bool{}
	for _, sn := range serials {
		want[sn] = true
	}
	var out []string
	for _, a := range r.s.st.assets {
		if want[a.SerialNumber] {
			out = append(out, a.SerialNumber)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r assetRepo) GetForUpdate(_ context.Context, ids []int64) ([]*entity.Asset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Asset
	for _, id := range ids {
		if a, ok := r.s.st.assets[id]; ok {
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r assetRepo) filter(keep func(entity.Asset) bool) []*entity.Asset {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Asset
	for _, id := range sortedKeys(r.s.st.assets) {
		a := r.s.st.assets[id]
		if keep(a) {
			out = append(out, &a)
		}
	}
	return out
}

func (r assetRepo) ListByManifestLine(_ context.Context, lineID int64) ([]*entity.Asset, error) {
	return r.filter(func(a entity.Asset) bool {
		return a.ShipmentManifestLineID != nil && *a.ShipmentManifestLineID == lineID
	}), nil
}

func (r assetRepo) ListByReceipt(_ context.Context, receiptID int64) ([]*entity.Asset, error) {
	return r.filter(func(a entity.Asset) bool {
		return a.GoodsReceiptID != nil && *a.GoodsReceiptID == receiptID
	}), nil
}

func (r assetRepo) CountByManifestAndStatus(_ context.Context, manifestID int64, status entity.AssetStatus) (int, error) {
	r.s.mu.Lock()
	m, ok := r.s.st.manifests[manifestID]
	r.s.mu.Unlock()
	if !ok {
		return 0, nil
	}
	lines := map[int64]bool{}
	for _, l := range m.Lines {
		lines[l.ID] = true
	}
	return len(r.filter(func(a entity.Asset) bool {
		return a.Status == status && a.ShipmentManifestLineID != nil && lines[*a.ShipmentManifestLineID]
	})), nil
}

func (r assetRepo) ApplyReceipt(_ context.Context, updates []entity.AssetReceiptUpdate) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Assets.ApplyReceipt"); err != nil {
		return 0, err
	}
	var n int64
	for _, u := range updates[:r.s.keep("Assets.ApplyReceipt", len(updates))] {
		a, ok := r.s.st.assets[u.AssetID]
		if !ok {
			continue
		}
		zone, receipt := u.ZoneID, u.GoodsReceiptID
		a.Status = u.Status
		a.ZoneID = &zone
		a.GoodsReceiptID = &receipt
		a.LastMovementDate = u.MovedAt
		r.s.st.assets[a.ID] = a
		n++
	}
	return n, nil
}

// ─── Stock moves ─────────────────────────────────────────────────────────────

type moveRepo struct{ s *Store }

// StockMoves repositorio del ledger.
func (s *Store) StockMoves() repository.StockMoveRepository { return moveRepo{s} }

// PutMove inserta un movimiento directamente en el ledger.
func (s *Store) PutMove(mv entity.StockMove) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mv.ID = s.next("move")
	s.st.moves = append(s.st.moves, mv)
}

func (r moveRepo) CreateBatch(_ context.Context, moves []*entity.StockMove) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("StockMoves.CreateBatch"); err != nil {
		return err
	}
	for _, mv := range moves {
		mv.ID = r.s.next("move")
		r.s.st.moves = append(r.s.st.moves, *mv)
	}
	return nil
}

func (r moveRepo) LinkAssets(_ context.Context, links []entity.AssetStockMove) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("StockMoves.LinkAssets"); err != nil {
		return 0, err
	}
	links = links[:r.s.keep("StockMoves.LinkAssets", len(links))]
	r.s.st.links = append(r.s.st.links, links...)
	return int64(len(links)), nil
}

func (r moveRepo) ListByItems(_ context.Context, itemIDs []int64) ([]entity.StockMove, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := map[int64]bool{}
	for _, id := range itemIDs {
		want[id] = true
	}
	var out []entity.StockMove
	for _, mv := range r.s.st.moves {
		if want[mv.PurchaseOrderItemID] {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (r moveRepo) ListByReceipt(_ context.Context, receiptID int64) ([]entity.StockMove, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.StockMove
	for _, mv := range r.s.st.moves {
		if mv.GoodsReceiptID != nil && *mv.GoodsReceiptID == receiptID {
			out = append(out, mv)
		}
	}
	return out, nil
}

// ─── Goods receipts ──────────────────────────────────────────────────────────

type receiptRepo struct{ s *Store }

// Receipts repositorio de recepciones.
func (s *Store) Receipts() repository.GoodsReceiptRepository { return receiptRepo{s} }

func (r receiptRepo) Create(_ context.Context, g *entity.GoodsReceipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.st.receipts {
		if o.ReceiptNumber == g.ReceiptNumber {
			return domain.ErrDuplicate
		}
	}
	g.ID = r.s.next("receipt")
	r.s.st.receipts[g.ID] = *g
	return nil
}

func (r receiptRepo) GetByID(_ context.Context, id int64) (*entity.GoodsReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.st.receipts[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func page(ids []int64, limit, offset int) []int64 {
	if offset >= len(ids) {
		return nil
	}
	ids = ids[offset:]
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}

var _ procurement.TxRunner = (*Store)(nil)
