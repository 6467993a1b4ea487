package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	appinventory "github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/procurement"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/inventory"
	infrapdf "github.com/jhoicas/Bodega-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Bodega-api/internal/interfaces/http"
	"github.com/jhoicas/Bodega-api/internal/testutil/memstore"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// ─── Harness ──────────────────────────────────────────────────────────────────

type harness struct {
	t     *testing.T
	app   *fiber.App
	store *memstore.Store
	auth  *auth.AuthUseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memstore.New()
	log := logger.Nop()
	zones := procurement.ZoneConfig{DefaultStorageZoneID: 7, QuarantineZoneID: 14}
	serials := inventory.NewUUIDSerials("GR")

	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer})

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     usecase.NewProductUseCase(store.Products()),
		SupplierUC:    usecase.NewSupplierUseCase(store.Suppliers()),
		ZoneUC:        usecase.NewZoneUseCase(store.Zones()),
		UserUC:        usecase.NewUserUseCase(store.Users()),
		PurchaseOrder: procurement.NewPurchaseOrderUseCase(store, store.PurchaseOrders(), store.Suppliers(), store.Products(), log),
		Aggregator:    procurement.NewQuantityAggregator(store.PurchaseOrders(), store.StockMoves()),
		Manifests:     procurement.NewManifestUseCase(store, store.Manifests(), store.Assets(), zones, serials, log),
		Receipts: procurement.NewReceiptUseCase(procurement.ReceiptDeps{
			Tx:        store,
			Receipts:  store.Receipts(),
			Assets:    store.Assets(),
			Moves:     store.StockMoves(),
			Orders:    store.PurchaseOrders(),
			Suppliers: store.Suppliers(),
			Products:  store.Products(),
			PDF:       infrapdf.NewMarotoPDFGenerator("Bodega"),
			Zones:     zones,
			Serials:   serials,
			Log:       log,
		}),
		Stock:     appinventory.NewStockUseCase(store.Stock(), store.Products()),
		JWTSecret: testJWTSecret,
	})
	return &harness{t: t, app: app, store: store, auth: authUC}
}

// do envía body como JSON y decodifica la respuesta en out (si no es nil).
func (h *harness) do(method, path, token string, body any, out any) int {
	h.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(h.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// userToken devuelve el token de un usuario con el rol dado. Los admin se crean como el admin
// inicial; el resto se registra por la API y, si hace falta, un admin le cambia el rol.
func (h *harness) userToken(email, role string) string {
	h.t.Helper()
	if role == entity.RoleAdmin {
		_, err := h.auth.EnsureAdmin(context.Background(), email, "secreto123")
		require.NoError(h.t, err)
		return h.login(email)
	}
	var user dto.UserResponse
	status := h.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: email, Password: "secreto123"}, &user)
	require.Equal(h.t, http.StatusCreated, status)
	if user.Role != role {
		root := h.userToken("root@bodega.co", entity.RoleAdmin)
		require.Equal(h.t, http.StatusOK, h.do(http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), root,
			map[string]any{"role": role}, nil))
	}
	return h.login(email)
}

func (h *harness) login(email string) string {
	h.t.Helper()
	var login dto.LoginResponse
	status := h.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "secreto123"}, &login)
	require.Equal(h.t, http.StatusOK, status)
	return login.Token
}

// issuedPO crea proveedor, producto y una orden aprobada con una línea de qty unidades.
func (h *harness) issuedPO(admin string, qty int) dto.PurchaseOrderResponse {
	h.t.Helper()
	var supplier dto.SupplierResponse
	require.Equal(h.t, http.StatusCreated, h.do(http.MethodPost, "/api/suppliers", admin,
		map[string]any{"name": "Distribuidora Andina"}, &supplier))
	var product dto.ProductResponse
	require.Equal(h.t, http.StatusCreated, h.do(http.MethodPost, "/api/products", admin,
		map[string]any{"sku": fmt.Sprintf("SKU-%d", supplier.ID), "name": "Portátil", "selling_price": "2.00"}, &product))

	var po dto.PurchaseOrderResponse
	require.Equal(h.t, http.StatusCreated, h.do(http.MethodPost, "/api/purchase-orders", admin, map[string]any{
		"supplier_id": supplier.ID,
		"submit":      true,
		"items":       []map[string]any{{"product_id": product.ID, "quantity": qty, "unit_price": "2.00"}},
	}, &po))
	require.Equal(h.t, http.StatusOK, h.do(http.MethodPost, fmt.Sprintf("/api/purchase-orders/%d/approve", po.ID), admin, nil, &po))
	require.Equal(h.t, "Issued", po.Status)
	return po
}

// ─── Flujo completo ───────────────────────────────────────────────────────────

func TestRouter_ManifiestoYRecepcion(t *testing.T) {
	h := newHarness(t)
	admin := h.userToken("admin@bodega.co", "admin")
	po := h.issuedPO(admin, 10)
	itemID := po.Items[0].ID

	var created dto.ManifestCreatedResponse
	status := h.do(http.MethodPost, "/api/receiving/manifests", admin, map[string]any{
		"purchase_order_id": po.ID,
		"tracking_number":   "TRK-99",
		"lines": []map[string]any{
			{"type": "quantity_declared", "purchase_order_line_id": itemID, "quantity_declared": 10},
		},
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 10, created.AssetsCreated)

	m, err := h.store.Manifests().GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	lineID := m.Lines[0].ID
	var items []map[string]any
	for i, a := range h.store.AllAssets() {
		items = append(items, map[string]any{"asset_id": a.ID, "is_accepted": i < 7})
	}

	var receipt dto.ReceiptResponse
	status = h.do(http.MethodPost, fmt.Sprintf("/api/receiving/manifests/%d/receipts", created.ID), admin, map[string]any{
		"lines": []map[string]any{{"line_id": lineID, "asset_items": items}},
	}, &receipt)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 7, receipt.Accepted)
	assert.Equal(t, 3, receipt.Rejected)
	assert.Equal(t, "Partially Received", receipt.PurchaseOrderStatus, "los rechazados no cuentan como recibidos")

	var stats []dto.LineStatsResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet,
		fmt.Sprintf("/api/purchase-orders/%d/line-stats?line_ids=%d", po.ID, itemID), admin, nil, &stats))
	require.Len(t, stats, 1)
	assert.Equal(t, 7, stats[0].AwaitingQC)
	assert.Equal(t, 3, stats[0].Rejected)
	assert.Equal(t, 0, stats[0].InTransit)

	var detail dto.ReceiptDetailResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, fmt.Sprintf("/api/receiving/receipts/%d", receipt.ReceiptID), admin, nil, &detail))
	assert.Len(t, detail.Assets, 10)

	var stock dto.ProductStockResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet,
		fmt.Sprintf("/api/inventory/stock?product_id=%d", po.Items[0].ProductID), admin, nil, &stock))
	assert.Equal(t, 10, stock.Total)
	assert.Equal(t, 7, stock.OnHand)
	assert.Equal(t, 3, stock.ByStatus["Rejected"])
	assert.Equal(t, 0, stock.InTransit)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/receiving/receipts/%d/pdf", receipt.ReceiptID), nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), receipt.ReceiptNumber+".pdf")
}

// ─── Mapeo de errores ─────────────────────────────────────────────────────────

func TestRouter_ValidacionDevuelveTodasLasViolaciones(t *testing.T) {
	h := newHarness(t)
	admin := h.userToken("admin@bodega.co", "admin")
	po := h.issuedPO(admin, 10)

	var errResp dto.ErrorResponse
	status := h.do(http.MethodPost, "/api/receiving/manifests", admin, map[string]any{
		"purchase_order_id": po.ID,
		"lines": []map[string]any{
			{"type": "quantity_declared", "purchase_order_line_id": po.Items[0].ID, "quantity_declared": 11},
		},
	}, &errResp)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errResp.Code)
	require.Len(t, errResp.Details, 1)
	assert.Equal(t, "EXCEEDS_REMAINING", errResp.Details[0].Code)
	assert.Zero(t, h.store.ManifestCount())
}

func TestRouter_EstadoInvalidoYNoEncontrado(t *testing.T) {
	h := newHarness(t)
	admin := h.userToken("admin@bodega.co", "admin")
	po := h.issuedPO(admin, 2)

	var errResp dto.ErrorResponse
	status := h.do(http.MethodPost, fmt.Sprintf("/api/purchase-orders/%d/submit", po.ID), admin, nil, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", errResp.Code)

	status = h.do(http.MethodGet, "/api/purchase-orders/999", admin, nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errResp.Code)

	status = h.do(http.MethodGet, "/api/purchase-orders/abc", admin, nil, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ID", errResp.Code)
}

func TestRouter_Roles(t *testing.T) {
	h := newHarness(t)
	admin := h.userToken("admin@bodega.co", "admin")
	buyer := h.userToken("compras@bodega.co", "comprador")
	po := h.issuedPO(admin, 2)

	status := h.do(http.MethodPost, fmt.Sprintf("/api/purchase-orders/%d/approve", po.ID), buyer, nil, nil)
	assert.Equal(t, http.StatusForbidden, status, "solo admin aprueba")

	status = h.do(http.MethodPost, "/api/receiving/manifests", buyer, map[string]any{"purchase_order_id": po.ID}, nil)
	assert.Equal(t, http.StatusForbidden, status, "comprador no registra manifiestos")

	status = h.do(http.MethodGet, "/api/purchase-orders", buyer, nil, nil)
	assert.Equal(t, http.StatusOK, status, "las lecturas solo requieren token")
}

func TestRouter_ZonaDuplicada(t *testing.T) {
	h := newHarness(t)
	admin := h.userToken("admin@bodega.co", "admin")

	body := map[string]any{"name": "Jaula B", "zone_type": "Storage", "is_security_cage": true}
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/zones", admin, body, nil))

	var errResp dto.ErrorResponse
	status := h.do(http.MethodPost, "/api/zones", admin, map[string]any{"name": "JAULA B", "zone_type": "Storage"}, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", errResp.Code)
}

func TestRouter_RegistroDuplicadoYLogin(t *testing.T) {
	h := newHarness(t)
	h.userToken("admin@bodega.co", "admin")

	var errResp dto.ErrorResponse
	status := h.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "ADMIN@bodega.co", Password: "secreto123",
	}, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", errResp.Code)

	status = h.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@bodega.co", Password: "otra-clave"}, &errResp)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRouter_RegistroPublicoNoOtorgaAdmin(t *testing.T) {
	h := newHarness(t)

	var user dto.UserResponse
	status := h.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "intruso@bodega.co", "password": "secreto123", "role": "admin",
	}, &user)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, entity.RoleBodeguero, user.Role)

	token := h.login("intruso@bodega.co")
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/api/users", token, nil, nil))
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, "/api/zones", token, map[string]any{"name": "X", "zone_type": "Storage"}, nil))
}

func TestRouter_BusquedaFechaInvalida(t *testing.T) {
	h := newHarness(t)
	admin := h.userToken("admin@bodega.co", "admin")

	var errResp dto.ErrorResponse
	status := h.do(http.MethodGet, "/api/receiving/manifests/search?from=ayer", admin, nil, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, errResp.Details, 1)
	assert.Equal(t, "from", errResp.Details[0].Field)

	var rows []dto.ManifestSummaryResponse
	status = h.do(http.MethodGet, "/api/receiving/manifests/search?from=2026-01-01&to=2026-12-31", admin, nil, &rows)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, rows)
}

// ─── Usuarios ─────────────────────────────────────────────────────────────────

func TestRouter_Usuarios(t *testing.T) {
	h := newHarness(t)
	admin := h.userToken("jefe@bodega.co", "admin")
	clerk := h.userToken("operario@bodega.co", "bodeguero")

	var me dto.UserResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/users/me", clerk, nil, &me))
	assert.Equal(t, "operario@bodega.co", me.Email)
	assert.Equal(t, "bodeguero", me.Role)

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/api/users", clerk, nil, nil))

	var list []dto.UserResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/users", admin, nil, &list))
	assert.Len(t, list, 2)

	var updated dto.UserResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodPut, fmt.Sprintf("/api/users/%d", me.ID), admin,
		map[string]any{"role": "comprador", "name": "Operario Uno"}, &updated))
	assert.Equal(t, "comprador", updated.Role)
	assert.Equal(t, "Operario Uno", updated.Name)

	var errResp dto.ErrorResponse
	require.Equal(t, http.StatusBadRequest, h.do(http.MethodPut, fmt.Sprintf("/api/users/%d", me.ID), admin,
		map[string]any{"role": "superusuario"}, &errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/users/999", admin, nil, nil))
}
