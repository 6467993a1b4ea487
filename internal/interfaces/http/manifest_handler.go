package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/procurement"
	"github.com/jhoicas/Bodega-api/internal/domain"
)

// ManifestHandler manifiestos de envío: creación, publicación, consultas y verificación de seriales.
type ManifestHandler struct {
	uc *procurement.ManifestUseCase
}

func NewManifestHandler(uc *procurement.ManifestUseCase) *ManifestHandler {
	return &ManifestHandler{uc: uc}
}

// Create godoc
// @Summary      Crear manifiesto de envío
// @Description  Registra activos In Transit y un movimiento Vendor→InTransit por línea. Todo o nada.
// @Tags         receiving
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateManifestRequest  true  "Orden, transporte y líneas"
// @Success      201   {object}  dto.ManifestCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receiving/manifests [post]
func (h *ManifestHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateManifestRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	in, err := procurement.ManifestInputFromRequest(req)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Post godoc
// @Summary      Publicar manifiesto (Draft → posted)
// @Tags         receiving
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del manifiesto"
// @Success      200  {object}  dto.ManifestResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receiving/manifests/{id}/post [post]
func (h *ManifestHandler) Post(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	out, err := h.uc.Post(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener manifiesto
// @Tags         receiving
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del manifiesto"
// @Success      200  {object}  dto.ManifestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receiving/manifests/{id} [get]
func (h *ManifestHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Lines godoc
// @Summary      Líneas del manifiesto con avance de recepción
// @Tags         receiving
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del manifiesto"
// @Success      200  {array}   dto.ManifestLineProgressResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receiving/manifests/{id}/lines [get]
func (h *ManifestHandler) Lines(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	out, err := h.uc.Lines(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar manifiestos
// @Tags         receiving
// @Security     Bearer
// @Produce      json
// @Param        manifest_id      query  int     false  "ID exacto"
// @Param        supplier_name    query  string  false  "Proveedor (contiene)"
// @Param        tracking_number  query  string  false  "Guía (contiene)"
// @Param        from             query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to               query  string  false  "Hasta (YYYY-MM-DD o RFC3339)"
// @Param        limit            query  int     false  "Límite"  default(20)
// @Param        offset           query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.ManifestSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/receiving/manifests/search [get]
func (h *ManifestHandler) Search(c *fiber.Ctx) error {
	req := dto.ManifestSearchRequest{
		ManifestID:     int64(c.QueryInt("manifest_id", 0)),
		SupplierName:   c.Query("supplier_name"),
		TrackingNumber: c.Query("tracking_number"),
		PageRequest:    pageFromQuery(c),
	}
	var violations []domain.Violation
	for _, p := range []struct {
		field string
		dst   **time.Time
		end   bool
	}{{"from", &req.From, false}, {"to", &req.To, true}} {
		raw := c.Query(p.field)
		if raw == "" {
			continue
		}
		t, ok := parseDate(raw, p.end)
		if !ok {
			violations = append(violations, domain.Violation{
				Code: domain.ViolationInvalidValue, Field: p.field, Value: raw, Message: "fecha inválida",
			})
			continue
		}
		*p.dst = &t
	}
	if len(violations) > 0 {
		return respondError(c, &domain.ValidationError{Violations: violations})
	}
	out, err := h.uc.Search(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// VerifyAssets godoc
// @Summary      Verificar seriales escaneados contra una línea del manifiesto
// @Tags         receiving
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la línea del manifiesto"
// @Param        body  body  dto.VerifyAssetsRequest  true  "Seriales escaneados"
// @Success      200   {object}  dto.VerifyAssetsResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receiving/manifest-lines/{id}/verify-assets [post]
func (h *ManifestHandler) VerifyAssets(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	var in dto.VerifyAssetsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.VerifyLineAssets(c.UserContext(), id, in.SerialNumbers)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseDate acepta RFC3339 o YYYY-MM-DD; con endOfDay una fecha sin hora cubre el día completo.
func parseDate(s string, endOfDay bool) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}
