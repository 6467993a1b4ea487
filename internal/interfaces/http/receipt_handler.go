package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/procurement"
)

// ReceiptHandler recepciones de mercancía y su comprobante.
type ReceiptHandler struct {
	uc *procurement.ReceiptUseCase
}

func NewReceiptHandler(uc *procurement.ReceiptUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// ReceiveFromPurchaseOrder godoc
// @Summary      Recepción directa desde la orden de compra
// @Description  Crea los activos recibidos (Awaiting QC o Rejected) y actualiza el estado de la orden. Todo o nada.
// @Tags         receiving
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la orden"
// @Param        body  body  dto.ReceivePurchaseOrderRequest  true  "Líneas recibidas"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receiving/purchase-orders/{id}/receipts [post]
func (h *ReceiptHandler) ReceiveFromPurchaseOrder(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	var in dto.ReceivePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ReceiveFromPurchaseOrder(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ReceiveFromManifest godoc
// @Summary      Recepción contra un manifiesto publicado
// @Description  Mueve los activos In Transit del manifiesto a Awaiting QC o Rejected. Todo o nada.
// @Tags         receiving
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del manifiesto"
// @Param        body  body  dto.ReceiveManifestRequest  true  "Activos inspeccionados por línea"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receiving/manifests/{id}/receipts [post]
func (h *ReceiptHandler) ReceiveFromManifest(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	var in dto.ReceiveManifestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ReceiveFromManifest(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una recepción
// @Tags         receiving
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la recepción"
// @Success      200  {object}  dto.ReceiptDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receiving/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
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

// PDF godoc
// @Summary      Comprobante PDF de la recepción
// @Tags         receiving
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la recepción"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receiving/receipts/{id}/pdf [get]
func (h *ReceiptHandler) PDF(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	pdf, filename, err := h.uc.PDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
