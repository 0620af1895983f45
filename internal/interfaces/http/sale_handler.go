package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger/internal/application/dto"
	"github.com/jhoicas/pos-ledger/internal/application/inventory"
)

// SaleHandler ventas y devoluciones: cada petición es un lote atómico sobre el stock.
type SaleHandler struct {
	ledger *inventory.Ledger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(ledger *inventory.Ledger) *SaleHandler {
	return &SaleHandler{ledger: ledger}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta todas las líneas o ninguna. unit_price 0 toma el precio del producto.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SaleRequest  true  "cashier_id, payment_type, discount (%), lines"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var req dto.SaleRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	res, err := h.ledger.ApplySale(c.Context(), toSaleInput(req))
	if err != nil {
		return respondError(c, err)
	}
	resp := toSaleResponse(res.Sale, res.Lines)
	resp.Stock = toStockResponses(res.Stock)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary      Reemplazar líneas de una venta
// @Description  Aplica solo la diferencia por producto respecto a la venta guardada.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "ID de la venta (UUID)"
// @Param        body  body      dto.SaleRequest  true  "venta completa"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.SaleRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	res, err := h.ledger.UpdateSale(c.Context(), id, toSaleInput(req))
	if err != nil {
		return respondError(c, err)
	}
	resp := toSaleResponse(res.Sale, res.Lines)
	resp.Stock = toStockResponses(res.Stock)
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Obtener venta con líneas y devoluciones
// @Tags         sales
// @Produce      json
// @Param        id   path      string  true  "ID de la venta (UUID)"
// @Success      200  {object}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	detail, err := h.ledger.GetSale(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	resp := toSaleResponse(detail.Sale, detail.Lines)
	resp.Returns = toReturnLineResponses(detail.Returns)
	return c.JSON(resp)
}

// Return godoc
// @Summary      Registrar devolución
// @Description  Acredita el stock de productos vendidos; no puede exceder lo vendido menos lo ya devuelto.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "ID de la venta (UUID)"
// @Param        body  body      dto.ReturnRequest  true  "lines"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/returns [post]
func (h *SaleHandler) Return(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.ReturnRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	in := inventory.ReturnInput{SaleID: id, Lines: make([]inventory.ReturnLineInput, len(req.Lines))}
	for i, l := range req.Lines {
		in.Lines[i] = inventory.ReturnLineInput{ProductID: l.ProductID, Quantity: l.Quantity, Reason: l.Reason}
	}
	res, err := h.ledger.ApplyReturn(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReturnResponse{
		SaleID: res.SaleID,
		Lines:  toReturnLineResponses(res.Lines),
		Stock:  toStockResponses(res.Stock),
	})
}
