package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger/internal/application/dto"
	"github.com/jhoicas/pos-ledger/internal/application/inventory"
)

// StockHandler consulta y mutación directa del stock de un producto.
type StockHandler struct {
	ledger *inventory.Ledger
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *inventory.Ledger) *StockHandler {
	return &StockHandler{ledger: ledger}
}

// Get godoc
// @Summary      Stock actual de un producto
// @Tags         stock
// @Produce      json
// @Param        id   path      string  true  "ID del producto (UUID)"
// @Success      200  {object}  dto.ProductStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	p, err := h.ledger.GetStock(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProductStockResponse(p))
}

// Debit godoc
// @Summary      Descontar unidades
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID del producto (UUID)"
// @Param        body  body      dto.StockQuantityRequest  true  "quantity > 0"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/debit [post]
func (h *StockHandler) Debit(c *fiber.Ctx) error {
	return h.mutate(c, h.ledger.Debit)
}

// Credit godoc
// @Summary      Acreditar unidades
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID del producto (UUID)"
// @Param        body  body      dto.StockQuantityRequest  true  "quantity > 0"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/credit [post]
func (h *StockHandler) Credit(c *fiber.Ctx) error {
	return h.mutate(c, h.ledger.Credit)
}

func (h *StockHandler) mutate(c *fiber.Ctx, op func(ctx context.Context, productID string, qty int) (*inventory.StockResult, error)) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.StockQuantityRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	res, err := op(c.Context(), id, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockResponse(*res))
}

// Adjust godoc
// @Summary      Ajuste directo (reabastecimiento manual)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "ID del producto (UUID)"
// @Param        body  body      dto.AdjustStockRequest  true  "new_quantity >= 0, reason, location opcional"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [put]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.AdjustStockRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	res, err := h.ledger.Adjust(c.Context(), inventory.AdjustInput{
		ProductID:   id,
		NewQuantity: *req.NewQuantity,
		Reason:      req.Reason,
		Location:    req.Location,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockResponse(*res))
}

// ListLow godoc
// @Summary      Productos con stock bajo o agotados
// @Description  Ordenados por cantidad ascendente, con el nombre del proveedor resuelto.
// @Tags         stock
// @Produce      json
// @Success      200  {array}   dto.LowStockItemResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) ListLow(c *fiber.Ctx) error {
	items, err := h.ledger.ListLowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LowStockItemResponse, len(items))
	for i, item := range items {
		out[i] = toLowStockItemResponse(item)
	}
	return c.JSON(fiber.Map{
		"total":     len(out),
		"threshold": h.ledger.Classifier().Threshold(),
		"items":     out,
	})
}

// Reconcile godoc
// @Summary      Reconciliar estados de stock
// @Description  Recalcula el estado de cada producto desde su cantidad y corrige los desalineados.
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/reconcile [post]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	res, err := h.ledger.Reconcile(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{Scanned: res.Scanned, Corrected: res.Corrected})
}
