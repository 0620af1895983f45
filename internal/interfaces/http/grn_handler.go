package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger/internal/application/dto"
	"github.com/jhoicas/pos-ledger/internal/application/inventory"
)

// GRNHandler notas de recepción de mercancía.
type GRNHandler struct {
	ledger   *inventory.Ledger
	document *inventory.GRNDocumentUseCase
}

// NewGRNHandler construye el handler. document puede ser nil (sin PDF).
func NewGRNHandler(ledger *inventory.Ledger, document *inventory.GRNDocumentUseCase) *GRNHandler {
	return &GRNHandler{ledger: ledger, document: document}
}

// Create godoc
// @Summary      Recibir mercancía (GRN)
// @Description  Fija la cantidad del producto y registra la nota. Reenviar el mismo grn_number
//
//	con el mismo contenido devuelve la nota existente (200) sin ajustar de nuevo.
//
// @Tags         grn
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GRNRequest  true  "grn_number, product_id, new_quantity"
// @Success      201   {object}  dto.GRNResponse
// @Success      200   {object}  dto.GRNResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/grn-notes [post]
func (h *GRNHandler) Create(c *fiber.Ctx) error {
	var req dto.GRNRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	in := inventory.GRNInput{
		GRNNumber:   req.GRNNumber,
		ProductID:   req.ProductID,
		SupplierID:  req.SupplierID,
		AdminID:     req.AdminID,
		Price:       req.Price,
		NewQuantity: *req.NewQuantity,
	}
	if req.ReceivedDate != nil {
		in.ReceivedDate = *req.ReceivedDate
	}
	res, err := h.ledger.ReceiveGRN(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	resp := toGRNResponse(res.Note)
	stock := toStockResponse(res.Stock)
	resp.Stock = &stock
	resp.Replayed = res.Replayed
	status := fiber.StatusCreated
	if res.Replayed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(resp)
}

// GetByID godoc
// @Summary      Obtener nota GRN
// @Tags         grn
// @Produce      json
// @Param        id   path      string  true  "ID de la nota (UUID)"
// @Success      200  {object}  dto.GRNResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/grn-notes/{id} [get]
func (h *GRNHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	note, err := h.ledger.GetGRN(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toGRNResponse(note))
}

// PDF godoc
// @Summary      Descargar nota GRN en PDF
// @Tags         grn
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la nota (UUID)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/grn-notes/{id}/pdf [get]
func (h *GRNHandler) PDF(c *fiber.Ctx) error {
	if h.document == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "generación de PDF no configurada"})
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	pdf, note, err := h.document.GeneratePDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="GRN-%s.pdf"`, note.GRNNumber))
	return c.Send(pdf)
}
