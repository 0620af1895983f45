package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger/internal/application/dto"
	"github.com/jhoicas/pos-ledger/internal/domain"
)

// statusFor traduce el código estable de error a estado HTTP.
func statusFor(code string) int {
	switch code {
	case "VALIDATION", "INVALID_QUANTITY":
		return fiber.StatusBadRequest
	case "UNKNOWN_SKU", "NOT_FOUND":
		return fiber.StatusNotFound
	case "INSUFFICIENT_STOCK", "DUPLICATE":
		return fiber.StatusConflict
	case "NOT_IN_ORIGINAL_SALE", "EXCESS_RETURN":
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError escribe el cuerpo de error para err. Los rechazos del libro incluyen
// producto, cantidad solicitada y disponible.
func respondError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Fields:  validationFields(ve),
		})
	}

	code := domain.ErrorCode(err)
	body := dto.ErrorResponse{Code: code, Message: err.Error()}
	if code == "INTERNAL" {
		body.Message = "error interno"
	}
	var se *domain.StockError
	if errors.As(err, &se) {
		body.ProductID = se.ProductID
		switch se.Err {
		case domain.ErrInsufficientStock, domain.ErrExcessReturn:
			requested, available := se.Requested, se.Available
			body.Requested = &requested
			body.Available = &available
		case domain.ErrInvalidQuantity:
			requested := se.Requested
			body.Requested = &requested
		}
	}
	return c.Status(statusFor(code)).JSON(body)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
