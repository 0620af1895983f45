package http

import (
	"github.com/jhoicas/pos-ledger/internal/application/dto"
	"github.com/jhoicas/pos-ledger/internal/application/inventory"
	"github.com/jhoicas/pos-ledger/internal/domain/entity"
)

func toStockResponse(s inventory.StockResult) dto.StockResponse {
	return dto.StockResponse{ProductID: s.ProductID, Quantity: s.Quantity, Status: string(s.Status)}
}

func toStockResponses(in []inventory.StockResult) []dto.StockResponse {
	out := make([]dto.StockResponse, len(in))
	for i, s := range in {
		out[i] = toStockResponse(s)
	}
	return out
}

func toProductStockResponse(p *entity.Product) dto.ProductStockResponse {
	return dto.ProductStockResponse{
		ProductID:        p.ID,
		Name:             p.Name,
		Quantity:         p.Quantity,
		Status:           string(p.Status),
		Location:         p.Location,
		AddedStockAmount: p.AddedStockAmount,
		RestockDateTime:  p.RestockDateTime,
		SupplierID:       p.SupplierID,
	}
}

func toLowStockItemResponse(item inventory.LowStockItem) dto.LowStockItemResponse {
	p := item.Product
	return dto.LowStockItemResponse{
		ProductID:    p.ID,
		Name:         p.Name,
		BrandName:    p.BrandName,
		Quantity:     p.Quantity,
		Status:       string(p.Status),
		Location:     p.Location,
		SupplierID:   p.SupplierID,
		SupplierName: item.SupplierName,
	}
}

func toReturnLineResponses(lines []*entity.ReturnLine) []dto.ReturnLineResponse {
	out := make([]dto.ReturnLineResponse, len(lines))
	for i, r := range lines {
		out[i] = dto.ReturnLineResponse{
			ID:         r.ID,
			ProductID:  r.ProductID,
			Quantity:   r.Quantity,
			Reason:     r.Reason,
			ReturnedAt: r.ReturnedAt,
		}
	}
	return out
}

func toSaleResponse(sale *entity.Sale, lines []*entity.SaleLine) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:          sale.ID,
		CashierID:   sale.CashierID,
		CustomerID:  sale.CustomerID,
		PaymentType: sale.PaymentType,
		Completed:   sale.Completed,
		Discount:    sale.Discount,
		Amount:      sale.Amount,
		Time:        sale.Time,
		Lines:       make([]dto.SaleLineResponse, len(lines)),
	}
	for i, l := range lines {
		resp.Lines[i] = dto.SaleLineResponse{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
	}
	return resp
}

func toSaleInput(req dto.SaleRequest) inventory.SaleInput {
	in := inventory.SaleInput{
		CashierID:   req.CashierID,
		CustomerID:  req.CustomerID,
		PaymentType: req.PaymentType,
		Discount:    req.Discount,
		Lines:       make([]inventory.SaleLineInput, len(req.Lines)),
	}
	for i, l := range req.Lines {
		in.Lines[i] = inventory.SaleLineInput{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
	}
	return in
}

func toGRNResponse(note *entity.GRNNote) dto.GRNResponse {
	return dto.GRNResponse{
		ID:               note.ID,
		GRNNumber:        note.GRNNumber,
		ProductID:        note.ProductID,
		SupplierID:       note.SupplierID,
		AdminID:          note.AdminID,
		Price:            note.Price,
		ReceivedDate:     note.ReceivedDate,
		PreviousQuantity: note.PreviousQuantity,
		NewQuantity:      note.NewQuantity,
		AdjustedQuantity: note.AdjustedQuantity,
		AdjustmentType:   note.AdjustmentType,
		CreatedAt:        note.CreatedAt,
	}
}
