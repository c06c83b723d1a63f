package inventory

import (
	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

func toStockPositionResponse(p *entity.StockPosition) *dto.StockPositionResponse {
	if p == nil {
		return nil
	}
	return &dto.StockPositionResponse{
		ID:            p.ID,
		ProductID:     p.ProductID,
		ProductName:   p.ProductName,
		WarehouseID:   p.WarehouseID,
		WarehouseName: p.WarehouseName,
		Quantity:      p.Quantity,
		MinStock:      p.MinStock,
		MaxStock:      p.MaxStock,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Location:      p.Location,
		LowStock:      p.IsLow(),
		UpdatedAt:     p.UpdatedAt,
	}
}

func toStockPositionResponses(list []*entity.StockPosition) []dto.StockPositionResponse {
	out := make([]dto.StockPositionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toStockPositionResponse(p))
	}
	return out
}

func toMovementResponses(list []*entity.MovementRecord) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:              m.ID,
			StockPositionID: m.StockPositionID,
			ProductID:       m.ProductID,
			ProductName:     m.ProductName,
			WarehouseID:     m.WarehouseID,
			WarehouseName:   m.WarehouseName,
			Kind:            string(m.Kind),
			Direction:       string(m.Direction),
			Quantity:        m.Quantity,
			Reason:          m.Reason,
			CreatedBy:       m.CreatedBy,
			CreatedAt:       m.CreatedAt,
		})
	}
	return out
}

func toAdjustmentResponse(a *entity.AdjustmentRecord) dto.AdjustmentResponse {
	return dto.AdjustmentResponse{
		ID:               a.ID,
		StockPositionID:  a.StockPositionID,
		ProductID:        a.ProductID,
		ProductName:      a.ProductName,
		Kind:             string(a.Kind),
		PreviousQuantity: a.PreviousQuantity,
		NewQuantity:      a.NewQuantity,
		Reason:           a.Reason,
		CreatedBy:        a.CreatedBy,
		CreatedAt:        a.CreatedAt,
	}
}
