package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// InsufficientStockDetails detalle adjunto a INSUFFICIENT_STOCK.
type InsufficientStockDetails struct {
	ProductID   int64  `json:"producto_id"`
	WarehouseID int64  `json:"almacen_id"`
	ProductName string `json:"producto"`
	Available   int64  `json:"disponible"`
	Requested   int64  `json:"solicitado"`
}
