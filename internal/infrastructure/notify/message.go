package notify

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
)

// lowStockSubject asunto del aviso.
func lowStockSubject(n int) string {
	if n == 1 {
		return "Alerta de inventario: 1 producto bajo el mínimo"
	}
	return fmt.Sprintf("Alerta de inventario: %d productos bajo el mínimo", n)
}

// lowStockBody cuerpo en texto plano, una línea por posición en orden de prioridad.
func lowStockBody(items []dto.ReplenishmentSuggestion) string {
	var b strings.Builder
	b.WriteString("Las siguientes posiciones están en o bajo su stock mínimo:\n\n")
	for _, it := range items {
		fmt.Fprintf(&b, "%d. %s (%s): actual %d, mínimo %d, sugerido reponer %d\n",
			it.Priority, it.ProductName, it.WarehouseName, it.CurrentStock, it.MinStock, it.SuggestedOrderQty)
	}
	return b.String()
}
