package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/inventario-ventas/internal/domain"
)

// DateLayout formato de las fechas de filtro en query y reportes.
const DateLayout = "2006-01-02"

// DateRange rango inclusivo de fechas (YYYY-MM-DD) ya parseado.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ParseDateRange convierte fechas YYYY-MM-DD en un rango inclusivo; la fecha fin cubre el día completo.
// Las fechas vacías dejan ese extremo abierto.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if start = strings.TrimSpace(start); start != "" {
		t, err := time.ParseInLocation(DateLayout, start, time.Local)
		if err != nil {
			return r, domain.Invalid("fecha_inicio", "formato esperado YYYY-MM-DD")
		}
		r.From = &t
	}
	if end = strings.TrimSpace(end); end != "" {
		t, err := time.ParseInLocation(DateLayout, end, time.Local)
		if err != nil {
			return r, domain.Invalid("fecha_fin", "formato esperado YYYY-MM-DD")
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		r.To = &t
	}
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return r, domain.Invalid("fecha_inicio", "posterior a fecha_fin")
	}
	return r, nil
}
