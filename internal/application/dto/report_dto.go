package dto

// ReportRequest body para POST /reportes/generar. Fechas YYYY-MM-DD, ambas inclusivas.
type ReportRequest struct {
	Type      string `json:"tipo" validate:"required"`
	Format    string `json:"formato" validate:"required"`
	StartDate string `json:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"fecha_fin" validate:"omitempty,datetime=2006-01-02"`
}

// ReportFile documento generado.
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
