package reports

import "context"

// Column columna de una tabla de reporte. Width en unidades de la grilla de 12.
type Column struct {
	Header string
	Width  int
	Right  bool
}

// Metric par etiqueta/valor del resumen.
type Metric struct {
	Label string
	Value string
}

// Section bloque titulado: resumen opcional y tabla opcional.
type Section struct {
	Title   string
	Summary []Metric
	Columns []Column
	Rows    [][]string
}

// Document reporte ya calculado, independiente del formato de salida.
type Document struct {
	Title     string
	Subtitle  string
	Generated string
	Sections  []Section
}

// Renderer convierte un Document en bytes del formato soportado.
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}
