package reports

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

const (
	TypeSales     = "VENTAS"
	TypeInventory = "INVENTARIO"
	TypeMovements = "MOVIMIENTOS"
	TypeGeneral   = "GENERAL"

	FormatPDF = "PDF"
)

const dateLayout = dto.DateLayout

// Service arma los reportes con lecturas sin bloqueo y los entrega al renderer.
type Service struct {
	reader   repository.UnitOfWork
	renderer Renderer
	now      func() time.Time
}

// NewService construye el servicio.
func NewService(reader repository.UnitOfWork, renderer Renderer) *Service {
	return &Service{reader: reader, renderer: renderer, now: time.Now}
}

// Generate valida tipo, formato y fechas, arma el documento y lo renderiza.
func (s *Service) Generate(ctx context.Context, in dto.ReportRequest) (*dto.ReportFile, error) {
	kind := strings.ToUpper(strings.TrimSpace(in.Type))
	format := strings.ToUpper(strings.TrimSpace(in.Format))
	if format != FormatPDF {
		return nil, fmt.Errorf("formato %q: %w", in.Format, domain.ErrInvalidReport)
	}
	r, err := dto.ParseDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	var doc Document
	switch kind {
	case TypeSales:
		doc, err = s.salesReport(ctx, r)
	case TypeInventory:
		doc, err = s.inventoryReport(ctx)
	case TypeMovements:
		doc, err = s.movementsReport(ctx, r)
	case TypeGeneral:
		doc, err = s.generalReport(ctx, r)
	default:
		return nil, fmt.Errorf("tipo %q: %w", in.Type, domain.ErrInvalidReport)
	}
	if err != nil {
		return nil, err
	}
	doc.Subtitle = describeRange(r)
	doc.Generated = s.now().Format("2006-01-02 15:04")

	content, err := s.renderer.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("renderizar reporte: %w", err)
	}
	return &dto.ReportFile{
		Filename:    fmt.Sprintf("reporte_%s_%s.pdf", strings.ToLower(kind), s.now().Format("20060102_150405")),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

func describeRange(r dto.DateRange) string {
	switch {
	case r.From != nil && r.To != nil:
		return fmt.Sprintf("Período: %s a %s", r.From.Format(dateLayout), r.To.Format(dateLayout))
	case r.From != nil:
		return "Desde " + r.From.Format(dateLayout)
	case r.To != nil:
		return "Hasta " + r.To.Format(dateLayout)
	default:
		return "Todo el historial"
	}
}

func (s *Service) ordersWithLines(ctx context.Context, r dto.DateRange) ([]*entity.Order, error) {
	list, err := s.reader.Orders().List(ctx, r.From, r.To)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		if o.Lines, err = s.reader.Orders().ListLines(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *Service) salesReport(ctx context.Context, r dto.DateRange) (Document, error) {
	orders, err := s.ordersWithLines(ctx, r)
	if err != nil {
		return Document{}, err
	}
	rows := make([][]string, 0, len(orders))
	total := decimal.Zero
	for _, o := range orders {
		counterparty := o.CustomerName
		if o.OrderType == entity.OrderEntry {
			counterparty = o.SupplierName
		}
		products := make([]string, 0, len(o.Lines))
		for _, l := range o.Lines {
			products = append(products, fmt.Sprintf("%s x%d", l.ProductName, l.Quantity))
		}
		rows = append(rows, []string{
			strconv.FormatInt(o.ID, 10),
			o.CreatedAt.Format(dateLayout),
			string(o.OrderType),
			counterparty,
			strings.Join(products, ", "),
			string(o.Status),
			money(o.Total),
		})
		total = total.Add(o.Total)
	}
	return Document{
		Title: "Reporte de ventas y pedidos",
		Sections: []Section{{
			Title:   "Pedidos",
			Summary: []Metric{{"Pedidos", strconv.Itoa(len(orders))}, {"Total", money(total)}},
			Columns: []Column{
				{Header: "ID", Width: 1}, {Header: "Fecha", Width: 2}, {Header: "Tipo", Width: 1},
				{Header: "Contraparte", Width: 2}, {Header: "Productos", Width: 3},
				{Header: "Estado", Width: 1}, {Header: "Total", Width: 2, Right: true},
			},
			Rows: rows,
		}},
	}, nil
}

func (s *Service) inventoryReport(ctx context.Context) (Document, error) {
	list, err := s.reader.StockPositions().List(ctx, repository.StockPositionFilter{})
	if err != nil {
		return Document{}, err
	}
	rows := make([][]string, 0, len(list))
	low := 0
	value := decimal.Zero
	for _, p := range list {
		state := "OK"
		if p.IsLow() {
			state = "BAJO"
			low++
		}
		value = value.Add(p.PurchasePrice.Mul(decimal.NewFromInt(p.Quantity)))
		rows = append(rows, []string{
			p.ProductName,
			p.WarehouseName,
			strconv.FormatInt(p.Quantity, 10),
			strconv.FormatInt(p.MinStock, 10),
			money(p.SalePrice),
			state,
		})
	}
	return Document{
		Title: "Reporte de inventario",
		Sections: []Section{{
			Title: "Existencias",
			Summary: []Metric{
				{"Posiciones", strconv.Itoa(len(list))},
				{"Bajo stock", strconv.Itoa(low)},
				{"Valor a costo", money(value)},
			},
			Columns: []Column{
				{Header: "Producto", Width: 3}, {Header: "Almacén", Width: 3},
				{Header: "Cantidad", Width: 1, Right: true}, {Header: "Mínimo", Width: 1, Right: true},
				{Header: "Precio venta", Width: 2, Right: true}, {Header: "Estado", Width: 2},
			},
			Rows: rows,
		}},
	}, nil
}

func (s *Service) movementsReport(ctx context.Context, r dto.DateRange) (Document, error) {
	list, err := s.reader.Movements().List(ctx, repository.MovementFilter{From: r.From, To: r.To})
	if err != nil {
		return Document{}, err
	}
	rows := make([][]string, 0, len(list))
	var in, out int64
	for _, m := range list {
		if m.Direction == entity.DirectionOut {
			out += m.Quantity
		} else {
			in += m.Quantity
		}
		rows = append(rows, []string{
			m.CreatedAt.Format("2006-01-02 15:04"),
			m.ProductName,
			m.WarehouseName,
			string(m.Kind),
			string(m.Direction),
			strconv.FormatInt(m.Quantity, 10),
			m.Reason,
		})
	}
	return Document{
		Title: "Reporte de movimientos",
		Sections: []Section{{
			Title: "Movimientos",
			Summary: []Metric{
				{"Movimientos", strconv.Itoa(len(list))},
				{"Unidades entrantes", strconv.FormatInt(in, 10)},
				{"Unidades salientes", strconv.FormatInt(out, 10)},
			},
			Columns: []Column{
				{Header: "Fecha", Width: 2}, {Header: "Producto", Width: 2}, {Header: "Almacén", Width: 2},
				{Header: "Tipo", Width: 1}, {Header: "Sentido", Width: 1},
				{Header: "Cant.", Width: 1, Right: true}, {Header: "Motivo", Width: 3},
			},
			Rows: rows,
		}},
	}, nil
}

type productTotal struct {
	name string
	qty  int64
}

func (s *Service) generalReport(ctx context.Context, r dto.DateRange) (Document, error) {
	orders, err := s.ordersWithLines(ctx, r)
	if err != nil {
		return Document{}, err
	}
	low, err := s.reader.StockPositions().ListLowStock(ctx)
	if err != nil {
		return Document{}, err
	}

	totals := map[entity.OrderType]decimal.Decimal{entity.OrderEntry: decimal.Zero, entity.OrderExit: decimal.Zero}
	counts := map[entity.OrderType]int{}
	byProduct := map[int64]*productTotal{}
	for _, o := range orders {
		totals[o.OrderType] = totals[o.OrderType].Add(o.Total)
		counts[o.OrderType]++
		if o.OrderType != entity.OrderExit {
			continue
		}
		for _, l := range o.Lines {
			pt, ok := byProduct[l.ProductID]
			if !ok {
				pt = &productTotal{name: l.ProductName}
				byProduct[l.ProductID] = pt
			}
			pt.qty += l.Quantity
		}
	}
	top := make([]*productTotal, 0, len(byProduct))
	for _, pt := range byProduct {
		top = append(top, pt)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].qty != top[j].qty {
			return top[i].qty > top[j].qty
		}
		return top[i].name < top[j].name
	})
	if len(top) > 5 {
		top = top[:5]
	}
	topRows := make([][]string, 0, len(top))
	for i, pt := range top {
		topRows = append(topRows, []string{strconv.Itoa(i + 1), pt.name, strconv.FormatInt(pt.qty, 10)})
	}

	return Document{
		Title: "Reporte general",
		Sections: []Section{
			{
				Title: "Resumen de pedidos",
				Summary: []Metric{
					{"Pedidos de entrada", fmt.Sprintf("%d (%s)", counts[entity.OrderEntry], money(totals[entity.OrderEntry]))},
					{"Pedidos de salida", fmt.Sprintf("%d (%s)", counts[entity.OrderExit], money(totals[entity.OrderExit]))},
					{"Posiciones bajo stock", strconv.Itoa(len(low))},
				},
			},
			{
				Title:   "Productos más vendidos",
				Columns: []Column{{Header: "#", Width: 1}, {Header: "Producto", Width: 8}, {Header: "Unidades", Width: 3, Right: true}},
				Rows:    topRows,
			},
		},
	}, nil
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
