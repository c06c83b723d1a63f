// Package seed catálogo de demostración para STORE_DRIVER=memory y para poblar PostgreSQL.
package seed

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/memory"
)

// Catalog datos maestros que el núcleo solo lee.
type Catalog struct {
	Products   []entity.Product
	Warehouses []entity.Warehouse
	Customers  []entity.Customer
	Suppliers  []entity.Supplier
}

// Demo catálogo fijo de ferretería. Los IDs son estables para que los ejemplos de la API funcionen.
func Demo() Catalog {
	return Catalog{
		Products: []entity.Product{
			{ID: 1, Code: "FER-001", Name: "Martillo de uña 16 oz", Price: decimal.RequireFromString("25.00")},
			{ID: 2, Code: "FER-002", Name: "Destornillador plano", Price: decimal.RequireFromString("8.50")},
			{ID: 3, Code: "FER-003", Name: "Cinta métrica 5 m", Price: decimal.RequireFromString("12.90")},
			{ID: 4, Code: "FER-004", Name: "Llave inglesa 10\"", Price: decimal.RequireFromString("31.00")},
			{ID: 5, Code: "FER-005", Name: "Caja de tornillos 100 u", Price: decimal.RequireFromString("6.75")},
		},
		Warehouses: []entity.Warehouse{
			{ID: 1, Name: "Central", Location: "Bodega principal"},
			{ID: 2, Name: "Sucursal Norte", Location: "Local 12"},
		},
		Customers: []entity.Customer{
			{ID: 1, Name: "Constructora O'Neill", Phone: "555-0101"},
			{ID: 2, Name: "Taller Hernández", Phone: "555-0102"},
		},
		Suppliers: []entity.Supplier{
			{ID: 1, Name: "Herramientas del Valle", Phone: "555-0201"},
			{ID: 2, Name: "Distribuidora Acme", Phone: "555-0202"},
		},
	}
}

// ApplyMemory carga el catálogo en el store en memoria.
func (c Catalog) ApplyMemory(s *memory.Store) {
	for _, p := range c.Products {
		s.AddProduct(p)
	}
	for _, w := range c.Warehouses {
		s.AddWarehouse(w)
	}
	for _, cu := range c.Customers {
		s.AddCustomer(cu)
	}
	for _, su := range c.Suppliers {
		s.AddSupplier(su)
	}
}

// WriteSQL escribe un script idempotente (ON CONFLICT) para PostgreSQL y
// ajusta las secuencias para que los IDs nuevos no choquen con los del catálogo.
func (c Catalog) WriteSQL(w io.Writer) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de demostración\n\n")

	b.WriteString("INSERT INTO products (id, code, name, price) VALUES\n")
	for i, p := range c.Products {
		fmt.Fprintf(&b, "  (%d, '%s', '%s', %s)%s\n", p.ID, escapeSQL(p.Code), escapeSQL(p.Name), p.Price.StringFixed(2), sep(i, len(c.Products)))
	}
	b.WriteString("ON CONFLICT (id) DO UPDATE SET code = EXCLUDED.code, name = EXCLUDED.name, price = EXCLUDED.price;\n\n")

	b.WriteString("INSERT INTO warehouses (id, name, location) VALUES\n")
	for i, wh := range c.Warehouses {
		fmt.Fprintf(&b, "  (%d, '%s', '%s')%s\n", wh.ID, escapeSQL(wh.Name), escapeSQL(wh.Location), sep(i, len(c.Warehouses)))
	}
	b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, location = EXCLUDED.location;\n\n")

	writeParties(&b, "customers", c.Customers, func(x entity.Customer) (int64, string, string) { return x.ID, x.Name, x.Phone })
	writeParties(&b, "suppliers", c.Suppliers, func(x entity.Supplier) (int64, string, string) { return x.ID, x.Name, x.Phone })

	for _, table := range []string{"products", "warehouses", "customers", "suppliers"} {
		fmt.Fprintf(&b, "SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %s));\n", table, table)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeParties[T any](b *strings.Builder, table string, rows []T, fields func(T) (int64, string, string)) {
	fmt.Fprintf(b, "INSERT INTO %s (id, name, phone) VALUES\n", table)
	for i, r := range rows {
		id, name, phone := fields(r)
		fmt.Fprintf(b, "  (%d, '%s', '%s')%s\n", id, escapeSQL(name), escapeSQL(phone), sep(i, len(rows)))
	}
	b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone;\n\n")
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
