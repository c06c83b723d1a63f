package entity

// Customer cliente del catálogo (contraparte de pedidos de salida y ventas).
type Customer struct {
	ID    int64
	Name  string
	Phone string
}

// Supplier proveedor del catálogo (contraparte de pedidos de entrada).
type Supplier struct {
	ID    int64
	Name  string
	Phone string
}
