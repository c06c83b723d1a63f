package entity

// Warehouse almacén del catálogo.
type Warehouse struct {
	ID       int64
	Name     string
	Location string
}
