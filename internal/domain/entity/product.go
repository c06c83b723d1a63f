package entity

import "github.com/shopspring/decimal"

// Product producto del catálogo. El núcleo solo lee nombre y precio.
type Product struct {
	ID    int64
	Code  string
	Name  string
	Price decimal.Decimal
}
