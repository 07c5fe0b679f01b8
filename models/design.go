package models

import "github.com/shopspring/decimal"

// Design is a garment from the catalog. Designs are reference data seeded by migration.
type Design struct {
	ID        string          `db:"id" json:"id"`
	Title     string          `db:"title" json:"title"`
	Category  string          `db:"category" json:"category"`
	Image     string          `db:"image" json:"image"`
	BasePrice decimal.Decimal `db:"base_price" json:"base_price"`
}

// CartItem is a design placed in a session cart.
type CartItem struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
}
