package model

import "time"

// DiscountUnit menentukan cara diskon dihitung
type DiscountUnit string

const (
	DiscountPercentage DiscountUnit = "percentage"
	DiscountFixed      DiscountUnit = "fixed_amount"
)

// Product ID diisi manual oleh admin (kode produk), bukan auto-generated
type Product struct {
	ID             string       `gorm:"type:varchar(50);primaryKey" json:"id" validate:"required"`
	Name           string       `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category       string       `gorm:"type:varchar(100)" json:"category"`
	WholesalePrice float64      `gorm:"type:decimal(10,2);default:0" json:"wholesale_price"`
	RetailPrice    float64      `gorm:"type:decimal(10,2);default:0" json:"retail_price"`
	StockQuantity  int          `gorm:"default:0" json:"stock_quantity"` // Legacy aggregate, warehouse_stocks is the source of truth
	Unit           string       `gorm:"type:varchar(20);default:'item'" json:"unit"`
	ImageURL       string       `gorm:"type:varchar(500)" json:"image_url"`
	Description    string       `gorm:"type:text" json:"description,omitempty"`
	Discount       float64      `gorm:"type:decimal(10,2);default:0" json:"discount"`
	DiscountUnit   DiscountUnit `gorm:"type:varchar(20);default:'percentage'" json:"discount_unit" validate:"omitempty,oneof=percentage fixed_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relasi
	Batches []ProductBatch   `gorm:"foreignKey:ProductID" json:"batches,omitempty"`
	Stocks  []WarehouseStock `gorm:"foreignKey:ProductID" json:"stocks,omitempty"`
}
