package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TxSale     TransactionType = "sale"
	TxPurchase TransactionType = "purchase"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCreditCard   PaymentMethod = "credit_card"
)

// Transaction adalah header pembelian/penjualan. Append-only: sekali dibuat
// tidak pernah diubah.
type Transaction struct {
	BaseModel
	TransactionDate time.Time       `gorm:"not null" json:"transaction_date"`
	Type            TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	TotalAmount     float64         `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	VAT             float64         `gorm:"type:decimal(5,2);default:0" json:"vat"` // persen
	Discount        float64         `gorm:"type:decimal(10,2);default:0" json:"discount"`
	DiscountUnit    DiscountUnit    `gorm:"type:varchar(20);default:'percentage'" json:"discount_unit"`
	PaymentMethod   PaymentMethod   `gorm:"type:varchar(20)" json:"payment_method"`
	Note            string          `gorm:"type:text" json:"note"`

	PartnerID *uint    `gorm:"index" json:"partner_id"`
	Partner   *Partner `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`

	Items []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
}

// TransactionItem satu baris produk dalam transaksi. Discount per baris hanya
// dicatat, tidak ikut dihitung ke total agregat.
type TransactionItem struct {
	BaseModel
	TransactionID uuid.UUID    `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     string       `gorm:"type:varchar(50);not null" json:"product_id"`
	Quantity      int          `gorm:"not null" json:"quantity"`
	UnitPrice     float64      `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Discount      float64      `gorm:"type:decimal(10,2);default:0" json:"discount"`
	DiscountUnit  DiscountUnit `gorm:"type:varchar(20);default:'percentage'" json:"discount_unit"`
	Subtotal      float64      `gorm:"type:decimal(10,2);not null" json:"subtotal"` // unit_price * quantity, sebelum diskon/VAT

	// Relasi
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
