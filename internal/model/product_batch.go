package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductBatch adalah satu lot barang dari satu pembelian.
// BatchQuantity = sisa unit di batch ini; dikurangi saat penjualan, tidak pernah
// dihapus (batch kosong tetap tersimpan sebagai riwayat).
type ProductBatch struct {
	BaseModel
	BatchNumber   string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"batch_number"` // Format: YYYYMMDD-<productId>-<seq>
	ExpiryDate    time.Time `gorm:"type:date;not null" json:"expiry_date"`
	PurchasePrice float64   `gorm:"type:decimal(10,2);not null" json:"purchase_price"`
	PurchaseNote  string    `gorm:"type:text" json:"purchase_note"`
	BatchQuantity int       `gorm:"not null;default:0" json:"batch_quantity"`

	ProductID        string    `gorm:"type:varchar(50);not null;index" json:"product_id"`
	SupplierID       uint      `gorm:"not null" json:"supplier_id"`
	WarehouseStockID uuid.UUID `gorm:"type:uuid;not null;index" json:"warehouse_stock_id"`

	// Relasi
	Product        *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Supplier       *Partner        `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	WarehouseStock *WarehouseStock `gorm:"foreignKey:WarehouseStockID" json:"warehouse_stock,omitempty"`
}
