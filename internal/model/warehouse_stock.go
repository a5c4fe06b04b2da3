package model

// WarehouseStock adalah agregat stok satu produk di satu gudang.
// TotalQuantity selalu sama dengan jumlah batch_quantity dari batch-batchnya;
// keduanya dimutasi dalam satu transaksi database yang sama.
type WarehouseStock struct {
	BaseModel
	ProductID     string `gorm:"type:varchar(50);not null;uniqueIndex:idx_stock_product_warehouse" json:"product_id"`
	WarehouseID   string `gorm:"type:varchar(50);not null;uniqueIndex:idx_stock_product_warehouse" json:"warehouse_id"`
	TotalQuantity int    `gorm:"not null;default:0" json:"total_quantity"`

	// Relasi
	Product   *Product       `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Warehouse *Warehouse     `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	Batches   []ProductBatch `gorm:"foreignKey:WarehouseStockID" json:"batches,omitempty"`
}
