package model

import "time"

// Warehouse ID juga kode manual (misal: WH-JKT-01)
type Warehouse struct {
	ID       string `gorm:"type:varchar(50);primaryKey" json:"id" validate:"required"`
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Location string `gorm:"type:varchar(255)" json:"location"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relasi
	Stocks []WarehouseStock `gorm:"foreignKey:WarehouseID" json:"stocks,omitempty"`
}
