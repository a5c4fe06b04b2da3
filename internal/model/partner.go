package model

import "time"

type PartnerRole string

const (
	PartnerWholesaleCustomer PartnerRole = "wholesale_customer"
	PartnerRetailCustomer    PartnerRole = "retail_customer"
	PartnerSupplier          PartnerRole = "supplier"
	PartnerCustomerSupplier  PartnerRole = "customer_supplier"
)

// Partner adalah pelanggan dan/atau supplier
type Partner struct {
	ID      uint        `gorm:"primaryKey" json:"id"`
	Name    string      `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone   string      `gorm:"type:varchar(20)" json:"phone"`
	Email   string      `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Address string      `gorm:"type:varchar(500)" json:"address"`
	Role    PartnerRole `gorm:"type:varchar(30);default:'retail_customer'" json:"role" validate:"omitempty,oneof=wholesale_customer retail_customer supplier customer_supplier"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relasi
	SuppliedBatches []ProductBatch `gorm:"foreignKey:SupplierID" json:"supplied_batches,omitempty"`
	Transactions    []Transaction  `gorm:"foreignKey:PartnerID" json:"transactions,omitempty"`
}
