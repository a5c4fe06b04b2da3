package repository

import (
	"go-warehouse-api/internal/model"

	"gorm.io/gorm"
)

type WarehouseRepository interface {
	Create(warehouse *model.Warehouse) error
	FindAll() ([]model.Warehouse, error)
	FindByID(id string) (*model.Warehouse, error)
	FindByIDTx(tx *gorm.DB, id string) (*model.Warehouse, error)
	Update(warehouse *model.Warehouse) error
	Delete(id string) error
}

type warehouseRepo struct {
	db *gorm.DB
}

func NewWarehouseRepo(db *gorm.DB) WarehouseRepository {
	return &warehouseRepo{db}
}

func (r *warehouseRepo) Create(warehouse *model.Warehouse) error {
	return r.db.Create(warehouse).Error
}

func (r *warehouseRepo) FindAll() ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	err := r.db.Order("name ASC").Find(&warehouses).Error
	return warehouses, err
}

func (r *warehouseRepo) FindByID(id string) (*model.Warehouse, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *warehouseRepo) FindByIDTx(tx *gorm.DB, id string) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	err := tx.First(&warehouse, "id = ?", id).Error
	return &warehouse, err
}

func (r *warehouseRepo) Update(warehouse *model.Warehouse) error {
	return r.db.Save(warehouse).Error
}

func (r *warehouseRepo) Delete(id string) error {
	return r.db.Delete(&model.Warehouse{}, "id = ?", id).Error
}
