package repository

import (
	"errors"

	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrQuantityGuard is returned when a conditional quantity update matched no row,
// i.e. the mutation would have driven a quantity below zero.
var ErrQuantityGuard = errors.New("quantity guard rejected update")

type StockRepository interface {
	FindByProductAndWarehouse(tx *gorm.DB, productID, warehouseID string) (*model.WarehouseStock, error)
	FindOrCreate(tx *gorm.DB, productID, warehouseID string) (*model.WarehouseStock, error)
	AdjustQuantity(tx *gorm.DB, stockID uuid.UUID, delta int) (int, error)
	FindByWarehouse(warehouseID string) ([]model.WarehouseStock, error)
	FindByProduct(productID string) ([]model.WarehouseStock, error)
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) FindByProductAndWarehouse(tx *gorm.DB, productID, warehouseID string) (*model.WarehouseStock, error) {
	var stock model.WarehouseStock
	err := tx.First(&stock, "product_id = ? AND warehouse_id = ?", productID, warehouseID).Error
	return &stock, err
}

// FindOrCreate membuat row stok dengan totalQuantity 0 kalau pasangan
// (product, warehouse) belum pernah menerima barang. Hanya dipakai jalur pembelian.
func (r *stockRepo) FindOrCreate(tx *gorm.DB, productID, warehouseID string) (*model.WarehouseStock, error) {
	stock, err := r.FindByProductAndWarehouse(tx, productID, warehouseID)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	stock = &model.WarehouseStock{
		ProductID:     productID,
		WarehouseID:   warehouseID,
		TotalQuantity: 0,
	}
	if err := tx.Create(stock).Error; err != nil {
		return nil, err
	}
	return stock, nil
}

// AdjustQuantity menerapkan delta bertanda ke total_quantity dengan guard di SQL:
// UPDATE ... WHERE total_quantity + delta >= 0. Dua penjualan bersamaan tidak
// mungkin dua-duanya lolos cek kecukupan terhadap nilai stok basi, karena cek dan
// mutasi terjadi dalam satu statement. Return: total baru setelah delta.
func (r *stockRepo) AdjustQuantity(tx *gorm.DB, stockID uuid.UUID, delta int) (int, error) {
	res := tx.Model(&model.WarehouseStock{}).
		Where("id = ? AND total_quantity + ? >= 0", stockID, delta).
		Update("total_quantity", gorm.Expr("total_quantity + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrQuantityGuard
	}

	var stock model.WarehouseStock
	if err := tx.First(&stock, "id = ?", stockID).Error; err != nil {
		return 0, err
	}
	return stock.TotalQuantity, nil
}

func (r *stockRepo) FindByWarehouse(warehouseID string) ([]model.WarehouseStock, error) {
	var stocks []model.WarehouseStock
	err := r.db.Preload("Product").Where("warehouse_id = ?", warehouseID).Find(&stocks).Error
	return stocks, err
}

func (r *stockRepo) FindByProduct(productID string) ([]model.WarehouseStock, error) {
	var stocks []model.WarehouseStock
	err := r.db.Preload("Warehouse").Where("product_id = ?", productID).Find(&stocks).Error
	return stocks, err
}
