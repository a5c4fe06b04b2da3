package repository

import (
	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BatchRepository interface {
	Create(tx *gorm.DB, batch *model.ProductBatch) error
	CountByProductAndPrefix(tx *gorm.DB, productID, prefix string) (int64, error)
	FindByStockOrderedByExpiry(tx *gorm.DB, stockID uuid.UUID) ([]model.ProductBatch, error)
	FindByIDForStock(tx *gorm.DB, batchID, stockID uuid.UUID) (*model.ProductBatch, error)
	Deplete(tx *gorm.DB, batchID uuid.UUID, amount int) error
	FindByProduct(productID string) ([]model.ProductBatch, error)
}

type batchRepo struct {
	db *gorm.DB
}

func NewBatchRepo(db *gorm.DB) BatchRepository {
	return &batchRepo{db}
}

func (r *batchRepo) Create(tx *gorm.DB, batch *model.ProductBatch) error {
	return tx.Create(batch).Error
}

// CountByProductAndPrefix menghitung batch produk ini yang batch number-nya
// diawali prefix tanggal hari ini, untuk nomor urut batch berikutnya.
func (r *batchRepo) CountByProductAndPrefix(tx *gorm.DB, productID, prefix string) (int64, error) {
	var count int64
	err := tx.Model(&model.ProductBatch{}).
		Where("product_id = ? AND batch_number LIKE ?", productID, prefix+"%").
		Count(&count).Error
	return count, err
}

// FindByStockOrderedByExpiry: kandidat alokasi FIFO, kadaluarsa terdekat dulu.
// Batch kosong (quantity 0) dilewati.
func (r *batchRepo) FindByStockOrderedByExpiry(tx *gorm.DB, stockID uuid.UUID) ([]model.ProductBatch, error) {
	var batches []model.ProductBatch
	err := tx.
		Where("warehouse_stock_id = ? AND batch_quantity > 0", stockID).
		Order("expiry_date ASC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) FindByIDForStock(tx *gorm.DB, batchID, stockID uuid.UUID) (*model.ProductBatch, error) {
	var batch model.ProductBatch
	err := tx.First(&batch, "id = ? AND warehouse_stock_id = ?", batchID, stockID).Error
	return &batch, err
}

// Deplete mengurangi sisa batch dengan guard yang sama seperti stok:
// batch_quantity tidak pernah turun di bawah nol.
func (r *batchRepo) Deplete(tx *gorm.DB, batchID uuid.UUID, amount int) error {
	res := tx.Model(&model.ProductBatch{}).
		Where("id = ? AND batch_quantity >= ?", batchID, amount).
		Update("batch_quantity", gorm.Expr("batch_quantity - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuantityGuard
	}
	return nil
}

func (r *batchRepo) FindByProduct(productID string) ([]model.ProductBatch, error) {
	var batches []model.ProductBatch
	err := r.db.Preload("Supplier").Preload("WarehouseStock").
		Where("product_id = ?", productID).
		Order("expiry_date ASC").
		Find(&batches).Error
	return batches, err
}
