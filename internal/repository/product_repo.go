package repository

import (
	"go-warehouse-api/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id string) (*model.Product, error)
	FindByIDTx(tx *gorm.DB, id string) (*model.Product, error)
	Search(keyword string) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id string) (*model.Product, error) {
	return r.FindByIDTx(r.db, id)
}

// FindByIDTx menerima *gorm.DB (tx) agar bisa berjalan dalam transaksi
func (r *productRepo) FindByIDTx(tx *gorm.DB, id string) (*model.Product, error) {
	var product model.Product
	err := tx.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) Search(keyword string) ([]model.Product, error) {
	var products []model.Product
	pattern := "%" + keyword + "%"
	err := r.db.
		Where("name LIKE ? OR category LIKE ? OR id LIKE ?", pattern, pattern, pattern).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id string) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}
