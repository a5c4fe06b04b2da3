package repository

import (
	"go-warehouse-api/internal/model"

	"gorm.io/gorm"
)

type PartnerRepository interface {
	Create(partner *model.Partner) error
	FindAll(role model.PartnerRole) ([]model.Partner, error)
	FindByID(id uint) (*model.Partner, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Partner, error)
	FindSupplierByID(tx *gorm.DB, id uint) (*model.Partner, error)
	Search(keyword string) ([]model.Partner, error)
	Update(partner *model.Partner) error
	Delete(id uint) error
}

type partnerRepo struct {
	db *gorm.DB
}

func NewPartnerRepo(db *gorm.DB) PartnerRepository {
	return &partnerRepo{db}
}

func (r *partnerRepo) Create(partner *model.Partner) error {
	return r.db.Create(partner).Error
}

// FindAll optionally filters by role, pass "" untuk semua partner
func (r *partnerRepo) FindAll(role model.PartnerRole) ([]model.Partner, error) {
	var partners []model.Partner
	query := r.db.Order("name ASC")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	err := query.Find(&partners).Error
	return partners, err
}

func (r *partnerRepo) FindByID(id uint) (*model.Partner, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *partnerRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Partner, error) {
	var partner model.Partner
	err := tx.First(&partner, "id = ?", id).Error
	return &partner, err
}

// FindSupplierByID hanya cocok kalau partner benar-benar berrole supplier
func (r *partnerRepo) FindSupplierByID(tx *gorm.DB, id uint) (*model.Partner, error) {
	var partner model.Partner
	err := tx.First(&partner, "id = ? AND role = ?", id, model.PartnerSupplier).Error
	return &partner, err
}

func (r *partnerRepo) Search(keyword string) ([]model.Partner, error) {
	var partners []model.Partner
	pattern := "%" + keyword + "%"
	err := r.db.
		Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", pattern, pattern, pattern).
		Order("name ASC").
		Find(&partners).Error
	return partners, err
}

func (r *partnerRepo) Update(partner *model.Partner) error {
	return r.db.Save(partner).Error
}

func (r *partnerRepo) Delete(id uint) error {
	return r.db.Delete(&model.Partner{}, "id = ?", id).Error
}
