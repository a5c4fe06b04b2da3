package service

import (
	"errors"
	"fmt"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/pkg/validator"
)

var ErrPartnerNotFound = errors.New("partner not found")

// CatalogService: CRUD sederhana untuk master data (produk, gudang, partner).
// Tidak ada invariant stok di sini, semua mutasi stok lewat TransactionService.
type CatalogService interface {
	CreateProduct(req *model.Product) error
	GetProducts(search string) ([]model.Product, error)
	GetProduct(id string) (*model.Product, error)
	GetProductBatches(id string) ([]model.ProductBatch, error)
	UpdateProduct(id string, req *model.Product) (*model.Product, error)
	DeleteProduct(id string) error

	CreateWarehouse(req *model.Warehouse) error
	GetWarehouses() ([]model.Warehouse, error)
	GetWarehouse(id string) (*model.Warehouse, error)
	GetWarehouseStocks(id string) ([]model.WarehouseStock, error)
	UpdateWarehouse(id string, req *model.Warehouse) (*model.Warehouse, error)
	DeleteWarehouse(id string) error

	CreatePartner(req *model.Partner) error
	GetPartners(role model.PartnerRole, search string) ([]model.Partner, error)
	GetPartner(id uint) (*model.Partner, error)
	UpdatePartner(id uint, req *model.Partner) (*model.Partner, error)
	DeletePartner(id uint) error
}

type catalogService struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	partnerRepo   repository.PartnerRepository
	stockRepo     repository.StockRepository
	batchRepo     repository.BatchRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	partnerRepo repository.PartnerRepository,
	stockRepo repository.StockRepository,
	batchRepo repository.BatchRepository,
) CatalogService {
	return &catalogService{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		partnerRepo:   partnerRepo,
		stockRepo:     stockRepo,
		batchRepo:     batchRepo,
	}
}

func validationError(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	return nil
}

// ---------- Product ----------

func (s *catalogService) CreateProduct(req *model.Product) error {
	if err := validationError(req); err != nil {
		return err
	}

	// Cek duplikasi kode produk
	existing, _ := s.productRepo.FindByID(req.ID)
	if existing != nil && existing.ID != "" {
		return errors.New("product id already exists")
	}

	return s.productRepo.Create(req)
}

func (s *catalogService) GetProducts(search string) ([]model.Product, error) {
	if search != "" {
		return s.productRepo.Search(search)
	}
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProduct(id string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) GetProductBatches(id string) ([]model.ProductBatch, error) {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return nil, ErrProductNotFound
	}
	return s.batchRepo.FindByProduct(id)
}

func (s *catalogService) UpdateProduct(id string, req *model.Product) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	existing.Name = req.Name
	existing.Category = req.Category
	existing.WholesalePrice = req.WholesalePrice
	existing.RetailPrice = req.RetailPrice
	existing.Unit = req.Unit
	existing.ImageURL = req.ImageURL
	existing.Description = req.Description
	existing.Discount = req.Discount
	if req.DiscountUnit != "" {
		existing.DiscountUnit = req.DiscountUnit
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteProduct(id string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

// ---------- Warehouse ----------

func (s *catalogService) CreateWarehouse(req *model.Warehouse) error {
	if err := validationError(req); err != nil {
		return err
	}
	return s.warehouseRepo.Create(req)
}

func (s *catalogService) GetWarehouses() ([]model.Warehouse, error) {
	return s.warehouseRepo.FindAll()
}

func (s *catalogService) GetWarehouse(id string) (*model.Warehouse, error) {
	warehouse, err := s.warehouseRepo.FindByID(id)
	if err != nil {
		return nil, ErrWarehouseNotFound
	}
	return warehouse, nil
}

func (s *catalogService) GetWarehouseStocks(id string) ([]model.WarehouseStock, error) {
	if _, err := s.warehouseRepo.FindByID(id); err != nil {
		return nil, ErrWarehouseNotFound
	}
	return s.stockRepo.FindByWarehouse(id)
}

func (s *catalogService) UpdateWarehouse(id string, req *model.Warehouse) (*model.Warehouse, error) {
	existing, err := s.warehouseRepo.FindByID(id)
	if err != nil {
		return nil, ErrWarehouseNotFound
	}

	existing.Name = req.Name
	existing.Location = req.Location

	if err := s.warehouseRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteWarehouse(id string) error {
	if _, err := s.warehouseRepo.FindByID(id); err != nil {
		return ErrWarehouseNotFound
	}
	return s.warehouseRepo.Delete(id)
}

// ---------- Partner ----------

func (s *catalogService) CreatePartner(req *model.Partner) error {
	if err := validationError(req); err != nil {
		return err
	}
	return s.partnerRepo.Create(req)
}

func (s *catalogService) GetPartners(role model.PartnerRole, search string) ([]model.Partner, error) {
	if search != "" {
		return s.partnerRepo.Search(search)
	}
	return s.partnerRepo.FindAll(role)
}

func (s *catalogService) GetPartner(id uint) (*model.Partner, error) {
	partner, err := s.partnerRepo.FindByID(id)
	if err != nil {
		return nil, ErrPartnerNotFound
	}
	return partner, nil
}

func (s *catalogService) UpdatePartner(id uint, req *model.Partner) (*model.Partner, error) {
	existing, err := s.partnerRepo.FindByID(id)
	if err != nil {
		return nil, ErrPartnerNotFound
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Address = req.Address
	if req.Role != "" {
		existing.Role = req.Role
	}

	if err := s.partnerRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeletePartner(id uint) error {
	if _, err := s.partnerRepo.FindByID(id); err != nil {
		return ErrPartnerNotFound
	}
	return s.partnerRepo.Delete(id)
}
