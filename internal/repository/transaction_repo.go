package repository

import (
	"time"

	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	CreateItems(tx *gorm.DB, items []model.TransactionItem) error
	FindAll(txType model.TransactionType, page, pageSize int) ([]model.Transaction, int64, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
}

// StockMovementData untuk chart data
type StockMovementData struct {
	Date      string `json:"date"`
	Purchased int    `json:"purchased"`
	Sold      int    `json:"sold"`
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalProducts   int64   `json:"total_products"`
	TotalWarehouses int64   `json:"total_warehouses"`
	LowStockCount   int64   `json:"low_stock_count"`
	TotalValuation  float64 `json:"total_valuation"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *transactionRepo) CreateItems(tx *gorm.DB, items []model.TransactionItem) error {
	return tx.Create(&items).Error
}

// FindAll lists transactions newest first, optionally filtered by type,
// dengan partner dan line items ikut dimuat.
func (r *transactionRepo) FindAll(txType model.TransactionType, page, pageSize int) ([]model.Transaction, int64, error) {
	var transactions []model.Transaction
	var total int64

	query := r.db.Model(&model.Transaction{})
	if txType != "" {
		query = query.Where("type = ?", txType)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Partner").Preload("Items").
		Order("transaction_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&transactions).Error
	return transactions, total, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.
		Preload("Partner").Preload("Items").Preload("Items.Product").
		First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	// Query untuk aggregate quantity per hari dari transaction_items
	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(transactions.transaction_date) as date,
			COALESCE(SUM(CASE WHEN transactions.type = 'purchase' THEN transaction_items.quantity ELSE 0 END), 0) as purchased,
			COALESCE(SUM(CASE WHEN transactions.type = 'sale' THEN transaction_items.quantity ELSE 0 END), 0) as sold
		`).
		Joins("JOIN transaction_items ON transaction_items.transaction_id = transactions.id").
		Where("transactions.transaction_date BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(transactions.transaction_date)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Purchased, &data.Sold); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *transactionRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	r.db.Model(&model.Product{}).Count(&stats.TotalProducts)
	r.db.Model(&model.Warehouse{}).Count(&stats.TotalWarehouses)

	// Low stock: stok gudang di bawah 10
	r.db.Model(&model.WarehouseStock{}).Where("total_quantity < ?", 10).Count(&stats.LowStockCount)

	// Valuation = SUM(total_quantity * harga retail produk)
	r.db.Model(&model.WarehouseStock{}).
		Joins("JOIN products ON products.id = warehouse_stocks.product_id").
		Select("COALESCE(SUM(warehouse_stocks.total_quantity * products.retail_price), 0)").
		Scan(&stats.TotalValuation)

	return &stats, nil
}
