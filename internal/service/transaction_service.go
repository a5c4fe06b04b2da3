package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound           = errors.New("product not found")
	ErrWarehouseNotFound         = errors.New("warehouse not found")
	ErrSupplierNotFound          = errors.New("supplier not found")
	ErrCustomerNotFound          = errors.New("customer not found")
	ErrBatchNotFound             = errors.New("batch not found")
	ErrProductNotInWarehouse     = errors.New("product has no stock in this warehouse")
	ErrInsufficientStock         = errors.New("insufficient stock remaining")
	ErrInsufficientBatchQuantity = errors.New("insufficient quantity in the specified batch")
	ErrTransactionNotFound       = errors.New("transaction not found")
)

// batchNumberAttempts: berapa kali seluruh unit of work pembelian diulang kalau
// nomor batch bentrok dengan pembelian paralel produk yang sama di hari yang sama.
const batchNumberAttempts = 3

type PurchaseRequest struct {
	ProductID     string              `json:"product_id" validate:"required"`
	WarehouseID   string              `json:"warehouse_id" validate:"required"`
	SupplierID    uint                `json:"supplier_id" validate:"required"`
	ExpiryDate    string              `json:"expiry_date" validate:"required,datetime=2006-01-02"`
	PurchasePrice float64             `json:"purchase_price" validate:"required,gt=0"`
	PurchaseNote  string              `json:"purchase_note"`
	BatchQuantity int                 `json:"batch_quantity" validate:"required,gt=0"`
	VAT           float64             `json:"vat" validate:"gte=0"`
	Discount      float64             `json:"discount" validate:"gte=0"`
	DiscountUnit  model.DiscountUnit  `json:"discount_unit" validate:"omitempty,oneof=percentage fixed_amount"`
	PaymentMethod model.PaymentMethod `json:"payment_method" validate:"omitempty,oneof=cash bank_transfer credit_card"`
}

type PurchaseResult struct {
	Message       string              `json:"message"`
	TransactionID uuid.UUID           `json:"transaction_id"`
	Batch         *model.ProductBatch `json:"batch"`
	UpdatedStock  int                 `json:"updated_stock"`
}

type SaleItemRequest struct {
	ProductID string     `json:"product_id" validate:"required"`
	Quantity  int        `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64    `json:"unit_price" validate:"required,gt=0"`
	BatchID   *uuid.UUID `json:"batch_id,omitempty"`
}

type SaleRequest struct {
	CustomerID    uint                `json:"customer_id" validate:"required"`
	WarehouseID   string              `json:"warehouse_id" validate:"required"`
	PaymentMethod model.PaymentMethod `json:"payment_method" validate:"omitempty,oneof=cash bank_transfer credit_card"`
	SaleItems     []SaleItemRequest   `json:"sale_items" validate:"required,min=1,dive"`
	Discount      float64             `json:"discount" validate:"gte=0"`
	DiscountUnit  model.DiscountUnit  `json:"discount_unit" validate:"omitempty,oneof=percentage fixed_amount"`
	VAT           float64             `json:"vat" validate:"gte=0"`
	SaleNote      string              `json:"sale_note"`
}

type SaleResult struct {
	Message       string    `json:"message"`
	TransactionID uuid.UUID `json:"transaction_id"`
	TotalAmount   float64   `json:"total_amount"`
	ItemCount     int       `json:"item_count"`
}

type TransactionList struct {
	Transactions []model.Transaction `json:"transactions"`
	Total        int64               `json:"total"`
}

type TransactionService interface {
	PurchaseProduct(req *PurchaseRequest) (*PurchaseResult, error)
	CreateSaleTransaction(req *SaleRequest) (*SaleResult, error)
	GetAllTransactions(txType model.TransactionType, page, pageSize int) (*TransactionList, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
}

type transactionService struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	partnerRepo   repository.PartnerRepository
	stockRepo     repository.StockRepository
	batchRepo     repository.BatchRepository
	txRepo        repository.TransactionRepository
	allocator     *BatchAllocator
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewTransactionService(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	partnerRepo repository.PartnerRepository,
	stockRepo repository.StockRepository,
	batchRepo repository.BatchRepository,
	txRepo repository.TransactionRepository,
	db *gorm.DB,
	hub *ws.Hub,
) TransactionService {
	return &transactionService{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		partnerRepo:   partnerRepo,
		stockRepo:     stockRepo,
		batchRepo:     batchRepo,
		txRepo:        txRepo,
		allocator:     NewBatchAllocator(batchRepo),
		db:            db,
		wsHub:         hub,
	}
}

// generateBatchNumber: prefix tanggal hari ini + kode produk + nomor urut 3 digit.
// Count-then-insert; bentrok nomor ditangkap unique index di batch_number dan
// di-retry oleh caller.
func (s *transactionService) generateBatchNumber(tx *gorm.DB, productID string) (string, error) {
	datePart := time.Now().Format("20060102")

	count, err := s.batchRepo.CountByProductAndPrefix(tx, productID, datePart)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%03d", datePart, productID, count+1), nil
}

func (s *transactionService) PurchaseProduct(req *PurchaseRequest) (*PurchaseResult, error) {
	// Default seperti perilaku lama: transfer bank & diskon persen
	if req.PaymentMethod == "" {
		req.PaymentMethod = model.PaymentBankTransfer
	}
	if req.DiscountUnit == "" {
		req.DiscountUnit = model.DiscountPercentage
	}

	// Seluruh unit of work diulang kalau insert batch kena duplikat nomor
	// (dua pembelian paralel produk sama di hari sama)
	var lastErr error
	for attempt := 0; attempt < batchNumberAttempts; attempt++ {
		result, err := s.purchaseOnce(req)
		if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
			lastErr = err
			continue
		}
		return result, err
	}
	return nil, lastErr
}

func (s *transactionService) purchaseOnce(req *PurchaseRequest) (*PurchaseResult, error) {
	var result *PurchaseResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 1. Resolve product, warehouse, supplier
		product, err := s.productRepo.FindByIDTx(tx, req.ProductID)
		if err != nil {
			return ErrProductNotFound
		}

		warehouse, err := s.warehouseRepo.FindByIDTx(tx, req.WarehouseID)
		if err != nil {
			return ErrWarehouseNotFound
		}

		supplier, err := s.partnerRepo.FindSupplierByID(tx, req.SupplierID)
		if err != nil {
			return ErrSupplierNotFound
		}

		// 2. Generate nomor batch
		batchNumber, err := s.generateBatchNumber(tx, product.ID)
		if err != nil {
			return err
		}

		expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return err
		}

		// 3. Hitung total (satu baris: harga beli x jumlah batch)
		pricing := CalculateTotals(
			[]PricingLine{{UnitPrice: req.PurchasePrice, Quantity: req.BatchQuantity}},
			req.Discount, req.DiscountUnit, req.VAT,
		)

		// 4. Simpan header transaksi
		transaction := &model.Transaction{
			TransactionDate: time.Now(),
			Type:            model.TxPurchase,
			TotalAmount:     pricing.Total,
			VAT:             req.VAT,
			Discount:        req.Discount,
			DiscountUnit:    req.DiscountUnit,
			PaymentMethod:   req.PaymentMethod,
			Note:            req.PurchaseNote,
			PartnerID:       &supplier.ID,
		}
		if err := s.txRepo.Create(tx, transaction); err != nil {
			return err
		}

		// 5. Satu transaction item untuk batch ini
		items := []model.TransactionItem{{
			TransactionID: transaction.ID,
			ProductID:     product.ID,
			Quantity:      req.BatchQuantity,
			UnitPrice:     req.PurchasePrice,
			DiscountUnit:  req.DiscountUnit,
			Subtotal:      LineSubtotal(req.PurchasePrice, req.BatchQuantity),
		}}
		if err := s.txRepo.CreateItems(tx, items); err != nil {
			return err
		}

		// 6. Find-or-create stok gudang, lalu buat batch yang nunjuk ke stok itu
		stock, err := s.stockRepo.FindOrCreate(tx, product.ID, warehouse.ID)
		if err != nil {
			return err
		}

		batch := &model.ProductBatch{
			BatchNumber:      batchNumber,
			ExpiryDate:       expiryDate,
			PurchasePrice:    req.PurchasePrice,
			PurchaseNote:     req.PurchaseNote,
			BatchQuantity:    req.BatchQuantity,
			ProductID:        product.ID,
			SupplierID:       supplier.ID,
			WarehouseStockID: stock.ID,
		}
		if err := s.batchRepo.Create(tx, batch); err != nil {
			return err
		}

		// 7. Naikkan total stok, dalam tx yang sama dengan pembuatan batch
		newTotal, err := s.stockRepo.AdjustQuantity(tx, stock.ID, req.BatchQuantity)
		if err != nil {
			return err
		}

		result = &PurchaseResult{
			Message:       "Product purchased successfully",
			TransactionID: transaction.ID,
			Batch:         batch,
			UpdatedStock:  newTotal,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.broadcastStockEvent("purchase", req.ProductID, req.WarehouseID, req.BatchQuantity, result.UpdatedStock)
	return result, nil
}

func (s *transactionService) CreateSaleTransaction(req *SaleRequest) (*SaleResult, error) {
	if req.PaymentMethod == "" {
		req.PaymentMethod = model.PaymentCash
	}
	if req.DiscountUnit == "" {
		req.DiscountUnit = model.DiscountPercentage
	}

	var result *SaleResult
	stockAfter := make(map[string]int)
	soldQty := make(map[string]int)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 1. Resolve warehouse & customer (role customer tidak dicek, partner apa pun boleh beli)
		warehouse, err := s.warehouseRepo.FindByIDTx(tx, req.WarehouseID)
		if err != nil {
			return ErrWarehouseNotFound
		}

		customer, err := s.partnerRepo.FindByIDTx(tx, req.CustomerID)
		if err != nil {
			return ErrCustomerNotFound
		}

		// 2. Proses item sesuai urutan request
		var lines []PricingLine
		var staged []model.TransactionItem

		for _, item := range req.SaleItems {
			product, err := s.productRepo.FindByIDTx(tx, item.ProductID)
			if err != nil {
				return ErrProductNotFound
			}

			stock, err := s.stockRepo.FindByProductAndWarehouse(tx, product.ID, warehouse.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotInWarehouse
				}
				return err
			}

			// Cek kecukupan + decrement dalam satu statement ber-guard
			newTotal, err := s.stockRepo.AdjustQuantity(tx, stock.ID, -item.Quantity)
			if err != nil {
				if errors.Is(err, repository.ErrQuantityGuard) {
					return ErrInsufficientStock
				}
				return err
			}
			stockAfter[product.ID] = newTotal
			soldQty[product.ID] += item.Quantity

			// Deplete batch sesuai plan (FIFO kadaluarsa, atau batch eksplisit)
			if _, err := s.allocator.Allocate(tx, stock, item.Quantity, item.BatchID); err != nil {
				return err
			}

			lines = append(lines, PricingLine{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
			staged = append(staged, model.TransactionItem{
				ProductID:    product.ID,
				Quantity:     item.Quantity,
				UnitPrice:    item.UnitPrice,
				Discount:     product.Discount, // dicatat, tidak masuk total agregat
				DiscountUnit: product.DiscountUnit,
				Subtotal:     LineSubtotal(item.UnitPrice, item.Quantity),
			})
		}

		// 3. Total agregat lalu header transaksi
		pricing := CalculateTotals(lines, req.Discount, req.DiscountUnit, req.VAT)

		transaction := &model.Transaction{
			TransactionDate: time.Now(),
			Type:            model.TxSale,
			TotalAmount:     pricing.Total,
			VAT:             req.VAT,
			Discount:        req.Discount,
			DiscountUnit:    req.DiscountUnit,
			PaymentMethod:   req.PaymentMethod,
			Note:            req.SaleNote,
			PartnerID:       &customer.ID,
		}
		if err := s.txRepo.Create(tx, transaction); err != nil {
			return err
		}

		// 4. Link staged items ke transaksi yang baru dibuat
		for i := range staged {
			staged[i].TransactionID = transaction.ID
		}
		if err := s.txRepo.CreateItems(tx, staged); err != nil {
			return err
		}

		result = &SaleResult{
			Message:       "Sale recorded successfully",
			TransactionID: transaction.ID,
			TotalAmount:   pricing.Total,
			ItemCount:     len(staged),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	for productID, total := range stockAfter {
		s.broadcastStockEvent("sale", productID, req.WarehouseID, soldQty[productID], total)
	}
	return result, nil
}

func (s *transactionService) GetAllTransactions(txType model.TransactionType, page, pageSize int) (*TransactionList, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	transactions, total, err := s.txRepo.FindAll(txType, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &TransactionList{Transactions: transactions, Total: total}, nil
}

func (s *transactionService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.txRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// broadcastStockEvent kirim event perubahan stok ke semua klien websocket
func (s *transactionService) broadcastStockEvent(action, productID, warehouseID string, quantity, newStock int) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":         "stock_update",
			"action":       action,
			"product_id":   productID,
			"warehouse_id": warehouseID,
			"quantity":     quantity,
			"new_stock":    newStock,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
