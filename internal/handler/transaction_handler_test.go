package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Product{}, &model.Warehouse{}, &model.Partner{},
		&model.WarehouseStock{}, &model.ProductBatch{},
		&model.Transaction{}, &model.TransactionItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := service.NewTransactionService(
		repository.NewProductRepo(db),
		repository.NewWarehouseRepo(db),
		repository.NewPartnerRepo(db),
		repository.NewStockRepo(db),
		repository.NewBatchRepo(db),
		repository.NewTransactionRepo(db),
		db,
		nil,
	)
	h := NewTransactionHandler(svc)

	app := fiber.New()
	app.Post("/transactions/purchase", h.Purchase)
	app.Post("/transactions/sale", h.CreateSale)
	app.Get("/transactions", h.GetTransactions)
	app.Get("/transactions/:id", h.GetTransaction)
	return app, db
}

func seedHandlerFixtures(t *testing.T, db *gorm.DB) (supplierID, customerID uint) {
	t.Helper()
	if err := db.Create(&model.Product{ID: "PRD-001", Name: "Beras Premium 5kg"}).Error; err != nil {
		t.Fatalf("product: %v", err)
	}
	if err := db.Create(&model.Warehouse{ID: "WH-01", Name: "Gudang Pusat"}).Error; err != nil {
		t.Fatalf("warehouse: %v", err)
	}
	supplier := model.Partner{Name: "PT Sumber Pangan", Role: model.PartnerSupplier}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("supplier: %v", err)
	}
	customer := model.Partner{Name: "Toko Berkah", Role: model.PartnerRetailCustomer}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("customer: %v", err)
	}
	return supplier.ID, customer.ID
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func TestPurchaseEndpointRejectsMissingRequiredFields(t *testing.T) {
	app, db := setupHandlerApp(t)
	seedHandlerFixtures(t, db)

	// Tanpa batch_quantity dan expiry_date: harus ditolak sebelum orchestrator jalan
	resp := postJSON(t, app, "/transactions/purchase", `{"product_id":"PRD-001","warehouse_id":"WH-01","supplier_id":1,"purchase_price":75}`)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&model.Transaction{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no transaction created on validation failure, got %d", count)
	}
}

func TestSaleEndpointRejectsEmptyItems(t *testing.T) {
	app, db := setupHandlerApp(t)
	_, customerID := seedHandlerFixtures(t, db)

	body := fmt.Sprintf(`{"customer_id":%d,"warehouse_id":"WH-01","sale_items":[]}`, customerID)
	resp := postJSON(t, app, "/transactions/sale", body)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for empty sale_items, got %d", resp.StatusCode)
	}
}

func TestPurchaseThenSaleOverHTTP(t *testing.T) {
	app, db := setupHandlerApp(t)
	supplierID, customerID := seedHandlerFixtures(t, db)

	body := fmt.Sprintf(`{"product_id":"PRD-001","warehouse_id":"WH-01","supplier_id":%d,"expiry_date":"2027-06-30","purchase_price":75,"batch_quantity":10}`, supplierID)
	resp := postJSON(t, app, "/transactions/purchase", body)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201 for purchase, got %d", resp.StatusCode)
	}

	var purchaseResp map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&purchaseResp); err != nil {
		t.Fatalf("decode purchase response: %v", err)
	}
	if purchaseResp["updated_stock"].(float64) != 10 {
		t.Errorf("expected updated_stock 10, got %v", purchaseResp["updated_stock"])
	}

	body = fmt.Sprintf(`{"customer_id":%d,"warehouse_id":"WH-01","sale_items":[{"product_id":"PRD-001","quantity":4,"unit_price":90}]}`, customerID)
	resp = postJSON(t, app, "/transactions/sale", body)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201 for sale, got %d", resp.StatusCode)
	}

	var saleResp struct {
		Success bool `json:"success"`
		Data    struct {
			TotalAmount float64 `json:"total_amount"`
			ItemCount   int     `json:"item_count"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&saleResp); err != nil {
		t.Fatalf("decode sale response: %v", err)
	}
	if !saleResp.Success || saleResp.Data.TotalAmount != 360 || saleResp.Data.ItemCount != 1 {
		t.Errorf("unexpected sale response: %+v", saleResp)
	}
}

func TestSaleEndpointInsufficientStock(t *testing.T) {
	app, db := setupHandlerApp(t)
	supplierID, customerID := seedHandlerFixtures(t, db)

	body := fmt.Sprintf(`{"product_id":"PRD-001","warehouse_id":"WH-01","supplier_id":%d,"expiry_date":"2027-06-30","purchase_price":75,"batch_quantity":2}`, supplierID)
	if resp := postJSON(t, app, "/transactions/purchase", body); resp.StatusCode != 201 {
		t.Fatalf("purchase setup failed: %d", resp.StatusCode)
	}

	body = fmt.Sprintf(`{"customer_id":%d,"warehouse_id":"WH-01","sale_items":[{"product_id":"PRD-001","quantity":5,"unit_price":90}]}`, customerID)
	resp := postJSON(t, app, "/transactions/sale", body)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for insufficient stock, got %d", resp.StatusCode)
	}
}

func TestGetTransactionEndpointInvalidID(t *testing.T) {
	app, _ := setupHandlerApp(t)

	req := httptest.NewRequest(http.MethodGet, "/transactions/not-a-uuid", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for invalid id, got %d", resp.StatusCode)
	}
}

func TestGetTransactionsRejectsUnknownType(t *testing.T) {
	app, _ := setupHandlerApp(t)

	req := httptest.NewRequest(http.MethodGet, "/transactions?type=refund", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for unknown type, got %d", resp.StatusCode)
	}
}
