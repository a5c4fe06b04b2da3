package service

import (
	"errors"
	"testing"
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seedAllocatorFixtures(t *testing.T, db *gorm.DB) (*model.WarehouseStock, []model.ProductBatch) {
	t.Helper()

	product := model.Product{ID: "PRD-ALLOC", Name: "Minyak Goreng 1L"}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("product: %v", err)
	}
	warehouse := model.Warehouse{ID: "WH-ALLOC", Name: "Gudang Alokasi"}
	if err := db.Create(&warehouse).Error; err != nil {
		t.Fatalf("warehouse: %v", err)
	}
	supplier := model.Partner{Name: "Supplier Alokasi", Role: model.PartnerSupplier}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("supplier: %v", err)
	}

	stock := model.WarehouseStock{ProductID: product.ID, WarehouseID: warehouse.ID, TotalQuantity: 9}
	if err := db.Create(&stock).Error; err != nil {
		t.Fatalf("stock: %v", err)
	}

	day := 24 * time.Hour
	batches := []model.ProductBatch{
		{BatchNumber: "B-EARLY", ExpiryDate: time.Now().Add(30 * day), BatchQuantity: 3, ProductID: product.ID, SupplierID: supplier.ID, WarehouseStockID: stock.ID},
		{BatchNumber: "B-MID", ExpiryDate: time.Now().Add(60 * day), BatchQuantity: 4, ProductID: product.ID, SupplierID: supplier.ID, WarehouseStockID: stock.ID},
		{BatchNumber: "B-LATE", ExpiryDate: time.Now().Add(90 * day), BatchQuantity: 2, ProductID: product.ID, SupplierID: supplier.ID, WarehouseStockID: stock.ID},
	}
	for i := range batches {
		if err := db.Create(&batches[i]).Error; err != nil {
			t.Fatalf("batch %s: %v", batches[i].BatchNumber, err)
		}
	}
	return &stock, batches
}

func TestAllocateFIFOSingleBatch(t *testing.T) {
	db := setupTestDB(t)
	stock, _ := seedAllocatorFixtures(t, db)
	allocator := NewBatchAllocator(repository.NewBatchRepo(db))

	plan, err := allocator.Allocate(db, stock, 2, nil)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}

	if len(plan) != 1 {
		t.Fatalf("expected single-batch plan, got %d entries", len(plan))
	}
	if plan[0].Batch.BatchNumber != "B-EARLY" || plan[0].Quantity != 2 {
		t.Errorf("expected 2 from B-EARLY, got %d from %s", plan[0].Quantity, plan[0].Batch.BatchNumber)
	}
	if got := batchQuantity(t, db, "B-EARLY"); got != 1 {
		t.Errorf("expected B-EARLY depleted to 1, got %d", got)
	}
}

func TestAllocateFIFOSpansBatchesInExpiryOrder(t *testing.T) {
	db := setupTestDB(t)
	stock, _ := seedAllocatorFixtures(t, db)
	allocator := NewBatchAllocator(repository.NewBatchRepo(db))

	plan, err := allocator.Allocate(db, stock, 8, nil)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}

	if len(plan) != 3 {
		t.Fatalf("expected plan across 3 batches, got %d", len(plan))
	}
	wantOrder := []string{"B-EARLY", "B-MID", "B-LATE"}
	wantQty := []int{3, 4, 1}
	for i := range plan {
		if plan[i].Batch.BatchNumber != wantOrder[i] || plan[i].Quantity != wantQty[i] {
			t.Errorf("plan[%d]: expected %d from %s, got %d from %s",
				i, wantQty[i], wantOrder[i], plan[i].Quantity, plan[i].Batch.BatchNumber)
		}
	}

	total := 0
	for _, alloc := range plan {
		total += alloc.Quantity
	}
	if total != 8 {
		t.Errorf("plan quantities must sum to request, got %d", total)
	}
}

func TestAllocateFIFOFailsWhenBatchesCannotCover(t *testing.T) {
	db := setupTestDB(t)
	stock, _ := seedAllocatorFixtures(t, db)
	allocator := NewBatchAllocator(repository.NewBatchRepo(db))

	if _, err := allocator.Allocate(db, stock, 15, nil); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestAllocateExplicitBatchOnly(t *testing.T) {
	db := setupTestDB(t)
	stock, batches := seedAllocatorFixtures(t, db)
	allocator := NewBatchAllocator(repository.NewBatchRepo(db))

	mid := batches[1]
	plan, err := allocator.Allocate(db, stock, 4, &mid.ID)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}

	if len(plan) != 1 || plan[0].Batch.ID != mid.ID {
		t.Fatalf("expected plan restricted to specified batch, got %+v", plan)
	}
	if got := batchQuantity(t, db, "B-MID"); got != 0 {
		t.Errorf("expected B-MID fully depleted, got %d", got)
	}
	if got := batchQuantity(t, db, "B-EARLY"); got != 3 {
		t.Errorf("expected B-EARLY untouched, got %d", got)
	}
}

func TestAllocateExplicitBatchNoSpillover(t *testing.T) {
	db := setupTestDB(t)
	stock, batches := seedAllocatorFixtures(t, db)
	allocator := NewBatchAllocator(repository.NewBatchRepo(db))

	late := batches[2] // hanya 2 unit
	if _, err := allocator.Allocate(db, stock, 3, &late.ID); !errors.Is(err, ErrInsufficientBatchQuantity) {
		t.Fatalf("expected ErrInsufficientBatchQuantity, got %v", err)
	}

	// Tidak ada batch lain yang tersentuh
	for _, name := range []string{"B-EARLY", "B-MID", "B-LATE"} {
		want := map[string]int{"B-EARLY": 3, "B-MID": 4, "B-LATE": 2}[name]
		if got := batchQuantity(t, db, name); got != want {
			t.Errorf("expected %s untouched at %d, got %d", name, want, got)
		}
	}
}

func TestAllocateUnknownBatch(t *testing.T) {
	db := setupTestDB(t)
	stock, _ := seedAllocatorFixtures(t, db)
	allocator := NewBatchAllocator(repository.NewBatchRepo(db))

	bogus := uuid.New()
	if _, err := allocator.Allocate(db, stock, 1, &bogus); !errors.Is(err, ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound, got %v", err)
	}
}
