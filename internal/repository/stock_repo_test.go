package repository

import (
	"errors"
	"fmt"
	"testing"

	"go-warehouse-api/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStockTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Product{}, &model.Warehouse{}, &model.Partner{}, &model.WarehouseStock{}, &model.ProductBatch{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&model.Product{ID: "P1", Name: "Produk Satu"}).Error; err != nil {
		t.Fatalf("product: %v", err)
	}
	if err := db.Create(&model.Warehouse{ID: "W1", Name: "Gudang Satu"}).Error; err != nil {
		t.Fatalf("warehouse: %v", err)
	}
	return db
}

func TestFindOrCreateCreatesZeroQuantityRow(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewStockRepo(db)

	stock, err := repo.FindOrCreate(db, "P1", "W1")
	if err != nil {
		t.Fatalf("find or create: %v", err)
	}
	if stock.TotalQuantity != 0 {
		t.Errorf("expected fresh stock at 0, got %d", stock.TotalQuantity)
	}

	// Panggilan kedua harus balikin row yang sama, bukan bikin baru
	again, err := repo.FindOrCreate(db, "P1", "W1")
	if err != nil {
		t.Fatalf("second find or create: %v", err)
	}
	if again.ID != stock.ID {
		t.Errorf("expected same stock row, got %s vs %s", again.ID, stock.ID)
	}

	var count int64
	db.Model(&model.WarehouseStock{}).Count(&count)
	if count != 1 {
		t.Errorf("expected single stock row, got %d", count)
	}
}

func TestAdjustQuantityAppliesSignedDelta(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewStockRepo(db)

	stock, err := repo.FindOrCreate(db, "P1", "W1")
	if err != nil {
		t.Fatalf("find or create: %v", err)
	}

	total, err := repo.AdjustQuantity(db, stock.ID, 7)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if total != 7 {
		t.Errorf("expected 7, got %d", total)
	}

	total, err = repo.AdjustQuantity(db, stock.ID, -3)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if total != 4 {
		t.Errorf("expected 4, got %d", total)
	}
}

func TestAdjustQuantityRejectsNegativeResult(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewStockRepo(db)

	stock, err := repo.FindOrCreate(db, "P1", "W1")
	if err != nil {
		t.Fatalf("find or create: %v", err)
	}
	if _, err := repo.AdjustQuantity(db, stock.ID, 5); err != nil {
		t.Fatalf("increment: %v", err)
	}

	if _, err := repo.AdjustQuantity(db, stock.ID, -6); !errors.Is(err, ErrQuantityGuard) {
		t.Fatalf("expected ErrQuantityGuard, got %v", err)
	}

	// Nilai tidak berubah setelah penolakan
	var after model.WarehouseStock
	if err := db.First(&after, "id = ?", stock.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if after.TotalQuantity != 5 {
		t.Errorf("expected 5 untouched, got %d", after.TotalQuantity)
	}
}

func TestUniquePairConstraint(t *testing.T) {
	db := setupStockTestDB(t)

	if err := db.Create(&model.WarehouseStock{ProductID: "P1", WarehouseID: "W1"}).Error; err != nil {
		t.Fatalf("first row: %v", err)
	}
	err := db.Create(&model.WarehouseStock{ProductID: "P1", WarehouseID: "W1"}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicate key error for same (product, warehouse) pair, got %v", err)
	}
}
