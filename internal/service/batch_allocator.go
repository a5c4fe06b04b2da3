package service

import (
	"errors"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BatchAllocation satu pasangan (batch, jumlah yang diambil dari batch itu)
type BatchAllocation struct {
	Batch    model.ProductBatch `json:"batch"`
	Quantity int                `json:"quantity"`
}

// BatchAllocator memilih batch mana yang dipakai untuk melepas stok:
// FIFO berdasarkan tanggal kadaluarsa, atau satu batch spesifik kalau
// caller menyebut batch id. Depletion batch terjadi di sini juga, dalam
// tx yang sama dengan sisa penjualan.
type BatchAllocator struct {
	batchRepo repository.BatchRepository
}

func NewBatchAllocator(batchRepo repository.BatchRepository) *BatchAllocator {
	return &BatchAllocator{batchRepo: batchRepo}
}

// Allocate mengembalikan plan alokasi yang jumlahnya persis sama dengan quantity.
// Mode batch eksplisit tidak pernah meluber ke batch lain.
func (a *BatchAllocator) Allocate(tx *gorm.DB, stock *model.WarehouseStock, quantity int, batchID *uuid.UUID) ([]BatchAllocation, error) {
	if batchID != nil {
		return a.allocateExplicit(tx, stock, quantity, *batchID)
	}
	return a.allocateFIFO(tx, stock, quantity)
}

func (a *BatchAllocator) allocateExplicit(tx *gorm.DB, stock *model.WarehouseStock, quantity int, batchID uuid.UUID) ([]BatchAllocation, error) {
	batch, err := a.batchRepo.FindByIDForStock(tx, batchID, stock.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}

	if batch.BatchQuantity < quantity {
		return nil, ErrInsufficientBatchQuantity
	}

	if err := a.batchRepo.Deplete(tx, batch.ID, quantity); err != nil {
		if errors.Is(err, repository.ErrQuantityGuard) {
			return nil, ErrInsufficientBatchQuantity
		}
		return nil, err
	}
	batch.BatchQuantity -= quantity

	return []BatchAllocation{{Batch: *batch, Quantity: quantity}}, nil
}

func (a *BatchAllocator) allocateFIFO(tx *gorm.DB, stock *model.WarehouseStock, quantity int) ([]BatchAllocation, error) {
	batches, err := a.batchRepo.FindByStockOrderedByExpiry(tx, stock.ID)
	if err != nil {
		return nil, err
	}

	var plan []BatchAllocation
	remaining := quantity

	for _, batch := range batches {
		if remaining <= 0 {
			break
		}

		take := batch.BatchQuantity
		if take > remaining {
			take = remaining
		}

		if err := a.batchRepo.Deplete(tx, batch.ID, take); err != nil {
			if errors.Is(err, repository.ErrQuantityGuard) {
				// Batch berubah di bawah kita, jumlah batch tidak cukup lagi
				return nil, ErrInsufficientStock
			}
			return nil, err
		}
		batch.BatchQuantity -= take

		plan = append(plan, BatchAllocation{Batch: batch, Quantity: take})
		remaining -= take
	}

	if remaining > 0 {
		// Stok agregat bilang cukup tapi jumlah batch tidak: ledger tidak konsisten,
		// harus gagal keras bukan diam-diam
		return nil, ErrInsufficientStock
	}

	return plan, nil
}
