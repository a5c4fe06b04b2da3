package service

import (
	"testing"

	"go-warehouse-api/internal/model"
)

func TestCalculateTotalsPercentageDiscount(t *testing.T) {
	// 1 baris: qty 2 x 100 = 200, diskon 10% = 20, VAT 5% dari 200 = 10
	result := CalculateTotals(
		[]PricingLine{{UnitPrice: 100, Quantity: 2}},
		10, model.DiscountPercentage, 5,
	)

	if result.PreTax != 200 {
		t.Errorf("expected preTax 200, got %v", result.PreTax)
	}
	if result.DiscountAmount != 20 {
		t.Errorf("expected discountAmount 20, got %v", result.DiscountAmount)
	}
	if result.Total != 190 {
		t.Errorf("expected total 190, got %v", result.Total)
	}
}

func TestCalculateTotalsFixedDiscount(t *testing.T) {
	result := CalculateTotals(
		[]PricingLine{{UnitPrice: 50, Quantity: 4}},
		30, model.DiscountFixed, 0,
	)

	if result.PreTax != 200 {
		t.Errorf("expected preTax 200, got %v", result.PreTax)
	}
	if result.DiscountAmount != 30 {
		t.Errorf("expected discountAmount 30, got %v", result.DiscountAmount)
	}
	if result.Total != 170 {
		t.Errorf("expected total 170, got %v", result.Total)
	}
}

func TestCalculateTotalsVATOnPreDiscountAmount(t *testing.T) {
	// VAT dihitung dari 1000, bukan dari 900: 1000 - 100 + 100 = 1000
	result := CalculateTotals(
		[]PricingLine{{UnitPrice: 1000, Quantity: 1}},
		100, model.DiscountFixed, 10,
	)

	if result.Total != 1000 {
		t.Errorf("expected total 1000 (VAT on pre-discount base), got %v", result.Total)
	}
}

func TestCalculateTotalsMultipleLines(t *testing.T) {
	result := CalculateTotals(
		[]PricingLine{
			{UnitPrice: 100, Quantity: 2},
			{UnitPrice: 25, Quantity: 4},
		},
		0, model.DiscountPercentage, 0,
	)

	if result.PreTax != 300 {
		t.Errorf("expected preTax 300, got %v", result.PreTax)
	}
	if result.Total != 300 {
		t.Errorf("expected total 300, got %v", result.Total)
	}
}

func TestCalculateTotalsNoLines(t *testing.T) {
	result := CalculateTotals(nil, 0, model.DiscountPercentage, 10)
	if result.Total != 0 {
		t.Errorf("expected total 0, got %v", result.Total)
	}
}

func TestLineSubtotal(t *testing.T) {
	if got := LineSubtotal(12.5, 3); got != 37.5 {
		t.Errorf("expected 37.5, got %v", got)
	}
}
