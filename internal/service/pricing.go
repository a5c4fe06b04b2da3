package service

import "go-warehouse-api/internal/model"

// PricingLine adalah satu baris untuk kalkulasi total
type PricingLine struct {
	UnitPrice float64
	Quantity  int
}

// PricingResult hasil kalkulasi agregat satu transaksi
type PricingResult struct {
	PreTax         float64 `json:"pre_tax"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`
}

// LineSubtotal = unitPrice * quantity, sebelum diskon/VAT
func LineSubtotal(unitPrice float64, quantity int) float64 {
	return unitPrice * float64(quantity)
}

// CalculateTotals menghitung total transaksi dari baris-barisnya.
// Diskon per baris TIDAK ikut dihitung di sini, hanya diskon agregat.
// VAT dihitung dari jumlah sebelum diskon, bukan setelah diskon.
func CalculateTotals(lines []PricingLine, discount float64, discountUnit model.DiscountUnit, vat float64) PricingResult {
	var preTax float64
	for _, line := range lines {
		preTax += LineSubtotal(line.UnitPrice, line.Quantity)
	}

	var discountAmount float64
	if discountUnit == model.DiscountPercentage {
		discountAmount = preTax * discount / 100
	} else {
		discountAmount = discount
	}

	total := preTax - discountAmount + preTax*vat/100

	return PricingResult{
		PreTax:         preTax,
		DiscountAmount: discountAmount,
		Total:          total,
	}
}
