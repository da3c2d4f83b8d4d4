// Package report turns per-product simulation output into cross-product
// tables and merges the per-product cost accumulators.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/sim"
)

// Tables is the combined, presentation-ready view of a full run.
type Tables struct {
	Purchases []sim.Purchase // all products, in product order then day order
	Waste     []sim.WasteRow // one row per product per day

	TotalPurchased     float64
	TotalWaste         float64
	TotalTransportCost decimal.Decimal
}

// Build concatenates per-product results and merges their accumulators.
// Results must be in the caller's product order; concatenation preserves it.
func Build(results []*sim.ProductResult) Tables {
	t := Tables{TotalTransportCost: decimal.Zero}
	for _, r := range results {
		t.Purchases = append(t.Purchases, r.Purchases...)
		t.Waste = append(t.Waste, r.Waste...)
		t.TotalPurchased += r.TotalPurchased
		t.TotalWaste += r.TotalWaste
		t.TotalTransportCost = t.TotalTransportCost.Add(r.TotalTransportCost)
	}
	return t
}
