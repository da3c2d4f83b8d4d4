package sim

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/model"
)

// roundHalfEven is the single rounding mode for purchase quantities.
// Half-to-even keeps repeated proportional splits from drifting upward.
func roundHalfEven(x float64) float64 {
	return math.RoundToEven(x)
}

// allocate runs one distributor's purchase against the post-expiry ledger.
//
// The requested total is round(proportion * total eligible stock). It is split
// across eligible batches oldest-first: each batch except the newest takes its
// rounded proportional share, capped at its own stock and at the unallocated
// remainder; the newest batch absorbs whatever is left, capped at its stock.
// That cap structure makes over-allocation impossible and parks all rounding
// drift in one place.
func (e *Engine) allocate(ledger *Ledger, d *model.Distributor, product string, day int, res *ProductResult) {
	eligible := ledger.Eligible(day, d.PolicyDays)
	if len(eligible) == 0 {
		return
	}

	totalAvailable := 0.0
	for _, b := range eligible {
		totalAvailable += b.Current
	}

	totalPurchase := roundHalfEven(d.Proportion * totalAvailable)
	if totalPurchase <= 0 {
		return
	}

	remaining := totalPurchase
	for _, b := range eligible[:len(eligible)-1] {
		share := roundHalfEven(b.Current / totalAvailable * totalPurchase)
		share = math.Min(share, b.Current)
		share = math.Min(share, remaining)
		b.Current -= share
		remaining -= share
		if share > 0 {
			e.record(res, product, day, d, b.Day, share)
		}
	}

	last := eligible[len(eligible)-1]
	share := math.Min(remaining, last.Current)
	last.Current -= share
	if share > 0 {
		e.record(res, product, day, d, last.Day, share)
	}

	ledger.DropEmpty()
}

func (e *Engine) record(res *ProductResult, product string, day int, d *model.Distributor, batchDay int, qty float64) {
	cost := decimal.NewFromFloat(qty).
		Mul(decimal.NewFromFloat(d.DistanceKM)).
		Mul(e.transportRate)

	res.Purchases = append(res.Purchases, Purchase{
		Product:       product,
		Day:           day,
		Distributor:   d.Name,
		BatchDay:      batchDay,
		Quantity:      qty,
		ShelfAge:      day - batchDay,
		PolicyDays:    d.PolicyDays,
		Proportion:    d.Proportion,
		TransportCost: cost,
	})
	res.TotalPurchased += qty
	res.TotalTransportCost = res.TotalTransportCost.Add(cost)
}
