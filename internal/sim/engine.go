package sim

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/model"
)

// Engine drives the day-by-day batch allocation for a set of products against a
// fixed distributor roster. Distributors are visited in ascending policy-window
// order: tight-window distributors have fewer eligible batches and are served
// before laxer ones consume shared stock. Ties keep their configured order.
type Engine struct {
	distributors  []model.Distributor
	transportRate decimal.Decimal
	horizon       int
}

func New(distributors []model.Distributor, transportRate float64, horizon int) (*Engine, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be > 0, got %d", horizon)
	}
	if transportRate < 0 {
		return nil, fmt.Errorf("transport rate must be >= 0, got %v", transportRate)
	}
	if len(distributors) == 0 {
		return nil, fmt.Errorf("no distributors")
	}
	sorted := make([]model.Distributor, len(distributors))
	copy(sorted, distributors)
	for i := range sorted {
		if err := sorted[i].Validate(); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PolicyDays < sorted[j].PolicyDays
	})
	return &Engine{
		distributors:  sorted,
		transportRate: decimal.NewFromFloat(transportRate),
		horizon:       horizon,
	}, nil
}

// ProductResult is the accumulator for one product's run. Each run owns its
// ledger and logs exclusively; totals are merged by the report package after
// all runs complete, so parallel products share no mutable state.
type ProductResult struct {
	Product   string
	Purchases []Purchase
	Waste     []WasteRow
	Snapshots []SnapshotRow

	TotalPurchased     float64
	TotalWaste         float64
	TotalTransportCost decimal.Decimal
}

// Run simulates every product. Products are independent, so they fan out on
// goroutines; results come back in input order so output is deterministic.
func (e *Engine) Run(products []model.Product) ([]*ProductResult, error) {
	results := make([]*ProductResult, len(products))
	errs := make([]error, len(products))

	var wg sync.WaitGroup
	for i := range products {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = e.RunProduct(products[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", products[i].Name, err)
		}
	}
	return results, nil
}

// RunProduct executes the day loop for a single product:
// produce, Start snapshot, expire, allocate, End snapshot.
func (e *Engine) RunProduct(p model.Product) (*ProductResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	ledger := NewLedger()
	res := &ProductResult{
		Product:            p.Name,
		TotalTransportCost: decimal.Zero,
	}
	wasted := make(map[int]float64)

	for day := 1; day <= e.horizon; day++ {
		if qty, ok := p.Plan[day]; ok && qty > 0 {
			ledger.Add(day, qty, p.ShelfLife)
		}

		res.Snapshots = append(res.Snapshots, SnapshotRow{
			Product:    p.Name,
			Day:        day,
			Phase:      PhaseStart,
			Quantities: ledger.Snapshot(),
		})

		// Expiry runs before allocation: a batch on its expiry day is not sellable.
		for _, b := range ledger.Expire(day) {
			wasted[b.Day] = b.Current
		}

		for i := range e.distributors {
			d := &e.distributors[i]
			if !d.Carries(p.Name) {
				continue
			}
			if !d.BuysOn(day) {
				continue
			}
			e.allocate(ledger, d, p.Name, day, res)
		}

		res.Snapshots = append(res.Snapshots, SnapshotRow{
			Product:    p.Name,
			Day:        day,
			Phase:      PhaseEnd,
			Quantities: ledger.Snapshot(),
		})
	}

	for day := 1; day <= e.horizon; day++ {
		initial := p.Plan[day]
		row := WasteRow{Product: p.Name, BatchDay: day}
		if initial > 0 {
			w := wasted[day]
			row.Initial = initial
			row.Waste = w
			row.WastePct = math.RoundToEven(w/initial*100*100) / 100
		}
		res.Waste = append(res.Waste, row)
		res.TotalWaste += row.Waste
	}

	return res, nil
}

// Horizon reports the configured number of simulation days.
func (e *Engine) Horizon() int { return e.horizon }

// Distributors returns the roster in allocation (ascending policy window) order.
func (e *Engine) Distributors() []model.Distributor { return e.distributors }
