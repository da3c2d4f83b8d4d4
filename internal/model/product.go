package model

import (
	"errors"
	"fmt"
)

// ProductionPlan maps a production day (1-based) to the quantity produced that day.
// Days without an entry (or with a zero entry) produce no batch.
type ProductionPlan map[int]float64

// Product is one perishable good. A batch produced on day d is sellable through
// day d+ShelfLife-1 and is removed (remainder becoming waste) at the start of
// that day's transactions.
type Product struct {
	Name      string
	ShelfLife int
	Plan      ProductionPlan
}

func NewProduct(name string, shelfLife int, plan ProductionPlan) (*Product, error) {
	p := &Product{
		Name:      name,
		ShelfLife: shelfLife,
		Plan:      plan,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return errors.New("product name is required")
	}
	if p.ShelfLife <= 0 {
		return fmt.Errorf("product %q: ShelfLife must be > 0", p.Name)
	}
	for day, qty := range p.Plan {
		if day < 1 {
			return fmt.Errorf("product %q: production day %d must be >= 1", p.Name, day)
		}
		if qty < 0 {
			return fmt.Errorf("product %q: production quantity for day %d must be >= 0", p.Name, day)
		}
	}
	// An empty plan is legal: the day loop becomes a no-op with zero waste.
	return nil
}

// ExpiryDay is the last day a batch produced on productionDay still exists.
func (p *Product) ExpiryDay(productionDay int) int {
	return productionDay + p.ShelfLife - 1
}
