// Package optimize recommends a daily production schedule by minimizing an
// estimated cost: a flat waste-proxy fraction of each day's production plus
// the transport cost of the purchases that production induces inside each
// distributor's policy window. The proxy is deliberately independent of the
// simulation engine's exact expiry model; this is a planning heuristic, not a
// predictor of the simulated outcome.
package optimize

import (
	"fmt"
	"sort"

	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/model"
)

// Defaults for the cost model when the scenario leaves them unset.
const (
	DefaultWasteCostPerUnit = 1.0
	DefaultWasteFraction    = 0.1
)

// Params configures the planning objective.
type Params struct {
	TransportRate    float64 // $/km/unit, shared with the simulation scenario
	WasteCostPerUnit float64 // $ per unit assumed wasted
	WasteFraction    float64 // flat fraction of daily production assumed wasted
}

func (p Params) withDefaults() Params {
	if p.WasteCostPerUnit == 0 {
		p.WasteCostPerUnit = DefaultWasteCostPerUnit
	}
	if p.WasteFraction == 0 {
		p.WasteFraction = DefaultWasteFraction
	}
	return p
}

// Plan maps simulation day to recommended production quantity.
type Plan map[int]int

// Days returns the plan's days ascending.
func (p Plan) Days() []int {
	days := make([]int, 0, len(p))
	for day := range p {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// Planner builds one integer program per invocation. Invocations are
// independent, so planners for different products may run concurrently.
type Planner struct {
	distributors []model.Distributor
	horizon      int
	params       Params
}

func New(distributors []model.Distributor, horizon int, params Params) (*Planner, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be > 0, got %d", horizon)
	}
	if len(distributors) == 0 {
		return nil, fmt.Errorf("no distributors")
	}
	for i := range distributors {
		if err := distributors[i].Validate(); err != nil {
			return nil, err
		}
	}
	return &Planner{
		distributors: distributors,
		horizon:      horizon,
		params:       params.withDefaults(),
	}, nil
}

// Recommend solves the integer program. One non-negative integer variable per
// day; production on closure days is forced to zero. When the solver fails
// (infeasible, unbounded, node budget exhausted) the plan is all zeros and ok
// is false; a failed solve is never an error.
func (p *Planner) Recommend() (Plan, bool) {
	c := p.dayCosts()

	var zeroVars []int
	for day := 1; day <= p.horizon; day++ {
		if model.IsClosureDay(day) {
			zeroVars = append(zeroVars, day-1)
		}
	}

	plan := make(Plan, p.horizon)
	for day := 1; day <= p.horizon; day++ {
		plan[day] = 0
	}

	x, _, err := branchBound(c, zeroVars)
	if err != nil {
		return plan, false
	}
	for day := 1; day <= p.horizon; day++ {
		plan[day] = int(x[day-1])
	}
	return plan, true
}

// dayCosts computes the objective coefficient per unit produced on each day:
// the waste proxy plus, for every distributor, proportion * rate for each
// non-closure day inside [day, day+policy) clipped to the horizon. Distance
// intentionally does not enter this term.
func (p *Planner) dayCosts() []float64 {
	c := make([]float64, p.horizon)
	for day := 1; day <= p.horizon; day++ {
		cost := p.params.WasteCostPerUnit * p.params.WasteFraction
		for i := range p.distributors {
			d := &p.distributors[i]
			end := day + d.PolicyDays
			if end > p.horizon+1 {
				end = p.horizon + 1
			}
			for t := day; t < end; t++ {
				if !model.IsClosureDay(t) {
					cost += d.Proportion * p.params.TransportRate
				}
			}
		}
		c[day-1] = cost
	}
	return c
}
