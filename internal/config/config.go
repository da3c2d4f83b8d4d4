package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/model"
	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/optimize"
)

// Scenario is the on-disk configuration shape (YAML, or JSON via the API and
// .json files). It is the single input boundary of the core: product catalog,
// distributor roster, and the scalar knobs.
type Scenario struct {
	SimDays       int                 `yaml:"sim_days" json:"sim_days"`
	TransportRate float64             `yaml:"transport_rate" json:"transport_rate"`
	Products      []ProductConfig     `yaml:"products" json:"products"`
	Distributors  []DistributorConfig `yaml:"distributors" json:"distributors"`
	Optimizer     OptimizerConfig     `yaml:"optimizer" json:"optimizer,omitempty"`
}

type ProductConfig struct {
	Name           string          `yaml:"name" json:"name"`
	ShelfLife      int             `yaml:"shelf_life" json:"shelf_life"`
	ProductionPlan map[int]float64 `yaml:"production_plan" json:"production_plan"`
}

type DistributorConfig struct {
	Name              string   `yaml:"name" json:"name"`
	PolicyDays        int      `yaml:"policy_days" json:"policy_days"`
	Proportion        float64  `yaml:"proportion" json:"proportion"`
	DistanceKM        float64  `yaml:"distance_km" json:"distance_km"`
	WeeklyPattern     []bool   `yaml:"weekly_pattern" json:"weekly_pattern,omitempty"`
	PreferredProducts []string `yaml:"preferred_products" json:"preferred_products"`
}

type OptimizerConfig struct {
	WasteCostPerUnit float64 `yaml:"waste_cost_per_unit" json:"waste_cost_per_unit,omitempty"`
	WasteFraction    float64 `yaml:"waste_fraction" json:"waste_fraction,omitempty"`
}

// Load reads, defaults, and validates a scenario file.
func Load(path string) (*Scenario, error) {
	s, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadUnchecked loads a scenario without defaulting or validation.
// Useful for debugging/printing partial scenarios.
func LoadUnchecked(path string) (*Scenario, error) {
	if strings.HasSuffix(path, ".json") {
		return loadJSON(path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ApplyDefaults fills omitted weekly patterns (buy every day but the closure
// day) and optimizer cost constants.
func (s *Scenario) ApplyDefaults() {
	for i := range s.Distributors {
		if len(s.Distributors[i].WeeklyPattern) == 0 {
			def := model.DefaultWeeklyPattern()
			s.Distributors[i].WeeklyPattern = def[:]
		}
	}
	if s.Optimizer.WasteCostPerUnit == 0 {
		s.Optimizer.WasteCostPerUnit = optimize.DefaultWasteCostPerUnit
	}
	if s.Optimizer.WasteFraction == 0 {
		s.Optimizer.WasteFraction = optimize.DefaultWasteFraction
	}
}

func (s *Scenario) Validate() error {
	if s == nil {
		return errors.New("scenario is nil")
	}
	if s.SimDays <= 0 {
		return errors.New("sim_days must be > 0")
	}
	if s.TransportRate < 0 {
		return errors.New("transport_rate must be >= 0")
	}
	if len(s.Products) == 0 {
		return errors.New("at least one product is required")
	}
	if len(s.Distributors) == 0 {
		return errors.New("at least one distributor is required")
	}

	productNames := make(map[string]bool, len(s.Products))
	for _, pc := range s.Products {
		if productNames[pc.Name] {
			return fmt.Errorf("duplicate product %q", pc.Name)
		}
		productNames[pc.Name] = true
		// Validate by constructing the model type.
		if _, err := model.NewProduct(pc.Name, pc.ShelfLife, pc.ProductionPlan); err != nil {
			return fmt.Errorf("product config invalid: %w", err)
		}
	}

	distNames := make(map[string]bool, len(s.Distributors))
	for _, dc := range s.Distributors {
		if distNames[dc.Name] {
			return fmt.Errorf("duplicate distributor %q", dc.Name)
		}
		distNames[dc.Name] = true
		if len(dc.WeeklyPattern) != 0 && len(dc.WeeklyPattern) != model.DaysPerWeek {
			return fmt.Errorf("distributor %q: weekly_pattern must have %d entries", dc.Name, model.DaysPerWeek)
		}
		if _, err := dc.ToModel(); err != nil {
			return fmt.Errorf("distributor config invalid: %w", err)
		}
		for _, name := range dc.PreferredProducts {
			if !productNames[name] {
				return fmt.Errorf("distributor %q prefers unknown product %q", dc.Name, name)
			}
		}
	}

	if s.Optimizer.WasteCostPerUnit < 0 {
		return errors.New("optimizer.waste_cost_per_unit must be >= 0")
	}
	if s.Optimizer.WasteFraction < 0 || s.Optimizer.WasteFraction > 1 {
		return errors.New("optimizer.waste_fraction must be in [0, 1]")
	}
	return nil
}

func (pc ProductConfig) ToModel() (model.Product, error) {
	p, err := model.NewProduct(pc.Name, pc.ShelfLife, pc.ProductionPlan)
	if err != nil {
		return model.Product{}, err
	}
	return *p, nil
}

func (dc DistributorConfig) ToModel() (model.Distributor, error) {
	pattern := model.DefaultWeeklyPattern()
	if len(dc.WeeklyPattern) == model.DaysPerWeek {
		copy(pattern[:], dc.WeeklyPattern)
	}
	d, err := model.NewDistributor(dc.Name, dc.PolicyDays, dc.Proportion, dc.DistanceKM, pattern, dc.PreferredProducts)
	if err != nil {
		return model.Distributor{}, err
	}
	return *d, nil
}

// ModelProducts converts the catalog in configured order.
func (s *Scenario) ModelProducts() ([]model.Product, error) {
	out := make([]model.Product, 0, len(s.Products))
	for _, pc := range s.Products {
		p, err := pc.ToModel()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ModelDistributors converts the roster in configured order. Allocation
// priority (ascending policy window) is applied by the engine, not here.
func (s *Scenario) ModelDistributors() ([]model.Distributor, error) {
	out := make([]model.Distributor, 0, len(s.Distributors))
	for _, dc := range s.Distributors {
		d, err := dc.ToModel()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// OptimizerParams bundles the cost model for the production planner.
func (s *Scenario) OptimizerParams() optimize.Params {
	return optimize.Params{
		TransportRate:    s.TransportRate,
		WasteCostPerUnit: s.Optimizer.WasteCostPerUnit,
		WasteFraction:    s.Optimizer.WasteFraction,
	}
}
