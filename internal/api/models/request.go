package models

import "github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/config"

// SimulateRequest carries an inline scenario plus output options.
type SimulateRequest struct {
	Scenario config.Scenario `json:"scenario" binding:"required"`
	Options  SimulateOptions `json:"options,omitempty"`
}

// SimulateOptions controls which tables come back in the response.
// The summary and waste table are always included.
type SimulateOptions struct {
	IncludePurchases bool `json:"include_purchases,omitempty"`
	IncludePivots    bool `json:"include_pivots,omitempty"`
	IncludeSnapshots bool `json:"include_snapshots,omitempty"`
}

// OptimizeRequest asks for a recommended production plan.
// Product defaults to the scenario's first product.
type OptimizeRequest struct {
	Scenario config.Scenario `json:"scenario" binding:"required"`
	Product  string          `json:"product,omitempty"`
}
