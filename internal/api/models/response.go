package models

import "github.com/shopspring/decimal"

// SimulateResponse is the result of one simulation run.
type SimulateResponse struct {
	Status    string                `json:"status"`
	Summary   SimulationSummary     `json:"summary"`
	Waste     []WasteRow            `json:"waste"`
	Purchases []PurchaseRow         `json:"purchases,omitempty"`
	Pivots    map[string]PivotTable `json:"batch_pivots,omitempty"`
	Snapshots []SnapshotRow         `json:"snapshots,omitempty"`
}

// SimulationSummary contains the merged run totals.
type SimulationSummary struct {
	SimDays            int             `json:"sim_days"`
	Products           int             `json:"products"`
	TotalPurchased     float64         `json:"total_purchased"`
	TotalWaste         float64         `json:"total_waste"`
	TotalTransportCost decimal.Decimal `json:"total_transport_cost"`
}

// PurchaseRow is one allocation event in the purchase ledger.
type PurchaseRow struct {
	Product       string          `json:"product"`
	Day           int             `json:"day"`
	Distributor   string          `json:"distributor"`
	BatchDay      int             `json:"batch_day"`
	Quantity      float64         `json:"quantity"`
	ShelfAge      int             `json:"shelf_age"`
	PolicyDays    int             `json:"policy_days"`
	Proportion    float64         `json:"proportion"`
	TransportCost decimal.Decimal `json:"transport_cost"`
}

// WasteRow is the spoilage outcome of one production day.
type WasteRow struct {
	Product  string  `json:"product"`
	BatchDay int     `json:"batch_day"`
	Initial  float64 `json:"initial"`
	Waste    float64 `json:"waste"`
	WastePct float64 `json:"waste_pct"`
}

// PivotTable sums purchased quantity per (distributor, batch day); one per product.
type PivotTable struct {
	Days []int                `json:"days"`
	Rows map[string][]float64 `json:"rows"` // distributor -> quantity per day, zero-filled
}

// SnapshotRow is one inventory audit entry ("Start" or "End" of a day).
type SnapshotRow struct {
	Product    string             `json:"product"`
	Day        int                `json:"day"`
	Phase      string             `json:"phase"`
	Quantities map[string]float64 `json:"quantities"` // batch day (stringified) -> remaining
}

// OptimizeResponse is the recommended production plan for one product.
type OptimizeResponse struct {
	Status   string    `json:"status"`
	Product  string    `json:"product"`
	Feasible bool      `json:"feasible"` // false: solver failed, plan is all zeros
	Plan     []PlanRow `json:"plan"`
}

type PlanRow struct {
	Day      int `json:"day"`
	Quantity int `json:"recommended_quantity"`
}

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
