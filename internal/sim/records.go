package sim

import "github.com/shopspring/decimal"

// Phase marks whether an inventory snapshot was taken before or after the
// day's transactions. Keep these values stable; they go straight to CSV.
type Phase string

const (
	PhaseStart Phase = "Start"
	PhaseEnd   Phase = "End"
)

// Purchase is one nonzero allocation event.
// This is the primary artifact for "what happened" in a run.
type Purchase struct {
	Product     string
	Day         int
	Distributor string
	BatchDay    int
	Quantity    float64
	ShelfAge    int // Day - BatchDay at purchase time; always < PolicyDays
	PolicyDays  int
	Proportion  float64

	TransportCost decimal.Decimal // Quantity * distance * transport rate
}

// WasteRow is the spoilage outcome of one production day.
// Days without production get a zero-filled row.
type WasteRow struct {
	Product  string
	BatchDay int
	Initial  float64
	Waste    float64
	WastePct float64 // Waste/Initial*100 rounded to 2 decimals; 0 when Initial is 0
}

// SnapshotRow is one audit-trail entry: remaining quantity per live batch,
// keyed by batch production day. Two per day (Start/End).
type SnapshotRow struct {
	Product    string
	Day        int
	Phase      Phase
	Quantities map[int]float64
}
