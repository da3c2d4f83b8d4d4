package report

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteSummaryCSV writes the run-level totals as a two-column key/value table.
func WriteSummaryCSV(path string, t Tables, simDays, products int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	rows := [][]string{
		{"metric", "value"},
		{"sim_days", strconv.Itoa(simDays)},
		{"products", strconv.Itoa(products)},
		{"purchase_events", strconv.Itoa(len(t.Purchases))},
		{"total_purchased", strconv.FormatFloat(t.TotalPurchased, 'f', -1, 64)},
		{"total_waste", strconv.FormatFloat(t.TotalWaste, 'f', -1, 64)},
		{"total_transport_cost", t.TotalTransportCost.StringFixed(2)},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
