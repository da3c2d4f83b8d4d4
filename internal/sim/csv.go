package sim

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"
)

func WritePurchasesCSV(path string, purchases []Purchase) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"product",
		"day",
		"distributor",
		"batch_day",
		"quantity",
		"shelf_age",
		"policy_days",
		"proportion",
		"transport_cost",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range purchases {
		row := []string{
			p.Product,
			strconv.Itoa(p.Day),
			p.Distributor,
			strconv.Itoa(p.BatchDay),
			fmtQty(p.Quantity),
			strconv.Itoa(p.ShelfAge),
			strconv.Itoa(p.PolicyDays),
			strconv.FormatFloat(p.Proportion, 'f', 2, 64),
			p.TransportCost.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func WriteWasteCSV(path string, waste []WasteRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"product", "batch_day", "initial", "waste", "waste_pct"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range waste {
		row := []string{
			r.Product,
			strconv.Itoa(r.BatchDay),
			fmtQty(r.Initial),
			fmtQty(r.Waste),
			strconv.FormatFloat(r.WastePct, 'f', 2, 64) + "%",
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// WriteSnapshotsCSV writes the inventory audit trail. Batch columns are the
// union of batch days seen across all snapshots, ascending, headed q<day>.
func WriteSnapshotsCSV(path string, snapshots []SnapshotRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	seen := map[int]bool{}
	for _, s := range snapshots {
		for day := range s.Quantities {
			seen[day] = true
		}
	}
	batchDays := make([]int, 0, len(seen))
	for day := range seen {
		batchDays = append(batchDays, day)
	}
	sort.Ints(batchDays)

	header := []string{"product", "day", "phase"}
	for _, day := range batchDays {
		header = append(header, "q"+strconv.Itoa(day))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range snapshots {
		row := []string{s.Product, strconv.Itoa(s.Day), string(s.Phase)}
		for _, day := range batchDays {
			if qty, ok := s.Quantities[day]; ok {
				row = append(row, fmtQty(qty))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// fmtQty prints whole quantities without a decimal tail, fractional ones with
// enough digits to round-trip.
func fmtQty(x float64) string {
	if x == float64(int64(x)) {
		return strconv.FormatInt(int64(x), 10)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
