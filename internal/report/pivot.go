package report

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"

	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/sim"
)

// Pivot sums purchased quantity per (distributor, batch day) for one product.
// Columns cover every simulation day 1..horizon, zero-filled where no batch
// was bought; rows are distributors sorted by name.
type Pivot struct {
	Days         []int
	Distributors []string
	Quantity     map[string]map[int]float64
}

func BuildPivot(purchases []sim.Purchase, horizon int) Pivot {
	p := Pivot{
		Days:     make([]int, horizon),
		Quantity: make(map[string]map[int]float64),
	}
	for day := 1; day <= horizon; day++ {
		p.Days[day-1] = day
	}

	for _, rec := range purchases {
		row, ok := p.Quantity[rec.Distributor]
		if !ok {
			row = make(map[int]float64)
			p.Quantity[rec.Distributor] = row
			p.Distributors = append(p.Distributors, rec.Distributor)
		}
		row[rec.BatchDay] += rec.Quantity
	}
	sort.Strings(p.Distributors)
	return p
}

// Get returns the summed quantity for a (distributor, batch day) cell.
func (p Pivot) Get(distributor string, batchDay int) float64 {
	return p.Quantity[distributor][batchDay]
}

func WritePivotCSV(path string, p Pivot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"distributor"}
	for _, day := range p.Days {
		header = append(header, strconv.Itoa(day))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, name := range p.Distributors {
		row := []string{name}
		for _, day := range p.Days {
			row = append(row, strconv.FormatFloat(p.Get(name, day), 'f', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
