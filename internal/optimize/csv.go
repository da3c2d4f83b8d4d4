package optimize

import (
	"encoding/csv"
	"os"
	"strconv"
)

func WritePlanCSV(path string, plan Plan) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"day", "recommended_quantity"}); err != nil {
		return err
	}
	for _, day := range plan.Days() {
		row := []string{strconv.Itoa(day), strconv.Itoa(plan[day])}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
