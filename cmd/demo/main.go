package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/model"
	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/optimize"
	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/report"
	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/sim"
)

// Demo:
// - Build a two-product, two-distributor scenario in code
// - Run the simulation and print the purchase ledger and waste table
// - Run the production optimizer for the first product
func main() {
	n := flag.Int("n", 20, "Number of purchase ledger rows to print")
	outDir := flag.String("out", "", "Optional directory to also write CSV tables")
	flag.Parse()

	products := []model.Product{
		{
			Name:      "Milk",
			ShelfLife: 3,
			Plan:      model.ProductionPlan{1: 120, 3: 90, 5: 100, 8: 110},
		},
		{
			Name:      "Yogurt",
			ShelfLife: 5,
			Plan:      model.ProductionPlan{2: 60, 6: 80},
		},
	}

	everyday := [model.DaysPerWeek]bool{true, true, true, true, true, true, true}
	distributors := []model.Distributor{
		{
			Name:          "CornerShop",
			PolicyDays:    1,
			Proportion:    0.25,
			DistanceKM:    5,
			WeeklyPattern: everyday,
			Preferred:     []string{"Milk"},
		},
		{
			Name:          "Supermart",
			PolicyDays:    3,
			Proportion:    0.40,
			DistanceKM:    22,
			WeeklyPattern: model.DefaultWeeklyPattern(),
			Preferred:     []string{"Milk", "Yogurt"},
		},
	}

	const (
		transportRate = 0.01
		horizon       = 14
	)

	engine, err := sim.New(distributors, transportRate, horizon)
	if err != nil {
		panic(err)
	}
	results, err := engine.Run(products)
	if err != nil {
		panic(err)
	}
	tables := report.Build(results)

	fmt.Printf("Simulated %d products over %d days\n\n", len(products), horizon)

	fmt.Println("Purchase ledger:")
	for i, p := range tables.Purchases {
		if i >= *n {
			fmt.Printf("  ... %d more rows\n", len(tables.Purchases)-*n)
			break
		}
		fmt.Printf("  day %2d  %-10s %-10s batch=%2d qty=%5.0f age=%d cost=$%s\n",
			p.Day, p.Product, p.Distributor, p.BatchDay, p.Quantity, p.ShelfAge,
			p.TransportCost.StringFixed(2))
	}

	fmt.Println("\nWaste by batch:")
	for _, w := range tables.Waste {
		if w.Initial == 0 {
			continue
		}
		fmt.Printf("  %-10s day %2d  initial=%5.0f waste=%5.0f (%.2f%%)\n",
			w.Product, w.BatchDay, w.Initial, w.Waste, w.WastePct)
	}

	fmt.Printf("\nTotals: purchased=%.0f waste=%.0f transport=$%s\n",
		tables.TotalPurchased, tables.TotalWaste, tables.TotalTransportCost.StringFixed(2))

	planner, err := optimize.New(distributors, horizon, optimize.Params{TransportRate: transportRate})
	if err != nil {
		panic(err)
	}
	plan, ok := planner.Recommend()
	fmt.Printf("\nOptimized plan for %s (feasible=%v):\n", products[0].Name, ok)
	for _, day := range plan.Days() {
		fmt.Printf("  day %2d: %d\n", day, plan[day])
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			panic(err)
		}
		if err := sim.WritePurchasesCSV(filepath.Join(*outDir, "purchases.csv"), tables.Purchases); err != nil {
			panic(err)
		}
		if err := sim.WriteWasteCSV(filepath.Join(*outDir, "waste.csv"), tables.Waste); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV tables to %s\n", *outDir)
	}
}
