package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/config"
	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/optimize"
	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/report"
	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "optimize":
		cmdOptimize(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config scenario.yaml --out results/")
	fmt.Println("  cli optimize --config scenario.yaml --product NAME --out results/plan.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate writes purchases.csv, waste.csv, summary.csv, and per-product pivot/inventory CSVs")
	fmt.Println("  - optimize writes the recommended day-by-day production plan")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to scenario YAML/JSON")
	outDir := fs.String("out", "results", "Output directory for CSV tables")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	scenario, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	products, err := scenario.ModelProducts()
	if err != nil {
		panic(err)
	}
	distributors, err := scenario.ModelDistributors()
	if err != nil {
		panic(err)
	}

	engine, err := sim.New(distributors, scenario.TransportRate, scenario.SimDays)
	if err != nil {
		panic(err)
	}
	results, err := engine.Run(products)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}

	tables := report.Build(results)
	if err := sim.WritePurchasesCSV(filepath.Join(*outDir, "purchases.csv"), tables.Purchases); err != nil {
		panic(err)
	}
	if err := sim.WriteWasteCSV(filepath.Join(*outDir, "waste.csv"), tables.Waste); err != nil {
		panic(err)
	}
	if err := report.WriteSummaryCSV(filepath.Join(*outDir, "summary.csv"), tables, scenario.SimDays, len(products)); err != nil {
		panic(err)
	}
	for _, r := range results {
		pivot := report.BuildPivot(r.Purchases, scenario.SimDays)
		if err := report.WritePivotCSV(filepath.Join(*outDir, "batch_pivot_"+r.Product+".csv"), pivot); err != nil {
			panic(err)
		}
		if err := sim.WriteSnapshotsCSV(filepath.Join(*outDir, "inventory_"+r.Product+".csv"), r.Snapshots); err != nil {
			panic(err)
		}
	}

	fmt.Printf("Simulated %d products over %d days\n", len(products), scenario.SimDays)
	fmt.Printf("Purchases=%d rows  Total purchased=%.0f  Total waste=%.0f\n",
		len(tables.Purchases), tables.TotalPurchased, tables.TotalWaste)
	fmt.Printf("Total transport cost=$%s\n", tables.TotalTransportCost.StringFixed(2))
	fmt.Printf("Wrote CSV tables to %s\n", *outDir)
}

func cmdOptimize(args []string) {
	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to scenario YAML/JSON")
	product := fs.String("product", "", "Product to plan for (default: first in scenario)")
	outPath := fs.String("out", "results/plan.csv", "Output CSV path")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	scenario, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	distributors, err := scenario.ModelDistributors()
	if err != nil {
		panic(err)
	}

	name := *product
	if name == "" {
		name = scenario.Products[0].Name
	}

	planner, err := optimize.New(distributors, scenario.SimDays, scenario.OptimizerParams())
	if err != nil {
		panic(err)
	}
	plan, ok := planner.Recommend()
	if !ok {
		fmt.Println("warning: solver found no recommendation, plan is all zeros")
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := optimize.WritePlanCSV(*outPath, plan); err != nil {
		panic(err)
	}

	fmt.Printf("Optimized production plan for %s (%d days)\n", name, scenario.SimDays)
	for _, day := range plan.Days() {
		if plan[day] > 0 {
			fmt.Printf("  day %2d: produce %d\n", day, plan[day])
		}
	}
	fmt.Printf("Wrote %s\n", *outPath)
}
