package sim

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/model"
)

func everyday() [model.DaysPerWeek]bool {
	return [model.DaysPerWeek]bool{true, true, true, true, true, true, true}
}

func singleDistributor(policyDays int, proportion, distanceKM float64, products ...string) model.Distributor {
	return model.Distributor{
		Name:          "D1",
		PolicyDays:    policyDays,
		Proportion:    proportion,
		DistanceKM:    distanceKM,
		WeeklyPattern: everyday(),
		Preferred:     products,
	}
}

// Reference scenario: shelf life 3, 100 units on day 1, one distributor with a
// 2-day window buying half the eligible stock daily.
func TestRunProduct_ReferenceScenario(t *testing.T) {
	engine, err := New([]model.Distributor{singleDistributor(2, 0.5, 10, "Milk")}, 0.01, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	res, err := engine.RunProduct(model.Product{
		Name:      "Milk",
		ShelfLife: 3,
		Plan:      model.ProductionPlan{1: 100},
	})
	if err != nil {
		t.Fatalf("RunProduct failed: %v", err)
	}

	if len(res.Purchases) != 2 {
		t.Fatalf("expected 2 purchases, got %d: %+v", len(res.Purchases), res.Purchases)
	}

	day1 := res.Purchases[0]
	if day1.Day != 1 || day1.Quantity != 50 || day1.BatchDay != 1 || day1.ShelfAge != 0 {
		t.Errorf("unexpected day-1 purchase: %+v", day1)
	}
	day2 := res.Purchases[1]
	if day2.Day != 2 || day2.Quantity != 25 || day2.ShelfAge != 1 {
		t.Errorf("unexpected day-2 purchase: %+v", day2)
	}

	if res.TotalPurchased != 75 {
		t.Errorf("total purchased = %v, want 75", res.TotalPurchased)
	}
	if res.TotalWaste != 25 {
		t.Errorf("total waste = %v, want 25", res.TotalWaste)
	}

	w := res.Waste[0]
	if w.BatchDay != 1 || w.Initial != 100 || w.Waste != 25 || w.WastePct != 25.0 {
		t.Errorf("unexpected waste row: %+v", w)
	}
	for _, row := range res.Waste[1:] {
		if row.Initial != 0 || row.Waste != 0 {
			t.Errorf("non-production day should be zero-filled: %+v", row)
		}
	}

	// 50*10*0.01 + 25*10*0.01 = 7.5
	want := decimal.RequireFromString("7.5")
	if !res.TotalTransportCost.Equal(want) {
		t.Errorf("transport cost = %s, want %s", res.TotalTransportCost, want)
	}

	// The batch expires before day-3 allocations: Start snapshot still shows
	// it, End snapshot does not.
	var day3Start, day3End SnapshotRow
	for _, s := range res.Snapshots {
		if s.Day == 3 && s.Phase == PhaseStart {
			day3Start = s
		}
		if s.Day == 3 && s.Phase == PhaseEnd {
			day3End = s
		}
	}
	if day3Start.Quantities[1] != 25 {
		t.Errorf("day-3 Start snapshot = %v, want batch 1 at 25", day3Start.Quantities)
	}
	if len(day3End.Quantities) != 0 {
		t.Errorf("day-3 End snapshot should be empty, got %v", day3End.Quantities)
	}
	if len(res.Snapshots) != 10 {
		t.Errorf("expected 2 snapshots per day over 5 days, got %d", len(res.Snapshots))
	}
}

func TestRunProduct_NoPurchaseOnClosedDays(t *testing.T) {
	// Calendar closed on all but the first weekly day, plus the fixed closure day.
	d := singleDistributor(7, 0.5, 1, "Milk")
	d.WeeklyPattern = [model.DaysPerWeek]bool{true, false, false, false, false, false, true}

	engine, err := New([]model.Distributor{d}, 0.01, 21)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := engine.RunProduct(model.Product{
		Name:      "Milk",
		ShelfLife: 21,
		Plan:      model.ProductionPlan{1: 1000},
	})
	if err != nil {
		t.Fatalf("RunProduct failed: %v", err)
	}

	if len(res.Purchases) == 0 {
		t.Fatal("expected purchases on open days")
	}
	for _, p := range res.Purchases {
		if model.IsClosureDay(p.Day) {
			t.Errorf("purchase on closure day %d", p.Day)
		}
		if (p.Day-1)%model.DaysPerWeek != 0 {
			t.Errorf("purchase on calendar-closed day %d", p.Day)
		}
	}
}

func TestRunProduct_PolicyWindowRespected(t *testing.T) {
	engine, err := New([]model.Distributor{singleDistributor(2, 0.3, 1, "Milk")}, 0.01, 10)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := engine.RunProduct(model.Product{
		Name:      "Milk",
		ShelfLife: 6,
		Plan:      model.ProductionPlan{1: 100, 4: 100},
	})
	if err != nil {
		t.Fatalf("RunProduct failed: %v", err)
	}
	for _, p := range res.Purchases {
		if p.ShelfAge >= p.PolicyDays {
			t.Errorf("purchase with shelf age %d >= policy window %d: %+v", p.ShelfAge, p.PolicyDays, p)
		}
	}
}

// Within one distributor's allocation on one day, batches are consumed
// oldest-first and the oldest eligible batch is never skipped.
func TestRunProduct_FIFOWithinDay(t *testing.T) {
	engine, err := New([]model.Distributor{singleDistributor(5, 0.5, 1, "Milk")}, 0.01, 6)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := engine.RunProduct(model.Product{
		Name:      "Milk",
		ShelfLife: 10,
		Plan:      model.ProductionPlan{1: 40, 2: 40, 3: 40},
	})
	if err != nil {
		t.Fatalf("RunProduct failed: %v", err)
	}

	lastDay := 0
	lastBatch := 0
	for _, p := range res.Purchases {
		if p.Day != lastDay {
			lastDay = p.Day
			lastBatch = 0
		}
		if p.BatchDay < lastBatch {
			t.Errorf("day %d: batch %d allocated after younger batch %d", p.Day, p.BatchDay, lastBatch)
		}
		lastBatch = p.BatchDay
	}
}

// The per-batch allocations of one visit must sum exactly to
// round(proportion * total eligible stock), with the drift in the newest batch.
func TestRunProduct_RoundingAbsorption(t *testing.T) {
	engine, err := New([]model.Distributor{singleDistributor(10, 0.5, 1, "Milk")}, 0.01, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := engine.RunProduct(model.Product{
		Name:      "Milk",
		ShelfLife: 10,
		Plan:      model.ProductionPlan{1: 33, 2: 34},
	})
	if err != nil {
		t.Fatalf("RunProduct failed: %v", err)
	}

	// Day 1: round-half-even(0.5*33) = 16, leaving 17.
	if res.Purchases[0].Quantity != 16 {
		t.Fatalf("day-1 purchase = %v, want 16 (half-even)", res.Purchases[0].Quantity)
	}

	// Day 2: stock is 17+34=51, request round-half-even(25.5) = 26.
	// Oldest batch takes round(17/51*26) = 9; the newest absorbs the rest.
	var day2 []Purchase
	for _, p := range res.Purchases {
		if p.Day == 2 {
			day2 = append(day2, p)
		}
	}
	if len(day2) != 2 {
		t.Fatalf("expected 2 allocations on day 2, got %d", len(day2))
	}
	if day2[0].BatchDay != 1 || day2[0].Quantity != 9 {
		t.Errorf("oldest batch allocation = %+v, want 9 from batch 1", day2[0])
	}
	if day2[1].BatchDay != 2 || day2[1].Quantity != 17 {
		t.Errorf("newest batch allocation = %+v, want 17 from batch 2", day2[1])
	}
	if day2[0].Quantity+day2[1].Quantity != 26 {
		t.Errorf("day-2 allocations sum to %v, want 26", day2[0].Quantity+day2[1].Quantity)
	}
}

// Waste percentages round half to even like every other rounding site.
func TestRunProduct_WastePctHalfEven(t *testing.T) {
	engine, err := New([]model.Distributor{singleDistributor(5, 0.6, 1, "Milk")}, 0.01, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := engine.RunProduct(model.Product{
		Name:      "Milk",
		ShelfLife: 3,
		Plan:      model.ProductionPlan{1: 32},
	})
	if err != nil {
		t.Fatalf("RunProduct failed: %v", err)
	}

	// Day 1 sells 19 of 32, day 2 sells 8 of 13, day 3 expires the last 5.
	// 5/32 is exactly 15.625%, which lands on 15.62, not 15.63.
	if res.TotalWaste != 5 {
		t.Fatalf("total waste = %v, want 5", res.TotalWaste)
	}
	if res.Waste[0].WastePct != 15.62 {
		t.Errorf("waste pct = %v, want 15.62 (half-even)", res.Waste[0].WastePct)
	}
}

func TestRoundHalfEven(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.5, 0},
		{1.5, 2},
		{2.5, 2},
		{16.5, 16},
		{25.5, 26},
		{16.75, 17},
		{3.2, 3},
	}
	for _, c := range cases {
		if got := roundHalfEven(c.in); got != c.want {
			t.Errorf("roundHalfEven(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

// Conservation: initial == waste + allocations + remaining at horizon end.
func TestRunProduct_Conservation(t *testing.T) {
	dists := []model.Distributor{
		singleDistributor(1, 0.25, 5, "Milk"),
		{
			Name:          "D2",
			PolicyDays:    3,
			Proportion:    0.4,
			DistanceKM:    22,
			WeeklyPattern: model.DefaultWeeklyPattern(),
			Preferred:     []string{"Milk"},
		},
	}
	engine, err := New(dists, 0.01, 14)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	p := model.Product{
		Name:      "Milk",
		ShelfLife: 3,
		Plan:      model.ProductionPlan{1: 120, 3: 90, 5: 100, 8: 111},
	}
	res, err := engine.RunProduct(p)
	if err != nil {
		t.Fatalf("RunProduct failed: %v", err)
	}

	allocated := map[int]float64{}
	for _, rec := range res.Purchases {
		allocated[rec.BatchDay] += rec.Quantity
	}
	final := res.Snapshots[len(res.Snapshots)-1].Quantities

	for day, initial := range p.Plan {
		var waste float64
		for _, w := range res.Waste {
			if w.BatchDay == day {
				waste = w.Waste
			}
		}
		got := waste + allocated[day] + final[day]
		if got != initial {
			t.Errorf("batch %d: waste %v + allocated %v + remaining %v = %v, want %v",
				day, waste, allocated[day], final[day], got, initial)
		}
	}
}

func TestRun_DistributorPriorityOrder(t *testing.T) {
	dists := []model.Distributor{
		{Name: "Lax", PolicyDays: 5, Proportion: 0.5, WeeklyPattern: everyday(), Preferred: []string{"Milk"}},
		{Name: "TightB", PolicyDays: 2, Proportion: 0.5, WeeklyPattern: everyday(), Preferred: []string{"Milk"}},
		{Name: "TightA", PolicyDays: 2, Proportion: 0.5, WeeklyPattern: everyday(), Preferred: []string{"Milk"}},
	}
	engine, err := New(dists, 0, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	order := engine.Distributors()
	names := []string{order[0].Name, order[1].Name, order[2].Name}
	// Ascending policy window; ties keep configured order.
	want := []string{"TightB", "TightA", "Lax"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("allocation order = %v, want %v", names, want)
		}
	}

	res, err := engine.RunProduct(model.Product{
		Name:      "Milk",
		ShelfLife: 5,
		Plan:      model.ProductionPlan{1: 100},
	})
	if err != nil {
		t.Fatalf("RunProduct failed: %v", err)
	}
	if len(res.Purchases) < 3 {
		t.Fatalf("expected all three distributors to buy on day 1, got %d purchases", len(res.Purchases))
	}
	d1 := res.Purchases[:3]
	if d1[0].Distributor != "TightB" || d1[1].Distributor != "TightA" || d1[2].Distributor != "Lax" {
		t.Errorf("day-1 purchase order = %s, %s, %s", d1[0].Distributor, d1[1].Distributor, d1[2].Distributor)
	}
}

func TestRun_ParallelResultsKeepInputOrder(t *testing.T) {
	dist := singleDistributor(3, 0.5, 1, "A", "B", "C")
	engine, err := New([]model.Distributor{dist}, 0.01, 7)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	products := []model.Product{
		{Name: "A", ShelfLife: 2, Plan: model.ProductionPlan{1: 10}},
		{Name: "B", ShelfLife: 3, Plan: model.ProductionPlan{2: 20}},
		{Name: "C", ShelfLife: 4, Plan: model.ProductionPlan{3: 30}},
	}
	results, err := engine.Run(products)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for i, p := range products {
		if results[i].Product != p.Name {
			t.Errorf("result %d is %q, want %q", i, results[i].Product, p.Name)
		}
	}
}

// Identical inputs must produce identical tables.
func TestRun_Deterministic(t *testing.T) {
	dists := []model.Distributor{
		singleDistributor(1, 0.25, 5, "Milk", "Yogurt"),
		{
			Name:          "D2",
			PolicyDays:    3,
			Proportion:    0.4,
			DistanceKM:    22,
			WeeklyPattern: model.DefaultWeeklyPattern(),
			Preferred:     []string{"Milk", "Yogurt"},
		},
	}
	products := []model.Product{
		{Name: "Milk", ShelfLife: 3, Plan: model.ProductionPlan{1: 120, 3: 90, 5: 100}},
		{Name: "Yogurt", ShelfLife: 5, Plan: model.ProductionPlan{2: 60, 6: 80}},
	}

	run := func() []byte {
		engine, err := New(dists, 0.01, 14)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		results, err := engine.Run(products)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		raw, err := json.Marshal(results)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		return raw
	}

	first := run()
	second := run()
	if string(first) != string(second) {
		t.Error("two runs of an identical configuration diverged")
	}
}

func TestRunProduct_EmptyPlanIsNoop(t *testing.T) {
	engine, err := New([]model.Distributor{singleDistributor(2, 0.5, 10, "Milk")}, 0.01, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := engine.RunProduct(model.Product{Name: "Milk", ShelfLife: 3})
	if err != nil {
		t.Fatalf("empty plan should not error: %v", err)
	}
	if len(res.Purchases) != 0 || res.TotalWaste != 0 {
		t.Errorf("empty plan produced activity: %+v", res)
	}
	for _, w := range res.Waste {
		if w.Initial != 0 || w.Waste != 0 {
			t.Errorf("waste table should be zero-filled: %+v", w)
		}
	}
}

func TestRunProduct_RejectsInvalidProduct(t *testing.T) {
	engine, err := New([]model.Distributor{singleDistributor(2, 0.5, 10, "Milk")}, 0.01, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := engine.RunProduct(model.Product{Name: "Milk", ShelfLife: 0}); err == nil {
		t.Error("expected error for non-positive shelf life")
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	good := singleDistributor(2, 0.5, 10, "Milk")

	if _, err := New([]model.Distributor{good}, 0.01, 0); err == nil {
		t.Error("expected error for zero horizon")
	}
	if _, err := New(nil, 0.01, 5); err == nil {
		t.Error("expected error for empty distributor roster")
	}

	bad := good
	bad.Proportion = 1.5
	if _, err := New([]model.Distributor{bad}, 0.01, 5); err == nil {
		t.Error("expected error for proportion outside (0,1]")
	}
}
