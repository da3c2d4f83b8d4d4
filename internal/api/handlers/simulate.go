package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/api/models"
	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/report"
	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/sim"
)

// SimulateHandler runs the allocation simulation for an inline scenario.
type SimulateHandler struct {
	log *zap.Logger
}

func NewSimulateHandler(log *zap.Logger) *SimulateHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SimulateHandler{log: log}
}

// Run handles POST /api/v1/simulate.
func (h *SimulateHandler) Run(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	req.Scenario.ApplyDefaults()
	if err := req.Scenario.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_SCENARIO", Message: err.Error()},
		})
		return
	}

	products, err := req.Scenario.ModelProducts()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_SCENARIO", Message: err.Error()},
		})
		return
	}
	dists, err := req.Scenario.ModelDistributors()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_SCENARIO", Message: err.Error()},
		})
		return
	}

	engine, err := sim.New(dists, req.Scenario.TransportRate, req.Scenario.SimDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_SCENARIO", Message: err.Error()},
		})
		return
	}

	results, err := engine.Run(products)
	if err != nil {
		h.log.Error("simulation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "SIMULATION_ERROR", Message: err.Error()},
		})
		return
	}

	tables := report.Build(results)
	resp := models.SimulateResponse{
		Status: "completed",
		Summary: models.SimulationSummary{
			SimDays:            req.Scenario.SimDays,
			Products:           len(products),
			TotalPurchased:     tables.TotalPurchased,
			TotalWaste:         tables.TotalWaste,
			TotalTransportCost: tables.TotalTransportCost,
		},
	}

	for _, w := range tables.Waste {
		resp.Waste = append(resp.Waste, models.WasteRow(w))
	}
	if req.Options.IncludePurchases {
		for _, p := range tables.Purchases {
			resp.Purchases = append(resp.Purchases, models.PurchaseRow{
				Product:       p.Product,
				Day:           p.Day,
				Distributor:   p.Distributor,
				BatchDay:      p.BatchDay,
				Quantity:      p.Quantity,
				ShelfAge:      p.ShelfAge,
				PolicyDays:    p.PolicyDays,
				Proportion:    p.Proportion,
				TransportCost: p.TransportCost,
			})
		}
	}
	if req.Options.IncludePivots {
		resp.Pivots = make(map[string]models.PivotTable, len(results))
		for _, r := range results {
			pivot := report.BuildPivot(r.Purchases, req.Scenario.SimDays)
			table := models.PivotTable{Days: pivot.Days, Rows: make(map[string][]float64, len(pivot.Distributors))}
			for _, name := range pivot.Distributors {
				row := make([]float64, len(pivot.Days))
				for i, day := range pivot.Days {
					row[i] = pivot.Get(name, day)
				}
				table.Rows[name] = row
			}
			resp.Pivots[r.Product] = table
		}
	}
	if req.Options.IncludeSnapshots {
		for _, r := range results {
			for _, s := range r.Snapshots {
				qty := make(map[string]float64, len(s.Quantities))
				for day, q := range s.Quantities {
					qty[strconv.Itoa(day)] = q
				}
				resp.Snapshots = append(resp.Snapshots, models.SnapshotRow{
					Product:    s.Product,
					Day:        s.Day,
					Phase:      string(s.Phase),
					Quantities: qty,
				})
			}
		}
	}

	h.log.Info("simulation completed",
		zap.Int("products", len(products)),
		zap.Int("sim_days", req.Scenario.SimDays),
		zap.Int("purchases", len(tables.Purchases)),
	)
	c.JSON(http.StatusOK, resp)
}
