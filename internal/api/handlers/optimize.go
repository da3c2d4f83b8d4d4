package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/api/models"
	"github.com/CaptHwi1/Perishable-Supply-chain-Optimizer/internal/optimize"
)

// OptimizeHandler computes a recommended production plan.
type OptimizeHandler struct {
	log *zap.Logger
}

func NewOptimizeHandler(log *zap.Logger) *OptimizeHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &OptimizeHandler{log: log}
}

// Run handles POST /api/v1/optimize.
func (h *OptimizeHandler) Run(c *gin.Context) {
	var req models.OptimizeRequest
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

	product := req.Product
	if product == "" {
		product = req.Scenario.Products[0].Name
	} else {
		found := false
		for _, pc := range req.Scenario.Products {
			if pc.Name == product {
				found = true
				break
			}
		}
		if !found {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "UNKNOWN_PRODUCT", Message: "product not in scenario: " + product},
			})
			return
		}
	}

	dists, err := req.Scenario.ModelDistributors()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_SCENARIO", Message: err.Error()},
		})
		return
	}

	planner, err := optimize.New(dists, req.Scenario.SimDays, req.Scenario.OptimizerParams())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_SCENARIO", Message: err.Error()},
		})
		return
	}

	plan, ok := planner.Recommend()
	if !ok {
		h.log.Warn("optimizer returned no recommendation", zap.String("product", product))
	}

	resp := models.OptimizeResponse{
		Status:   "completed",
		Product:  product,
		Feasible: ok,
	}
	for _, day := range plan.Days() {
		resp.Plan = append(resp.Plan, models.PlanRow{Day: day, Quantity: plan[day]})
	}
	c.JSON(http.StatusOK, resp)
}
