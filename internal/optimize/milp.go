package optimize

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// errNoSolution is returned when branch and bound exhausts the tree (or the
// node budget) without finding an integer-feasible point.
var errNoSolution = errors.New("no integer solution found")

// errPinConflict marks a branch demanding a positive value from a variable
// fixed at zero.
var errPinConflict = errors.New("bound conflicts with pinned variable")

const (
	intTol   = 1e-6
	maxNodes = 10000
)

// bound is a branching constraint on one variable.
type bound struct {
	idx   int
	value float64
	upper bool // true: x[idx] <= value, false: x[idx] >= value
}

// branchBound minimizes c.x over non-negative integer x, with x[i] pinned to
// zero for every i in zeroVars. LP relaxations go through gonum's simplex;
// integrality comes from depth-first branch and bound on the most fractional
// component. Returns the solution and objective, or an error when the problem
// is unbounded or has no integer solution.
func branchBound(c []float64, zeroVars []int) ([]float64, float64, error) {
	bestObj := math.Inf(1)
	var bestX []float64

	stack := [][]bound{nil}
	nodes := 0

	for len(stack) > 0 && nodes < maxNodes {
		nodes++
		bounds := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, obj, err := solveRelaxed(c, zeroVars, bounds)
		if err != nil {
			if errors.Is(err, lp.ErrUnbounded) {
				// The integer program inherits the unboundedness.
				return nil, 0, err
			}
			// Infeasible branch: prune.
			continue
		}
		if obj >= bestObj-intTol {
			continue
		}

		frac := fractionalIndex(x)
		if frac < 0 {
			bestObj = obj
			bestX = roundVec(x)
			continue
		}

		down := append(append([]bound(nil), bounds...), bound{frac, math.Floor(x[frac]), true})
		up := append(append([]bound(nil), bounds...), bound{frac, math.Ceil(x[frac]), false})
		stack = append(stack, down, up)
	}

	if bestX == nil {
		return nil, 0, errNoSolution
	}
	return bestX, bestObj, nil
}

// solveRelaxed solves the LP relaxation in gonum's equality standard form.
// Pinned variables are fixed at zero and eliminated up front. Only variables
// carrying a branching bound enter the simplex, one slack column per bound
// (x_i + s = k for upper, x_i - s = k for lower); the simplex rejects
// matrices with all-zero columns, so unconstrained variables must stay out.
// Every variable outside the simplex sits at the origin, which is optimal
// for a non-negative cost and unbounded otherwise.
func solveRelaxed(c []float64, zeroVars []int, bounds []bound) ([]float64, float64, error) {
	n := len(c)
	pinned := make([]bool, n)
	for _, v := range zeroVars {
		pinned[v] = true
	}

	col := make([]int, n)
	for i := range col {
		col[i] = -1
	}
	var lpVars []int
	var rows []bound
	for _, bd := range bounds {
		if pinned[bd.idx] {
			// A pinned variable cannot satisfy a positive lower bound;
			// any other bound on it is redundant.
			if !bd.upper && bd.value > 0 {
				return nil, 0, errPinConflict
			}
			continue
		}
		if col[bd.idx] < 0 {
			col[bd.idx] = len(lpVars)
			lpVars = append(lpVars, bd.idx)
		}
		rows = append(rows, bd)
	}

	for i, ci := range c {
		if ci < 0 && !pinned[i] && col[i] < 0 {
			return nil, 0, lp.ErrUnbounded
		}
	}

	x := make([]float64, n)
	if len(rows) == 0 {
		return x, 0, nil
	}

	m := len(rows)
	cols := len(lpVars) + m
	cExt := make([]float64, cols)
	for j, v := range lpVars {
		cExt[j] = c[v]
	}

	a := mat.NewDense(m, cols, nil)
	b := make([]float64, m)
	for r, bd := range rows {
		a.Set(r, col[bd.idx], 1)
		if bd.upper {
			a.Set(r, len(lpVars)+r, 1)
		} else {
			a.Set(r, len(lpVars)+r, -1)
		}
		b[r] = bd.value
	}

	_, sol, err := lp.Simplex(cExt, a, b, 1e-10, nil)
	if err != nil {
		return nil, 0, err
	}

	obj := 0.0
	for j, v := range lpVars {
		x[v] = sol[j]
		obj += c[v] * sol[j]
	}
	return x, obj, nil
}

// fractionalIndex returns the index of the most fractional component, or -1
// when x is integral within tolerance.
func fractionalIndex(x []float64) int {
	best := -1
	bestDist := intTol
	for i, v := range x {
		dist := math.Abs(v - math.Round(v))
		if dist > bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

func roundVec(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Round(v)
	}
	return out
}
