package model

import (
	"errors"
	"fmt"
	"math"
)

// DaysPerWeek is the length of the weekly purchase pattern.
// Day 1 of the simulation is day 1 of the week; every 7th day is the closure day.
const DaysPerWeek = 7

// IsClosureDay reports whether no purchasing happens on the given simulation day,
// regardless of any distributor's calendar.
func IsClosureDay(day int) bool {
	return day%DaysPerWeek == 0
}

// DefaultWeeklyPattern buys on the first six days of the week and skips the last,
// which coincides with the closure day.
func DefaultWeeklyPattern() [DaysPerWeek]bool {
	return [DaysPerWeek]bool{true, true, true, true, true, true, false}
}

// Distributor is a read-only purchase policy.
// Units:
// - PolicyDays: maximum batch age (days since production) still purchased
// - Proportion: fraction (0,1] of eligible inventory bought per visit
// - DistanceKM: km, used only for transport cost
type Distributor struct {
	Name          string
	PolicyDays    int
	Proportion    float64
	DistanceKM    float64
	WeeklyPattern [DaysPerWeek]bool
	Preferred     []string
}

func NewDistributor(name string, policyDays int, proportion, distanceKM float64, pattern [DaysPerWeek]bool, preferred []string) (*Distributor, error) {
	d := &Distributor{
		Name:          name,
		PolicyDays:    policyDays,
		Proportion:    NormalizeProportion(proportion),
		DistanceKM:    distanceKM,
		WeeklyPattern: pattern,
		Preferred:     preferred,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// NormalizeProportion snaps a proportion to two decimal places, half to even
// like every other rounding site. Purchase sizes are quoted in whole percent
// steps, so configs like 0.1499999 collapse to 0.15.
func NormalizeProportion(p float64) float64 {
	return math.RoundToEven(p*100) / 100
}

func (d *Distributor) Validate() error {
	if d.Name == "" {
		return errors.New("distributor name is required")
	}
	if d.PolicyDays <= 0 {
		return fmt.Errorf("distributor %q: PolicyDays must be > 0", d.Name)
	}
	if d.Proportion <= 0 || d.Proportion > 1 {
		return fmt.Errorf("distributor %q: Proportion must be in (0, 1]", d.Name)
	}
	if d.DistanceKM < 0 {
		return fmt.Errorf("distributor %q: DistanceKM must be >= 0", d.Name)
	}
	return nil
}

// BuysOn reports whether the distributor purchases on the given simulation day.
// The weekly closure day wins over the calendar.
func (d *Distributor) BuysOn(day int) bool {
	if day < 1 || IsClosureDay(day) {
		return false
	}
	return d.WeeklyPattern[(day-1)%DaysPerWeek]
}

// Carries reports whether the product is in the distributor's preferred set.
func (d *Distributor) Carries(product string) bool {
	for _, name := range d.Preferred {
		if name == product {
			return true
		}
	}
	return false
}

// Calendar expands the weekly pattern (with the closure-day override applied)
// to a full-horizon purchase calendar, one entry per day starting at day 1.
func (d *Distributor) Calendar(horizon int) []bool {
	cal := make([]bool, horizon)
	for day := 1; day <= horizon; day++ {
		cal[day-1] = d.BuysOn(day)
	}
	return cal
}
