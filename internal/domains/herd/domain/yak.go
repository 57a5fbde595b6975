package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

const (
	// DaysPerYear is the length of a yak year.
	DaysPerYear = 100
	// MaxAgeDays is the age at which a yak dies.
	MaxAgeDays uint32 = 10 * DaysPerYear
	// MinShaveAgeDays is the youngest age at which a yak can be shaved.
	MinShaveAgeDays uint32 = DaysPerYear
	// MinShaveIntervalDays is the base gap between two shavings.
	MinShaveIntervalDays = 8

	baseMilk        Milk = 50 * MilkScale
	milkDecayPerDay Milk = 3
	// The gap between shavings grows by one day for every shaveAgeDivisor days of age.
	shaveAgeDivisor = 100
)

// ErrInvalidAge signals an age that cannot be represented as a day count.
var ErrInvalidAge = errors.New("invalid yak age")

// Yak is a single herd member. Its age drives every production rule.
type Yak struct {
	name           string
	ageDays        uint32
	lastShavedDays uint32
}

// NewYak builds a yak from an age expressed in (fractional) yak years.
func NewYak(name string, ageYears float64) (*Yak, error) {
	days, err := YearsToDays(ageYears)
	if err != nil {
		return nil, err
	}
	return &Yak{name: name, ageDays: days}, nil
}

// YearsToDays converts yak years to whole days, truncating toward zero.
// NaN, infinite, negative (including -0) and out of range values are rejected.
func YearsToDays(years float64) (uint32, error) {
	days := years * DaysPerYear
	switch {
	case math.IsNaN(days):
		return 0, fmt.Errorf("%w: %v is not a number", ErrInvalidAge, years)
	case math.IsInf(days, 0):
		return 0, fmt.Errorf("%w: %v is infinite", ErrInvalidAge, years)
	case math.Signbit(days):
		return 0, fmt.Errorf("%w: %v is negative", ErrInvalidAge, years)
	case days > math.MaxUint32:
		return 0, fmt.Errorf("%w: %v years is too large", ErrInvalidAge, years)
	}
	return uint32(days), nil
}

// MilkYield is the milk a yak of the given age gives in one day. It saturates
// at zero for ages past the point where the decay exceeds the base yield.
func MilkYield(ageDays uint32) Milk {
	decay := Milk(ageDays) * milkDecayPerDay
	if decay >= baseMilk {
		return 0
	}
	return baseMilk - decay
}

// CanShave reports whether a yak of ageDays, last shaved at lastShavedDays,
// may be shaved today: age >= last + 8 + age/100.
func CanShave(ageDays, lastShavedDays uint32) bool {
	if ageDays < MinShaveAgeDays {
		return false
	}
	age, last := uint64(ageDays), uint64(lastShavedDays)
	return age*shaveAgeDivisor >= (last+MinShaveIntervalDays)*shaveAgeDivisor+age
}

// Step advances the yak by days, one day at a time, and returns everything it
// produced. A dead yak produces nothing and reports false. A yak that dies
// part way through stops at MaxAgeDays; the remaining days are not simulated.
func (y *Yak) Step(days uint32) (Products, bool) {
	if !y.Alive() {
		return Products{}, false
	}
	var produced Products
	for i := uint32(0); i < days && y.Alive(); i++ {
		produced.Milk += MilkYield(y.ageDays)
		if CanShave(y.ageDays, y.lastShavedDays) {
			y.lastShavedDays = y.ageDays
			produced.Wool++
		}
		y.ageDays++
	}
	return produced, true
}

// Alive reports whether the yak is younger than MaxAgeDays.
func (y *Yak) Alive() bool {
	return y.ageDays < MaxAgeDays
}

func (y *Yak) Name() string { return y.name }

func (y *Yak) AgeDays() uint32 { return y.ageDays }

func (y *Yak) LastShavedDays() uint32 { return y.lastShavedDays }

// AgeYears is the age in yak years.
func (y *Yak) AgeYears() float64 { return daysToYears(y.ageDays) }

// LastShavedYears is the age in yak years at the last shave.
func (y *Yak) LastShavedYears() float64 { return daysToYears(y.lastShavedDays) }

// View returns a read-only snapshot of the yak.
func (y *Yak) View() YakView {
	return YakView{
		Name:           y.name,
		AgeDays:        y.ageDays,
		LastShavedDays: y.lastShavedDays,
	}
}

func (y *Yak) String() string {
	return y.View().String()
}

// YakView is an immutable snapshot of a yak used for reporting.
type YakView struct {
	Name           string
	AgeDays        uint32
	LastShavedDays uint32
}

// Alive reports whether the snapshot was taken before the yak died.
func (v YakView) Alive() bool { return v.AgeDays < MaxAgeDays }

func (v YakView) AgeYears() float64 { return daysToYears(v.AgeDays) }

func (v YakView) LastShavedYears() float64 { return daysToYears(v.LastShavedDays) }

// String renders "<name> <age> years old", with " (dead)" appended for dead yaks.
func (v YakView) String() string {
	line := fmt.Sprintf("%s %s years old", v.Name, strconv.FormatFloat(v.AgeYears(), 'f', -1, 64))
	if !v.Alive() {
		line += " (dead)"
	}
	return line
}

func daysToYears(days uint32) float64 {
	return float64(days) / DaysPerYear
}
