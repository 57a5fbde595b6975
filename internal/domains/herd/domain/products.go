package domain

import (
	"fmt"
	"math"
)

// MilkScale is the number of minor units in one litre of milk.
const MilkScale = 100

// Milk is an amount of milk counted in hundredths of a litre. Accumulating in
// integer minor units keeps totals exact over any number of simulated days.
type Milk uint64

// MilkFromLiters converts a litre amount to minor units, rounding to the
// nearest hundredth. Negative and non-finite amounts convert to zero.
func MilkFromLiters(liters float64) Milk {
	if math.IsNaN(liters) || liters <= 0 {
		return 0
	}
	scaled := math.Round(liters * MilkScale)
	if scaled >= math.MaxUint64 {
		return Milk(math.MaxUint64)
	}
	return Milk(scaled)
}

// Liters converts the amount to litres. Only call this at a reporting boundary.
func (m Milk) Liters() float64 {
	return float64(m) / MilkScale
}

// String renders the amount in litres with three decimal places.
func (m Milk) String() string {
	return fmt.Sprintf("%d.%02d0", m/MilkScale, m%MilkScale)
}

// Products is the amount of milk and wool produced or held in stock.
type Products struct {
	Milk Milk
	Wool uint32
}

// Add returns the field-wise sum of p and other.
func (p Products) Add(other Products) Products {
	return Products{
		Milk: p.Milk + other.Milk,
		Wool: p.Wool + other.Wool,
	}
}

// IsZero reports whether nothing was produced.
func (p Products) IsZero() bool {
	return p.Milk == 0 && p.Wool == 0
}
