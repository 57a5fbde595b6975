package domain

import (
	"fmt"
	"strings"
)

// Entry is one line of an externally supplied herd definition.
type Entry struct {
	Name     string
	AgeYears float64
}

// Shop owns a herd and the stock it has produced so far.
// It has no internal locking; concurrent callers must work on their own Clone.
type Shop struct {
	yaks        []*Yak
	stock       Products
	elapsedDays uint64
}

// NewShop builds a shop around the roster, keeping its order.
func NewShop(yaks []*Yak) *Shop {
	roster := make([]*Yak, 0, len(yaks))
	for _, yak := range yaks {
		if yak != nil {
			roster = append(roster, yak)
		}
	}
	return &Shop{yaks: roster}
}

// LoadShop builds a shop from herd entries. A single invalid age fails the
// whole load so that a partially loaded herd is never returned.
func LoadShop(entries []Entry) (*Shop, error) {
	yaks := make([]*Yak, 0, len(entries))
	for i, entry := range entries {
		yak, err := NewYak(entry.Name, entry.AgeYears)
		if err != nil {
			return nil, fmt.Errorf("herd entry %d (%q): %w", i, entry.Name, err)
		}
		yaks = append(yaks, yak)
	}
	return NewShop(yaks), nil
}

// Advance steps every yak by days in roster order and adds what they produced
// to the stock. Elapsed time moves on even when the whole herd is dead.
func (s *Shop) Advance(days uint32) {
	if days == 0 {
		return
	}
	for _, yak := range s.yaks {
		if produced, ok := yak.Step(days); ok {
			s.stock = s.stock.Add(produced)
		}
	}
	s.elapsedDays += uint64(days)
}

// Stock is everything produced since the shop opened.
func (s *Shop) Stock() Products { return s.stock }

// ElapsedDays is the number of days advanced so far.
func (s *Shop) ElapsedDays() uint64 { return s.elapsedDays }

// Len is the size of the roster, dead yaks included.
func (s *Shop) Len() int { return len(s.yaks) }

// Yaks returns a snapshot of the roster in input order.
func (s *Shop) Yaks() []YakView {
	views := make([]YakView, 0, len(s.yaks))
	for _, yak := range s.yaks {
		views = append(views, yak.View())
	}
	return views
}

// Clone returns a deep copy that can be advanced independently.
func (s *Shop) Clone() *Shop {
	clone := &Shop{
		yaks:        make([]*Yak, 0, len(s.yaks)),
		stock:       s.stock,
		elapsedDays: s.elapsedDays,
	}
	for _, yak := range s.yaks {
		copy := *yak
		clone.yaks = append(clone.yaks, &copy)
	}
	return clone
}

// Report captures the current state of the shop.
func (s *Shop) Report() Report {
	return Report{
		ElapsedDays: s.elapsedDays,
		Stock:       s.stock,
		Herd:        s.Yaks(),
	}
}

// Report is a point-in-time view of a shop.
type Report struct {
	ElapsedDays uint64
	Stock       Products
	Herd        []YakView
}

// String renders the stock and herd listing in the shop's text format.
func (r Report) String() string {
	var b strings.Builder
	b.WriteString("In Stock:\n")
	fmt.Fprintf(&b, "    %s liters of milk\n", r.Stock.Milk)
	fmt.Fprintf(&b, "    %d skins of wool\n", r.Stock.Wool)
	b.WriteString("Herd:")
	for _, yak := range r.Herd {
		b.WriteString("\n    ")
		b.WriteString(yak.String())
	}
	return b.String()
}
