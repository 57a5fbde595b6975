package mapper

import (
	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
)

// Stock is the HTTP representation of the shop's stock.
type Stock struct {
	Milk float64 `json:"milk"`
	Wool uint32  `json:"wool"`
}

// Yak is the HTTP representation of a herd member.
type Yak struct {
	Name          string  `json:"name"`
	Age           float64 `json:"age"`
	AgeLastShaved float64 `json:"age-last-shaved"`
}

// Herd wraps the roster the way the herd endpoint returns it.
type Herd struct {
	Herd []Yak `json:"herd"`
}

// FromDomainStock converts stock to litres and skins.
func FromDomainStock(stock domain.Products) Stock {
	return Stock{
		Milk: stock.Milk.Liters(),
		Wool: stock.Wool,
	}
}

// FromDomainYak converts a yak snapshot to the transport representation.
func FromDomainYak(yak domain.YakView) Yak {
	return Yak{
		Name:          yak.Name,
		Age:           yak.AgeYears(),
		AgeLastShaved: yak.LastShavedYears(),
	}
}

// FromDomainHerd converts a roster, keeping its order. It never returns a nil slice.
func FromDomainHerd(herd []domain.YakView) Herd {
	result := Herd{Herd: make([]Yak, 0, len(herd))}
	for _, yak := range herd {
		result.Herd = append(result.Herd, FromDomainYak(yak))
	}
	return result
}
