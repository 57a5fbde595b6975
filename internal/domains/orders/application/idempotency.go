package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	herddomain "github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/orders/ports"
)

type normalizedPlaceOrderInput struct {
	Customer string `json:"customer"`
	Day      uint32 `json:"day"`
	Milk     uint64 `json:"milk"`
	Skins    int64  `json:"skins"`
}

// FingerprintPlaceOrder builds a deterministic hash of the order request (excluding the idempotency key).
// Milk is compared in hundredths of a litre so 1100 and 1100.001 are the same request.
func FingerprintPlaceOrder(input ports.PlaceOrderInput) (string, error) {
	normalized := normalizedPlaceOrderInput{
		Customer: strings.TrimSpace(input.Customer),
		Day:      input.Day,
		Milk:     uint64(herddomain.MilkFromLiters(input.Milk)),
		Skins:    input.Skins,
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
