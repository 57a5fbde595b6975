package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
)

func TestFromDomainStock(t *testing.T) {
	stock := FromDomainStock(domain.Products{Milk: 110448, Wool: 3})
	assert.Equal(t, Stock{Milk: 1104.48, Wool: 3}, stock)
}

func TestFromDomainHerd_JSONShape(t *testing.T) {
	herd := FromDomainHerd([]domain.YakView{{Name: "Betty-1", AgeDays: 413, LastShavedDays: 400}})
	raw, err := json.Marshal(herd)
	require.NoError(t, err)
	assert.JSONEq(t, `{"herd":[{"name":"Betty-1","age":4.13,"age-last-shaved":4}]}`, string(raw))
}

func TestFromDomainHerd_Empty(t *testing.T) {
	raw, err := json.Marshal(FromDomainHerd(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"herd":[]}`, string(raw))
}
