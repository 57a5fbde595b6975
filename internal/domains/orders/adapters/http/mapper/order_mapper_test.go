package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herddomain "github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
	orderdomain "github.com/Apurer/go-gin-yakshop/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-yakshop/internal/domains/orders/ports"
)

func TestToPlaceOrderInput(t *testing.T) {
	var req OrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"customer":"Medvedev","order":{"milk":1100,"skins":3}}`), &req))

	input := ToPlaceOrderInput(14, req)
	assert.Equal(t, orderports.PlaceOrderInput{Customer: "Medvedev", Day: 14, Milk: 1100, Skins: 3}, input)

	var skinsOnly OrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"customer":"Medvedev","order":{"skins":3}}`), &skinsOnly))
	assert.Zero(t, ToPlaceOrderInput(14, skinsOnly).Milk)
	assert.Equal(t, int64(3), ToPlaceOrderInput(14, skinsOnly).Skins)
}

func TestFromDomainProducts_OmitsZero(t *testing.T) {
	body, err := json.Marshal(FromDomainProducts(herddomain.Products{Wool: 3}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"skins":3}`, string(body))

	body, err = json.Marshal(FromDomainProducts(herddomain.Products{Milk: 110000, Wool: 3}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"milk":1100,"skins":3}`, string(body))
}

func TestFromProjection(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	p := &orderports.OrderProjection{
		Entity: &orderdomain.Order{
			ID:        3,
			Customer:  "Medvedev",
			Day:       14,
			Requested: herddomain.Products{Milk: 120000, Wool: 3},
			Delivered: herddomain.Products{Wool: 3},
			Status:    orderdomain.StatusPartial,
		},
	}
	p.Metadata.CreatedAt = created

	order := FromProjection(p)
	assert.Equal(t, int64(3), order.ID)
	assert.Equal(t, "partial", order.Status)
	require.NotNil(t, order.Requested.Milk)
	assert.Equal(t, 1200.0, *order.Requested.Milk)
	assert.Nil(t, order.Delivered.Milk)
	assert.Equal(t, created, order.CreatedAt)

	assert.Equal(t, Order{}, FromProjection(nil))
	assert.Empty(t, FromProjectionList(nil))
}
