package yakshopserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/go-gin-yakshop/internal/domains/orders/adapters/http/mapper"
	orderdomain "github.com/Apurer/go-gin-yakshop/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-yakshop/internal/domains/orders/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// OrderAPI wires HTTP transport with the orders bounded context.
type OrderAPI struct {
	service orderports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service orderports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Post /yakshop/order/:days
// Place an order against the stock on the given day.
// 201 when everything is delivered, 206 when only part is, 404 when nothing is.
// Retries carrying the same Idempotency-Key replay the recorded result.
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	days, ok := parseDaysParam(c, "days")
	if !ok {
		return
	}
	var payload ordermapper.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, err.Error())
		return
	}
	input := ordermapper.ToPlaceOrderInput(days, payload)
	input.IdempotencyKey = c.GetHeader(headerIdempotencyKey)
	placed, err := api.service.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	order := placed.Entity
	c.Header("Location", fmt.Sprintf("/yakshop/orders/%d", order.ID))
	switch order.Status {
	case orderdomain.StatusFulfilled:
		c.JSON(http.StatusCreated, ordermapper.FromDomainProducts(order.Delivered))
	case orderdomain.StatusPartial:
		c.JSON(http.StatusPartialContent, ordermapper.FromDomainProducts(order.Delivered))
	default:
		c.Status(http.StatusNotFound)
	}
}

// Get /yakshop/orders
// List recorded orders
func (api *OrderAPI) ListOrders(c *gin.Context) {
	list, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromProjectionList(list))
}

// Get /yakshop/orders/:orderId
// Find a recorded order by ID
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	placed, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromProjection(placed))
}
