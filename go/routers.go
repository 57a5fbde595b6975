package yakshopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	// Routes for the HerdAPI part of the API
	HerdAPI HerdAPI
	// Routes for the OrderAPI part of the API
	OrderAPI OrderAPI
	// Routes for the SystemAPI part of the API
	SystemAPI SystemAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing engine, so callers can
// install middleware first.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes without a wired handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Home",
			http.MethodGet,
			"/",
			handleFunctions.SystemAPI.Home,
		},
		{
			"Healthz",
			http.MethodGet,
			"/healthz",
			handleFunctions.SystemAPI.Healthz,
		},
		{
			"GetStock",
			http.MethodGet,
			"/yakshop/stock/:days",
			handleFunctions.HerdAPI.GetStock,
		},
		{
			"GetHerd",
			http.MethodGet,
			"/yakshop/herd/:days",
			handleFunctions.HerdAPI.GetHerd,
		},
		{
			"GetReport",
			http.MethodGet,
			"/yakshop/report/:days",
			handleFunctions.HerdAPI.GetReport,
		},
		{
			"PlaceOrder",
			http.MethodPost,
			"/yakshop/order/:days",
			handleFunctions.OrderAPI.PlaceOrder,
		},
		{
			"ListOrders",
			http.MethodGet,
			"/yakshop/orders",
			handleFunctions.OrderAPI.ListOrders,
		},
		{
			"GetOrder",
			http.MethodGet,
			"/yakshop/orders/:orderId",
			handleFunctions.OrderAPI.GetOrder,
		},
	}
}
