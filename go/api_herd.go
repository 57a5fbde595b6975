package yakshopserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	herdmapper "github.com/Apurer/go-gin-yakshop/internal/domains/herd/adapters/http/mapper"
	herdports "github.com/Apurer/go-gin-yakshop/internal/domains/herd/ports"
)

// HerdAPI wires HTTP transport with the herd simulation service.
type HerdAPI struct {
	service herdports.Service
}

// NewHerdAPI creates a HerdAPI backed by the provided service.
func NewHerdAPI(service herdports.Service) HerdAPI {
	return HerdAPI{service: service}
}

// Get /yakshop/stock/:days
// Stock accumulated after the given number of days
func (api *HerdAPI) GetStock(c *gin.Context) {
	days, ok := parseDaysParam(c, "days")
	if !ok {
		return
	}
	stock, err := api.service.Stock(c.Request.Context(), days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, herdmapper.FromDomainStock(stock))
}

// Get /yakshop/herd/:days
// Herd roster after the given number of days
func (api *HerdAPI) GetHerd(c *gin.Context) {
	days, ok := parseDaysParam(c, "days")
	if !ok {
		return
	}
	herd, err := api.service.Herd(c.Request.Context(), days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, herdmapper.FromDomainHerd(herd))
}

// Get /yakshop/report/:days
// Plain-text report, identical to the CLI output
func (api *HerdAPI) GetReport(c *gin.Context) {
	days, ok := parseDaysParam(c, "days")
	if !ok {
		return
	}
	report, err := api.service.Report(c.Request.Context(), days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.String(http.StatusOK, fmt.Sprintf("Day: %d\n\n%s\n", days, report))
}
