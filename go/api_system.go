package yakshopserver

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/index.html
var homePage []byte

// SystemAPI serves the landing page and the liveness probe.
type SystemAPI struct{}

// Get /
func (api *SystemAPI) Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", homePage)
}

// Get /healthz
func (api *SystemAPI) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
