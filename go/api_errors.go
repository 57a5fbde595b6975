package yakshopserver

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	herdapp "github.com/Apurer/go-gin-yakshop/internal/domains/herd/application"
	orderapp "github.com/Apurer/go-gin-yakshop/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-yakshop/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-yakshop/internal/shared/errors"
)

// responder maps application errors of every bounded context to RFC 7807 problems.
var responder = apierrors.NewChainedResponder("", herdProblem, orderProblem)

func herdProblem(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, herdapp.ErrInvalidInput) {
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func orderProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, orderports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, orderports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, orderapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// parseDaysParam reads a day count in [0, MaxUint32].
func parseDaysParam(c *gin.Context, name string) (uint32, bool) {
	value := c.Param(name)
	days, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		responder.InvalidDays(c, fmt.Sprintf("%s must be an integer between 0 and %d, got %q", name, uint32(math.MaxUint32), value))
		return 0, false
	}
	return uint32(days), true
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		responder.BadRequest(c, fmt.Sprintf("%s must be a positive integer, got %q", name, value))
		return 0, false
	}
	return id, true
}
