package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
)

// ErrInvalidInput signals the request violated a domain invariant or limit.
var ErrInvalidInput = errors.New("invalid herd input")

// ErrTooManyDays is returned when a request exceeds the configured day limit.
var ErrTooManyDays = errors.New("requested days exceed the configured limit")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidAge) || errors.Is(err, ErrTooManyDays) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
