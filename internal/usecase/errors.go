package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrOutOfOrder            = errors.New("delivery out of order")
	ErrConflict              = errors.New("concurrent update")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classifyDomainError attaches the usecase taxonomy to domain sentinel errors.
func classifyDomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, match.ErrVersionConflict):
		return fmt.Errorf("%w: %w: %w", ErrOutOfOrder, ErrConflict, err)
	case errors.Is(err, match.ErrOutOfOrder):
		return fmt.Errorf("%w: %w", ErrOutOfOrder, err)
	case errors.Is(err, delivery.ErrInvalidDelivery),
		errors.Is(err, match.ErrMatchCompleted),
		errors.Is(err, match.ErrInvalidTransition),
		errors.Is(err, match.ErrInvalidMatch):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
