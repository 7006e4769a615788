package ticketoffice

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/urbanrail/metrofare/transit"
)

// Sentinel errors surfaced to the enclosing request layer, which
// decides user-facing presentation.
var (
	// ErrClosed is returned while the metro system is closed.
	ErrClosed = errors.New("ticketoffice: metro services are closed")

	// ErrInvalidTrip rejects a purchase whose source equals its
	// destination.
	ErrInvalidTrip = errors.New("ticketoffice: source and destination are the same")

	// ErrNoRouteFound is returned when no route exists between the
	// requested stations over the active-line graph.
	ErrNoRouteFound = errors.New("ticketoffice: no route found between stations")

	// ErrNotTicketOwner rejects a cancellation by anyone but the
	// ticket's buyer.
	ErrNotTicketOwner = errors.New("ticketoffice: ticket belongs to another passenger")

	// ErrNotCancellable rejects cancellation of a used, expired or
	// already cancelled ticket.
	ErrNotCancellable = errors.New("ticketoffice: ticket is not cancellable")

	// ErrNilDependency is returned by New when a required collaborator
	// is missing from the Config.
	ErrNilDependency = errors.New("ticketoffice: missing dependency")
)

// InsufficientBalanceError reports a balance below the computed price,
// carrying the exact shortfall. It unwraps to
// transit.ErrInsufficientFunds so errors.Is matching works across the
// store boundary.
type InsufficientBalanceError struct {
	// Price is the computed fare of the requested trip.
	Price decimal.Decimal

	// Balance is the passenger balance observed at check time.
	Balance decimal.Decimal

	// Shortfall is Price - Balance, always positive.
	Shortfall decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("ticketoffice: insufficient balance: need %s more", e.Shortfall.StringFixed(2))
}

// Unwrap links the typed error to the store-level sentinel.
func (e *InsufficientBalanceError) Unwrap() error { return transit.ErrInsufficientFunds }
