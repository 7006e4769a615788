package transit

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MembershipSource exposes the station/line membership data the graph
// is built from. Implementations are expected to be safe for
// concurrent readers.
type MembershipSource interface {
	// ActiveLines lists every line whose Active flag is set.
	ActiveLines(ctx context.Context) ([]Line, error)

	// MembershipsForLine lists the memberships of one line, ordered by
	// position along the line (ascending Order).
	MembershipsForLine(ctx context.Context, line string) ([]Membership, error)

	// StationByName resolves a station by its unique name.
	// Returns ErrStationNotFound when absent.
	StationByName(ctx context.Context, name string) (*Station, error)
}

// BalanceStore reads and mutates passenger wallet balances.
//
// Debit is conditional: it must atomically verify balance >= amount
// and subtract, failing with ErrInsufficientFunds otherwise. Two
// concurrent debits must never jointly overdraw a balance.
type BalanceStore interface {
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
	Debit(ctx context.Context, userID string, amount decimal.Decimal) error
	Credit(ctx context.Context, userID string, amount decimal.Decimal) error
}

// PassengerDirectory resolves passenger identities, primarily so the
// coordinator can address notifications.
type PassengerDirectory interface {
	PassengerByID(ctx context.Context, id string) (*Passenger, error)
}

// TicketStore persists tickets.
type TicketStore interface {
	// CreateTicket stores a fully populated ticket record.
	CreateTicket(ctx context.Context, t *Ticket) error

	// TicketByID resolves one ticket. Returns ErrTicketNotFound when absent.
	TicketByID(ctx context.Context, id uuid.UUID) (*Ticket, error)

	// TicketsByUser lists a passenger's tickets, newest first.
	TicketsByUser(ctx context.Context, userID string) ([]Ticket, error)

	// UpdateStatus transitions a ticket from one status to another.
	// The transition is conditional on the current status; it fails
	// with ErrStatusConflict when the ticket is not in from, and with
	// ErrTicketNotFound when the ticket does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to TicketStatus) error
}

// Notifier delivers a message to a recipient. Purchase confirmation is
// fire-and-forget: a failed Send is logged by the caller and never
// rolls back the operation that triggered it.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
