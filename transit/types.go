package transit

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Station is a node of the metro network.
//
// Name uniquely identifies the station within the whole dataset.
// DistanceFromHub is informational (kilometres from the central
// station); routing never reads it.
type Station struct {
	Name            string
	DistanceFromHub float64
}

// Line is a metro line.
//
// Name uniquely identifies the line. Color is a display attribute
// (hex code). Only lines with Active == true participate in the
// transit graph.
type Line struct {
	Name   string
	Color  string
	Active bool
}

// Membership places one station on one line.
//
// Order is the station's position along the line; within a line the
// order values induce a total order, and the station at order i is
// adjacent to the stations at orders i-1 and i+1 on that line only.
// Interchange marks stations where passengers may change lines.
type Membership struct {
	Station     string
	Line        string
	Order       int
	Interchange bool
}

// Passenger is a ticket-buying user of the system.
//
// Balance is the wallet the fare is debited from, in exact decimal
// currency units.
type Passenger struct {
	ID      string
	Email   string
	Balance decimal.Decimal
}

// TicketStatus is the lifecycle state of a Ticket.
type TicketStatus string

// Ticket lifecycle states. A ticket is created Active; the gate-scan
// subsystem (outside this module) moves it to Used or Expired, and
// cancellation moves it to Cancelled.
const (
	StatusActive    TicketStatus = "ACTIVE"
	StatusUsed      TicketStatus = "USED"
	StatusExpired   TicketStatus = "EXPIRED"
	StatusCancelled TicketStatus = "CANCELLED"
)

// Cancellable reports whether a ticket in this status may still be
// cancelled and refunded. Only Active tickets are.
func (s TicketStatus) Cancellable() bool { return s == StatusActive }

// Ticket is a purchased trip between two stations.
//
// Price is the exact fare charged. RouteInfo is the human-readable
// navigation text produced at purchase time ("Direct Trip" when no
// route computation occurred).
type Ticket struct {
	ID          uuid.UUID
	UserID      string
	Source      string
	Destination string
	Price       decimal.Decimal
	RouteInfo   string
	Status      TicketStatus
	CreatedAt   time.Time
}
