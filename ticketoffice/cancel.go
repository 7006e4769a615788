package ticketoffice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/urbanrail/metrofare/transit"
)

// Cancel cancels an Active ticket owned by userID and refunds its full
// price to the passenger's balance.
//
// Errors: transit.ErrTicketNotFound for unknown tickets,
// ErrNotTicketOwner when the ticket belongs to someone else, and
// ErrNotCancellable when the ticket is used, expired or already
// cancelled.
func (o *Office) Cancel(ctx context.Context, userID string, ticketID uuid.UUID) error {
	unlock := o.perUser.lock(userID)
	defer unlock()

	ticket, err := o.tickets.TicketByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.UserID != userID {
		return ErrNotTicketOwner
	}
	if !ticket.Status.Cancellable() {
		return ErrNotCancellable
	}

	// The conditional transition is the gate against double refunds:
	// it succeeds for exactly one cancellation of a given ticket.
	err = o.tickets.UpdateStatus(ctx, ticketID, transit.StatusActive, transit.StatusCancelled)
	if errors.Is(err, transit.ErrStatusConflict) {
		return ErrNotCancellable
	}
	if err != nil {
		return err
	}

	if err = o.balances.Credit(ctx, userID, ticket.Price); err != nil {
		// Put the ticket back so the passenger can retry; losing the
		// refund would be worse than keeping the ticket Active.
		if revertErr := o.tickets.UpdateStatus(ctx, ticketID, transit.StatusCancelled, transit.StatusActive); revertErr != nil {
			o.logger.WithField("ticket", ticketID).WithError(revertErr).
				Error("revert after failed refund also failed")
		}

		return fmt.Errorf("ticketoffice: refunding cancellation: %w", err)
	}

	o.logger.WithFields(log.Fields{
		"ticket": ticketID,
		"user":   userID,
		"refund": ticket.Price.StringFixed(2),
	}).Info("ticket cancelled")

	return nil
}

// TicketsFor lists the passenger's tickets, newest first.
func (o *Office) TicketsFor(ctx context.Context, userID string) ([]transit.Ticket, error) {
	return o.tickets.TicketsByUser(ctx, userID)
}
