package ticketoffice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/urbanrail/metrofare/notify"
	"github.com/urbanrail/metrofare/transit"
)

// Purchase buys a ticket from source to destination for the given
// passenger.
//
// Errors: ErrClosed while the system is closed, ErrInvalidTrip for
// equal endpoints, transit.ErrStationNotFound for unknown stations,
// ErrNoRouteFound when the stations are not connected,
// transit.ErrPassengerNotFound for unknown passengers, and a
// *InsufficientBalanceError carrying the shortfall when the wallet
// cannot cover the fare. On success the balance has been debited by
// exactly the ticket price and the returned ticket is stored with
// status Active.
func (o *Office) Purchase(ctx context.Context, userID, source, destination string) (*transit.Ticket, error) {
	open, err := o.gate.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("ticketoffice: gate check: %w", err)
	}
	if !open {
		return nil, ErrClosed
	}

	quote, err := o.Quote(ctx, source, destination)
	if err != nil {
		return nil, err
	}

	passenger, err := o.passengers.PassengerByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Everything from the balance check to the ticket creation runs
	// under the passenger's lock: two concurrent purchases by the same
	// passenger cannot both pass the check against a stale balance.
	unlock := o.perUser.lock(userID)
	defer unlock()

	balance, err := o.balances.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(quote.Price) {
		return nil, &InsufficientBalanceError{
			Price:     quote.Price,
			Balance:   balance,
			Shortfall: quote.Price.Sub(balance),
		}
	}

	if err = o.balances.Debit(ctx, userID, quote.Price); err != nil {
		return nil, err
	}

	ticket := &transit.Ticket{
		ID:          uuid.New(),
		UserID:      userID,
		Source:      source,
		Destination: destination,
		Price:       quote.Price,
		RouteInfo:   quote.Description,
		Status:      transit.StatusActive,
		CreatedAt:   o.now(),
	}

	if err = o.tickets.CreateTicket(ctx, ticket); err != nil {
		// Compensate the debit so balance and tickets stay consistent.
		if refundErr := o.balances.Credit(ctx, userID, quote.Price); refundErr != nil {
			o.logger.WithFields(log.Fields{
				"user":  userID,
				"price": quote.Price.StringFixed(2),
			}).WithError(refundErr).Error("refund after failed ticket creation also failed")
		}

		return nil, fmt.Errorf("ticketoffice: creating ticket: %w", err)
	}

	o.logger.WithFields(log.Fields{
		"ticket":      ticket.ID,
		"user":        userID,
		"source":      source,
		"destination": destination,
		"hops":        quote.Route.Hops(),
		"price":       quote.Price.StringFixed(2),
	}).Info("ticket purchased")

	o.notifyPurchase(ctx, passenger, ticket)

	return ticket, nil
}

// notifyPurchase dispatches the confirmation message without blocking
// the purchase. Delivery failure is logged and never rolls the ticket
// back.
func (o *Office) notifyPurchase(ctx context.Context, p *transit.Passenger, t *transit.Ticket) {
	if o.notifier == nil {
		return
	}

	subject, body := notify.ConfirmationMessage(t)
	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()

		if err := o.notifier.Send(sendCtx, p.Email, subject, body); err != nil {
			o.logger.WithFields(log.Fields{
				"ticket":    t.ID,
				"recipient": p.Email,
			}).WithError(err).Warn("confirmation notification failed")
		}
	}()
}
