package transit

import "errors"

// Sentinel errors shared by store implementations. Callers match them
// with errors.Is.
var (
	// ErrStationNotFound indicates a lookup referenced an unknown station.
	ErrStationNotFound = errors.New("transit: station not found")

	// ErrLineNotFound indicates a lookup referenced an unknown line.
	ErrLineNotFound = errors.New("transit: line not found")

	// ErrPassengerNotFound indicates a lookup referenced an unknown passenger.
	ErrPassengerNotFound = errors.New("transit: passenger not found")

	// ErrTicketNotFound indicates a lookup referenced an unknown ticket.
	ErrTicketNotFound = errors.New("transit: ticket not found")

	// ErrInsufficientFunds is returned by BalanceStore.Debit when the
	// balance is lower than the requested amount. The debit must not
	// happen partially.
	ErrInsufficientFunds = errors.New("transit: insufficient funds")

	// ErrDuplicateStation indicates an attempt to register a second
	// station under an already-used name. Station names are unique
	// identifiers within the dataset.
	ErrDuplicateStation = errors.New("transit: duplicate station name")

	// ErrDuplicateLine indicates an attempt to register a second line
	// under an already-used name.
	ErrDuplicateLine = errors.New("transit: duplicate line name")

	// ErrStatusConflict is returned by TicketStore.UpdateStatus when the
	// ticket is not in the expected current status.
	ErrStatusConflict = errors.New("transit: ticket status conflict")

	// ErrNegativeAmount rejects debits and credits of negative amounts.
	ErrNegativeAmount = errors.New("transit: negative amount")
)
