package metrostore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/urbanrail/metrofare/metrostore"
	"github.com/urbanrail/metrofare/transit"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)

	return d
}

// TestUniqueNames: station and line names are unique dataset
// identifiers.
func TestUniqueNames(t *testing.T) {
	s := metrostore.NewMemoryStore()

	require.NoError(t, s.AddStation(transit.Station{Name: "Central"}))
	err := s.AddStation(transit.Station{Name: "Central"})
	require.ErrorIs(t, err, transit.ErrDuplicateStation)

	require.NoError(t, s.AddLine(transit.Line{Name: "Green", Active: true}))
	err = s.AddLine(transit.Line{Name: "Green"})
	require.ErrorIs(t, err, transit.ErrDuplicateLine)
}

// TestMembershipOrdering: memberships come back ordered by position
// regardless of insertion order.
func TestMembershipOrdering(t *testing.T) {
	ctx := context.Background()
	s := metrostore.NewMemoryStore()

	require.NoError(t, s.AddLine(transit.Line{Name: "Green", Active: true}))
	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, s.AddStation(transit.Station{Name: name}))
	}
	require.NoError(t, s.AddMembership(transit.Membership{Station: "C", Line: "Green", Order: 3}))
	require.NoError(t, s.AddMembership(transit.Membership{Station: "A", Line: "Green", Order: 1}))
	require.NoError(t, s.AddMembership(transit.Membership{Station: "B", Line: "Green", Order: 2}))

	ms, err := s.MembershipsForLine(ctx, "Green")
	require.NoError(t, err)
	require.Len(t, ms, 3)
	for i, want := range []string{"A", "B", "C"} {
		require.Equal(t, want, ms[i].Station)
	}

	// membership registration requires known line and station
	err = s.AddMembership(transit.Membership{Station: "A", Line: "Ghost", Order: 1})
	require.ErrorIs(t, err, transit.ErrLineNotFound)
	err = s.AddMembership(transit.Membership{Station: "Ghost", Line: "Green", Order: 9})
	require.ErrorIs(t, err, transit.ErrStationNotFound)
}

// TestInactiveLinesFiltered: ActiveLines never returns inactive lines.
func TestInactiveLinesFiltered(t *testing.T) {
	ctx := context.Background()
	s := metrostore.NewMemoryStore()

	require.NoError(t, s.AddLine(transit.Line{Name: "Green", Active: true}))
	require.NoError(t, s.AddLine(transit.Line{Name: "Closed", Active: false}))

	lines, err := s.ActiveLines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, "Green", lines[0].Name)
}

// TestDebitConditional: a debit either subtracts in full or fails with
// ErrInsufficientFunds, and unknown passengers are distinguished.
func TestDebitConditional(t *testing.T) {
	ctx := context.Background()
	s := metrostore.NewMemoryStore()
	s.AddPassenger(transit.Passenger{ID: "amira", Balance: dec(t, "10.00")})

	require.NoError(t, s.Debit(ctx, "amira", dec(t, "4.00")))

	err := s.Debit(ctx, "amira", dec(t, "7.00"))
	require.ErrorIs(t, err, transit.ErrInsufficientFunds)

	balance, err := s.Balance(ctx, "amira")
	require.NoError(t, err)
	require.Equal(t, "6.00", balance.StringFixed(2), "failed debit must not touch the balance")

	require.ErrorIs(t, s.Debit(ctx, "ghost", dec(t, "1.00")), transit.ErrPassengerNotFound)
	require.ErrorIs(t, s.Debit(ctx, "amira", dec(t, "-1.00")), transit.ErrNegativeAmount)
}

// TestDebitConcurrentNoOverdraw hammers one wallet from many
// goroutines; the sum of successful debits never exceeds the balance.
func TestDebitConcurrentNoOverdraw(t *testing.T) {
	ctx := context.Background()
	s := metrostore.NewMemoryStore()
	s.AddPassenger(transit.Passenger{ID: "amira", Balance: dec(t, "10.00")})

	const workers = 16
	amount := dec(t, "4.00") // at most 2 of 16 can win

	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Debit(ctx, "amira", amount)
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, transit.ErrInsufficientFunds)
		}
	}
	require.Equal(t, 2, wins)

	balance, err := s.Balance(ctx, "amira")
	require.NoError(t, err)
	require.Equal(t, "2.00", balance.StringFixed(2))
}

// TestTicketLifecycle covers creation, lookup, newest-first listing
// and the conditional status transition.
func TestTicketLifecycle(t *testing.T) {
	ctx := context.Background()
	s := metrostore.NewMemoryStore()

	older := transit.Ticket{
		ID: uuid.New(), UserID: "amira", Source: "A", Destination: "B",
		Price: dec(t, "4.00"), Status: transit.StatusActive,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := transit.Ticket{
		ID: uuid.New(), UserID: "amira", Source: "B", Destination: "C",
		Price: dec(t, "4.00"), Status: transit.StatusActive,
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreateTicket(ctx, &older))
	require.NoError(t, s.CreateTicket(ctx, &newer))

	listed, err := s.TicketsByUser(ctx, "amira")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, newer.ID, listed[0].ID, "newest first")

	require.NoError(t, s.UpdateStatus(ctx, older.ID, transit.StatusActive, transit.StatusCancelled))
	err = s.UpdateStatus(ctx, older.ID, transit.StatusActive, transit.StatusCancelled)
	require.ErrorIs(t, err, transit.ErrStatusConflict)

	err = s.UpdateStatus(ctx, uuid.New(), transit.StatusActive, transit.StatusUsed)
	require.ErrorIs(t, err, transit.ErrTicketNotFound)

	stored, err := s.TicketByID(ctx, older.ID)
	require.NoError(t, err)
	require.Equal(t, transit.StatusCancelled, stored.Status)
}
