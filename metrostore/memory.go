package metrostore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/urbanrail/metrofare/transit"
)

// MemoryStore is an in-memory implementation of every collaborator
// interface in transit: MembershipSource, BalanceStore,
// PassengerDirectory and TicketStore. Safe for concurrent use.
type MemoryStore struct {
	mu sync.RWMutex

	lines       map[string]transit.Line
	lineOrder   []string
	stations    map[string]transit.Station
	memberships map[string][]transit.Membership // keyed by line, kept ordered
	passengers  map[string]transit.Passenger
	tickets     map[uuid.UUID]transit.Ticket
	ticketSeq   []uuid.UUID // insertion order, oldest first
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lines:       make(map[string]transit.Line),
		stations:    make(map[string]transit.Station),
		memberships: make(map[string][]transit.Membership),
		passengers:  make(map[string]transit.Passenger),
		tickets:     make(map[uuid.UUID]transit.Ticket),
	}
}

// AddLine registers a line. Returns transit.ErrDuplicateLine when the
// name is taken.
func (s *MemoryStore) AddLine(l transit.Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.lines[l.Name]; exists {
		return fmt.Errorf("%w: %q", transit.ErrDuplicateLine, l.Name)
	}
	s.lines[l.Name] = l
	s.lineOrder = append(s.lineOrder, l.Name)

	return nil
}

// AddStation registers a station. Station names are unique dataset
// identifiers; a second registration fails with
// transit.ErrDuplicateStation.
func (s *MemoryStore) AddStation(st transit.Station) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.stations[st.Name]; exists {
		return fmt.Errorf("%w: %q", transit.ErrDuplicateStation, st.Name)
	}
	s.stations[st.Name] = st

	return nil
}

// AddMembership places a station on a line. Both must be registered.
// Memberships are kept sorted by ascending order.
func (s *MemoryStore) AddMembership(m transit.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lines[m.Line]; !ok {
		return fmt.Errorf("%w: %q", transit.ErrLineNotFound, m.Line)
	}
	if _, ok := s.stations[m.Station]; !ok {
		return fmt.Errorf("%w: %q", transit.ErrStationNotFound, m.Station)
	}

	ms := append(s.memberships[m.Line], m)
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Order < ms[j].Order })
	s.memberships[m.Line] = ms

	return nil
}

// AddPassenger registers a passenger, overwriting any previous record
// with the same ID.
func (s *MemoryStore) AddPassenger(p transit.Passenger) {
	s.mu.Lock()
	s.passengers[p.ID] = p
	s.mu.Unlock()
}

// ActiveLines implements transit.MembershipSource. Lines come back in
// registration order.
func (s *MemoryStore) ActiveLines(_ context.Context) ([]transit.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]transit.Line, 0, len(s.lineOrder))
	for _, name := range s.lineOrder {
		if l := s.lines[name]; l.Active {
			out = append(out, l)
		}
	}

	return out, nil
}

// MembershipsForLine implements transit.MembershipSource.
func (s *MemoryStore) MembershipsForLine(_ context.Context, line string) ([]transit.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.lines[line]; !ok {
		return nil, fmt.Errorf("%w: %q", transit.ErrLineNotFound, line)
	}

	ms := s.memberships[line]
	out := make([]transit.Membership, len(ms))
	copy(out, ms)

	return out, nil
}

// StationByName implements transit.MembershipSource.
func (s *MemoryStore) StationByName(_ context.Context, name string) (*transit.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", transit.ErrStationNotFound, name)
	}

	return &st, nil
}

// PassengerByID implements transit.PassengerDirectory.
func (s *MemoryStore) PassengerByID(_ context.Context, id string) (*transit.Passenger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.passengers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", transit.ErrPassengerNotFound, id)
	}

	return &p, nil
}

// Balance implements transit.BalanceStore.
func (s *MemoryStore) Balance(_ context.Context, userID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.passengers[userID]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", transit.ErrPassengerNotFound, userID)
	}

	return p.Balance, nil
}

// Debit implements transit.BalanceStore. The funds check and the
// subtraction happen under one lock, so concurrent debits cannot
// jointly overdraw the wallet.
func (s *MemoryStore) Debit(_ context.Context, userID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return transit.ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.passengers[userID]
	if !ok {
		return fmt.Errorf("%w: %q", transit.ErrPassengerNotFound, userID)
	}
	if p.Balance.LessThan(amount) {
		return transit.ErrInsufficientFunds
	}
	p.Balance = p.Balance.Sub(amount)
	s.passengers[userID] = p

	return nil
}

// Credit implements transit.BalanceStore.
func (s *MemoryStore) Credit(_ context.Context, userID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return transit.ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.passengers[userID]
	if !ok {
		return fmt.Errorf("%w: %q", transit.ErrPassengerNotFound, userID)
	}
	p.Balance = p.Balance.Add(amount)
	s.passengers[userID] = p

	return nil
}

// CreateTicket implements transit.TicketStore.
func (s *MemoryStore) CreateTicket(_ context.Context, t *transit.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tickets[t.ID] = *t
	s.ticketSeq = append(s.ticketSeq, t.ID)

	return nil
}

// TicketByID implements transit.TicketStore.
func (s *MemoryStore) TicketByID(_ context.Context, id uuid.UUID) (*transit.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tickets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", transit.ErrTicketNotFound, id)
	}

	return &t, nil
}

// TicketsByUser implements transit.TicketStore: the passenger's
// tickets, newest first.
func (s *MemoryStore) TicketsByUser(_ context.Context, userID string) ([]transit.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []transit.Ticket
	for i := len(s.ticketSeq) - 1; i >= 0; i-- {
		if t := s.tickets[s.ticketSeq[i]]; t.UserID == userID {
			out = append(out, t)
		}
	}

	return out, nil
}

// UpdateStatus implements transit.TicketStore. The transition is
// conditional on the current status.
func (s *MemoryStore) UpdateStatus(_ context.Context, id uuid.UUID, from, to transit.TicketStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[id]
	if !ok {
		return fmt.Errorf("%w: %s", transit.ErrTicketNotFound, id)
	}
	if t.Status != from {
		return fmt.Errorf("%w: %s is %s, not %s", transit.ErrStatusConflict, id, t.Status, from)
	}
	t.Status = to
	s.tickets[id] = t

	return nil
}
