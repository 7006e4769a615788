package metrostore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // postgres driver
	"github.com/shopspring/decimal"

	"github.com/urbanrail/metrofare/transit"
)

// PostgresStore implements the transit collaborator interfaces on top
// of a Postgres database. Schema (see migrations in the deployment
// repo): metro_lines, stations, station_on_line, passengers, tickets.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres opens a connection pool for the given DSN and verifies
// it with a ping.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("metrostore: opening postgres: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("metrostore: pinging postgres: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStore wraps an existing pool (useful for tests and shared
// pools).
func NewPostgresStore(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

// Close releases the connection pool.
func (s *PostgresStore) Close() error { return s.db.Close() }

// ActiveLines implements transit.MembershipSource.
func (s *PostgresStore) ActiveLines(ctx context.Context) ([]transit.Line, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, color, is_active FROM metro_lines WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("metrostore: querying active lines: %w", err)
	}
	defer rows.Close()

	var lines []transit.Line
	for rows.Next() {
		var l transit.Line
		if err = rows.Scan(&l.Name, &l.Color, &l.Active); err != nil {
			return nil, fmt.Errorf("metrostore: scanning line: %w", err)
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

// MembershipsForLine implements transit.MembershipSource, ordered by
// position along the line.
func (s *PostgresStore) MembershipsForLine(ctx context.Context, line string) ([]transit.Membership, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT st.name, ml.name, sol.position, sol.is_interchange
		   FROM station_on_line sol
		   JOIN stations st ON st.id = sol.station_id
		   JOIN metro_lines ml ON ml.id = sol.line_id
		  WHERE ml.name = $1
		  ORDER BY sol.position`, line)
	if err != nil {
		return nil, fmt.Errorf("metrostore: querying memberships of %q: %w", line, err)
	}
	defer rows.Close()

	var ms []transit.Membership
	for rows.Next() {
		var m transit.Membership
		if err = rows.Scan(&m.Station, &m.Line, &m.Order, &m.Interchange); err != nil {
			return nil, fmt.Errorf("metrostore: scanning membership: %w", err)
		}
		ms = append(ms, m)
	}

	return ms, rows.Err()
}

// StationByName implements transit.MembershipSource.
func (s *PostgresStore) StationByName(ctx context.Context, name string) (*transit.Station, error) {
	var st transit.Station
	err := s.db.QueryRowContext(ctx,
		`SELECT name, distance_from_hub FROM stations WHERE name = $1`, name).
		Scan(&st.Name, &st.DistanceFromHub)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", transit.ErrStationNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("metrostore: querying station %q: %w", name, err)
	}

	return &st, nil
}

// PassengerByID implements transit.PassengerDirectory.
func (s *PostgresStore) PassengerByID(ctx context.Context, id string) (*transit.Passenger, error) {
	var (
		p   transit.Passenger
		bal string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, balance::text FROM passengers WHERE id = $1`, id).
		Scan(&p.ID, &p.Email, &bal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", transit.ErrPassengerNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("metrostore: querying passenger %q: %w", id, err)
	}
	if p.Balance, err = decimal.NewFromString(bal); err != nil {
		return nil, fmt.Errorf("metrostore: parsing balance %q: %w", bal, err)
	}

	return &p, nil
}

// Balance implements transit.BalanceStore.
func (s *PostgresStore) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var bal string
	err := s.db.QueryRowContext(ctx,
		`SELECT balance::text FROM passengers WHERE id = $1`, userID).Scan(&bal)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", transit.ErrPassengerNotFound, userID)
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("metrostore: querying balance of %q: %w", userID, err)
	}

	return decimal.NewFromString(bal)
}

// Debit implements transit.BalanceStore. The guarded UPDATE performs
// the funds check and the subtraction in one statement, so the debit
// is atomic at the database even without the coordinator's lock.
func (s *PostgresStore) Debit(ctx context.Context, userID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return transit.ErrNegativeAmount
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE passengers SET balance = balance - $2 WHERE id = $1 AND balance >= $2`,
		userID, amount.String())
	if err != nil {
		return fmt.Errorf("metrostore: debiting %q: %w", userID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("metrostore: debiting %q: %w", userID, err)
	}
	if affected == 1 {
		return nil
	}

	// Nothing updated: either the passenger is unknown or the funds
	// were short. Disambiguate with a read.
	if _, err = s.Balance(ctx, userID); err != nil {
		return err
	}

	return transit.ErrInsufficientFunds
}

// Credit implements transit.BalanceStore.
func (s *PostgresStore) Credit(ctx context.Context, userID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return transit.ErrNegativeAmount
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE passengers SET balance = balance + $2 WHERE id = $1`,
		userID, amount.String())
	if err != nil {
		return fmt.Errorf("metrostore: crediting %q: %w", userID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("metrostore: crediting %q: %w", userID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", transit.ErrPassengerNotFound, userID)
	}

	return nil
}

// CreateTicket implements transit.TicketStore.
func (s *PostgresStore) CreateTicket(ctx context.Context, t *transit.Ticket) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tickets (id, user_id, source, destination, price, route_info, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.UserID, t.Source, t.Destination, t.Price.String(), t.RouteInfo, string(t.Status), t.CreatedAt)
	if err != nil {
		return fmt.Errorf("metrostore: inserting ticket %s: %w", t.ID, err)
	}

	return nil
}

// TicketByID implements transit.TicketStore.
func (s *PostgresStore) TicketByID(ctx context.Context, id uuid.UUID) (*transit.Ticket, error) {
	t, err := scanTicket(s.db.QueryRowContext(ctx,
		`SELECT id, user_id, source, destination, price::text, route_info, status, created_at
		   FROM tickets WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", transit.ErrTicketNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("metrostore: querying ticket %s: %w", id, err)
	}

	return t, nil
}

// TicketsByUser implements transit.TicketStore, newest first.
func (s *PostgresStore) TicketsByUser(ctx context.Context, userID string) ([]transit.Ticket, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, source, destination, price::text, route_info, status, created_at
		   FROM tickets WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("metrostore: querying tickets of %q: %w", userID, err)
	}
	defer rows.Close()

	var out []transit.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("metrostore: scanning ticket: %w", err)
		}
		out = append(out, *t)
	}

	return out, rows.Err()
}

// UpdateStatus implements transit.TicketStore with a guarded UPDATE.
func (s *PostgresStore) UpdateStatus(ctx context.Context, id uuid.UUID, from, to transit.TicketStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tickets SET status = $3 WHERE id = $1 AND status = $2`,
		id, string(from), string(to))
	if err != nil {
		return fmt.Errorf("metrostore: updating ticket %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("metrostore: updating ticket %s: %w", id, err)
	}
	if affected == 1 {
		return nil
	}

	if _, err = s.TicketByID(ctx, id); err != nil {
		return err
	}

	return fmt.Errorf("%w: %s is not %s", transit.ErrStatusConflict, id, from)
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*transit.Ticket, error) {
	var (
		t      transit.Ticket
		price  string
		status string
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Source, &t.Destination, &price, &t.RouteInfo, &status, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if t.Price, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	t.Status = transit.TicketStatus(status)

	return &t, nil
}
