package ticketoffice

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/urbanrail/metrofare/fare"
	"github.com/urbanrail/metrofare/metrograph"
	"github.com/urbanrail/metrofare/route"
	"github.com/urbanrail/metrofare/transit"
)

// Gate answers whether the metro system currently accepts purchases.
// It models the operator's system-open switch; the default gate is
// always open.
type Gate interface {
	Open(ctx context.Context) (bool, error)
}

// GateFunc adapts a function to the Gate interface.
type GateFunc func(ctx context.Context) (bool, error)

// Open implements Gate.
func (f GateFunc) Open(ctx context.Context) (bool, error) { return f(ctx) }

// AlwaysOpen is a Gate that never refuses.
var AlwaysOpen Gate = GateFunc(func(context.Context) (bool, error) { return true, nil })

const (
	defaultQuoteTTL      = 5 * time.Minute
	quoteCleanupInterval = 10 * time.Minute
	notifyTimeout        = 10 * time.Second
)

// Config wires an Office. Memberships, Balances, Passengers and
// Tickets are required; the rest defaults as documented.
type Config struct {
	// Memberships supplies the station/line data the graph is built from.
	Memberships transit.MembershipSource

	// Balances is the passenger wallet store.
	Balances transit.BalanceStore

	// Passengers resolves passenger identities for notification.
	Passengers transit.PassengerDirectory

	// Tickets is the ticket store.
	Tickets transit.TicketStore

	// Notifier delivers purchase confirmations. Nil disables
	// notification entirely.
	Notifier transit.Notifier

	// Gate is the system-open check. Nil means AlwaysOpen.
	Gate Gate

	// Tariff prices trips. Nil means the standard tariff.
	Tariff *fare.Calculator

	// Logger receives structured operational logs. Nil means the
	// logrus standard logger.
	Logger *log.Logger

	// QuoteTTL bounds how long a cached route quote stays valid.
	// Zero means 5 minutes.
	QuoteTTL time.Duration
}

// Office is the external-facing entry point of the fare core.
// It is safe for concurrent use.
type Office struct {
	memberships transit.MembershipSource
	balances    transit.BalanceStore
	passengers  transit.PassengerDirectory
	tickets     transit.TicketStore
	notifier    transit.Notifier
	gate        Gate
	tariff      fare.Calculator
	logger      *log.Logger

	graphs *metrograph.Holder
	quotes *gocache.Cache

	// perUser serializes the balance-check/debit/create section per
	// passenger; see doc.go.
	perUser *keyedMutex

	// now is swappable in tests.
	now func() time.Time
}

// New builds an Office from cfg. Returns ErrNilDependency when a
// required collaborator is missing.
func New(cfg Config) (*Office, error) {
	switch {
	case cfg.Memberships == nil:
		return nil, fmt.Errorf("%w: Memberships", ErrNilDependency)
	case cfg.Balances == nil:
		return nil, fmt.Errorf("%w: Balances", ErrNilDependency)
	case cfg.Passengers == nil:
		return nil, fmt.Errorf("%w: Passengers", ErrNilDependency)
	case cfg.Tickets == nil:
		return nil, fmt.Errorf("%w: Tickets", ErrNilDependency)
	}

	tariff := fare.Standard()
	if cfg.Tariff != nil {
		tariff = *cfg.Tariff
	}
	gate := cfg.Gate
	if gate == nil {
		gate = AlwaysOpen
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	ttl := cfg.QuoteTTL
	if ttl <= 0 {
		ttl = defaultQuoteTTL
	}

	return &Office{
		memberships: cfg.Memberships,
		balances:    cfg.Balances,
		passengers:  cfg.Passengers,
		tickets:     cfg.Tickets,
		notifier:    cfg.Notifier,
		gate:        gate,
		tariff:      tariff,
		logger:      logger,
		graphs:      metrograph.NewHolder(nil),
		quotes:      gocache.New(ttl, quoteCleanupInterval),
		perUser:     newKeyedMutex(),
		now:         time.Now,
	}, nil
}

// RefreshNetwork rebuilds the transit graph from the membership source
// and flushes the quote cache. Call it after any membership change; a
// failed rebuild keeps the previous graph and cache.
func (o *Office) RefreshNetwork(ctx context.Context) error {
	if err := o.graphs.Rebuild(ctx, o.memberships); err != nil {
		return err
	}
	o.quotes.Flush()
	o.logger.WithField("stations", o.graphs.Snapshot().StationCount()).Info("transit graph rebuilt")

	return nil
}

// graph returns the current graph snapshot, building it on first use.
func (o *Office) graph(ctx context.Context) (*metrograph.Graph, error) {
	if g := o.graphs.Snapshot(); g != nil {
		return g, nil
	}
	if err := o.RefreshNetwork(ctx); err != nil {
		return nil, err
	}

	return o.graphs.Snapshot(), nil
}

// Quote is a priced, described route between two stations, computed
// without purchasing.
type Quote struct {
	Route       *route.Route
	Description string
	Price       decimal.Decimal
}

// Quote computes (or serves from cache) the route, description and
// price for a trip. Returns ErrInvalidTrip for equal endpoints,
// transit.ErrStationNotFound for unknown stations and ErrNoRouteFound
// when the stations are not connected.
func (o *Office) Quote(ctx context.Context, source, destination string) (*Quote, error) {
	if source == destination {
		return nil, ErrInvalidTrip
	}
	if _, err := o.memberships.StationByName(ctx, source); err != nil {
		return nil, err
	}
	if _, err := o.memberships.StationByName(ctx, destination); err != nil {
		return nil, err
	}

	key := source + "\x00" + destination
	if cached, ok := o.quotes.Get(key); ok {
		return cached.(*Quote), nil
	}

	g, err := o.graph(ctx)
	if err != nil {
		return nil, err
	}

	r, err := route.Find(g, source, destination, route.WithContext(ctx))
	switch {
	case err == nil:
	case errors.Is(err, route.ErrSameStation):
		return nil, ErrInvalidTrip
	case errors.Is(err, route.ErrNoRoute), errors.Is(err, route.ErrStationNotFound):
		return nil, ErrNoRouteFound
	default:
		return nil, err
	}

	price, err := o.tariff.Price(r.Hops())
	if err != nil {
		return nil, err
	}

	q := &Quote{Route: r, Description: r.Describe(), Price: price}
	o.quotes.SetDefault(key, q)

	return q, nil
}
