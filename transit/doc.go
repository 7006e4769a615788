// Package transit defines the domain records of the metro fare system -
// stations, lines, line memberships, passengers and tickets - together
// with the collaborator interfaces the routing and ticketing core
// consumes: the membership data source, the balance store, the ticket
// store and the notifier.
//
// What
//
//   - Station, Line, Membership: the network description the graph is
//     derived from. A Membership places one station on one line at an
//     explicit order; interchange stations carry one Membership per line.
//   - Passenger: identity plus a decimal wallet balance.
//   - Ticket: a priced, described trip with a lifecycle status
//     (Active, Used, Expired, Cancelled).
//   - MembershipSource, BalanceStore, PassengerDirectory, TicketStore,
//     Notifier: the seams to external storage and delivery. The core
//     never talks to a database or a mail system directly.
//
// Why
//
//	Keeping records and seams in one leaf package lets the algorithmic
//	packages (metrograph, route, fare) stay pure while store
//	implementations (metrostore) and delivery (notify) evolve freely.
//
// All money is represented with shopspring/decimal; binary floating
// point never touches a price or a balance.
package transit
