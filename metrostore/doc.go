// Package metrostore implements the collaborator interfaces declared
// in transit: an in-memory store for tests and small deployments, a
// Postgres-backed store for production, and the bulk network loader.
//
// Both stores uphold the dataset invariants the routing core depends
// on: station names are unique identifiers, memberships are listed in
// ascending position order, and balance debits are conditional - a
// debit atomically verifies funds and subtracts, so concurrent debits
// can never jointly overdraw a wallet even without the coordinator's
// per-user serialization.
//
// LoadNetworkCSV ingests a delimited network description (the one-time
// administrative bulk load), rejecting duplicate station definitions
// and non-increasing order values per line, and derives each station's
// distance from the hub with the haversine great-circle formula.
package metrostore
