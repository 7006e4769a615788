// Package ticketoffice coordinates the ticket purchase flow: route
// lookup, instruction rendering, pricing, balance check, debit and
// ticket issuance, plus the supplementary cancellation and quoting
// operations.
//
// Flow of a purchase
//
//	gate check → same-station rejection → route search → describe +
//	price → balance check → debit + ticket creation → confirmation
//	notification.
//
// The debit and the ticket creation happen inside a per-user critical
// section and are compensated as a pair: a failed creation refunds the
// debit, so no interleaving observes a debited balance without a
// ticket or a ticket without a debit. Two concurrent purchases by the
// same passenger are serialized, so a balance covering exactly one
// ticket yields exactly one success (no check-then-act overdraft).
//
// Notification is fire-and-forget: it runs after the ticket exists, on
// a detached context, and a delivery failure is logged but never rolls
// the ticket back.
//
// Route quotes are cached with a TTL keyed by source→destination; the
// cache is flushed whenever the network graph is rebuilt.
package ticketoffice
