// Package notify delivers passenger-facing messages and builds their
// content.
//
// Two transit.Notifier implementations ship here: LogNotifier, which
// records messages through structured logging (development and tests),
// and AMQPNotifier, which publishes them to a RabbitMQ queue for an
// out-of-process mailer to deliver.
//
// Message content (confirmation and OTP wording) is built by pure
// functions so any transport reuses the same texts. Delivery is
// best-effort by contract: callers fire and forget, and a failed Send
// never reverses the operation that triggered it.
package notify
