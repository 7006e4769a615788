package notify

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// LogNotifier implements transit.Notifier by writing the message to a
// structured log. Useful in development and as the default when no
// message broker is configured.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier builds a LogNotifier. A nil logger means the logrus
// standard logger.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.StandardLogger()
	}

	return &LogNotifier{logger: logger}
}

// Send implements transit.Notifier.
func (n *LogNotifier) Send(_ context.Context, recipient, subject, body string) error {
	n.logger.WithFields(log.Fields{
		"recipient": recipient,
		"subject":   subject,
	}).Info(body)

	return nil
}
