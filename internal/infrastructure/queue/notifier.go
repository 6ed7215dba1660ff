package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/updates-app/updates-backend/internal/core/ports"
)

// LogNotifier records reset notifications in the structured log. Email
// delivery is owned by an external collaborator; this implementation keeps
// the pipeline observable until that integration lands. The token itself is
// never logged.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, notification ports.ResetNotification) error {
	n.log.Info().
		Str("email", notification.Email).
		Time("expires_at", notification.ExpiresAt).
		Msg("password reset requested")
	return nil
}
