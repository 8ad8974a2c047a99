package ports

import "context"

// Deliverer sends a single file to a notification recipient.
type Deliverer interface {
	// Send delivers the file at filePath to recipient with the given caption.
	// An empty filePath must fail with domain.ErrNoTarget.
	Send(ctx context.Context, recipient, filePath, caption string) error

	// Close releases the underlying session. It is called once when the
	// watch loop exits.
	Close() error
}
