package interfaces

import (
	"context"

	"github.com/replyradar/replyradar/dto"
	"github.com/replyradar/replyradar/internal/models"
)

// MailboxProvider is a connected account's view of its provider API.
type MailboxProvider interface {
	// ListMessageIDs returns provider message ids matching the sync query
	// window, newest first.
	ListMessageIDs(ctx context.Context, maxResults int64) ([]string, error)
	// FetchMessage retrieves and flattens a single message.
	FetchMessage(ctx context.Context, providerMessageID string) (*dto.InboundEnvelope, error)
}

// MailboxProviderFactory builds a provider client from stored credentials.
type MailboxProviderFactory interface {
	ProviderFor(ctx context.Context, mailbox *models.Mailbox) (MailboxProvider, error)
}
