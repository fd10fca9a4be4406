package interfaces

import (
	"context"

	"github.com/replyradar/replyradar/dto"
)

type SyncService interface {
	SyncMailbox(ctx context.Context, mailboxID string) (*dto.MailboxSyncResult, error)
	SyncAllMailboxes(ctx context.Context) (*dto.FleetSyncResult, error)
}

type MailboxService interface {
	ConnectMailbox(ctx context.Context, request dto.ConnectMailboxRequest) (*dto.MailboxResponse, error)
}
