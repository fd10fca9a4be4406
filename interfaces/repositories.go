package interfaces

import (
	"context"
	"time"

	"github.com/replyradar/replyradar/internal/models"
)

type MailboxRepository interface {
	Create(ctx context.Context, mailbox *models.Mailbox) error
	GetByID(ctx context.Context, id string) (*models.Mailbox, error)
	GetByEmailAddress(ctx context.Context, emailAddress string) (*models.Mailbox, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Mailbox, error)
	ListActive(ctx context.Context) ([]*models.Mailbox, error)
	Update(ctx context.Context, mailbox *models.Mailbox) error
	UpdateStatus(ctx context.Context, id string, status string, errorMessage string) error
	UpdateLastSyncedAt(ctx context.Context, id string, syncedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type ThreadRepository interface {
	GetByID(ctx context.Context, id string) (*models.Thread, error)
	GetByProviderThreadID(ctx context.Context, mailboxID, providerThreadID string) (*models.Thread, error)
	ListByMailbox(ctx context.Context, mailboxID string, limit, offset int) ([]*models.Thread, int64, error)
	Upsert(ctx context.Context, thread *models.Thread) (*models.Thread, error)
	TouchLastMessageAt(ctx context.Context, id string, lastMessageAt time.Time) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	GetByProviderMessageID(ctx context.Context, providerMessageID string) (*models.Message, error)
	ListByThread(ctx context.Context, threadID string) ([]*models.Message, error)
	ListByMailbox(ctx context.Context, mailboxID string, limit, offset int) ([]*models.Message, int64, error)
	MarkClassified(ctx context.Context, id string) error
	Update(ctx context.Context, message *models.Message) error
}

type ClassificationRepository interface {
	Create(ctx context.Context, classification *models.Classification) error
	GetByMessageID(ctx context.Context, messageID string) (*models.Classification, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Classification, int64, error)
}
