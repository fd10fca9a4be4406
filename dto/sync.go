package dto

import "time"

type MessageSyncStatus string

const (
	// MessageInserted means the message was new and stored this pass.
	MessageInserted MessageSyncStatus = "inserted"
	// MessageAlreadyClassified means the message existed with a stored verdict.
	MessageAlreadyClassified MessageSyncStatus = "already_classified"
	// MessageClassifiedNow means the message existed without a verdict and one
	// was produced this pass.
	MessageClassifiedNow MessageSyncStatus = "classified_now"
	// MessageFailed means this message errored; the sync pass continued.
	MessageFailed MessageSyncStatus = "failed"
)

// MessageSyncResult is the per-message outcome of a sync pass.
type MessageSyncResult struct {
	ProviderMessageID string            `json:"providerMessageId"`
	MessageID         string            `json:"messageId,omitempty"`
	Status            MessageSyncStatus `json:"status"`
	Classified        bool              `json:"classified"`
	Error             string            `json:"error,omitempty"`
}

// MailboxSyncResult aggregates one mailbox's sync pass.
type MailboxSyncResult struct {
	MailboxID    string              `json:"mailboxId"`
	EmailAddress string              `json:"emailAddress"`
	Success      bool                `json:"success"`
	Error        string              `json:"error,omitempty"`
	Total        int                 `json:"total"`
	Processed    int                 `json:"processed"`
	Inserted     int                 `json:"inserted"`
	Classified   int                 `json:"classified"`
	Skipped      int                 `json:"skipped"`
	Failed       int                 `json:"failed"`
	Messages     []MessageSyncResult `json:"messages,omitempty"`
	StartedAt    time.Time           `json:"startedAt"`
	CompletedAt  time.Time           `json:"completedAt"`
}

// FleetSyncResult aggregates a pass over every active mailbox. One mailbox
// failing never aborts the rest.
type FleetSyncResult struct {
	Mailboxes   []MailboxSyncResult `json:"mailboxes"`
	Succeeded   int                 `json:"succeeded"`
	Failed      int                 `json:"failed"`
	StartedAt   time.Time           `json:"startedAt"`
	CompletedAt time.Time           `json:"completedAt"`
}
