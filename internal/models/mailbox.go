package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/replyradar/replyradar/internal/enum"
	"github.com/replyradar/replyradar/internal/utils"
)

// Mailbox is a connected provider account that we poll for campaign replies.
type Mailbox struct {
	ID                string             `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	UserID            string             `gorm:"column:user_id;type:varchar(50);index;not null" json:"userId"`
	EmailAddress      string             `gorm:"column:email_address;type:varchar(255);index" json:"emailAddress"`
	ProviderAccountID string             `gorm:"column:provider_account_id;type:varchar(255)" json:"providerAccountId"`
	Status            enum.MailboxStatus `gorm:"column:status;type:varchar(50);index" json:"status"`
	ErrorMessage      string             `gorm:"column:error_message;type:text" json:"errorMessage"`

	// Credentials are encrypted at rest by the store layer; from the sync
	// pipeline's perspective they are opaque read-only inputs.
	AccessToken  string `gorm:"column:access_token;type:text" json:"-"`
	RefreshToken string `gorm:"column:refresh_token;type:text" json:"-"`

	// LastSyncedAt is a display watermark, not a resumable cursor. Every sync
	// pass re-scans the same query window.
	LastSyncedAt *time.Time `gorm:"column:last_synced_at;type:timestamp" json:"lastSyncedAt"`

	CreatedAt time.Time      `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Mailbox) TableName() string {
	return "mailboxes"
}

func (m *Mailbox) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = utils.GenerateNanoIDWithPrefix("mbox", 16)
	}
	if m.Status == "" {
		m.Status = enum.MailboxConnected
	}
	m.CreatedAt = utils.Now()
	return nil
}
