package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/replyradar/replyradar/internal/utils"
)

// Thread mirrors a provider conversation. Threads are identified by the
// provider's native thread id, scoped per mailbox.
type Thread struct {
	ID               string `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	MailboxID        string `gorm:"column:mailbox_id;type:varchar(50);uniqueIndex:idx_thread_mailbox_provider;not null" json:"mailboxId"`
	UserID           string `gorm:"column:user_id;type:varchar(50);index;not null" json:"userId"`
	ProviderThreadID string `gorm:"column:provider_thread_id;type:varchar(255);uniqueIndex:idx_thread_mailbox_provider;not null" json:"providerThreadId"`
	Subject          string `gorm:"column:subject;type:varchar(1000)" json:"subject"`

	// LeadAddress is the counterparty captured from the first inbound
	// message of the conversation.
	LeadAddress string `gorm:"column:lead_address;type:varchar(255);index" json:"leadAddress"`

	LastMessageAt *time.Time `gorm:"column:last_message_at;type:timestamp;index" json:"lastMessageAt"`

	CreatedAt time.Time      `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Thread) TableName() string {
	return "threads"
}

func (t *Thread) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = utils.GenerateNanoIDWithPrefix("thrd", 16)
	}
	t.CreatedAt = utils.Now()
	return nil
}
