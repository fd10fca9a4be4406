package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/replyradar/replyradar/internal/enum"
	"github.com/replyradar/replyradar/internal/utils"
)

// Message is a single normalized email pulled from a provider. The provider
// message id carries the global uniqueness guarantee used for dedup.
type Message struct {
	ID                string `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	MailboxID         string `gorm:"column:mailbox_id;type:varchar(50);index;not null" json:"mailboxId"`
	ThreadID          string `gorm:"column:thread_id;type:varchar(50);index" json:"threadId"`
	UserID            string `gorm:"column:user_id;type:varchar(50);index;not null" json:"userId"`
	ProviderMessageID string `gorm:"column:provider_message_id;type:varchar(255);uniqueIndex:idx_message_provider_id;not null" json:"providerMessageId"`
	ProviderThreadID  string `gorm:"column:provider_thread_id;type:varchar(255);index" json:"providerThreadId"`

	Direction enum.EmailDirection `gorm:"column:direction;type:varchar(20);index" json:"direction"`

	FromAddress string         `gorm:"column:from_address;type:varchar(255);index" json:"fromAddress"`
	FromName    string         `gorm:"column:from_name;type:varchar(255)" json:"fromName"`
	ToAddresses pq.StringArray `gorm:"column:to_addresses;type:text[]" json:"toAddresses"`
	CcAddresses pq.StringArray `gorm:"column:cc_addresses;type:text[]" json:"ccAddresses"`

	Subject  string `gorm:"column:subject;type:varchar(1000)" json:"subject"`
	BodyText string `gorm:"column:body_text;type:text" json:"bodyText"`
	BodyHTML string `gorm:"column:body_html;type:text" json:"bodyHtml"`
	Snippet  string `gorm:"column:snippet;type:varchar(1000)" json:"snippet"`

	IsRead     bool       `gorm:"column:is_read;default:false" json:"isRead"`
	ReceivedAt *time.Time `gorm:"column:received_at;type:timestamp;index" json:"receivedAt"`

	Classified bool `gorm:"column:classified;index;default:false" json:"classified"`

	CreatedAt time.Time      `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = utils.GenerateNanoIDWithPrefix("msg", 16)
	}
	m.CreatedAt = utils.Now()
	return nil
}
