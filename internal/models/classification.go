package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/replyradar/replyradar/internal/enum"
	"github.com/replyradar/replyradar/internal/utils"
)

// Classification is the stored analysis verdict for a message. One row per
// message, enforced by the unique index on message_id.
type Classification struct {
	ID        string `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	MessageID string `gorm:"column:message_id;type:varchar(50);uniqueIndex:idx_classification_message_id;not null" json:"messageId"`
	UserID    string `gorm:"column:user_id;type:varchar(50);index;not null" json:"userId"`

	Sentiment       enum.Sentiment     `gorm:"column:sentiment;type:varchar(50);index" json:"sentiment"`
	InterestLevel   enum.InterestLevel `gorm:"column:interest_level;type:varchar(50);index" json:"interestLevel"`
	ConfidenceScore float64            `gorm:"column:confidence_score;type:decimal(4,3)" json:"confidenceScore"`
	Summary         string             `gorm:"column:summary;type:text" json:"summary"`
	SuggestedAction string             `gorm:"column:suggested_action;type:text" json:"suggestedAction"`
	Category        string             `gorm:"column:category;type:varchar(100)" json:"category"`

	// RawResponse keeps whatever the model actually returned, for audit and
	// prompt tuning. Empty for synthetic spam verdicts.
	RawResponse JSONMap `gorm:"column:raw_response;type:jsonb" json:"rawResponse"`

	CreatedAt time.Time      `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Classification) TableName() string {
	return "classifications"
}

func (c *Classification) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = utils.GenerateNanoIDWithPrefix("clsf", 16)
	}
	c.CreatedAt = utils.Now()
	return nil
}
