package dto

import (
	"github.com/replyradar/replyradar/internal/enum"
)

// ClassificationResult is the analysis verdict produced for a message,
// either by the model, by the spam pre-filter, or by the degraded fallback
// when the model response cannot be parsed.
type ClassificationResult struct {
	Sentiment       enum.Sentiment         `json:"sentiment"`
	InterestLevel   enum.InterestLevel     `json:"interestLevel"`
	ConfidenceScore float64                `json:"confidenceScore"`
	Summary         string                 `json:"summary"`
	SuggestedAction string                 `json:"suggestedAction"`
	Category        string                 `json:"category"`
	Raw             map[string]interface{} `json:"raw,omitempty"`
}

// ReplyClassifiedEvent is published after a classification row is stored.
type ReplyClassifiedEvent struct {
	MessageID       string             `json:"messageId"`
	ThreadID        string             `json:"threadId"`
	MailboxID       string             `json:"mailboxId"`
	UserID          string             `json:"userId"`
	FromAddress     string             `json:"fromAddress"`
	Subject         string             `json:"subject"`
	Sentiment       enum.Sentiment     `json:"sentiment"`
	InterestLevel   enum.InterestLevel `json:"interestLevel"`
	ConfidenceScore float64            `json:"confidenceScore"`
	Summary         string             `json:"summary"`
	SuggestedAction string             `json:"suggestedAction"`
}
