package dto

import "time"

// InboundEnvelope is a provider-neutral view of a fetched message, already
// flattened from whatever MIME shape the provider returned.
type InboundEnvelope struct {
	ProviderMessageID string    `json:"providerMessageId"`
	ProviderThreadID  string    `json:"providerThreadId"`
	Subject           string    `json:"subject"`
	FromAddress       string    `json:"fromAddress"`
	FromName          string    `json:"fromName"`
	To                []string  `json:"to"`
	Cc                []string  `json:"cc"`
	BodyText          string    `json:"bodyText"`
	BodyHTML          string    `json:"bodyHtml"`
	Snippet           string    `json:"snippet"`
	IsRead            bool      `json:"isRead"`
	ReceivedAt        time.Time `json:"receivedAt"`
}
