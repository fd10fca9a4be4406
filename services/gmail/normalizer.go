package gmail

import (
	"encoding/base64"
	"net/mail"
	"strings"
	"time"

	"github.com/customeros/mailsherpa/mailvalidate"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/replyradar/replyradar/dto"
	"github.com/replyradar/replyradar/internal/utils"
)

// NormalizeMessage flattens a Gmail message into a provider-neutral
// envelope. A message with no extractable body still normalizes with empty
// body strings; only a nil input yields nil.
func NormalizeMessage(message *gmailapi.Message) *dto.InboundEnvelope {
	if message == nil {
		return nil
	}

	envelope := &dto.InboundEnvelope{
		ProviderMessageID: message.Id,
		ProviderThreadID:  message.ThreadId,
		Snippet:           message.Snippet,
	}

	var dateHeader string
	if message.Payload != nil {
		for _, header := range message.Payload.Headers {
			switch strings.ToLower(header.Name) {
			case "from":
				envelope.FromName, envelope.FromAddress = parseFromHeader(header.Value)
			case "to":
				envelope.To = splitAddressList(header.Value)
			case "cc":
				envelope.Cc = splitAddressList(header.Value)
			case "subject":
				envelope.Subject = header.Value
			case "date":
				dateHeader = header.Value
			}
		}

		plain, html := extractBodies(message.Payload)
		envelope.BodyText = plain
		envelope.BodyHTML = html
	}

	// No independent read store, the provider's UNREAD label is the source
	// of truth.
	envelope.IsRead = true
	for _, label := range message.LabelIds {
		if label == "UNREAD" {
			envelope.IsRead = false
			break
		}
	}

	envelope.ReceivedAt = parseReceivedAt(dateHeader, message.InternalDate)
	return envelope
}

// extractBodies walks the part tree depth-first and returns the first
// text/plain and first text/html payloads found. A part found at a shallower
// depth is never overwritten by a deeper one.
func extractBodies(payload *gmailapi.MessagePart) (plain, html string) {
	if payload == nil {
		return "", ""
	}

	if payload.Body != nil && payload.Body.Data != "" {
		decoded := decodeBody(payload.Body.Data)
		switch payload.MimeType {
		case "text/plain":
			plain = decoded
		case "text/html":
			html = decoded
		}
	}

	for _, part := range payload.Parts {
		nestedPlain, nestedHTML := extractBodies(part)
		if plain == "" && nestedPlain != "" {
			plain = nestedPlain
		}
		if html == "" && nestedHTML != "" {
			html = nestedHTML
		}
		if plain != "" && html != "" {
			break
		}
	}

	return plain, html
}

func decodeBody(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return ""
		}
	}
	return string(decoded)
}

// parseFromHeader splits a From header into display name and address. The
// address is syntax-cleaned; a value that does not parse as an address is
// returned trimmed as-is.
func parseFromHeader(value string) (name, address string) {
	parsed, err := mail.ParseAddress(value)
	if err != nil {
		return "", strings.TrimSpace(value)
	}
	validation := mailvalidate.ValidateEmailSyntax(parsed.Address)
	if validation.IsValid && validation.CleanEmail != "" {
		return parsed.Name, validation.CleanEmail
	}
	return parsed.Name, parsed.Address
}

func splitAddressList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	addresses := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		if parsed, err := mail.ParseAddress(trimmed); err == nil {
			trimmed = parsed.Address
		}
		addresses = append(addresses, trimmed)
	}
	return utils.UniqueEmails(addresses)
}

// parseReceivedAt prefers the Date header, falls back to the provider's
// internal timestamp, and as a last resort stamps the current time.
func parseReceivedAt(dateHeader string, internalDate int64) time.Time {
	if dateHeader != "" {
		if parsed, err := mail.ParseDate(dateHeader); err == nil {
			return parsed.UTC()
		}
	}
	if internalDate > 0 {
		return time.UnixMilli(internalDate).UTC()
	}
	return utils.Now()
}
