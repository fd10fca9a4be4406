package gmail

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmailapi "google.golang.org/api/gmail/v1"
)

func encodePart(text string) string {
	return base64.URLEncoding.EncodeToString([]byte(text))
}

func TestNormalizeMessage_NilInput(t *testing.T) {
	assert.Nil(t, NormalizeMessage(nil))
}

func TestNormalizeMessage_HeadersExtractedCaseInsensitively(t *testing.T) {
	message := &gmailapi.Message{
		Id:       "gm1",
		ThreadId: "gt1",
		Payload: &gmailapi.MessagePart{
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "FROM", Value: "Jane Prospect <jane@example.com>"},
				{Name: "to", Value: "sales@acme.io, ops@acme.io"},
				{Name: "Cc", Value: "boss@example.com"},
				{Name: "SUBJECT", Value: "Re: pricing"},
			},
		},
	}

	envelope := NormalizeMessage(message)

	require.NotNil(t, envelope)
	assert.Equal(t, "gm1", envelope.ProviderMessageID)
	assert.Equal(t, "gt1", envelope.ProviderThreadID)
	assert.Equal(t, "Jane Prospect", envelope.FromName)
	assert.Equal(t, "jane@example.com", envelope.FromAddress)
	assert.Equal(t, []string{"sales@acme.io", "ops@acme.io"}, envelope.To)
	assert.Equal(t, []string{"boss@example.com"}, envelope.Cc)
	assert.Equal(t, "Re: pricing", envelope.Subject)
}

func TestNormalizeMessage_PlainBodyAtTopLevel(t *testing.T) {
	message := &gmailapi.Message{
		Id: "gm2",
		Payload: &gmailapi.MessagePart{
			MimeType: "text/plain",
			Body:     &gmailapi.MessagePartBody{Data: encodePart("hello there")},
		},
	}

	envelope := NormalizeMessage(message)

	assert.Equal(t, "hello there", envelope.BodyText)
}

func TestExtractBodies_FirstFoundWinsOverDeeperParts(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmailapi.MessagePart{
			{
				MimeType: "text/plain",
				Body:     &gmailapi.MessagePartBody{Data: encodePart("shallow plain")},
			},
			{
				MimeType: "multipart/related",
				Parts: []*gmailapi.MessagePart{
					{
						MimeType: "text/plain",
						Body:     &gmailapi.MessagePartBody{Data: encodePart("deep plain")},
					},
					{
						MimeType: "text/html",
						Body:     &gmailapi.MessagePartBody{Data: encodePart("<p>deep html</p>")},
					},
				},
			},
		},
	}

	plain, html := extractBodies(payload)

	assert.Equal(t, "shallow plain", plain)
	assert.Equal(t, "<p>deep html</p>", html)
}

func TestExtractBodies_NestedPlainFoundDepthFirst(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmailapi.MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*gmailapi.MessagePart{
					{
						MimeType: "text/plain",
						Body:     &gmailapi.MessagePartBody{Data: encodePart("nested plain")},
					},
				},
			},
			{
				MimeType: "text/plain",
				Body:     &gmailapi.MessagePartBody{Data: encodePart("sibling plain")},
			},
		},
	}

	plain, _ := extractBodies(payload)

	// Depth-first traversal reaches the nested part before the later sibling.
	assert.Equal(t, "nested plain", plain)
}

func TestNormalizeMessage_NoBodyStillNormalizes(t *testing.T) {
	message := &gmailapi.Message{
		Id:      "gm3",
		Snippet: "preview text",
		Payload: &gmailapi.MessagePart{
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "Subject", Value: "empty body"},
			},
		},
	}

	envelope := NormalizeMessage(message)

	require.NotNil(t, envelope)
	assert.Empty(t, envelope.BodyText)
	assert.Equal(t, "preview text", envelope.Snippet)
}

func TestNormalizeMessage_ReadStateFromUnreadLabel(t *testing.T) {
	unread := NormalizeMessage(&gmailapi.Message{
		Id:       "gm10",
		LabelIds: []string{"INBOX", "UNREAD"},
	})
	read := NormalizeMessage(&gmailapi.Message{
		Id:       "gm11",
		LabelIds: []string{"INBOX"},
	})

	assert.False(t, unread.IsRead)
	assert.True(t, read.IsRead)
}

func TestNormalizeMessage_HtmlBodyCaptured(t *testing.T) {
	message := &gmailapi.Message{
		Id: "gm12",
		Payload: &gmailapi.MessagePart{
			MimeType: "multipart/alternative",
			Parts: []*gmailapi.MessagePart{
				{MimeType: "text/plain", Body: &gmailapi.MessagePartBody{Data: encodePart("plain")}},
				{MimeType: "text/html", Body: &gmailapi.MessagePartBody{Data: encodePart("<p>html</p>")}},
			},
		},
	}

	envelope := NormalizeMessage(message)

	assert.Equal(t, "plain", envelope.BodyText)
	assert.Equal(t, "<p>html</p>", envelope.BodyHTML)
}

func TestParseReceivedAt_DateHeaderPreferred(t *testing.T) {
	received := parseReceivedAt("Mon, 02 Jan 2006 15:04:05 -0700", 1700000000000)

	assert.Equal(t, time.Date(2006, 1, 2, 22, 4, 5, 0, time.UTC), received)
}

func TestParseReceivedAt_InternalDateFallback(t *testing.T) {
	received := parseReceivedAt("not a date", 1700000000000)

	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), received)
}

func TestParseReceivedAt_CurrentTimeLastResort(t *testing.T) {
	before := time.Now().UTC()
	received := parseReceivedAt("", 0)
	after := time.Now().UTC()

	assert.False(t, received.Before(before.Truncate(time.Second)))
	assert.False(t, received.After(after.Add(time.Second)))
}

func TestSplitAddressList_TrimsAndDropsEmpties(t *testing.T) {
	addresses := splitAddressList(" a@b.com , , Jane <c@d.com>,a@b.com")

	assert.Equal(t, []string{"a@b.com", "c@d.com"}, addresses)
}
