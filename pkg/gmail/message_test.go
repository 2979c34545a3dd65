package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/gmail/v1"
)

func b64(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

func TestConvertPrefersPlainTextPart(t *testing.T) {
	msg := &gmail.Message{
		Id:       "m1",
		ThreadId: "t1",
		Payload: &gmail.MessagePart{
			MimeType: "multipart/mixed",
			Headers: []*gmail.MessagePartHeader{
				{Name: "Subject", Value: "Need help"},
				{Name: "From", Value: "Alice <alice@example.com>"},
				{Name: "Message-Id", Value: "<abc@example.com>"},
			},
			Parts: []*gmail.MessagePart{
				{
					MimeType: "multipart/alternative",
					Parts: []*gmail.MessagePart{
						{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: b64("<p>html</p>")}},
						{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64("plain body")}},
					},
				},
				{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64("second plain")}},
			},
		},
	}

	email := convertGmailMessageToEmail(msg)

	assert.Equal(t, "m1", email.ID)
	assert.Equal(t, "t1", email.ThreadID)
	assert.Equal(t, "Need help", email.Subject)
	assert.Equal(t, "Alice <alice@example.com>", email.From)
	assert.Equal(t, "<abc@example.com>", email.MessageID)
	assert.Equal(t, "plain body", email.Body)
}

func TestConvertFallsBackToTopLevelBody(t *testing.T) {
	msg := &gmail.Message{
		Id: "m2",
		Payload: &gmail.MessagePart{
			MimeType: "text/html",
			Body:     &gmail.MessagePartBody{Data: base64.RawURLEncoding.EncodeToString([]byte("<b>hi?</b>"))},
		},
	}

	assert.Equal(t, "<b>hi?</b>", convertGmailMessageToEmail(msg).Body)
}

func TestConvertWithoutPayload(t *testing.T) {
	email := convertGmailMessageToEmail(&gmail.Message{Id: "m3"})
	assert.Equal(t, "m3", email.ID)
	assert.Empty(t, email.Body)
}

func TestDecodeBodyPadding(t *testing.T) {
	for _, enc := range []*base64.Encoding{base64.URLEncoding, base64.RawURLEncoding} {
		data, err := decodeBody(enc.EncodeToString([]byte("a?b>c")))
		assert.NoError(t, err)
		assert.Equal(t, "a?b>c", string(data))
	}
}
