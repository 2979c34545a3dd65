package gmail

import (
	"encoding/base64"
	"strings"

	emaildomain "github.com/fhlgrn/ReadyReply/internal/email/domain"

	"google.golang.org/api/gmail/v1"
)

func convertGmailMessageToEmail(msg *gmail.Message) *emaildomain.Email {
	email := &emaildomain.Email{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
	}
	if msg.Payload == nil {
		return email
	}

	email.Subject = getHeader(msg.Payload.Headers, "Subject")
	email.From = getHeader(msg.Payload.Headers, "From")
	email.MessageID = getHeader(msg.Payload.Headers, "Message-ID")
	email.Body = getEmailBody(msg.Payload)
	return email
}

func getHeader(headers []*gmail.MessagePartHeader, name string) string {
	for _, header := range headers {
		if strings.EqualFold(header.Name, name) {
			return header.Value
		}
	}
	return ""
}

// getEmailBody prefers the first text/plain part found depth-first and
// falls back to the top-level body.
func getEmailBody(payload *gmail.MessagePart) string {
	if plain, ok := findPlainText(payload); ok {
		return plain
	}
	if payload.Body != nil && payload.Body.Data != "" {
		if data, err := decodeBody(payload.Body.Data); err == nil {
			return string(data)
		}
	}
	return ""
}

func findPlainText(part *gmail.MessagePart) (string, bool) {
	if strings.EqualFold(part.MimeType, "text/plain") && part.Body != nil && part.Body.Data != "" {
		if data, err := decodeBody(part.Body.Data); err == nil {
			return string(data), true
		}
	}
	for _, child := range part.Parts {
		if text, ok := findPlainText(child); ok {
			return text, true
		}
	}
	return "", false
}

// decodeBody accepts base64url with or without padding
func decodeBody(data string) ([]byte, error) {
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return decoded, nil
	}
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
}
