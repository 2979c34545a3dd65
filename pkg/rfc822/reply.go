// Package rfc822 composes the reply messages stored as drafts.
package rfc822

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
)

const messageIDDomain = "readyreply"

var ErrNoRecipient = errors.New("rfc822: original message has no sender")

// Reply describes the message being answered.
type Reply struct {
	To        string // From header of the original message
	Subject   string
	InReplyTo string // Message-ID of the original, or any stable id
	Body      string
	Date      time.Time
}

// Message is a serialized reply ready for upload.
type Message struct {
	Raw       []byte
	MessageID string
}

// ReplySubject prefixes "Re: " unless the subject already carries it.
func ReplySubject(subject string) string {
	trimmed := strings.TrimSpace(subject)
	if strings.HasPrefix(strings.ToLower(trimmed), "re:") {
		return trimmed
	}
	return "Re: " + trimmed
}

// NewMessageID returns a fresh bracketed Message-Id.
func NewMessageID() string {
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), messageIDDomain)
}

// BuildReply renders r as a single part text/plain UTF-8 message.
func BuildReply(r Reply) (*Message, error) {
	if strings.TrimSpace(r.To) == "" {
		return nil, ErrNoRecipient
	}

	to, err := mail.ParseAddress(r.To)
	if err != nil {
		// Some senders are bare addresses the parser rejects
		to = &mail.Address{Address: strings.TrimSpace(r.To)}
	}

	date := r.Date
	if date.IsZero() {
		date = time.Now()
	}

	msgID := NewMessageID()

	var h mail.Header
	h.SetDate(date)
	h.SetAddressList("To", []*mail.Address{to})
	h.SetSubject(ReplySubject(r.Subject))
	h.Set("Message-Id", msgID)
	if ref := bracket(r.InReplyTo); ref != "" {
		h.Set("In-Reply-To", ref)
		h.Set("References", ref)
	}
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("rfc822: create writer: %w", err)
	}
	if _, err := io.WriteString(w, r.Body); err != nil {
		return nil, fmt.Errorf("rfc822: write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("rfc822: close writer: %w", err)
	}

	return &Message{Raw: buf.Bytes(), MessageID: msgID}, nil
}

func bracket(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	if !strings.HasPrefix(id, "<") {
		id = "<" + id
	}
	if !strings.HasSuffix(id, ">") {
		id += ">"
	}
	return id
}
