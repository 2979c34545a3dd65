package rfc822

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplySubject(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Invoice #12", "Re: Invoice #12"},
		{"Re: Invoice #12", "Re: Invoice #12"},
		{"RE: shouting", "RE: shouting"},
		{"re:lower", "re:lower"},
		{"Regarding the plan", "Re: Regarding the plan"},
		{"", "Re: "},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReplySubject(tt.in), tt.in)
	}
}

func readBack(t *testing.T, raw []byte) (*mail.Reader, string) {
	t.Helper()
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	require.NoError(t, err)

	p, err := mr.NextPart()
	require.NoError(t, err)
	body, err := io.ReadAll(p.Body)
	require.NoError(t, err)
	return mr, strings.ReplaceAll(string(body), "\r\n", "\n")
}

func TestBuildReply(t *testing.T) {
	msg, err := BuildReply(Reply{
		To:        "Alice Smith <alice@example.com>",
		Subject:   "Pricing question",
		InReplyTo: "<CAF123@mail.example.com>",
		Body:      "Hi Alice,\nThanks for reaching out.\nBest regards",
		Date:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(msg.MessageID, "@readyreply>"))

	mr, body := readBack(t, msg.Raw)

	to, err := mr.Header.AddressList("To")
	require.NoError(t, err)
	require.Len(t, to, 1)
	assert.Equal(t, "alice@example.com", to[0].Address)

	subject, err := mr.Header.Subject()
	require.NoError(t, err)
	assert.Equal(t, "Re: Pricing question", subject)

	assert.Equal(t, "<CAF123@mail.example.com>", mr.Header.Get("In-Reply-To"))
	assert.Equal(t, "<CAF123@mail.example.com>", mr.Header.Get("References"))
	assert.Equal(t, msg.MessageID, mr.Header.Get("Message-Id"))

	ct, params, err := mr.Header.ContentType()
	require.NoError(t, err)
	assert.Equal(t, "text/plain", ct)
	assert.Equal(t, "utf-8", params["charset"])

	assert.Equal(t, "Hi Alice,\nThanks for reaching out.\nBest regards", body)
}

func TestBuildReplyBareAddressAndProviderID(t *testing.T) {
	msg, err := BuildReply(Reply{
		To:        "bob@example.com",
		Subject:   "RE: status",
		InReplyTo: "18c2f0a1b2",
		Body:      "Thanks, Bob. Héllo wörld.",
	})
	require.NoError(t, err)

	mr, body := readBack(t, msg.Raw)

	to, err := mr.Header.AddressList("To")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", to[0].Address)

	subject, _ := mr.Header.Subject()
	assert.Equal(t, "RE: status", subject)
	assert.Equal(t, "<18c2f0a1b2>", mr.Header.Get("In-Reply-To"))
	assert.Equal(t, "Thanks, Bob. Héllo wörld.", body)
}

func TestBuildReplyWithoutSender(t *testing.T) {
	_, err := BuildReply(Reply{To: "  ", Subject: "x", Body: "y"})
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestNewMessageIDUnique(t *testing.T) {
	assert.NotEqual(t, NewMessageID(), NewMessageID())
}
