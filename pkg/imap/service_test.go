package imap

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	emaildomain "github.com/fhlgrn/ReadyReply/internal/email/domain"
	filterdomain "github.com/fhlgrn/ReadyReply/internal/filter/domain"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/backend/memory"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-imap/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type processedSet map[string]bool

func (p processedSet) IsProcessed(id string) (bool, error) { return p[id], nil }

func strPtr(s string) *string { return &s }

// startServer runs an in-memory IMAP server. The memory backend accepts
// username/password.
func startServer(t *testing.T) string {
	t.Helper()
	s := server.New(memory.New())
	s.AllowInsecureAuth = true

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = s.Serve(l) }()
	t.Cleanup(func() { _ = s.Close() })
	return l.Addr().String()
}

func seed(t *testing.T, addr string, messages ...string) {
	t.Helper()
	c, err := client.Dial(addr)
	require.NoError(t, err)
	defer c.Logout()
	require.NoError(t, c.Login("username", "password"))
	require.NoError(t, c.Create("Drafts"))
	for _, m := range messages {
		raw := strings.ReplaceAll(m, "\n", "\r\n")
		require.NoError(t, c.Append("INBOX", nil, time.Now(), bytes.NewBufferString(raw)))
	}
}

func rawMessage(from, subject, msgID, body string) string {
	return "From: " + from + "\n" +
		"To: username@example.org\n" +
		"Subject: " + subject + "\n" +
		"Message-Id: " + msgID + "\n" +
		"Content-Type: text/plain; charset=utf-8\n" +
		"\n" + body
}

func newTestService(addr string, processed processedSet) *Service {
	return NewService(Config{
		Addr:     addr,
		Username: "username",
		Password: "password",
		Insecure: true,
	}, processed, zerolog.Nop())
}

func TestFetchMatchingAndCreateDraft(t *testing.T) {
	addr := startServer(t)
	seed(t, addr,
		rawMessage("Alice <alice@client.com>", "Invoice overdue", "<a1@client.com>", "Please send the refund"),
		rawMessage("Bob <bob@client.com>", "Invoice question", "<b1@client.com>", "When is it due?"),
		rawMessage("Carol <carol@other.com>", "Lunch", "<c1@other.com>", "Pizza?"),
	)

	svc := newTestService(addr, processedSet{})
	ctx := context.Background()

	filter := &filterdomain.Filter{
		ID:              1,
		FromEmail:       strPtr("client.com"),
		SubjectContains: strPtr("overdue, question"),
		BodyContains:    strPtr("refund"),
	}
	emails, err := svc.FetchMatching(ctx, filter)
	require.NoError(t, err)
	require.Len(t, emails, 1)

	email := emails[0]
	assert.Contains(t, email.From, "alice@client.com")
	assert.Equal(t, "Invoice overdue", email.Subject)
	assert.Equal(t, "<a1@client.com>", email.MessageID)
	assert.Equal(t, "Please send the refund", strings.TrimSpace(email.Body))
	assert.Regexp(t, `^\d+-\d+$`, email.ID)

	draftID, err := svc.CreateDraft(ctx, email, "Refund is on its way.")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(draftID, "@readyreply>"))

	c, err := client.Dial(addr)
	require.NoError(t, err)
	defer c.Logout()
	require.NoError(t, c.Login("username", "password"))
	status, err := c.Select("Drafts", true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, status.Messages)

	// Fetching must not have marked the source messages as seen
	_, err = c.Select("INBOX", true)
	require.NoError(t, err)
	unseen, err := c.Search(&imap.SearchCriteria{WithoutFlags: []string{imap.SeenFlag}})
	require.NoError(t, err)
	assert.Len(t, unseen, 3)
}

func TestFetchMatchingSkipsProcessed(t *testing.T) {
	addr := startServer(t)
	seed(t, addr, rawMessage("a@x.com", "One", "<1@x>", "first"), rawMessage("b@x.com", "Two", "<2@x>", "second"))

	all, err := newTestService(addr, processedSet{}).FetchMatching(context.Background(), &filterdomain.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	done := processedSet{all[0].ID: true}
	rest, err := newTestService(addr, done).FetchMatching(context.Background(), &filterdomain.Filter{})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, all[1].ID, rest[0].ID)
}

func TestCheckConnection(t *testing.T) {
	addr := startServer(t)

	status := newTestService(addr, processedSet{}).CheckConnection(context.Background())
	assert.Equal(t, emaildomain.ConnectionStatus{Connected: true, Email: "username"}, status)

	bad := NewService(Config{Addr: addr, Username: "username", Password: "wrong", Insecure: true}, processedSet{}, zerolog.Nop())
	assert.False(t, bad.CheckConnection(context.Background()).Connected)

	unconfigured := NewService(Config{}, processedSet{}, zerolog.Nop())
	assert.False(t, unconfigured.CheckConnection(context.Background()).Connected)
}

func TestBuildSearchCriteria(t *testing.T) {
	c := buildSearchCriteria(&filterdomain.Filter{})
	assert.Equal(t, []string{imap.SeenFlag}, c.WithoutFlags)
	assert.Empty(t, c.Header)
	assert.Empty(t, c.Or)

	c = buildSearchCriteria(&filterdomain.Filter{
		FromEmail:       strPtr("boss@example.com"),
		SubjectContains: strPtr("a, b, c"),
		HasNoLabel:      strPtr("replied"),
	})
	assert.Equal(t, "boss@example.com", c.Header.Get("From"))
	assert.Equal(t, []string{imap.SeenFlag, "replied"}, c.WithoutFlags)
	require.Len(t, c.Or, 1)
	assert.Equal(t, "a", c.Or[0][0].Header.Get("Subject"))
	require.Len(t, c.Or[0][1].Or, 1)
	assert.Equal(t, "b", c.Or[0][1].Or[0][0].Header.Get("Subject"))
	assert.Equal(t, "c", c.Or[0][1].Or[0][1].Header.Get("Subject"))

	c = buildSearchCriteria(&filterdomain.Filter{SubjectContains: strPtr("only")})
	assert.Equal(t, "only", c.Header.Get("Subject"))
	assert.Empty(t, c.Or)
}

func TestNewest(t *testing.T) {
	uids := []uint32{3, 15, 1, 9, 2, 4, 5, 6, 7, 8, 10, 11}
	got := newest(uids, 10)
	assert.Len(t, got, 10)
	assert.Equal(t, uint32(15), got[0])
	assert.Equal(t, uint32(3), got[9])
}
