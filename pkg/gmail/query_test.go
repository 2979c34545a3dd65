package gmail

import (
	"testing"

	filterdomain "github.com/fhlgrn/ReadyReply/internal/filter/domain"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name   string
		filter filterdomain.Filter
		want   string
	}{
		{
			name:   "no predicates",
			filter: filterdomain.Filter{},
			want:   "is:unread",
		},
		{
			name:   "blank predicates are ignored",
			filter: filterdomain.Filter{FromEmail: strPtr(" "), SubjectContains: strPtr(", ,"), HasNoLabel: strPtr("")},
			want:   "is:unread",
		},
		{
			name:   "body terms never reach the query",
			filter: filterdomain.Filter{BodyContains: strPtr("refund")},
			want:   "is:unread",
		},
		{
			name:   "from only",
			filter: filterdomain.Filter{FromEmail: strPtr("boss@example.com")},
			want:   "from:(boss@example.com) is:unread",
		},
		{
			name:   "subject disjunction",
			filter: filterdomain.Filter{SubjectContains: strPtr("invoice, receipt ,")},
			want:   "(subject:(invoice) OR subject:(receipt)) is:unread",
		},
		{
			name: "all predicates",
			filter: filterdomain.Filter{
				FromEmail:       strPtr("*@client.com"),
				SubjectContains: strPtr("help"),
				HasNoLabel:      strPtr("auto-replied"),
			},
			want: "from:(*@client.com) (subject:(help)) -label:(auto-replied) is:unread",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(&tt.filter))
		})
	}
}
