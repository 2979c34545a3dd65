package gmail

import (
	"strings"

	filterdomain "github.com/fhlgrn/ReadyReply/internal/filter/domain"
)

// BuildQuery translates a filter into a Gmail search query. Body terms
// cannot be searched reliably and are applied after fetching.
func BuildQuery(filter *filterdomain.Filter) string {
	var parts []string

	if from := filterdomain.Value(filter.FromEmail); from != "" {
		parts = append(parts, "from:("+from+")")
	}

	if terms := filter.SubjectTerms(); len(terms) > 0 {
		subjects := make([]string, len(terms))
		for i, t := range terms {
			subjects[i] = "subject:(" + t + ")"
		}
		parts = append(parts, "("+strings.Join(subjects, " OR ")+")")
	}

	if label := filterdomain.Value(filter.HasNoLabel); label != "" {
		parts = append(parts, "-label:("+label+")")
	}

	parts = append(parts, "is:unread")
	return strings.Join(parts, " ")
}
