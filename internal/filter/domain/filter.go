package domain

import (
	"strings"
	"time"
)

// Filter selects which incoming mail gets an automatic draft reply.
// All predicates are optional; an empty filter matches every unread message.
type Filter struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"not null"`
	Enabled          bool      `json:"enabled"`
	FromEmail        *string   `json:"fromEmail"`
	SubjectContains  *string   `json:"subjectContains"` // comma separated
	BodyContains     *string   `json:"bodyContains"`    // comma separated
	HasNoLabel       *string   `json:"hasNoLabel"`
	ResponseTemplate string    `json:"responseTemplate" gorm:"type:text;not null"`
	CreatedAt        time.Time `json:"createdAt"`
}

// SubjectTerms returns the trimmed, non-empty subject terms.
func (f *Filter) SubjectTerms() []string {
	return SplitTerms(f.SubjectContains)
}

// BodyTerms returns the trimmed, non-empty body terms.
func (f *Filter) BodyTerms() []string {
	return SplitTerms(f.BodyContains)
}

// MatchesBody reports whether body contains at least one body term,
// case-insensitively. A filter without body terms accepts any body.
func (f *Filter) MatchesBody(body string) bool {
	terms := f.BodyTerms()
	if len(terms) == 0 {
		return true
	}
	lower := strings.ToLower(body)
	for _, term := range terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// Value returns the dereferenced predicate or "".
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func SplitTerms(list *string) []string {
	if list == nil {
		return nil
	}
	var terms []string
	for _, t := range strings.Split(*list, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
