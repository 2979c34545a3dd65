package imap

import (
	"sort"

	filterdomain "github.com/fhlgrn/ReadyReply/internal/filter/domain"

	"github.com/emersion/go-imap"
)

// buildSearchCriteria mirrors the Gmail query over IMAP SEARCH: UNSEEN,
// FROM, an OR chain of SUBJECT terms and UNKEYWORD for the label.
func buildSearchCriteria(filter *filterdomain.Filter) *imap.SearchCriteria {
	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}

	if from := filterdomain.Value(filter.FromEmail); from != "" {
		criteria.Header.Add("From", from)
	}

	switch terms := filter.SubjectTerms(); len(terms) {
	case 0:
	case 1:
		criteria.Header.Add("Subject", terms[0])
	default:
		criteria.Or = append(criteria.Or, subjectOr(terms).Or...)
	}

	if label := filterdomain.Value(filter.HasNoLabel); label != "" {
		criteria.WithoutFlags = append(criteria.WithoutFlags, label)
	}
	return criteria
}

// subjectOr nests OR pairs so any of terms matches
func subjectOr(terms []string) *imap.SearchCriteria {
	leaf := imap.NewSearchCriteria()
	leaf.Header.Add("Subject", terms[0])
	if len(terms) == 1 {
		return leaf
	}
	node := imap.NewSearchCriteria()
	node.Or = [][2]*imap.SearchCriteria{{leaf, subjectOr(terms[1:])}}
	return node
}

// newest returns at most n uids, highest first
func newest(uids []uint32, n int) []uint32 {
	sorted := append([]uint32(nil), uids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
