package issues

import (
	"strings"

	"fixit-be/models"
)

// All matches every value of a facet.
const All = "all"

// Criteria selects issues for browsing. Empty facets behave like All.
type Criteria struct {
	Query    string
	Category string
	Status   string
	Priority string
}

// Filter returns the issues matching every criterion, in input order. The input
// is not modified.
func Filter(in []models.Issue, c Criteria) []models.Issue {
	query := strings.ToLower(c.Query)

	out := make([]models.Issue, 0, len(in))
	for _, issue := range in {
		if !matchesQuery(issue, query) {
			continue
		}
		if !matchesFacet(c.Category, string(issue.Category)) ||
			!matchesFacet(c.Status, string(issue.Status)) ||
			!matchesFacet(c.Priority, string(issue.Priority)) {
			continue
		}
		out = append(out, issue.Clone())
	}
	return out
}

func matchesQuery(issue models.Issue, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(issue.Title), query) ||
		strings.Contains(strings.ToLower(issue.Description), query) ||
		strings.Contains(strings.ToLower(issue.Location), query)
}

func matchesFacet(want, got string) bool {
	return want == "" || want == All || want == got
}
