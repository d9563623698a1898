package issues

import (
	"sort"
	"time"

	"fixit-be/models"
)

// Stats are the dashboard summary counts.
type Stats struct {
	Total              int `json:"total"`
	Active             int `json:"active"`
	Resolved           int `json:"resolved"`
	HighPriorityActive int `json:"highPriorityActive"`
}

func ComputeStats(in []models.Issue) Stats {
	s := Stats{Total: len(in)}
	for _, issue := range in {
		if issue.Status == models.Resolved {
			s.Resolved++
			continue
		}
		s.Active++
		if issue.Priority == models.High {
			s.HighPriorityActive++
		}
	}
	return s
}

type CategoryCount struct {
	Name  models.IssueCategory `json:"name"`
	Value int                  `json:"value"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type VotedIssue struct {
	ID       string               `json:"id"`
	Title    string               `json:"title"`
	Category models.IssueCategory `json:"category"`
	Votes    int                  `json:"votes"`
}

// Analytics is the breakdown shown on the analytics dashboard
type Analytics struct {
	IssuesByCategory []CategoryCount `json:"issuesByCategory"`
	Last7Days        []DayCount      `json:"last7Days"`
	TopVotedIssues   []VotedIssue    `json:"topVotedIssues"`
	TotalIssues      int             `json:"totalIssues"`
	TotalVotes       int             `json:"totalVotes"`
	OpenIssues       int             `json:"openIssues"`
}

const topVotedLimit = 5

// ComputeAnalytics aggregates the collection relative to now. Days are
// calendar days in now's location, oldest first.
func ComputeAnalytics(in []models.Issue, now time.Time) Analytics {
	a := Analytics{TotalIssues: len(in), IssuesByCategory: []CategoryCount{}}

	byCategory := make(map[models.IssueCategory]int)
	for _, issue := range in {
		byCategory[issue.Category]++
		a.TotalVotes += issue.Upvotes
		if issue.Status != models.Resolved {
			a.OpenIssues++
		}
	}
	for _, c := range models.Categories {
		if n := byCategory[c]; n > 0 {
			a.IssuesByCategory = append(a.IssuesByCategory, CategoryCount{Name: c, Value: n})
		}
	}

	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
		nextDate := date.AddDate(0, 0, 1)

		count := 0
		for _, issue := range in {
			if !issue.ReportedAt.Before(date) && issue.ReportedAt.Before(nextDate) {
				count++
			}
		}
		a.Last7Days = append(a.Last7Days, DayCount{Date: date.Format("2006-01-02"), Count: count})
	}

	voted := make([]VotedIssue, 0, len(in))
	for _, issue := range in {
		voted = append(voted, VotedIssue{ID: issue.ID, Title: issue.Title, Category: issue.Category, Votes: issue.Upvotes})
	}
	sort.SliceStable(voted, func(i, j int) bool {
		return voted[i].Votes > voted[j].Votes
	})
	if len(voted) > topVotedLimit {
		voted = voted[:topVotedLimit]
	}
	a.TopVotedIssues = voted

	return a
}

// MapPin is an issue reduced to what a map marker needs
type MapPin struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	Latitude   float64              `json:"latitude"`
	Longitude  float64              `json:"longitude"`
	Location   string               `json:"location"`
	Category   models.IssueCategory `json:"category"`
	ReportedAt time.Time            `json:"reportedAt"`
}

// Located returns up to limit of the most recently reported issues that carry
// coordinates, newest first. A non-positive limit means no limit.
func Located(in []models.Issue, limit int) []MapPin {
	pins := make([]MapPin, 0)
	for _, issue := range in {
		if !issue.HasLocation() {
			continue
		}
		pins = append(pins, MapPin{
			ID:         issue.ID,
			Title:      issue.Title,
			Latitude:   *issue.Latitude,
			Longitude:  *issue.Longitude,
			Location:   issue.Location,
			Category:   issue.Category,
			ReportedAt: issue.ReportedAt,
		})
	}
	sort.SliceStable(pins, func(i, j int) bool {
		return pins[i].ReportedAt.After(pins[j].ReportedAt)
	})
	if limit > 0 && len(pins) > limit {
		pins = pins[:limit]
	}
	return pins
}
