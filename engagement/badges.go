package engagement

import "fixit-be/models"

// Counter names the user counter a badge tracks
type Counter string

const (
	CounterNone           Counter = ""
	CounterIssuesReported Counter = "issuesReported"
	CounterIssuesResolved Counter = "issuesResolved"
	CounterVolunteerHours Counter = "volunteerHours"
	CounterComments       Counter = "commentsPosted"
)

// Value reads the counter from u. CounterNone always reads zero.
func (c Counter) Value(u models.User) int {
	switch c {
	case CounterIssuesReported:
		return u.IssuesReported
	case CounterIssuesResolved:
		return u.IssuesResolved
	case CounterVolunteerHours:
		return u.VolunteerHours
	case CounterComments:
		return u.CommentsPosted
	}
	return 0
}

// Badge defines an achievement. Badges with CounterNone are only earned by
// being in the user's badge set.
type Badge struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Requirement int     `json:"requirement"`
	Counter     Counter `json:"counter,omitempty"`
}

const (
	BadgeFirstReporter     = "first-reporter"
	BadgeCommunityHelper   = "community-helper"
	BadgeActiveContributor = "active-contributor"
	BadgeVolunteerChampion = "volunteer-champion"
	BadgeProblemSolver     = "problem-solver"
	BadgeSocialButterfly   = "social-butterfly"
)

// Badges is the badge catalog in display order.
var Badges = []Badge{
	{ID: BadgeFirstReporter, Name: "First Reporter", Description: "Reported your first issue", Icon: "🎯"},
	{ID: BadgeCommunityHelper, Name: "Community Helper", Description: "Helped resolve 3 issues", Icon: "🤝"},
	{ID: BadgeActiveContributor, Name: "Active Contributor", Description: "Report 10 issues", Icon: "⭐", Requirement: 10, Counter: CounterIssuesReported},
	{ID: BadgeVolunteerChampion, Name: "Volunteer Champion", Description: "Complete 20 volunteer hours", Icon: "💪", Requirement: 20, Counter: CounterVolunteerHours},
	{ID: BadgeProblemSolver, Name: "Problem Solver", Description: "Resolve 10 issues", Icon: "🔧", Requirement: 10, Counter: CounterIssuesResolved},
	{ID: BadgeSocialButterfly, Name: "Social Butterfly", Description: "Comment on 25 issues", Icon: "🦋", Requirement: 25, Counter: CounterComments},
}

// BadgeStatus is a badge evaluated against one user
type BadgeStatus struct {
	Badge
	Earned   bool `json:"earned"`
	Progress int  `json:"progress"`
}

// EvaluateBadge reports progress towards b. Progress is capped at the
// requirement.
func EvaluateBadge(b Badge, u models.User) BadgeStatus {
	if b.Counter == CounterNone {
		return BadgeStatus{Badge: b, Earned: u.HasBadge(b.ID)}
	}

	progress := b.Counter.Value(u)
	earned := progress >= b.Requirement || u.HasBadge(b.ID)
	if progress > b.Requirement {
		progress = b.Requirement
	}
	return BadgeStatus{Badge: b, Earned: earned, Progress: progress}
}

// EvaluateBadges evaluates the whole catalog.
func EvaluateBadges(u models.User) []BadgeStatus {
	out := make([]BadgeStatus, 0, len(Badges))
	for _, b := range Badges {
		out = append(out, EvaluateBadge(b, u))
	}
	return out
}
