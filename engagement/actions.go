// Package engagement turns contributor actions into points, badges and levels.
package engagement

import "errors"

// Action is something a contributor does that earns points
type Action string

const (
	ActionReportIssue       Action = "report-issue"
	ActionResolveIssue      Action = "resolve-issue"
	ActionEventCompletion   Action = "event-completion"
	ActionEventRegistration Action = "event-registration"
	ActionComment           Action = "comment"
	ActionDailyCheckIn      Action = "daily-check-in"
)

// Point values per action.
const (
	PointsReportIssue       = 10
	PointsResolveIssue      = 25
	PointsEventCompletion   = 50
	PointsEventRegistration = 5
	PointsComment           = 5
	PointsDailyCheckIn      = 2
)

var (
	ErrUnknownAction = errors.New("unknown engagement action")
	ErrInvalidHours  = errors.New("volunteer hours must be positive")
)

var actionPoints = map[Action]int{
	ActionReportIssue:       PointsReportIssue,
	ActionResolveIssue:      PointsResolveIssue,
	ActionEventCompletion:   PointsEventCompletion,
	ActionEventRegistration: PointsEventRegistration,
	ActionComment:           PointsComment,
	ActionDailyCheckIn:      PointsDailyCheckIn,
}

// Points returns the points awarded for action and whether the action is known.
func Points(a Action) (int, bool) {
	p, ok := actionPoints[a]
	return p, ok
}

func (a Action) Valid() bool {
	_, ok := actionPoints[a]
	return ok
}
