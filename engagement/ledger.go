package engagement

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"fixit-be/models"
)

// DefaultUser is the session contributor, carrying the history earned before
// this session.
func DefaultUser() models.User {
	return models.User{
		ID:             "1",
		Name:           "Community Member",
		Points:         250,
		IssuesReported: 8,
		IssuesResolved: 3,
		VolunteerHours: 12,
		CommentsPosted: 15,
		Badges:         []string{BadgeFirstReporter, BadgeCommunityHelper},
	}
}

// Ledger tracks one contributor's counters for the session. It is not safe
// for concurrent use.
type Ledger struct {
	user       models.User
	registered map[string]bool
}

func NewLedger(user models.User) *Ledger {
	return &Ledger{
		user:       user.Clone(),
		registered: make(map[string]bool),
	}
}

// User returns a copy of the current counters.
func (l *Ledger) User() models.User {
	return l.user.Clone()
}

// RecordReport credits a reported issue.
func (l *Ledger) RecordReport() {
	l.apply(ActionReportIssue, PointsReportIssue)
}

// Record applies the points and counter change of action.
func (l *Ledger) Record(a Action) error {
	points, ok := Points(a)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	l.apply(a, points)
	return nil
}

func (l *Ledger) apply(a Action, points int) {
	switch a {
	case ActionReportIssue:
		l.user.IssuesReported++
	case ActionResolveIssue:
		l.user.IssuesResolved++
	case ActionComment:
		l.user.CommentsPosted++
	}
	l.addPoints(points)

	log.WithFields(log.Fields{
		"user_id": l.user.ID,
		"action":  a,
		"points":  points,
		"total":   l.user.Points,
	}).Debug("Engagement recorded")
}

// RegisterForEvent credits the first registration for eventID in this
// session. Later registrations for the same event change nothing and return false.
func (l *Ledger) RegisterForEvent(eventID string) bool {
	if l.registered[eventID] {
		return false
	}
	l.registered[eventID] = true
	l.apply(ActionEventRegistration, PointsEventRegistration)
	return true
}

// IsRegistered reports whether eventID was registered for in this session.
func (l *Ledger) IsRegistered(eventID string) bool {
	return l.registered[eventID]
}

// RegisteredEvents is the number of distinct events registered for.
func (l *Ledger) RegisteredEvents() int {
	return len(l.registered)
}

// LogVolunteerHours adds hours of volunteer work. It awards no points.
func (l *Ledger) LogVolunteerHours(hours int) error {
	if hours <= 0 {
		return ErrInvalidHours
	}
	l.user.VolunteerHours += hours
	l.refreshBadges()
	return nil
}

func (l *Ledger) addPoints(points int) {
	if points > 0 {
		l.user.Points += points
	}
	l.refreshBadges()
}

func (l *Ledger) refreshBadges() {
	for _, b := range Badges {
		if b.Counter == CounterNone || b.Counter.Value(l.user) < b.Requirement {
			continue
		}
		if l.user.AwardBadge(b.ID) {
			log.WithFields(log.Fields{
				"user_id": l.user.ID,
				"badge":   b.ID,
			}).Info("Badge earned")
		}
	}
}
