package models

// User holds the engagement counters of a contributor for the session
type User struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Points         int      `json:"points"`
	IssuesReported int      `json:"issuesReported"`
	IssuesResolved int      `json:"issuesResolved"`
	VolunteerHours int      `json:"volunteerHours"`
	CommentsPosted int      `json:"commentsPosted"`
	Badges         []string `json:"badges"`
}

// HasBadge reports whether badgeID is in the earned set.
func (u User) HasBadge(badgeID string) bool {
	for _, b := range u.Badges {
		if b == badgeID {
			return true
		}
	}
	return false
}

// AwardBadge adds badgeID to the earned set. It returns false if the badge was
// already earned.
func (u *User) AwardBadge(badgeID string) bool {
	if u.HasBadge(badgeID) {
		return false
	}
	u.Badges = append(u.Badges, badgeID)
	return true
}

func (u User) Clone() User {
	out := u
	out.Badges = append([]string(nil), u.Badges...)
	return out
}
