package engagement

import "fixit-be/models"

// Snapshot is everything the rewards page shows for a contributor
type Snapshot struct {
	User                models.User    `json:"user"`
	Level               Level          `json:"level"`
	NextLevel           *Level         `json:"nextLevel"`
	ProgressToNextLevel float64        `json:"progressToNextLevel"`
	PointsToNextLevel   int            `json:"pointsToNextLevel"`
	Badges              []BadgeStatus  `json:"badges"`
	EarnedBadges        int            `json:"earnedBadges"`
	Rewards             []RewardStatus `json:"rewards"`
}

// TakeSnapshot derives level, badge and reward standing from u.
func TakeSnapshot(u models.User) Snapshot {
	s := Snapshot{
		User:                u.Clone(),
		Level:               LevelOf(u.Points),
		ProgressToNextLevel: ProgressToNext(u.Points),
		PointsToNextLevel:   PointsToNext(u.Points),
		Badges:              EvaluateBadges(u),
		Rewards:             EvaluateRewards(u.Points),
	}
	if next, ok := NextLevel(u.Points); ok {
		s.NextLevel = &next
	}
	for _, b := range s.Badges {
		if b.Earned {
			s.EarnedBadges++
		}
	}
	return s
}
