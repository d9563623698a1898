package engagement

// Reward is an item contributors can exchange points for
type Reward struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

var Rewards = []Reward{
	{ID: "coffee-card", Title: "Coffee Shop Gift Card", Description: "$10 gift card to local coffee shop", Points: 100},
	{ID: "store-discount", Title: "Community Store Discount", Description: "15% off at participating local businesses", Points: 150},
	{ID: "t-shirt", Title: "FixIt T-Shirt", Description: "Exclusive community volunteer t-shirt", Points: 200},
	{ID: "vip-event", Title: "VIP Event Access", Description: "Priority registration for community events", Points: 250},
	{ID: "recognition", Title: "Community Recognition", Description: "Featured in monthly newsletter", Points: 300},
	{ID: "premium-badge", Title: "Premium Supporter Badge", Description: "Exclusive profile badge and recognition", Points: 500},
}

type RewardStatus struct {
	Reward
	Affordable   bool `json:"affordable"`
	PointsNeeded int  `json:"pointsNeeded"`
}

// EvaluateRewards marks which rewards points can cover.
func EvaluateRewards(points int) []RewardStatus {
	out := make([]RewardStatus, 0, len(Rewards))
	for _, r := range Rewards {
		s := RewardStatus{Reward: r, Affordable: points >= r.Points}
		if !s.Affordable {
			s.PointsNeeded = r.Points - points
		}
		out = append(out, s)
	}
	return out
}
