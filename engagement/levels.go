package engagement

// Level is a named band of points. Max is nil for the open-ended top band.
type Level struct {
	Name string `json:"name"`
	Min  int    `json:"min"`
	Max  *int   `json:"max"`
}

func bound(n int) *int { return &n }

// Levels are contiguous and cover every non-negative point total.
var Levels = []Level{
	{Name: "Newcomer", Min: 0, Max: bound(99)},
	{Name: "Contributor", Min: 100, Max: bound(249)},
	{Name: "Champion", Min: 250, Max: bound(499)},
	{Name: "Leader", Min: 500, Max: bound(999)},
	{Name: "Legend", Min: 1000},
}

func (l Level) Contains(points int) bool {
	return points >= l.Min && (l.Max == nil || points <= *l.Max)
}

func levelIndex(points int) int {
	for i, l := range Levels {
		if l.Contains(points) {
			return i
		}
	}
	return 0
}

// LevelOf returns the band containing points.
func LevelOf(points int) Level {
	return Levels[levelIndex(points)]
}

// NextLevel returns the band after the one containing points, or false at the top.
func NextLevel(points int) (Level, bool) {
	i := levelIndex(points)
	if i+1 >= len(Levels) {
		return Level{}, false
	}
	return Levels[i+1], true
}

// ProgressToNext is the percentage of the way from the current band's minimum to
// the next band's minimum, in [0, 100]. It is 0 in the top band.
func ProgressToNext(points int) float64 {
	current := LevelOf(points)
	next, ok := NextLevel(points)
	if !ok {
		return 0
	}

	pct := 100 * float64(points-current.Min) / float64(next.Min-current.Min)
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// PointsToNext is how many points are missing to reach the next band; 0 at the top.
func PointsToNext(points int) int {
	next, ok := NextLevel(points)
	if !ok {
		return 0
	}
	return next.Min - points
}
