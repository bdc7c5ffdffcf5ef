package dining

import "time"

// BlockPeriod is a named meal window used for display. It is independent of
// any location's actual hours.
type BlockPeriod struct {
	Name  string `json:"name"`
	Start int    `json:"start"` // minutes from midnight
	End   int    `json:"end"`   // minutes from midnight, inclusive; End < Start wraps past midnight
}

var BlockPeriods = []BlockPeriod{
	{Name: "Breakfast", Start: 3*60 + 30, End: 10*60 + 59},
	{Name: "Lunch", Start: 11 * 60, End: 16*60 + 59},
	{Name: "Dinner", Start: 17 * 60, End: 20*60 + 59},
	{Name: "Late Night", Start: 21 * 60, End: 3*60 + 29},
}

func (p BlockPeriod) contains(dayMinute int) bool {
	if p.End < p.Start {
		return dayMinute >= p.Start || dayMinute <= p.End
	}
	return dayMinute >= p.Start && dayMinute <= p.End
}

// CurrentBlockPeriod returns the meal window containing now.
func CurrentBlockPeriod(now time.Time) BlockPeriod {
	dayMinute := now.Hour()*MinutesPerHour + now.Minute()
	for _, p := range BlockPeriods {
		if p.contains(dayMinute) {
			return p
		}
	}
	// Unreachable: the windows cover the whole day.
	return BlockPeriods[len(BlockPeriods)-1]
}
