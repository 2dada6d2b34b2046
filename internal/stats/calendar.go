package stats

import (
	"sort"
	"time"

	"github.com/claude/fittrack/internal/models"
)

// DayLayout is the key format for calendar days.
const DayLayout = "2006-01-02"

// Calendar groups sessions by the local calendar day of their date.
type Calendar struct {
	loc   *time.Location
	byDay map[string][]models.Session
}

// NewCalendar indexes sessions by day in loc (time.Local when nil).
func NewCalendar(sessions []models.Session, loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	c := &Calendar{loc: loc, byDay: make(map[string][]models.Session)}
	for _, s := range sessions {
		k := s.Date.In(loc).Format(DayLayout)
		c.byDay[k] = append(c.byDay[k], s)
	}
	for _, day := range c.byDay {
		sort.SliceStable(day, func(i, j int) bool { return day[i].Date.Before(day[j].Date) })
	}
	return c
}

// On returns the sessions on the calendar day containing t.
func (c *Calendar) On(t time.Time) []models.Session {
	return c.byDay[t.In(c.loc).Format(DayLayout)]
}

// HasWorkout reports whether any session falls on the day containing t.
func (c *Calendar) HasWorkout(t time.Time) bool {
	return len(c.On(t)) > 0
}

// Dates returns the days with sessions, ascending, as DayLayout strings.
func (c *Calendar) Dates() []string {
	out := make([]string, 0, len(c.byDay))
	for k := range c.byDay {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Day is one cell of a month grid. Zero Date marks padding outside the month.
type Day struct {
	Date    time.Time
	Workout bool
}

// MonthGrid returns the weeks of the given month, Sunday first, padded to
// whole weeks.
func (c *Calendar) MonthGrid(year int, month time.Month) [][7]Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, c.loc)
	days := first.AddDate(0, 1, -1).Day()

	var weeks [][7]Day
	var week [7]Day
	col := int(first.Weekday())
	for d := 1; d <= days; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, c.loc)
		week[col] = Day{Date: date, Workout: c.HasWorkout(date)}
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]Day{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}
