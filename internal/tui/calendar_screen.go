package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/stats"
	"github.com/claude/fittrack/internal/workout"
)

// calendarScreen shows one month with workout days marked and lists the
// sessions of the selected day.
type calendarScreen struct {
	cursor time.Time
	cal    *stats.Calendar
	loaded bool
	err    error
}

func newCalendarScreen(now time.Time) calendarScreen {
	y, m, d := now.Date()
	return calendarScreen{
		cursor: time.Date(y, m, d, 0, 0, 0, 0, time.Local),
		cal:    stats.NewCalendar(nil, time.Local),
	}
}

// move shifts the cursor by days and reports whether it left the month.
func (s *calendarScreen) move(days int) bool {
	before := s.cursor.Month()
	s.cursor = s.cursor.AddDate(0, 0, days)
	return s.cursor.Month() != before
}

func (s *calendarScreen) moveMonth(months int) {
	y, m, _ := s.cursor.Date()
	s.cursor = time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.Local)
}

// update handles a key and reports whether the shown month changed.
func (s *calendarScreen) update(msg tea.KeyMsg, now time.Time) bool {
	switch {
	case key.Matches(msg, keys.Left):
		return s.move(-1)
	case key.Matches(msg, keys.Right):
		return s.move(1)
	case key.Matches(msg, keys.Up):
		return s.move(-7)
	case key.Matches(msg, keys.Down):
		return s.move(7)
	case key.Matches(msg, keys.PrevMonth):
		s.moveMonth(-1)
		return true
	case key.Matches(msg, keys.NextMonth):
		s.moveMonth(1)
		return true
	case key.Matches(msg, keys.Today):
		before := s.cursor.Month()
		y, m, d := now.Date()
		s.cursor = time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		return s.cursor.Month() != before
	}
	return false
}

func (s *calendarScreen) setMonth(msg monthMsg) {
	if msg.year != s.cursor.Year() || msg.month != s.cursor.Month() {
		return
	}
	s.err = msg.err
	if msg.err == nil {
		s.cal = stats.NewCalendar(msg.sessions, time.Local)
		s.loaded = true
	}
}

func (s calendarScreen) view() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(s.cursor.Format("January 2006")) + "\n")
	for _, d := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		b.WriteString(dayStyle.Foreground(labelStyle.GetForeground()).Render(d))
	}
	b.WriteString("\n")

	for _, week := range s.cal.MonthGrid(s.cursor.Year(), s.cursor.Month()) {
		for _, day := range week {
			if day.Date.IsZero() {
				b.WriteString(dayStyle.Render(""))
				continue
			}
			label := fmt.Sprint(day.Date.Day())
			switch {
			case day.Date.Equal(s.cursor):
				b.WriteString(cursorDay.Render(label))
			case day.Workout:
				b.WriteString(workoutDay.Render(label))
			default:
				b.WriteString(dayStyle.Render(label))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + headerStyle.Render(s.cursor.Format("Monday, Jan 2")) + "\n")
	switch {
	case s.err != nil:
		b.WriteString(noticeStyles[workout.LevelError].Render("Could not load sessions: "+s.err.Error()) + "\n")
	case !s.loaded:
		b.WriteString(dimStyle.Render("Loading...") + "\n")
	default:
		b.WriteString(renderSessions(s.cal.On(s.cursor)))
	}
	return b.String()
}

func renderSessions(sessions []models.Session) string {
	if len(sessions) == 0 {
		return dimStyle.Render("No workouts on this day") + "\n"
	}
	var b strings.Builder
	for _, sess := range sessions {
		b.WriteString(fmt.Sprintf("%s  %s  %d min · %d reps · %d sets\n",
			dimStyle.Render(sess.Date.Local().Format("15:04")), sess.Title,
			sess.DurationMinutes, sess.TotalReps, sess.TotalSets))
		if sess.Notes != "" {
			b.WriteString(dimStyle.Render("  "+sess.Notes) + "\n")
		}
	}
	return b.String()
}

func (s calendarScreen) help() []key.Binding {
	return []key.Binding{keys.Left, keys.Right, keys.Up, keys.Down, keys.PrevMonth, keys.NextMonth, keys.Today}
}
