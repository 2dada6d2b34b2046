package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"

	"github.com/claude/fittrack/internal/stats"
	"github.com/claude/fittrack/internal/workout"
)

type dashboardScreen struct {
	dash   stats.Dashboard
	loaded bool
	err    error
	bar    progress.Model
}

func newDashboardScreen() dashboardScreen {
	return dashboardScreen{bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))}
}

func (s dashboardScreen) view(name string) string {
	var b strings.Builder
	if name != "" {
		b.WriteString(headerStyle.Render("Welcome back, "+name) + "\n\n")
	}
	switch {
	case s.err != nil:
		b.WriteString(noticeStyles[workout.LevelError].Render("Could not load dashboard: "+s.err.Error()) + "\n")
		return b.String()
	case !s.loaded:
		b.WriteString(dimStyle.Render("Loading...") + "\n")
		return b.String()
	}

	d := s.dash
	b.WriteString(field("Workouts", fmt.Sprint(d.TotalWorkouts)) + "   " +
		field("Reps", fmt.Sprint(d.TotalReps)) + "   " +
		field("Sets", fmt.Sprint(d.TotalSets)) + "   " +
		field("Minutes", fmt.Sprint(d.TotalMinutes)) + "\n\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("Weekly goal %d/%d ", d.WeeklyWorkouts, d.WeeklyGoal)))
	b.WriteString(s.bar.ViewAs(d.WeeklyProgress/100) + "\n")
	if d.GoalReached {
		b.WriteString(workStyle.Render("Goal reached this week!") + "\n")
	}

	b.WriteString("\n" + headerStyle.Render("Recent workouts") + "\n")
	if len(d.Recent) == 0 {
		b.WriteString(dimStyle.Render("No workouts yet. Press 3 to start one.") + "\n")
	}
	for _, sess := range d.Recent {
		b.WriteString(fmt.Sprintf("%s  %s  %d min · %d reps · %d sets\n",
			dimStyle.Render(sess.Date.Local().Format("Jan 02")), sess.Title,
			sess.DurationMinutes, sess.TotalReps, sess.TotalSets))
	}
	return b.String()
}

func (s dashboardScreen) help() []key.Binding {
	return []key.Binding{keys.Refresh}
}
