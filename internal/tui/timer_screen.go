package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/claude/fittrack/internal/timer"
	"github.com/claude/fittrack/internal/workout"
)

// timerScreen drives the work/rest interval timer. Every control bumps gen,
// so at most one tick chain is live and pause or reset strands the old one.
type timerScreen struct {
	timer   *timer.Interval
	gen     uint64
	bar     progress.Model
	editing bool
	inputs  []textinput.Model
	focus   int
}

var timerFieldLabels = []string{"Work (s)", "Rest (s)", "Sets"}

func newTimerScreen(cfg timer.Config) (timerScreen, error) {
	t, err := timer.NewInterval(cfg)
	if err != nil {
		return timerScreen{}, err
	}
	inputs := make([]textinput.Model, len(timerFieldLabels))
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 4
		ti.Width = 6
		ti.Prompt = ""
		inputs[i] = ti
	}
	return timerScreen{
		timer:  t,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		inputs: inputs,
	}, nil
}

func (s *timerScreen) start() tea.Cmd {
	if s.timer.Start() == timer.NoChange {
		return nil
	}
	s.gen++
	return tickAfter(screenTimer, s.gen)
}

func (s *timerScreen) pause() {
	if s.timer.Pause() {
		s.gen++
	}
}

func (s *timerScreen) reset() {
	s.timer.Reset()
	s.gen++
}

func (s *timerScreen) toggle() tea.Cmd {
	if s.timer.Active() {
		s.pause()
		return nil
	}
	return s.start()
}

// tick applies msg if it belongs to the live chain and schedules the next.
func (s *timerScreen) tick(msg tickMsg) (workout.Notice, tea.Cmd) {
	if msg.gen != s.gen || !s.timer.Active() {
		return workout.Notice{}, nil
	}
	res := s.timer.Tick()

	var n workout.Notice
	cfg := s.timer.Config()
	switch res.Event {
	case timer.EventRestStarted:
		n = workout.Notice{Title: "Rest Time!", Detail: fmt.Sprintf("Take %d seconds", cfg.RestSeconds), Level: workout.LevelInfo}
	case timer.EventSetStarted:
		n = workout.Notice{Title: "Work Time!", Detail: fmt.Sprintf("Set %d of %d", s.timer.CurrentSet(), cfg.TotalSets), Level: workout.LevelInfo}
	case timer.EventComplete:
		n = workout.Notice{Title: "Workout Complete!", Detail: fmt.Sprintf("%d sets done", cfg.TotalSets), Level: workout.LevelSuccess}
	}

	if s.timer.Active() {
		return n, tickAfter(screenTimer, s.gen)
	}
	return n, nil
}

func (s *timerScreen) beginEdit() (workout.Notice, tea.Cmd) {
	if s.timer.Active() || s.timer.Paused() {
		return workout.Notice{Title: "Settings Locked", Detail: "reset the timer to change settings", Level: workout.LevelError}, nil
	}
	cfg := s.timer.Config()
	for i, v := range []int{cfg.WorkSeconds, cfg.RestSeconds, cfg.TotalSets} {
		s.inputs[i].SetValue(strconv.Itoa(v))
		s.inputs[i].Blur()
	}
	s.editing = true
	s.focus = 0
	return workout.Notice{}, s.inputs[0].Focus()
}

func (s *timerScreen) applyEdit() workout.Notice {
	vals := make([]int, len(s.inputs))
	for i, in := range s.inputs {
		n, err := strconv.Atoi(strings.TrimSpace(in.Value()))
		if err != nil {
			return workout.Notice{Title: "Invalid Settings", Detail: timerFieldLabels[i] + " must be a whole number", Level: workout.LevelError}
		}
		vals[i] = n
	}
	cfg := timer.Config{WorkSeconds: vals[0], RestSeconds: vals[1], TotalSets: vals[2]}
	if err := s.timer.SetConfig(cfg); err != nil {
		return workout.Notice{Title: "Invalid Settings", Detail: err.Error(), Level: workout.LevelError}
	}
	s.endEdit()
	return workout.Notice{Title: "Settings Saved", Detail: fmt.Sprintf("%ds work, %ds rest, %d sets", vals[0], vals[1], vals[2]), Level: workout.LevelSuccess}
}

func (s *timerScreen) endEdit() {
	s.editing = false
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
}

func (s *timerScreen) cycle(delta int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + delta + len(s.inputs)) % len(s.inputs)
	return s.inputs[s.focus].Focus()
}

func (s *timerScreen) update(msg tea.KeyMsg) (workout.Notice, tea.Cmd) {
	if s.editing {
		switch {
		case key.Matches(msg, keys.Apply):
			return s.applyEdit(), nil
		case key.Matches(msg, keys.Blur):
			s.endEdit()
			return workout.Notice{}, nil
		case key.Matches(msg, keys.NextField):
			return workout.Notice{}, s.cycle(1)
		case key.Matches(msg, keys.PrevField):
			return workout.Notice{}, s.cycle(-1)
		}
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return workout.Notice{}, cmd
	}

	switch {
	case key.Matches(msg, keys.Toggle):
		return workout.Notice{}, s.toggle()
	case key.Matches(msg, keys.Reset):
		s.reset()
	case key.Matches(msg, keys.Edit):
		return s.beginEdit()
	}
	return workout.Notice{}, nil
}

func (s timerScreen) view() string {
	var b strings.Builder

	status := s.timer.Status()
	style := workStyle
	if s.timer.Phase() == timer.PhaseResting {
		style = restStyle
	}
	b.WriteString(style.Render(status) + "\n")
	b.WriteString(clockStyle.Render(timer.FormatClock(s.timer.Remaining())) + "\n")
	b.WriteString(s.bar.ViewAs(s.timer.Progress()/100) + "\n\n")

	cfg := s.timer.Config()
	b.WriteString(field("Set", fmt.Sprintf("%d of %d", s.timer.CurrentSet(), cfg.TotalSets)) + "\n")

	if s.editing {
		rows := make([]string, len(s.inputs))
		for i, in := range s.inputs {
			rows[i] = labelStyle.Render(fmt.Sprintf("%-9s", timerFieldLabels[i])) + in.View()
		}
		b.WriteString("\n" + panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)) + "\n")
	} else {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%ds work · %ds rest · %d sets", cfg.WorkSeconds, cfg.RestSeconds, cfg.TotalSets)) + "\n")
	}
	return b.String()
}

func (s timerScreen) help() []key.Binding {
	if s.editing {
		return []key.Binding{keys.NextField, keys.Apply, keys.Blur}
	}
	return []key.Binding{keys.Toggle, keys.Reset, keys.Edit}
}
