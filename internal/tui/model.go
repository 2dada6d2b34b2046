// Package tui is the terminal client: a dashboard, an interval timer, a
// workout builder with rep counting and a calendar of past sessions.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/store"
	"github.com/claude/fittrack/internal/timer"
	"github.com/claude/fittrack/internal/voice"
	"github.com/claude/fittrack/internal/workout"
)

// Options wires the model to its collaborators. Drafts and Recognizer are
// optional; VoiceErr says why Recognizer is missing and is shown when the
// user tries to turn voice control on.
type Options struct {
	Store      store.Store
	Identity   store.Identity
	Saver      *workout.Saver
	Drafts     *workout.DraftDB
	Recognizer voice.Recognizer
	VoiceErr   error
	Timer      timer.Config
	WeeklyGoal int
	Log        *slog.Logger
}

// Model is the root bubbletea model. It owns the four screens and routes
// messages to the one they belong to.
type Model struct {
	ctx  context.Context
	opts Options
	log  *slog.Logger
	now  func() time.Time

	user             *models.User
	identifying      bool
	identityFailures int
	screen           screen
	notice           workout.Notice

	voiceGen  uint64
	voiceCh   <-chan voice.Command
	voiceStop context.CancelFunc

	dashboard dashboardScreen
	timer     timerScreen
	workout   workoutScreen
	calendar  calendarScreen

	help   help.Model
	width  int
	height int
}

// New builds the root model. It fails only for an invalid timer config.
func New(ctx context.Context, opts Options) (Model, error) {
	if opts.Timer == (timer.Config{}) {
		opts.Timer = timer.DefaultConfig()
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	ts, err := newTimerScreen(opts.Timer)
	if err != nil {
		return Model{}, err
	}
	return Model{
		ctx:         ctx,
		opts:        opts,
		log:         opts.Log,
		now:         time.Now,
		identifying: opts.Identity != nil,
		screen:      screenDashboard,
		dashboard: newDashboardScreen(),
		timer:     ts,
		workout:   newWorkoutScreen(),
		calendar:  newCalendarScreen(time.Now()),
		help:      help.New(),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.fetchIdentity()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		var n workout.Notice
		var cmd tea.Cmd
		switch msg.screen {
		case screenTimer:
			n, cmd = m.timer.tick(msg)
		case screenWorkout:
			n, cmd = m.workout.tick(msg, m.now())
		}
		m.setNotice(n)
		return m, cmd

	case identityMsg:
		m.identifying = false
		if msg.err != nil {
			m.identityFailures++
			m.log.Error("failed to identify user", "error", msg.err, "attempt", m.identityFailures)
			m.notice = workout.ErrorNotice(errors.Join(workout.ErrNoIdentity, msg.err))
			return m, retryIdentity(m.identityFailures)
		}
		m.user = msg.user
		m.identityFailures = 0
		m.log.Info("signed in", "user", msg.user.Login)
		return m, tea.Batch(m.fetchDashboard(), m.fetchMonth(m.calendar.cursor.Year(), m.calendar.cursor.Month()), m.loadDraft())

	case identityRetryMsg:
		if msg.attempt != m.identityFailures {
			return m, nil
		}
		cmd := m.requestIdentity()
		return m, cmd

	case dashboardMsg:
		m.dashboard.err = msg.err
		if msg.err != nil {
			m.log.Error("failed to load dashboard", "error", msg.err)
			return m, nil
		}
		m.dashboard.dash = msg.dash
		m.dashboard.loaded = true
		return m, nil

	case monthMsg:
		if msg.err != nil {
			m.log.Error("failed to load month", "month", msg.month, "error", msg.err)
		}
		m.calendar.setMonth(msg)
		return m, nil

	case draftMsg:
		if msg.err != nil {
			m.log.Warn("failed to load draft", "error", msg.err)
			return m, nil
		}
		if msg.draft != nil && m.workout.session.Draft.Empty() {
			d := *msg.draft
			d.Resume(m.now())
			m.workout.loadDraft(d)
			m.notice = workout.Notice{Title: "Draft Restored", Detail: "continuing your unsaved workout", Level: workout.LevelInfo}
			if m.screen == screenWorkout {
				cmd := m.workout.ensureTicking()
				return m, cmd
			}
		}
		return m, nil

	case savedMsg:
		m.workout.saving = false
		if msg.err != nil {
			m.notice = workout.ErrorNotice(msg.err)
			return m, nil
		}
		m.workout.reset()
		m.notice = workout.Notice{Title: "Workout Saved!", Detail: msg.session.Title + " has been recorded", Level: workout.LevelSuccess}
		return m, tea.Batch(m.discardDraft(), m.fetchDashboard(), m.fetchMonth(m.calendar.cursor.Year(), m.calendar.cursor.Month()))

	case voiceMsg:
		if msg.gen != m.voiceGen {
			return m, nil
		}
		if !msg.ok {
			m.log.Info("voice input ended")
			m.stopVoice()
			m.notice = workout.Notice{Title: "Voice Control Off", Detail: "the recognizer stopped", Level: workout.LevelInfo}
			return m, nil
		}
		next := waitForVoice(m.voiceGen, m.voiceCh)
		if m.screen != screenWorkout {
			return m, next
		}
		n, cmd := m.workout.apply(msg.cmd)
		m.setNotice(n)
		return m, tea.Batch(next, cmd)
	}
	return m, nil
}

// requestIdentity asks for the identity unless it is known or a request is
// already in flight.
func (m *Model) requestIdentity() tea.Cmd {
	if m.user != nil || m.identifying || m.opts.Identity == nil {
		return nil
	}
	m.identifying = true
	return m.fetchIdentity()
}

// toggleVoice starts or stops listening for voice commands. Each listening
// session gets a new gen so commands still queued from a stopped one are
// dropped.
func (m *Model) toggleVoice() tea.Cmd {
	if m.voiceCh != nil {
		m.stopVoice()
		m.notice = workout.Notice{Title: "Voice Control Off", Level: workout.LevelInfo}
		return nil
	}
	if m.opts.Recognizer == nil {
		m.notice = workout.ErrorNotice(voiceUnavailable(m.opts.VoiceErr))
		return nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	transcripts, err := m.opts.Recognizer.Listen(ctx)
	if err != nil {
		cancel()
		m.log.Warn("failed to start voice input", "error", err)
		m.notice = workout.ErrorNotice(voiceUnavailable(err))
		return nil
	}
	m.voiceGen++
	m.voiceCh = voice.Commands(ctx, transcripts)
	m.voiceStop = cancel
	m.log.Info("voice input started")
	m.notice = workout.Notice{Title: "Listening...", Detail: `say "rep", "set" or "reset"`, Level: workout.LevelInfo}
	return waitForVoice(m.voiceGen, m.voiceCh)
}

func (m *Model) stopVoice() {
	if m.voiceStop != nil {
		m.voiceStop()
	}
	m.voiceGen++
	m.voiceCh, m.voiceStop = nil, nil
}

func voiceUnavailable(err error) error {
	switch {
	case err == nil:
		return voice.ErrUnavailable
	case errors.Is(err, voice.ErrUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %v", voice.ErrUnavailable, err)
	}
}

func (m *Model) setNotice(n workout.Notice) {
	if n.Title != "" {
		m.notice = n
	}
}

// inputFocused reports whether keys belong to a text field.
func (m Model) inputFocused() bool {
	switch m.screen {
	case screenTimer:
		return m.timer.editing
	case screenWorkout:
		return m.workout.editing()
	}
	return false
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if !m.inputFocused() {
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, keys.Dashboard):
			return m.switchTo(screenDashboard)
		case key.Matches(msg, keys.Timer):
			return m.switchTo(screenTimer)
		case key.Matches(msg, keys.Workout):
			return m.switchTo(screenWorkout)
		case key.Matches(msg, keys.Calendar):
			return m.switchTo(screenCalendar)
		}
	}

	switch m.screen {
	case screenDashboard:
		if key.Matches(msg, keys.Refresh) {
			if m.user == nil {
				cmd := m.requestIdentity()
				return m, cmd
			}
			return m, m.fetchDashboard()
		}
	case screenTimer:
		n, cmd := m.timer.update(msg)
		m.setNotice(n)
		return m, cmd
	case screenWorkout:
		if !m.inputFocused() {
			switch {
			case key.Matches(msg, keys.Save):
				return m.save()
			case key.Matches(msg, keys.Voice):
				cmd := m.toggleVoice()
				return m, cmd
			}
		}
		n, cmd, changed := m.workout.update(msg, m.now())
		m.setNotice(n)
		if changed {
			cmd = tea.Batch(cmd, m.persistDraft())
		}
		return m, cmd
	case screenCalendar:
		if m.calendar.update(msg, m.now()) {
			m.calendar.loaded = false
			return m, m.fetchMonth(m.calendar.cursor.Year(), m.calendar.cursor.Month())
		}
	}
	return m, nil
}

// switchTo changes screen. Leaving a screen halts its tick chain; the timer
// is paused rather than left running unseen.
func (m Model) switchTo(s screen) (tea.Model, tea.Cmd) {
	if s == m.screen {
		return m, nil
	}
	switch m.screen {
	case screenTimer:
		m.timer.pause()
	case screenWorkout:
		m.workout.stop()
	}
	m.screen = s

	switch s {
	case screenDashboard:
		return m, m.fetchDashboard()
	case screenWorkout:
		cmd := m.workout.ensureTicking()
		return m, cmd
	case screenCalendar:
		return m, m.fetchMonth(m.calendar.cursor.Year(), m.calendar.cursor.Month())
	}
	return m, nil
}

// save submits the draft. The timers keep running while it is in flight.
func (m Model) save() (tea.Model, tea.Cmd) {
	if m.workout.saving {
		return m, nil
	}
	if m.user == nil {
		m.notice = workout.ErrorNotice(workout.ErrNoIdentity)
		cmd := m.requestIdentity()
		return m, cmd
	}
	if bad, err := m.workout.syncInputs(); err != nil {
		m.notice = workout.ErrorNotice(err)
		cmd := m.workout.setFocus(bad)
		return m, cmd
	}
	if err := m.workout.session.Draft.Validate(); err != nil {
		m.notice = workout.ErrorNotice(err)
		return m, nil
	}
	m.workout.saving = true
	m.notice = workout.Notice{Title: "Saving...", Level: workout.LevelInfo}
	return m, m.saveDraft()
}

func (m Model) View() string {
	tabs := make([]string, len(screenNames))
	for i, name := range screenNames {
		label := string(rune('1'+i)) + " " + name
		if screen(i) == m.screen {
			tabs[i] = activeTab.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}

	var body string
	var bindings []key.Binding
	switch m.screen {
	case screenDashboard:
		name := ""
		if m.user != nil {
			name = m.user.Name()
		}
		body, bindings = m.dashboard.view(name), m.dashboard.help()
	case screenTimer:
		body, bindings = m.timer.view(), m.timer.help()
	case screenWorkout:
		body, bindings = m.workout.view(m.voiceCh != nil), m.workout.help()
	case screenCalendar:
		body, bindings = m.calendar.view(), m.calendar.help()
	}

	var helpView string
	if m.help.ShowAll {
		helpView = m.help.FullHelpView(keys.FullHelp())
	} else {
		helpView = m.help.ShortHelpView(append(bindings, keys.ShortHelp()...))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")
	b.WriteString(body + "\n")
	if n := renderNotice(m.notice); n != "" {
		b.WriteString(n + "\n")
	}
	b.WriteString(helpView)
	return baseStyle.Render(b.String())
}
