package tui

import (
	"context"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/stats"
	"github.com/claude/fittrack/internal/voice"
	"github.com/claude/fittrack/internal/workout"
)

const (
	tickInterval   = time.Second
	requestTimeout = 15 * time.Second

	identityRetryBase = 2 * time.Second
	identityRetryMax  = time.Minute
)

type screen int

const (
	screenDashboard screen = iota
	screenTimer
	screenWorkout
	screenCalendar
)

var screenNames = [...]string{"Dashboard", "Timer", "Workout", "Calendar"}

func (s screen) String() string { return screenNames[s] }

// tickMsg is one second of a screen's countdown. Ticks whose gen no longer
// matches the screen's are stale and dropped.
type tickMsg struct {
	screen screen
	gen    uint64
}

func tickAfter(s screen, gen uint64) tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{screen: s, gen: gen}
	})
}

type identityMsg struct {
	user *models.User
	err  error
}

// identityRetryMsg asks for the identity again after a failure. Only the
// retry scheduled for the latest failure is honoured.
type identityRetryMsg struct {
	attempt int
}

type dashboardMsg struct {
	dash stats.Dashboard
	err  error
}

type monthMsg struct {
	year     int
	month    time.Month
	sessions []models.Session
	err      error
}

type savedMsg struct {
	session *models.Session
	err     error
}

type draftMsg struct {
	draft *workout.Draft
	err   error
}

// voiceMsg is one command from the listening session numbered gen. ok is
// false once that session's channel closed.
type voiceMsg struct {
	gen uint64
	cmd voice.Command
	ok  bool
}

func (m Model) fetchIdentity() tea.Cmd {
	if m.opts.Identity == nil {
		return nil
	}
	ctx, id := m.ctx, m.opts.Identity
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		u, err := id.Me(ctx)
		return identityMsg{user: u, err: err}
	}
}

// identityBackoff doubles the wait after every failure, up to a minute.
func identityBackoff(failures int) time.Duration {
	d := identityRetryBase
	for i := 1; i < failures && d < identityRetryMax; i++ {
		d *= 2
	}
	return min(d, identityRetryMax)
}

func retryIdentity(attempt int) tea.Cmd {
	return tea.Tick(identityBackoff(attempt), func(time.Time) tea.Msg {
		return identityRetryMsg{attempt: attempt}
	})
}

// fetchDashboard is a no-op until the identity is known.
func (m Model) fetchDashboard() tea.Cmd {
	if m.user == nil {
		return nil
	}
	ctx, st, userID, goal, now := m.ctx, m.opts.Store, m.user.ID, m.opts.WeeklyGoal, m.now
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		sessions, err := st.ListSessions(ctx, models.SessionQuery{UserID: userID, Limit: stats.RecentLimit})
		if err != nil {
			return dashboardMsg{err: err}
		}
		return dashboardMsg{dash: stats.ComputeDashboard(sessions, now(), goal)}
	}
}

// fetchMonth loads the sessions of one month; a no-op until the identity is
// known.
func (m Model) fetchMonth(year int, month time.Month) tea.Cmd {
	if m.user == nil {
		return nil
	}
	ctx, st, userID := m.ctx, m.opts.Store, m.user.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
		sessions, err := st.ListSessions(ctx, models.SessionQuery{
			UserID: userID,
			Start:  first,
			End:    first.AddDate(0, 1, 0),
		})
		return monthMsg{year: year, month: month, sessions: sessions, err: err}
	}
}

// saveDraft submits a copy of the draft, so the screen keeps running while
// the save is in flight.
func (m Model) saveDraft() tea.Cmd {
	ctx, saver, owner := m.ctx, m.opts.Saver, *m.user
	d := cloneDraft(m.workout.session.Draft)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		sess, err := saver.Save(ctx, &owner, &d)
		return savedMsg{session: sess, err: err}
	}
}

func (m Model) loadDraft() tea.Cmd {
	if m.opts.Drafts == nil || m.user == nil {
		return nil
	}
	drafts, userID := m.opts.Drafts, m.user.ID
	return func() tea.Msg {
		d, err := drafts.Load(userID)
		return draftMsg{draft: d, err: err}
	}
}

// persistDraft writes the current draft to the local draft store. The
// version is taken here, in Update order, so a later write or discard always
// wins however the commands are scheduled. Failures are logged only.
func (m Model) persistDraft() tea.Cmd {
	if m.opts.Drafts == nil || m.user == nil {
		return nil
	}
	drafts, userID, log := m.opts.Drafts, m.user.ID, m.log
	version := drafts.NextVersion()
	d := cloneDraft(m.workout.session.Draft)
	d.UpdateElapsed(m.now())
	return func() tea.Msg {
		if err := drafts.Save(userID, version, &d); err != nil {
			log.Warn("failed to persist draft", "error", err)
		}
		return nil
	}
}

func (m Model) discardDraft() tea.Cmd {
	if m.opts.Drafts == nil || m.user == nil {
		return nil
	}
	drafts, userID, log := m.opts.Drafts, m.user.ID, m.log
	version := drafts.NextVersion()
	return func() tea.Msg {
		if err := drafts.Delete(userID, version); err != nil {
			log.Warn("failed to delete draft", "error", err)
		}
		return nil
	}
}

func waitForVoice(gen uint64, ch <-chan voice.Command) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		return voiceMsg{gen: gen, cmd: c, ok: ok}
	}
}

func cloneDraft(d workout.Draft) workout.Draft {
	d.Exercises = slices.Clone(d.Exercises)
	return d
}
