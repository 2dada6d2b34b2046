package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/claude/fittrack/internal/timer"
	"github.com/claude/fittrack/internal/voice"
	"github.com/claude/fittrack/internal/workout"
)

const (
	fieldTitle = iota
	fieldExercise
	fieldWeight
	fieldRest
	fieldNotes
	numFields
	noFocus = -1
)

var workoutFieldLabels = [...]string{"Title", "Exercise", "Weight (kg)", "Rest (s)", "Notes"}

// workoutScreen builds a workout draft. One tick chain runs while the
// workout clock or a rest countdown needs it.
type workoutScreen struct {
	session *workout.Session
	gen     uint64
	ticking bool
	saving  bool
	inputs  []textinput.Model
	notes   textarea.Model
	focus   int
}

func newWorkoutScreen() workoutScreen {
	inputs := make([]textinput.Model, fieldNotes)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 30
		inputs[i] = ti
	}
	inputs[fieldTitle].Placeholder = "Push Day"
	inputs[fieldTitle].CharLimit = 100
	inputs[fieldExercise].Placeholder = "Bench Press"
	inputs[fieldExercise].CharLimit = 100
	inputs[fieldWeight].CharLimit = 7
	inputs[fieldRest].CharLimit = 4
	inputs[fieldRest].SetValue(strconv.Itoa(workout.DefaultRestSeconds))

	notes := textarea.New()
	notes.Placeholder = "How did it go?"
	notes.SetWidth(40)
	notes.SetHeight(3)
	notes.ShowLineNumbers = false

	return workoutScreen{
		session: workout.NewSession(),
		inputs:  inputs,
		notes:   notes,
		focus:   noFocus,
	}
}

func (s *workoutScreen) editing() bool { return s.focus != noFocus }

func (s *workoutScreen) needsTick() bool {
	return s.session.Draft.Started() || s.session.Counter.Resting()
}

// ensureTicking starts a tick chain if one is needed and none is live.
func (s *workoutScreen) ensureTicking() tea.Cmd {
	if s.ticking || !s.needsTick() {
		return nil
	}
	s.ticking = true
	s.gen++
	return tickAfter(screenWorkout, s.gen)
}

// stop strands the live tick chain.
func (s *workoutScreen) stop() {
	s.gen++
	s.ticking = false
}

func (s *workoutScreen) tick(msg tickMsg, now time.Time) (workout.Notice, tea.Cmd) {
	if msg.gen != s.gen || !s.ticking {
		return workout.Notice{}, nil
	}
	n, _ := s.session.Tick(now)
	if s.needsTick() {
		return n, tickAfter(screenWorkout, s.gen)
	}
	s.ticking = false
	return n, nil
}

// syncInputs copies the text fields into the draft and the counter. Weight
// and rest are parsed independently; a field that does not parse leaves its
// counter value unchanged. On error bad is the first such field.
func (s *workoutScreen) syncInputs() (bad int, err error) {
	s.session.Draft.Title = s.inputs[fieldTitle].Value()
	s.session.Draft.Notes = s.notes.Value()

	c := s.session.Counter
	c.Name = s.inputs[fieldExercise].Value()

	bad = noFocus
	var errs []error
	if kg, werr := parseWeight(s.inputs[fieldWeight].Value()); werr != nil {
		bad = fieldWeight
		errs = append(errs, werr)
	} else {
		c.WeightKg = kg
	}
	if sec, rerr := parseRest(s.inputs[fieldRest].Value()); rerr != nil {
		if bad == noFocus {
			bad = fieldRest
		}
		errs = append(errs, rerr)
	} else {
		c.RestSeconds = sec
	}
	return bad, errors.Join(errs...)
}

func parseWeight(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	kg, err := strconv.ParseFloat(v, 64)
	if err != nil || kg < 0 || math.IsNaN(kg) || math.IsInf(kg, 0) {
		return 0, fmt.Errorf("%w: weight %q is not a non-negative number", workout.ErrInvalidExercise, v)
	}
	return kg, nil
}

func parseRest(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	sec, err := strconv.Atoi(v)
	if err != nil || sec < 0 {
		return 0, fmt.Errorf("%w: rest %q is not a whole number of seconds", workout.ErrInvalidExercise, v)
	}
	return sec, nil
}

// leaveField syncs the fields before focus moves to next. A field that does
// not parse keeps the focus and its error is returned as a notice.
func (s *workoutScreen) leaveField(next int) (workout.Notice, tea.Cmd) {
	if bad, err := s.syncInputs(); err != nil {
		return workout.ErrorNotice(err), s.setFocus(bad)
	}
	return workout.Notice{}, s.setFocus(next)
}

// loadDraft shows a restored draft in the text fields.
func (s *workoutScreen) loadDraft(d workout.Draft) {
	s.session.Draft = d
	s.inputs[fieldTitle].SetValue(d.Title)
	s.notes.SetValue(d.Notes)
}

func (s *workoutScreen) clearExerciseFields() {
	s.inputs[fieldExercise].SetValue("")
	s.inputs[fieldWeight].SetValue("")
	s.inputs[fieldRest].SetValue(strconv.Itoa(workout.DefaultRestSeconds))
}

// reset clears the whole screen after a successful save.
func (s *workoutScreen) reset() {
	s.stop()
	s.session.Reset()
	s.inputs[fieldTitle].SetValue("")
	s.notes.SetValue("")
	s.clearExerciseFields()
	s.saving = false
}

func (s *workoutScreen) setFocus(i int) tea.Cmd {
	for j := range s.inputs {
		s.inputs[j].Blur()
	}
	s.notes.Blur()
	s.focus = i
	switch {
	case i == fieldNotes:
		return s.notes.Focus()
	case i >= 0:
		return s.inputs[i].Focus()
	}
	return nil
}

// apply runs a counter command, from a key or from voice input. The counter
// already holds the field values, as leaving a field syncs them.
func (s *workoutScreen) apply(cmd voice.Command) (workout.Notice, tea.Cmd) {
	n, _ := s.session.Apply(cmd)
	return n, s.ensureTicking()
}

// update handles a key. draftChanged reports that the draft should be
// persisted.
func (s *workoutScreen) update(msg tea.KeyMsg, now time.Time) (n workout.Notice, cmd tea.Cmd, draftChanged bool) {
	if s.editing() {
		switch {
		case key.Matches(msg, keys.Blur):
			n, cmd = s.leaveField(noFocus)
			return n, cmd, true
		case key.Matches(msg, keys.NextField):
			n, cmd = s.leaveField((s.focus + 1) % numFields)
			return n, cmd, true
		case key.Matches(msg, keys.PrevField):
			n, cmd = s.leaveField((s.focus + numFields - 1) % numFields)
			return n, cmd, true
		}
		if s.focus == fieldNotes {
			s.notes, cmd = s.notes.Update(msg)
		} else {
			s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		}
		return n, cmd, false
	}

	switch {
	case key.Matches(msg, keys.NextField):
		return n, s.setFocus(fieldTitle), false
	case key.Matches(msg, keys.StartWorkout):
		n = s.session.StartWorkout(now)
		return n, s.ensureTicking(), true
	case key.Matches(msg, keys.Rep):
		n, cmd = s.apply(voice.IncrementRep)
		return n, cmd, false
	case key.Matches(msg, keys.Unrep):
		s.session.Counter.DecrementReps()
	case key.Matches(msg, keys.CompleteSet):
		n, cmd = s.apply(voice.CompleteSet)
		return n, cmd, false
	case key.Matches(msg, keys.SkipRest):
		if s.session.Counter.SkipRest() {
			n = workout.Notice{Title: "Rest Skipped", Level: workout.LevelInfo}
		}
	case key.Matches(msg, keys.ResetExercise):
		n, cmd = s.apply(voice.Reset)
		return n, cmd, false
	case key.Matches(msg, keys.AddExercise):
		if bad, err := s.syncInputs(); err != nil {
			return workout.ErrorNotice(err), s.setFocus(bad), false
		}
		added, err := s.session.AddExercise()
		if err != nil {
			return added, nil, false
		}
		s.clearExerciseFields()
		return added, nil, true
	case key.Matches(msg, keys.RemoveExercise):
		if last := len(s.session.Draft.Exercises) - 1; last >= 0 {
			name := s.session.Draft.Exercises[last].Name
			if err := s.session.Draft.RemoveExercise(last); err == nil {
				return workout.Notice{Title: "Exercise Removed", Detail: name, Level: workout.LevelInfo}, nil, true
			}
		}
	}
	return n, nil, false
}

func (s workoutScreen) view(listening bool) string {
	d := &s.session.Draft
	c := s.session.Counter

	var form []string
	for i := range numFields {
		label := labelStyle.Render(fmt.Sprintf("%-12s", workoutFieldLabels[i]))
		if i == s.focus {
			label = headerStyle.Render(fmt.Sprintf("%-12s", workoutFieldLabels[i]))
		}
		var v string
		if i == fieldNotes {
			v = s.notes.View()
		} else {
			v = s.inputs[i].View()
		}
		form = append(form, label+v)
	}

	clock := "not started"
	if d.Started() {
		clock = timer.FormatClock(d.ElapsedSeconds)
	}
	counter := []string{
		field("Workout", clock),
		field("Reps", strconv.Itoa(c.Reps())) + "   " + field("Sets", strconv.Itoa(c.Sets())) + "   " + field("Total reps", strconv.Itoa(c.TotalReps())),
	}
	if c.Resting() {
		counter = append(counter, restStyle.Render("REST "+timer.FormatClock(c.RestRemaining())))
	}
	if listening {
		counter = append(counter, workStyle.Render("listening for voice commands"))
	}

	var list []string
	if len(d.Exercises) == 0 {
		list = append(list, dimStyle.Render("No exercises yet"))
	}
	for i, e := range d.Exercises {
		list = append(list, fmt.Sprintf("%d. %s  %d sets · %d reps · %gkg · %ds rest", i+1, e.Name, e.Sets, e.Reps, e.WeightKg, e.RestSeconds))
	}
	list = append(list, "", field("Total", fmt.Sprintf("%d sets · %d reps", d.TotalSets(), d.TotalReps())))
	if s.saving {
		list = append(list, dimStyle.Render("saving..."))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, form...)),
		panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, counter...)),
		panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, list...)),
	)
}

func (s workoutScreen) help() []key.Binding {
	if s.editing() {
		return []key.Binding{keys.NextField, keys.PrevField, keys.Blur}
	}
	return []key.Binding{keys.StartWorkout, keys.Rep, keys.Unrep, keys.CompleteSet, keys.SkipRest,
		keys.ResetExercise, keys.AddExercise, keys.RemoveExercise, keys.Save, keys.Voice, keys.NextField}
}
