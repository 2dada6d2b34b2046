package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Dashboard key.Binding
	Timer     key.Binding
	Workout   key.Binding
	Calendar  key.Binding

	Toggle key.Binding
	Reset  key.Binding
	Edit   key.Binding

	StartWorkout   key.Binding
	Rep            key.Binding
	Unrep          key.Binding
	CompleteSet    key.Binding
	SkipRest       key.Binding
	ResetExercise  key.Binding
	AddExercise    key.Binding
	RemoveExercise key.Binding
	Save           key.Binding
	Voice          key.Binding
	NextField      key.Binding
	PrevField      key.Binding
	Blur           key.Binding
	Apply          key.Binding

	Refresh   key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Dashboard: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
	Timer:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "timer")),
	Workout:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "workout")),
	Calendar:  key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "calendar")),

	Toggle: key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "start/pause")),
	Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "settings")),

	StartWorkout:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "start workout")),
	Rep:            key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "rep")),
	Unrep:          key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "undo rep")),
	CompleteSet:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete set")),
	SkipRest:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "skip rest")),
	ResetExercise:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset exercise")),
	AddExercise:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add exercise")),
	RemoveExercise: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove last")),
	Save:           key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Voice:          key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "voice on/off")),
	NextField:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	PrevField:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	Blur:           key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
	Apply:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),

	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
	PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
	NextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),
	Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dashboard, k.Timer, k.Workout, k.Calendar, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.Toggle, k.Reset, k.Edit},
		{k.StartWorkout, k.Rep, k.Unrep, k.CompleteSet, k.SkipRest, k.AddExercise, k.Save, k.Voice},
		{k.Left, k.Right, k.Up, k.Down, k.PrevMonth, k.NextMonth, k.Today},
	}
}
