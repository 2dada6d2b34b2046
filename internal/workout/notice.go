package workout

// Level classifies a Notice for display.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notice is a short user-facing message produced by a workout action.
type Notice struct {
	Title  string
	Detail string
	Level  Level
}

func info(title, detail string) Notice    { return Notice{Title: title, Detail: detail, Level: LevelInfo} }
func success(title, detail string) Notice { return Notice{Title: title, Detail: detail, Level: LevelSuccess} }

// ErrorNotice converts err into a notice, titled by the error category.
func ErrorNotice(err error) Notice {
	return Notice{Title: Category(err), Detail: err.Error(), Level: LevelError}
}
