package dispatcher

// Intent is a routed editing request. Implementations are small value
// types; the dispatcher switches on the concrete type.
type Intent interface {
	isIntent()
}

// Key identifies a special (non-printing) key press.
type Key int

const (
	// KeyTab requests an indent insertion.
	KeyTab Key = iota
	// KeyEnter requests a newline, candidate for list continuation.
	KeyEnter
	// KeyBackspace requests a delete, candidate for pair deletion.
	KeyBackspace
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyTab:
		return "tab"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	default:
		return "unknown"
	}
}

// KeyIntent is a special key press.
type KeyIntent struct {
	Key Key
}

func (KeyIntent) isIntent() {}

// CharIntent is a single typed character, candidate for pair insertion
// or closer overtype.
type CharIntent struct {
	Char string
}

func (CharIntent) isIntent() {}

// Command identifies a formatting command.
type Command int

const (
	// CmdBold toggles strong emphasis around the selection.
	CmdBold Command = iota
	// CmdItalic toggles emphasis around the selection.
	CmdItalic
	// CmdCode toggles inline code around the selection.
	CmdCode
	// CmdStrike toggles strikethrough around the selection.
	CmdStrike
	// CmdLink inserts a link skeleton at the selection.
	CmdLink
	// CmdHeading1 toggles a level-1 heading on the selected lines.
	CmdHeading1
	// CmdHeading2 toggles a level-2 heading on the selected lines.
	CmdHeading2
	// CmdHeading3 toggles a level-3 heading on the selected lines.
	CmdHeading3
	// CmdQuote toggles a quote prefix on the selected lines.
	CmdQuote
	// CmdBullet toggles a bullet prefix on the selected lines.
	CmdBullet
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdBold:
		return "bold"
	case CmdItalic:
		return "italic"
	case CmdCode:
		return "code"
	case CmdStrike:
		return "strike"
	case CmdLink:
		return "link"
	case CmdHeading1:
		return "heading1"
	case CmdHeading2:
		return "heading2"
	case CmdHeading3:
		return "heading3"
	case CmdQuote:
		return "quote"
	case CmdBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// CommandIntent is a formatting command.
type CommandIntent struct {
	Command Command
}

func (CommandIntent) isIntent() {}

// TransformIntent names a registered script transform.
type TransformIntent struct {
	Name string
}

func (TransformIntent) isIntent() {}
