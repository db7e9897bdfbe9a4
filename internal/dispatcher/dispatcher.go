package dispatcher

import (
	"github.com/mvickers/inkmark/internal/engine/mutate"
	"github.com/mvickers/inkmark/internal/engine/selection"
	"github.com/mvickers/inkmark/internal/logging"
)

// Transformer applies a named transform to a selection state. The
// script host implements this; the dispatcher stays unaware of how
// transforms are registered.
type Transformer interface {
	Apply(name string, st selection.State) (mutate.Result, error)
}

// inlineMarkers maps inline formatting commands to their markers.
var inlineMarkers = map[Command]string{
	CmdBold:   "**",
	CmdItalic: "*",
	CmdCode:   "`",
	CmdStrike: "~~",
}

// blockPrefixes maps block formatting commands to their line prefixes.
var blockPrefixes = map[Command]string{
	CmdHeading1: "# ",
	CmdHeading2: "## ",
	CmdHeading3: "### ",
	CmdQuote:    "> ",
	CmdBullet:   "- ",
}

// Dispatcher maps intents onto mutations. It carries configuration
// only; document state stays with the caller.
type Dispatcher struct {
	indentUnit    string
	autoPair      bool
	continueLists bool
	transformer   Transformer
	log           *logging.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithIndentUnit sets the text inserted for Tab.
func WithIndentUnit(unit string) Option {
	return func(d *Dispatcher) {
		if unit != "" {
			d.indentUnit = unit
		}
	}
}

// WithAutoPair enables or disables bracket pairing behavior.
func WithAutoPair(enabled bool) Option {
	return func(d *Dispatcher) {
		d.autoPair = enabled
	}
}

// WithListContinuation enables or disables list continuation on Enter.
func WithListContinuation(enabled bool) Option {
	return func(d *Dispatcher) {
		d.continueLists = enabled
	}
}

// WithTransformer installs the handler for TransformIntent.
func WithTransformer(t Transformer) Option {
	return func(d *Dispatcher) {
		d.transformer = t
	}
}

// WithLogger sets the dispatcher's logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// New creates a dispatcher. Pairing and list continuation default on.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		indentUnit:    mutate.DefaultIndent,
		autoPair:      true,
		continueLists: true,
		log:           logging.Discard,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch routes the intent against the selection state. It reports
// false when no mutation applies, leaving the caller to handle the
// input as plain insertion.
func (d *Dispatcher) Dispatch(st selection.State, intent Intent) (mutate.Result, bool) {
	switch in := intent.(type) {
	case KeyIntent:
		return d.dispatchKey(st, in.Key)
	case CharIntent:
		return d.dispatchChar(st, in.Char)
	case CommandIntent:
		return d.dispatchCommand(st, in.Command)
	case TransformIntent:
		return d.dispatchTransform(st, in.Name)
	default:
		return mutate.Result{}, false
	}
}

func (d *Dispatcher) dispatchKey(st selection.State, key Key) (mutate.Result, bool) {
	switch key {
	case KeyTab:
		return mutate.Indent(st, d.indentUnit)
	case KeyEnter:
		if !d.continueLists {
			return mutate.Result{}, false
		}
		return mutate.ContinueList(st)
	case KeyBackspace:
		if !d.autoPair {
			return mutate.Result{}, false
		}
		return mutate.DeletePair(st)
	default:
		return mutate.Result{}, false
	}
}

func (d *Dispatcher) dispatchChar(st selection.State, ch string) (mutate.Result, bool) {
	if !d.autoPair {
		return mutate.Result{}, false
	}
	// Overtype wins over insertion when the typed closer is already
	// at the caret.
	if res, ok := mutate.SkipCloser(st, ch); ok {
		return res, true
	}
	return mutate.ClosePair(st, ch)
}

func (d *Dispatcher) dispatchCommand(st selection.State, cmd Command) (mutate.Result, bool) {
	if marker, ok := inlineMarkers[cmd]; ok {
		return mutate.ToggleInline(st, marker)
	}
	if prefix, ok := blockPrefixes[cmd]; ok {
		return mutate.ToggleBlockPrefix(st, prefix)
	}
	if cmd == CmdLink {
		return mutate.InsertLink(st)
	}
	return mutate.Result{}, false
}

func (d *Dispatcher) dispatchTransform(st selection.State, name string) (mutate.Result, bool) {
	if d.transformer == nil {
		return mutate.Result{}, false
	}
	res, err := d.transformer.Apply(name, st)
	if err != nil {
		d.log.Warn("transform %q failed: %v", name, err)
		return mutate.Result{}, false
	}
	return res, true
}
