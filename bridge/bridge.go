package bridge

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iw2rmb/quire/document"
	"github.com/iw2rmb/quire/focus"
	"github.com/iw2rmb/quire/notify"
)

var (
	ErrNilEditor      = errors.New("bridge: nil editor")
	ErrNotMounted     = errors.New("bridge: not mounted")
	ErrAlreadyMounted = errors.New("bridge: already mounted")
	ErrEditorChanged  = errors.New("bridge: editor identity changed")
)

// Sink receives the document after every accepted change. It is owned by the
// host, which usually stores the snapshot and passes it back as Props.Value.
type Sink func(document.Value)

// Props is what the host supplies on every activation.
type Props struct {
	Editor *document.Editor
	Value  document.Value

	OnChange Sink
	Fields   document.Fields

	// IsFocused is the external focus predicate. Nil means never focused.
	IsFocused func(*document.Editor) bool
}

// Context is the published tuple. The pointer returned by Bridge.Context is
// replaced whenever the generation, the snapshot identity or the fields
// change, so consumers can compare pointers to decide whether to redraw.
type Context struct {
	Editor *document.Editor
}

type state uint8

const (
	stateIdle state = iota
	stateApplying
)

// deps are the inputs the published Context was computed from.
type deps struct {
	valid      bool
	generation uint64
	value      document.Value
	fields     document.Fields
}

func (d deps) matches(generation uint64, p Props) bool {
	return d.valid &&
		d.generation == generation &&
		document.SameValue(d.value, p.Value) &&
		d.fields.Equal(p.Fields)
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithTarget selects the focus target the tracker listens on. The default is
// focus.Document.
func WithTarget(t *focus.Target) Option {
	return func(b *Bridge) { b.target = t }
}

// WithLogger replaces the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Bridge) { b.logger = l }
}

// Bridge keeps a view in step with a mutable editor. See the package
// documentation for the life cycle.
type Bridge struct {
	target *focus.Target
	logger zerolog.Logger

	editor  *document.Editor
	mounted bool
	state   state

	// generation only ever feeds deps; it is never exposed.
	generation uint64

	isFocused func(*document.Editor) bool
	tracker   *focus.Tracker

	ctx  *Context
	deps deps
}

// New returns an unmounted bridge.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		target: focus.Document,
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.target == nil {
		b.target = focus.Document
	}
	return b
}

// Mount activates the bridge for p.Editor. If the focus listeners cannot be
// installed the error is returned and nothing stays registered.
func (b *Bridge) Mount(p Props) error {
	if b.mounted {
		return ErrAlreadyMounted
	}
	if p.Editor == nil {
		return ErrNilEditor
	}

	b.editor = p.Editor
	b.isFocused = p.IsFocused
	b.generation = 0
	b.state = stateIdle
	b.deps = deps{}

	tracker := focus.NewTracker(b.target, b.focusedNow)
	if err := tracker.Mount(); err != nil {
		b.editor, b.isFocused = nil, nil
		return fmt.Errorf("bridge: mount focus tracker: %w", err)
	}
	b.tracker = tracker
	b.mounted = true

	b.logger.Debug().Str("editor", p.Editor.ID).Msg("bridge mounted")
	b.activate(p)
	return nil
}

// Render is a render pass: it re-applies p to the editor, re-registers the
// change callback with the current sink, republishes the Context if any of
// its inputs changed and refreshes the focus flag.
func (b *Bridge) Render(p Props) error {
	if !b.mounted {
		return ErrNotMounted
	}
	if p.Editor != b.editor {
		return ErrEditorChanged
	}
	b.activate(p)
	return nil
}

// Unmount tears the bridge down. The editor's change slot is parked on a
// no-op so a late notification cannot reach this bridge or its sink.
func (b *Bridge) Unmount() {
	if !b.mounted {
		return
	}
	notify.Clear(b.editor)
	b.tracker.Unmount()

	b.logger.Debug().Str("editor", b.editor.ID).Msg("bridge unmounted")

	b.mounted = false
	b.tracker = nil
	b.editor = nil
	b.isFocused = nil
	b.ctx = nil
	b.deps = deps{}
}

// Mounted reports whether the bridge is active.
func (b *Bridge) Mounted() bool { return b.mounted }

// Editor returns the bridged editor, or nil when unmounted.
func (b *Bridge) Editor() *document.Editor { return b.editor }

// Context returns the published tuple, or nil when unmounted.
func (b *Bridge) Context() *Context { return b.ctx }

// Focused returns the cached focus flag.
func (b *Bridge) Focused() bool {
	if b.tracker == nil {
		return false
	}
	return b.tracker.Focused()
}

func (b *Bridge) activate(p Props) {
	ed := b.editor

	// Assigned on every pass, changed or not.
	ed.Children = p.Value
	p.Fields.Apply(ed)
	b.isFocused = p.IsFocused

	sink := p.OnChange
	notify.Register(ed, func() { b.handleChange(sink) })

	if !b.deps.matches(b.generation, p) {
		b.ctx = &Context{Editor: ed}
		b.deps = deps{
			valid:      true,
			generation: b.generation,
			value:      p.Value,
			fields:     p.Fields.Clone(),
		}
	}

	b.tracker.Refresh()
}

func (b *Bridge) handleChange(sink Sink) {
	if b.state == stateApplying {
		panic("bridge: change notified while another change is being applied")
	}
	b.state = stateApplying
	defer func() { b.state = stateIdle }()

	value := b.editor.Children
	if sink != nil {
		sink(value)
	}
	b.generation++

	b.logger.Debug().Str("editor", b.editor.ID).Int("blocks", len(value)).Msg("editor changed")
}

func (b *Bridge) focusedNow() bool {
	if b.isFocused == nil || b.editor == nil {
		return false
	}
	return b.isFocused(b.editor)
}
