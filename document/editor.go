package document

// Editor is the mutable document state shared by the command layer and the
// view. Commands mutate it in place; its identity never changes.
type Editor struct {
	// ID identifies the editor's view element for focus tracking.
	ID string

	Children  Value
	Selection *Range

	// Extension fields, copied from Fields on every bridge activation.
	ReadOnly    bool
	Placeholder string
	Autofocus   bool
}

// NewEditor returns an editor holding value with the cursor at its start.
func NewEditor(id string, value Value) *Editor {
	ed := &Editor{ID: id, Children: value}
	if p, ok := Start(value); ok {
		sel := Collapsed(p)
		ed.Selection = &sel
	}
	return ed
}

// Fields is the set of extension fields a host may push onto an Editor.
// A nil field is not supplied and leaves the editor's value alone.
type Fields struct {
	ReadOnly    *bool
	Placeholder *string
	Autofocus   *bool
}

// Apply copies every supplied field onto ed, overwriting what is there.
func (f Fields) Apply(ed *Editor) {
	if ed == nil {
		return
	}
	if f.ReadOnly != nil {
		ed.ReadOnly = *f.ReadOnly
	}
	if f.Placeholder != nil {
		ed.Placeholder = *f.Placeholder
	}
	if f.Autofocus != nil {
		ed.Autofocus = *f.Autofocus
	}
}

// Equal reports whether f and g supply the same fields with the same values.
func (f Fields) Equal(g Fields) bool {
	return eqOpt(f.ReadOnly, g.ReadOnly) &&
		eqOpt(f.Placeholder, g.Placeholder) &&
		eqOpt(f.Autofocus, g.Autofocus)
}

// Clone returns a copy of f that shares no pointers with it.
func (f Fields) Clone() Fields {
	return Fields{
		ReadOnly:    cloneOpt(f.ReadOnly),
		Placeholder: cloneOpt(f.Placeholder),
		Autofocus:   cloneOpt(f.Autofocus),
	}
}

func cloneOpt[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func eqOpt[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
