package editable

import "github.com/iw2rmb/quire/focus"

// Config configures the Model.
type Config struct {
	// ID is the element identity used with the focus target. It should match
	// the ID of the bridged editor so IsFocused can resolve it.
	ID string

	KeyMap KeyMap
	Style  Style

	// Target receives focus and blur events. Nil means focus.Document.
	Target *focus.Target

	ShowLineNums bool
	ShowHelp     bool
}

// DefaultConfig returns a Config with the default key map and style.
func DefaultConfig(id string) Config {
	return Config{
		ID:     id,
		KeyMap: DefaultKeyMap(),
		Style:  DefaultStyle(),
	}
}

func (c Config) normalized() Config {
	if c.Target == nil {
		c.Target = focus.Document
	}
	if len(c.KeyMap.Left.Keys()) == 0 {
		c.KeyMap = DefaultKeyMap()
	}
	return c
}
