package editable

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/quire/document"
)

// Style controls the component's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	// Block styles, keyed by element type.
	Paragraph lipgloss.Style
	Heading   lipgloss.Style
	Quote     lipgloss.Style
	Code      lipgloss.Style

	// Leaf marks.
	Bold       lipgloss.Style
	Italic     lipgloss.Style
	InlineCode lipgloss.Style

	Selection   lipgloss.Style
	Cursor      lipgloss.Style
	Placeholder lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),

		Paragraph: lipgloss.NewStyle(),
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Quote:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		Code:      lipgloss.NewStyle().Foreground(lipgloss.Color("150")),

		Bold:       lipgloss.NewStyle().Bold(true),
		Italic:     lipgloss.NewStyle().Italic(true),
		InlineCode: lipgloss.NewStyle().Foreground(lipgloss.Color("150")),

		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
	}
}

func (s Style) block(typ string) lipgloss.Style {
	switch typ {
	case document.TypeHeading:
		return s.Heading
	case document.TypeQuote:
		return s.Quote
	case document.TypeCode:
		return s.Code
	default:
		return s.Paragraph
	}
}

// leaf layers the marks of t over the block style.
func (s Style) leaf(base lipgloss.Style, t *document.Text) lipgloss.Style {
	out := base
	if t.Code {
		out = s.InlineCode.Inherit(out)
	}
	if t.Italic {
		out = s.Italic.Inherit(out)
	}
	if t.Bold {
		out = s.Bold.Inherit(out)
	}
	return out
}

// blockPrefix is the plain marker drawn before a block's text.
func blockPrefix(typ string) string {
	switch typ {
	case document.TypeHeading:
		return "# "
	case document.TypeQuote:
		return "│ "
	case document.TypeCode:
		return "  "
	default:
		return ""
	}
}
