package cli

import (
	"fmt"
	"strings"

	"github.com/bastiangx/typr/pkg/editor"
	"github.com/charmbracelet/lipgloss"
)

var (
	wordStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	highlightStyle = wordStyle.Bold(true).Underline(true)
	indexStyle     = lipgloss.NewStyle().Faint(true)
	editorStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	hintStyle      = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#907aa9", Dark: "#c4a7e7"})
)

// stripView is the suggestion strip of the console.
type stripView struct {
	suggestions []string
	highlight   int
	hint        string
}

func (v *stripView) SetSuggestions(suggestions []string, highlight int) {
	v.suggestions = append(v.suggestions[:0], suggestions...)
	v.highlight = highlight
}

func (v *stripView) ReplaceTypedWord(word string) {
	if len(v.suggestions) > 0 {
		v.suggestions[0] = word
	}
}

func (v *stripView) ShowAddToDictionaryHint(word string) { v.hint = word }
func (v *stripView) DismissAddToDictionaryHint()         { v.hint = "" }

// renderEditor shows the field text with [ ] around the composing word and |
// at the cursor.
func renderEditor(ed *editor.Buffer) string {
	return editorStyle.Render("> " + ed.String())
}

// renderStrip lists up to limit suggestions with their pick index.
func renderStrip(v *stripView, limit int) string {
	if len(v.suggestions) == 0 {
		return indexStyle.Render("(no suggestions)")
	}
	var b strings.Builder
	for i, s := range v.suggestions {
		if limit > 0 && i >= limit {
			break
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(indexStyle.Render(fmt.Sprintf("#%d", i)))
		b.WriteString(" ")
		if i == v.highlight {
			b.WriteString(highlightStyle.Render(s))
		} else {
			b.WriteString(wordStyle.Render(s))
		}
	}
	return b.String()
}

func renderHint(word string) string {
	return hintStyle.Render(fmt.Sprintf("add %q to the dictionary? (#+)", word))
}
