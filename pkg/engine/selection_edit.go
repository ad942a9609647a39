package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// WrapSelection surrounds the selected text with prefix and suffix and keeps
// the original text selected. It returns false when nothing is selected.
func (s *Session) WrapSelection(prefix, suffix rune) bool {
	start, end := s.conn.selection()
	selected := s.conn.selectedText()
	if start == end || selected == "" {
		return false
	}
	s.conn.beginBatchEdit()
	s.markExpectingSelectionUpdate()
	s.conn.commitText(string(prefix) + selected + string(suffix))
	s.conn.setSelection(start+1, end+1)
	s.conn.endBatchEdit()
	return true
}

// ToggleSelectionCase cycles the selection through lower case, capitalized
// and upper case. Mixed case text becomes lower case.
func (s *Session) ToggleSelectionCase() bool {
	start, end := s.conn.selection()
	selected := s.conn.selectedText()
	if start == end || selected == "" {
		return false
	}

	s.scratch.Reset()
	switch {
	case selected == strings.ToLower(selected):
		r, size := utf8.DecodeRuneInString(selected)
		s.scratch.WriteRune(unicode.ToUpper(r))
		s.scratch.WriteString(selected[size:])
	case selected == strings.ToUpper(selected):
		s.scratch.WriteString(strings.ToLower(selected))
	case isCapitalized(selected):
		s.scratch.WriteString(strings.ToUpper(selected))
	default:
		s.scratch.WriteString(strings.ToLower(selected))
	}

	s.conn.beginBatchEdit()
	s.markExpectingSelectionUpdate()
	s.conn.commitText(s.scratch.String())
	s.conn.setSelection(start, end)
	s.conn.endBatchEdit()
	return true
}

func isCapitalized(text string) bool {
	r, size := utf8.DecodeRuneInString(text)
	rest := text[size:]
	return unicode.IsUpper(r) && rest == strings.ToLower(rest)
}
