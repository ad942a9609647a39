package engine

import (
	"unicode"
	"unicode/utf8"
)

// postRestartWordSuggestion schedules a restart, dropping any pending
// suggestion refresh.
func (s *Session) postRestartWordSuggestion() {
	s.sched.Cancel(TaskUpdateSuggestions, TaskRestartWord)
	s.sched.Post(TaskRestartWord, s.settings.RestartDelay, s.RestartWordSuggestion)
}

// canRestartWordSuggestion reports whether the cursor touches a word that
// could be composed again.
func (s *Session) canRestartWordSuggestion() bool {
	if !s.isPredictionOn() || !s.prediction.AllowRestart || !s.view.IsShown() || !s.conn.has() {
		return false
	}
	return s.touchesWord(s.conn.textBeforeCursor(1)) || s.touchesWord(s.conn.textAfterCursor(1))
}

func (s *Session) touchesWord(text string) bool {
	r, size := utf8.DecodeRuneInString(text)
	return size > 0 && !s.isWordSeparator(r)
}

// RestartWordSuggestion turns the word around the cursor back into the
// composing word. It does nothing when the cursor is not inside a word.
func (s *Session) RestartWordSuggestion() {
	s.sched.Cancel(TaskRestartWord, TaskUpdateSuggestions)
	if !s.canRestartWordSuggestion() {
		return
	}

	s.conn.beginBatchEdit()
	defer s.conn.endBatchEdit()

	s.abortCorrectionAndResetPredictionState(false)

	left := s.scanWord(true)
	right := s.scanWord(false)
	if len(left)+len(right) == 0 {
		return
	}

	s.word.Reset()
	first := true
	for _, part := range [][]rune{left, right} {
		for _, r := range part {
			if first {
				s.word.SetFirstCharCapitalized(unicode.IsUpper(r))
				first = false
			}
			s.word.Add(r, nil)
		}
	}
	s.word.SetCursor(len(left))

	cursor := s.conn.cursor()
	s.markExpectingSelectionUpdate()
	s.conn.setComposingRegion(cursor-len(left), cursor+len(right))
	s.log.Debug("restarted word", "word", s.word.String())

	s.performUpdateSuggestions()
}

// scanWord collects word characters on one side of the cursor, probing one
// character further each round until a separator, the end of the text or no
// progress.
func (s *Session) scanWord(before bool) []rune {
	var found []rune
	for {
		n := len(found) + 1
		var text string
		if before {
			text = s.conn.textBeforeCursor(n)
		} else {
			text = s.conn.textAfterCursor(n)
		}
		runes := []rune(text)
		if len(runes) <= len(found) {
			return found
		}
		var edge rune
		if before {
			edge = runes[0]
		} else {
			edge = runes[len(runes)-1]
		}
		if s.isWordSeparator(edge) {
			return found
		}
		found = runes
	}
}
