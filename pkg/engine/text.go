package engine

import (
	"unicode/utf8"
)

// OnText commits a whole string at once, such as an emoji or a domain key.
// The composing word is committed as typed and a following delete removes
// both again.
func (s *Session) OnText(text string) {
	s.keyPressed(0)
	if !s.conn.has() {
		return
	}
	s.conn.beginBatchEdit()

	// keep the word for the revert, abort resets the live one
	s.word.CloneInto(s.prevWord)
	s.abortCorrectionAndResetPredictionState(false)
	s.conn.commitText(text)

	s.autoCorrect.RevertLength = s.prevWord.Len() + utf8.RuneCountInString(text)
	s.markExpectingSelectionUpdate()
	s.conn.endBatchEdit()
}
