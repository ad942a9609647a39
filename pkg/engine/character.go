package engine

import (
	"unicode"
)

// OnCharacter handles a key that types a character into the current word.
// multiTapIndex is above zero when the key replaces the character typed by
// the previous tap; nearby lists the keys around the pressed one.
func (s *Session) OnCharacter(code rune, multiTapIndex int, nearby []rune) {
	s.keyPressed(code)
	if multiTapIndex > 0 {
		s.handleDeleteLastCharacter(true)
	}
	s.handleCharacter(code, multiTapIndex, nearby)
}

func (s *Session) handleCharacter(code rune, multiTapIndex int, nearby []rune) {
	if s.word.IsEmpty() && s.isAlphabet(code) {
		s.autoCorrect.RevertLength = 0
		s.word.Reset()
		s.prediction.autoCorrectOn = s.isPredictionOn() &&
			s.prediction.AutoComplete && s.prediction.SupportsAutoPick
		s.word.SetFirstCharCapitalized(s.view.IsShifted() || unicode.IsUpper(code))
	}

	s.word.Add(code, nearby)

	if s.isPredictionOn() {
		// the editor cursor only needs moving when typing inside the word
		newCursor := -1
		if !s.word.CursorAtEnd() {
			newCursor = s.conn.cursor()
			if multiTapIndex == 0 {
				newCursor++
			}
		}
		batched := newCursor >= 0 && s.conn.beginBatchEdit()

		s.markExpectingSelectionUpdate()
		s.conn.setComposingText(s.word.TypedWord())
		if newCursor >= 0 {
			s.conn.setSelection(newCursor, newCursor)
		}
		if batched {
			s.conn.endBatchEdit()
		}

		if unicode.IsLetter(code) {
			s.postUpdateSuggestions()
		} else {
			s.strip.ReplaceTypedWord(s.word.TypedWord())
		}
	} else {
		s.conn.beginBatchEdit()
		s.markExpectingSelectionUpdate()
		s.conn.sendKeyChar(code)
		s.conn.endBatchEdit()
	}
	s.autoCorrect.JustAutoAddedWord = false
}
