package engine

// revertLastWord undoes the last commit: the committed text and the separator
// after it are removed and the typed word becomes the composing word again.
func (s *Session) revertLastWord() {
	length := s.autoCorrect.RevertLength
	if length == 0 {
		s.conn.sendDelete()
		return
	}

	s.prediction.autoCorrectOn = false
	s.markExpectingSelectionUpdate()

	s.conn.beginBatchEdit()
	s.conn.deleteSurrounding(length, 0)

	// the previous slot still holds the word as typed
	s.word, s.prevWord = s.prevWord, s.word
	s.autoCorrect.RevertLength = 0
	typed := s.word.TypedWord()
	s.conn.setComposingText(typed)
	s.conn.endBatchEdit()

	if s.autoCorrect.JustAutoAddedWord {
		s.provider.RemoveWordFromUserDictionary(typed)
		s.autoCorrect.JustAutoAddedWord = false
	}
	s.performUpdateSuggestions()
	s.log.Debug("reverted", "word", typed, "length", length)
}
