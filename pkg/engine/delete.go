package engine

// OnDelete handles backspace. Right after a commit it reverts the commit;
// otherwise it deletes inside the composing word or in the editor.
func (s *Session) OnDelete() {
	s.keyPressed(KeyDelete)
	if s.autoCorrect.RevertLength > 0 {
		s.revertLastWord()
		return
	}
	s.handleDeleteLastCharacter(false)
}

// handleDeleteLastCharacter removes the character before the cursor. With
// forMultiTap the editor is left alone when the word had nothing to remove.
func (s *Session) handleDeleteLastCharacter(forMultiTap bool) {
	wordManipulation := s.isCurrentlyPredicting() && s.word.Cursor() > 0

	if s.expect.IsDelayed() || !s.conn.has() {
		// the editor has not caught up; stay in step with it blindly
		s.markExpectingSelectionUpdate()
		if wordManipulation {
			s.word.DeleteBeforeCursor()
		}
		if !forMultiTap || wordManipulation {
			s.conn.sendDelete()
		}
		if wordManipulation {
			s.postUpdateSuggestions()
		}
		return
	}

	s.markExpectingSelectionUpdate()
	if !wordManipulation {
		if !forMultiTap {
			s.conn.sendDelete()
		}
		return
	}

	s.word.DeleteBeforeCursor()
	s.rewriteComposingWord(-1)
	s.postUpdateSuggestions()
}

// OnForwardDelete deletes the character after the cursor.
func (s *Session) OnForwardDelete() {
	s.keyPressed(KeyForwardDelete)
	wordManipulation := s.isCurrentlyPredicting() && !s.word.CursorAtEnd()

	s.markExpectingSelectionUpdate()
	if !wordManipulation {
		s.conn.sendForwardDelete()
		return
	}
	s.word.DeleteAfterCursor()
	s.rewriteComposingWord(0)
	s.postUpdateSuggestions()
}

// rewriteComposingWord replaces the composing text with the word and, when
// the word cursor is not at the end, moves the editor cursor by shift.
func (s *Session) rewriteComposingWord(shift int) {
	if s.word.CursorAtEnd() {
		s.conn.setComposingText(s.word.TypedWord())
		return
	}
	cursor := s.conn.cursor() + shift
	batched := s.conn.beginBatchEdit()
	s.conn.setComposingText(s.word.TypedWord())
	s.conn.setSelection(cursor, cursor)
	if batched {
		s.conn.endBatchEdit()
	}
}
