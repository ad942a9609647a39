package engine

// OnSelectionChanged is the editor reporting a new selection and composing
// region (candidateStart and candidateEnd are -1 without one). Reports caused
// by the session's own edits are ignored; anything else means the user moved
// the cursor, and the composing word is kept, re-positioned, dropped or
// rebuilt accordingly.
func (s *Session) OnSelectionChanged(oldStart, oldEnd, newStart, newEnd, candidateStart, candidateEnd int) {
	prevCandStart, prevCandEnd := s.candidateStart, s.candidateEnd
	if oldStart == newStart && oldEnd == newEnd &&
		prevCandStart == candidateStart && prevCandEnd == candidateEnd {
		return
	}
	s.candidateStart, s.candidateEnd = candidateStart, candidateEnd

	expected := s.expect.IsExpecting()
	s.expect.Clear()
	if expected {
		return
	}

	cursorMoved := oldStart != newStart || oldEnd != newEnd
	if cursorMoved {
		s.spaces.Clear()
		if s.autoCorrect.RevertLength > 0 {
			s.autoCorrect.RevertLength = 0
		}
	}

	if !s.isPredictionOn() || !s.conn.has() {
		return
	}

	if newStart != newEnd {
		s.log.Debug("selection is a range, aborting prediction", "start", newStart, "end", newEnd)
		s.abortCorrectionAndResetPredictionState(false)
		return
	}
	if !cursorMoved {
		return
	}

	if !s.isCurrentlyPredicting() {
		s.postRestartWordSuggestion()
		return
	}

	pos := newEnd - candidateStart
	if candidateStart >= 0 && newStart >= candidateStart && newStart <= candidateEnd &&
		pos >= 0 && pos <= s.word.Len() {
		s.word.SetCursor(pos)
		return
	}
	s.log.Debug("cursor left the composing word", "word", s.word.String(), "cursor", newStart)
	s.abortCorrectionAndResetPredictionState(false)
	s.postRestartWordSuggestion()
}
