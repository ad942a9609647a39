package engine

// postUpdateSuggestions schedules a refresh, replacing a pending one so a
// burst of keys costs a single lookup.
func (s *Session) postUpdateSuggestions() {
	s.sched.Post(TaskUpdateSuggestions, s.settings.SuggestionsDelay, s.performUpdateSuggestions)
}

// performUpdateSuggestions queries the provider for the current word and
// picks the auto-correct candidate.
func (s *Session) performUpdateSuggestions() {
	s.sched.Cancel(TaskUpdateSuggestions)

	if !s.isPredictionOn() || !s.prediction.ShowSuggestions {
		s.clearSuggestions()
		return
	}
	if s.word.IsEmpty() {
		s.word.ClearPreferred()
		s.clearSuggestions()
		return
	}

	suggestions, lastValid := s.provider.Suggestions(s.word)
	highlight := -1
	if s.prediction.IsAutoCorrect() {
		highlight = lastValid
	}
	// keep acronyms and names as typed
	if highlight == 1 && s.word.IsMostlyCaps() {
		highlight = -1
	}
	if highlight >= len(suggestions) {
		s.log.Warnf("highlight %d outside %d suggestions", highlight, len(suggestions))
		highlight = -1
	}

	s.setSuggestions(suggestions, highlight)
	if highlight >= 0 {
		s.word.SetPreferred(suggestions[highlight])
	} else {
		s.word.ClearPreferred()
	}
}

func (s *Session) setSuggestions(suggestions []string, highlight int) {
	s.suggestions = append(s.suggestions[:0], suggestions...)
	s.highlight = highlight
	s.strip.SetSuggestions(suggestions, highlight)
}

func (s *Session) clearSuggestions() {
	s.setSuggestions(nil, -1)
}
