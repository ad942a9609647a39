package engine

// Snapshot is a read-only view of the session, for rendering and tests.
type Snapshot struct {
	Word          string
	WordCursor    int
	Preferred     string
	Suggestions   []string
	Highlight     int
	RevertLength  int
	PredictionOn  bool
	Predicting    bool
	AutoCapsNext  bool
	JustAutoAdded bool
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	preferred, _ := s.word.Preferred()
	return Snapshot{
		Word:          s.word.TypedWord(),
		WordCursor:    s.word.Cursor(),
		Preferred:     preferred,
		Suggestions:   append([]string(nil), s.suggestions...),
		Highlight:     s.highlight,
		RevertLength:  s.autoCorrect.RevertLength,
		PredictionOn:  s.isPredictionOn(),
		Predicting:    s.isCurrentlyPredicting(),
		AutoCapsNext:  s.conn.has() && s.conn.ed.CursorCapsMode(),
		JustAutoAdded: s.autoCorrect.JustAutoAddedWord,
	}
}

// Prediction returns the current prediction flags.
func (s *Session) Prediction() PredictionState { return s.prediction }

// IsExpectingSelectionUpdate reports an open expectation window.
func (s *Session) IsExpectingSelectionUpdate() bool { return s.expect.IsExpecting() }

// Suggestions returns the suggestions last published to the strip.
func (s *Session) Suggestions() []string { return append([]string(nil), s.suggestions...) }
