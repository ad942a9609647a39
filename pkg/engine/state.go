package engine

import (
	"time"
)

// PredictionState is the per-field prediction configuration.
type PredictionState struct {
	// PredictionOn is recomputed for every field and forced off when
	// suggestions are hidden.
	PredictionOn     bool
	ShowSuggestions  bool
	AutoComplete     bool
	AutoSpace        bool
	AllowRestart     bool
	SupportsAutoPick bool

	// autoCorrectOn is captured when a word starts.
	autoCorrectOn bool
}

// IsPredictionOn reports whether the session composes words for this field.
func (p *PredictionState) IsPredictionOn() bool {
	return p.PredictionOn && p.ShowSuggestions
}

// IsAutoCorrect reports whether a separator may substitute the preferred word.
func (p *PredictionState) IsAutoCorrect() bool {
	return p.autoCorrectOn && p.SupportsAutoPick && p.PredictionOn
}

// AutoCorrectState remembers how to undo the last commit.
type AutoCorrectState struct {
	RevertLength      int
	JustAutoAddedWord bool
}

// SelectionExpectation marks a deadline before which selection updates are
// echoes of the session's own edits.
type SelectionExpectation struct {
	clock   Clock
	timeout time.Duration
	// zero means never
	deadline time.Time
}

func newSelectionExpectation(clock Clock, timeout time.Duration) *SelectionExpectation {
	return &SelectionExpectation{clock: clock, timeout: timeout}
}

// Mark opens or extends the window.
func (e *SelectionExpectation) Mark() {
	e.deadline = e.clock.Now().Add(e.timeout)
}

// Clear resets the window to never.
func (e *SelectionExpectation) Clear() {
	e.deadline = time.Time{}
}

// IsExpecting reports an open window that has not yet expired.
func (e *SelectionExpectation) IsExpecting() bool {
	return !e.deadline.IsZero() && e.clock.Now().Before(e.deadline)
}

// IsDelayed reports an edit whose echo has not been seen yet, expired or not.
func (e *SelectionExpectation) IsDelayed() bool {
	return !e.deadline.IsZero()
}

// SpaceTimeTracker remembers when a space was last output.
type SpaceTimeTracker struct {
	clock Clock
	last  time.Time
}

func (t *SpaceTimeTracker) MarkSpace() { t.last = t.clock.Now() }

func (t *SpaceTimeTracker) Clear() { t.last = time.Time{} }

func (t *SpaceTimeTracker) HadSpace() bool { return !t.last.IsZero() }

// IsDoubleSpace reports a previous space within timeout.
func (t *SpaceTimeTracker) IsDoubleSpace(timeout time.Duration) bool {
	return t.HadSpace() && t.clock.Now().Sub(t.last) < timeout
}

// SentenceSeparators is the keyboard's set of sentence ending code points.
// Enter is always a member.
type SentenceSeparators struct {
	set map[rune]struct{}
}

func newSentenceSeparators(codes string) *SentenceSeparators {
	s := &SentenceSeparators{}
	s.Reset(codes)
	return s
}

// Reset replaces the set.
func (s *SentenceSeparators) Reset(codes string) {
	s.set = make(map[rune]struct{}, len(codes)+1)
	for _, r := range codes {
		s.set[r] = struct{}{}
	}
	s.set[KeyEnter] = struct{}{}
}

func (s *SentenceSeparators) Contains(code rune) bool {
	_, ok := s.set[code]
	return ok
}
