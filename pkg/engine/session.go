// Package engine is the typing session: it turns key events into composed,
// corrected and committed text while keeping a suggestion strip up to date.
//
// All Session methods must be called from one goroutine. Editor mutations are
// applied synchronously, but the editor reports the resulting selection
// changes later through OnSelectionChanged; the session marks an expectation
// window before each of its own edits so those echoes are not mistaken for
// the user moving the cursor.
package engine

import (
	"strings"
	"unicode"

	"github.com/bastiangx/typr/internal/logger"
	"github.com/bastiangx/typr/pkg/compose"
	"github.com/charmbracelet/log"
)

// Options configure a Session. Zero values get working defaults.
type Options struct {
	Settings Settings
	Clock    Clock
	// Dispatch hands fired timers to the goroutine that owns the session.
	// Nil runs them on the timer goroutine, which suits a mock clock.
	Dispatch func(func())
	Strip    SuggestionStrip
	View     KeyboardView
	Logger   *log.Logger
}

// Session is the state machine for one keyboard attached to at most one
// editor field at a time.
type Session struct {
	log      *log.Logger
	conn     connection
	provider SuggestionSource
	strip    SuggestionStrip
	view     KeyboardView
	clock    Clock
	sched    *Scheduler
	settings Settings

	word     *compose.Word
	prevWord *compose.Word

	prediction  PredictionState
	autoCorrect AutoCorrectState
	expect      *SelectionExpectation
	spaces      *SpaceTimeTracker
	separators  *SentenceSeparators
	completions completionState

	// last composing bounds reported by the editor
	candidateStart int
	candidateEnd   int

	lastKey          rune
	leftToRight      bool
	frenchPunct      bool
	innerWordLetters string
	locale           string

	suggestions []string
	highlight   int

	scratch strings.Builder
}

// NewSession returns a session with no editor attached.
func NewSession(provider SuggestionSource, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Strip == nil {
		opts.Strip = nopStrip{}
	}
	if opts.View == nil {
		opts.View = shownView{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.New("engine")
	}
	if opts.Settings == (Settings{}) {
		opts.Settings = DefaultSettings()
	}

	s := &Session{
		log:            opts.Logger,
		provider:       provider,
		strip:          opts.Strip,
		view:           opts.View,
		clock:          opts.Clock,
		sched:          NewScheduler(opts.Clock, opts.Dispatch),
		word:           compose.New(),
		prevWord:       compose.New(),
		spaces:         &SpaceTimeTracker{clock: opts.Clock},
		separators:     newSentenceSeparators(opts.Settings.SentenceSeparators),
		candidateStart: -1,
		candidateEnd:   -1,
		leftToRight:    true,
		highlight:      -1,
	}
	s.innerWordLetters = "'"
	s.expect = newSelectionExpectation(opts.Clock, opts.Settings.SelectionExpectTimeout)
	s.ApplySettings(opts.Settings)
	return s
}

// Attach connects the session to an editor. A nil editor detaches.
func (s *Session) Attach(ed Editor) {
	s.conn.ed = ed
}

// Detach drops the editor; subsequent editor calls become no-ops.
func (s *Session) Detach() {
	s.conn.ed = nil
}

// ApplySettings updates user preferences. Hiding suggestions turns
// prediction off for the current field.
func (s *Session) ApplySettings(st Settings) {
	s.settings = st
	s.prediction.ShowSuggestions = st.ShowSuggestions
	s.prediction.AutoComplete = st.AutoComplete
	s.prediction.AutoSpace = st.AutoSpace
	s.prediction.AllowRestart = st.AllowRestart
	if !st.ShowSuggestions {
		s.prediction.PredictionOn = false
	}
	if st.SelectionExpectTimeout > 0 {
		s.expect.timeout = st.SelectionExpectTimeout
	}
	s.separators.Reset(st.SentenceSeparators)
	s.frenchPunct = st.SwapPunctuationAndSpace && isFrenchLocale(s.locale)
}

// OnKeyboardChanged applies a new layout.
func (s *Session) OnKeyboardChanged(k Keyboard) {
	s.locale = k.Locale
	s.leftToRight = k.LeftToRight
	if k.InnerWordLetters != "" {
		s.innerWordLetters = k.InnerWordLetters
	}
	separators := k.SentenceSeparators
	if separators == "" {
		separators = s.settings.SentenceSeparators
	}
	s.separators.Reset(separators)
	s.frenchPunct = s.settings.SwapPunctuationAndSpace && isFrenchLocale(k.Locale)
	s.log.Debug("keyboard changed", "locale", k.Locale, "ltr", k.LeftToRight, "french", s.frenchPunct)
}

// OnFieldStarted resets the session for a newly focused editor field.
func (s *Session) OnFieldStarted(f Field) {
	s.abortCorrectionAndResetPredictionState(false)
	s.completions.reset()

	fp := configureField(f, s.settings.AutoSpace)
	s.prediction.PredictionOn = fp.predictionOn && s.prediction.ShowSuggestions
	s.prediction.SupportsAutoPick = fp.supportsAutoPick
	s.prediction.AutoSpace = fp.autoSpace
	s.candidateStart, s.candidateEnd = -1, -1
	s.clearSuggestions()
	s.log.Debug("field started", "type", f.Type, "prediction", s.prediction.PredictionOn,
		"autoPick", s.prediction.SupportsAutoPick, "autoSpace", s.prediction.AutoSpace)
}

// OnFieldFinished tears the field down; prediction stays off until the next
// field starts.
func (s *Session) OnFieldFinished() {
	s.abortCorrectionAndResetPredictionState(true)
	s.completions.reset()
	s.expect.Clear()
}

// OnAbort drops the current word without committing it.
func (s *Session) OnAbort(disableUntilNextField bool) {
	s.abortCorrectionAndResetPredictionState(disableUntilNextField)
}

// Close cancels pending timers.
func (s *Session) Close() {
	s.sched.Cancel(TaskUpdateSuggestions, TaskRestartWord)
}

func (s *Session) isPredictionOn() bool { return s.prediction.IsPredictionOn() }

func (s *Session) isCurrentlyPredicting() bool {
	return s.isPredictionOn() && !s.word.IsEmpty()
}

func (s *Session) markExpectingSelectionUpdate() { s.expect.Mark() }

func (s *Session) isAlphabet(code rune) bool {
	return unicode.IsLetter(code) || strings.ContainsRune(s.innerWordLetters, code)
}

func (s *Session) isWordSeparator(code rune) bool { return !s.isAlphabet(code) }

// prepareWordForNextWord swaps the live word into the previous-word slot and
// returns it; the live slot is reset for the next word.
func (s *Session) prepareWordForNextWord() *compose.Word {
	typed := s.word
	s.word = s.prevWord
	s.prevWord = typed
	s.word.Reset()
	return typed
}

func (s *Session) abortCorrectionAndResetPredictionState(disable bool) {
	s.provider.ResetNextWordSentence()
	s.spaces.Clear()
	s.autoCorrect.JustAutoAddedWord = false
	s.sched.Cancel(TaskUpdateSuggestions, TaskRestartWord)

	s.markExpectingSelectionUpdate()
	s.conn.finishComposingText()

	s.clearSuggestions()
	s.word.Reset()
	s.autoCorrect.RevertLength = 0
	if disable {
		s.prediction.PredictionOn = false
	}
}

// keyPressed is the bookkeeping shared by every key.
func (s *Session) keyPressed(code rune) {
	s.lastKey = code
	if code != KeyDelete {
		s.autoCorrect.RevertLength = 0
	}
	s.strip.DismissAddToDictionaryHint()
}

// OnRelease finishes a key press.
func (s *Session) OnRelease(code rune) {
	switch code {
	case KeyPaste:
		s.autoCorrect.RevertLength = 0
	case KeyDelete, KeyForwardDelete:
		if !s.isCurrentlyPredicting() {
			s.postRestartWordSuggestion()
		}
	}
	if code == s.lastKey && code != KeyDelete && code != KeyForwardDelete {
		if code == KeySpace {
			s.spaces.MarkSpace()
		} else {
			s.spaces.Clear()
		}
	}
}
