package engine

import (
	"github.com/bastiangx/typr/pkg/compose"
	"github.com/bastiangx/typr/pkg/userdict"
)

// Key codes the session treats specially.
const (
	KeySpace         rune = ' '
	KeyEnter         rune = '\n'
	KeyDelete        rune = -5
	KeyForwardDelete rune = -7
	KeyPaste         rune = -102
)

// Editor is the host text field. Offsets and lengths count code points.
// Mutations take effect immediately; the matching selection notifications are
// delivered later through Session.OnSelectionChanged.
type Editor interface {
	// CommitText replaces the composing region, or the selection when there
	// is none, with text and puts the cursor after it.
	CommitText(text string)
	// CommitCorrection commits newText over oldText, which starts at offset.
	CommitCorrection(offset int, oldText, newText string)
	CommitCompletion(index int, text string)
	DeleteSurrounding(before, after int)
	SetComposingText(text string)
	SetComposingRegion(start, end int)
	FinishComposingText()
	SetSelection(start, end int)
	BeginBatchEdit() bool
	EndBatchEdit()
	TextBeforeCursor(n int) string
	TextAfterCursor(n int) string
	SelectedText() string
	Selection() (start, end int)
	CursorCapsMode() bool
	// SendKeyChar inserts a raw character as a key event would.
	SendKeyChar(code rune)
	SendDelete()
	SendForwardDelete()
}

// SuggestionSource ranks words and learns from what the user commits.
type SuggestionSource interface {
	// Suggestions returns candidates for word, the typed word first, and the
	// index of the candidate worth auto-picking or -1.
	Suggestions(word *compose.Word) (suggestions []string, lastValid int)
	NextSuggestions(committed string, allUpperCase bool) []string
	IsValidWord(word string) bool
	// TryLearnNewWord counts word and returns true once it was added to the
	// user dictionary.
	TryLearnNewWord(word string, kind userdict.AdditionType) bool
	AddWordToUserDictionary(word string) bool
	RemoveWordFromUserDictionary(word string)
	ResetNextWordSentence()
}

// SuggestionStrip displays suggestions above the keyboard.
type SuggestionStrip interface {
	SetSuggestions(suggestions []string, highlight int)
	// ReplaceTypedWord updates the typed word shown in the strip without a
	// new lookup.
	ReplaceTypedWord(word string)
	ShowAddToDictionaryHint(word string)
	DismissAddToDictionaryHint()
}

// KeyboardView is the visible keyboard.
type KeyboardView interface {
	IsShown() bool
	IsShifted() bool
}

type nopStrip struct{}

func (nopStrip) SetSuggestions([]string, int)   {}
func (nopStrip) ReplaceTypedWord(string)        {}
func (nopStrip) ShowAddToDictionaryHint(string) {}
func (nopStrip) DismissAddToDictionaryHint()    {}

type shownView struct{}

func (shownView) IsShown() bool   { return true }
func (shownView) IsShifted() bool { return false }
