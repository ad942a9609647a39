package engine

import (
	"strings"

	"github.com/bastiangx/typr/pkg/userdict"
)

// Completion is a candidate supplied by the editor rather than the provider.
type Completion struct {
	Index int
	Text  string
}

type completionState struct {
	on    bool
	items []Completion
}

func (c *completionState) reset() {
	c.on = false
	c.items = nil
}

// PickSuggestion picks using the auto-space preference of the current field.
func (s *Session) PickSuggestion(index int, suggestion string) {
	s.OnManualPick(index, suggestion, s.prediction.AutoSpace)
}

// OnManualPick commits a suggestion the user tapped in the strip.
func (s *Session) OnManualPick(index int, suggestion string, autoSpace bool) {
	s.autoCorrect.RevertLength = 0
	s.autoCorrect.JustAutoAddedWord = false

	s.conn.beginBatchEdit()
	defer s.conn.endBatchEdit()

	typed := s.prepareWordForNextWord()
	if s.tryCommitCompletion(index) {
		return
	}

	s.commitWordToInput(suggestion, typed.TypedWord())

	tagsSearch := typed.IsAtTagsSearchState()
	if autoSpace && (index == 0 || !tagsSearch) {
		s.markExpectingSelectionUpdate()
		s.conn.sendKeyChar(KeySpace)
		s.spaces.MarkSpace()
	}
	if tagsSearch {
		return
	}

	if index == 0 {
		s.checkAddToDictionary(typed.TypedWord(), userdict.Picked)
	}

	showHint := !s.autoCorrect.JustAutoAddedWord &&
		index == 0 &&
		s.prediction.ShowSuggestions &&
		!s.provider.IsValidWord(suggestion) &&
		!s.provider.IsValidWord(strings.ToLower(suggestion))
	if showHint {
		s.strip.ShowAddToDictionaryHint(suggestion)
	} else {
		s.setSuggestions(s.provider.NextSuggestions(suggestion, typed.IsAllUpperCase()), -1)
	}
}

// tryCommitCompletion commits an editor-supplied completion when completion
// mode is on and index refers to one.
func (s *Session) tryCommitCompletion(index int) bool {
	if !s.completions.on || index < 0 || index >= len(s.completions.items) {
		return false
	}
	c := s.completions.items[index]
	s.markExpectingSelectionUpdate()
	s.conn.commitCompletion(c.Index, c.Text)
	s.clearSuggestions()
	return true
}

// OnDisplayCompletions receives the editor's own candidates. They replace
// the provider's suggestions while completion mode is on.
func (s *Session) OnDisplayCompletions(completions []Completion, fullscreen bool) {
	if !s.completions.on && !(fullscreen && completions != nil) {
		return
	}
	s.completions.on = true
	s.completions.items = append([]Completion(nil), completions...)
	if len(completions) == 0 {
		s.clearSuggestions()
		return
	}
	texts := make([]string, len(completions))
	for i, c := range completions {
		texts[i] = c.Text
	}
	s.setSuggestions(texts, -1)
}

// checkAddToDictionary counts word toward learning it.
func (s *Session) checkAddToDictionary(word string, kind userdict.AdditionType) bool {
	s.autoCorrect.JustAutoAddedWord = false
	if word == "" || !s.isPredictionOn() {
		return false
	}
	if s.provider.TryLearnNewWord(word, kind) {
		s.autoCorrect.JustAutoAddedWord = true
		s.log.Debug("learned word", "word", word, "kind", kind)
		return true
	}
	return false
}

// AddWordToDictionary adds word on the user's request, typically after the
// add-to-dictionary hint.
func (s *Session) AddWordToDictionary(word string) bool {
	s.strip.DismissAddToDictionaryHint()
	if !s.provider.AddWordToUserDictionary(word) {
		return false
	}
	s.setSuggestions(s.provider.NextSuggestions(word, false), -1)
	return true
}

// RemoveFromUserDictionary forgets a learned word.
func (s *Session) RemoveFromUserDictionary(word string) {
	s.provider.RemoveWordFromUserDictionary(word)
}
