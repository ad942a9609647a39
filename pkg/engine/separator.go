package engine

import (
	"unicode/utf8"

	"github.com/bastiangx/typr/pkg/userdict"
)

// OnSeparator handles space, punctuation and enter: the current word is
// committed and the separator itself is written.
func (s *Session) OnSeparator(code rune) {
	s.keyPressed(code)
	s.handleSeparator(code)
}

func (s *Session) handleSeparator(code rune) {
	// refresh first so the preferred word matches what is about to be committed
	s.performUpdateSuggestions()

	if !s.leftToRight {
		code = mirrorParenthesis(code)
	}

	wasPredicting := s.isCurrentlyPredicting()
	newLine := code == KeyEnter
	isSpace := code == KeySpace
	endOfSentence := newLine || s.separators.Contains(code)

	s.conn.beginBatchEdit()

	typed := s.prepareWordForNextWord()
	typedText := typed.TypedWord()
	separatorInsideWord := typed.Cursor() < typed.Len()

	wordToOutput := typedText
	if s.prediction.IsAutoCorrect() && !newLine {
		if preferred, ok := typed.Preferred(); ok && preferred != "" && preferred != typedText {
			wordToOutput = preferred
		}
	}

	if wasPredicting && !separatorInsideWord {
		s.commitWordToInput(wordToOutput, typedText)
		if wordToOutput == typedText {
			s.checkAddToDictionary(wordToOutput, userdict.Typed)
		}
		s.autoCorrect.RevertLength = utf8.RuneCountInString(wordToOutput) + 1
	} else if separatorInsideWord {
		s.abortCorrectionAndResetPredictionState(false)
	}

	s.markExpectingSelectionUpdate()
	handled, sentenceEnded := s.applySeparatorOutput(code, isSpace, newLine)
	if sentenceEnded {
		endOfSentence = true
	}
	if !handled {
		s.conn.sendKeyChar(code)
	}
	s.conn.endBatchEdit()

	switch {
	case endOfSentence:
		s.provider.ResetNextWordSentence()
		s.clearSuggestions()
	case !s.isPredictionOn():
		// passwords and numbers never reach the provider
		s.clearSuggestions()
	default:
		s.setSuggestions(s.provider.NextSuggestions(wordToOutput, typed.IsAllUpperCase()), -1)
	}
}

// applySeparatorOutput writes the separator when a rule rewrites the text
// around it. It returns whether the separator was written and whether the
// rewrite ended a sentence.
func (s *Session) applySeparatorOutput(code rune, isSpace, newLine bool) (handled, endOfSentence bool) {
	if !s.conn.has() {
		return false, false
	}
	if isSpace {
		if s.settings.DoubleSpaceToPeriod && s.spaces.IsDoubleSpace(s.settings.MultiTapTimeout) {
			s.conn.deleteSurrounding(1, 0)
			s.conn.commitText(". ")
			return true, true
		}
		return false, false
	}
	if s.spaces.HadSpace() && (s.isSpaceSwapCharacter(code) || newLine) {
		s.conn.deleteSurrounding(1, 0)
		out := string(code)
		if !newLine {
			out += " "
		}
		s.conn.commitText(out)
		return true, false
	}
	return false, false
}

// isSpaceSwapCharacter reports punctuation that trades places with a
// preceding space. French typography keeps the space before ! ? : and ;.
func (s *Session) isSpaceSwapCharacter(code rune) bool {
	if code == ')' {
		return true
	}
	if !s.separators.Contains(code) {
		return false
	}
	if s.frenchPunct {
		switch code {
		case '!', '?', ':', ';':
			return false
		}
	}
	return true
}

func mirrorParenthesis(code rune) rune {
	switch code {
	case '(':
		return ')'
	case ')':
		return '('
	}
	return code
}

// commitWordToInput writes word over the composing region. A differing
// typedWord is committed as a correction unless earlier edits have not been
// echoed yet, in which case the cursor cannot be trusted.
func (s *Session) commitWordToInput(word, typedWord string) {
	if s.conn.has() {
		delayed := s.expect.IsDelayed()
		s.markExpectingSelectionUpdate()
		if word == typedWord || delayed {
			s.conn.commitText(word)
		} else {
			offset := s.conn.cursor() - utf8.RuneCountInString(typedWord)
			s.conn.commitCorrection(offset, typedWord, word)
		}
	}
	s.clearSuggestions()
}
