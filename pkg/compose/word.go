// Package compose holds the word currently being typed: its code points, the
// cursor inside it, capitalization hints and the auto-correct replacement the
// suggestion provider picked for it.
package compose

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

// TagsSearchPrefix starts a word that searches emoji tags instead of the dictionary.
const TagsSearchPrefix = ':'

// Word is the in-progress word. The zero value is an empty word ready for use.
type Word struct {
	codes  []rune
	nearby [][]rune
	cursor int

	capsCount            int
	firstCharCapitalized bool

	preferred    string
	hasPreferred bool

	// cached typed text, rebuilt lazily
	typed      string
	typedDirty bool
}

// New returns an empty Word with room for a typical word.
func New() *Word {
	return &Word{
		codes:  make([]rune, 0, 32),
		nearby: make([][]rune, 0, 32),
	}
}

// Reset clears the code points, cursor, capitalization and preferred text.
func (w *Word) Reset() {
	w.codes = w.codes[:0]
	w.nearby = w.nearby[:0]
	w.cursor = 0
	w.capsCount = 0
	w.firstCharCapitalized = false
	w.preferred = ""
	w.hasPreferred = false
	w.typed = ""
	w.typedDirty = false
}

// Add inserts a code point at the cursor and moves the cursor past it.
// nearby lists the keys around the one pressed and may be nil.
func (w *Word) Add(code rune, nearby []rune) {
	var hints []rune
	if len(nearby) > 0 {
		hints = append([]rune(nil), nearby...)
	}
	w.codes = append(w.codes, 0)
	copy(w.codes[w.cursor+1:], w.codes[w.cursor:])
	w.codes[w.cursor] = code

	w.nearby = append(w.nearby, nil)
	copy(w.nearby[w.cursor+1:], w.nearby[w.cursor:])
	w.nearby[w.cursor] = hints

	w.cursor++
	if unicode.IsUpper(code) {
		w.capsCount++
	}
	w.typedDirty = true
}

// DeleteBeforeCursor removes the code point before the cursor.
// It returns the number of code points removed (0 or 1).
func (w *Word) DeleteBeforeCursor() int {
	if w.cursor == 0 {
		return 0
	}
	w.removeAt(w.cursor - 1)
	w.cursor--
	return 1
}

// DeleteAfterCursor removes the code point after the cursor.
// It returns the number of code points removed (0 or 1).
func (w *Word) DeleteAfterCursor() int {
	if w.cursor >= len(w.codes) {
		return 0
	}
	w.removeAt(w.cursor)
	return 1
}

func (w *Word) removeAt(i int) {
	if unicode.IsUpper(w.codes[i]) {
		w.capsCount--
	}
	w.codes = append(w.codes[:i], w.codes[i+1:]...)
	w.nearby = append(w.nearby[:i], w.nearby[i+1:]...)
	w.typedDirty = true
}

// SetCursor moves the cursor inside the word. Out of range positions are
// clamped and reported; it returns false when clamping was needed.
func (w *Word) SetCursor(pos int) bool {
	switch {
	case pos < 0:
		log.Warnf("compose: cursor %d below zero, clamping (len=%d)", pos, len(w.codes))
		w.cursor = 0
		return false
	case pos > len(w.codes):
		log.Warnf("compose: cursor %d past end, clamping (len=%d)", pos, len(w.codes))
		w.cursor = len(w.codes)
		return false
	}
	w.cursor = pos
	return true
}

// Cursor returns the cursor offset in code points.
func (w *Word) Cursor() int { return w.cursor }

// Len returns the number of code points.
func (w *Word) Len() int { return len(w.codes) }

func (w *Word) IsEmpty() bool { return len(w.codes) == 0 }

// CursorAtEnd reports whether the cursor sits after the last code point.
func (w *Word) CursorAtEnd() bool { return w.cursor == len(w.codes) }

// TypedWord returns the literal text typed so far.
func (w *Word) TypedWord() string {
	if w.typedDirty {
		w.typed = string(w.codes)
		w.typedDirty = false
	}
	return w.typed
}

// CodeAt returns the code point at index i.
func (w *Word) CodeAt(i int) rune { return w.codes[i] }

// NearbyAt returns the nearby-key hints recorded for index i.
func (w *Word) NearbyAt(i int) []rune { return w.nearby[i] }

func (w *Word) SetFirstCharCapitalized(capitalized bool) {
	w.firstCharCapitalized = capitalized
}

func (w *Word) IsFirstCharCapitalized() bool { return w.firstCharCapitalized }

// IsMostlyCaps reports more than one uppercase code point.
func (w *Word) IsMostlyCaps() bool { return w.capsCount > 1 }

// IsAllUpperCase reports that every code point is uppercase.
func (w *Word) IsAllUpperCase() bool {
	return w.capsCount > 0 && w.capsCount == len(w.codes)
}

// SetPreferred records the auto-correct replacement.
func (w *Word) SetPreferred(word string) {
	w.preferred = word
	w.hasPreferred = true
}

func (w *Word) ClearPreferred() {
	w.preferred = ""
	w.hasPreferred = false
}

// Preferred returns the auto-correct replacement, if one was chosen.
func (w *Word) Preferred() (string, bool) { return w.preferred, w.hasPreferred }

// IsAtTagsSearchState reports whether the word is an emoji tag search.
func (w *Word) IsAtTagsSearchState() bool {
	return len(w.codes) > 0 && w.codes[0] == TagsSearchPrefix
}

// CloneInto copies w into dst, reusing dst's storage.
func (w *Word) CloneInto(dst *Word) {
	dst.codes = append(dst.codes[:0], w.codes...)
	dst.nearby = dst.nearby[:0]
	for _, n := range w.nearby {
		dst.nearby = append(dst.nearby, n)
	}
	dst.cursor = w.cursor
	dst.capsCount = w.capsCount
	dst.firstCharCapitalized = w.firstCharCapitalized
	dst.preferred = w.preferred
	dst.hasPreferred = w.hasPreferred
	dst.typedDirty = true
}

// String is used by logging.
func (w *Word) String() string {
	var b strings.Builder
	text := []rune(w.TypedWord())
	b.WriteString(string(text[:w.cursor]))
	b.WriteByte('|')
	b.WriteString(string(text[w.cursor:]))
	return b.String()
}
