// Package editor is an in-memory text field. It applies edits at once and
// queues the selection notifications a real host would deliver later, so the
// typing session can be driven the way a platform editor drives it.
package editor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned when a user selection falls outside the text.
var ErrOutOfRange = errors.New("editor: position out of range")

// maxFlushRounds bounds listener-triggered edits during one Flush.
const maxFlushRounds = 8

// Notification is one selection change as a host editor reports it. The
// candidate bounds are -1 when no composing region exists.
type Notification struct {
	OldStart, OldEnd   int
	NewStart, NewEnd   int
	CandStart, CandEnd int
}

// SelectionListener receives queued notifications on Flush.
type SelectionListener interface {
	OnSelectionChanged(oldStart, oldEnd, newStart, newEnd, candidateStart, candidateEnd int)
}

// Correction records a CommitCorrection call.
type Correction struct {
	Offset  int
	OldText string
	NewText string
}

type state struct {
	selStart, selEnd   int
	compStart, compEnd int
}

// Buffer is the in-memory editor. Offsets count code points. It is not safe
// for concurrent use.
type Buffer struct {
	text []rune
	cur  state

	batch    int
	reported state
	pending  []Notification

	corrections []Correction
	completions []string
}

// New returns a buffer holding text with the cursor at its end.
func New(text string) *Buffer {
	b := &Buffer{text: []rune(text)}
	n := len(b.text)
	b.cur = state{selStart: n, selEnd: n, compStart: -1, compEnd: -1}
	b.reported = b.cur
	return b
}

// Text returns the whole content.
func (b *Buffer) Text() string { return string(b.text) }

// Composing returns the composing region, or -1, -1.
func (b *Buffer) Composing() (int, int) { return b.cur.compStart, b.cur.compEnd }

// Selection returns the selection; start equals end for a cursor.
func (b *Buffer) Selection() (int, int) { return b.cur.selStart, b.cur.selEnd }

// Corrections returns every correction committed so far.
func (b *Buffer) Corrections() []Correction { return append([]Correction(nil), b.corrections...) }

// Completions returns the texts of committed editor completions.
func (b *Buffer) Completions() []string { return append([]string(nil), b.completions...) }

// Pending returns the number of undelivered notifications.
func (b *Buffer) Pending() int { return len(b.pending) }

func (b *Buffer) hasComposing() bool { return b.cur.compStart >= 0 }

func (b *Buffer) clamp(p int) int {
	if p < 0 {
		return 0
	}
	if p > len(b.text) {
		return len(b.text)
	}
	return p
}

// replace swaps text[start:end] for s and returns the end of the insertion.
func (b *Buffer) replace(start, end int, s string) int {
	start, end = b.clamp(start), b.clamp(end)
	if start > end {
		start, end = end, start
	}
	ins := []rune(s)
	out := make([]rune, 0, len(b.text)-(end-start)+len(ins))
	out = append(out, b.text[:start]...)
	out = append(out, ins...)
	out = append(out, b.text[end:]...)
	b.text = out
	return start + len(ins)
}

// target is the range an insertion replaces: the composing region, else the
// selection.
func (b *Buffer) target() (int, int) {
	if b.hasComposing() {
		return b.cur.compStart, b.cur.compEnd
	}
	return b.cur.selStart, b.cur.selEnd
}

func (b *Buffer) setCursor(p int) {
	p = b.clamp(p)
	b.cur.selStart, b.cur.selEnd = p, p
}

func (b *Buffer) clearComposing() {
	b.cur.compStart, b.cur.compEnd = -1, -1
}

// changed queues a notification when the visible state moved and no batch
// edit is open.
func (b *Buffer) changed() {
	if b.batch > 0 || b.cur == b.reported {
		return
	}
	b.pending = append(b.pending, Notification{
		OldStart:  b.reported.selStart,
		OldEnd:    b.reported.selEnd,
		NewStart:  b.cur.selStart,
		NewEnd:    b.cur.selEnd,
		CandStart: b.cur.compStart,
		CandEnd:   b.cur.compEnd,
	})
	b.reported = b.cur
}

func (b *Buffer) CommitText(text string) {
	start, end := b.target()
	b.setCursor(b.replace(start, end, text))
	b.clearComposing()
	b.changed()
}

func (b *Buffer) CommitCorrection(offset int, oldText, newText string) {
	b.corrections = append(b.corrections, Correction{Offset: offset, OldText: oldText, NewText: newText})
	start, end := b.target()
	if !b.hasComposing() {
		start = offset
		end = offset + len([]rune(oldText))
	}
	b.setCursor(b.replace(start, end, newText))
	b.clearComposing()
	b.changed()
}

func (b *Buffer) CommitCompletion(index int, text string) {
	b.completions = append(b.completions, text)
	b.CommitText(text)
}

// DeleteSurrounding removes before code points ahead of the selection and
// after code points behind it.
func (b *Buffer) DeleteSurrounding(before, after int) {
	if after > 0 {
		end := b.cur.selEnd
		b.deleteRange(end, b.clamp(end+after))
	}
	if before > 0 {
		start := b.cur.selStart
		b.deleteRange(b.clamp(start-before), start)
	}
	b.changed()
}

// deleteRange removes [start, end) and shifts every tracked position.
func (b *Buffer) deleteRange(start, end int) {
	if start >= end {
		return
	}
	b.replace(start, end, "")
	shift := func(p int) int {
		switch {
		case p < 0:
			return p
		case p >= end:
			return p - (end - start)
		case p > start:
			return start
		}
		return p
	}
	b.cur.selStart = shift(b.cur.selStart)
	b.cur.selEnd = shift(b.cur.selEnd)
	if b.hasComposing() {
		b.cur.compStart = shift(b.cur.compStart)
		b.cur.compEnd = shift(b.cur.compEnd)
		if b.cur.compStart == b.cur.compEnd {
			b.clearComposing()
		}
	}
}

func (b *Buffer) SetComposingText(text string) {
	start, end := b.target()
	newEnd := b.replace(start, end, text)
	if text == "" {
		b.clearComposing()
	} else {
		b.cur.compStart, b.cur.compEnd = newEnd-len([]rune(text)), newEnd
	}
	b.setCursor(newEnd)
	b.changed()
}

func (b *Buffer) SetComposingRegion(start, end int) {
	start, end = b.clamp(start), b.clamp(end)
	if start > end {
		start, end = end, start
	}
	if start == end {
		b.clearComposing()
	} else {
		b.cur.compStart, b.cur.compEnd = start, end
	}
	b.changed()
}

func (b *Buffer) FinishComposingText() {
	b.clearComposing()
	b.changed()
}

func (b *Buffer) SetSelection(start, end int) {
	b.cur.selStart, b.cur.selEnd = b.clamp(start), b.clamp(end)
	if b.cur.selStart > b.cur.selEnd {
		b.cur.selStart, b.cur.selEnd = b.cur.selEnd, b.cur.selStart
	}
	b.changed()
}

func (b *Buffer) BeginBatchEdit() bool {
	b.batch++
	return true
}

func (b *Buffer) EndBatchEdit() {
	if b.batch == 0 {
		return
	}
	b.batch--
	b.changed()
}

func (b *Buffer) TextBeforeCursor(n int) string {
	end := b.cur.selStart
	return string(b.text[b.clamp(end-n):end])
}

func (b *Buffer) TextAfterCursor(n int) string {
	start := b.cur.selEnd
	return string(b.text[start:b.clamp(start+n)])
}

func (b *Buffer) SelectedText() string {
	return string(b.text[b.cur.selStart:b.cur.selEnd])
}

// CursorCapsMode reports a sentence start: only spaces since the beginning
// of the text or since a sentence-ending mark.
func (b *Buffer) CursorCapsMode() bool {
	before := b.text[:b.cur.selStart]
	i := len(before)
	for i > 0 && before[i-1] == ' ' {
		i--
	}
	if i == 0 {
		return true
	}
	switch before[i-1] {
	case '\n':
		return true
	case '.', '!', '?':
		return i < len(before)
	}
	return false
}

// SendKeyChar types code as a hardware key would: the composing region is
// committed first and the selection is replaced.
func (b *Buffer) SendKeyChar(code rune) {
	b.clearComposing()
	b.setCursor(b.replace(b.cur.selStart, b.cur.selEnd, string(code)))
	b.changed()
}

func (b *Buffer) SendDelete() {
	if b.cur.selStart != b.cur.selEnd {
		b.deleteRange(b.cur.selStart, b.cur.selEnd)
	} else {
		b.deleteRange(b.clamp(b.cur.selStart-1), b.cur.selStart)
	}
	b.changed()
}

func (b *Buffer) SendForwardDelete() {
	if b.cur.selStart != b.cur.selEnd {
		b.deleteRange(b.cur.selStart, b.cur.selEnd)
	} else {
		b.deleteRange(b.cur.selEnd, b.clamp(b.cur.selEnd+1))
	}
	b.changed()
}

// Select moves the selection the way a user tap would.
func (b *Buffer) Select(start, end int) error {
	if start < 0 || end < start || end > len(b.text) {
		return fmt.Errorf("select [%d,%d] in %d code points: %w", start, end, len(b.text), ErrOutOfRange)
	}
	b.cur.selStart, b.cur.selEnd = start, end
	b.changed()
	return nil
}

// Flush delivers queued notifications in order. Edits the listener makes
// while handling them are delivered too. It returns the number delivered.
func (b *Buffer) Flush(l SelectionListener) int {
	delivered := 0
	for round := 0; round < maxFlushRounds && len(b.pending) > 0; round++ {
		batch := b.pending
		b.pending = nil
		for _, n := range batch {
			l.OnSelectionChanged(n.OldStart, n.OldEnd, n.NewStart, n.NewEnd, n.CandStart, n.CandEnd)
			delivered++
		}
	}
	return delivered
}

// Discard drops queued notifications without delivering them.
func (b *Buffer) Discard() { b.pending = nil }

// String renders the text with the composing region in brackets and the
// cursor or selection marked with |.
func (b *Buffer) String() string {
	var sb strings.Builder
	for i := 0; i <= len(b.text); i++ {
		if i == b.cur.compStart && b.hasComposing() {
			sb.WriteByte('[')
		}
		if i == b.cur.selStart || (i == b.cur.selEnd && b.cur.selEnd != b.cur.selStart) {
			sb.WriteByte('|')
		}
		if i == b.cur.compEnd && b.hasComposing() {
			sb.WriteByte(']')
		}
		if i < len(b.text) {
			sb.WriteRune(b.text[i])
		}
	}
	return sb.String()
}
