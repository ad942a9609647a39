package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	got []Notification
}

func (r *recorder) OnSelectionChanged(oldStart, oldEnd, newStart, newEnd, candStart, candEnd int) {
	r.got = append(r.got, Notification{oldStart, oldEnd, newStart, newEnd, candStart, candEnd})
}

func TestComposingAndCommit(t *testing.T) {
	b := New("")
	b.SetComposingText("hel")
	assert.Equal(t, "[hel|]", b.String())

	b.SetComposingText("hello")
	start, end := b.Composing()
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)

	b.CommitText("hello")
	assert.Equal(t, "hello|", b.String())
	start, _ = b.Composing()
	assert.Equal(t, -1, start)
}

func TestCommitCorrection(t *testing.T) {
	t.Run("replaces composing region", func(t *testing.T) {
		b := New("a ")
		b.SetComposingText("speling")
		b.CommitCorrection(2, "speling", "spelling")
		assert.Equal(t, "a spelling", b.Text())
		require.Len(t, b.Corrections(), 1)
		assert.Equal(t, Correction{Offset: 2, OldText: "speling", NewText: "spelling"}, b.Corrections()[0])
	})

	t.Run("uses offset without composing region", func(t *testing.T) {
		b := New("a speling")
		b.CommitCorrection(2, "speling", "spelling")
		assert.Equal(t, "a spelling|", b.String())
	})
}

func TestDeleteSurrounding(t *testing.T) {
	b := New("one two")
	require.NoError(t, b.Select(3, 3))
	b.DeleteSurrounding(2, 2)
	assert.Equal(t, "o|wo", b.String())
}

func TestSendDeleteShrinksComposing(t *testing.T) {
	b := New("x ")
	b.SetComposingText("ab")
	b.SendDelete()
	assert.Equal(t, "x [a|]", b.String())
	b.SendDelete()
	assert.Equal(t, "x |", b.String())
	start, _ := b.Composing()
	assert.Equal(t, -1, start)
}

func TestSendForwardDelete(t *testing.T) {
	b := New("abc")
	require.NoError(t, b.Select(1, 1))
	b.SendForwardDelete()
	assert.Equal(t, "a|c", b.String())

	require.NoError(t, b.Select(0, 2))
	b.SendForwardDelete()
	assert.Equal(t, "|", b.String())
}

func TestSendKeyCharFinishesComposing(t *testing.T) {
	b := New("")
	b.SetComposingText("hi")
	b.SendKeyChar(' ')
	assert.Equal(t, "hi |", b.String())
}

func TestSurroundingText(t *testing.T) {
	b := New("hello world")
	require.NoError(t, b.Select(6, 8))
	assert.Equal(t, "lo ", b.TextBeforeCursor(3))
	assert.Equal(t, "hello ", b.TextBeforeCursor(100))
	assert.Equal(t, "rld", b.TextAfterCursor(100))
	assert.Equal(t, "wo", b.SelectedText())
}

func TestCursorCapsMode(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"Hello.", false},
		{"Hello. ", true},
		{"Hello!  ", true},
		{"Hello ", false},
		{"line\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.text).CursorCapsMode())
		})
	}
}

func TestNotificationsQueueUntilFlush(t *testing.T) {
	b := New("")
	b.SetComposingText("a")
	b.SetComposingText("ab")
	assert.Equal(t, 2, b.Pending())

	r := &recorder{}
	assert.Equal(t, 2, b.Flush(r))
	assert.Equal(t, []Notification{
		{0, 0, 1, 1, 0, 1},
		{1, 1, 2, 2, 0, 2},
	}, r.got)
	assert.Zero(t, b.Pending())
}

func TestBatchEditCoalesces(t *testing.T) {
	b := New("")
	require.True(t, b.BeginBatchEdit())
	b.SetComposingText("abc")
	b.SetSelection(1, 1)
	assert.Zero(t, b.Pending())
	b.EndBatchEdit()
	require.Equal(t, 1, b.Pending())

	r := &recorder{}
	b.Flush(r)
	assert.Equal(t, Notification{0, 0, 1, 1, 0, 3}, r.got[0])
}

func TestUnchangedStateQueuesNothing(t *testing.T) {
	b := New("abc")
	b.SetSelection(3, 3)
	b.FinishComposingText()
	assert.Zero(t, b.Pending())
}

func TestSelectOutOfRange(t *testing.T) {
	b := New("abc")
	err := b.Select(2, 9)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Zero(t, b.Pending())
}

type echoListener struct {
	b     *Buffer
	calls int
}

func (e *echoListener) OnSelectionChanged(_, _, _, _, _, _ int) {
	e.calls++
	if e.calls == 1 {
		e.b.FinishComposingText()
	}
}

func TestFlushDeliversListenerEdits(t *testing.T) {
	b := New("")
	b.SetComposingText("ab")
	l := &echoListener{b: b}
	assert.Equal(t, 2, b.Flush(l))
	assert.Zero(t, b.Pending())
}

func TestCommitCompletion(t *testing.T) {
	b := New("")
	b.SetComposingText("wor")
	b.CommitCompletion(0, "world")
	assert.Equal(t, "world|", b.String())
	assert.Equal(t, []string{"world"}, b.Completions())
}
