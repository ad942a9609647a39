package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bastiangx/typr/pkg/config"
	"github.com/bastiangx/typr/pkg/engine"
	"github.com/bastiangx/typr/pkg/suggest"
	"github.com/bastiangx/typr/pkg/userdict"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastClock fires every timer as soon as it is set.
type fastClock struct{}

func (fastClock) Now() time.Time { return time.Now() }

func (fastClock) AfterFunc(_ time.Duration, f func()) engine.Timer {
	f()
	return fastTimer{}
}

type fastTimer struct{}

func (fastTimer) Stop() bool { return false }

func newTestHandler(t *testing.T, in io.Reader, out io.Writer) (*InputHandler, *suggest.Provider) {
	t.Helper()
	c := suggest.NewCompleter()
	c.AddWord("spelling", 40000)
	c.AddWord("keyboard", 30000)
	c.AddWord("hello", 50000)

	p, err := suggest.NewProvider(c, userdict.NewMemory(), suggest.Options{
		MaxSuggestions: 5,
		MinLearnCount:  5,
		MinPickCount:   5,
		Filter:         true,
	})
	require.NoError(t, err)

	h := NewInputHandler(p, config.DefaultConfig(), in, out, Options{
		Clock:  fastClock{},
		Logger: log.New(io.Discard),
	})
	return h, p
}

func TestTypingAutoCorrects(t *testing.T) {
	h, _ := newTestHandler(t, nil, io.Discard)

	h.handleLine("speling ")
	assert.Equal(t, "spelling ", h.ed.Text())
}

func TestPickCommand(t *testing.T) {
	h, _ := newTestHandler(t, nil, io.Discard)

	h.handleLine("keyb")
	require.Equal(t, []string{"keyb", "keyboard"}, h.strip.suggestions)

	h.handleLine("#1")
	assert.Equal(t, "keyboard ", h.ed.Text())

	// out of range picks are ignored
	h.handleLine("#9")
	assert.Equal(t, "keyboard ", h.ed.Text())
}

func TestDeleteKey(t *testing.T) {
	h, _ := newTestHandler(t, nil, io.Discard)

	h.handleLine("hello<")
	assert.Equal(t, "[hell|]", h.ed.String())
}

func TestAddHint(t *testing.T) {
	var out bytes.Buffer
	h, p := newTestHandler(t, nil, &out)

	h.handleLine("zorp")
	h.handleLine("#0")
	require.Equal(t, "zorp", h.strip.hint)
	h.render()
	assert.Contains(t, out.String(), `add "zorp" to the dictionary?`)

	h.handleLine(addCommand)
	assert.Empty(t, h.strip.hint)
	assert.True(t, p.IsValidWord("zorp"))
}

func TestParsePick(t *testing.T) {
	tests := []struct {
		line  string
		index int
		ok    bool
	}{
		{"#0", 0, true},
		{"#12", 12, true},
		{"#", 0, false},
		{"#tag", 0, false},
		{"12", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			index, ok := parsePick(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.index, index)
		})
	}
}

func TestRenderStrip(t *testing.T) {
	v := &stripView{suggestions: []string{"a", "b", "c"}, highlight: 1}
	got := renderStrip(v, 2)
	assert.Contains(t, got, "#0")
	assert.Contains(t, got, "b")
	assert.NotContains(t, got, "#2")

	assert.Contains(t, renderStrip(&stripView{}, 5), "no suggestions")
}

func TestStart(t *testing.T) {
	var out bytes.Buffer
	h, _ := newTestHandler(t, strings.NewReader("hello\n"), &out)

	require.NoError(t, h.Start(context.Background()))
	assert.Contains(t, out.String(), "typr CLI")
	assert.Contains(t, out.String(), "[hello|]")
}
