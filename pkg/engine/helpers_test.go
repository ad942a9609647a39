package engine

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode"

	"github.com/bastiangx/typr/pkg/compose"
	"github.com/bastiangx/typr/pkg/editor"
	"github.com/bastiangx/typr/pkg/userdict"
	"github.com/charmbracelet/log"
)

// --- Mock implementations ---

// mockClock implements Clock; timers only fire from Advance.
type mockClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*mockTimer
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &mockTimer{fireTime: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves time forward and fires due timers in order, including timers
// scheduled by the callbacks themselves.
func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
	for {
		t := c.nextDue()
		if t == nil {
			return
		}
		t.fire()
	}
}

func (c *mockClock) nextDue() *mockTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	var due *mockTimer
	for _, t := range c.timers {
		if t.isStopped() || t.fireTime.After(c.now) {
			continue
		}
		if due == nil || t.fireTime.Before(due.fireTime) {
			due = t
		}
	}
	return due
}

type mockTimer struct {
	mu       sync.Mutex
	fireTime time.Time
	f        func()
	stopped  bool
}

func (t *mockTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (t *mockTimer) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (t *mockTimer) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	f := t.f
	t.mu.Unlock()
	if f != nil {
		f()
	}
}

// fakeProvider puts the typed word first and a canned correction second.
type fakeProvider struct {
	valid       map[string]bool
	corrections map[string]string
	learnable   map[string]bool

	lookups   []string
	lastValid bool
	nextCalls []string
	learned   []string
	added     []string
	removed   []string
	resets    int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		valid:       map[string]bool{},
		corrections: map[string]string{},
		learnable:   map[string]bool{},
	}
}

func (p *fakeProvider) Suggestions(w *compose.Word) ([]string, int) {
	typed := w.TypedWord()
	p.lookups = append(p.lookups, typed)
	p.lastValid = p.IsValidWord(strings.ToLower(typed))
	out := []string{typed}
	lastValid := -1
	if p.IsValidWord(strings.ToLower(typed)) {
		lastValid = 0
	}
	if c, ok := p.corrections[typed]; ok {
		out = append(out, c)
		if lastValid < 0 {
			lastValid = 1
		}
	}
	return out, lastValid
}

func (p *fakeProvider) NextSuggestions(committed string, allUpperCase bool) []string {
	p.nextCalls = append(p.nextCalls, committed)
	return []string{"next"}
}

func (p *fakeProvider) IsValidWord(word string) bool { return p.valid[word] }

func (p *fakeProvider) TryLearnNewWord(word string, kind userdict.AdditionType) bool {
	if !p.learnable[word] {
		return false
	}
	p.learned = append(p.learned, word)
	return true
}

func (p *fakeProvider) AddWordToUserDictionary(word string) bool {
	p.added = append(p.added, word)
	p.valid[word] = true
	return true
}

func (p *fakeProvider) RemoveWordFromUserDictionary(word string) {
	p.removed = append(p.removed, word)
	delete(p.valid, word)
}

func (p *fakeProvider) ResetNextWordSentence() { p.resets++ }

type fakeStrip struct {
	suggestions []string
	highlight   int
	typed       string
	hint        string
}

func (s *fakeStrip) SetSuggestions(suggestions []string, highlight int) {
	s.suggestions = append([]string(nil), suggestions...)
	s.highlight = highlight
}

func (s *fakeStrip) ReplaceTypedWord(word string)        { s.typed = word }
func (s *fakeStrip) ShowAddToDictionaryHint(word string) { s.hint = word }
func (s *fakeStrip) DismissAddToDictionaryHint()         { s.hint = "" }

// --- Helper functions ---

type harness struct {
	t        *testing.T
	clock    *mockClock
	ed       *editor.Buffer
	provider *fakeProvider
	strip    *fakeStrip
	s        *Session
}

// newHarness starts a text field holding text with the cursor at its end.
// The clock is moved past the expectation window opened by the field start.
func newHarness(t *testing.T, text string) *harness {
	t.Helper()
	h := &harness{
		t:        t,
		clock:    newMockClock(),
		ed:       editor.New(text),
		provider: newFakeProvider(),
		strip:    &fakeStrip{highlight: -1},
	}
	h.s = NewSession(h.provider, Options{
		Clock:  h.clock,
		Strip:  h.strip,
		Logger: log.New(io.Discard),
	})
	t.Cleanup(h.s.Close)
	h.s.Attach(h.ed)
	h.s.OnFieldStarted(Field{Type: FieldText})
	h.ed.Flush(h.s)
	h.clock.Advance(2 * time.Second)
	return h
}

// key presses and releases one key, then lets the editor report back.
func (h *harness) key(code rune) {
	switch {
	case code == KeyDelete:
		h.s.OnDelete()
	case code == KeyForwardDelete:
		h.s.OnForwardDelete()
	case unicode.IsLetter(code) || code == '\'':
		h.s.OnCharacter(code, 0, nil)
	default:
		h.s.OnSeparator(code)
	}
	h.s.OnRelease(code)
	h.ed.Flush(h.s)
}

func (h *harness) typeText(text string) {
	for _, r := range text {
		h.key(r)
	}
}

// settle fires pending suggestion and restart tasks.
func (h *harness) settle() {
	h.clock.Advance(200 * time.Millisecond)
	h.ed.Flush(h.s)
}
