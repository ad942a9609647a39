package suggest

import (
	"testing"

	"github.com/bastiangx/typr/pkg/compose"
	"github.com/bastiangx/typr/pkg/engine"
	"github.com/bastiangx/typr/pkg/userdict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ engine.SuggestionSource = (*Provider)(nil)

func newTestCompleter() *Completer {
	c := NewCompleter()
	for word, freq := range map[string]int{
		"the":      65535,
		"there":    61000,
		"then":     60000,
		"thx":      10,
		"spelling": 40000,
		"spewing":  2000,
		"keyboard": 30000,
		"key":      50000,
	} {
		c.AddWord(word, freq)
	}
	return c
}

func typed(s string) *compose.Word {
	w := compose.New()
	for i, r := range s {
		if i == 0 {
			w.SetFirstCharCapitalized(r >= 'A' && r <= 'Z')
		}
		w.Add(r, nil)
	}
	return w
}

func TestComplete(t *testing.T) {
	c := newTestCompleter()

	got := c.Complete("th", 10)
	words := make([]string, len(got))
	for i, s := range got {
		words[i] = s.Word
	}
	assert.Equal(t, []string{"the", "there", "then"}, words)

	got = c.Complete("Th", 1)
	require.Len(t, got, 1)
	assert.Equal(t, "The", got[0].Word)

	assert.Empty(t, c.Complete("", 10))
	assert.Empty(t, c.Complete("zz", 10))
}

func TestAddRemoveWord(t *testing.T) {
	c := NewCompleter()
	c.AddWord("Hello", 100)
	c.AddWord("hello", 200)

	freq, ok := c.Frequency("HELLO")
	require.True(t, ok)
	assert.Equal(t, 200, freq)
	assert.Equal(t, 1, c.Stats()["totalWords"])

	c.RemoveWord("hello")
	assert.False(t, c.Contains("hello"))
	assert.Equal(t, 0, c.Stats()["totalWords"])
}

func TestCorrections(t *testing.T) {
	c := newTestCompleter()

	got := c.Corrections("speling", 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "spelling", got[0].Word)
	assert.True(t, got[0].WasCorrected)
	assert.Equal(t, "speling", got[0].OriginalPrefix)

	got = c.Corrections("Teh", 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "The", got[0].Word)

	// first letters must agree
	assert.Empty(t, c.Corrections("hte", 3))
	assert.Empty(t, c.Corrections("k", 3))
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"the", "the", 0},
		{"teh", "the", 1},
		{"speling", "spelling", 1},
		{"kitten", "sitting", 3},
		{"", "abc", 3},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, editDistance([]rune(tt.a), []rune(tt.b), 5))
		})
	}
	assert.Equal(t, 2, editDistance([]rune("kitten"), []rune("sitting"), 1))
}

func TestApplyCapitalization(t *testing.T) {
	assert.Equal(t, "Über", ApplyCapitalization("über", capitalPositions("Üb")))
	assert.Equal(t, "word", ApplyCapitalization("word", capitalPositions("wo")))
	assert.Nil(t, capitalPositions("lower"))
}

func TestHotCache(t *testing.T) {
	hc := NewHotCache(2)
	hc.Touch("alpha", 10)
	hc.Touch("alps", 20)
	hc.Touch("beta", 30)

	// alpha was the least recently used
	hits := hc.Search("al", 0)
	require.Len(t, hits, 1)
	assert.Equal(t, "alps", hits[0].Word)
	assert.Equal(t, 2, hc.Stats()["hotCacheWords"])

	hc.Remove("alps")
	assert.Empty(t, hc.Search("al", 0))
}

func TestCompleteMergesHotCache(t *testing.T) {
	c := NewCompleterWithOptions(20, 10)
	c.AddWord("there", 100)
	c.AddWord("then", 110)
	c.Touch("there")

	got := c.Complete("the", 5)
	require.Len(t, got, 2)
	assert.Equal(t, "there", got[0].Word)
	assert.Equal(t, 120, got[0].Frequency)
}

func TestNextWords(t *testing.T) {
	n := NewNextWords()
	for _, w := range []string{"I", "am"} {
		n.Observe(w)
	}
	n.Reset()
	for _, w := range []string{"i", "was"} {
		n.Observe(w)
	}
	n.Reset()
	for _, w := range []string{"i", "am"} {
		n.Observe(w)
	}

	assert.Equal(t, []string{"am", "was"}, n.Predict("i", 5))
	assert.Equal(t, []string{"am"}, n.Predict("I", 1))

	n.Forget("am")
	assert.Equal(t, []string{"was"}, n.Predict("i", 5))
}

func newTestProvider(t *testing.T, user UserWords) *Provider {
	t.Helper()
	p, err := NewProvider(newTestCompleter(), user, Options{
		MaxSuggestions: 5,
		MinLearnCount:  2,
		MinPickCount:   1,
		Filter:         true,
	})
	require.NoError(t, err)
	return p
}

func TestProviderSuggestions(t *testing.T) {
	p := newTestProvider(t, userdict.NewMemory())

	tests := []struct {
		name      string
		word      string
		want      []string
		lastValid int
	}{
		{"valid word", "key", []string{"key", "keyboard"}, 0},
		{"completion only", "spel", []string{"spel", "spelling"}, -1},
		{"corrected", "speling", []string{"speling", "spelling", "spewing"}, 1},
		{"capitalized correction", "Teh", []string{"Teh", "The"}, 1},
		{"all caps", "KEY", []string{"KEY", "KEYBOARD"}, 0},
		{"numbers", "123", []string{"123"}, -1},
		{"tags search", ":smi", []string{":smi"}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, lastValid := p.Suggestions(typed(tt.word))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.lastValid, lastValid)
		})
	}

	got, lastValid := p.Suggestions(compose.New())
	assert.Empty(t, got)
	assert.Equal(t, -1, lastValid)
}

func TestProviderLimit(t *testing.T) {
	p := newTestProvider(t, userdict.NewMemory())
	p.opts.MaxSuggestions = 2

	got, _ := p.Suggestions(typed("th"))
	assert.Equal(t, []string{"th", "the"}, got)
}

func TestProviderLearning(t *testing.T) {
	user := userdict.NewMemory()
	p := newTestProvider(t, user)

	assert.False(t, p.TryLearnNewWord("zorp", userdict.Typed))
	assert.True(t, p.TryLearnNewWord("zorp", userdict.Typed))
	assert.True(t, p.IsValidWord("zorp"))
	ok, err := user.Contains("zorp")
	require.NoError(t, err)
	assert.True(t, ok)

	// known words are not learned again
	assert.False(t, p.TryLearnNewWord("zorp", userdict.Typed))
	assert.False(t, p.TryLearnNewWord("the", userdict.Picked))
	assert.False(t, p.TryLearnNewWord("1234", userdict.Picked))

	assert.True(t, p.TryLearnNewWord("blarg", userdict.Picked))

	p.RemoveWordFromUserDictionary("zorp")
	assert.False(t, p.IsValidWord("zorp"))

	p.RemoveWordFromUserDictionary("the")
	assert.True(t, p.IsValidWord("the"))
}

func TestProviderLoadsUserWords(t *testing.T) {
	user := userdict.NewMemory()
	require.NoError(t, user.Add("Typr", UserWordFrequency))

	p := newTestProvider(t, user)
	assert.True(t, p.IsValidWord("typr"))

	got, lastValid := p.Suggestions(typed("Typr"))
	assert.Equal(t, []string{"Typr"}, got)
	assert.Equal(t, 0, lastValid)
}

func TestProviderNextSuggestions(t *testing.T) {
	p := newTestProvider(t, userdict.NewMemory())

	p.NextSuggestions("the", false)
	p.NextSuggestions("keyboard", false)
	p.ResetNextWordSentence()

	assert.Equal(t, []string{"keyboard"}, p.NextSuggestions("the", false))
	p.ResetNextWordSentence()
	assert.Equal(t, []string{"KEYBOARD"}, p.NextSuggestions("THE", true))
}
