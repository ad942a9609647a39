package suggest

import (
	"sort"
	"strings"
	"sync"

	"github.com/bastiangx/typr/internal/utils"
	"github.com/tchap/go-patricia/v2/patricia"
)

const (
	defaultMinThreshold = 20
	DefaultMaxHotWords  = 2000
)

type Suggestion struct {
	Word            string
	Frequency       int
	WasCorrected    bool   `json:",omitempty" msgpack:",omitempty"`
	OriginalPrefix  string `json:",omitempty" msgpack:",omitempty"`
	CorrectedPrefix string `json:",omitempty" msgpack:",omitempty"`
}

// Completer holds the dictionary trie. Keys are stored lower case; the
// capitalization of a query is reapplied to its results.
type Completer struct {
	mu           sync.RWMutex
	trie         *patricia.Trie
	hotCache     *HotCache
	totalWords   int
	maxFrequency int
	minThreshold int
}

func NewCompleter() *Completer {
	return NewCompleterWithOptions(defaultMinThreshold, DefaultMaxHotWords)
}

// NewCompleterWithOptions sets the minimum frequency a completion needs and
// the hot cache capacity (0 disables it).
func NewCompleterWithOptions(minThreshold, maxHotWords int) *Completer {
	c := &Completer{
		trie:         patricia.NewTrie(),
		minThreshold: minThreshold,
	}
	if maxHotWords > 0 {
		c.hotCache = NewHotCache(maxHotWords)
	}
	return c
}

// AddWord inserts word, replacing the frequency of an existing entry.
func (c *Completer) AddWord(word string, frequency int) {
	word = strings.ToLower(word)
	if word == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.trie.Get(patricia.Prefix(word)) == nil {
		c.totalWords++
	}
	c.trie.Set(patricia.Prefix(word), frequency)
	if frequency > c.maxFrequency {
		c.maxFrequency = frequency
	}
}

func (c *Completer) RemoveWord(word string) {
	word = strings.ToLower(word)
	c.mu.Lock()
	if c.trie.Delete(patricia.Prefix(word)) {
		c.totalWords--
	}
	c.mu.Unlock()
	if c.hotCache != nil {
		c.hotCache.Remove(word)
	}
}

func (c *Completer) Contains(word string) bool {
	_, ok := c.Frequency(word)
	return ok
}

// Frequency returns the stored frequency of word.
func (c *Completer) Frequency(word string) (int, bool) {
	word = strings.ToLower(word)
	c.mu.RLock()
	defer c.mu.RUnlock()
	item := c.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	return itemFrequency(word, item), true
}

// Touch marks word as recently used so it is preferred in completions.
func (c *Completer) Touch(word string) {
	if c.hotCache == nil {
		return
	}
	freq, ok := c.Frequency(word)
	if !ok {
		return
	}
	c.hotCache.Touch(strings.ToLower(word), freq+c.minThreshold)
}

func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	lowerPrefix := strings.ToLower(prefix)
	if lowerPrefix == "" {
		return nil
	}
	caps := capitalPositions(prefix)

	// short and repetitive prefixes match too much of the trie
	minFrequencyThreshold := c.minThreshold
	if len([]rune(lowerPrefix)) <= 2 || utils.IsRepetitive(lowerPrefix) {
		minFrequencyThreshold += c.minThreshold / 5
	}

	c.mu.RLock()
	suggestions := SearchTrie(c.trie, lowerPrefix, caps, minFrequencyThreshold)
	c.mu.RUnlock()

	suggestions = append(suggestions, SearchHotCache(c.hotCache, lowerPrefix, caps, minFrequencyThreshold)...)

	unique := DeduplicateAndSort(suggestions)
	if len(unique) > limit && limit > 0 {
		unique = unique[:limit]
	}
	return unique
}

// DeduplicateAndSort keeps the highest frequency entry of each word and sorts
// by frequency, then alphabetically.
func DeduplicateAndSort(suggestions []Suggestion) []Suggestion {
	best := make(map[string]int, len(suggestions))
	unique := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		key := strings.ToLower(s.Word)
		if i, ok := best[key]; ok {
			if s.Frequency > unique[i].Frequency {
				unique[i] = s
			}
			continue
		}
		best[key] = len(unique)
		unique = append(unique, s)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		if unique[i].Frequency != unique[j].Frequency {
			return unique[i].Frequency > unique[j].Frequency
		}
		return unique[i].Word < unique[j].Word
	})
	return unique
}

func (c *Completer) Stats() map[string]int {
	c.mu.RLock()
	stats := map[string]int{
		"totalWords":   c.totalWords,
		"maxFrequency": c.maxFrequency,
	}
	c.mu.RUnlock()

	if c.hotCache != nil {
		for k, v := range c.hotCache.Stats() {
			stats[k] = v
		}
	}
	return stats
}
