package suggest

import (
	"sort"
	"strings"
	"sync"
)

const maxFollowers = 32

// NextWords counts which word followed which within a sentence and predicts
// the likely next word from those counts.
type NextWords struct {
	mu        sync.Mutex
	followers map[string]map[string]int
	previous  string
}

func NewNextWords() *NextWords {
	return &NextWords{followers: make(map[string]map[string]int)}
}

// Observe records word as committed after the previously observed one.
func (n *NextWords) Observe(word string) {
	word = strings.ToLower(word)
	if word == "" {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.previous != "" {
		next, ok := n.followers[n.previous]
		if !ok {
			next = make(map[string]int)
			n.followers[n.previous] = next
		}
		if _, known := next[word]; !known && len(next) >= maxFollowers {
			dropRarest(next)
		}
		next[word]++
	}
	n.previous = word
}

// Predict returns the most frequent followers of word.
func (n *NextWords) Predict(word string, limit int) []string {
	n.mu.Lock()
	next := n.followers[strings.ToLower(word)]
	words := make([]string, 0, len(next))
	for w := range next {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if next[words[i]] != next[words[j]] {
			return next[words[i]] > next[words[j]]
		}
		return words[i] < words[j]
	})
	n.mu.Unlock()

	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	return words
}

// Reset starts a new sentence: the next observed word has no predecessor.
func (n *NextWords) Reset() {
	n.mu.Lock()
	n.previous = ""
	n.mu.Unlock()
}

// Forget drops word from every follower list.
func (n *NextWords) Forget(word string) {
	word = strings.ToLower(word)
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.followers, word)
	for _, next := range n.followers {
		delete(next, word)
	}
	if n.previous == word {
		n.previous = ""
	}
}

func dropRarest(next map[string]int) {
	rarest := ""
	for w, count := range next {
		if rarest == "" || count < next[rarest] || (count == next[rarest] && w > rarest) {
			rarest = w
		}
	}
	delete(next, rarest)
}
