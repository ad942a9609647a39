package suggest

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Constants for scoring
const (
	editPenalty        = 40
	commonPrefixBonus  = 10
	lengthDiffPenalty  = 2
	maxFrequencyBonus  = 30
	frequencyBonusUnit = 2000
)

type scoredCorrection struct {
	Suggestion
	score int
}

// maxEdits is the edit budget for a word of n code points.
func maxEdits(n int) int {
	if n <= 4 {
		return 1
	}
	return 2
}

// Corrections returns dictionary words within a small edit distance of word,
// best first. Candidates must share the first letter of word. The typed word
// itself is never returned.
func (c *Completer) Corrections(word string, limit int) []Suggestion {
	lower := strings.ToLower(word)
	n := utf8.RuneCountInString(lower)
	if n < 2 {
		return nil
	}
	typed := []rune(lower)
	budget := maxEdits(n)
	caps := capitalPositions(word)
	first, _ := utf8.DecodeRuneInString(lower)

	var matches []scoredCorrection
	c.mu.RLock()
	err := c.trie.VisitSubtree(patricia.Prefix(string(first)), func(p patricia.Prefix, item patricia.Item) error {
		candidate := string(p)
		if candidate == lower {
			return nil
		}
		runes := []rune(candidate)
		lengthDiff := abs(len(runes) - n)
		if lengthDiff > budget {
			return nil
		}
		d := editDistance(typed, runes, budget)
		if d > budget {
			return nil
		}
		freq := itemFrequency(candidate, item)
		common := commonPrefix(typed, runes)

		score := -d*editPenalty + common*commonPrefixBonus - lengthDiff*lengthDiffPenalty
		score += min(freq/frequencyBonusUnit, maxFrequencyBonus)

		matches = append(matches, scoredCorrection{
			Suggestion: Suggestion{
				Word:            ApplyCapitalization(candidate, caps),
				Frequency:       freq,
				WasCorrected:    true,
				OriginalPrefix:  word,
				CorrectedPrefix: candidate,
			},
			score: score,
		})
		return nil
	})
	c.mu.RUnlock()
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		if matches[i].Frequency != matches[j].Frequency {
			return matches[i].Frequency > matches[j].Frequency
		}
		return matches[i].Word < matches[j].Word
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]Suggestion, len(matches))
	for i, m := range matches {
		out[i] = m.Suggestion
	}
	return out
}

// editDistance is the optimal string alignment distance of a and b: inserts,
// deletes, substitutions and adjacent transpositions each cost one. It stops
// early and returns budget+1 once every alignment exceeds budget.
func editDistance(a, b []rune, budget int) int {
	prev2 := make([]int, len(b)+1)
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				curr[j] = min(curr[j], prev2[j-2]+1)
			}
			rowMin = min(rowMin, curr[j])
		}
		if rowMin > budget {
			return budget + 1
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[len(b)]
}

func commonPrefix(a, b []rune) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
