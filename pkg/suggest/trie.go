package suggest

import (
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// SearchTrie collects the words below lowerPrefix whose frequency reaches
// minThreshold. The prefix itself is skipped.
func SearchTrie(trie *patricia.Trie, lowerPrefix string, capitalPositions []bool, minThreshold int) []Suggestion {
	if trie == nil {
		return []Suggestion{}
	}

	var suggestions []Suggestion

	err := trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == lowerPrefix {
			return nil
		}

		freq := itemFrequency(word, item)
		if freq < minThreshold {
			return nil
		}

		suggestions = append(suggestions, Suggestion{
			Word:      ApplyCapitalization(word, capitalPositions),
			Frequency: freq,
		})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}

	return suggestions
}

func SearchHotCache(hotCache *HotCache, lowerPrefix string, capitalPositions []bool, minThreshold int) []Suggestion {
	if hotCache == nil {
		return []Suggestion{}
	}

	var suggestions []Suggestion
	for _, hit := range hotCache.Search(lowerPrefix, minThreshold) {
		suggestions = append(suggestions, Suggestion{
			Word:      ApplyCapitalization(hit.Word, capitalPositions),
			Frequency: hit.Frequency,
		})
	}
	return suggestions
}

func itemFrequency(word string, item patricia.Item) int {
	switch v := item.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case uint32:
		return int(v)
	case float64:
		return int(v)
	}
	log.Errorf("Unknown item type: %T for word %s", item, word)
	return 1
}

// ApplyCapitalization upper-cases the code points of word whose position is
// marked in capitalPositions.
func ApplyCapitalization(word string, capitalPositions []bool) string {
	if len(capitalPositions) == 0 {
		return word
	}

	wordRunes := []rune(word)
	for i := 0; i < len(wordRunes) && i < len(capitalPositions); i++ {
		if capitalPositions[i] {
			wordRunes[i] = unicode.ToUpper(wordRunes[i])
		}
	}
	return string(wordRunes)
}

// capitalPositions marks the upper case code points of s.
func capitalPositions(s string) []bool {
	var positions []bool
	any := false
	for _, r := range s {
		upper := unicode.IsUpper(r)
		any = any || upper
		positions = append(positions, upper)
	}
	if !any {
		return nil
	}
	return positions
}
