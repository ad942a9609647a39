package suggest

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// HotCache keeps the words the user committed recently, bounded by maxWords
// with least recently used eviction. Its hits are merged into completions.
type HotCache struct {
	hotTrie     *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	maxWords    int
	mu          sync.RWMutex
}

type hotHit struct {
	Word      string
	Frequency int
}

func NewHotCache(maxWords int) *HotCache {
	return &HotCache{
		hotTrie:    patricia.NewTrie(),
		accessTime: make(map[string]int64, maxWords),
		maxWords:   maxWords,
	}
}

// Touch records a use of word with its dictionary frequency.
func (hc *HotCache) Touch(word string, frequency int) {
	if hc.maxWords <= 0 || word == "" {
		return
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if _, ok := hc.accessTime[word]; !ok && len(hc.accessTime) >= hc.maxWords {
		hc.evictLRU()
	}
	hc.hotTrie.Set(patricia.Prefix(word), frequency)
	hc.accessTime[word] = hc.getNextAccessTime()
}

// Remove forgets word.
func (hc *HotCache) Remove(word string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.hotTrie.Delete(patricia.Prefix(word))
	delete(hc.accessTime, word)
}

func (hc *HotCache) Search(lowerPrefix string, minThreshold int) []hotHit {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	var results []hotHit
	err := hc.hotTrie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == lowerPrefix {
			return nil
		}
		score := item.(int)
		if score < minThreshold {
			return nil
		}
		results = append(results, hotHit{Word: word, Frequency: score})
		return nil
	})
	if err != nil {
		log.Errorf("Error searching hot cache: %v", err)
	}

	for _, r := range results {
		hc.accessTime[r.Word] = hc.getNextAccessTime()
	}
	hc.hits += int64(len(results))
	return results
}

func (hc *HotCache) Stats() map[string]int {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	return map[string]int{
		"hotCacheWords": len(hc.accessTime),
		"maxHotWords":   hc.maxWords,
		"hotCacheHits":  int(hc.hits),
	}
}

func (hc *HotCache) getNextAccessTime() int64 {
	hc.accessCount++
	return hc.accessCount
}

func (hc *HotCache) evictLRU() {
	var oldestWord string
	var oldestTime int64 = math.MaxInt64

	for word, accessTime := range hc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestWord = word
		}
	}

	if oldestWord != "" {
		hc.hotTrie.Delete(patricia.Prefix(oldestWord))
		delete(hc.accessTime, oldestWord)
		log.Debugf("Evicted word '%s' from hot cache", oldestWord)
	}
}
