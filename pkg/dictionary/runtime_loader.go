package dictionary

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// RuntimeLoader grows or shrinks the set of loaded chunks while serving.
type RuntimeLoader struct {
	loader       *Loader
	targetChunks int
	mu           sync.Mutex
}

// NewRuntimeLoader creates a new runtime loader
func NewRuntimeLoader(loader *Loader) *RuntimeLoader {
	return &RuntimeLoader{loader: loader}
}

// GetMaxWordsAvailable returns the maximum number of words that can be loaded
func (rl *RuntimeLoader) GetMaxWordsAvailable() (int, error) {
	chunks, err := rl.loader.GetAvailable()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, chunk := range chunks {
		total += chunk.WordCount
	}
	return total, nil
}

// SetDictionarySize loads or evicts chunks so that targetChunks are loaded.
// Chunks are loaded lowest ID first and evicted highest ID first.
func (rl *RuntimeLoader) SetDictionarySize(targetChunks int) error {
	if targetChunks < 1 {
		return fmt.Errorf("minimum dictionary size is 1 chunk")
	}
	chunks, err := rl.loader.GetAvailable()
	if err != nil {
		return err
	}
	if targetChunks > len(chunks) {
		return fmt.Errorf("requested %d chunks, only %d available", targetChunks, len(chunks))
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	loaded := rl.loader.GetLoadedIDs()
	log.Debugf("Setting dictionary size: current=%d chunks, target=%d chunks", len(loaded), targetChunks)

	switch {
	case targetChunks > len(loaded):
		rl.loadAdditional(chunks, targetChunks-len(loaded))
	case targetChunks < len(loaded):
		rl.unloadExcess(loaded, len(loaded)-targetChunks)
	}
	rl.targetChunks = targetChunks
	return nil
}

func (rl *RuntimeLoader) loadAdditional(chunks []ChunkInfo, n int) {
	loaded := 0
	for _, chunk := range chunks {
		if loaded >= n {
			break
		}
		if slices.Contains(rl.loader.GetLoadedIDs(), chunk.ID) {
			continue
		}
		if err := rl.loader.Load(chunk.ID); err != nil {
			log.Warnf("Failed to load chunk %d: %v", chunk.ID, err)
			continue
		}
		loaded++
	}
	log.Debugf("Loaded %d additional chunks", loaded)
}

func (rl *RuntimeLoader) unloadExcess(loadedIDs []int, n int) {
	sort.Sort(sort.Reverse(sort.IntSlice(loadedIDs)))
	unloaded := 0
	for _, id := range loadedIDs {
		if unloaded >= n {
			break
		}
		if err := rl.loader.Evict(id); err != nil {
			log.Warnf("Failed to unload chunk %d: %v", id, err)
			continue
		}
		unloaded++
	}
	log.Debugf("Unloaded %d chunks", unloaded)
}

// GetDictionarySizeOptions returns the cumulative word count for every
// possible chunk count.
func (rl *RuntimeLoader) GetDictionarySizeOptions() ([]DictionarySizeOption, error) {
	chunks, err := rl.loader.GetAvailable()
	if err != nil {
		return nil, err
	}

	options := make([]DictionarySizeOption, 0, len(chunks))
	totalWords := 0
	for i, chunk := range chunks {
		totalWords += chunk.WordCount
		options = append(options, DictionarySizeOption{
			ChunkCount: i + 1,
			WordCount:  totalWords,
			SizeLabel:  fmt.Sprintf("%dK words", totalWords/1000),
		})
	}
	return options, nil
}

// DictionarySizeOption represents a dictionary size option
type DictionarySizeOption struct {
	ChunkCount int    `msgpack:"chunk_count"`
	WordCount  int    `msgpack:"word_count"`
	SizeLabel  string `msgpack:"size_label"`
}

// TargetChunks is the size last set with SetDictionarySize.
func (rl *RuntimeLoader) TargetChunks() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.targetChunks
}

// LoadedChunks is the number of chunks currently loaded.
func (rl *RuntimeLoader) LoadedChunks() int {
	return len(rl.loader.GetLoadedIDs())
}
