package userdict

import "sync"

// Memory is a non-persistent user dictionary, used when no database path is
// configured.
type Memory struct {
	mu     sync.RWMutex
	words  map[string]int
	counts map[string][2]int
}

func NewMemory() *Memory {
	return &Memory{
		words:  make(map[string]int),
		counts: make(map[string][2]int),
	}
}

func (m *Memory) Add(word string, frequency int) error {
	word = normalize(word)
	if word == "" {
		return ErrEmptyWord
	}
	m.mu.Lock()
	m.words[word] = frequency
	m.mu.Unlock()
	return nil
}

func (m *Memory) Remove(word string) error {
	word = normalize(word)
	if word == "" {
		return ErrEmptyWord
	}
	m.mu.Lock()
	delete(m.words, word)
	delete(m.counts, word)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Contains(word string) (bool, error) {
	m.mu.RLock()
	_, ok := m.words[normalize(word)]
	m.mu.RUnlock()
	return ok, nil
}

func (m *Memory) Words() (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int, len(m.words))
	for w, f := range m.words {
		out[w] = f
	}
	return out, nil
}

func (m *Memory) Bump(word string, kind AdditionType) (int, error) {
	word = normalize(word)
	if word == "" {
		return 0, ErrEmptyWord
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.counts[word]
	c[kind]++
	m.counts[word] = c
	return c[kind], nil
}

func (m *Memory) Close() error { return nil }
