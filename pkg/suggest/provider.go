package suggest

import (
	"strings"
	"unicode"

	"github.com/bastiangx/typr/internal/utils"
	"github.com/bastiangx/typr/pkg/compose"
	"github.com/bastiangx/typr/pkg/config"
	"github.com/bastiangx/typr/pkg/userdict"
	"github.com/charmbracelet/log"
)

// UserWordFrequency is the trie frequency given to learned words.
const UserWordFrequency = 50000

const maxCorrections = 3

// UserWords is the persistent store of learned words.
type UserWords interface {
	Add(word string, frequency int) error
	Remove(word string) error
	Contains(word string) (bool, error)
	Words() (map[string]int, error)
	Bump(word string, kind userdict.AdditionType) (int, error)
}

// Options tune a Provider.
type Options struct {
	MaxSuggestions int
	// MinLearnCount and MinPickCount are the number of times a word must be
	// typed or picked before it is learned.
	MinLearnCount int
	MinPickCount  int
	// Filter drops numbers and symbol runs before any lookup.
	Filter bool
}

func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig())
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxSuggestions: cfg.Dict.MaxSuggestions,
		MinLearnCount:  cfg.Dict.MinLearnCount,
		MinPickCount:   cfg.Dict.MinPickCount,
		Filter:         cfg.Server.EnableFilter,
	}
}

// Provider ranks candidates for the word being composed from the dictionary
// trie, the user dictionary and the next-word statistics.
type Provider struct {
	completer *Completer
	user      UserWords
	next      *NextWords
	opts      Options
}

// NewProvider loads the learned words of user into completer.
func NewProvider(completer *Completer, user UserWords, opts Options) (*Provider, error) {
	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = DefaultOptions().MaxSuggestions
	}
	words, err := user.Words()
	if err != nil {
		return nil, err
	}
	for w, freq := range words {
		completer.AddWord(w, freq)
	}
	log.Debugf("Loaded %d user words", len(words))

	return &Provider{
		completer: completer,
		user:      user,
		next:      NewNextWords(),
		opts:      opts,
	}, nil
}

// Suggestions puts the typed word first, then close corrections when the typed
// word is unknown, then completions. The auto-pick index is 0 for a known
// word, 1 when a correction was found, else -1.
func (p *Provider) Suggestions(word *compose.Word) ([]string, int) {
	typed := word.TypedWord()
	if typed == "" {
		return nil, -1
	}
	out := []string{typed}
	if word.IsAtTagsSearchState() || (p.opts.Filter && !utils.IsValidInput(typed)) {
		return out, -1
	}

	filter := utils.NewSuggestionFilter(typed)
	add := func(s string) bool {
		if len(out) >= p.opts.MaxSuggestions || !filter.ShouldInclude(s) {
			return false
		}
		out = append(out, matchCase(s, word))
		return true
	}

	lastValid := -1
	if p.IsValidWord(typed) {
		lastValid = 0
	} else {
		for _, c := range p.completer.Corrections(typed, maxCorrections) {
			if add(c.Word) && lastValid < 0 {
				lastValid = 1
			}
		}
	}

	for _, c := range p.completer.Complete(typed, p.opts.MaxSuggestions) {
		add(c.Word)
	}
	return out, lastValid
}

// NextSuggestions records committed after the previous word of the sentence
// and predicts what follows it.
func (p *Provider) NextSuggestions(committed string, allUpperCase bool) []string {
	p.next.Observe(committed)
	p.completer.Touch(committed)

	predicted := p.next.Predict(committed, p.opts.MaxSuggestions)
	if allUpperCase {
		for i, w := range predicted {
			predicted[i] = strings.ToUpper(w)
		}
	}
	return predicted
}

func (p *Provider) IsValidWord(word string) bool {
	return p.completer.Contains(word)
}

func (p *Provider) TryLearnNewWord(word string, kind userdict.AdditionType) bool {
	word = strings.TrimSpace(word)
	if !utils.IsValidInput(word) || p.IsValidWord(word) {
		return false
	}
	count, err := p.user.Bump(word, kind)
	if err != nil {
		log.Errorf("Failed to count %s word %q: %v", kind, word, err)
		return false
	}

	threshold := p.opts.MinLearnCount
	if kind == userdict.Picked {
		threshold = p.opts.MinPickCount
	}
	if count < threshold {
		return false
	}
	return p.AddWordToUserDictionary(word)
}

func (p *Provider) AddWordToUserDictionary(word string) bool {
	if err := p.user.Add(word, UserWordFrequency); err != nil {
		log.Errorf("Failed to add %q to the user dictionary: %v", word, err)
		return false
	}
	p.completer.AddWord(word, UserWordFrequency)
	log.Debugf("Learned %q", word)
	return true
}

// RemoveWordFromUserDictionary forgets a learned word. Words of the main
// dictionary stay.
func (p *Provider) RemoveWordFromUserDictionary(word string) {
	known, err := p.user.Contains(word)
	if err != nil {
		log.Errorf("Failed to look up %q: %v", word, err)
		return
	}
	if !known {
		return
	}
	if err := p.user.Remove(word); err != nil {
		log.Errorf("Failed to remove %q from the user dictionary: %v", word, err)
		return
	}
	p.completer.RemoveWord(word)
	p.next.Forget(word)
}

func (p *Provider) ResetNextWordSentence() {
	p.next.Reset()
}

// matchCase upper-cases s for an all caps word and capitalizes it when the
// word started with a capital.
func matchCase(s string, word *compose.Word) string {
	switch {
	case word.IsAllUpperCase() && word.Len() > 1:
		return strings.ToUpper(s)
	case word.IsFirstCharCapitalized():
		r := []rune(s)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	}
	return s
}
