// Package suggest is the core, providing the actual trie traversals and retrievals for prefix inserts and filtering them.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns suggestions for a given prefix with a limit
	Complete(prefix string, limit int) []Suggestion

	// Corrections returns dictionary words close to a possibly misspelled word
	Corrections(word string, limit int) []Suggestion

	// AddWord adds a word with its frequency to the completer
	AddWord(word string, frequency int)

	// RemoveWord drops a word
	RemoveWord(word string)

	// Contains reports an exact (case insensitive) dictionary word
	Contains(word string) bool

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}
