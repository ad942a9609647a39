package engine

import (
	"strings"
	"time"

	"github.com/bastiangx/typr/pkg/config"
)

// Settings are the user preferences the session reads.
type Settings struct {
	ShowSuggestions         bool
	AutoComplete            bool
	AutoSpace               bool
	AllowRestart            bool
	DoubleSpaceToPeriod     bool
	SwapPunctuationAndSpace bool

	MultiTapTimeout        time.Duration
	SelectionExpectTimeout time.Duration
	SuggestionsDelay       time.Duration
	RestartDelay           time.Duration

	SentenceSeparators string
}

// DefaultSettings mirrors config.DefaultConfig.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.DefaultConfig().Prediction)
}

// SettingsFromConfig converts the [prediction] section.
func SettingsFromConfig(p config.PredictionConfig) Settings {
	return Settings{
		ShowSuggestions:         p.ShowSuggestions,
		AutoComplete:            p.AutoComplete,
		AutoSpace:               p.AutoSpace,
		AllowRestart:            p.AllowRestart,
		DoubleSpaceToPeriod:     p.DoubleSpaceToPeriod,
		SwapPunctuationAndSpace: p.SwapPunctuationAndSpace,
		MultiTapTimeout:         millis(p.MultiTapTimeoutMs, 700),
		SelectionExpectTimeout:  millis(p.SelectionExpectMs, 1500),
		SuggestionsDelay:        millis(p.SuggestionsDelayMs, 80),
		RestartDelay:            millis(p.RestartDelayMs, 160),
		SentenceSeparators:      p.SentenceSeparators,
	}
}

func millis(v, fallback int) time.Duration {
	if v <= 0 {
		v = fallback
	}
	return time.Duration(v) * time.Millisecond
}

// Keyboard describes the active layout.
type Keyboard struct {
	Locale             string
	SentenceSeparators string
	LeftToRight        bool
	// InnerWordLetters are non-letters that still continue a word, like '.
	InnerWordLetters string
}

func isFrenchLocale(locale string) bool {
	return strings.HasPrefix(strings.ToLower(locale), "fr")
}
