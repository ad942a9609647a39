// Package cli is an interactive typing console for debugging the session in
// real-time. Every typed line is fed key by key, as a keyboard would.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/bastiangx/typr/internal/logger"
	"github.com/bastiangx/typr/pkg/config"
	"github.com/bastiangx/typr/pkg/editor"
	"github.com/bastiangx/typr/pkg/engine"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

const (
	deleteKey  = '<'
	commandKey = '#'
	addCommand = "#+"
)

// Options configure an InputHandler. Zero values get working defaults.
type Options struct {
	Clock  engine.Clock
	Logger *log.Logger
}

// InputHandler processes user input from stdin: letters compose, other
// characters are separators, < deletes, #N picks suggestion N and #+
// accepts the add-to-dictionary hint.
type InputHandler struct {
	session    *engine.Session
	ed         *editor.Buffer
	loop       *engine.Loop
	strip      *stripView
	limit      int
	showEditor bool

	in  io.Reader
	out io.Writer
	log *log.Logger
}

// NewInputHandler starts a text field on an empty buffer.
func NewInputHandler(provider engine.SuggestionSource, cfg *config.Config, in io.Reader, out io.Writer, opts Options) *InputHandler {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default("cli")
	}

	h := &InputHandler{
		ed:         editor.New(""),
		loop:       engine.NewLoop(64),
		strip:      &stripView{highlight: -1},
		limit:      cfg.CLI.DefaultLimit,
		showEditor: cfg.CLI.ShowEditor,
		in:         in,
		out:        out,
		log:        opts.Logger,
	}
	h.session = engine.NewSession(provider, engine.Options{
		Settings: engine.SettingsFromConfig(cfg.Prediction),
		Clock:    opts.Clock,
		Dispatch: h.loop.Dispatch,
		Strip:    h.strip,
		Logger:   opts.Logger.WithPrefix("engine"),
	})
	h.session.Attach(h.ed)
	h.session.OnFieldStarted(engine.Field{Type: engine.FieldText})
	return h
}

// Start begins the interface loop. It returns when the input ends or ctx is
// done.
func (h *InputHandler) Start(ctx context.Context) error {
	defer h.session.Close()
	fmt.Fprintln(h.out, "typr CLI [BETA]")
	fmt.Fprintln(h.out, "type and press Enter; < deletes, #N picks a suggestion (Ctrl+C to exit):")

	lines := make(chan string)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(lines)
		scanner := bufio.NewScanner(h.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return nil
			}
		}
		return scanner.Err()
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case job := <-h.loop.Jobs():
				job()
				h.ed.Flush(h.session)
				h.render()
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				h.handleLine(line)
				h.render()
			}
		}
	})
	return g.Wait()
}

// handleLine runs a command or types the line.
func (h *InputHandler) handleLine(line string) {
	if line == addCommand {
		if h.strip.hint == "" {
			h.log.Warn("No word to add")
			return
		}
		h.session.AddWordToDictionary(h.strip.hint)
		return
	}
	if index, ok := parsePick(line); ok {
		h.pick(index)
		return
	}
	for _, r := range line {
		h.key(r)
	}
}

func parsePick(line string) (int, bool) {
	if len(line) < 2 || line[0] != commandKey {
		return 0, false
	}
	index, err := strconv.Atoi(strings.TrimSpace(line[1:]))
	if err != nil {
		return 0, false
	}
	return index, true
}

func (h *InputHandler) pick(index int) {
	if index < 0 || index >= len(h.strip.suggestions) {
		h.log.Warnf("No suggestion #%d", index)
		return
	}
	h.session.PickSuggestion(index, h.strip.suggestions[index])
	h.settle()
}

// key presses and releases one key, then lets the editor report back.
func (h *InputHandler) key(r rune) {
	switch {
	case r == deleteKey:
		h.session.OnDelete()
		r = engine.KeyDelete
	case unicode.IsLetter(r) || r == '\'':
		h.session.OnCharacter(r, 0, nil)
	default:
		h.session.OnSeparator(r)
	}
	h.session.OnRelease(r)
	h.settle()
}

// settle delivers selection changes and runs the timers that already fired.
func (h *InputHandler) settle() {
	h.ed.Flush(h.session)
	for {
		select {
		case job := <-h.loop.Jobs():
			job()
			h.ed.Flush(h.session)
		default:
			return
		}
	}
}

func (h *InputHandler) render() {
	if h.showEditor {
		fmt.Fprintln(h.out, renderEditor(h.ed))
	}
	fmt.Fprintln(h.out, renderStrip(h.strip, h.limit))
	if h.strip.hint != "" {
		fmt.Fprintln(h.out, renderHint(h.strip.hint))
	}
}
