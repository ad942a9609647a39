package server

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bastiangx/typr/internal/logger"
	"github.com/bastiangx/typr/pkg/config"
	"github.com/bastiangx/typr/pkg/editor"
	"github.com/bastiangx/typr/pkg/engine"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"
)

const loopBuffer = 16

var errMaxEvents = errors.New("max events reached")

// Options configure a Server. Zero values get working defaults.
type Options struct {
	Config *config.Config

	// Sizer serves the dictionary events; nil disables them.
	Sizer DictionarySizer

	Clock  engine.Clock
	Logger *log.Logger
}

// Server feeds decoded events to one typing session.
type Server struct {
	session *engine.Session
	ed      *editor.Buffer
	loop    *engine.Loop
	strip   *hintStrip
	sizer   DictionarySizer
	cfg     config.ServerConfig

	in     io.Reader
	enc    *msgpack.Encoder
	events int
	log    *log.Logger
}

// New creates a server reading events from in and writing responses to out.
// A text field is started on an empty buffer so clients can type right away.
func New(provider engine.SuggestionSource, in io.Reader, out io.Writer, opts Options) *Server {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = logger.New("server")
	}

	s := &Server{
		loop:  engine.NewLoop(loopBuffer),
		strip: &hintStrip{},
		sizer: opts.Sizer,
		cfg:   opts.Config.Server,
		in:    in,
		enc:   msgpack.NewEncoder(out),
		log:   opts.Logger,
	}
	s.session = engine.NewSession(provider, engine.Options{
		Settings: engine.SettingsFromConfig(opts.Config.Prediction),
		Clock:    opts.Clock,
		Dispatch: s.loop.Dispatch,
		Strip:    s.strip,
		Logger:   opts.Logger.WithPrefix("engine"),
	})
	s.startField(engine.Field{}, "")
	return s
}

// ApplyConfig hands a reloaded config to the session goroutine. It is safe to
// call from any goroutine, typically a config.Watcher callback.
func (s *Server) ApplyConfig(cfg *config.Config) {
	s.loop.Dispatch(func() {
		s.cfg = cfg.Server
		s.session.ApplySettings(engine.SettingsFromConfig(cfg.Prediction))
		s.log.Debug("Applied reloaded config")
	})
}

// Run serves events until the input ends, ctx is done or max_events events
// were handled.
func (s *Server) Run(ctx context.Context) error {
	s.log.Debug("Starting Server.")
	defer s.session.Close()

	// Signal that the server is ready
	if err := s.send(map[string]string{"status": "ready"}); err != nil {
		return err
	}

	requests := make(chan Request)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(requests)
		return s.read(ctx, requests)
	})
	g.Go(func() error {
		return s.serve(ctx, requests)
	})

	err := g.Wait()
	if errors.Is(err, errMaxEvents) {
		return nil
	}
	return err
}

func (s *Server) read(ctx context.Context, out chan<- Request) error {
	dec := msgpack.NewDecoder(s.in)
	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("decode request: %w", err)
		}
		select {
		case out <- req:
		case <-ctx.Done():
			return nil
		}
	}
}

// serve owns the session: events and fired timers both run here.
func (s *Server) serve(ctx context.Context, requests <-chan Request) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case job := <-s.loop.Jobs():
			job()
			s.autoFlush()
			if err := s.send(s.state("")); err != nil {
				return err
			}
		case req, ok := <-requests:
			if !ok {
				return nil
			}
			if err := s.send(s.handle(req)); err != nil {
				return err
			}
			s.events++
			if s.cfg.MaxEvents > 0 && s.events >= s.cfg.MaxEvents {
				s.log.Infof("Handled %d events, stopping", s.events)
				if c, ok := s.in.(io.Closer); ok {
					c.Close()
				}
				return errMaxEvents
			}
		}
	}
}

func (s *Server) handle(req Request) any {
	var err error
	switch req.Type {
	case EventFieldStart:
		var ft engine.FieldType
		if ft, err = engine.ParseFieldType(req.Field); err == nil {
			s.startField(engine.Field{Type: ft, NoSuggestions: req.NoSuggestions}, req.Text)
		}
	case EventFieldFinish:
		s.session.OnFieldFinished()
	case EventChar, EventSeparator:
		err = s.key(req)
	case EventDelete:
		s.session.OnDelete()
		s.session.OnRelease(engine.KeyDelete)
	case EventFwdDelete:
		s.session.OnForwardDelete()
		s.session.OnRelease(engine.KeyForwardDelete)
	case EventPick:
		err = s.pick(req)
	case EventText:
		s.session.OnText(req.Text)
	case EventSelect:
		if len(req.Selection) != 2 {
			err = fmt.Errorf("select needs [start, end], got %v", req.Selection)
			break
		}
		err = s.ed.Select(req.Selection[0], req.Selection[1])
	case EventAbort:
		s.session.OnAbort(false)
	case EventFlush:
		s.ed.Flush(s.session)
	case EventState:
	case EventDictInfo:
		return s.dictionary(req.ID)
	case EventDictSize:
		if s.sizer == nil {
			err = ErrNoDictionary
			break
		}
		if err = s.sizer.SetDictionarySize(req.Chunks); err == nil {
			return s.dictionary(req.ID)
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownEvent, req.Type)
	}

	if err != nil {
		s.log.Debug("Event failed", "id", req.ID, "type", req.Type, "err", err)
		code := CodeBadRequest
		if errors.Is(err, ErrUnknownEvent) {
			code = CodeUnknownEvent
		}
		return ErrorResponse{ID: req.ID, Error: err.Error(), Code: code}
	}
	s.autoFlush()
	return s.state(req.ID)
}

func (s *Server) key(req Request) error {
	code := rune(req.Code)
	if code <= 0 {
		return fmt.Errorf("invalid key code %d", req.Code)
	}
	if req.Type == EventChar {
		s.session.OnCharacter(code, 0, nil)
	} else {
		s.session.OnSeparator(code)
	}
	s.session.OnRelease(code)
	return nil
}

// pick commits the given text, or the strip entry at the index when no text
// is sent.
func (s *Server) pick(req Request) error {
	text := req.Text
	if text == "" {
		suggestions := s.session.Suggestions()
		if req.Index < 0 || req.Index >= len(suggestions) {
			return fmt.Errorf("no suggestion at index %d", req.Index)
		}
		text = suggestions[req.Index]
	}
	s.session.PickSuggestion(req.Index, text)
	return nil
}

func (s *Server) startField(f engine.Field, text string) {
	s.ed = editor.New(text)
	s.session.Attach(s.ed)
	s.session.OnFieldStarted(f)
	s.autoFlush()
}

func (s *Server) autoFlush() {
	if !s.cfg.ManualFlush {
		s.ed.Flush(s.session)
	}
}

func (s *Server) state(id string) Response {
	snap := s.session.Snapshot()
	selStart, selEnd := s.ed.Selection()
	compStart, compEnd := s.ed.Composing()
	return Response{
		ID:          id,
		Text:        s.ed.Text(),
		SelStart:    selStart,
		SelEnd:      selEnd,
		CompStart:   compStart,
		CompEnd:     compEnd,
		Suggestions: snap.Suggestions,
		Highlight:   snap.Highlight,
		Word:        snap.Word,
		Revert:      snap.RevertLength,
		Pending:     s.ed.Pending(),
		Hint:        s.strip.hint,
	}
}

func (s *Server) dictionary(id string) any {
	if s.sizer == nil {
		return ErrorResponse{ID: id, Error: ErrNoDictionary.Error(), Code: CodeBadRequest}
	}
	options, err := s.sizer.GetDictionarySizeOptions()
	if err != nil {
		return ErrorResponse{ID: id, Error: err.Error(), Code: CodeInternal}
	}
	return DictionaryResponse{
		ID:              id,
		Status:          "ok",
		CurrentChunks:   s.sizer.LoadedChunks(),
		AvailableChunks: len(options),
		Options:         options,
	}
}

func (s *Server) send(v any) error {
	if err := s.enc.Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

// hintStrip keeps the add-to-dictionary hint; suggestions are read from the
// session snapshot.
type hintStrip struct {
	hint string
}

func (h *hintStrip) SetSuggestions([]string, int)        {}
func (h *hintStrip) ReplaceTypedWord(string)             {}
func (h *hintStrip) ShowAddToDictionaryHint(word string) { h.hint = word }
func (h *hintStrip) DismissAddToDictionaryHint()         { h.hint = "" }
