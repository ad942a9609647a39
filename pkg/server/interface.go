/*
Package server drives a typing session over msgpack IPC.

Clients stream msgpack encoded events on stdin and receive one msgpack response
per event on stdout. The server owns an in-memory editor buffer standing in for
the host text field, so every response carries the field text, the selection,
the composing region and the suggestion strip.

# IPC

Each event has an ID, a type and the fields that type needs:

	{"id": "1", "t": "field_start", "f": "text", "s": "Hello "}
	{"id": "2", "t": "char", "c": 119}
	{"id": "3", "t": "sep", "c": 32}

The server responds with the editor state after the event:

	{"id": "3", "text": "Hello we ", "sel_start": 9, "sel_end": 9, "comp_start": -1, "comp_end": -1,
	 "suggestions": ["are"], "highlight": -1, "word": "", "revert": 0}

Suggestion refreshes run on a timer. When one fires the server pushes a
response with an empty ID.

# Message Types

Session events: field_start, field_finish, char, sep, delete, fwd_delete,
pick, text, select, abort, flush and state.

The editor reports selection changes asynchronously. After each event the
server delivers them back to the session, unless the manual_flush option is
set, in which case clients send flush themselves. This lets a client replay
the races a real editor produces.

Dictionary events adjust the number of loaded chunks at runtime:

	{"id": "9", "t": "dict_info"}
	{"id": "10", "t": "dict_size", "n": 5}

Errors are reported with the event ID, a message and a code.
*/
package server

import (
	"errors"

	"github.com/bastiangx/typr/pkg/dictionary"
)

// Event types.
const (
	EventFieldStart  = "field_start"
	EventFieldFinish = "field_finish"
	EventChar        = "char"
	EventSeparator   = "sep"
	EventDelete      = "delete"
	EventFwdDelete   = "fwd_delete"
	EventPick        = "pick"
	EventText        = "text"
	EventSelect      = "select"
	EventAbort       = "abort"
	EventFlush       = "flush"
	EventState       = "state"
	EventDictInfo    = "dict_info"
	EventDictSize    = "dict_size"
)

// Error codes.
const (
	CodeBadRequest   = 400
	CodeUnknownEvent = 404
	CodeInternal     = 500
)

var (
	// ErrUnknownEvent is reported for an unrecognized event type.
	ErrUnknownEvent = errors.New("unknown event type")
	// ErrNoDictionary is reported for dictionary events when no chunked
	// dictionary is loaded.
	ErrNoDictionary = errors.New("no chunked dictionary loaded")
)

// Request is one client event.
type Request struct {
	ID   string `msgpack:"id"`
	Type string `msgpack:"t"`

	// Code is the key code for char and sep.
	Code int32 `msgpack:"c,omitempty"`

	// Index is the suggestion index for pick.
	Index int `msgpack:"i,omitempty"`

	// Text is the text for text, the picked word for pick and the initial
	// field content for field_start.
	Text string `msgpack:"s,omitempty"`

	// Selection is [start, end] for select.
	Selection []int `msgpack:"sel,omitempty"`

	// Field is the field type name for field_start.
	Field         string `msgpack:"f,omitempty"`
	NoSuggestions bool   `msgpack:"ns,omitempty"`

	// Chunks is the chunk count for dict_size.
	Chunks int `msgpack:"n,omitempty"`
}

// Response is the editor and strip state after an event. Pending counts
// selection changes not yet delivered to the session.
type Response struct {
	ID          string   `msgpack:"id"`
	Text        string   `msgpack:"text"`
	SelStart    int      `msgpack:"sel_start"`
	SelEnd      int      `msgpack:"sel_end"`
	CompStart   int      `msgpack:"comp_start"`
	CompEnd     int      `msgpack:"comp_end"`
	Suggestions []string `msgpack:"suggestions"`
	Highlight   int      `msgpack:"highlight"`
	Word        string   `msgpack:"word"`
	Revert      int      `msgpack:"revert"`
	Pending     int      `msgpack:"pending"`
	Hint        string   `msgpack:"hint,omitempty"`
}

// DictionaryResponse answers dict_info and dict_size.
type DictionaryResponse struct {
	ID              string                            `msgpack:"id"`
	Status          string                            `msgpack:"status"`
	CurrentChunks   int                               `msgpack:"current_chunks"`
	AvailableChunks int                               `msgpack:"available_chunks"`
	Options         []dictionary.DictionarySizeOption `msgpack:"options,omitempty"`
}

// ErrorResponse holds basic error information for a failed event
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// DictionarySizer resizes the loaded dictionary.
type DictionarySizer interface {
	SetDictionarySize(chunks int) error
	GetDictionarySizeOptions() ([]dictionary.DictionarySizeOption, error)
	LoadedChunks() int
}
