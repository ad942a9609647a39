package dictionary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileFormat is the kind of file found in a data directory.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	// FormatChunk is the chunked binary format.
	FormatChunk
	// FormatText is a plain text word list.
	FormatText
	// FormatUserDB is a sqlite user dictionary.
	FormatUserDB
)

var formatNames = [...]string{
	FormatUnknown: "unknown",
	FormatChunk:   "binary chunk",
	FormatText:    "text list",
	FormatUserDB:  "user dictionary",
}

func (f FileFormat) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return formatNames[FormatUnknown]
	}
	return formatNames[f]
}

// maxChunkWords guards against reading garbage as a header.
const maxChunkWords = 1000000

var sqliteMagic = []byte("SQLite format 3\x00")

// DetectFileFormat sniffs the head of filename. Chunks need a .bin name and a
// sane word count, text lists a .txt name and no NUL bytes.
func DetectFileFormat(filename string) (FileFormat, error) {
	file, err := os.Open(filename)
	if err != nil {
		return FormatUnknown, err
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FormatUnknown, fmt.Errorf("read %s: %w", filename, err)
	}
	head = head[:n]
	if n == 0 {
		return FormatUnknown, fmt.Errorf("%s is empty", filename)
	}
	if bytes.HasPrefix(head, sqliteMagic) {
		return FormatUserDB, nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".bin":
		if n < 4 {
			return FormatUnknown, fmt.Errorf("%s: truncated chunk header", filename)
		}
		count := int32(binary.LittleEndian.Uint32(head))
		if count < 0 || count > maxChunkWords {
			return FormatUnknown, fmt.Errorf("%s: invalid word count %d", filename, count)
		}
		return FormatChunk, nil
	case ".txt":
		if bytes.IndexByte(head, 0) >= 0 {
			return FormatUnknown, fmt.Errorf("%s: binary data in text list", filename)
		}
		return FormatText, nil
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}
