// Package dictionary reads word lists into a WordSink: chunked binary files
// named dict_0001.bin, dict_0002.bin, ... and plain text lists.
package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrNoChunks is returned when a directory holds no chunk files.
var ErrNoChunks = errors.New("dictionary: no chunk files found")

// WordSink receives loaded words.
type WordSink interface {
	AddWord(word string, frequency int)
	RemoveWord(word string)
}

// Entry is one word of a chunk. Rank 1 is the most frequent word.
type Entry struct {
	Word string
	Rank uint16
}

// Score converts a rank to the frequency stored in the trie.
func Score(rank uint16) int { return 65536 - int(rank) }

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID        int
	Filename  string
	WordCount int
}

// LoaderStats provides statistics about the loading process
type LoaderStats struct {
	LoadedWords     int
	LoadedChunks    int
	AvailableChunks int
	MaxFrequency    int
}

// Loader manages loading and evicting dictionary chunks
type Loader struct {
	dirPath  string
	maxWords int
	sink     WordSink

	mu           sync.RWMutex
	chunkWords   map[int][]string
	loadedWords  int
	maxFrequency int
}

// NewLoader creates a loader for the chunks in dirPath. maxWords limits the
// initial load; zero loads everything.
func NewLoader(dirPath string, maxWords int, sink WordSink) *Loader {
	return &Loader{
		dirPath:    dirPath,
		maxWords:   maxWords,
		sink:       sink,
		chunkWords: make(map[int][]string),
	}
}

// ChunkFilename is the file name of chunk id.
func ChunkFilename(id int) string { return fmt.Sprintf("dict_%04d.bin", id) }

// GetAvailable scans the directory for chunk files, sorted by ID.
func (l *Loader) GetAvailable() ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(l.dirPath, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
		}
		chunks = append(chunks, ChunkInfo{ID: id, Filename: file, WordCount: wordCount})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})
	return chunks, nil
}

func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// LoadInitial loads chunks in ID order until maxWords is reached.
func (l *Loader) LoadInitial() error {
	chunks, err := l.GetAvailable()
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return fmt.Errorf("%s: %w", l.dirPath, ErrNoChunks)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	for _, chunk := range chunks {
		if l.maxWords > 0 && l.loaded() >= l.maxWords {
			break
		}
		if err := l.Load(chunk.ID); err != nil {
			log.Errorf("Failed to load chunk %d: %v", chunk.ID, err)
		}
	}
	return nil
}

func (l *Loader) loaded() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loadedWords
}

// Load reads chunk id into the sink. Loading a loaded chunk is a no-op.
func (l *Loader) Load(id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.chunkWords[id]; ok {
		return nil
	}

	filename := filepath.Join(l.dirPath, ChunkFilename(id))
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	entries, err := ReadChunk(bufio.NewReader(file))
	if err != nil {
		return fmt.Errorf("chunk %d: %w", id, err)
	}

	words := make([]string, 0, len(entries))
	for _, e := range entries {
		score := Score(e.Rank)
		l.sink.AddWord(e.Word, score)
		words = append(words, e.Word)
		if score > l.maxFrequency {
			l.maxFrequency = score
		}
	}
	l.chunkWords[id] = words
	l.loadedWords += len(words)

	log.Debugf("Chunk %d loaded: %d words", id, len(words))
	return nil
}

// Evict removes the words of chunk id from the sink.
func (l *Loader) Evict(id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	words, ok := l.chunkWords[id]
	if !ok {
		return fmt.Errorf("chunk %d is not loaded", id)
	}
	for _, w := range words {
		l.sink.RemoveWord(w)
	}
	delete(l.chunkWords, id)
	l.loadedWords -= len(words)

	log.Debugf("Unloaded chunk %d", id)
	return nil
}

// GetLoadedIDs returns the loaded chunk IDs in ascending order.
func (l *Loader) GetLoadedIDs() []int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]int, 0, len(l.chunkWords))
	for id := range l.chunkWords {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Stats returns current loading statistics
func (l *Loader) Stats() LoaderStats {
	chunks, _ := l.GetAvailable()

	l.mu.RLock()
	defer l.mu.RUnlock()
	return LoaderStats{
		LoadedWords:     l.loadedWords,
		LoadedChunks:    len(l.chunkWords),
		AvailableChunks: len(chunks),
		MaxFrequency:    l.maxFrequency,
	}
}

// ReadChunk decodes a chunk: an int32 word count, then per word a uint16
// byte length, the UTF-8 bytes and a uint16 rank, all little endian.
func ReadChunk(r io.Reader) ([]Entry, error) {
	var total int32
	if err := binary.Read(r, binary.LittleEndian, &total); err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if total < 0 || total > maxChunkWords {
		return nil, fmt.Errorf("invalid word count %d", total)
	}

	entries := make([]Entry, 0, total)
	for i := 0; i < int(total); i++ {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read word length: %w", err)
		}
		word := make([]byte, wordLen)
		if _, err := io.ReadFull(r, word); err != nil {
			return nil, fmt.Errorf("failed to read word: %w", err)
		}
		var rank uint16
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("failed to read rank: %w", err)
		}
		entries = append(entries, Entry{Word: string(word), Rank: rank})
	}
	return entries, nil
}

// WriteChunk encodes entries in the format ReadChunk reads.
func WriteChunk(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if len(e.Word) > math.MaxUint16 {
			return fmt.Errorf("word too long: %d bytes", len(e.Word))
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(e.Word))); err != nil {
			return err
		}
		if _, err := bw.WriteString(e.Word); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, e.Rank); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadText parses a plain word list. Each line holds a word and an optional
// frequency; lines without one are ranked by position. Blank lines and lines
// starting with # are skipped.
func ReadText(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	rank := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		rank++
		e := Entry{Word: fields[0], Rank: clampRank(rank)}
		if len(fields) > 1 {
			if freq, err := strconv.Atoi(fields[1]); err == nil {
				e.Rank = clampRank(65536 - freq)
			}
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return entries, nil
}

func clampRank(rank int) uint16 {
	if rank < 1 {
		return 1
	}
	if rank > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(rank)
}

// LoadFile loads one chunk or text file straight into sink and returns the
// number of words read.
func LoadFile(path string, sink WordSink) (int, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return 0, err
	}
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var entries []Entry
	switch format {
	case FormatChunk:
		entries, err = ReadChunk(bufio.NewReader(file))
	case FormatText:
		entries, err = ReadText(file)
	default:
		return 0, fmt.Errorf("%s: %s is not a word list", path, format)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	for _, e := range entries {
		sink.AddWord(e.Word, Score(e.Rank))
	}
	log.Debugf("Loaded %d words from %s (%s)", len(entries), path, format)
	return len(entries), nil
}

// BuildChunks splits a text word list into chunk files of chunkSize words in
// dirPath and returns the number of chunks written.
func BuildChunks(textPath, dirPath string, chunkSize int) (int, error) {
	if chunkSize <= 0 {
		return 0, fmt.Errorf("invalid chunk size %d", chunkSize)
	}
	file, err := os.Open(textPath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	entries, err := ReadText(file)
	if err != nil {
		return 0, err
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Rank < entries[j].Rank })

	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dirPath, err)
	}

	written := 0
	for start := 0; start < len(entries); start += chunkSize {
		end := min(start+chunkSize, len(entries))
		written++
		if err := writeChunkFile(filepath.Join(dirPath, ChunkFilename(written)), entries[start:end]); err != nil {
			return written - 1, err
		}
	}
	log.Infof("Wrote %d chunks with %d words to %s", written, len(entries), dirPath)
	return written, nil
}

func writeChunkFile(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteChunk(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
