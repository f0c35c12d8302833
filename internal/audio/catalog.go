package audio

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"

	"focusflow/internal/errors"
	"focusflow/internal/logging"
)

// Kind names a category of notification sound.
type Kind string

const (
	KindDefault     Kind = "default"
	KindOneMinute   Kind = "1min"
	KindFiveMinutes Kind = "5min"
	KindTimeout     Kind = "timeout"
	KindBreakStart  Kind = "break-start"
	KindBreakEnd    Kind = "break-end"
	KindMemo        Kind = "memo"
	KindPraise1     Kind = "praise-1"
	KindPraise2     Kind = "praise-2"
	KindStart       Kind = "start"
)

// soundFiles maps each alert kind to its convention-based file name inside
// the sound directory.
var soundFiles = map[Kind]string{
	KindDefault:     "alert.mp3",
	KindOneMinute:   "1min.mp3",
	KindFiveMinutes: "5min.mp3",
	KindTimeout:     "timeout.mp3",
	KindBreakStart:  "break_start.mp3",
	KindBreakEnd:    "break_end.mp3",
	KindMemo:        "memo_save.mp3",
	KindPraise1:     "praise_1.mp3",
	KindPraise2:     "praise_2.mp3",
	KindStart:       "start.mp3",
}

// catalogFormat is the shared output format every clip is resampled into.
var catalogFormat = beep.Format{
	SampleRate:  44100,
	NumChannels: 2,
	Precision:   2,
}

// warmupWindow is how much of each clip the silent unlock plays.
const warmupWindow = 100 * time.Millisecond

// Catalog holds the decoded sound buffers, loaded once at startup and
// read-only afterward.
type Catalog struct {
	buffers map[Kind]*beep.Buffer
}

// LoadCatalog decodes the fixed sound set from dir. All decodes run in
// parallel; individual failures are logged and leave that kind absent, they
// never fail the whole load.
func LoadCatalog(dir string) *Catalog {
	catalog := &Catalog{
		buffers: make(map[Kind]*beep.Buffer),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for kind, file := range soundFiles {
		wg.Add(1)
		go func(kind Kind, path string) {
			defer wg.Done()
			buffer, err := decodeClip(path)
			if err != nil {
				logging.Debugf("audio: could not load sound %q from %s: %v\n", kind, path, err)
				return
			}
			mu.Lock()
			catalog.buffers[kind] = buffer
			mu.Unlock()
			logging.Debugf("audio: %s is ready\n", kind)
		}(kind, filepath.Join(dir, file))
	}
	wg.Wait()

	return catalog
}

// decodeClip reads and decodes one audio file into a buffer in the shared
// catalog format.
func decodeClip(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewAudioError("open sound file", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		streamer, format, err = mp3.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, errors.NewAudioError("decode sound file", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(catalogFormat)
	if format.SampleRate == catalogFormat.SampleRate {
		buffer.Append(streamer)
	} else {
		buffer.Append(beep.Resample(4, format.SampleRate, catalogFormat.SampleRate, streamer))
	}
	return buffer, nil
}

// Lookup returns the buffer for kind, falling back to the default kind when
// the requested one failed to load. The second return is false when neither
// exists.
func (c *Catalog) Lookup(kind Kind) (*beep.Buffer, bool) {
	if buffer, ok := c.buffers[kind]; ok {
		return buffer, true
	}
	if buffer, ok := c.buffers[KindDefault]; ok {
		return buffer, true
	}
	return nil, false
}

// Kinds returns the kinds that loaded successfully.
func (c *Catalog) Kinds() []Kind {
	kinds := make([]Kind, 0, len(c.buffers))
	for kind := range c.buffers {
		kinds = append(kinds, kind)
	}
	return kinds
}

// Len returns the number of loaded clips.
func (c *Catalog) Len() int {
	return len(c.buffers)
}
