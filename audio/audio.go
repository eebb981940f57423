// SPDX-License-Identifier: EPL-2.0

// Package audio is the streaming core: a Source yields interleaved float32
// samples in [-1, 1], and Resampler and MonoMixer wrap a Source to change
// its rate or fold its channels. Decoders for concrete formats live under
// formats/ and are found by extension through a Registry.
package audio

import (
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)
	BufSize() int
	// Close releases any resources.
	Close() error
}

// BitDepther is implemented by sources that know the bit depth of the
// stream they decode. Sources without it are treated as 16-bit.
type BitDepther interface {
	BitDepth() int
}

// BitDepthOf returns the bit depth reported by src, or 16.
func BitDepthOf(src Source) int {
	if bd, ok := src.(BitDepther); ok && bd.BitDepth() > 0 {
		return bd.BitDepth()
	}
	return 16
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
// Keys are case-insensitive.
type Registry struct {
	codecs map[string]Decoder
	mtx    *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.codecs[strings.ToLower(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// Lookup finds the decoder registered for the extension of path.
func (r *Registry) Lookup(path string) (Decoder, bool) {
	return r.Get(FormatOf(path))
}

// Formats lists the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return slices.Sorted(maps.Keys(r.codecs))
}

// FormatOf returns the lower-cased extension of path without the leading dot.
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
