// Package features implements Magika's deterministic byte-sampling
// feature extraction: the step that must be bit-exact reproducible
// across implementations, since any drift silently degrades the
// trained model's accuracy.
package features

import (
	"bytes"

	"github.com/go-magika/magika/config"
	"github.com/go-magika/magika/errkind"
)

// ByteSource is the capability FeatureExtractor needs from its input: a
// known length and the ability to read a bounded window at an offset.
// BytesSource implements it for in-memory buffers; the magika package
// adapts path-backed files (os.File, afero.File) and bounded stream
// accumulators to it.
type ByteSource interface {
	// Len returns the total number of bytes available.
	Len() int64
	// ReadAt reads up to len(p) bytes starting at off, the same
	// contract as io.ReaderAt except that reads partially or fully out
	// of [0, Len()) are clipped rather than erroring.
	ReadAt(p []byte, off int64) (int, error)
}

// BytesSource adapts a plain []byte to ByteSource.
type BytesSource []byte

func (b BytesSource) Len() int64 { return int64(len(b)) }

func (b BytesSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(b)) {
		return 0, nil
	}
	n := copy(p, b[off:])
	return n, nil
}

// asciiWhitespace is the whitespace set trimmed from the beginning and
// end blocks: tab, LF, vertical tab, form feed, CR, space.
const asciiWhitespace = "\t\n\v\f\r "

// Vector is a flat integer feature sequence: beginning block, middle
// block, end block, then offset probes, each slot holding either a byte
// value in 0..255 or cfg.PaddingToken.
type Vector struct {
	Beg          []int32
	Mid          []int32
	End          []int32
	OffsetProbes []int32

	// firstBlock holds the untrimmed leading block read from the
	// source; the facade's below-min-size short-circuit needs the raw
	// bytes (not the trimmed/padded feature slots) to attempt a UTF-8
	// decode.
	firstBlock []byte
}

// FirstBlock exposes the raw (untrimmed) leading block of bytes sampled
// for the beginning feature window.
func (v Vector) FirstBlock() []byte { return v.firstBlock }

// Flatten returns the feature vector in the wire order the model
// expects: beg, mid, end, then offset probes (only when the owning
// config enabled them).
func (v Vector) Flatten() []int32 {
	out := make([]int32, 0, len(v.Beg)+len(v.Mid)+len(v.End)+len(v.OffsetProbes))
	out = append(out, v.Beg...)
	out = append(out, v.Mid...)
	out = append(out, v.End...)
	out = append(out, v.OffsetProbes...)
	return out
}

// Extract samples src according to cfg and produces a Vector. src.Len()
// must already reflect the input's total size; Extract never touches
// more than 2*cfg.BlockSize + cfg.MidSize + 8*len(cfg.OffsetProbes)
// bytes regardless of src.Len().
func Extract(cfg config.Config, src ByteSource) (Vector, error) {
	size := src.Len()
	er := &errReader{src: src, size: size}

	beg := er.readAt(0, cfg.BlockSize)
	mid := er.readAt((size-int64(cfg.MidSize))/2, cfg.MidSize)
	end := er.readAt(size-int64(cfg.BlockSize), cfg.BlockSize)

	v := build(cfg, beg, mid, end)

	if cfg.UseInputsAtOffsets {
		v.OffsetProbes = make([]int32, 0, 8*len(cfg.OffsetProbes))
		for _, off := range cfg.OffsetProbes {
			probe := er.readAt(off, 8)
			if len(probe) < 8 {
				probe = nil
			}
			v.OffsetProbes = append(v.OffsetProbes, padInt32(cfg.PaddingToken, probe, 0, 8)...)
		}
	}

	if er.err != nil {
		return Vector{}, er.err
	}
	return v, nil
}

// build constructs the trimmed, aligned, padded Beg/Mid/End slots from
// the raw beg/mid/end windows.
func build(cfg config.Config, beg, mid, end []byte) Vector {
	firstBlock := beg

	beg = bytes.TrimLeft(beg, asciiWhitespace)
	end = bytes.TrimRight(end, asciiWhitespace)
	beg = safeSlice(beg, 0, cfg.BegSize)
	end = safeSlice(end, len(end)-cfg.EndSize, len(end))

	return Vector{
		firstBlock: firstBlock,
		Beg:        padInt32(cfg.PaddingToken, beg, 0, cfg.BegSize),
		Mid:        padInt32(cfg.PaddingToken, mid, (cfg.MidSize-len(mid))/2, cfg.MidSize),
		End:        padInt32(cfg.PaddingToken, end, cfg.EndSize-len(end), cfg.EndSize),
	}
}

// errReader wraps a ByteSource and accumulates the first error seen
// across a sequence of reads, so the calling code can issue several
// reads and check once at the end. It also silently clips out-of-range
// reads instead of erroring, per spec.md §4.3's edge-case rules.
type errReader struct {
	src  ByteSource
	size int64
	err  error
}

func (e *errReader) readAt(off int64, n int) []byte {
	if e.err != nil || n <= 0 || off >= e.size {
		return nil
	}
	if off < 0 {
		n += int(off)
		off = 0
	}
	if n <= 0 {
		return nil
	}
	if remain := e.size - off; int64(n) > remain {
		n = int(remain)
	}
	if n <= 0 {
		return nil
	}
	b := make([]byte, n)
	got, err := e.src.ReadAt(b, off)
	if err != nil {
		e.err = errkind.Newf(errkind.IOError, err, "read %d bytes at %d", n, off)
		return nil
	}
	return b[:got]
}

// padInt32 converts b into int32 slots, padding with paddingToken: first
// `prefix` slots, then every byte of b, then more padding until the
// result has length `size`.
func padInt32(paddingToken int, b []byte, prefix, size int) []int32 {
	r := make([]int32, 0, size)
	for len(r) < prefix {
		r = append(r, int32(paddingToken))
	}
	for _, bb := range b {
		r = append(r, int32(bb))
	}
	for len(r) < size {
		r = append(r, int32(paddingToken))
	}
	return r
}

// safeSlice returns b[from:to], silently clipping out-of-bound indices
// (this happens when the input has fewer bytes than the sampling size).
func safeSlice(b []byte, from, to int) []byte {
	if from < 0 {
		from = 0
	}
	if to > len(b) {
		to = len(b)
	}
	if from > to {
		from = to
	}
	return b[from:to]
}
