package magika

import (
	"io"

	"github.com/go-magika/magika/features"
)

// fileSource adapts anything that supports ReadAt (os.File, afero.File)
// plus a known size into a features.ByteSource.
type fileSource struct {
	ra   io.ReaderAt
	size int64
}

func (f fileSource) Len() int64 { return f.size }

func (f fileSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= f.size {
		return 0, nil
	}
	n, err := f.ra.ReadAt(p, off)
	if err == io.EOF {
		err = nil
	}
	return n, err
}

// streamSource accumulates a leading window of up to blockSize bytes
// eagerly, then keeps only a rolling trailing window of up to blockSize
// bytes as the rest of the stream is drained -- it never materializes
// the full payload, satisfying the streaming optimization in spec.md
// §4.6. Middle-block and offset-probe sampling are not supported for
// streams (current models need neither: mid_size == 0 and
// use_inputs_at_offsets == false).
type streamSource struct {
	size int64
	lead []byte
	tail []byte // ring buffer content, logically the last len(tail) bytes
}

// drainStream reads r in full (size is already known, e.g. from a
// content-length) while retaining only the leading and trailing
// blockSize windows.
func drainStream(r io.Reader, size int64, blockSize int) (*streamSource, error) {
	s := &streamSource{size: size}
	buf := make([]byte, 32*1024)
	var read int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			read += int64(n)
			chunk := buf[:n]

			if len(s.lead) < blockSize {
				need := blockSize - len(s.lead)
				if need > len(chunk) {
					need = len(chunk)
				}
				s.lead = append(s.lead, chunk[:need]...)
			}

			s.tail = append(s.tail, chunk...)
			if len(s.tail) > blockSize {
				s.tail = s.tail[len(s.tail)-blockSize:]
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *streamSource) Len() int64 { return s.size }

func (s *streamSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= s.size {
		return 0, nil
	}
	// The only windows ever requested are the leading block (offset near
	// 0) and the trailing block (offset near size-blockSize). When
	// blockSize < size < 2*blockSize, those two windows overlap and
	// s.lead also spans the trailing offset -- but only s.tail holds the
	// true, right-aligned trailing bytes, so it must be checked first.
	tailStart := s.size - int64(len(s.tail))
	if off >= tailStart {
		n := copy(p, s.tail[off-tailStart:])
		return n, nil
	}
	if off < int64(len(s.lead)) {
		n := copy(p, s.lead[off:])
		return n, nil
	}
	return 0, nil
}
