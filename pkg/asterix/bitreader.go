package asterix

import (
	"io"
	"strings"
)

// BitReader reads MSB-first bits out of an underlying byte stream. Bytes are
// fetched lazily, one at a time, into a one-byte accumulator; bits are
// consumed from the top of that accumulator down.
//
// Byte-level operations (ReadString) are only valid when IsByteAligned
// reports true. Calling them otherwise is a programming error, not a
// reportable DecodeError, matching the wire contract in the runtime design:
// strings only ever appear at byte-aligned offsets by schema construction.
type BitReader struct {
	r        io.Reader
	buf      byte
	bitsLeft int
	one      [1]byte
}

// NewBitReader wraps r for MSB-first bit reads.
func NewBitReader(r io.Reader) *BitReader {
	return &BitReader{r: r}
}

// IsByteAligned reports whether the internal accumulator is empty.
func (r *BitReader) IsByteAligned() bool {
	return r.bitsLeft == 0
}

// ReadBits returns the next n bits (0 <= n <= 64), MSB-first, right-aligned
// in the returned uint64. Fails with a KindIO DecodeError on short read.
func (r *BitReader) ReadBits(n int) (uint64, error) {
	var value uint64
	for i := 0; i < n; i++ {
		if r.bitsLeft == 0 {
			if _, err := io.ReadFull(r.r, r.one[:]); err != nil {
				return 0, IoError(err)
			}
			r.buf = r.one[0]
			r.bitsLeft = 8
		}
		r.bitsLeft--
		bit := (r.buf >> uint(r.bitsLeft)) & 1
		value = (value << 1) | uint64(bit)
	}
	return value, nil
}

// ReadBits128 reads n bits (64 < n <= 128) as a Uint128, MSB-first. This is
// the runtime's answer to fields wider than 64 bits: Go has no native
// 128-bit integer, so the high and low 64-bit halves are read as two
// ReadBits calls composed into a Uint128.
func (r *BitReader) ReadBits128(n int) (Uint128, error) {
	if n <= 64 {
		lo, err := r.ReadBits(n)
		return Uint128{Lo: lo}, err
	}
	hi, err := r.ReadBits(n - 64)
	if err != nil {
		return Uint128{}, err
	}
	lo, err := r.ReadBits(64)
	if err != nil {
		return Uint128{}, err
	}
	return Uint128{Hi: hi, Lo: lo}, nil
}

// ReadString reads L full bytes (the reader must be byte-aligned),
// interprets them as UTF-8 leniently, and trims trailing spaces and NULs.
func (r *BitReader) ReadString(byteLen int) (string, error) {
	raw := make([]byte, byteLen)
	for i := 0; i < byteLen; i++ {
		b, err := r.ReadBits(8)
		if err != nil {
			return "", err
		}
		raw[i] = byte(b)
	}
	s := string(raw)
	return strings.TrimRight(s, " \x00"), nil
}
