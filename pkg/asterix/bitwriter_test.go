package asterix

import (
	"bytes"
	"testing"
)

func TestBitWriterWriteBits(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		n     int
		want  []byte
	}{
		{"single_byte", 0xA5, 8, []byte{0xA5}},
		{"four_bits_no_flush_needed", 0xF, 4, nil},
		{"sixty_four_bits", ^uint64(0), 64, bytes.Repeat([]byte{0xFF}, 8)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewBitWriter(&buf)
			if err := w.WriteBits(tc.value, tc.n); err != nil {
				t.Fatal(err)
			}
			if tc.want == nil {
				if buf.Len() != 0 {
					t.Fatalf("expected no bytes flushed yet, got %v", buf.Bytes())
				}
				return
			}
			if !bytes.Equal(buf.Bytes(), tc.want) {
				t.Errorf("got %v, want %v", buf.Bytes(), tc.want)
			}
		})
	}
}

func TestBitWriterFlushPadsWithZeros(t *testing.T) {
	var buf bytes.Buffer
	w := NewBitWriter(&buf)
	if err := w.WriteBits(0b101, 3); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	want := []byte{0b10100000}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got %08b, want %08b", buf.Bytes()[0], want[0])
	}
}

func TestBitWriterFlushIdempotentWhenAligned(t *testing.T) {
	var buf bytes.Buffer
	w := NewBitWriter(&buf)
	if err := w.WriteBits(0xFF, 8); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 1 {
		t.Fatalf("Flush on an aligned writer must not emit another byte, got %d bytes", buf.Len())
	}
}

func TestBitWriterWriteString(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want []byte
	}{
		{"pads_with_spaces", "ABC", 6, []byte("ABC   ")},
		{"truncates", "ABCDEF", 3, []byte("ABC")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewBitWriter(&buf)
			if err := w.WriteString(tc.s, tc.n); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(buf.Bytes(), tc.want) {
				t.Errorf("got %q, want %q", buf.Bytes(), tc.want)
			}
		})
	}
}

func TestBitReaderWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewBitWriter(&buf)
	values := []struct {
		v uint64
		n int
	}{
		{0x1, 1},
		{0x3, 2},
		{0xFF, 8},
		{0x1234, 16},
		{0, 0},
	}
	for _, tc := range values {
		if err := w.WriteBits(tc.v, tc.n); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	r := NewBitReader(bytes.NewReader(buf.Bytes()))
	for _, tc := range values {
		got, err := r.ReadBits(tc.n)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.v {
			t.Errorf("round-trip mismatch: got %#x, want %#x", got, tc.v)
		}
	}
}
