package asterix

// Uint128 represents a 128-bit unsigned integer as two 64-bit halves. Go has
// no native uint128; fields wider than 64 bits (declared width 65..128 per
// the type-selection rule) are generated as Uint128 rather than a byte
// array, so two values compare with == like any other comparable struct
// instead of needing a slice comparison. No arithmetic methods are defined.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Decode is implemented by every generated type that can read itself from a
// BitReader.
type Decode interface {
	Decode(r *BitReader) error
}

// Encode is implemented by every generated type that can write itself to a
// BitWriter.
type Encode interface {
	Encode(w *BitWriter) error
}
