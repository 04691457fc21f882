// Package schema holds the normalized, recursive description of an ASTERIX
// category: a direct deserialization of the input schema, with no
// derivation performed here. Validation (bit-budget invariants, duplicate
// detection) is a separate pass; see Validate.
package schema

// Category is a numbered ASTERIX message family: an identifier and an
// ordered list of Items, each addressed internally by its zero-based
// position (the FRN).
type Category struct {
	ID    uint8
	Items []Item
}

// Item is a self-contained, optional field within a record.
type Item struct {
	ID        uint8
	FRN       int
	Structure ItemStructure
}

// ItemStructure is the tagged variant of an item's wire shape: Fixed,
// Explicit, Extended, Repetitive, or Compound.
type ItemStructure interface {
	itemStructure()
}

// FixedItem is a constant-length item: declared byte length plus an
// element sequence whose bit widths sum to exactly 8*Bytes.
type FixedItem struct {
	Bytes    int
	Elements []Element
}

func (FixedItem) itemStructure() {}

// ExplicitItem is like FixedItem but its wire form is preceded by a
// one-byte length (including itself): declared byte length plus an element
// sequence summing to 8*Bytes, same as Fixed.
type ExplicitItem struct {
	Bytes    int
	Elements []Element
}

func (ExplicitItem) itemStructure() {}

// ExtendedItem is an FX-chained item: an ordered list of PartGroups, each
// exactly 7 data bits, paired on the wire with one FX continuation bit.
type ExtendedItem struct {
	Bytes      int
	PartGroups []PartGroup
}

func (ExtendedItem) itemStructure() {}

// PartGroup is one 7-bit data slice inside an Extended item.
type PartGroup struct {
	Index    int
	Elements []Element
}

// RepetitiveItem is a fixed-count repetition of a single element sequence.
// Counter is the literal repetition count; only this fixed-count form is
// implemented (the streamed-count form is an open question deferred per
// DESIGN.md).
type RepetitiveItem struct {
	Bytes    int
	Counter  int
	Elements []Element
}

func (RepetitiveItem) itemStructure() {}

// CompoundItem is a collection of SubItems, each addressed by its own
// position in the compound's own FSPEC.
type CompoundItem struct {
	SubItems []SubItem
}

func (CompoundItem) itemStructure() {}

// SubItem is one entry of a Compound item. Structure must not itself be a
// CompoundItem; Validate enforces this.
type SubItem struct {
	Index     int
	Structure ItemStructure
}

// Element is the tagged variant of a leaf within an item: Field, Enum,
// EPB, or Spare.
type Element interface {
	element()
}

// Field is a primitive leaf: a name, a bit width, and a type tag that must
// be "numeric" or "string" ("string" requires Bits%8==0).
type Field struct {
	Name string
	Bits int
	Type string
}

func (Field) element() {}

// Enum is a named, bit-width-bounded set of (variant name, variant value)
// pairs. Variant values must be unique and fit in 8 bits.
type Enum struct {
	Name   string
	Bits   int
	Values []EnumValue
}

func (Enum) element() {}

// EnumValue is one named variant of an Enum.
type EnumValue struct {
	Name  string
	Value int
}

// EPB wraps a single Field or Enum, adding a one-bit validity flag
// preceding the wrapped content.
type EPB struct {
	Content Element
}

func (EPB) element() {}

// Spare is reserved, unused bits: zero on write, ignored on read, never
// surfaced as a generated field.
type Spare struct {
	Bits int
}

func (Spare) element() {}

// FieldTypeNumeric and FieldTypeString are the only legal Field.Type tags.
const (
	FieldTypeNumeric = "numeric"
	FieldTypeString  = "string"
)
