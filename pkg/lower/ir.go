// Package lower transforms a validated schema.Category into a flat,
// opcode-based intermediate representation that a code generator can walk
// without re-deriving field widths, FSPEC positions, or name collisions.
package lower

// LoweredCategory is the output of lowering one schema.Category.
type LoweredCategory struct {
	CategoryID uint8
	ModuleName string // cat{NNN}, e.g. cat048
	Record     LoweredRecord
	Items      []LoweredItem
}

// RecordEntry describes one item's slot inside the category's Record type:
// its field name, the generated item type it holds, and the FSPEC bit that
// guards its presence.
type RecordEntry struct {
	FieldName string
	TypeName  string
	FspecByte int
	FspecBit  int
}

// LoweredRecord is the category-level container type (always named
// "Record") listing, in schema source order, every item's optional field.
type LoweredRecord struct {
	Name    string
	Entries []RecordEntry
}

// LoweredItem is one item's generated type: its name, every enum reachable
// from it (including those of its extended parts and compound sub-items),
// and the shape of its wire structure.
type LoweredItem struct {
	Name  string
	Enums []LoweredEnum
	Kind  ItemKind
}

// ItemKind is the sum type of the four wire-structure shapes a
// schema.ItemStructure can lower to. A LoweredSubItem's Kind reuses this
// same interface; the validator guarantees a CompoundKind never appears
// there, since nested compounds are rejected before lowering runs.
type ItemKind interface{ itemKind() }

// SimpleKind covers both Fixed and Explicit items: a flat run of fields
// read/written in one pass, with no FX chaining or repetition.
type SimpleKind struct {
	IsExplicit bool
	ByteSize   int // 0 for explicit, since its length is read from the wire
	Fields     []FieldDescriptor
	DecodeOps  []DecodeOp
	EncodeOps  []EncodeOp
}

func (SimpleKind) itemKind() {}

// ExtendedKind is an FX-chained item: one struct per part group, each
// holding its own fields plus a presence flag for every part after the
// first (the first part is always present once the item itself is).
type ExtendedKind struct {
	Parts []LoweredPart
}

func (ExtendedKind) itemKind() {}

// RepetitiveKind is a counted run of identical element structs.
type RepetitiveKind struct {
	ElementTypeName string
	Count           int
	Fields          []FieldDescriptor
	DecodeOps       []DecodeOp
	EncodeOps       []EncodeOp
}

func (RepetitiveKind) itemKind() {}

// CompoundKind is an FSPEC-guarded union of unrelated sub-items.
type CompoundKind struct {
	SubItems []LoweredSubItem
}

func (CompoundKind) itemKind() {}

// LoweredPart is one FX-chained part group of an extended item.
type LoweredPart struct {
	Index      int
	StructName string
	FieldName  string
	IsFirst    bool // the first part carries no optional wrapper
	Fields     []FieldDescriptor
	DecodeOps  []DecodeOp
	EncodeOps  []EncodeOp
}

// LoweredSubItem is one member of a compound item's sub-FSPEC.
type LoweredSubItem struct {
	Index      int
	StructName string
	FieldName  string
	FspecByte  int
	FspecBit   int
	Enums      []LoweredEnum
	Kind       ItemKind
}

// FieldDescriptor names one decoded value and the Go type it occupies.
type FieldDescriptor struct {
	Name string
	Type FieldType
}

// FieldType is the sum type of shapes a lowered field's storage can take.
type FieldType interface{ fieldType() }

// PrimitiveType is a plain numeric field, always present.
type PrimitiveType struct{ GoType string }

func (PrimitiveType) fieldType() {}

// OptionalPrimitiveType is a numeric field guarded by an EPB validity bit.
type OptionalPrimitiveType struct{ GoType string }

func (OptionalPrimitiveType) fieldType() {}

// EnumFieldType is an always-present enum-valued field.
type EnumFieldType struct{ EnumName string }

func (EnumFieldType) fieldType() {}

// OptionalEnumFieldType is an enum field guarded by an EPB validity bit.
type OptionalEnumFieldType struct{ EnumName string }

func (OptionalEnumFieldType) fieldType() {}

// StringFieldType is an always-present fixed-width character field.
type StringFieldType struct{ ByteLen int }

func (StringFieldType) fieldType() {}

// OptionalStringFieldType is a string field guarded by an EPB validity bit.
type OptionalStringFieldType struct{ ByteLen int }

func (OptionalStringFieldType) fieldType() {}

// LoweredEnum is a generated Go enum type: a named set of variants plus an
// open Unknown(value) catch-all for forward-compatible decoding.
type LoweredEnum struct {
	Name     string
	Bits     int
	Variants []LoweredEnumVariant
}

// LoweredEnumVariant is one named value of a LoweredEnum.
type LoweredEnumVariant struct {
	Name  string
	Value uint8
}

// DecodeOp is one step of a generated Decode method, in wire order.
type DecodeOp interface{ decodeOp() }

type ReadFieldOp struct {
	FieldName string
	Bits      int
	GoType    string
}

func (ReadFieldOp) decodeOp() {}

type ReadEnumOp struct {
	FieldName string
	Bits      int
	EnumType  string
}

func (ReadEnumOp) decodeOp() {}

// ReadEpbFieldOp reads the EPB validity bit first, then the wrapped field
// only if that bit is set.
type ReadEpbFieldOp struct {
	FieldName string
	Bits      int
	GoType    string
}

func (ReadEpbFieldOp) decodeOp() {}

type ReadEpbEnumOp struct {
	FieldName string
	Bits      int
	EnumType  string
}

func (ReadEpbEnumOp) decodeOp() {}

type ReadStringOp struct {
	FieldName string
	ByteLen   int
}

func (ReadStringOp) decodeOp() {}

type ReadEpbStringOp struct {
	FieldName string
	ByteLen   int
}

func (ReadEpbStringOp) decodeOp() {}

type SkipSpareOp struct{ Bits int }

func (SkipSpareOp) decodeOp() {}

// ReadLengthByteOp reads an explicit item's one-byte total length (itself
// included) before the rest of its fields.
type ReadLengthByteOp struct{}

func (ReadLengthByteOp) decodeOp() {}

// EncodeOp is one step of a generated Encode method, in wire order.
type EncodeOp interface{ encodeOp() }

type WriteFieldOp struct {
	FieldName string
	Bits      int
	GoType    string
}

func (WriteFieldOp) encodeOp() {}

type WriteEnumOp struct {
	FieldName string
	Bits      int
	EnumType  string
}

func (WriteEnumOp) encodeOp() {}

type WriteEpbFieldOp struct {
	FieldName string
	Bits      int
	GoType    string
}

func (WriteEpbFieldOp) encodeOp() {}

type WriteEpbEnumOp struct {
	FieldName string
	Bits      int
	EnumType  string
}

func (WriteEpbEnumOp) encodeOp() {}

type WriteStringOp struct {
	FieldName string
	ByteLen   int
}

func (WriteStringOp) encodeOp() {}

type WriteEpbStringOp struct {
	FieldName string
	ByteLen   int
}

func (WriteEpbStringOp) encodeOp() {}

type WriteSpareOp struct{ Bits int }

func (WriteSpareOp) encodeOp() {}

// WriteLengthByteOp emits an explicit item's total byte count: the
// schema's declared body length plus the length byte itself, a constant
// known at generation time since Explicit items carry no variable-length
// fields.
type WriteLengthByteOp struct{ TotalBytes int }

func (WriteLengthByteOp) encodeOp() {}
