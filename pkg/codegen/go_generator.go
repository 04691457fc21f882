package codegen

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/asterix-gen/asterix/pkg/lower"
)

// GoGenerator renders a lowered ASTERIX category as a single Go source
// file: one struct and Decode/Encode method pair per item, an enum type
// per LoweredEnum, and a Record type gathering every item behind its
// own top-level FSPEC.
type GoGenerator struct{}

// NewGoGenerator creates a new Go code generator.
func NewGoGenerator() *GoGenerator {
	return &GoGenerator{}
}

func (g *GoGenerator) Language() Language { return LanguageGo }

func (g *GoGenerator) FileExtension() string { return ".go" }

// Generate produces Go code from a lowered category.
func (g *GoGenerator) Generate(w io.Writer, cat *lower.LoweredCategory, opts Options) error {
	ctx := &goContext{Category: cat, Options: opts}

	tmpl, err := template.New("go").Funcs(ctx.funcMap()).Parse(goTemplate)
	if err != nil {
		return fmt.Errorf("codegen: parse template: %w", err)
	}
	return tmpl.Execute(w, ctx)
}

type goContext struct {
	Category *lower.LoweredCategory
	Options  Options
}

func (c *goContext) funcMap() template.FuncMap {
	return template.FuncMap{
		"goPackage": c.goPackage,
		"itemBlock": func(item lower.LoweredItem) string {
			return itemBlock(item, c.Options.GenerateComments)
		},
		"recordBlock": func(cat *lower.LoweredCategory) string {
			return recordBlock(cat, c.Options.GenerateComments)
		},
		"dataBlockBlock": func(cat *lower.LoweredCategory) string {
			return dataBlockBlock(cat, c.Options.GenerateComments)
		},
		"needsFmtImport": c.needsFmtImport,
	}
}

func (c *goContext) goPackage() string {
	if c.Options.Package != "" {
		return c.Options.Package
	}
	return c.Category.ModuleName
}

// needsFmtImport reports whether any generated enum's String method (the
// only user of "fmt" in generated output) will be emitted.
func (c *goContext) needsFmtImport() bool {
	for _, item := range c.Category.Items {
		if len(item.Enums) > 0 {
			return true
		}
	}
	return false
}

// fieldGoName exports a lowered snake_case field name as a Go identifier.
func fieldGoName(name string) string {
	return ToPascalCase(name)
}

func goFieldType(ft lower.FieldType) string {
	switch t := ft.(type) {
	case lower.PrimitiveType:
		return t.GoType
	case lower.OptionalPrimitiveType:
		return "*" + t.GoType
	case lower.EnumFieldType:
		return t.EnumName
	case lower.OptionalEnumFieldType:
		return "*" + t.EnumName
	case lower.StringFieldType:
		return "string"
	case lower.OptionalStringFieldType:
		return "*string"
	default:
		return "interface{}"
	}
}

// enumBlock renders one generated enum: the underlying type, its named
// variants, and a String method with an open Unknown(value) catch-all so
// decoding never fails on a value the schema didn't enumerate.
func enumBlock(e lower.LoweredEnum, withComments bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "type %s uint8\n\n", e.Name)
	b.WriteString("const (\n")
	for _, v := range e.Variants {
		fmt.Fprintf(&b, "\t%s%s %s = %d\n", e.Name, v.Name, e.Name, v.Value)
	}
	b.WriteString(")\n\n")
	if withComments {
		b.WriteString("// String returns the variant name, or \"Unknown(N)\" for a value\n// outside the schema's known set.\n")
	}
	fmt.Fprintf(&b, "func (v %s) String() string {\n\tswitch v {\n", e.Name)
	for _, variant := range e.Variants {
		fmt.Fprintf(&b, "\tcase %s%s:\n\t\treturn %q\n", e.Name, variant.Name, variant.Name)
	}
	b.WriteString("\tdefault:\n\t\treturn fmt.Sprintf(\"Unknown(%d)\", uint8(v))\n\t}\n}\n\n")
	return b.String()
}

// itemBlock renders one item's enums and its wire-structure type(s).
func itemBlock(item lower.LoweredItem, withComments bool) string {
	var b strings.Builder
	for _, e := range item.Enums {
		b.WriteString(enumBlock(e, withComments))
	}
	switch k := item.Kind.(type) {
	case lower.SimpleKind:
		b.WriteString(simpleItemBlock(item.Name, k))
	case lower.ExtendedKind:
		b.WriteString(extendedItemBlock(item.Name, k))
	case lower.RepetitiveKind:
		b.WriteString(repetitiveItemBlock(item.Name, k))
	case lower.CompoundKind:
		b.WriteString(compoundItemBlock(item.Name, k))
	}
	return b.String()
}

func structFields(fields []lower.FieldDescriptor) string {
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "\t%s %s\n", fieldGoName(f.Name), goFieldType(f.Type))
	}
	return b.String()
}

func simpleItemBlock(name string, k lower.SimpleKind) string {
	var b strings.Builder
	fmt.Fprintf(&b, "type %s struct {\n%s}\n\n", name, structFields(k.Fields))
	fmt.Fprintf(&b, "func (v *%s) Decode(r *asterix.BitReader) error {\n%s\treturn nil\n}\n\n", name, decodeOpsBody(k.DecodeOps))
	fmt.Fprintf(&b, "func (v *%s) Encode(w *asterix.BitWriter) error {\n%s\treturn nil\n}\n\n", name, encodeOpsBody(k.EncodeOps))
	return b.String()
}

func repetitiveItemBlock(name string, k lower.RepetitiveKind) string {
	var b strings.Builder
	fmt.Fprintf(&b, "type %s struct {\n%s}\n\n", k.ElementTypeName, structFields(k.Fields))
	fmt.Fprintf(&b, "func (v *%s) Decode(r *asterix.BitReader) error {\n%s\treturn nil\n}\n\n", k.ElementTypeName, decodeOpsBody(k.DecodeOps))
	fmt.Fprintf(&b, "func (v *%s) Encode(w *asterix.BitWriter) error {\n%s\treturn nil\n}\n\n", k.ElementTypeName, encodeOpsBody(k.EncodeOps))

	fmt.Fprintf(&b, "type %s struct {\n\tItems []%s\n}\n\n", name, k.ElementTypeName)
	fmt.Fprintf(&b, "func (v *%s) Decode(r *asterix.BitReader) error {\n", name)
	fmt.Fprintf(&b, "\tv.Items = make([]%s, %d)\n", k.ElementTypeName, k.Count)
	b.WriteString("\tfor i := range v.Items {\n\t\tif err := v.Items[i].Decode(r); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n\treturn nil\n}\n\n")
	fmt.Fprintf(&b, "func (v *%s) Encode(w *asterix.BitWriter) error {\n", name)
	b.WriteString("\tfor i := range v.Items {\n\t\tif err := v.Items[i].Encode(w); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n\treturn nil\n}\n\n")
	return b.String()
}

func extendedItemBlock(name string, k lower.ExtendedKind) string {
	var b strings.Builder
	for _, p := range k.Parts {
		fmt.Fprintf(&b, "type %s struct {\n%s}\n\n", p.StructName, structFields(p.Fields))
		fmt.Fprintf(&b, "func (v *%s) Decode(r *asterix.BitReader) error {\n%s\treturn nil\n}\n\n", p.StructName, decodeOpsBody(p.DecodeOps))
		fmt.Fprintf(&b, "func (v *%s) Encode(w *asterix.BitWriter) error {\n%s\treturn nil\n}\n\n", p.StructName, encodeOpsBody(p.EncodeOps))
	}

	fmt.Fprintf(&b, "type %s struct {\n", name)
	for _, p := range k.Parts {
		if p.IsFirst {
			fmt.Fprintf(&b, "\t%s %s\n", fieldGoName(p.FieldName), p.StructName)
		} else {
			fmt.Fprintf(&b, "\t%s *%s\n", fieldGoName(p.FieldName), p.StructName)
		}
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "func (v *%s) Decode(r *asterix.BitReader) error {\n", name)
	for i, p := range k.Parts {
		field := fieldGoName(p.FieldName)
		if p.IsFirst {
			fmt.Fprintf(&b, "\tif err := v.%s.Decode(r); err != nil {\n\t\treturn err\n\t}\n", field)
		} else {
			fmt.Fprintf(&b, "\t{\n\t\tvar part %s\n\t\tif err := part.Decode(r); err != nil {\n\t\t\treturn err\n\t\t}\n\t\tv.%s = &part\n\t}\n", p.StructName, field)
		}
		if i == len(k.Parts)-1 {
			b.WriteString("\tif _, err := r.ReadBits(1); err != nil {\n\t\treturn err\n\t}\n\treturn nil\n")
		} else {
			b.WriteString("\t{\n\t\tfx, err := r.ReadBits(1)\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n\t\tif fx == 0 {\n\t\t\treturn nil\n\t\t}\n\t}\n")
		}
	}
	if len(k.Parts) == 0 {
		b.WriteString("\treturn nil\n")
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "func (v *%s) Encode(w *asterix.BitWriter) error {\n", name)
	for i, p := range k.Parts {
		field := fieldGoName(p.FieldName)
		if p.IsFirst {
			fmt.Fprintf(&b, "\tif err := v.%s.Encode(w); err != nil {\n\t\treturn err\n\t}\n", field)
			if i == len(k.Parts)-1 {
				b.WriteString("\treturn w.WriteBits(0, 1)\n")
			}
			continue
		}
		fmt.Fprintf(&b, "\tif v.%s == nil {\n\t\treturn w.WriteBits(0, 1)\n\t}\n", field)
		b.WriteString("\tif err := w.WriteBits(1, 1); err != nil {\n\t\treturn err\n\t}\n")
		fmt.Fprintf(&b, "\tif err := v.%s.Encode(w); err != nil {\n\t\treturn err\n\t}\n", field)
		if i == len(k.Parts)-1 {
			b.WriteString("\treturn w.WriteBits(0, 1)\n")
		}
	}
	if len(k.Parts) == 0 {
		b.WriteString("\treturn nil\n")
	}
	b.WriteString("}\n\n")
	return b.String()
}

func compoundItemBlock(name string, k lower.CompoundKind) string {
	var b strings.Builder
	for _, sub := range k.SubItems {
		switch sk := sub.Kind.(type) {
		case lower.SimpleKind:
			b.WriteString(simpleItemBlock(sub.StructName, sk))
		case lower.ExtendedKind:
			b.WriteString(extendedItemBlock(sub.StructName, sk))
		case lower.RepetitiveKind:
			b.WriteString(repetitiveItemBlock(sub.StructName, sk))
		}
	}

	fmt.Fprintf(&b, "type %s struct {\n", name)
	for _, sub := range k.SubItems {
		fmt.Fprintf(&b, "\t%s *%s\n", fieldGoName(sub.FieldName), sub.StructName)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "func (v *%s) Decode(r *asterix.BitReader) error {\n", name)
	b.WriteString("\tfspec, err := asterix.ReadFspec(r)\n\tif err != nil {\n\t\treturn err\n\t}\n")
	if len(k.SubItems) == 0 {
		b.WriteString("\t_ = fspec\n")
	}
	for _, sub := range k.SubItems {
		field := fieldGoName(sub.FieldName)
		fmt.Fprintf(&b, "\tif fspec.IsSet(%d, %d) {\n\t\tvar s %s\n\t\tif err := s.Decode(r); err != nil {\n\t\t\treturn err\n\t\t}\n\t\tv.%s = &s\n\t}\n", sub.FspecByte, sub.FspecBit, sub.StructName, field)
	}
	b.WriteString("\treturn nil\n}\n\n")

	fmt.Fprintf(&b, "func (v *%s) Encode(w *asterix.BitWriter) error {\n", name)
	b.WriteString("\tfspec := asterix.NewFspec()\n")
	for _, sub := range k.SubItems {
		field := fieldGoName(sub.FieldName)
		fmt.Fprintf(&b, "\tif v.%s != nil {\n\t\tfspec.Set(%d, %d)\n\t}\n", field, sub.FspecByte, sub.FspecBit)
	}
	b.WriteString("\tif err := fspec.Write(w); err != nil {\n\t\treturn err\n\t}\n")
	for _, sub := range k.SubItems {
		field := fieldGoName(sub.FieldName)
		fmt.Fprintf(&b, "\tif v.%s != nil {\n\t\tif err := v.%s.Encode(w); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n", field, field)
	}
	b.WriteString("\treturn nil\n}\n\n")
	return b.String()
}

// decodeOpsBody renders one Decode method's statement sequence, in wire
// order, from a flat op list.
func decodeOpsBody(ops []lower.DecodeOp) string {
	var b strings.Builder
	for _, op := range ops {
		switch o := op.(type) {
		case lower.ReadLengthByteOp:
			b.WriteString("\tif _, err := r.ReadBits(8); err != nil {\n\t\treturn err\n\t}\n")
		case lower.ReadFieldOp:
			fn := fieldGoName(o.FieldName)
			if o.Bits > 64 {
				fmt.Fprintf(&b, "\t{\n\t\tval, err := r.ReadBits128(%d)\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n\t\tv.%s = val\n\t}\n", o.Bits, fn)
			} else {
				fmt.Fprintf(&b, "\t{\n\t\tval, err := r.ReadBits(%d)\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n\t\tv.%s = %s(val)\n\t}\n", o.Bits, fn, o.GoType)
			}
		case lower.ReadEnumOp:
			fn := fieldGoName(o.FieldName)
			fmt.Fprintf(&b, "\t{\n\t\tval, err := r.ReadBits(%d)\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n\t\tv.%s = %s(val)\n\t}\n", o.Bits, fn, o.EnumType)
		case lower.ReadEpbFieldOp:
			fn := fieldGoName(o.FieldName)
			fmt.Fprintf(&b, "\t{\n\t\tpresent, err := r.ReadBits(1)\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n\t\tif present != 0 {\n\t\t\tval, err := r.ReadBits(%d)\n\t\t\tif err != nil {\n\t\t\t\treturn err\n\t\t\t}\n\t\t\ttmp := %s(val)\n\t\t\tv.%s = &tmp\n\t\t} else if _, err := r.ReadBits(%d); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n", o.Bits, o.GoType, fn, o.Bits)
		case lower.ReadEpbEnumOp:
			fn := fieldGoName(o.FieldName)
			fmt.Fprintf(&b, "\t{\n\t\tpresent, err := r.ReadBits(1)\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n\t\tif present != 0 {\n\t\t\tval, err := r.ReadBits(%d)\n\t\t\tif err != nil {\n\t\t\t\treturn err\n\t\t\t}\n\t\t\ttmp := %s(val)\n\t\t\tv.%s = &tmp\n\t\t} else if _, err := r.ReadBits(%d); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n", o.Bits, o.EnumType, fn, o.Bits)
		case lower.ReadStringOp:
			fn := fieldGoName(o.FieldName)
			fmt.Fprintf(&b, "\t{\n\t\tval, err := r.ReadString(%d)\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n\t\tv.%s = val\n\t}\n", o.ByteLen, fn)
		case lower.ReadEpbStringOp:
			fn := fieldGoName(o.FieldName)
			fmt.Fprintf(&b, "\t{\n\t\tpresent, err := r.ReadBits(1)\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n\t\tif present != 0 {\n\t\t\tval, err := r.ReadString(%d)\n\t\t\tif err != nil {\n\t\t\t\treturn err\n\t\t\t}\n\t\t\tv.%s = &val\n\t\t} else if _, err := r.ReadString(%d); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n", o.ByteLen, fn, o.ByteLen)
		case lower.SkipSpareOp:
			fmt.Fprintf(&b, "\tif _, err := r.ReadBits(%d); err != nil {\n\t\treturn err\n\t}\n", o.Bits)
		}
	}
	return b.String()
}

// encodeOpsBody renders one Encode method's statement sequence, in wire
// order, from a flat op list.
func encodeOpsBody(ops []lower.EncodeOp) string {
	var b strings.Builder
	for _, op := range ops {
		switch o := op.(type) {
		case lower.WriteLengthByteOp:
			fmt.Fprintf(&b, "\tif err := w.WriteBits(%d, 8); err != nil {\n\t\treturn err\n\t}\n", o.TotalBytes)
		case lower.WriteFieldOp:
			fn := fieldGoName(o.FieldName)
			if o.Bits > 64 {
				fmt.Fprintf(&b, "\tif err := w.WriteBits128(v.%s, %d); err != nil {\n\t\treturn err\n\t}\n", fn, o.Bits)
			} else {
				fmt.Fprintf(&b, "\tif err := w.WriteBits(uint64(v.%s), %d); err != nil {\n\t\treturn err\n\t}\n", fn, o.Bits)
			}
		case lower.WriteEnumOp:
			fn := fieldGoName(o.FieldName)
			fmt.Fprintf(&b, "\tif err := w.WriteBits(uint64(v.%s), %d); err != nil {\n\t\treturn err\n\t}\n", fn, o.Bits)
		case lower.WriteEpbFieldOp:
			fn := fieldGoName(o.FieldName)
			fmt.Fprintf(&b, "\tif v.%s != nil {\n\t\tif err := w.WriteBits(1, 1); err != nil {\n\t\t\treturn err\n\t\t}\n\t\tif err := w.WriteBits(uint64(*v.%s), %d); err != nil {\n\t\t\treturn err\n\t\t}\n\t} else {\n\t\tif err := w.WriteBits(0, 1); err != nil {\n\t\t\treturn err\n\t\t}\n\t\tif err := w.WriteBits(0, %d); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n", fn, fn, o.Bits, o.Bits)
		case lower.WriteEpbEnumOp:
			fn := fieldGoName(o.FieldName)
			fmt.Fprintf(&b, "\tif v.%s != nil {\n\t\tif err := w.WriteBits(1, 1); err != nil {\n\t\t\treturn err\n\t\t}\n\t\tif err := w.WriteBits(uint64(*v.%s), %d); err != nil {\n\t\t\treturn err\n\t\t}\n\t} else {\n\t\tif err := w.WriteBits(0, 1); err != nil {\n\t\t\treturn err\n\t\t}\n\t\tif err := w.WriteBits(0, %d); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n", fn, fn, o.Bits, o.Bits)
		case lower.WriteStringOp:
			fn := fieldGoName(o.FieldName)
			fmt.Fprintf(&b, "\tif err := w.WriteString(v.%s, %d); err != nil {\n\t\treturn err\n\t}\n", fn, o.ByteLen)
		case lower.WriteEpbStringOp:
			// The absent branch must fill the string's bytes with zeros, not
			// WriteString's space padding.
			fn := fieldGoName(o.FieldName)
			fmt.Fprintf(&b, "\tif v.%s != nil {\n\t\tif err := w.WriteBits(1, 1); err != nil {\n\t\t\treturn err\n\t\t}\n\t\tif err := w.WriteString(*v.%s, %d); err != nil {\n\t\t\treturn err\n\t\t}\n\t} else {\n\t\tif err := w.WriteBits(0, 1); err != nil {\n\t\t\treturn err\n\t\t}\n\t\tfor i := 0; i < %d; i++ {\n\t\t\tif err := w.WriteBits(0, 8); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n\t\t}\n\t}\n", fn, fn, o.ByteLen, o.ByteLen)
		case lower.WriteSpareOp:
			fmt.Fprintf(&b, "\tif err := w.WriteBits(0, %d); err != nil {\n\t\treturn err\n\t}\n", o.Bits)
		}
	}
	return b.String()
}

// recordBlock renders the category-level Record type: one optional
// pointer field per item, guarded by the category's own top-level FSPEC.
func recordBlock(cat *lower.LoweredCategory, withComments bool) string {
	var b strings.Builder
	if withComments {
		fmt.Fprintf(&b, "// %s gathers every item of category %d behind its top-level FSPEC.\n", cat.Record.Name, cat.CategoryID)
	}
	fmt.Fprintf(&b, "type %s struct {\n", cat.Record.Name)
	for _, e := range cat.Record.Entries {
		fmt.Fprintf(&b, "\t%s *%s\n", fieldGoName(e.FieldName), e.TypeName)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "func (v *%s) Decode(r *asterix.BitReader) error {\n", cat.Record.Name)
	b.WriteString("\tfspec, err := asterix.ReadFspec(r)\n\tif err != nil {\n\t\treturn err\n\t}\n")
	if len(cat.Record.Entries) == 0 {
		b.WriteString("\t_ = fspec\n")
	}
	for _, e := range cat.Record.Entries {
		field := fieldGoName(e.FieldName)
		fmt.Fprintf(&b, "\tif fspec.IsSet(%d, %d) {\n\t\tvar item %s\n\t\tif err := item.Decode(r); err != nil {\n\t\t\treturn err\n\t\t}\n\t\tv.%s = &item\n\t}\n", e.FspecByte, e.FspecBit, e.TypeName, field)
	}
	b.WriteString("\treturn nil\n}\n\n")

	fmt.Fprintf(&b, "func (v *%s) Encode(w *asterix.BitWriter) error {\n", cat.Record.Name)
	b.WriteString("\tfspec := asterix.NewFspec()\n")
	for _, e := range cat.Record.Entries {
		field := fieldGoName(e.FieldName)
		fmt.Fprintf(&b, "\tif v.%s != nil {\n\t\tfspec.Set(%d, %d)\n\t}\n", field, e.FspecByte, e.FspecBit)
	}
	b.WriteString("\tif err := fspec.Write(w); err != nil {\n\t\treturn err\n\t}\n")
	for _, e := range cat.Record.Entries {
		field := fieldGoName(e.FieldName)
		fmt.Fprintf(&b, "\tif v.%s != nil {\n\t\tif err := v.%s.Encode(w); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n", field, field)
	}
	b.WriteString("\treturn nil\n}\n\n")
	return b.String()
}

// dataBlockBlock renders the category's DataBlock framing type: the
// 1-byte-CAT/2-byte-big-endian-LEN wrapper around a sequence of Records,
// per the wire format `[CAT:1][LEN:2 big-endian][Record]*` with LEN
// inclusive of its own three header bytes.
func dataBlockBlock(cat *lower.LoweredCategory, withComments bool) string {
	var b strings.Builder
	if withComments {
		fmt.Fprintf(&b, "// DataBlock frames zero or more %s values behind a\n", cat.Record.Name)
		b.WriteString("// 1-byte category and 2-byte big-endian length header.\n")
	}
	b.WriteString("type DataBlock struct {\n")
	fmt.Fprintf(&b, "\tRecords []%s\n", cat.Record.Name)
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "func (v *DataBlock) Decode(r *asterix.BitReader) error {\n")
	b.WriteString("\tcatByte, err := r.ReadBits(8)\n\tif err != nil {\n\t\treturn err\n\t}\n")
	fmt.Fprintf(&b, "\tif uint8(catByte) != %d {\n\t\treturn asterix.InvalidDataError(\"category mismatch\")\n\t}\n", cat.CategoryID)
	b.WriteString("\tlen1, err := r.ReadBits(8)\n\tif err != nil {\n\t\treturn err\n\t}\n")
	b.WriteString("\tlen2, err := r.ReadBits(8)\n\tif err != nil {\n\t\treturn err\n\t}\n")
	b.WriteString("\tlength := int(len1)<<8 | int(len2)\n")
	b.WriteString("\tif length < 3 {\n\t\treturn asterix.InvalidDataError(\"data block length too small\")\n\t}\n")
	b.WriteString("\tpayload := make([]byte, length-3)\n")
	b.WriteString("\tfor i := range payload {\n\t\tbv, err := r.ReadBits(8)\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n\t\tpayload[i] = byte(bv)\n\t}\n")
	b.WriteString("\tbr := bytes.NewReader(payload)\n")
	b.WriteString("\tpr := asterix.NewBitReader(br)\n")
	fmt.Fprintf(&b, "\tvar records []%s\n", cat.Record.Name)
	b.WriteString("\tfor br.Len() > 0 {\n")
	fmt.Fprintf(&b, "\t\tvar rec %s\n", cat.Record.Name)
	b.WriteString("\t\tif err := rec.Decode(pr); err != nil {\n\t\t\treturn err\n\t\t}\n")
	b.WriteString("\t\trecords = append(records, rec)\n")
	b.WriteString("\t}\n")
	b.WriteString("\tv.Records = records\n\treturn nil\n}\n\n")

	fmt.Fprintf(&b, "func (v *DataBlock) Encode(w *asterix.BitWriter) error {\n")
	b.WriteString("\tvar scratch bytes.Buffer\n")
	b.WriteString("\tsw := asterix.NewBitWriter(&scratch)\n")
	b.WriteString("\tfor i := range v.Records {\n\t\tif err := v.Records[i].Encode(sw); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n")
	b.WriteString("\tif err := sw.Flush(); err != nil {\n\t\treturn err\n\t}\n")
	fmt.Fprintf(&b, "\tif err := w.WriteBits(%d, 8); err != nil {\n\t\treturn err\n\t}\n", cat.CategoryID)
	b.WriteString("\ttotal := 3 + scratch.Len()\n")
	b.WriteString("\tif err := w.WriteBits(uint64(total>>8), 8); err != nil {\n\t\treturn err\n\t}\n")
	b.WriteString("\tif err := w.WriteBits(uint64(total&0xff), 8); err != nil {\n\t\treturn err\n\t}\n")
	b.WriteString("\tfor _, bv := range scratch.Bytes() {\n\t\tif err := w.WriteBits(uint64(bv), 8); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n")
	b.WriteString("\treturn nil\n}\n")
	return b.String()
}

func init() {
	Register(NewGoGenerator())
}

const goTemplate = `// Code generated by asterixgen. DO NOT EDIT.
// Source category: {{.Category.CategoryID}}

package {{goPackage}}

import (
	"bytes"
{{if needsFmtImport}}	"fmt"
{{end}}
	"github.com/asterix-gen/asterix/pkg/asterix"
)

{{range $item := .Category.Items}}{{itemBlock $item}}{{end}}{{recordBlock .Category}}{{dataBlockBlock .Category}}`
