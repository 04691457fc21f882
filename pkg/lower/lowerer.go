package lower

import (
	"fmt"

	"github.com/asterix-gen/asterix/pkg/schema"
)

// Lower transforms a validated schema.Category into a LoweredCategory.
// The caller must have already run schema.Validate and confirmed
// !diags.HasErrors(); Lower assumes its input is structurally sound and
// panics only on programmer error (an unreachable ItemStructure variant),
// never on malformed schema data.
func Lower(cat *schema.Category) *LoweredCategory {
	l := &lowerer{}
	out := &LoweredCategory{
		CategoryID: cat.ID,
		ModuleName: fmt.Sprintf("cat%03d", cat.ID),
	}
	out.Record.Name = "Record"
	for _, item := range cat.Items {
		li := l.lowerItem(item)
		out.Items = append(out.Items, li)
		b, k := FspecPosition(item.FRN)
		out.Record.Entries = append(out.Record.Entries, RecordEntry{
			FieldName: snakeItemName(li.Name),
			TypeName:  li.Name,
			FspecByte: b,
			FspecBit:  k,
		})
	}
	return out
}

// lowerer carries no state today but gives room for future cross-item
// concerns (e.g. duplicate type-name detection) without reshaping call
// sites.
type lowerer struct{}

func itemTypeName(id uint8) string {
	return fmt.Sprintf("Item%03d", id)
}

func snakeItemName(typeName string) string {
	return ToSnakeCase(typeName)
}

func (l *lowerer) lowerItem(item schema.Item) LoweredItem {
	name := itemTypeName(item.ID)
	li := LoweredItem{Name: name}

	switch s := item.Structure.(type) {
	case schema.FixedItem:
		fields, enums, dec, enc := l.lowerElements(name, s.Elements)
		li.Enums = enums
		li.Kind = SimpleKind{IsExplicit: false, ByteSize: s.Bytes, Fields: fields, DecodeOps: dec, EncodeOps: enc}
	case schema.ExplicitItem:
		fields, enums, dec, enc := l.lowerElements(name, s.Elements)
		dec = append([]DecodeOp{ReadLengthByteOp{}}, dec...)
		enc = append([]EncodeOp{WriteLengthByteOp{TotalBytes: 1 + s.Bytes}}, enc...)
		li.Enums = enums
		li.Kind = SimpleKind{IsExplicit: true, ByteSize: 0, Fields: fields, DecodeOps: dec, EncodeOps: enc}
	case schema.ExtendedItem:
		var parts []LoweredPart
		var allEnums []LoweredEnum
		for i, pg := range s.PartGroups {
			partName := fmt.Sprintf("%sPart%d", name, pg.Index)
			fields, enums, dec, enc := l.lowerElements(partName, pg.Elements)
			allEnums = append(allEnums, enums...)
			parts = append(parts, LoweredPart{
				Index:      pg.Index,
				StructName: partName,
				FieldName:  fmt.Sprintf("part%d", pg.Index),
				IsFirst:    i == 0,
				Fields:     fields,
				DecodeOps:  dec,
				EncodeOps:  enc,
			})
		}
		li.Enums = allEnums
		li.Kind = ExtendedKind{Parts: parts}
	case schema.RepetitiveItem:
		elemName := name + "Element"
		fields, enums, dec, enc := l.lowerElements(elemName, s.Elements)
		li.Enums = enums
		li.Kind = RepetitiveKind{ElementTypeName: elemName, Count: s.Counter, Fields: fields, DecodeOps: dec, EncodeOps: enc}
	case schema.CompoundItem:
		var subItems []LoweredSubItem
		var allEnums []LoweredEnum
		for _, sub := range s.SubItems {
			subName := fmt.Sprintf("%sSub%d", name, sub.Index)
			subKind, subEnums := l.lowerSubStructure(subName, sub.Structure)
			allEnums = append(allEnums, subEnums...)
			b, k := FspecPosition(sub.Index)
			subItems = append(subItems, LoweredSubItem{
				Index:      sub.Index,
				StructName: subName,
				FieldName:  fmt.Sprintf("sub%d", sub.Index),
				FspecByte:  b,
				FspecBit:   k,
				Enums:      subEnums,
				Kind:       subKind,
			})
		}
		li.Enums = allEnums
		li.Kind = CompoundKind{SubItems: subItems}
	default:
		panic(fmt.Sprintf("lower: unreachable ItemStructure variant %T", s))
	}
	return li
}

// lowerSubStructure mirrors lowerItem's per-variant dispatch for the
// contents of a compound sub-item. A validated schema never places a
// CompoundItem here, so that case is absent rather than silently ignored.
func (l *lowerer) lowerSubStructure(name string, s schema.ItemStructure) (ItemKind, []LoweredEnum) {
	switch st := s.(type) {
	case schema.FixedItem:
		fields, enums, dec, enc := l.lowerElements(name, st.Elements)
		return SimpleKind{IsExplicit: false, ByteSize: st.Bytes, Fields: fields, DecodeOps: dec, EncodeOps: enc}, enums
	case schema.ExplicitItem:
		fields, enums, dec, enc := l.lowerElements(name, st.Elements)
		dec = append([]DecodeOp{ReadLengthByteOp{}}, dec...)
		enc = append([]EncodeOp{WriteLengthByteOp{TotalBytes: 1 + st.Bytes}}, enc...)
		return SimpleKind{IsExplicit: true, Fields: fields, DecodeOps: dec, EncodeOps: enc}, enums
	case schema.ExtendedItem:
		var parts []LoweredPart
		var allEnums []LoweredEnum
		for i, pg := range st.PartGroups {
			partName := fmt.Sprintf("%sPart%d", name, pg.Index)
			fields, enums, dec, enc := l.lowerElements(partName, pg.Elements)
			allEnums = append(allEnums, enums...)
			parts = append(parts, LoweredPart{
				Index: pg.Index, StructName: partName, FieldName: fmt.Sprintf("part%d", pg.Index),
				IsFirst: i == 0, Fields: fields, DecodeOps: dec, EncodeOps: enc,
			})
		}
		return ExtendedKind{Parts: parts}, allEnums
	case schema.RepetitiveItem:
		elemName := name + "Element"
		fields, enums, dec, enc := l.lowerElements(elemName, st.Elements)
		return RepetitiveKind{ElementTypeName: elemName, Count: st.Counter, Fields: fields, DecodeOps: dec, EncodeOps: enc}, enums
	default:
		panic(fmt.Sprintf("lower: unreachable sub-item ItemStructure variant %T", s))
	}
}

// lowerElements walks one element sequence (a Fixed/Explicit item body, an
// Extended part group, or a Repetitive element) and produces its field
// descriptors plus the symmetric decode/encode op lists. Spares contribute
// ops but no FieldDescriptor: they are never surfaced as generated fields.
func (l *lowerer) lowerElements(scopeName string, elements []schema.Element) ([]FieldDescriptor, []LoweredEnum, []DecodeOp, []EncodeOp) {
	var fields []FieldDescriptor
	var enums []LoweredEnum
	var dec []DecodeOp
	var enc []EncodeOp

	for _, el := range elements {
		switch e := el.(type) {
		case schema.Field:
			fieldName := ToSnakeCase(e.Name)
			if e.Type == schema.FieldTypeString {
				byteLen := e.Bits / 8
				fields = append(fields, FieldDescriptor{Name: fieldName, Type: StringFieldType{ByteLen: byteLen}})
				dec = append(dec, ReadStringOp{FieldName: fieldName, ByteLen: byteLen})
				enc = append(enc, WriteStringOp{FieldName: fieldName, ByteLen: byteLen})
				continue
			}
			goType := TypeForBits(e.Bits)
			fields = append(fields, FieldDescriptor{Name: fieldName, Type: PrimitiveType{GoType: goType}})
			dec = append(dec, ReadFieldOp{FieldName: fieldName, Bits: e.Bits, GoType: goType})
			enc = append(enc, WriteFieldOp{FieldName: fieldName, Bits: e.Bits, GoType: goType})

		case schema.Enum:
			fieldName := ToSnakeCase(e.Name)
			enumType := fmt.Sprintf("%sEnum", ToPascalCase(scopeName+"_"+e.Name))
			lenum := LoweredEnum{Name: enumType, Bits: e.Bits}
			for _, v := range e.Values {
				lenum.Variants = append(lenum.Variants, LoweredEnumVariant{Name: ToPascalCase(v.Name), Value: uint8(v.Value)})
			}
			enums = append(enums, lenum)
			fields = append(fields, FieldDescriptor{Name: fieldName, Type: EnumFieldType{EnumName: enumType}})
			dec = append(dec, ReadEnumOp{FieldName: fieldName, Bits: e.Bits, EnumType: enumType})
			enc = append(enc, WriteEnumOp{FieldName: fieldName, Bits: e.Bits, EnumType: enumType})

		case schema.Spare:
			dec = append(dec, SkipSpareOp{Bits: e.Bits})
			enc = append(enc, WriteSpareOp{Bits: e.Bits})

		case schema.EPB:
			switch w := e.Content.(type) {
			case schema.Field:
				fieldName := ToSnakeCase(w.Name)
				if w.Type == schema.FieldTypeString {
					byteLen := w.Bits / 8
					fields = append(fields, FieldDescriptor{Name: fieldName, Type: OptionalStringFieldType{ByteLen: byteLen}})
					dec = append(dec, ReadEpbStringOp{FieldName: fieldName, ByteLen: byteLen})
					enc = append(enc, WriteEpbStringOp{FieldName: fieldName, ByteLen: byteLen})
					continue
				}
				goType := TypeForBits(w.Bits)
				fields = append(fields, FieldDescriptor{Name: fieldName, Type: OptionalPrimitiveType{GoType: goType}})
				dec = append(dec, ReadEpbFieldOp{FieldName: fieldName, Bits: w.Bits, GoType: goType})
				enc = append(enc, WriteEpbFieldOp{FieldName: fieldName, Bits: w.Bits, GoType: goType})
			case schema.Enum:
				fieldName := ToSnakeCase(w.Name)
				enumType := fmt.Sprintf("%sEnum", ToPascalCase(scopeName+"_"+w.Name))
				lenum := LoweredEnum{Name: enumType, Bits: w.Bits}
				for _, v := range w.Values {
					lenum.Variants = append(lenum.Variants, LoweredEnumVariant{Name: ToPascalCase(v.Name), Value: uint8(v.Value)})
				}
				enums = append(enums, lenum)
				fields = append(fields, FieldDescriptor{Name: fieldName, Type: OptionalEnumFieldType{EnumName: enumType}})
				dec = append(dec, ReadEpbEnumOp{FieldName: fieldName, Bits: w.Bits, EnumType: enumType})
				enc = append(enc, WriteEpbEnumOp{FieldName: fieldName, Bits: w.Bits, EnumType: enumType})
			default:
				panic(fmt.Sprintf("lower: unreachable EPB content variant %T", w))
			}

		default:
			panic(fmt.Sprintf("lower: unreachable Element variant %T", e))
		}
	}
	return fields, enums, dec, enc
}
