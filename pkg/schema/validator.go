package schema

import "fmt"

// Severity distinguishes a hard validation failure from an advisory note.
// Only SeverityError is a hard stop; SeverityWarning exists for forward
// compatibility with checks that don't need to fail the build, though the
// current rule set produces only errors.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic names the offending item and the rule that rejected it, so a
// failed build aborts with a message pointing at the exact schema location.
type Diagnostic struct {
	Severity Severity
	Item     string
	Kind     string
	Message  string
}

func (d Diagnostic) Error() string {
	if d.Item != "" {
		return fmt.Sprintf("%s: item %s (%s): %s", d.Severity, d.Item, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Diagnostics is a list of Diagnostic with a convenience hard-stop check.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic is SeverityError. The validator
// runs once, immediately after construction of the schema model; callers
// must check HasErrors before lowering.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate walks every layout in cat and asserts the bit-budget
// invariants: Fixed/Explicit/Repetitive byte lengths match the summed
// element bits, Extended PartGroups sum to exactly 7 bits each, Compound
// sub-items are never themselves Compound, strings land on byte
// boundaries, and enum variants are well formed. Compound is validated
// recursively over its sub-items.
func Validate(cat *Category) Diagnostics {
	v := &validator{}
	for _, item := range cat.Items {
		v.validateItem(item)
	}
	return v.diags
}

type validator struct {
	diags Diagnostics
}

func (v *validator) errorf(item, kind, format string, args ...any) {
	v.diags = append(v.diags, Diagnostic{
		Severity: SeverityError,
		Item:     item,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *validator) validateItem(item Item) {
	name := fmt.Sprintf("%03d", item.ID)
	v.validateStructure(name, item.Structure)
}

// validateStructure validates one ItemStructure, used both for a top-level
// item and for each SubItem of a Compound (which must not itself be
// Compound).
func (v *validator) validateStructure(name string, s ItemStructure) {
	switch st := s.(type) {
	case FixedItem:
		v.validateSimple(name, "fixed", st.Bytes, st.Elements)
	case ExplicitItem:
		v.validateSimple(name, "explicit", st.Bytes, st.Elements)
	case ExtendedItem:
		v.validateExtended(name, st)
	case RepetitiveItem:
		v.validateSimple(name, "repetitive", st.Bytes, st.Elements)
	case CompoundItem:
		v.validateCompound(name, st)
	default:
		v.errorf(name, "unknown", "unrecognized structural kind %T", s)
	}
}

func (v *validator) validateSimple(name, kind string, bytes int, elements []Element) {
	total := v.validateElements(name, kind, elements)
	if total != bytes*8 {
		v.errorf(name, kind, "declared %d bytes but elements sum to %d bits (want %d)", bytes, total, bytes*8)
	}
}

func (v *validator) validateExtended(name string, item ExtendedItem) {
	if len(item.PartGroups) != item.Bytes {
		v.errorf(name, "extended", "declared %d bytes but has %d part groups", item.Bytes, len(item.PartGroups))
	}
	for _, pg := range item.PartGroups {
		partName := fmt.Sprintf("%s.part%d", name, pg.Index)
		total := v.validateElements(partName, "extended part", pg.Elements)
		if total != 7 {
			v.errorf(partName, "extended part", "part group sums to %d bits, want exactly 7", total)
		}
	}
}

func (v *validator) validateCompound(name string, item CompoundItem) {
	for _, sub := range item.SubItems {
		subName := fmt.Sprintf("%s.sub%d", name, sub.Index)
		if _, ok := sub.Structure.(CompoundItem); ok {
			v.errorf(subName, "compound", "compound sub-item must not itself be compound")
			continue
		}
		v.validateStructure(subName, sub.Structure)
	}
}

// validateElements checks duplicate names within the scope of a single
// generated struct and enum well-formedness, and returns the total bit
// width of the sequence (EPB contributes 1 + wrapped width).
func (v *validator) validateElements(scope, kind string, elements []Element) int {
	seen := make(map[string]bool)
	total := 0

	checkName := func(n string) {
		if seen[n] {
			v.errorf(scope, kind, "duplicate field name %q", n)
		}
		seen[n] = true
	}

	for _, el := range elements {
		switch e := el.(type) {
		case Field:
			checkName(e.Name)
			if e.Type != FieldTypeNumeric && e.Type != FieldTypeString {
				v.errorf(scope, kind, "field %q has invalid type tag %q (want numeric or string)", e.Name, e.Type)
			}
			if e.Type == FieldTypeString {
				if e.Bits%8 != 0 {
					v.errorf(scope, kind, "string field %q has bit width %d, not a multiple of 8", e.Name, e.Bits)
				}
				if total%8 != 0 {
					v.errorf(scope, kind, "string field %q starts at bit offset %d, not byte-aligned", e.Name, total)
				}
			}
			total += e.Bits
		case Enum:
			checkName(e.Name)
			v.validateEnum(scope, e)
			total += e.Bits
		case EPB:
			wrapped := v.elementName(e.Content)
			checkName(wrapped)
			switch c := e.Content.(type) {
			case Field:
				if c.Type == FieldTypeString {
					if c.Bits%8 != 0 {
						v.errorf(scope, kind, "EPB string field %q has bit width %d, not a multiple of 8", c.Name, c.Bits)
					}
					if (total+1)%8 != 0 {
						v.errorf(scope, kind, "EPB string field %q starts at bit offset %d after its validity bit, not byte-aligned", c.Name, total+1)
					}
				}
				total += 1 + c.Bits
			case Enum:
				v.validateEnum(scope, c)
				total += 1 + c.Bits
			}
		case Spare:
			total += e.Bits
		}
	}
	return total
}

func (v *validator) elementName(el Element) string {
	switch e := el.(type) {
	case Field:
		return e.Name
	case Enum:
		return e.Name
	default:
		return ""
	}
}

func (v *validator) validateEnum(scope string, e Enum) {
	seenValues := make(map[int]bool)
	seenNames := make(map[string]bool)
	maxValue := 0
	for _, val := range e.Values {
		if seenNames[val.Name] {
			v.errorf(scope, "enum", "enum %q has duplicate variant name %q", e.Name, val.Name)
		}
		seenNames[val.Name] = true
		if seenValues[val.Value] {
			v.errorf(scope, "enum", "enum %q has duplicate variant value %d", e.Name, val.Value)
		}
		seenValues[val.Value] = true
		if val.Value < 0 || val.Value > 255 {
			v.errorf(scope, "enum", "enum %q variant %q value %d does not fit in 8 bits", e.Name, val.Name, val.Value)
		}
		if val.Value > maxValue {
			maxValue = val.Value
		}
	}
	if e.Bits > 8 {
		v.errorf(scope, "enum", "enum %q has bit width %d, but enum values must fit in 8 bits", e.Name, e.Bits)
	}
	needed := bitsNeeded(maxValue)
	if e.Bits < needed {
		v.errorf(scope, "enum", "enum %q bit width %d too small to hold value %d", e.Name, e.Bits, maxValue)
	}
}

func bitsNeeded(maxValue int) int {
	n := 0
	for (1 << uint(n)) <= maxValue {
		n++
	}
	if n == 0 {
		n = 1
	}
	return n
}
