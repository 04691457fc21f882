package codegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/asterix-gen/asterix/pkg/lower"
	"github.com/asterix-gen/asterix/pkg/schema"
)

func generate(t *testing.T, xmlSrc string) string {
	t.Helper()
	return generateWithOptions(t, xmlSrc, DefaultOptions())
}

func generateWithOptions(t *testing.T, xmlSrc string, opts Options) string {
	t.Helper()
	cat, diags := schema.LoadBytes([]byte(xmlSrc))
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	lc := lower.Lower(cat)

	gen := NewGoGenerator()
	var buf bytes.Buffer
	if err := gen.Generate(&buf, lc, opts); err != nil {
		t.Fatalf("generate: %v", err)
	}
	return buf.String()
}

func TestGoGeneratorFixedItem(t *testing.T) {
	out := generate(t, `<category id="1"><item id="10" frn="0"><fixed bytes="2">
		<field name="sac" bits="8" type="numeric"/>
		<field name="sic" bits="8" type="numeric"/>
	</fixed></item></category>`)

	if !strings.Contains(out, "package cat001") {
		t.Error("expected package cat001")
	}
	if !strings.Contains(out, "type Item010 struct") {
		t.Error("expected Item010 struct")
	}
	if !strings.Contains(out, "Sac uint8") || !strings.Contains(out, "Sic uint8") {
		t.Error("expected Sac/Sic uint8 fields")
	}
	if !strings.Contains(out, "func (v *Item010) Decode(r *asterix.BitReader) error") {
		t.Error("expected Decode method")
	}
	if !strings.Contains(out, "func (v *Item010) Encode(w *asterix.BitWriter) error") {
		t.Error("expected Encode method")
	}
	if !strings.Contains(out, "type Record struct") {
		t.Error("expected Record type")
	}
}

func TestGoGeneratorEnumHasUnknownCatchAll(t *testing.T) {
	out := generate(t, `<category id="1"><item id="10" frn="0"><fixed bytes="1">
		<enum name="target_type" bits="2">
			<value name="Psr" value="1"/>
			<value name="Ssr" value="2"/>
		</enum>
		<spare bits="6"/>
	</fixed></item></category>`)

	if !strings.Contains(out, "\"fmt\"") {
		t.Error("expected fmt import for enum String method")
	}
	if !strings.Contains(out, "Unknown(%d)") {
		t.Error("expected Unknown(value) catch-all")
	}
	if !strings.Contains(out, "Psr") || !strings.Contains(out, "Ssr") {
		t.Error("expected both enum variants")
	}
}

func TestGoGeneratorNoFmtImportWithoutEnums(t *testing.T) {
	out := generate(t, `<category id="1"><item id="10" frn="0"><fixed bytes="1">
		<field name="a" bits="8" type="numeric"/>
	</fixed></item></category>`)

	if strings.Contains(out, "\"fmt\"") {
		t.Error("fmt should not be imported when no enum is generated")
	}
}

func TestGoGeneratorEPBProducesOptionalField(t *testing.T) {
	out := generate(t, `<category id="1"><item id="60" frn="5"><fixed bytes="1">
		<epb><field name="value" bits="7" type="numeric"/></epb>
	</fixed></item></category>`)

	if !strings.Contains(out, "Value *uint8") {
		t.Error("expected Value *uint8 optional field")
	}
	if !strings.Contains(out, "present, err := r.ReadBits(1)") {
		t.Error("expected an EPB validity-bit read")
	}
}

func TestGoGeneratorEPBAbsentConsumesValueWidth(t *testing.T) {
	// An absent EPB value still occupies its declared bits on the wire; the
	// sibling field after it only decodes correctly if the absent branch
	// discards (on read) and zero-fills (on write) the full width.
	out := generate(t, `<category id="1"><item id="60" frn="5"><fixed bytes="3">
		<epb><field name="height" bits="15" type="numeric"/></epb>
		<field name="flag" bits="8" type="numeric"/>
	</fixed></item></category>`)

	if !strings.Contains(out, "} else if _, err := r.ReadBits(15); err != nil {") {
		t.Error("expected the absent decode branch to discard the value's 15 bits")
	}
	if !strings.Contains(out, "if err := w.WriteBits(0, 15); err != nil {") {
		t.Error("expected the absent encode branch to write 15 zero bits after the validity bit")
	}
}

func TestGoGeneratorEPBAbsentEnumConsumesValueWidth(t *testing.T) {
	out := generate(t, `<category id="1"><item id="60" frn="5"><fixed bytes="1">
		<epb><enum name="mode" bits="2">
			<value name="A" value="1"/>
			<value name="B" value="2"/>
		</enum></epb>
		<spare bits="5"/>
	</fixed></item></category>`)

	if !strings.Contains(out, "} else if _, err := r.ReadBits(2); err != nil {") {
		t.Error("expected the absent decode branch to discard the enum's 2 bits")
	}
	if !strings.Contains(out, "if err := w.WriteBits(0, 2); err != nil {") {
		t.Error("expected the absent encode branch to write 2 zero bits")
	}
}

func TestGoGeneratorEPBAbsentStringConsumesByteLength(t *testing.T) {
	out := generate(t, `<category id="1"><item id="70" frn="6"><fixed bytes="7">
		<spare bits="7"/>
		<epb><field name="callsign" bits="48" type="string"/></epb>
	</fixed></item></category>`)

	if !strings.Contains(out, "} else if _, err := r.ReadString(6); err != nil {") {
		t.Error("expected the absent decode branch to discard the string's 6 bytes")
	}
	if !strings.Contains(out, "for i := 0; i < 6; i++ {") {
		t.Error("expected the absent encode branch to write 6 zero bytes")
	}
}

func TestGoGeneratorCommentsCanBeDisabled(t *testing.T) {
	src := `<category id="1"><item id="10" frn="0"><fixed bytes="1">
		<enum name="mode" bits="2">
			<value name="A" value="1"/>
		</enum>
		<spare bits="6"/>
	</fixed></item></category>`

	withComments := generateWithOptions(t, src, Options{GenerateComments: true})
	for _, want := range []string{"// Record gathers", "// DataBlock frames", "// String returns"} {
		if !strings.Contains(withComments, want) {
			t.Errorf("expected doc comment %q with GenerateComments on", want)
		}
	}

	bare := generateWithOptions(t, src, Options{GenerateComments: false})
	for _, comment := range []string{"// Record gathers", "// DataBlock frames", "// String returns"} {
		if strings.Contains(bare, comment) {
			t.Errorf("doc comment %q emitted despite GenerateComments off", comment)
		}
	}
}

func TestGoGeneratorExtendedItemChainsFX(t *testing.T) {
	out := generate(t, `<category id="1"><item id="30" frn="2"><extended bytes="2">
		<part index="0"><field name="a" bits="7" type="numeric"/></part>
		<part index="1"><field name="b" bits="7" type="numeric"/></part>
	</extended></item></category>`)

	if !strings.Contains(out, "type Item030Part0 struct") || !strings.Contains(out, "type Item030Part1 struct") {
		t.Error("expected both part structs")
	}
	if !strings.Contains(out, "Part1 *Item030Part1") {
		t.Error("expected the non-first part as an optional pointer")
	}
	if !strings.Contains(out, "r.ReadBits(1)") {
		t.Error("expected an FX-bit read between parts")
	}
}

func TestGoGeneratorRepetitiveItemUsesFixedCount(t *testing.T) {
	out := generate(t, `<category id="1"><item id="40" frn="3"><repetitive bytes="1" counter="3">
		<field name="a" bits="8" type="numeric"/>
	</repetitive></item></category>`)

	if !strings.Contains(out, "type Item040Element struct") {
		t.Error("expected element struct")
	}
	if !strings.Contains(out, "Items []Item040Element") {
		t.Error("expected Items slice field")
	}
	if !strings.Contains(out, "make([]Item040Element, 3)") {
		t.Error("expected the fixed repetition count baked into the decode")
	}
}

func TestGoGeneratorCompoundItemUsesSubFspec(t *testing.T) {
	out := generate(t, `<category id="1"><item id="50" frn="4"><compound>
		<fixed bytes="1" index="0"><field name="a" bits="8" type="numeric"/></fixed>
		<repetitive bytes="1" counter="2" index="1"><field name="b" bits="8" type="numeric"/></repetitive>
	</compound></item></category>`)

	if !strings.Contains(out, "type Item050 struct") {
		t.Error("expected Item050 struct")
	}
	if !strings.Contains(out, "asterix.ReadFspec(r)") {
		t.Error("expected the sub-FSPEC to be read")
	}
	if !strings.Contains(out, "fspec.IsSet(0, 0)") || !strings.Contains(out, "fspec.IsSet(0, 1)") {
		t.Error("expected both sub-item FSPEC positions checked")
	}
}

func TestGoGeneratorExplicitItemWritesLengthByte(t *testing.T) {
	out := generate(t, `<category id="1"><item id="20" frn="1"><explicit bytes="2">
		<field name="a" bits="16" type="numeric"/>
	</explicit></item></category>`)

	if !strings.Contains(out, "r.ReadBits(8)") {
		t.Error("expected a length-byte read")
	}
	if !strings.Contains(out, "w.WriteBits(3, 8)") {
		t.Error("expected the constant length byte (1 + 2 declared bytes) to be written")
	}
}

func TestGoGeneratorDataBlockFraming(t *testing.T) {
	out := generate(t, `<category id="1"><item id="10" frn="0"><fixed bytes="2">
		<field name="sac" bits="8" type="numeric"/>
		<field name="sic" bits="8" type="numeric"/>
	</fixed></item></category>`)

	if !strings.Contains(out, "type DataBlock struct") {
		t.Error("expected a DataBlock type")
	}
	if !strings.Contains(out, "Records []Record") {
		t.Error("expected a Records []Record field")
	}
	if !strings.Contains(out, "uint8(catByte) != 1") {
		t.Error("expected a category-mismatch check against the category's own id")
	}
	if !strings.Contains(out, "asterix.InvalidDataError(\"category mismatch\")") {
		t.Error("expected the category mismatch error")
	}
	if !strings.Contains(out, "asterix.InvalidDataError(\"data block length too small\")") {
		t.Error("expected the minimum-length error")
	}
	if !strings.Contains(out, "\"bytes\"") {
		t.Error("expected a bytes import for the scratch buffer")
	}
}

func TestGoGeneratorStringField(t *testing.T) {
	out := generate(t, `<category id="1"><item id="70" frn="6"><fixed bytes="6">
		<field name="callsign" bits="48" type="string"/>
	</fixed></item></category>`)

	if !strings.Contains(out, "Callsign string") {
		t.Error("expected a string field")
	}
	if !strings.Contains(out, "r.ReadString(6)") {
		t.Error("expected a 6-byte string read")
	}
}
