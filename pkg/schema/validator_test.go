package schema

import "testing"

func mustParse(t *testing.T, xmlSrc string) *Category {
	t.Helper()
	cat, err := ParseXML([]byte(xmlSrc))
	if err != nil {
		t.Fatalf("ParseXML: %v", err)
	}
	return cat
}

func TestValidateFixedItemAccepted(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="10" frn="0"><fixed bytes="2">
		<field name="sac" bits="8" type="numeric"/>
		<field name="sic" bits="8" type="numeric"/>
	</fixed></item></category>`)
	if diags := Validate(cat); diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}
}

func TestValidateFixedItemByteMismatchRejected(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="10" frn="0"><fixed bytes="2">
		<field name="sac" bits="8" type="numeric"/>
	</fixed></item></category>`)
	diags := Validate(cat)
	if !diags.HasErrors() {
		t.Fatal("expected a byte-count mismatch error")
	}
}

func TestValidateExtendedPartGroupMustSumToSevenBits(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="30" frn="2"><extended bytes="1">
		<part index="0"><field name="a" bits="6" type="numeric"/></part>
	</extended></item></category>`)
	diags := Validate(cat)
	if !diags.HasErrors() {
		t.Fatal("expected a part-group bit-sum error")
	}
}

func TestValidateExtendedPartCountMustMatchDeclaredBytes(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="30" frn="2"><extended bytes="2">
		<part index="0"><field name="a" bits="7" type="numeric"/></part>
	</extended></item></category>`)
	diags := Validate(cat)
	if !diags.HasErrors() {
		t.Fatal("expected a part-count mismatch error")
	}
}

func TestValidateRejectsNestedCompound(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="50" frn="4"><compound>
		<compound index="0"/>
	</compound></item></category>`)
	diags := Validate(cat)
	if !diags.HasErrors() {
		t.Fatal("expected an error for nested compound")
	}
	found := false
	for _, d := range diags {
		if d.Kind == "compound" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a diagnostic tagged kind=compound, got %+v", diags)
	}
}

func TestValidateRejectsDuplicateFieldNames(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="10" frn="0"><fixed bytes="2">
		<field name="sac" bits="8" type="numeric"/>
		<field name="sac" bits="8" type="numeric"/>
	</fixed></item></category>`)
	diags := Validate(cat)
	if !diags.HasErrors() {
		t.Fatal("expected duplicate field name error")
	}
}

func TestValidateRejectsBadFieldTypeTag(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="10" frn="0"><fixed bytes="1">
		<field name="a" bits="8" type="weird"/>
	</fixed></item></category>`)
	diags := Validate(cat)
	if !diags.HasErrors() {
		t.Fatal("expected invalid type-tag error")
	}
}

func TestValidateRejectsUnalignedStringField(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="10" frn="0"><fixed bytes="1">
		<field name="a" bits="5" type="string"/>
	</fixed></item></category>`)
	diags := Validate(cat)
	if !diags.HasErrors() {
		t.Fatal("expected string-bit-width error")
	}
}

func TestValidateRejectsMisalignedStringStart(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="10" frn="0"><fixed bytes="2">
		<field name="a" bits="4" type="numeric"/>
		<field name="s" bits="8" type="string"/>
		<spare bits="4"/>
	</fixed></item></category>`)
	diags := Validate(cat)
	if !diags.HasErrors() {
		t.Fatal("expected a mid-byte string start to be rejected")
	}
}

func TestValidateEPBStringAlignedAfterValidityBit(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="70" frn="6"><fixed bytes="7">
		<spare bits="7"/>
		<epb><field name="callsign" bits="48" type="string"/></epb>
	</fixed></item></category>`)
	if diags := Validate(cat); diags.HasErrors() {
		t.Fatalf("7 spare bits + validity bit should leave the string byte-aligned: %v", diags)
	}
}

func TestValidateEPBStringMisalignedRejected(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="70" frn="6"><fixed bytes="7">
		<epb><field name="callsign" bits="48" type="string"/></epb>
		<spare bits="7"/>
	</fixed></item></category>`)
	diags := Validate(cat)
	if !diags.HasErrors() {
		t.Fatal("expected an EPB string whose content starts mid-byte to be rejected")
	}
}

func TestValidateEnumDuplicateValueRejected(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="10" frn="0"><fixed bytes="1">
		<enum name="mode" bits="2">
			<value name="A" value="1"/>
			<value name="B" value="1"/>
		</enum>
		<spare bits="6"/>
	</fixed></item></category>`)
	diags := Validate(cat)
	if !diags.HasErrors() {
		t.Fatal("expected duplicate enum value error")
	}
}

func TestValidateCompoundRecursesIntoSubItems(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="50" frn="4"><compound>
		<fixed bytes="1" index="0"><field name="a" bits="4" type="numeric"/></fixed>
	</compound></item></category>`)
	diags := Validate(cat)
	if !diags.HasErrors() {
		t.Fatal("expected the sub-item's own byte-mismatch to surface")
	}
}

func TestValidateEPBContributesValidityBit(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="60" frn="5"><fixed bytes="1">
		<epb><field name="a" bits="7" type="numeric"/></epb>
	</fixed></item></category>`)
	if diags := Validate(cat); diags.HasErrors() {
		t.Fatalf("EPB(7 bits)+1 validity bit should satisfy 1 declared byte: %v", diags)
	}
}

func TestValidateRepetitiveElementByteBudget(t *testing.T) {
	cat := mustParse(t, `<category id="1"><item id="40" frn="3"><repetitive bytes="1" counter="3">
		<field name="a" bits="8" type="numeric"/>
	</repetitive></item></category>`)
	if diags := Validate(cat); diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}
}
