package lower

import "testing"

func TestTypeForBits(t *testing.T) {
	cases := []struct {
		bits int
		want string
	}{
		{1, "uint8"},
		{8, "uint8"},
		{9, "uint16"},
		{16, "uint16"},
		{17, "uint32"},
		{32, "uint32"},
		{33, "uint64"},
		{64, "uint64"},
		{65, "asterix.Uint128"},
		{128, "asterix.Uint128"},
	}
	for _, c := range cases {
		if got := TypeForBits(c.bits); got != c.want {
			t.Errorf("TypeForBits(%d) = %q, want %q", c.bits, got, c.want)
		}
	}
}

func TestToPascalCase(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"mode_3a", "Mode3a"},
		{"SSR", "Ssr"},
		{"sac", "Sac"},
		{"target_type", "TargetType"},
		{"FooBar", "FooBar"},
		{"SSRCode", "SsrCode"},
	}
	for _, c := range cases {
		if got := ToPascalCase(c.in); got != c.want {
			t.Errorf("ToPascalCase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"TargetType", "target_type"},
		{"sac", "sac"},
		{"SSRCode", "ssr_code"},
		{"mode-3a", "mode_3a"},
	}
	for _, c := range cases {
		if got := ToSnakeCase(c.in); got != c.want {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFspecPosition(t *testing.T) {
	cases := []struct {
		frn        int
		wantByte   int
		wantBit    int
	}{
		{0, 0, 0},
		{6, 0, 6},
		{7, 1, 0},
		{13, 1, 6},
		{14, 2, 0},
	}
	for _, c := range cases {
		b, k := FspecPosition(c.frn)
		if b != c.wantByte || k != c.wantBit {
			t.Errorf("FspecPosition(%d) = (%d,%d), want (%d,%d)", c.frn, b, k, c.wantByte, c.wantBit)
		}
	}
}
