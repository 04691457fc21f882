package lower

import "strings"

// TypeForBits maps a bit count to the Go unsigned integer type that holds
// it, per the type-selection rule: b<=8 -> uint8, <=16 -> uint16, <=32 ->
// uint32, <=64 -> uint64, else -> asterix.Uint128 (Go has no native
// 128-bit integer; see pkg/asterix.Uint128 and DESIGN.md).
func TypeForBits(bits int) string {
	switch {
	case bits <= 8:
		return "uint8"
	case bits <= 16:
		return "uint16"
	case bits <= 32:
		return "uint32"
	case bits <= 64:
		return "uint64"
	default:
		return "asterix.Uint128"
	}
}

// ToPascalCase converts a name to PascalCase for Go type and enum variant
// names, splitting on underscores/hyphens and on lower-to-upper or
// upper-to-lower case transitions so that runs like "SSR" or "mode_3a"
// produce "Ssr" / "Mode3a".
func ToPascalCase(name string) string {
	words := splitWords(name)
	var sb strings.Builder
	for _, w := range words {
		if w == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(w[:1]))
		sb.WriteString(strings.ToLower(w[1:]))
	}
	return sb.String()
}

// ToSnakeCase converts a name to snake_case for Go field names.
func ToSnakeCase(name string) string {
	words := splitWords(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// splitWords breaks name into words on '_', '-', and case transitions: a
// run of uppercase letters is kept together ("SSR" -> one word), but a
// case drop from upper to lower starts a new word one position back
// ("FooBar" -> "Foo", "Bar"; "SSRCode" -> "SSR", "Code").
func splitWords(name string) []string {
	var words []string
	var cur []rune
	runes := []rune(name)

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}

	for i, r := range runes {
		switch {
		case r == '_' || r == '-':
			flush()
		case r >= 'A' && r <= 'Z' && len(cur) > 0 && isLowerOrDigit(cur[len(cur)-1]):
			flush()
			cur = append(cur, r)
		case r >= 'A' && r <= 'Z' && i+1 < len(runes) && isLower(runes[i+1]) && len(cur) > 0 && isUpper(cur[len(cur)-1]):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}

func isUpper(r rune) bool        { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool        { return r >= 'a' && r <= 'z' }
func isLowerOrDigit(r rune) bool { return isLower(r) || (r >= '0' && r <= '9') }

// FspecPosition returns the (byte, bit) position Fspec.Set/IsSet expects
// for a zero-based FRN f: byte index f/7, bit index f mod 7 (the 8th bit
// of each byte is reserved for FX and is never returned here).
func FspecPosition(frn int) (byteIndex, bitIndex int) {
	return frn / 7, frn % 7
}
