package schema

import (
	"fmt"
	"os"
)

// LoadFile reads the XML schema at path, parses it, and runs Validate. The
// second return value carries every Diagnostic: parse failures are reported
// as a single error-severity Diagnostic; validator diagnostics follow.
// Callers should treat any Error-severity diagnostic as a hard stop per the
// validator's contract: the build aborts with a diagnostic naming the
// offending item and kind.
func LoadFile(path string) (*Category, Diagnostics) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, Diagnostics{{
			Severity: SeverityError,
			Message:  fmt.Sprintf("failed to read %s: %v", path, err),
		}}
	}
	return LoadBytes(content)
}

// LoadBytes parses schema XML already held in memory and validates it.
// LoadFile calls it after reading the file; callers that already hold the
// schema bytes call it directly.
func LoadBytes(data []byte) (*Category, Diagnostics) {
	cat, err := ParseXML(data)
	if err != nil {
		return nil, Diagnostics{{
			Severity: SeverityError,
			Message:  err.Error(),
		}}
	}
	diags := Validate(cat)
	return cat, diags
}
