// Package codegen renders a lowered ASTERIX category into target source
// text.
package codegen

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/asterix-gen/asterix/pkg/lower"
)

// Language identifies a code generation target. Only Go is implemented
// today; the registry lets a future target slot in without touching
// callers.
type Language string

const LanguageGo Language = "go"

// Generator produces target source text from a lowered category.
type Generator interface {
	Generate(w io.Writer, cat *lower.LoweredCategory, options Options) error
	Language() Language
	FileExtension() string
}

// Options configures code generation.
type Options struct {
	// Package overrides the Go package name; defaults to the category's
	// ModuleName (cat048, etc.) when empty.
	Package string

	// GenerateComments includes fixed doc comments on the generated Record
	// and DataBlock types and on each enum's String method. No comments are
	// emitted on item structs or fields.
	GenerateComments bool
}

// DefaultOptions returns the default code generation options.
func DefaultOptions() Options {
	return Options{GenerateComments: true}
}

var registry = make(map[Language]Generator)

// Register registers a generator for a language.
func Register(gen Generator) {
	registry[gen.Language()] = gen
}

// Get returns the generator for a language.
func Get(lang Language) (Generator, bool) {
	gen, ok := registry[lang]
	return gen, ok
}

// Languages returns all registered languages.
func Languages() []Language {
	langs := make([]Language, 0, len(registry))
	for lang := range registry {
		langs = append(langs, lang)
	}
	return langs
}

// upperCaser and lowerCaser back ToPascalCase; kept alongside pkg/lower's
// hand-rolled splitter since the two serve different callers (codegen's
// own identifier helpers vs. the lowerer's FieldDescriptor/enum naming).
// cases.Title is deliberately not used here: it titlecases the first
// *cased* rune of a word rather than rune zero, so a digit-led part like
// "3a" comes out "3A" instead of "3a".
var (
	upperCaser = cases.Upper(language.English)
	lowerCaser = cases.Lower(language.English)
)

// ToPascalCase converts a string to PascalCase.
func ToPascalCase(s string) string {
	parts := splitName(s)
	for i, p := range parts {
		lower := lowerCaser.String(p)
		if lower == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(lower)
		parts[i] = upperCaser.String(string(r)) + lower[size:]
	}
	return strings.Join(parts, "")
}

// ToCamelCase converts a string to camelCase.
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if len(pascal) == 0 {
		return ""
	}
	return strings.ToLower(pascal[:1]) + pascal[1:]
}

// splitName splits a name into parts based on underscores and case
// transitions.
func splitName(s string) []string {
	if s == "" {
		return nil
	}

	var parts []string
	var current strings.Builder

	for i, r := range s {
		if r == '_' || r == '-' {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
			continue
		}

		if i > 0 && isUpper(r) && !isUpper(rune(s[i-1])) {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Indent indents each non-empty line of s by the given number of tabs.
func Indent(s string, tabs int) string {
	indent := strings.Repeat("\t", tabs)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}

// GoComment wraps text as a Go doc comment, one "//" line per input line.
func GoComment(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "// " + line
	}
	return strings.Join(lines, "\n")
}

// GeneratorError is a code-generation failure tied to the item that
// caused it.
type GeneratorError struct {
	Message  string
	ItemName string
}

func (e *GeneratorError) Error() string {
	if e.ItemName != "" {
		return fmt.Sprintf("%s: %s", e.ItemName, e.Message)
	}
	return e.Message
}
