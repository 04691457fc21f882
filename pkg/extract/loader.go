// Package extract type-checks and introspects Go packages produced by the
// asterixgen code generator. Where the generator itself only ever writes
// Go source, this package reads it back through go/types to confirm the
// emission compiles cleanly and to report the shape of what came out.
package extract

import (
	"fmt"
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// PackageLoader loads Go packages for analysis.
type PackageLoader struct {
	config *packages.Config
}

// NewPackageLoader creates a new package loader.
func NewPackageLoader() *PackageLoader {
	return &PackageLoader{
		config: &packages.Config{
			Mode: packages.NeedName |
				packages.NeedTypes |
				packages.NeedTypesInfo |
				packages.NeedSyntax |
				packages.NeedImports |
				packages.NeedDeps,
		},
	}
}

// Load loads packages matching the given patterns and fails if any of them
// carry compile errors, so a malformed generator emission is caught before
// it reaches a consuming build.
func (l *PackageLoader) Load(patterns []string) ([]*packages.Package, error) {
	pkgs, err := packages.Load(l.config, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, err := range pkg.Errors {
			errs = append(errs, err)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs[0])
	}

	return pkgs, nil
}

// TypeInfo describes a generated struct type, e.g. a Record or ItemNNN.
type TypeInfo struct {
	Name    string
	Package string
	PkgPath string
	Doc     string
	Fields  []*FieldInfo
	GoType  types.Type
}

// FieldInfo describes one field of a generated struct type.
type FieldInfo struct {
	Name      string
	TypeName  string
	GoType    types.Type
	IsPointer bool
	IsSlice   bool
}

// EnumInfo describes a generated enum type, e.g. a TargetTypeEnum.
type EnumInfo struct {
	Name    string
	Package string
	PkgPath string
	Doc     string
	Values  []*EnumValueInfo
	GoType  types.Type
}

// EnumValueInfo describes a single named constant of an enum type.
type EnumValueInfo struct {
	Name   string
	Number int64
}

func extractDoc(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return cg.Text()
}
