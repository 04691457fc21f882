package extract

import (
	"go/ast"
	"go/types"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Config controls which generated types TypeCollector reports on.
type Config struct {
	IncludePrivate  bool     // Include unexported types
	IncludePatterns []string // Type name glob patterns to include
	ExcludePatterns []string // Type name glob patterns to exclude
}

// DefaultConfig returns a default configuration: exported types only.
func DefaultConfig() *Config {
	return &Config{IncludePrivate: false}
}

// TypeCollector walks the loaded ASTs and types of generated ASTERIX
// packages and reports the struct and enum types they define. It exists so
// `asterixgen inspect` can print a shape summary alongside its type-check
// result, to let a reader spot a missing Item type or enum at a glance.
type TypeCollector struct {
	packages []*packages.Package
	config   *Config
	types    map[string]*TypeInfo
	enums    map[string]*EnumInfo
}

// NewTypeCollector creates a new type collector over already-loaded packages.
func NewTypeCollector(pkgs []*packages.Package, cfg *Config) *TypeCollector {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &TypeCollector{
		packages: pkgs,
		config:   cfg,
		types:    make(map[string]*TypeInfo),
		enums:    make(map[string]*EnumInfo),
	}
}

// Collect walks all loaded packages and populates Types/Enums.
func (c *TypeCollector) Collect() error {
	for _, pkg := range c.packages {
		c.collectPackage(pkg)
	}
	return nil
}

// Types returns the collected struct types, keyed by "pkgPath.Name".
func (c *TypeCollector) Types() map[string]*TypeInfo {
	return c.types
}

// Enums returns the collected enum types, keyed by "pkgPath.Name".
func (c *TypeCollector) Enums() map[string]*EnumInfo {
	return c.enums
}

func (c *TypeCollector) collectPackage(pkg *packages.Package) {
	typeDocs := make(map[string]string)
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := extractDoc(genDecl.Doc)
				if doc == "" {
					doc = extractDoc(typeSpec.Doc)
				}
				typeDocs[typeSpec.Name.Name] = strings.TrimSpace(doc)
			}
		}
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if obj == nil {
			continue
		}
		if !c.config.IncludePrivate && !obj.Exported() {
			continue
		}
		if !c.matchesPatterns(name) {
			continue
		}
		if typeName, ok := obj.(*types.TypeName); ok {
			c.collectType(typeName, pkg.PkgPath, typeDocs[name])
		}
	}

	c.collectEnumValues(pkg)
}

func (c *TypeCollector) collectType(typeName *types.TypeName, pkgPath string, doc string) {
	underlying := typeName.Type().Underlying()
	qualifiedName := pkgPath + "." + typeName.Name()

	switch t := underlying.(type) {
	case *types.Struct:
		info := &TypeInfo{
			Name:    typeName.Name(),
			Package: typeName.Pkg().Name(),
			PkgPath: pkgPath,
			Doc:     doc,
			GoType:  typeName.Type(),
		}
		for i := 0; i < t.NumFields(); i++ {
			field := t.Field(i)
			if !c.config.IncludePrivate && !field.Exported() {
				continue
			}
			info.Fields = append(info.Fields, &FieldInfo{
				Name:      field.Name(),
				GoType:    field.Type(),
				TypeName:  c.typeToString(field.Type()),
				IsPointer: isPointer(field.Type()),
				IsSlice:   isSliceOrArray(field.Type()),
			})
		}
		c.types[qualifiedName] = info

	case *types.Basic:
		if t.Info()&types.IsInteger != 0 {
			c.enums[qualifiedName] = &EnumInfo{
				Name:    typeName.Name(),
				Package: typeName.Pkg().Name(),
				PkgPath: pkgPath,
				Doc:     doc,
				GoType:  typeName.Type(),
			}
		}
	}
}

func (c *TypeCollector) collectEnumValues(pkg *packages.Package) {
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		cnst, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			continue
		}
		named, ok := cnst.Type().(*types.Named)
		if !ok || named.Obj().Pkg() == nil {
			continue
		}
		qualifiedName := named.Obj().Pkg().Path() + "." + named.Obj().Name()
		enumInfo, exists := c.enums[qualifiedName]
		if !exists {
			continue
		}
		if val, ok := constantToInt64(cnst); ok {
			enumInfo.Values = append(enumInfo.Values, &EnumValueInfo{Name: cnst.Name(), Number: val})
		}
	}
}

func constantToInt64(cnst *types.Const) (int64, bool) {
	if cnst.Val() == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(cnst.Val().String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *TypeCollector) matchesPatterns(name string) bool {
	if len(c.config.IncludePatterns) == 0 {
		for _, pattern := range c.config.ExcludePatterns {
			if matchGlob(pattern, name) {
				return false
			}
		}
		return true
	}

	matched := false
	for _, pattern := range c.config.IncludePatterns {
		if matchGlob(pattern, name) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, pattern := range c.config.ExcludePatterns {
		if matchGlob(pattern, name) {
			return false
		}
	}
	return true
}

func matchGlob(pattern, name string) bool {
	regexPattern := "^" + strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, `.*`) + "$"
	matched, _ := regexp.MatchString(regexPattern, name)
	return matched
}

func (c *TypeCollector) typeToString(t types.Type) string {
	return types.TypeString(t, func(pkg *types.Package) string {
		return pkg.Name()
	})
}

func isPointer(t types.Type) bool {
	_, ok := t.(*types.Pointer)
	return ok
}

func isSliceOrArray(t types.Type) bool {
	switch t.(type) {
	case *types.Slice, *types.Array:
		return true
	}
	return false
}
