package graph

import (
	"github.com/cockroachdb/errors"
)

// ErrNameCollision is returned when two top-level declarations share an identifier
var ErrNameCollision = errors.New("top-level name collision")

// Import represents a single import statement
type Import struct {
	Source    string   `yaml:"source"`
	Names     []string `yaml:"names,omitempty"` // default import local name comes first
	TypeOnly  bool     `yaml:"typeOnly,omitempty"`
	TypeNames []string `yaml:"typeNames,omitempty"` // specifiers individually marked as type
	IsDefault bool     `yaml:"default,omitempty"`
	Namespace string   `yaml:"namespace,omitempty"`

	// Aliases maps local name to imported name for `import { a as b }`
	Aliases map[string]string `yaml:"aliases,omitempty"`
}

// Specifier returns the import specifier for a local name
func (i *Import) Specifier(name string) string {
	if imported, ok := i.Aliases[name]; ok && imported != name {
		return imported + " as " + name
	}
	return name
}

// DefaultName returns local name of the default import
func (i *Import) DefaultName() string {
	if !i.IsDefault || len(i.Names) == 0 {
		return ""
	}
	return i.Names[0]
}

// IsTypeName returns true if the specifier was explicitly marked as type-only
func (i *Import) IsTypeName(name string) bool {
	if i.TypeOnly {
		return true
	}
	for _, candidate := range i.TypeNames {
		if candidate == name {
			return true
		}
	}
	return false
}

// File represents a parsed source module with its imports and top-level declarations
type File struct {
	Path       string         `yaml:"path"`
	Imports    []*Import      `yaml:"imports,omitempty"`
	Functions  []*Declaration `yaml:"functions,omitempty"`
	Classes    []*Declaration `yaml:"classes,omitempty"`
	Types      []*Declaration `yaml:"types,omitempty"`
	Interfaces []*Declaration `yaml:"interfaces,omitempty"`
	Variables  []*Declaration `yaml:"variables,omitempty"`

	declarationMap map[string]*Declaration
}

// NewFile creates an empty file
func NewFile(path string) *File {
	return &File{Path: path, declarationMap: map[string]*Declaration{}}
}

// AddImport adds an import record
func (f *File) AddImport(imp *Import) {
	f.Imports = append(f.Imports, imp)
}

// AddDeclaration registers a declaration, two declarations sharing a name are reported as collision
func (f *File) AddDeclaration(decl *Declaration) error {
	if f.declarationMap == nil {
		f.declarationMap = map[string]*Declaration{}
	}
	if prev, ok := f.declarationMap[decl.Name]; ok {
		return errors.Wrapf(ErrNameCollision, "%s %q conflicts with %s %q", decl.Kind, decl.Name, prev.Kind, prev.Name)
	}
	f.declarationMap[decl.Name] = decl
	switch decl.Kind {
	case KindFunction:
		f.Functions = append(f.Functions, decl)
	case KindClass:
		f.Classes = append(f.Classes, decl)
	case KindType:
		f.Types = append(f.Types, decl)
	case KindInterface:
		f.Interfaces = append(f.Interfaces, decl)
	case KindVariable:
		f.Variables = append(f.Variables, decl)
	}
	return nil
}

// Lookup retrieves a declaration by name
func (f *File) Lookup(name string) *Declaration {
	return f.declarationMap[name]
}

// LookupType retrieves a type alias or interface by name
func (f *File) LookupType(name string) *Declaration {
	if decl := f.declarationMap[name]; decl != nil && decl.Kind.IsType() {
		return decl
	}
	return nil
}

// Declarations returns all migratable declarations in generation order: functions, classes, types, interfaces
func (f *File) Declarations() []*Declaration {
	var result []*Declaration
	result = append(result, f.Functions...)
	result = append(result, f.Classes...)
	result = append(result, f.Types...)
	result = append(result, f.Interfaces...)
	return result
}

// Exported returns exported migratable declarations in generation order
func (f *File) Exported() []*Declaration {
	var result []*Declaration
	for _, decl := range f.Declarations() {
		if decl.IsExported {
			result = append(result, decl)
		}
	}
	return result
}

// Constants returns module-private non-function variables
func (f *File) Constants() []*Declaration {
	var result []*Declaration
	for _, variable := range f.Variables {
		if !variable.IsExported {
			result = append(result, variable)
		}
	}
	return result
}

// Counts returns number of declarations per migratable kind
func (f *File) Counts() map[Kind]int {
	return map[Kind]int{
		KindFunction:  len(f.Functions),
		KindClass:     len(f.Classes),
		KindType:      len(f.Types),
		KindInterface: len(f.Interfaces),
	}
}

// IsEmpty returns true if the file has no migratable declarations
func (f *File) IsEmpty() bool {
	return len(f.Declarations()) == 0
}
