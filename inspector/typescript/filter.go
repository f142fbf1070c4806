package typescript

import (
	"strings"

	"github.com/viant/tssplit/inspector/graph"
)

// Statement represents an import statement of a generated unit
type Statement struct {
	Source    string
	TypeOnly  bool
	Default   string
	Namespace string
	Names     []string // rendered specifiers, `a` or `a as b`
}

// String renders the statement
func (s *Statement) String() string {
	builder := &strings.Builder{}
	builder.WriteString("import ")
	if s.TypeOnly {
		builder.WriteString("type ")
	}
	var clauses []string
	if s.Default != "" {
		clauses = append(clauses, s.Default)
	}
	if s.Namespace != "" {
		clauses = append(clauses, "* as "+s.Namespace)
	}
	if len(s.Names) > 0 {
		clauses = append(clauses, "{ "+strings.Join(s.Names, ", ")+" }")
	}
	if len(clauses) == 0 {
		builder.WriteString("'" + s.Source + "'")
		return builder.String()
	}
	builder.WriteString(strings.Join(clauses, ", "))
	builder.WriteString(" from '" + s.Source + "'")
	return builder.String()
}

// Imports groups import statements of a unit
type Imports struct {
	TypeOnly []*Statement
	Value    []*Statement
}

// Len returns number of statements
func (i *Imports) Len() int {
	return len(i.TypeOnly) + len(i.Value)
}

// FilterImports selects imports referenced by decl, its closure or the module-private constants they use,
// split into type-only and value statements.
// Exported sibling declarations referenced by decl are imported from their own generated unit.
func FilterImports(decl *graph.Declaration, closure graph.Closure, aFile *graph.File) *Imports {
	return filterImports(decl, closure, referencedConstants(decl, closure, aFile), aFile)
}

func filterImports(decl *graph.Declaration, closure graph.Closure, constants []*graph.Declaration, aFile *graph.File) *Imports {
	members := append(graph.Closure{decl}, closure...)
	used, values := usedNames(append(members, constants...))
	result := &Imports{}
	for _, imp := range aFile.Imports {
		filterImport(imp, used, values, result)
	}
	for _, name := range used.Items() {
		sibling := aFile.Lookup(name)
		if sibling == nil || sibling == decl || !sibling.IsExported || sibling.IsDefault || sibling.Kind == graph.KindVariable {
			continue
		}
		specifier := sibling.Name
		if sibling.Alias != "" {
			specifier = sibling.Alias + " as " + sibling.Name
		}
		stmt := &Statement{Source: "./" + KebabCase(sibling.ExportedName()), Names: []string{specifier}}
		if sibling.Kind.IsType() {
			stmt.TypeOnly = true
			result.TypeOnly = append(result.TypeOnly, stmt)
			continue
		}
		result.Value = append(result.Value, stmt)
	}
	return result
}

// usedNames returns dependencies of members in order, with the ones used in expression position
func usedNames(members []*graph.Declaration) (used, values graph.Names) {
	for _, member := range members {
		for _, name := range member.Dependencies.Items() {
			used.Add(name)
		}
		for _, name := range member.ValueReferences.Items() {
			values.Add(name)
		}
	}
	return used, values
}

func filterImport(imp *graph.Import, deps, values graph.Names, result *Imports) {
	defaultName := ""
	if name := imp.DefaultName(); name != "" && deps.Has(name) {
		defaultName = name
	}
	namespace := ""
	if imp.Namespace != "" && deps.Has(imp.Namespace) {
		namespace = imp.Namespace
	}
	var typeNames, valueNames []string
	for _, name := range imp.Names {
		if name == imp.DefaultName() || !deps.Has(name) {
			continue
		}
		if isTypeImport(imp, name, values) {
			typeNames = append(typeNames, imp.Specifier(name))
			continue
		}
		valueNames = append(valueNames, imp.Specifier(name))
	}
	if defaultName == "" && namespace == "" && len(typeNames) == 0 && len(valueNames) == 0 {
		return
	}

	if imp.TypeOnly {
		// a type-only import can not mix a default binding with named ones
		if defaultName != "" || namespace != "" {
			result.TypeOnly = append(result.TypeOnly, &Statement{Source: imp.Source, TypeOnly: true, Default: defaultName, Namespace: namespace})
		}
		if len(typeNames) > 0 {
			result.TypeOnly = append(result.TypeOnly, &Statement{Source: imp.Source, TypeOnly: true, Names: typeNames})
		}
		return
	}
	if len(typeNames) > 0 {
		result.TypeOnly = append(result.TypeOnly, &Statement{Source: imp.Source, TypeOnly: true, Names: typeNames})
	}
	if defaultName != "" || namespace != "" || len(valueNames) > 0 {
		stmt := &Statement{Source: imp.Source, Default: defaultName, Names: valueNames}
		if namespace != "" {
			if len(valueNames) > 0 {
				// a namespace import can not be combined with named imports
				result.Value = append(result.Value, &Statement{Source: imp.Source, Default: defaultName, Namespace: namespace})
				stmt.Default = ""
			} else {
				stmt.Namespace = namespace
			}
		}
		result.Value = append(result.Value, stmt)
	}
}

// isTypeImport reports whether a named import is used as a type only:
// explicitly marked as type, or following type naming convention and never used as a value
func isTypeImport(imp *graph.Import, name string, values graph.Names) bool {
	if imp.IsTypeName(name) {
		return true
	}
	return IsTypeName(name) && !values.Has(name)
}
