package typescript

import "strings"

// Rules defines which identifiers never count as dependencies
type Rules struct {
	Keywords      map[string]bool
	BuiltinValues map[string]bool
	BuiltinTypes  map[string]bool
}

// DefaultRules holds reserved words and built-in allowlists
var DefaultRules = NewRules(
	[]string{
		"abstract", "any", "arguments", "as", "asserts", "assert", "async", "await", "bigint", "boolean", "break", "case",
		"catch", "class", "const", "constructor", "continue", "debugger", "declare", "default",
		"delete", "do", "else", "enum", "export", "extends", "false", "finally", "for", "from",
		"function", "get", "if", "implements", "import", "in", "infer", "instanceof", "interface", "is",
		"keyof", "let", "module", "namespace", "never", "new", "null", "number", "object", "of",
		"package", "private", "protected", "public", "readonly", "require", "return", "satisfies", "set",
		"static", "string", "super", "switch", "symbol", "this", "throw", "true", "try", "type",
		"typeof", "undefined", "unique", "unknown", "var", "void", "while", "with", "yield",
	},
	[]string{
		"console", "JSON", "Date", "Math", "Object", "Array", "String", "Number", "Boolean",
		"RegExp", "Error", "Promise", "Map", "Set", "WeakMap", "WeakSet", "Symbol", "BigInt",
	},
	[]string{
		"String", "Number", "Boolean", "Array", "Object", "Date", "RegExp", "Error", "Promise",
		"Map", "Set", "WeakMap", "WeakSet", "Symbol", "BigInt", "Function", "Record", "Partial",
		"Required", "Readonly", "Pick", "Omit", "Exclude", "Extract", "NonNullable", "Parameters",
		"ConstructorParameters", "ReturnType", "InstanceType", "ThisParameterType", "OmitThisParameter",
		"ThisType", "Uppercase", "Lowercase", "Capitalize", "Uncapitalize", "Awaited", "ReadonlyArray",
	},
)

// NewRules creates rules from keyword, built-in value and built-in type lists
func NewRules(keywords, values, types []string) *Rules {
	return &Rules{
		Keywords:      toSet(keywords),
		BuiltinValues: toSet(values),
		BuiltinTypes:  toSet(types),
	}
}

// IsValueCandidate returns true if an identifier in value position may be a dependency
func (r *Rules) IsValueCandidate(name string) bool {
	name = baseName(name)
	if name == "" {
		return false
	}
	return !r.Keywords[name] && !r.BuiltinValues[name]
}

// IsTypeCandidate returns true if a type reference may be a dependency
func (r *Rules) IsTypeCandidate(name string) bool {
	name = baseName(name)
	if name == "" {
		return false
	}
	return !r.Keywords[name] && !r.BuiltinTypes[name]
}

// baseName strips generic type arguments, Promise<TUser> becomes Promise
func baseName(name string) string {
	if idx := strings.Index(name, "<"); idx != -1 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}

// IsTypeName reports whether name follows type naming convention: leading upper case, not entirely upper case
func IsTypeName(name string) bool {
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	return name != strings.ToUpper(name)
}

func toSet(items []string) map[string]bool {
	result := make(map[string]bool, len(items))
	for _, item := range items {
		result[item] = true
	}
	return result
}
