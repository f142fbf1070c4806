package typescript

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/viant/tssplit/inspector/graph"
)

const (
	defaultExtension = ".ts"
	defaultIndexName = "index"
)

// Emitter renders one self-contained unit per exported declaration and the aggregating index unit
type Emitter struct {
	Extension string // generated file extension, .ts by default
	IndexName string // index file base name, index by default
}

// NewEmitter creates an emitter for generated files with the supplied extension
func NewEmitter(extension, indexName string) *Emitter {
	return &Emitter{Extension: extension, IndexName: indexName}
}

func (e *Emitter) extension() string {
	if e == nil || e.Extension == "" {
		return defaultExtension
	}
	if !strings.HasPrefix(e.Extension, ".") {
		return "." + e.Extension
	}
	return e.Extension
}

func (e *Emitter) indexName() string {
	if e == nil || e.IndexName == "" {
		return defaultIndexName
	}
	return e.IndexName
}

// FileName returns generated file name for a declaration name
func (e *Emitter) FileName(name string) string {
	return KebabCase(name) + e.extension()
}

// Emit renders exported declarations in generation order followed by the index unit.
// It returns no units when the file has no exported declarations.
func (e *Emitter) Emit(aFile *graph.File) ([]*graph.Unit, error) {
	exported := aFile.Exported()
	if len(exported) == 0 {
		return nil, nil
	}
	var units []*graph.Unit
	for _, decl := range exported {
		unit, err := e.EmitDeclaration(decl, aFile)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	index := &graph.Unit{
		Name:     e.indexName(),
		FileName: e.indexName() + e.extension(),
		Content:  EmitIndex(units, e.extension()),
	}
	index.Fingerprint = graph.Fingerprint(index.Content)
	return append(units, index), nil
}

// EmitDeclaration renders a single exported declaration with its imports, local types and constants
func (e *Emitter) EmitDeclaration(decl *graph.Declaration, aFile *graph.File) (*graph.Unit, error) {
	if decl.Location == nil {
		return nil, errors.Newf("%s %s has no source text", decl.Kind, decl.Name)
	}
	closure := graph.Resolve(decl, aFile)
	constants := referencedConstants(decl, closure, aFile)
	imports := filterImports(decl, closure, constants, aFile)

	var lines []string
	for _, stmt := range imports.TypeOnly {
		lines = append(lines, stmt.String())
	}
	for _, stmt := range imports.Value {
		lines = append(lines, stmt.String())
	}
	if imports.Len() > 0 {
		lines = append(lines, "")
	}
	for _, local := range closure {
		lines = append(lines, local.Content())
	}
	if len(closure) > 0 {
		lines = append(lines, "")
	}
	var constantNames []string
	for _, constant := range constants {
		lines = append(lines, renderConstant(constant))
		constantNames = append(constantNames, constant.Name)
	}
	if len(constants) > 0 {
		lines = append(lines, "")
	}
	lines = append(lines, canonical(decl))

	content := []byte(strings.Join(lines, "\n") + "\n")
	return &graph.Unit{
		Name:        decl.ExportedName(),
		Kind:        decl.Kind,
		Default:     decl.IsDefault,
		FileName:    e.FileName(decl.ExportedName()),
		LocalTypes:  closure.Names(),
		Constants:   constantNames,
		Content:     content,
		Fingerprint: graph.Fingerprint(content),
	}, nil
}

// EmitIndex renders one re-export line per unit in generation order, `export *` skips default exports
func EmitIndex(units []*graph.Unit, extension string) []byte {
	builder := &strings.Builder{}
	for _, unit := range units {
		if unit.Default {
			builder.WriteString("export { default } from './")
		} else {
			builder.WriteString("export * from './")
		}
		builder.WriteString(strings.TrimSuffix(unit.FileName, extension))
		builder.WriteString("'\n")
	}
	return []byte(builder.String())
}

// referencedConstants returns module-private variables referenced by decl, its closure or another
// referenced variable, in source order
func referencedConstants(decl *graph.Declaration, closure graph.Closure, aFile *graph.File) []*graph.Declaration {
	used, _ := usedNames(append(graph.Closure{decl}, closure...))
	constants := aFile.Constants()
	included := map[string]bool{}
	for changed := true; changed; {
		changed = false
		for _, constant := range constants {
			if included[constant.Name] || !used.Has(constant.Name) {
				continue
			}
			included[constant.Name] = true
			changed = true
			for _, name := range constant.Dependencies.Items() {
				used.Add(name)
			}
		}
	}
	var result []*graph.Declaration
	for _, constant := range constants {
		if included[constant.Name] {
			result = append(result, constant)
		}
	}
	return result
}

func renderConstant(constant *graph.Declaration) string {
	if constant.Value == "" {
		return "let " + constant.Name
	}
	return "const " + constant.Name + " = " + constant.Value
}

// canonical strips leading export, default and async keywords and prefixes them back in canonical order.
// Decorators go first, an aliased declaration is exported by an export list under its public name.
func canonical(decl *graph.Declaration) string {
	text := strings.TrimSpace(decl.Content())
	isAsync := false
	for {
		keyword, rest := leadingWord(text)
		switch keyword {
		case "export", "default":
		case "async":
			isAsync = true
		default:
			return decorate(decl, keywords(decl, isAsync)+text)
		}
		text = rest
	}
}

func keywords(decl *graph.Declaration, isAsync bool) string {
	prefix := ""
	if decl.Alias == "" {
		prefix = "export "
		if decl.IsDefault {
			prefix += "default "
		}
	}
	if isAsync {
		prefix += "async "
	}
	return prefix
}

func decorate(decl *graph.Declaration, text string) string {
	if len(decl.Decorators) > 0 {
		text = strings.Join(decl.Decorators, "\n") + "\n" + text
	}
	if decl.Alias != "" {
		text += "\n\nexport { " + decl.Name + " as " + decl.Alias + " }"
	}
	return text
}

// leadingWord splits text into its first word and the remainder without leading white space
func leadingWord(text string) (string, string) {
	end := strings.IndexAny(text, " \t\r\n")
	if end == -1 {
		return text, ""
	}
	return text[:end], strings.TrimLeft(text[end:], " \t\r\n")
}
