package typescript

import (
	"context"
	"path"
	"strings"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/viant/tssplit/inspector/graph"
)

// ErrParseFailure is returned when the source cannot be parsed
var ErrParseFailure = errors.New("failed to parse source")

// Inspector provides functionality to inspect TypeScript/JavaScript modules and extract top-level declarations
type Inspector struct {
	rules *Rules
}

// Option represents an inspector option
type Option func(*Inspector)

// WithRules overrides keyword and built-in allowlists
func WithRules(rules *Rules) Option {
	return func(i *Inspector) {
		i.rules = rules
	}
}

// NewInspector creates a new Inspector
func NewInspector(options ...Option) *Inspector {
	ret := &Inspector{rules: DefaultRules}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Language returns tree-sitter language for a file name, TSX grammar covers JSX syntax
// which JavaScript modules commonly carry regardless of their extension
func Language(filename string) *sitter.Language {
	switch strings.ToLower(path.Ext(filename)) {
	case ".tsx", ".jsx", ".js", ".mjs", ".cjs":
		return tsx.GetLanguage()
	}
	return typescript.GetLanguage()
}

// InspectSource parses TypeScript source code from a byte slice and extracts the module table
func (i *Inspector) InspectSource(src []byte) (*graph.File, error) {
	return i.Inspect(context.Background(), "source.ts", src)
}

// Inspect parses source code of filename and extracts the module table
func (i *Inspector) Inspect(ctx context.Context, filename string, src []byte) (*graph.File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(Language(filename))

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to parse %s", filename), ErrParseFailure)
	}
	defer tree.Close()
	rootNode := tree.RootNode()
	if rootNode.HasError() {
		if node := firstError(rootNode); node != nil {
			point := node.StartPoint()
			return nil, errors.Wrapf(ErrParseFailure, "%s: syntax error at %d:%d", filename, point.Row+1, point.Column+1)
		}
		return nil, errors.Wrapf(ErrParseFailure, "%s: syntax error", filename)
	}
	return i.processFile(rootNode, src, filename)
}

// firstError returns the first error or missing node in document order
func firstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if !child.HasError() && !child.IsMissing() {
			continue
		}
		if found := firstError(child); found != nil {
			return found
		}
	}
	return nil
}
