package typescript

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/tssplit/inspector/graph"
)

// defaultName names the target of `export default`
const defaultName = "default"

// processFile extracts imports and top-level declarations, including the ones wrapped by export statements
func (i *Inspector) processFile(rootNode *sitter.Node, src []byte, filename string) (*graph.File, error) {
	aFile := graph.NewFile(filename)
	var exportedNames []exportedName

	for j := 0; j < int(rootNode.NamedChildCount()); j++ {
		node := rootNode.NamedChild(j)
		switch node.Type() {
		case "import_statement":
			if imp := parseImport(node, src); imp != nil {
				aFile.AddImport(imp)
			}
		case "export_statement":
			names, err := i.processExport(node, src, aFile)
			if err != nil {
				return nil, err
			}
			exportedNames = append(exportedNames, names...)
		default:
			if err := i.processDeclaration(node, src, aFile, false, false); err != nil {
				return nil, err
			}
		}
	}

	// export { a, b as c } and export default a may precede the declaration they refer to
	for _, exported := range exportedNames {
		decl := aFile.Lookup(exported.local)
		if decl == nil {
			continue
		}
		if exported.alias != "" && exported.alias != defaultName && !decl.IsExported && decl.Alias == "" {
			decl.Alias = exported.alias
		}
		decl.IsExported = true
	}
	return aFile, nil
}

// exportedName represents a local binding exported by reference, alias is set for `local as alias`
type exportedName struct {
	local string
	alias string
}

// processExport handles export statements, it returns local names exported by reference
func (i *Inspector) processExport(node *sitter.Node, src []byte, aFile *graph.File) ([]exportedName, error) {
	isDefault := hasToken(node, "default")
	if declaration := node.ChildByFieldName("declaration"); declaration != nil {
		if err := i.processDeclaration(declaration, src, aFile, true, isDefault); err != nil {
			return nil, err
		}
		i.attachDecorators(node, declaration, src, aFile)
		return nil, nil
	}
	if node.ChildByFieldName("source") != nil {
		// export { a } from './a' re-exports another module
		return nil, nil
	}
	if value := node.ChildByFieldName("value"); value != nil {
		if !isDefault {
			return nil, nil
		}
		switch value.Type() {
		case "identifier":
			return []exportedName{{local: value.Content(src)}}, nil
		case "function_expression", "function", "generator_function", "arrow_function", "class":
			if err := i.processDeclaration(value, src, aFile, true, true); err != nil {
				return nil, err
			}
			i.attachDecorators(node, value, src, aFile)
		}
		return nil, nil
	}
	var names []exportedName
	for j := 0; j < int(node.NamedChildCount()); j++ {
		clause := node.NamedChild(j)
		if clause.Type() != "export_clause" {
			continue
		}
		for k := 0; k < int(clause.NamedChildCount()); k++ {
			specifier := clause.NamedChild(k)
			if specifier.Type() != "export_specifier" {
				continue
			}
			name := specifier.ChildByFieldName("name")
			if name == nil {
				continue
			}
			exported := exportedName{local: name.Content(src)}
			if alias := specifier.ChildByFieldName("alias"); alias != nil {
				exported.alias = alias.Content(src)
			}
			names = append(names, exported)
		}
	}
	return names, nil
}

// attachDecorators assigns decorators written before `export` to the class declared at target
func (i *Inspector) attachDecorators(statement, target *sitter.Node, src []byte, aFile *graph.File) {
	var decorators []*sitter.Node
	for j := 0; j < int(statement.NamedChildCount()); j++ {
		if child := statement.NamedChild(j); child.Type() == "decorator" {
			decorators = append(decorators, child)
		}
	}
	if len(decorators) == 0 {
		return
	}
	for _, decl := range aFile.Classes {
		if decl.Location.Start != int(target.StartByte()) {
			continue
		}
		var deps, values graph.Names
		for _, decorator := range decorators {
			decl.Decorators = append(decl.Decorators, decorator.Content(src))
			decoratorDeps, decoratorValues := Dependencies(decorator, src, decl.Name, i.rules)
			addNames(&deps, decoratorDeps)
			addNames(&values, decoratorValues)
		}
		// decorators precede the class body in source order
		addNames(&deps, decl.Dependencies)
		addNames(&values, decl.ValueReferences)
		decl.Dependencies, decl.ValueReferences = deps, values
		return
	}
}

func addNames(target *graph.Names, names graph.Names) {
	for _, name := range names.Items() {
		target.Add(name)
	}
}

// processDeclaration classifies a top-level statement and registers its declarations
func (i *Inspector) processDeclaration(node *sitter.Node, src []byte, aFile *graph.File, isExported, isDefault bool) error {
	switch node.Type() {
	case "function_declaration", "generator_function_declaration", "function_expression", "function",
		"generator_function", "arrow_function":
		decl := i.newDeclaration(node, node, src, graph.KindFunction, isExported, isDefault)
		decl.IsAsync = hasToken(node, "async")
		decl.Parameters = parameterNames(node, src)
		return aFile.AddDeclaration(decl)
	case "class_declaration", "abstract_class_declaration", "class":
		return aFile.AddDeclaration(i.newDeclaration(node, node, src, graph.KindClass, isExported, isDefault))
	case "type_alias_declaration":
		return aFile.AddDeclaration(i.newDeclaration(node, node, src, graph.KindType, isExported, isDefault))
	case "interface_declaration":
		return aFile.AddDeclaration(i.newDeclaration(node, node, src, graph.KindInterface, isExported, isDefault))
	case "lexical_declaration", "variable_declaration":
		for j := 0; j < int(node.NamedChildCount()); j++ {
			declarator := node.NamedChild(j)
			if declarator.Type() != "variable_declarator" {
				continue
			}
			if err := i.processDeclarator(node, declarator, src, aFile, isExported); err != nil {
				return err
			}
		}
	}
	return nil
}

// processDeclarator registers a binding, a binding initialized with a function literal becomes a function
func (i *Inspector) processDeclarator(statement, declarator *sitter.Node, src []byte, aFile *graph.File, isExported bool) error {
	nameNode := declarator.ChildByFieldName("name")
	if nameNode == nil || nameNode.Type() != "identifier" {
		return nil
	}
	value := declarator.ChildByFieldName("value")
	if value != nil && isFunctionLiteral(value) {
		decl := i.newDeclaration(declarator, nameNode, src, graph.KindFunction, isExported, false)
		decl.IsAsync = hasToken(value, "async")
		decl.Parameters = parameterNames(value, src)
		if keyword := statement.Child(0); keyword != nil && !keyword.IsNamed() {
			// a single binding of a multi-binding statement keeps its own keyword
			decl.Location.Raw = keyword.Content(src) + " " + decl.Location.Raw
		}
		return aFile.AddDeclaration(decl)
	}
	decl := i.newDeclaration(statement, nameNode, src, graph.KindVariable, isExported, false)
	if value != nil {
		decl.Value = value.Content(src)
		decl.Dependencies, decl.ValueReferences = Dependencies(value, src, decl.Name, i.rules)
	}
	return aFile.AddDeclaration(decl)
}

// newDeclaration creates a declaration spanning node, named after the name field of named
func (i *Inspector) newDeclaration(node, named *sitter.Node, src []byte, kind graph.Kind, isExported, isDefault bool) *graph.Declaration {
	name := ""
	if named.Type() == "identifier" {
		name = named.Content(src)
	} else if nameNode := named.ChildByFieldName("name"); nameNode != nil {
		name = nameNode.Content(src)
	}
	self := name
	if isDefault || name == "" {
		// anonymous declarations get a placeholder name
		name = defaultName
	}
	decl := &graph.Declaration{
		Name:       name,
		Kind:       kind,
		IsExported: isExported,
		IsDefault:  isDefault,
		Location: &graph.Location{
			Start: int(node.StartByte()),
			End:   int(node.EndByte()),
			Raw:   string(src[node.StartByte():node.EndByte()]),
		},
	}
	decl.Dependencies, decl.ValueReferences = Dependencies(node, src, self, i.rules)
	return decl
}

func isFunctionLiteral(node *sitter.Node) bool {
	switch node.Type() {
	case "arrow_function", "function_expression", "function", "generator_function":
		return true
	}
	return false
}

// parameterNames returns declared parameter names, destructured parameters are reported as param
func parameterNames(node *sitter.Node, src []byte) []string {
	if param := node.ChildByFieldName("parameter"); param != nil {
		return []string{param.Content(src)}
	}
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var names []string
	for j := 0; j < int(params.NamedChildCount()); j++ {
		param := params.NamedChild(j)
		pattern := param
		if p := param.ChildByFieldName("pattern"); p != nil {
			pattern = p
		}
		switch pattern.Type() {
		case "identifier":
			names = append(names, pattern.Content(src))
		case "comment":
		default:
			names = append(names, "param")
		}
	}
	return names
}
