package typescript

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/tssplit/inspector/graph"
)

// scope represents a lexical scope with the names it binds
type scope struct {
	parent *scope
	names  map[string]bool
}

func (s *scope) declares(name string) bool {
	for candidate := s; candidate != nil; candidate = candidate.parent {
		if candidate.names[name] {
			return true
		}
	}
	return false
}

func (s *scope) bind(names ...string) {
	for _, name := range names {
		s.names[name] = true
	}
}

// collector resolves every identifier of a declaration to its nearest enclosing binding;
// identifiers without a local binding are free and become dependencies
type collector struct {
	src    []byte
	rules  *Rules
	self   string
	deps   graph.Names
	values graph.Names
}

// Dependencies returns free identifiers and type references of node in source order, excluding self
func Dependencies(node *sitter.Node, src []byte, self string, rules *Rules) (deps graph.Names, values graph.Names) {
	if rules == nil {
		rules = DefaultRules
	}
	c := &collector{src: src, rules: rules, self: self}
	c.walk(node, &scope{names: map[string]bool{}})
	return c.deps, c.values
}

func (c *collector) walk(node *sitter.Node, current *scope) {
	if node == nil {
		return
	}
	if names, ok := c.bindings(node); ok {
		current = &scope{parent: current, names: map[string]bool{}}
		current.bind(names...)
	}
	switch node.Type() {
	case "identifier", "shorthand_property_identifier":
		c.reference(node, current, false)
		return
	case "type_identifier":
		c.reference(node, current, true)
		return
	case "nested_type_identifier":
		// ns.Type refers to ns only
		if module := node.ChildByFieldName("module"); module != nil {
			c.walk(module, current)
		} else if node.NamedChildCount() > 0 {
			c.walk(node.NamedChild(0), current)
		}
		return
	case "comment", "string", "regex", "property_identifier", "statement_identifier":
		return
	case "jsx_opening_element", "jsx_closing_element", "jsx_self_closing_element":
		// intrinsic elements such as <div> are not references
		name := node.ChildByFieldName("name")
		for j := 0; j < int(node.NamedChildCount()); j++ {
			child := node.NamedChild(j)
			if name != nil && child.StartByte() == name.StartByte() && isIntrinsic(name.Content(c.src)) {
				continue
			}
			c.walk(child, current)
		}
		return
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		c.walk(node.NamedChild(j), current)
	}
}

func (c *collector) reference(node *sitter.Node, current *scope, isType bool) {
	name := node.Content(c.src)
	if name == c.self || current.declares(name) {
		return
	}
	if isType {
		if !c.rules.IsTypeCandidate(name) {
			return
		}
	} else if !c.rules.IsValueCandidate(name) {
		return
	}
	c.deps.Add(name)
	if !isType {
		c.values.Add(name)
	}
}

// bindings returns names introduced by a scope opening node
func (c *collector) bindings(node *sitter.Node) ([]string, bool) {
	switch node.Type() {
	case "function_declaration", "generator_function_declaration", "function_expression", "function",
		"generator_function", "arrow_function", "method_definition", "method_signature", "abstract_method_signature",
		"function_signature", "call_signature", "construct_signature", "function_type", "constructor_type":
		var names []string
		names = append(names, c.typeParameters(node)...)
		if params := node.ChildByFieldName("parameters"); params != nil {
			for j := 0; j < int(params.NamedChildCount()); j++ {
				names = append(names, patternNames(params.NamedChild(j), c.src)...)
			}
		}
		if param := node.ChildByFieldName("parameter"); param != nil {
			names = append(names, patternNames(param, c.src)...)
		}
		switch node.Type() {
		case "function_expression", "function", "generator_function":
			// a named function expression sees its own name
			if name := node.ChildByFieldName("name"); name != nil {
				names = append(names, name.Content(c.src))
			}
		}
		return names, true
	case "class_declaration", "abstract_class_declaration", "class", "interface_declaration", "type_alias_declaration":
		return c.typeParameters(node), true
	case "statement_block", "class_body", "switch_body":
		return c.hoisted(node), true
	case "for_statement":
		if initializer := node.ChildByFieldName("initializer"); initializer != nil {
			return declaredNames(initializer, c.src), true
		}
		return nil, true
	case "for_in_statement":
		if !hasToken(node, "const", "let", "var") {
			return nil, true
		}
		if left := node.ChildByFieldName("left"); left != nil {
			return patternNames(left, c.src), true
		}
		return nil, true
	case "catch_clause":
		if param := node.ChildByFieldName("parameter"); param != nil {
			return patternNames(param, c.src), true
		}
		return nil, true
	case "index_signature":
		// { [K in keyof T]: V } binds K for V
		for j := 0; j < int(node.NamedChildCount()); j++ {
			if clause := node.NamedChild(j); clause.Type() == "mapped_type_clause" {
				if name := clause.ChildByFieldName("name"); name != nil {
					return []string{name.Content(c.src)}, true
				}
			}
		}
	case "conditional_type":
		// T extends Array<infer U> ? U : never binds U
		var names []string
		collectInfer(node.ChildByFieldName("right"), c.src, &names)
		return names, len(names) > 0
	}
	return nil, false
}

func (c *collector) typeParameters(node *sitter.Node) []string {
	params := node.ChildByFieldName("type_parameters")
	if params == nil {
		return nil
	}
	var names []string
	for j := 0; j < int(params.NamedChildCount()); j++ {
		param := params.NamedChild(j)
		if param.Type() != "type_parameter" {
			continue
		}
		if name := param.ChildByFieldName("name"); name != nil {
			names = append(names, name.Content(c.src))
		} else if param.NamedChildCount() > 0 {
			names = append(names, param.NamedChild(0).Content(c.src))
		}
	}
	return names
}

// hoisted returns names declared directly in a block
func (c *collector) hoisted(block *sitter.Node) []string {
	var names []string
	for j := 0; j < int(block.NamedChildCount()); j++ {
		child := block.NamedChild(j)
		switch child.Type() {
		case "switch_case", "switch_default":
			names = append(names, c.hoisted(child)...)
		default:
			names = append(names, declaredNames(child, c.src)...)
		}
	}
	return names
}

// declaredNames returns names bound by a declaration statement
func declaredNames(node *sitter.Node, src []byte) []string {
	switch node.Type() {
	case "lexical_declaration", "variable_declaration":
		var names []string
		for j := 0; j < int(node.NamedChildCount()); j++ {
			if declarator := node.NamedChild(j); declarator.Type() == "variable_declarator" {
				names = append(names, patternNames(declarator.ChildByFieldName("name"), src)...)
			}
		}
		return names
	case "function_declaration", "generator_function_declaration", "class_declaration", "abstract_class_declaration",
		"type_alias_declaration", "interface_declaration", "enum_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			return []string{name.Content(src)}
		}
	}
	return nil
}

// patternNames returns identifiers bound by a parameter or destructuring pattern
func patternNames(node *sitter.Node, src []byte) []string {
	if node == nil {
		return nil
	}
	switch node.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		return []string{node.Content(src)}
	case "required_parameter", "optional_parameter":
		return patternNames(node.ChildByFieldName("pattern"), src)
	case "pair_pattern":
		return patternNames(node.ChildByFieldName("value"), src)
	case "assignment_pattern", "object_assignment_pattern":
		return patternNames(node.ChildByFieldName("left"), src)
	case "object_pattern", "array_pattern", "rest_pattern":
		var names []string
		for j := 0; j < int(node.NamedChildCount()); j++ {
			names = append(names, patternNames(node.NamedChild(j), src)...)
		}
		return names
	}
	return nil
}

func collectInfer(node *sitter.Node, src []byte, names *[]string) {
	if node == nil {
		return
	}
	if node.Type() == "infer_type" && node.NamedChildCount() > 0 {
		*names = append(*names, node.NamedChild(0).Content(src))
		return
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		collectInfer(node.NamedChild(j), src, names)
	}
}

func isIntrinsic(element string) bool {
	return element != "" && element[0] >= 'a' && element[0] <= 'z' && !strings.Contains(element, ".")
}

// hasToken returns true if node has an anonymous child token of one of the supplied kinds
func hasToken(node *sitter.Node, tokens ...string) bool {
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if child.IsNamed() {
			continue
		}
		for _, token := range tokens {
			if child.Type() == token {
				return true
			}
		}
	}
	return false
}
