package typescript

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/tssplit/inspector/graph"
)

// parseImport extracts import information from an import_statement node
func parseImport(node *sitter.Node, src []byte) *graph.Import {
	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		for j := 0; j < int(node.NamedChildCount()); j++ {
			if child := node.NamedChild(j); child.Type() == "string" {
				sourceNode = child
				break
			}
		}
	}
	if sourceNode == nil {
		return nil
	}
	imp := &graph.Import{Source: unquote(sourceNode.Content(src))}

	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		switch child.Type() {
		case "type":
			// import type { ... } from '...'
			imp.TypeOnly = true
		case "import_clause":
			parseImportClause(child, src, imp)
		}
	}
	return imp
}

func parseImportClause(node *sitter.Node, src []byte, imp *graph.Import) {
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "identifier":
			// import React from 'react'
			imp.IsDefault = true
			imp.Names = append([]string{child.Content(src)}, imp.Names...)
		case "namespace_import":
			// import * as fs from 'fs'
			for k := 0; k < int(child.NamedChildCount()); k++ {
				if alias := child.NamedChild(k); alias.Type() == "identifier" {
					imp.Namespace = alias.Content(src)
				}
			}
		case "named_imports":
			for k := 0; k < int(child.NamedChildCount()); k++ {
				specifier := child.NamedChild(k)
				if specifier.Type() != "import_specifier" {
					continue
				}
				parseImportSpecifier(specifier, src, imp)
			}
		}
	}
}

// parseImportSpecifier handles `A`, `A as B`, `type A`
func parseImportSpecifier(node *sitter.Node, src []byte, imp *graph.Import) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	imported := nameNode.Content(src)
	local := imported
	if aliasNode := node.ChildByFieldName("alias"); aliasNode != nil {
		local = aliasNode.Content(src)
		if imp.Aliases == nil {
			imp.Aliases = map[string]string{}
		}
		imp.Aliases[local] = imported
	}
	for _, name := range imp.Names {
		if name == local {
			return
		}
	}
	imp.Names = append(imp.Names, local)
	for j := 0; j < int(node.ChildCount()); j++ {
		if child := node.Child(j); !child.IsNamed() && child.Type() == "type" {
			imp.TypeNames = append(imp.TypeNames, local)
			break
		}
	}
}

func unquote(literal string) string {
	return strings.Trim(literal, "'\"`")
}
