package typescript_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tssplit/inspector/graph"
	"github.com/viant/tssplit/inspector/typescript"
)

func TestStatement_String(t *testing.T) {
	tests := []struct {
		name      string
		statement *typescript.Statement
		want      string
	}{
		{
			name:      "named",
			statement: &typescript.Statement{Source: "x", Names: []string{"a", "b as c"}},
			want:      "import { a, b as c } from 'x'",
		},
		{
			name:      "type only",
			statement: &typescript.Statement{Source: "./types", TypeOnly: true, Names: []string{"TUser"}},
			want:      "import type { TUser } from './types'",
		},
		{
			name:      "default and named",
			statement: &typescript.Statement{Source: "react", Default: "React", Names: []string{"useState"}},
			want:      "import React, { useState } from 'react'",
		},
		{
			name:      "namespace",
			statement: &typescript.Statement{Source: "path", Namespace: "path"},
			want:      "import * as path from 'path'",
		},
		{
			name:      "side effect",
			statement: &typescript.Statement{Source: "./polyfill"},
			want:      "import './polyfill'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.statement.String())
		})
	}
}

func render(statements []*typescript.Statement) []string {
	var result []string
	for _, stmt := range statements {
		result = append(result, stmt.String())
	}
	return result
}

func TestFilterImports(t *testing.T) {
	tests := []struct {
		name         string
		imports      []*graph.Import
		siblings     []*graph.Declaration
		decl         *graph.Declaration
		wantTypeOnly []string
		wantValue    []string
	}{
		{
			name: "unused imports are dropped",
			imports: []*graph.Import{
				{Source: "axios", Names: []string{"axios"}, IsDefault: true},
				{Source: "./api", Names: []string{"fetchUser"}},
			},
			decl: &graph.Declaration{
				Name: "getUser", Kind: graph.KindFunction, IsExported: true,
				Dependencies:    graph.NewNames("fetchUser"),
				ValueReferences: graph.NewNames("fetchUser"),
			},
			wantValue: []string{"import { fetchUser } from './api'"},
		},
		{
			name: "mixed statement is split, type group first",
			imports: []*graph.Import{
				{Source: "./config", Names: []string{"Config", "loadConfig", "Unused"}},
			},
			decl: &graph.Declaration{
				Name: "init", Kind: graph.KindFunction, IsExported: true,
				Dependencies:    graph.NewNames("Config", "loadConfig"),
				ValueReferences: graph.NewNames("loadConfig"),
			},
			wantTypeOnly: []string{"import type { Config } from './config'"},
			wantValue:    []string{"import { loadConfig } from './config'"},
		},
		{
			name: "capitalized name used as value stays a value import",
			imports: []*graph.Import{
				{Source: "express", Names: []string{"Router"}},
			},
			decl: &graph.Declaration{
				Name: "routes", Kind: graph.KindFunction, IsExported: true,
				Dependencies:    graph.NewNames("Router"),
				ValueReferences: graph.NewNames("Router"),
			},
			wantValue: []string{"import { Router } from 'express'"},
		},
		{
			name: "constant casing is not a type",
			imports: []*graph.Import{
				{Source: "./env", Names: []string{"API_URL"}},
			},
			decl: &graph.Declaration{
				Name: "TEndpoint", Kind: graph.KindType, IsExported: true,
				Dependencies: graph.NewNames("API_URL"),
			},
			wantValue: []string{"import { API_URL } from './env'"},
		},
		{
			name: "explicit type marks and aliases",
			imports: []*graph.Import{
				{Source: "react", Names: []string{"React", "useLocalState", "props"}, IsDefault: true, TypeNames: []string{"props"},
					Aliases: map[string]string{"useLocalState": "useState"}},
			},
			decl: &graph.Declaration{
				Name: "App", Kind: graph.KindFunction, IsExported: true,
				Dependencies:    graph.NewNames("React", "useLocalState", "props"),
				ValueReferences: graph.NewNames("React", "useLocalState"),
			},
			wantTypeOnly: []string{"import type { props } from 'react'"},
			wantValue:    []string{"import React, { useState as useLocalState } from 'react'"},
		},
		{
			name: "type-only default import",
			imports: []*graph.Import{
				{Source: "./schema", Names: []string{"Schema", "TField"}, IsDefault: true, TypeOnly: true},
			},
			decl: &graph.Declaration{
				Name: "TForm", Kind: graph.KindType, IsExported: true,
				Dependencies: graph.NewNames("Schema", "TField"),
			},
			wantTypeOnly: []string{"import type Schema from './schema'", "import type { TField } from './schema'"},
		},
		{
			name: "namespace import",
			imports: []*graph.Import{
				{Source: "path", Namespace: "path"},
			},
			decl: &graph.Declaration{
				Name: "join", Kind: graph.KindFunction, IsExported: true,
				Dependencies:    graph.NewNames("path"),
				ValueReferences: graph.NewNames("path"),
			},
			wantValue: []string{"import * as path from 'path'"},
		},
		{
			name: "exported siblings are imported from their own unit",
			siblings: []*graph.Declaration{
				{Name: "TId", Kind: graph.KindType, IsExported: true},
				{Name: "formatId", Kind: graph.KindFunction, IsExported: true},
				{Name: "TLocal", Kind: graph.KindType},
			},
			decl: &graph.Declaration{
				Name: "UserStore", Kind: graph.KindClass, IsExported: true,
				Dependencies:    graph.NewNames("TId", "formatId", "TLocal"),
				ValueReferences: graph.NewNames("formatId"),
			},
			wantTypeOnly: []string{"import type { TId } from './tid'"},
			wantValue:    []string{"import { formatId } from './format-id'"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aFile := graph.NewFile("source.ts")
			for _, imp := range tt.imports {
				aFile.AddImport(imp)
			}
			for _, sibling := range tt.siblings {
				require.NoError(t, aFile.AddDeclaration(sibling))
			}
			require.NoError(t, aFile.AddDeclaration(tt.decl))
			closure := graph.Resolve(tt.decl, aFile)
			got := typescript.FilterImports(tt.decl, closure, aFile)
			assert.EqualValues(t, tt.wantTypeOnly, render(got.TypeOnly), "type-only")
			assert.EqualValues(t, tt.wantValue, render(got.Value), "value")
		})
	}
}

func TestFilterImports_ClosureDependencies(t *testing.T) {
	aFile := graph.NewFile("source.ts")
	aFile.AddImport(&graph.Import{Source: "./money", Names: []string{"Money"}})
	local := &graph.Declaration{Name: "TLine", Kind: graph.KindType, Dependencies: graph.NewNames("Money")}
	decl := &graph.Declaration{Name: "total", Kind: graph.KindFunction, IsExported: true, Dependencies: graph.NewNames("TLine")}
	require.NoError(t, aFile.AddDeclaration(local))
	require.NoError(t, aFile.AddDeclaration(decl))

	closure := graph.Resolve(decl, aFile)
	require.EqualValues(t, []string{"TLine"}, closure.Names())
	got := typescript.FilterImports(decl, closure, aFile)
	assert.EqualValues(t, []string{"import type { Money } from './money'"}, render(got.TypeOnly))
	assert.Empty(t, got.Value)
}

func TestFilterImports_ConstantDependencies(t *testing.T) {
	aFile := graph.NewFile("source.ts")
	aFile.AddImport(&graph.Import{Source: "axios", Names: []string{"axios"}, IsDefault: true})
	aFile.AddImport(&graph.Import{Source: "./env", Names: []string{"BASE", "MODE"}})
	client := &graph.Declaration{
		Name:            "client",
		Kind:            graph.KindVariable,
		Value:           "axios.create({ baseURL: BASE })",
		Dependencies:    graph.NewNames("axios", "BASE"),
		ValueReferences: graph.NewNames("axios", "BASE"),
	}
	decl := &graph.Declaration{Name: "getUser", Kind: graph.KindFunction, IsExported: true, Dependencies: graph.NewNames("client")}
	require.NoError(t, aFile.AddDeclaration(client))
	require.NoError(t, aFile.AddDeclaration(decl))

	got := typescript.FilterImports(decl, graph.Resolve(decl, aFile), aFile)
	assert.Empty(t, got.TypeOnly)
	assert.EqualValues(t, []string{"import axios from 'axios'", "import { BASE } from './env'"}, render(got.Value))
}
