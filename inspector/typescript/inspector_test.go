package typescript_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tssplit/inspector/graph"
	"github.com/viant/tssplit/inspector/typescript"
)

type declarationSummary struct {
	Name       string
	IsExported bool
	IsDefault  bool
	IsAsync    bool
}

func summarize(decls []*graph.Declaration) []declarationSummary {
	var result []declarationSummary
	for _, decl := range decls {
		result = append(result, declarationSummary{Name: decl.Name, IsExported: decl.IsExported, IsDefault: decl.IsDefault, IsAsync: decl.IsAsync})
	}
	return result
}

func TestInspector_InspectSource(t *testing.T) {
	tests := []struct {
		name           string
		source         string
		wantFunctions  []declarationSummary
		wantClasses    []declarationSummary
		wantTypes      []declarationSummary
		wantInterfaces []declarationSummary
		wantVariables  []declarationSummary
	}{
		{
			name: "exported and local declarations",
			source: `import { Injectable } from '@angular/core'
import type { TUser } from './types'

type TLocal = { id: string }
export interface IProfile { user: TUser }
export type TResult = TLocal | null
const LIMIT = 10
export const getUser = async (id: string): Promise<TUser> => { return fetchUser(id, LIMIT) }
export async function saveUser(user: TUser) { return user }
function helper() {}
export class UserService {}
`,
			wantFunctions: []declarationSummary{
				{Name: "getUser", IsExported: true, IsAsync: true},
				{Name: "saveUser", IsExported: true, IsAsync: true},
				{Name: "helper"},
			},
			wantClasses:    []declarationSummary{{Name: "UserService", IsExported: true}},
			wantTypes:      []declarationSummary{{Name: "TLocal"}, {Name: "TResult", IsExported: true}},
			wantInterfaces: []declarationSummary{{Name: "IProfile", IsExported: true}},
			wantVariables:  []declarationSummary{{Name: "LIMIT"}},
		},
		{
			name: "named export list",
			source: `function parse() {}
function format() {}
class Reader {}
export { parse, Reader as DefaultReader }
`,
			wantFunctions: []declarationSummary{{Name: "parse", IsExported: true}, {Name: "format"}},
			wantClasses:   []declarationSummary{{Name: "Reader", IsExported: true}},
		},
		{
			name: "re-export from another module is not local",
			source: `function parse() {}
export { parse } from './parser'
`,
			wantFunctions: []declarationSummary{{Name: "parse"}},
		},
		{
			name:          "default function export",
			source:        `export default function main() { return 1 }`,
			wantFunctions: []declarationSummary{{Name: "default", IsExported: true, IsDefault: true}},
		},
		{
			name: "default export by identifier",
			source: `class Store {}
export default Store
`,
			wantClasses: []declarationSummary{{Name: "Store", IsExported: true}},
		},
		{
			name: "function literal bindings",
			source: `const add = (a: number, b: number) => a + b
let handler = function () {}
var config = { debug: true }
`,
			wantFunctions: []declarationSummary{{Name: "add"}, {Name: "handler"}},
			wantVariables: []declarationSummary{{Name: "config"}},
		},
	}

	inspector := typescript.NewInspector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aFile, err := inspector.InspectSource([]byte(tt.source))
			require.NoError(t, err)
			assert.EqualValues(t, tt.wantFunctions, summarize(aFile.Functions), "functions")
			assert.EqualValues(t, tt.wantClasses, summarize(aFile.Classes), "classes")
			assert.EqualValues(t, tt.wantTypes, summarize(aFile.Types), "types")
			assert.EqualValues(t, tt.wantInterfaces, summarize(aFile.Interfaces), "interfaces")
			assert.EqualValues(t, tt.wantVariables, summarize(aFile.Variables), "variables")
		})
	}
}

func TestInspector_Imports(t *testing.T) {
	source := `import React, { useState as useLocalState, type FC } from 'react'
import type { TUser } from './types'
import * as path from 'path'
import './polyfill'
`
	aFile, err := typescript.NewInspector().InspectSource([]byte(source))
	require.NoError(t, err)
	require.Len(t, aFile.Imports, 4)

	react := aFile.Imports[0]
	assert.Equal(t, "react", react.Source)
	assert.True(t, react.IsDefault)
	assert.Equal(t, "React", react.DefaultName())
	assert.EqualValues(t, []string{"React", "useLocalState", "FC"}, react.Names)
	assert.Equal(t, "useState as useLocalState", react.Specifier("useLocalState"))
	assert.True(t, react.IsTypeName("FC"))
	assert.False(t, react.IsTypeName("React"))

	types := aFile.Imports[1]
	assert.True(t, types.TypeOnly)
	assert.EqualValues(t, []string{"TUser"}, types.Names)

	assert.Equal(t, "path", aFile.Imports[2].Namespace)
	assert.Equal(t, "./polyfill", aFile.Imports[3].Source)
	assert.Empty(t, aFile.Imports[3].Names)
}

func TestInspector_JavaScriptJSX(t *testing.T) {
	source := `import { Button } from './button'

export function App() { return <div><Button label="hi" /></div> }
`
	for _, filename := range []string{"app.js", "app.mjs", "app.jsx"} {
		t.Run(filename, func(t *testing.T) {
			aFile, err := typescript.NewInspector().Inspect(context.Background(), filename, []byte(source))
			require.NoError(t, err)
			app := aFile.Lookup("App")
			require.NotNil(t, app)
			assert.True(t, app.IsExported)
			assert.EqualValues(t, []string{"Button"}, app.Dependencies.Items())
		})
	}
}

func TestInspector_Decorators(t *testing.T) {
	source := `import { Component, Input } from '@angular/core'

@Component({ selector: 'x' })
export class AppComponent {
  @Input() title: string
}

@Component({ selector: 'y' })
class LocalComponent {}
`
	aFile, err := typescript.NewInspector().InspectSource([]byte(source))
	require.NoError(t, err)
	app := aFile.Lookup("AppComponent")
	require.NotNil(t, app)
	assert.EqualValues(t, []string{"@Component({ selector: 'x' })"}, app.Decorators)
	assert.EqualValues(t, []string{"Component", "Input"}, app.Dependencies.Items())
	assert.True(t, app.ValueReferences.Has("Component"))

	local := aFile.Lookup("LocalComponent")
	require.NotNil(t, local)
	assert.Empty(t, local.Decorators)
	assert.Contains(t, local.Content(), "@Component({ selector: 'y' })")
}

func TestInspector_ExportAlias(t *testing.T) {
	source := `function helper() { return 1 }
function util() { return 2 }
export { helper as api, util }
export { helper as again }
`
	aFile, err := typescript.NewInspector().InspectSource([]byte(source))
	require.NoError(t, err)
	helper := aFile.Lookup("helper")
	require.NotNil(t, helper)
	assert.True(t, helper.IsExported)
	assert.Equal(t, "api", helper.Alias)
	assert.Equal(t, "api", helper.ExportedName())
	util := aFile.Lookup("util")
	require.NotNil(t, util)
	assert.True(t, util.IsExported)
	assert.Empty(t, util.Alias)
	assert.Equal(t, "util", util.ExportedName())
}

func TestInspector_Parameters(t *testing.T) {
	source := `export function update(id: string, { name }: Patch, ...rest: unknown[]) {}`
	aFile, err := typescript.NewInspector().InspectSource([]byte(source))
	require.NoError(t, err)
	update := aFile.Lookup("update")
	require.NotNil(t, update)
	assert.EqualValues(t, []string{"id", "param", "param"}, update.Parameters)
}

func TestInspector_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{
			name: "name collision",
			source: `function store() {}
class store {}
`,
			wantErr: graph.ErrNameCollision,
		},
		{
			name:    "syntax error",
			source:  `export function broken( {`,
			wantErr: typescript.ErrParseFailure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := typescript.NewInspector().Inspect(context.Background(), "broken.ts", []byte(tt.source))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), err.Error())
		})
	}
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, typescript.Language("a.tsx"), typescript.Language("b.jsx"))
	assert.Equal(t, typescript.Language("a.tsx"), typescript.Language("b.js"))
	assert.Equal(t, typescript.Language("a.tsx"), typescript.Language("b.mjs"))
	assert.Equal(t, typescript.Language("a.ts"), typescript.Language("b.mts"))
	assert.NotEqual(t, typescript.Language("a.ts"), typescript.Language("a.tsx"))
}
