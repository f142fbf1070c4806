package typescript_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tssplit/inspector/typescript"
)

func TestDependencies(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		source     string
		decl       string
		want       []string
		wantValues []string
	}{
		{
			name:       "free identifiers in source order",
			source:     `export const getUser = async (id: string): Promise<TUser> => { return fetchUser(id, LIMIT) }`,
			decl:       "getUser",
			want:       []string{"TUser", "fetchUser", "LIMIT"},
			wantValues: []string{"fetchUser", "LIMIT"},
		},
		{
			name:   "parameter shadows module name",
			source: `function pick(User: string) { return User }`,
			decl:   "pick",
		},
		{
			name: "comments and strings are not references",
			source: `function greet() {
  // Formatter
  return 'Formatter'
}`,
			decl: "greet",
		},
		{
			name:   "property access is not a reference",
			source: `function read(o: any) { return o.Config }`,
			decl:   "read",
		},
		{
			name:   "local binding shadows module name",
			source: `function run() { const helper = 1; return helper }`,
			decl:   "run",
		},
		{
			name:   "recursion is not a dependency",
			source: `function fact(n: number): number { return n > 1 ? n * fact(n - 1) : 1 }`,
			decl:   "fact",
		},
		{
			name:       "type parameters are bound",
			source:     `function wrap<T>(v: T): Box<T> { return box(v) }`,
			decl:       "wrap",
			want:       []string{"Box", "box"},
			wantValues: []string{"box"},
		},
		{
			name:   "built-in utility types are skipped",
			source: `type Lookup = Partial<Record<string, TItem>>`,
			decl:   "Lookup",
			want:   []string{"TItem"},
		},
		{
			name:   "mapped type key is bound",
			source: `type Mapped<T> = { [K in keyof T]: TValue<K> }`,
			decl:   "Mapped",
			want:   []string{"TValue"},
		},
		{
			name:   "infer binds its name",
			source: `type Element<T> = T extends Array<infer E> ? E : never`,
			decl:   "Element",
		},
		{
			name:       "catch clause binds error",
			source:     `function safe() { try { return load() } catch (Err) { return Err } }`,
			decl:       "safe",
			want:       []string{"load"},
			wantValues: []string{"load"},
		},
		{
			name:       "class members",
			source:     `class Job extends Base implements Runnable { run(): Result { return execute(this) } }`,
			decl:       "Job",
			want:       []string{"Base", "Runnable", "Result", "execute"},
			wantValues: []string{"Base", "execute"},
		},
		{
			name:       "namespace qualified type refers to namespace",
			source:     `function call(): api.Response { return api.send() }`,
			decl:       "call",
			want:       []string{"api"},
			wantValues: []string{"api"},
		},
		{
			name:       "shorthand property",
			source:     `const build = () => ({ timeout })`,
			decl:       "build",
			want:       []string{"timeout"},
			wantValues: []string{"timeout"},
		},
		{
			name:       "template substitution",
			source:     "function url(id: string) { return `${BASE_URL}/${id}` }",
			decl:       "url",
			want:       []string{"BASE_URL"},
			wantValues: []string{"BASE_URL"},
		},
		{
			name:       "jsx component reference",
			filename:   "app.tsx",
			source:     `export function App() { return <div><Button /></div> }`,
			decl:       "App",
			want:       []string{"Button"},
			wantValues: []string{"Button"},
		},
	}

	inspector := typescript.NewInspector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := tt.filename
			if filename == "" {
				filename = "source.ts"
			}
			aFile, err := inspector.Inspect(context.Background(), filename, []byte(tt.source))
			require.NoError(t, err)
			decl := aFile.Lookup(tt.decl)
			require.NotNil(t, decl, tt.decl)
			assert.EqualValues(t, tt.want, decl.Dependencies.Items())
			assert.EqualValues(t, tt.wantValues, decl.ValueReferences.Items())
		})
	}
}
