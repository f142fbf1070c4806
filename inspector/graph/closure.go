package graph

// Closure represents the ordered set of module-private types and interfaces a declaration needs
type Closure []*Declaration

// Names returns closure member names in discovery order
func (c Closure) Names() []string {
	var result []string
	for _, decl := range c {
		result = append(result, decl.Name)
	}
	return result
}

// Has returns true if the closure contains a declaration with name
func (c Closure) Has(name string) bool {
	for _, decl := range c {
		if decl.Name == name {
			return true
		}
	}
	return false
}

// Resolve computes the transitive closure of non-exported type aliases and interfaces reachable from decl.
// Expansion is depth-first in dependency order; the visited set is shared across the whole expansion,
// so cyclic type graphs terminate and every member appears once.
func Resolve(decl *Declaration, file *File) Closure {
	visited := map[string]bool{decl.Name: true}
	var result Closure
	var expand func(names Names)
	expand = func(names Names) {
		for _, name := range names.Items() {
			if visited[name] {
				continue
			}
			candidate := file.LookupType(name)
			if candidate == nil || candidate.IsExported {
				continue
			}
			visited[name] = true
			result = append(result, candidate)
			expand(candidate.Dependencies)
		}
	}
	expand(decl.Dependencies)
	return result
}
