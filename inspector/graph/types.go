package graph

// Kind identifies the syntactic kind of a top-level declaration
type Kind string

const (
	KindFunction  Kind = "function"
	KindClass     Kind = "class"
	KindType      Kind = "type"
	KindInterface Kind = "interface"
	KindVariable  Kind = "variable"
)

// IsType returns true for type aliases and interfaces
func (k Kind) IsType() bool {
	return k == KindType || k == KindInterface
}

// Location represents a byte span in the original source text
type Location struct {
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
	Raw   string `yaml:"-"`
}

// Declaration represents a top-level function, class, type alias, interface or variable
type Declaration struct {
	Name         string    `yaml:"name"`
	Kind         Kind      `yaml:"kind"`
	IsExported   bool      `yaml:"exported"`
	IsDefault    bool      `yaml:"default,omitempty"`
	IsAsync      bool      `yaml:"async,omitempty"`
	Parameters   []string  `yaml:"parameters,omitempty"`
	Value        string    `yaml:"value,omitempty"` // initializer text for variables
	Alias        string    `yaml:"alias,omitempty"` // public name given by export { name as alias }
	Decorators   []string  `yaml:"decorators,omitempty"`
	Dependencies Names     `yaml:"dependencies,omitempty"`
	Location     *Location `yaml:"location,omitempty"`

	// ValueReferences holds dependencies used in expression position
	ValueReferences Names `yaml:"-"`
}

// Content returns the raw source text of the declaration
func (d *Declaration) Content() string {
	if d.Location == nil {
		return ""
	}
	return d.Location.Raw
}

// ExportedName returns the name the module exports the declaration under
func (d *Declaration) ExportedName() string {
	if d.Alias != "" {
		return d.Alias
	}
	return d.Name
}

// DependsOn returns true if name is one of the declaration dependencies
func (d *Declaration) DependsOn(name string) bool {
	return d.Dependencies.Has(name)
}

// Names represents an ordered set of names, the first occurrence wins
type Names struct {
	items []string
	index map[string]bool
}

// NewNames creates a name set with the supplied names
func NewNames(names ...string) Names {
	ret := Names{}
	for _, name := range names {
		ret.Add(name)
	}
	return ret
}

// Add appends name unless it is already present, returns true if added
func (n *Names) Add(name string) bool {
	if name == "" {
		return false
	}
	if n.index == nil {
		n.index = make(map[string]bool)
	}
	if n.index[name] {
		return false
	}
	n.index[name] = true
	n.items = append(n.items, name)
	return true
}

// Has returns true if name is present
func (n Names) Has(name string) bool {
	return n.index[name]
}

// Len returns number of names
func (n Names) Len() int {
	return len(n.items)
}

// Items returns names in insertion order
func (n Names) Items() []string {
	return n.items
}

// MarshalYAML renders the set as a plain sequence
func (n Names) MarshalYAML() (interface{}, error) {
	return n.items, nil
}

// IsZero reports an empty set, used by omitempty
func (n Names) IsZero() bool {
	return len(n.items) == 0
}
