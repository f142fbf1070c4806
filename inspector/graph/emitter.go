package graph

// Unit represents a generated, self-contained source unit
type Unit struct {
	Name        string   `yaml:"name"`
	Kind        Kind     `yaml:"kind"`
	Default     bool     `yaml:"default,omitempty"` // unit holds the module default export
	FileName    string   `yaml:"fileName"`
	LocalTypes  []string `yaml:"localTypes,omitempty"`
	Constants   []string `yaml:"constants,omitempty"`
	Content     []byte   `yaml:"-"`
	Fingerprint string   `yaml:"fingerprint,omitempty"`
}

// Emitter represents a language specific unit generator
type Emitter interface {
	// Emit renders one unit per exported declaration followed by the index unit
	Emit(file *File) ([]*Unit, error)
}
