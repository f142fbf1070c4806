package repository

// Repository represents a version controlled or package managed source tree
type Repository struct {
	Kind   string   `yaml:"kind"`
	Root   string   `yaml:"root"`
	Origin string   `yaml:"origin,omitempty"`
	Info   *Project `yaml:"project,omitempty"`
}

// Project represents information about a detected project
type Project struct {
	RootPath     string `yaml:"root"`                   // Absolute path to the project root directory
	Type         string `yaml:"type"`                   // typescript, javascript, deno or git
	Name         string `yaml:"name,omitempty"`         // Package name from package.json or directory name
	RelativePath string `yaml:"relativePath,omitempty"` // Path from project root to the specified file
}
