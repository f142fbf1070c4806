package repository

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
)

// Detector identifies project root folders and provides project-related information
type Detector struct {
	fs afs.Service
	// project root marker files/directories, the first match wins
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: []string{
			"tsconfig.json", // TypeScript projects
			"package.json",  // JavaScript/Node projects
			"deno.json",     // Deno projects
			".git",          // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(ctx context.Context, filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	object, err := d.fs.Object(ctx, absPath)
	if err != nil {
		return nil, err
	}
	if !object.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(ctx, startDir)
	info := &Project{
		Type:     "unknown",
		RootPath: startDir,
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}
	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	info.Name = d.extractProjectName(ctx, info.RootPath, info.Type)
	return info, nil
}

// DetectRepository identifies the repository containing the given file path
func (d *Detector) DetectRepository(ctx context.Context, filePath string) (*Repository, error) {
	info, err := d.DetectProject(ctx, filePath)
	if err != nil {
		return nil, err
	}
	target := filepath.Join(info.RootPath, filepath.FromSlash(info.RelativePath))
	startDir := target
	if object, err := d.fs.Object(ctx, target); err != nil || !object.IsDir() {
		startDir = filepath.Dir(target)
	}
	if gitRoot := d.findGitRoot(ctx, startDir); gitRoot != "" {
		return &Repository{
			Kind:   "git",
			Root:   gitRoot,
			Origin: d.extractGitOrigin(ctx, gitRoot),
			Info:   info,
		}, nil
	}
	return &Repository{
		Kind: info.Type,
		Root: info.RootPath,
		Info: info,
	}, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(ctx context.Context, startDir string) (string, string) {
	for dir := startDir; ; {
		for _, marker := range d.markers {
			if ok, _ := d.fs.Exists(ctx, filepath.Join(dir, marker)); ok {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

// findGitRoot finds the root of the git repository containing the given directory
func (d *Detector) findGitRoot(ctx context.Context, startDir string) string {
	for dir := startDir; ; {
		if ok, _ := d.fs.Exists(ctx, filepath.Join(dir, ".git")); ok {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// extractGitOrigin extracts the origin URL from git config
func (d *Detector) extractGitOrigin(ctx context.Context, gitRoot string) string {
	data, err := d.fs.DownloadWithURL(ctx, filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			foundRemote = line == `[remote "origin"]`
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}

// extractProjectName attempts to extract a project name from manifest files
func (d *Detector) extractProjectName(ctx context.Context, rootPath string, projectType string) string {
	switch projectType {
	case "typescript", "javascript":
		if name := d.extractPackageName(ctx, filepath.Join(rootPath, "package.json")); name != "" {
			return name
		}
	case "deno":
		if name := d.extractPackageName(ctx, filepath.Join(rootPath, "deno.json")); name != "" {
			return name
		}
	case "git":
		if origin := d.extractGitOrigin(ctx, rootPath); origin != "" {
			parts := strings.Split(strings.TrimSuffix(origin, ".git"), "/")
			return parts[len(parts)-1]
		}
	}
	return filepath.Base(rootPath)
}

func (d *Detector) extractPackageName(ctx context.Context, manifestPath string) string {
	data, err := d.fs.DownloadWithURL(ctx, manifestPath)
	if err != nil {
		return ""
	}
	manifest := struct {
		Name string `json:"name"`
	}{}
	if err = json.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Name
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "tsconfig.json":
		return "typescript"
	case "package.json":
		return "javascript"
	case "deno.json":
		return "deno"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
