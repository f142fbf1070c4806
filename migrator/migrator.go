package migrator

import (
	"context"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/viant/tssplit/config"
	"github.com/viant/tssplit/inspector/graph"
	"github.com/viant/tssplit/inspector/repository"
	"github.com/viant/tssplit/inspector/typescript"
	"github.com/viant/tssplit/notify"
)

var (
	// ErrNoDeclarations is reported when a module has no functions, classes, types or interfaces
	ErrNoDeclarations = errors.New("no functions, classes, types or interfaces found")
	// ErrNoExportedItems is reported when declarations exist but none is exported
	ErrNoExportedItems = errors.New("no exported items found")
	// ErrWriteFailure is reported when a generated unit can not be written
	ErrWriteFailure = errors.New("failed to write generated file")
	// ErrUnsupportedFile is returned when a file extension is not a recognized source extension
	ErrUnsupportedFile = errors.New("unsupported source file")
)

// Migrator splits source modules into one file per exported declaration
type Migrator struct {
	fs        FileSystem
	inspector *typescript.Inspector
	detector  *repository.Detector
	config    *config.Config
}

// Option represents a migrator option
type Option func(m *Migrator)

// WithFileSystem overrides the storage boundary
func WithFileSystem(fs FileSystem) Option {
	return func(m *Migrator) {
		m.fs = fs
	}
}

// WithInspector overrides the declaration extractor
func WithInspector(inspector *typescript.Inspector) Option {
	return func(m *Migrator) {
		m.inspector = inspector
	}
}

// WithDetector enables repository detection, the detected repository is attached to the report
func WithDetector(detector *repository.Detector) Option {
	return func(m *Migrator) {
		m.detector = detector
	}
}

// WithConfig sets run configuration
func WithConfig(cfg *config.Config) Option {
	return func(m *Migrator) {
		m.config = cfg
	}
}

// New creates a migrator
func New(options ...Option) *Migrator {
	ret := &Migrator{}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = NewFileSystem()
	}
	if ret.inspector == nil {
		ret.inspector = typescript.NewInspector()
	}
	if ret.config == nil {
		ret.config = config.Default()
	}
	return ret
}

// Migrate migrates a single file or every recognized source file directly inside a directory.
// Files are processed one after another, a failure of one file does not stop the others.
func (m *Migrator) Migrate(ctx context.Context, location string) (*Report, error) {
	exists, err := m.fs.Exists(ctx, location)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check %s", location)
	}
	if !exists {
		return nil, errors.Newf("%s does not exist", location)
	}
	isDir, err := m.fs.IsDirectory(ctx, location)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", location)
	}
	report := &Report{Location: location}
	if m.detector != nil && !strings.Contains(location, "://") {
		if repo, err := m.detector.DetectRepository(ctx, location); err == nil {
			report.Repository = repo
			report.Project = repo.Info
		}
	}
	if !isDir {
		if !m.isSourceExtension(location) {
			return nil, errors.Wrapf(ErrUnsupportedFile, "%s", location)
		}
		report.Files = append(report.Files, m.MigrateFile(ctx, location))
		return report, nil
	}

	candidates, err := m.sourceFiles(ctx, location)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		report.Events = append(report.Events, &notify.Event{Level: notify.LevelWarning, File: location, Message: "no source files found"})
		return report, nil
	}
	for _, candidate := range candidates {
		if err = ctx.Err(); err != nil {
			return report, err
		}
		report.Files = append(report.Files, m.MigrateFile(ctx, candidate))
	}
	return report, nil
}

// MigrateFile runs read, parse, extract, emit and write for one source module
func (m *Migrator) MigrateFile(ctx context.Context, URL string) *FileReport {
	fileReport := &FileReport{Path: URL}
	content, err := m.fs.ReadFile(ctx, URL)
	if err != nil {
		fileReport.fail(errors.Wrapf(err, "failed to read %s", URL), StatusFailed, notify.LevelError)
		return fileReport
	}

	aFile, err := m.inspector.Inspect(ctx, URL, content)
	switch {
	case errors.Is(err, typescript.ErrParseFailure):
		fileReport.fail(errors.WithHint(err, "fix the syntax error and rerun the migration"), StatusNothing, notify.LevelWarning)
		return fileReport
	case err != nil:
		fileReport.fail(err, StatusFailed, notify.LevelError)
		return fileReport
	}
	fileReport.Counts = aFile.Counts()

	if aFile.IsEmpty() {
		fileReport.fail(ErrNoDeclarations, StatusNothing, notify.LevelWarning)
		return fileReport
	}
	if len(aFile.Exported()) == 0 {
		err = errors.WithHint(errors.Wrapf(ErrNoExportedItems, "found %s", describeCounts(fileReport.Counts)),
			"only exported functions, classes, types and interfaces are migrated")
		fileReport.fail(err, StatusNothing, notify.LevelWarning)
		return fileReport
	}

	emitter := typescript.NewEmitter(path.Ext(URL), m.config.IndexName)
	units, err := emitter.Emit(aFile)
	if err != nil {
		fileReport.fail(err, StatusFailed, notify.LevelError)
		return fileReport
	}
	fileReport.Units = units
	m.reportUnmigrated(aFile, units, fileReport)

	if err = m.write(ctx, URL, units, fileReport); err != nil {
		fileReport.fail(err, StatusFailed, notify.LevelError)
		return fileReport
	}
	fileReport.Status = StatusMigrated
	if len(fileReport.Written) == 0 {
		fileReport.Status = StatusUnchanged
	}
	m.reportMigrated(units, fileReport)
	return fileReport
}

// OutputDir returns the directory generated units of a source file are written to: D/X.ext -> D/X
func OutputDir(URL string) string {
	parent, name := splitURL(URL)
	return joinURL(parent, strings.TrimSuffix(name, path.Ext(name)))
}

// write stores units, identical existing units are skipped unless overwrite is set; already written units are kept on failure
func (m *Migrator) write(ctx context.Context, URL string, units []*graph.Unit, fileReport *FileReport) error {
	outputDir := OutputDir(URL)
	fileReport.OutputDir = outputDir
	exists, err := m.fs.Exists(ctx, outputDir)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "failed to check %s", outputDir), ErrWriteFailure)
	}
	if !exists {
		if err = m.fs.CreateDirectory(ctx, outputDir); err != nil {
			return errors.Mark(errors.Wrapf(err, "failed to create %s", outputDir), ErrWriteFailure)
		}
	}
	for _, unit := range units {
		target := joinURL(outputDir, unit.FileName)
		if !m.config.Overwrite && m.isUnchanged(ctx, target, unit) {
			fileReport.Skipped = append(fileReport.Skipped, unit.FileName)
			continue
		}
		if err = m.fs.WriteFile(ctx, target, unit.Content); err != nil {
			return errors.Mark(errors.Wrapf(err, "failed to write %s", target), ErrWriteFailure)
		}
		fileReport.Written = append(fileReport.Written, unit.FileName)
		fileReport.Bytes += len(unit.Content)
	}
	return nil
}

func (m *Migrator) isUnchanged(ctx context.Context, target string, unit *graph.Unit) bool {
	if ok, _ := m.fs.Exists(ctx, target); !ok {
		return false
	}
	existing, err := m.fs.ReadFile(ctx, target)
	if err != nil {
		return false
	}
	return graph.Fingerprint(existing) == unit.Fingerprint
}

// reportMigrated records per unit details and the auto-included local types
func (m *Migrator) reportMigrated(units []*graph.Unit, fileReport *FileReport) {
	var inlined []string
	seen := map[string]bool{}
	generated := 0
	for _, unit := range units {
		if unit.Kind == "" {
			continue
		}
		generated++
		detail := string(unit.Kind) + " '" + unit.Name + "' -> " + unit.FileName
		if count := len(unit.LocalTypes); count > 0 {
			detail += " (included " + pluralize(count, "local type") + ")"
		}
		fileReport.info("%s", detail)
		for _, name := range unit.LocalTypes {
			if !seen[name] {
				seen[name] = true
				inlined = append(inlined, name)
			}
		}
	}
	fileReport.Inlined = inlined
	if len(inlined) > 0 {
		fileReport.info("%s automatically included as dependencies: %s", pluralize(len(inlined), "non-exported type"), strings.Join(inlined, ", "))
	}
	fileReport.info("created %s in %s", pluralize(generated, "file"), fileReport.OutputDir)
}

// reportUnmigrated warns about declarations that do not make it into any generated unit
func (m *Migrator) reportUnmigrated(aFile *graph.File, units []*graph.Unit, fileReport *FileReport) {
	inlined := map[string]bool{}
	for _, unit := range units {
		for _, name := range unit.LocalTypes {
			inlined[name] = true
		}
		for _, name := range unit.Constants {
			inlined[name] = true
		}
	}
	referenced := map[string]bool{}
	for _, decl := range aFile.Exported() {
		for _, name := range decl.Dependencies.Items() {
			referenced[name] = true
		}
	}
	for _, decl := range aFile.Declarations() {
		if decl.IsExported || inlined[decl.Name] {
			continue
		}
		if referenced[decl.Name] {
			fileReport.info("%s: %s is referenced by an exported item but not exported, so not migrated", decl.Kind, decl.Name)
			continue
		}
		fileReport.warning("%s: %s (not exported, so not migrated)", decl.Kind, decl.Name)
	}
	for _, variable := range aFile.Variables {
		switch {
		case variable.IsExported:
			fileReport.warning("variable: %s is exported but only functions, classes, types and interfaces are migrated", variable.Name)
		case !inlined[variable.Name]:
			fileReport.warning("variable: %s (not referenced by any exported item, so not migrated)", variable.Name)
		}
	}
}

// sourceFiles returns recognized source files directly inside dir, sorted by name
func (m *Migrator) sourceFiles(ctx context.Context, dir string) ([]string, error) {
	entries, err := m.fs.List(ctx, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", dir)
	}
	var ignore *gitignore.GitIgnore
	if m.config.RespectGitignore {
		ignore = m.loadGitignore(ctx, dir)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir || !m.isSourceExtension(entry.Name) {
			continue
		}
		if m.config.SkipDeclarationFiles && isDeclarationFile(entry.Name) {
			continue
		}
		if m.config.SkipTests && isTestFile(entry.Name) {
			continue
		}
		if ignore != nil && ignore.MatchesPath(entry.Name) {
			continue
		}
		names = append(names, entry.Name)
	}
	sort.Strings(names)
	var result []string
	for _, name := range names {
		result = append(result, joinURL(dir, name))
	}
	return result, nil
}

func (m *Migrator) loadGitignore(ctx context.Context, dir string) *gitignore.GitIgnore {
	location := joinURL(dir, ".gitignore")
	if ok, _ := m.fs.Exists(ctx, location); !ok {
		return nil
	}
	content, err := m.fs.ReadFile(ctx, location)
	if err != nil {
		return nil
	}
	return gitignore.CompileIgnoreLines(strings.Split(string(content), "\n")...)
}

func (m *Migrator) isSourceExtension(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, candidate := range m.config.Extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

func isDeclarationFile(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range []string{".d.ts", ".d.mts", ".d.cts", ".d.tsx"} {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func isTestFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, ".test.") || strings.Contains(lower, ".spec.")
}

func describeCounts(counts map[graph.Kind]int) string {
	return strings.Join([]string{
		pluralize(counts[graph.KindFunction], "function"),
		pluralize(counts[graph.KindClass], "class"),
		pluralize(counts[graph.KindType], "type"),
		pluralize(counts[graph.KindInterface], "interface"),
	}, ", ")
}

func pluralize(count int, noun string) string {
	if count == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "s") {
		return strconv.Itoa(count) + " " + noun + "es"
	}
	return strconv.Itoa(count) + " " + noun + "s"
}
