package config

import (
	"path/filepath"
	"sync"

	"github.com/caarlos0/env/v11"

	"github.com/kbukum/confload/appenv"
	"github.com/kbukum/confload/errors"
	"github.com/kbukum/confload/logger"
)

const (
	// DefaultCommonFile is always the first candidate of every part.
	DefaultCommonFile = "main"
	// LocalConfVar enables local overrides when WithLocalOverrides is not used.
	LocalConfVar = "ENABLE_LOCALCONF"

	localPrefix = "local_"
)

// localConfVars is read once per loader when the local flag is unset.
type localConfVars struct {
	Enabled bool `env:"ENABLE_LOCALCONF"`
}

// LoaderConfig holds dependencies and optional settings for New.
type LoaderConfig struct {
	FileSystem     FileSystem
	CommonFiles    []string // appended after DefaultCommonFile
	LocalOverrides *bool    // nil defers to ENABLE_LOCALCONF
	Bootstrap      bool
	BootstrapOpts  []appenv.Option
	Format         Format
	ListPolicy     ListPolicy
	EnvOverlay     string // variable prefix; empty disables the overlay
	Logger         *logger.Logger
}

// LoaderOption is a functional option for New.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithCommonFiles adds common file names loaded after "main" for every part.
func WithCommonFiles(names ...string) LoaderOption {
	return func(lc *LoaderConfig) { lc.CommonFiles = append(lc.CommonFiles, names...) }
}

// WithLocalOverrides enables or disables local_* files explicitly.
func WithLocalOverrides(enabled bool) LoaderOption {
	return func(lc *LoaderConfig) { lc.LocalOverrides = &enabled }
}

// WithoutEnvBootstrap skips appenv.Bootstrap during New.
func WithoutEnvBootstrap() LoaderOption {
	return func(lc *LoaderConfig) { lc.Bootstrap = false }
}

// WithBootstrapOptions passes options to appenv.Bootstrap.
func WithBootstrapOptions(opts ...appenv.Option) LoaderOption {
	return func(lc *LoaderConfig) { lc.BootstrapOpts = append(lc.BootstrapOpts, opts...) }
}

// WithFormat sets the file format and therefore the file extension.
func WithFormat(f Format) LoaderOption {
	return func(lc *LoaderConfig) { lc.Format = f }
}

// WithListPolicy sets how lists from different layers are combined. The
// default is ListsAppend.
func WithListPolicy(p ListPolicy) LoaderOption {
	return func(lc *LoaderConfig) { lc.ListPolicy = p }
}

// WithEnvOverlay merges environment variables starting with prefix after
// all files and before the caller's extra mapping.
func WithEnvOverlay(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvOverlay = prefix }
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(l *logger.Logger) LoaderOption {
	return func(lc *LoaderConfig) { lc.Logger = l }
}

// Loader resolves and merges the configuration files of one directory.
// It is safe for concurrent use.
type Loader struct {
	directory   string
	commonFiles []string
	fs          FileSystem
	format      Format
	policy      ListPolicy
	envOverlay  string
	log         *logger.Logger
	envName     func() string

	mu    sync.Mutex
	local *bool
}

// New creates a loader for directory. Unless WithoutEnvBootstrap is given
// it bootstraps the process environment from directory first; bootstrap
// problems are logged and do not prevent the loader from being created.
func New(directory string, opts ...LoaderOption) *Loader {
	lc := LoaderConfig{Bootstrap: true, Format: FormatYAML}
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}
	if lc.Logger == nil {
		lc.Logger = logger.Get("config")
	}

	l := &Loader{
		directory:   directory,
		commonFiles: append([]string{DefaultCommonFile}, lc.CommonFiles...),
		fs:          lc.FileSystem,
		format:      lc.Format,
		policy:      lc.ListPolicy,
		envOverlay:  lc.EnvOverlay,
		log:         lc.Logger,
		envName:     appenv.Name,
	}
	if lc.LocalOverrides != nil {
		local := *lc.LocalOverrides
		l.local = &local
	}
	if !l.format.valid() {
		l.log.Warn("unsupported config format, using yaml", logger.Fields("format", string(l.format)))
		l.format = FormatYAML
	}

	if lc.Bootstrap {
		bopts := append([]appenv.Option{
			appenv.WithExists(l.fs.Exists),
			appenv.WithEnvLoader(l.fs.LoadEnv),
		}, lc.BootstrapOpts...)
		if err := appenv.Bootstrap(directory, bopts...); err != nil {
			l.log.Warn("environment bootstrap failed", logger.ErrorFields("bootstrap", err))
		}
	}
	return l
}

// LoadConfig builds the configuration of part: every existing candidate
// file merged in order, then the environment overlay if enabled, then
// extra. The plain part file must exist. Errors from reading or parsing a
// file are returned unchanged; extra is not modified.
func (l *Loader) LoadConfig(part string, extra Mapping) (Mapping, error) {
	files, err := l.Files(part)
	if err != nil {
		return nil, err
	}

	m := newLayerMerger(l.policy)
	parser := l.format.parser()
	for _, path := range files {
		data, err := l.fs.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := m.mergeFile(data, parser); err != nil {
			return nil, err
		}
	}
	if l.envOverlay != "" {
		if err := m.mergeEnv(l.envOverlay); err != nil {
			return nil, err
		}
	}
	if err := m.mergeMapping(extra); err != nil {
		return nil, err
	}

	l.log.Debug("config loaded", logger.Fields(logger.FieldPart, part, "files", len(files)))
	return m.result(), nil
}

// Part is LoadConfig without extra overrides.
func (l *Loader) Part(part string) (Mapping, error) {
	return l.LoadConfig(part, nil)
}

// LoadInto loads part and decodes the result into target. See Decode.
func (l *Loader) LoadInto(part string, target any, extra Mapping) error {
	m, err := l.LoadConfig(part, extra)
	if err != nil {
		return err
	}
	return Decode(m, target)
}

// Candidates returns the ordered file base names considered for part.
func (l *Loader) Candidates(part string) ([]string, error) {
	if part == "" {
		return nil, errors.InvalidInput("part", "must not be empty")
	}
	local, err := l.localEnabled()
	if err != nil {
		return nil, err
	}
	envName := l.envName()

	names := make([]string, 0, len(l.commonFiles)+4)
	names = append(names, l.commonFiles...)
	names = append(names, part, part+"_"+envName)
	if local {
		names = append(names, localPrefix+part, localPrefix+part+"_"+envName)
	}
	return names, nil
}

// Files resolves the candidates of part to the paths that exist, in merge
// order. It fails with CONFIG_FILE_NOT_FOUND when the plain part file is
// missing.
func (l *Loader) Files(part string) ([]string, error) {
	names, err := l.Candidates(part)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(names))
	for _, name := range names {
		path := l.path(name)
		if l.fs.Exists(path) {
			files = append(files, path)
			continue
		}
		if name == part {
			return nil, errors.ConfigFileNotFound(path)
		}
		l.log.Trace("optional config file not found", logger.Fields(logger.FieldPath, path))
	}
	return files, nil
}

func (l *Loader) path(name string) string {
	return filepath.Join(l.directory, name+"."+l.format.Extension())
}

// localEnabled resolves the local flag on first use and caches it. A parse
// failure is returned without caching so a corrected variable is picked up.
func (l *Loader) localEnabled() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.local != nil {
		return *l.local, nil
	}
	var vars localConfVars
	if err := env.Parse(&vars); err != nil {
		return false, errors.InvalidEnvValue(LocalConfVar, err)
	}
	l.local = &vars.Enabled
	return vars.Enabled, nil
}
