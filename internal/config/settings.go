package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"keepnotes/internal/types"
)

const (
	defaultBackend      = "bbolt"
	defaultLogLevel     = "info"
	defaultLogFile      = "keepnotes.log"
	defaultSidebarWidth = 24
	minSidebarWidth     = 16
)

var defaultStorageNames = map[string]string{
	"bbolt":  "keepnotes.db",
	"sqlite": "keepnotes.sqlite",
	"file":   "state",
}

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	Notes   NotesConfig   `toml:"notes"`
	Editor  EditorConfig  `toml:"editor"`
	UI      UIConfig      `toml:"ui"`
}

type StorageConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type NotesConfig struct {
	DefaultTags []string `toml:"default_tags"`
}

type EditorConfig struct {
	DefaultBackground string `toml:"default_background"`
	DefaultPriority   string `toml:"default_priority"`
}

type UIConfig struct {
	SidebarWidth int  `toml:"sidebar_width"`
	ShowCounts   bool `toml:"show_counts"`
}

func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: defaultBackend,
		},
		Logging: LoggingConfig{
			Level: defaultLogLevel,
			File:  defaultLogFile,
		},
		Notes: NotesConfig{
			DefaultTags: types.DefaultTags(),
		},
		Editor: EditorConfig{
			DefaultBackground: string(types.BackgroundNone),
			DefaultPriority:   string(types.PriorityLow),
		},
		UI: UIConfig{
			SidebarWidth: defaultSidebarWidth,
			ShowCounts:   true,
		},
	}
}

// Load reads config.toml from dataDir (or the default data directory) on top
// of DefaultConfig. A missing or empty file yields the defaults.
func Load(dataDir string) (Config, error) {
	path, err := ConfigPath(dataDir)
	if err != nil {
		return Config{}, err
	}
	return LoadFromPath(path)
}

func LoadFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

func (c Config) Backend() string {
	backend := strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if backend == "" {
		return defaultBackend
	}
	return backend
}

// StoragePath resolves storage.path for the configured backend. Relative paths
// are taken from dataDir.
func (c Config) StoragePath(dataDir string) (string, error) {
	path := strings.TrimSpace(c.Storage.Path)
	if path == "" {
		name, ok := defaultStorageNames[c.Backend()]
		if !ok {
			return "", nil
		}
		path = name
	}
	return resolveConfigPath(path, dataDir)
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return defaultLogLevel
	}
	return level
}

func (c Config) LogPath(dataDir string) (string, error) {
	path := strings.TrimSpace(c.Logging.File)
	if path == "" {
		path = defaultLogFile
	}
	return resolveConfigPath(path, dataDir)
}

// DefaultTags returns the tag list seeded into a fresh store.
func (c Config) DefaultTags() []string {
	if c.Notes.DefaultTags == nil {
		return types.DefaultTags()
	}
	tags := normalizedList(c.Notes.DefaultTags)
	if tags == nil {
		return []string{}
	}
	return tags
}

func (c Config) DefaultBackground() types.Background {
	bg := types.Background(strings.ToLower(strings.TrimSpace(c.Editor.DefaultBackground)))
	if !bg.Valid() {
		return types.BackgroundNone
	}
	return bg
}

func (c Config) DefaultPriority() types.Priority {
	p := types.Priority(strings.ToLower(strings.TrimSpace(c.Editor.DefaultPriority)))
	if !p.Valid() {
		return types.PriorityLow
	}
	return p
}

func (c Config) SidebarWidth() int {
	if c.UI.SidebarWidth <= 0 {
		return defaultSidebarWidth
	}
	if c.UI.SidebarWidth < minSidebarWidth {
		return minSidebarWidth
	}
	return c.UI.SidebarWidth
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path, dataDir string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		return expandHome(path)
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dir, err := dataDirOrDefault(dataDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, path), nil
}

func normalizedList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, raw := range values {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
