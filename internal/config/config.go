package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/maruel/unicorn/internal/item"
)

// Emission modes.
const (
	ModeWrite     = "write"
	ModeTransform = "transform"
)

// Defaults.
const (
	DefaultCommitMessage = "Update serialized items"
	DefaultWatchInterval = 250 * time.Millisecond
)

// Config is the build configuration.
type Config struct {
	OutputPath string          `yaml:"outputPath,omitempty" toml:"outputPath,omitempty" json:"outputPath,omitempty" jsonschema:"description=Directory receiving item records"`
	ParentItem string          `yaml:"parentItem,omitempty" toml:"parentItem,omitempty" json:"parentItem,omitempty" jsonschema:"description=Path of the parent item record"`
	Parent     *Parent         `yaml:"parent,omitempty" toml:"parent,omitempty" json:"parent,omitempty" jsonschema:"description=Parent item used without loading a record"`
	Mode       string          `yaml:"mode,omitempty" toml:"mode,omitempty" json:"mode,omitempty" jsonschema:"enum=write,enum=transform,default=write,description=Write records to disk or emit them to dest"`
	Dest       string          `yaml:"dest,omitempty" toml:"dest,omitempty" json:"dest,omitempty" jsonschema:"description=Directory receiving emitted records in transform mode; stdout when empty"`
	DB         string          `yaml:"db,omitempty" toml:"db,omitempty" json:"db,omitempty" jsonschema:"default=master,description=Database of new items"`
	Language   string          `yaml:"language,omitempty" toml:"language,omitempty" json:"language,omitempty" jsonschema:"default=en,description=Language of new items"`
	CreatedBy  string          `yaml:"createdBy,omitempty" toml:"createdBy,omitempty" json:"createdBy,omitempty" jsonschema:"description=Author recorded on new items"`
	Types      map[string]Type `yaml:"types,omitempty" toml:"types,omitempty" json:"types,omitempty" jsonschema:"description=File type overrides keyed by extension"`
	Fields     []Field         `yaml:"fields,omitempty" toml:"fields,omitempty" json:"fields,omitempty" jsonschema:"description=Extra shared fields set on every item"`
	Git        Git             `yaml:"git,omitempty" toml:"git,omitempty" json:"git,omitempty"`
	Watch      Watch           `yaml:"watch,omitempty" toml:"watch,omitempty" json:"watch,omitempty"`
}

// Parent references a parent item by identifier and content path.
type Parent struct {
	ID   string `yaml:"id" toml:"id" json:"id" jsonschema:"description=Item identifier"`
	Path string `yaml:"path" toml:"path" json:"path" jsonschema:"description=Content tree path"`
}

// Type overrides the defaults derived from a file name. Empty values keep
// the default.
type Type struct {
	MimeType  string `yaml:"mimeType,omitempty" toml:"mimeType,omitempty" json:"mimeType,omitempty"`
	Icon      string `yaml:"icon,omitempty" toml:"icon,omitempty" json:"icon,omitempty"`
	Template  string `yaml:"template,omitempty" toml:"template,omitempty" json:"template,omitempty" jsonschema:"description=Template identifier"`
	Extension string `yaml:"extension,omitempty" toml:"extension,omitempty" json:"extension,omitempty"`
}

// Field is a shared field written on every item.
type Field struct {
	ID    string `yaml:"id" toml:"id" json:"id"`
	Hint  string `yaml:"hint,omitempty" toml:"hint,omitempty" json:"hint,omitempty"`
	Value any    `yaml:"value" toml:"value" json:"value"`
}

// Git controls committing written records.
type Git struct {
	Commit      bool   `yaml:"commit,omitempty" toml:"commit,omitempty" json:"commit,omitempty" jsonschema:"description=Commit written records to the enclosing repository"`
	Message     string `yaml:"message,omitempty" toml:"message,omitempty" json:"message,omitempty"`
	AuthorName  string `yaml:"authorName,omitempty" toml:"authorName,omitempty" json:"authorName,omitempty"`
	AuthorEmail string `yaml:"authorEmail,omitempty" toml:"authorEmail,omitempty" json:"authorEmail,omitempty"`
}

// Watch configures watch mode.
type Watch struct {
	Interval string `yaml:"interval,omitempty" toml:"interval,omitempty" json:"interval,omitempty" jsonschema:"default=250ms,description=Minimum delay between rebuilds of the same file"`
}

// Default returns a configuration with defaults applied.
func Default() *Config {
	c := &Config{}
	c.normalize("")
	return c
}

// Load reads and normalizes the configuration at path. The format is
// selected by extension: .yml, .yaml or .toml.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(f)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	cfg.normalize(filepath.Dir(path))
	return &cfg, nil
}

// normalize applies defaults and resolves relative paths against baseDir.
func (c *Config) normalize(baseDir string) {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if c.Mode == "" {
		c.Mode = ModeWrite
	}
	if c.DB == "" {
		c.DB = item.DefaultDB
	}
	if c.Language == "" {
		c.Language = item.DefaultLanguage
	}
	if c.CreatedBy == "" {
		c.CreatedBy = item.DefaultCreatedBy
	}
	if c.Git.Message == "" {
		c.Git.Message = DefaultCommitMessage
	}
	if c.Watch.Interval == "" {
		c.Watch.Interval = DefaultWatchInterval.String()
	}
	if len(c.Types) > 0 {
		types := make(map[string]Type, len(c.Types))
		for ext, t := range c.Types {
			types[normalizeExt(ext)] = t
		}
		c.Types = types
	}
	if baseDir != "" {
		c.OutputPath = resolvePath(baseDir, c.OutputPath)
		c.ParentItem = resolvePath(baseDir, c.ParentItem)
		c.Dest = resolvePath(baseDir, c.Dest)
	}
}

// WatchInterval returns the parsed watch interval.
func (c *Config) WatchInterval() time.Duration {
	d, err := time.ParseDuration(c.Watch.Interval)
	if err != nil || d <= 0 {
		return DefaultWatchInterval
	}
	return d
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func resolvePath(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
