// internal/config/config.go
//
// This package handles configuration and the .stagetrack directory structure.
// Every project that uses stagetrack gets a .stagetrack/ folder with a
// config.yaml describing which application document to show and how.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ProjectDirName is the name of the directory we create in each project
	ProjectDirName = ".stagetrack"

	defaultMode = "timeline"
)

const defaultProjectConfigYAML = `# stagetrack project configuration
version: 1

# Application document to display. Relative paths resolve against the project.
application: application.yaml

view:
  # timeline shows every stage; stepper shows one stage at a time.
  mode: timeline
  current_step: 0
  # controlled hands expansion state to the host instead of the engine.
  controlled: false
  # expanded lists stage ids that start expanded (controlled mode only).
  expanded: []
  # markdown renders stage descriptions with glamour.
  markdown: false
  # plain disables colour output.
  plain: false
`

// ViewConfig captures presentation preferences.
type ViewConfig struct {
	Mode        string   `yaml:"mode"`
	CurrentStep int      `yaml:"current_step"`
	Controlled  bool     `yaml:"controlled"`
	Expanded    []string `yaml:"expanded,omitempty"`
	Markdown    bool     `yaml:"markdown"`
	Plain       bool     `yaml:"plain"`
}

// ProjectConfig models .stagetrack/config.yaml.
type ProjectConfig struct {
	Version     int        `yaml:"version"`
	Application string     `yaml:"application,omitempty"`
	View        ViewConfig `yaml:"view"`
}

// Config holds the runtime configuration for stagetrack.
type Config struct {
	// ProjectDir is the directory stagetrack was pointed at
	ProjectDir string

	// StateDir is ProjectDir/.stagetrack
	StateDir string

	Project ProjectConfig
}

// InitDir creates the .stagetrack directory structure in the given project
// directory and writes a commented default config when none exists.
//
// Structure created:
// .stagetrack/
// ├── config.yaml
// └── logs/        <- session journal
func InitDir(projectDir string) error {
	stateDir := filepath.Join(projectDir, ProjectDirName)
	if err := os.MkdirAll(filepath.Join(stateDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure %s: %w", stateDir, err)
	}
	return ensureProjectConfig(filepath.Join(stateDir, "config.yaml"))
}

// New creates a Config populated with project settings. A missing config file
// is not an error; defaults apply.
func New(projectDir string) (*Config, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", projectDir, err)
	}
	cfg := &Config{
		ProjectDir: abs,
		StateDir:   filepath.Join(abs, ProjectDirName),
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StateDir, "logs")
}

// JournalPath returns the session journal file.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "journey.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StateDir, "config.yaml")
}

// ApplicationPath returns the application document path resolved against the
// project directory, or "". The config keeps the value as written.
func (c *Config) ApplicationPath() string {
	return resolvePath(c.ProjectDir, c.Project.Application)
}

// DefaultMode returns the configured presentation mode.
func (c *Config) DefaultMode() string {
	return c.Project.View.Mode
}

// SetDefaultMode updates the preferred presentation mode and persists it back
// to .stagetrack/config.yaml.
func (c *Config) SetDefaultMode(mode string) error {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		return fmt.Errorf("config: mode is required")
	}
	prev := c.Project.View.Mode
	c.Project.View.Mode = mode
	if err := c.saveProjectConfig(); err != nil {
		c.Project.View.Mode = prev
		return err
	}
	return nil
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		View:    ViewConfig{Mode: defaultMode},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.View.Mode) == "" {
		pc.View.Mode = defaultMode
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Application = strings.TrimSpace(pc.Application)
	pc.View.Mode = strings.ToLower(strings.TrimSpace(pc.View.Mode))
	expanded := pc.View.Expanded[:0]
	for _, id := range pc.View.Expanded {
		if id = strings.TrimSpace(id); id != "" {
			expanded = append(expanded, id)
		}
	}
	pc.View.Expanded = expanded
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	switch pc.View.Mode {
	case "timeline", "stepper":
	default:
		return fmt.Errorf("view.mode must be 'timeline' or 'stepper', got %q", pc.View.Mode)
	}
	if pc.View.CurrentStep < 0 {
		return fmt.Errorf("view.current_step must be >= 0")
	}
	if len(pc.View.Expanded) > 0 && !pc.View.Controlled {
		return fmt.Errorf("view.expanded requires view.controlled")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.StateDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
