package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DataSource describes one entry in the config `data` list, consumed by the
// collector package when syncing external data into the project.
type DataSource struct {
	Type       string `yaml:"type"`
	Src        string `yaml:"src"`
	Dest       string `yaml:"dest,omitempty"`
	Mountpoint string `yaml:"mountpoint,omitempty"`
	Cmd        string `yaml:"cmd,omitempty"`
	PreCmd     string `yaml:"precmd,omitempty"`
	PostCmd    string `yaml:"postcmd,omitempty"`
}

// Config holds the merged configuration for a workspace. Three files are
// read, lowest precedence first: site, user, project. Scalar values from
// later files win; list values accumulate with the project's own entries
// first.
type Config struct {
	Editor               string       `yaml:"editor,omitempty"`
	Terminal             string       `yaml:"terminal,omitempty"`
	PDF                  string       `yaml:"pdf,omitempty"`
	Browser              string       `yaml:"browser,omitempty"`
	BrowserNewWindowFlag string       `yaml:"browser_new_window_flag,omitempty"`
	ProtocolDirs         []string     `yaml:"protocol_dirs,omitempty"`
	Data                 []DataSource `yaml:"data,omitempty"`

	paths []string // the files that were actually read, low to high
}

// SiteConfigPath is the lowest-precedence config file.
func SiteConfigPath() string {
	return filepath.Join("/etc", "labbook", "config.yml")
}

// UserConfigPath honors $XDG_CONFIG_HOME, defaulting to ~/.config.
func UserConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "labbook", "config.yml")
}

// LoadConfig reads and merges the site, user, and project config files.
// Missing files are skipped; a workspace with no config at all gets an
// empty Config, since every option has an environment or hard default.
func LoadConfig(rcPath string) (*Config, error) {
	merged := &Config{}
	for _, path := range []string{SiteConfigPath(), UserConfigPath(), rcPath} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		var layer Config
		if err := yaml.Unmarshal(data, &layer); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}

		merged.merge(&layer)
		merged.paths = append(merged.paths, path)
	}
	return merged, nil
}

// merge overlays a higher-precedence layer onto c. List values from the
// higher layer come first so project-local protocol dirs and data sources
// are consulted before shared ones.
func (c *Config) merge(layer *Config) {
	if layer.Editor != "" {
		c.Editor = layer.Editor
	}
	if layer.Terminal != "" {
		c.Terminal = layer.Terminal
	}
	if layer.PDF != "" {
		c.PDF = layer.PDF
	}
	if layer.Browser != "" {
		c.Browser = layer.Browser
	}
	if layer.BrowserNewWindowFlag != "" {
		c.BrowserNewWindowFlag = layer.BrowserNewWindowFlag
	}
	c.ProtocolDirs = append(layer.ProtocolDirs, c.ProtocolDirs...)
	c.Data = append(layer.Data, c.Data...)
}

// Paths returns the config files that were found and merged, in precedence
// order from lowest to highest. Shown by `labbook debug`.
func (c *Config) Paths() []string {
	return c.paths
}

// Dump renders the merged configuration as YAML.
func (c *Config) Dump() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// editorCommand resolves the editor: config, then $EDITOR, then vim.
func (c *Config) editorCommand() string {
	return firstNonEmpty(c.Editor, os.Getenv("EDITOR"), "vim")
}

// terminalCommand resolves the terminal: config, then $TERMINAL, then xterm.
func (c *Config) terminalCommand() string {
	return firstNonEmpty(c.Terminal, os.Getenv("TERMINAL"), "xterm")
}

// pdfCommand resolves the PDF viewer: config, then $PDF, then evince.
func (c *Config) pdfCommand() string {
	return firstNonEmpty(c.PDF, os.Getenv("PDF"), "evince")
}

// browserCommand resolves the browser: config, then $BROWSER, then firefox.
func (c *Config) browserCommand() string {
	return firstNonEmpty(c.Browser, os.Getenv("BROWSER"), "firefox")
}

// browserNewWindowFlag resolves the flag that opens a new browser window.
func (c *Config) browserNewWindowFlag() string {
	return firstNonEmpty(c.BrowserNewWindowFlag, os.Getenv("BROWSER_NEW_WINDOW_FLAG"), "--new-window")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
