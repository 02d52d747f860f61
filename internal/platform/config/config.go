// internal/platform/config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/cmwen/mcp-dev-env-setup/internal/platform/errors"
)

// EnvPrefix antecede a todas las variables de entorno de configuración.
const EnvPrefix = "DEVENV_"

type Config struct {
	// ConfigFile is the YAML file the values were read from, if any.
	ConfigFile string `yaml:"-" json:"config_file,omitempty"`

	// Catalog / profile
	CatalogFile string `yaml:"catalog_file" json:"catalog_file,omitempty"`
	ProfilePath string `yaml:"profile_path" json:"profile_path,omitempty"`
	Shell       string `yaml:"shell" json:"shell,omitempty"`

	// Probes
	ProbeWorkers int      `yaml:"probe_workers" json:"probe_workers"`
	Timeouts     Timeouts `yaml:"timeouts" json:"timeouts"`

	// Logging / events
	LogLevel string `yaml:"log_level" json:"log_level"`
	EventLog string `yaml:"event_log" json:"event_log,omitempty"`

	// Output
	UI      string `yaml:"ui" json:"ui"`
	JSON    bool   `yaml:"json" json:"json"`
	Quiet   bool   `yaml:"quiet" json:"quiet"`
	Verbose bool   `yaml:"-" json:"verbose"`
}

// Timeouts acota cada clase de comando de shell.
type Timeouts struct {
	Probe   time.Duration `yaml:"probe" json:"probe"`
	Command time.Duration `yaml:"command" json:"command"`
	Install time.Duration `yaml:"install" json:"install"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		ProbeWorkers: 8,
		Timeouts: Timeouts{
			Probe:   10 * time.Second,
			Command: 60 * time.Second,
			Install: 10 * time.Minute,
		},
		LogLevel: "warn",
		UI:       "pretty",
	}
}

// DefaultConfigFile is $XDG_CONFIG_HOME/devenv/config.yaml.
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, "devenv", "config.yaml")
}

// BindFlags registra los flags globales en fs. Cobra passes its persistent
// flag set here.
func BindFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()

	fs.String("config", "", "Config file (default $XDG_CONFIG_HOME/devenv/config.yaml)")
	fs.String("catalog", "", "Extra tool catalog YAML that adds or overrides tools")
	fs.String("profile", "", "Shell profile file to configure (default derived from $SHELL)")
	fs.String("shell", "", "Shell name used to pick the profile file (zsh, bash, ...)")
	fs.Int("workers", def.ProbeWorkers, "Concurrent probes when checking all tools")
	fs.Duration("probe-timeout", def.Timeouts.Probe, "Timeout for existence and version probes")
	fs.Duration("command-timeout", def.Timeouts.Command, "Timeout for post-install steps and searches")
	fs.Duration("install-timeout", def.Timeouts.Install, "Timeout for install and bootstrap commands")
	fs.String("log-level", def.LogLevel, "Log level: debug, info, warn, error")
	fs.String("event-log", "", "Append install events as JSON lines to this file")
	fs.String("ui", def.UI, "Terminal output: pretty (spinners, tables), raw (one logfmt line per event) or quiet")
	fs.Bool("json", false, "Print results as JSON")
	fs.BoolP("quiet", "q", false, "Quiet mode (no spinners, minimal output)")
	fs.BoolP("verbose", "v", false, "Verbose mode (debug logging)")
}

// Load inicializa la configuración por capas: defaults -> fichero YAML ->
// ENV -> flags cambiados. flags may be nil.
func Load(fsys afero.Fs, flags *pflag.FlagSet) (Config, error) {
	cfg := DefaultConfig()

	path, explicit := configPath(flags)
	if err := loadFromFile(fsys, path, explicit, &cfg); err != nil {
		return cfg, err
	}

	loadFromEnv(&cfg)

	if flags != nil {
		if err := loadFromFlags(flags, &cfg); err != nil {
			return cfg, err
		}
	}

	normalize(&cfg)
	return cfg, nil
}

// configPath returns the file to read and whether the user named it.
func configPath(flags *pflag.FlagSet) (string, bool) {
	if flags != nil && flags.Changed("config") {
		if v, err := flags.GetString("config"); err == nil && v != "" {
			return v, true
		}
	}
	if v := getenv(EnvPrefix+"CONFIG", ""); v != "" {
		return v, true
	}
	return DefaultConfigFile(), false
}

// loadFromFile lee el YAML. A missing default file is not an error; a
// missing explicit file is.
func loadFromFile(fsys afero.Fs, path string, explicit bool, cfg *Config) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return errors.Wrapf(errors.ErrInvalidConfig, "read config %s: %v", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return errors.Wrapf(errors.ErrInvalidConfig, "parse config %s: %v", path, err)
	}
	cfg.ConfigFile = path
	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) {
	if v := getenv(EnvPrefix+"CATALOG_FILE", ""); v != "" {
		cfg.CatalogFile = v
	}
	if v := getenv(EnvPrefix+"PROFILE_PATH", ""); v != "" {
		cfg.ProfilePath = v
	}
	if v := getenv(EnvPrefix+"SHELL", ""); v != "" {
		cfg.Shell = v
	}
	if v := getenv(EnvPrefix+"PROBE_WORKERS", ""); v != "" {
		cfg.ProbeWorkers = parseInt(v, cfg.ProbeWorkers)
	}
	if v := getenv(EnvPrefix+"PROBE_TIMEOUT", ""); v != "" {
		cfg.Timeouts.Probe = parseDuration(v, cfg.Timeouts.Probe)
	}
	if v := getenv(EnvPrefix+"COMMAND_TIMEOUT", ""); v != "" {
		cfg.Timeouts.Command = parseDuration(v, cfg.Timeouts.Command)
	}
	if v := getenv(EnvPrefix+"INSTALL_TIMEOUT", ""); v != "" {
		cfg.Timeouts.Install = parseDuration(v, cfg.Timeouts.Install)
	}
	if v := getenv(EnvPrefix+"LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(EnvPrefix+"EVENT_LOG", ""); v != "" {
		cfg.EventLog = v
	}
	if v := getenv(EnvPrefix+"UI", ""); v != "" {
		cfg.UI = v
	}
	if v := getenv(EnvPrefix+"JSON", ""); v != "" {
		cfg.JSON = parseBool(v)
	}
	if v := getenv(EnvPrefix+"QUIET", ""); v != "" {
		cfg.Quiet = parseBool(v)
	}
}

// loadFromFlags aplica solo los flags que el usuario cambió, para que el
// valor por defecto de un flag no pise el fichero ni el entorno.
func loadFromFlags(flags *pflag.FlagSet, cfg *Config) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
	}
	str := func(name string, dst *string) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			v, err := flags.GetString(name)
			keep(err)
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			v, err := flags.GetBool(name)
			keep(err)
			*dst = v
		}
	}
	duration := func(name string, dst *time.Duration) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			v, err := flags.GetDuration(name)
			keep(err)
			*dst = v
		}
	}

	str("catalog", &cfg.CatalogFile)
	str("profile", &cfg.ProfilePath)
	str("shell", &cfg.Shell)
	str("log-level", &cfg.LogLevel)
	str("event-log", &cfg.EventLog)
	str("ui", &cfg.UI)
	duration("probe-timeout", &cfg.Timeouts.Probe)
	duration("command-timeout", &cfg.Timeouts.Command)
	duration("install-timeout", &cfg.Timeouts.Install)
	boolean("json", &cfg.JSON)
	boolean("quiet", &cfg.Quiet)
	boolean("verbose", &cfg.Verbose)

	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		v, err := flags.GetInt("workers")
		keep(err)
		cfg.ProbeWorkers = v
	}
	return firstErr
}

func normalize(c *Config) {
	def := DefaultConfig()
	if c.ProbeWorkers < 1 {
		c.ProbeWorkers = 1
	}
	if c.Timeouts.Probe <= 0 {
		c.Timeouts.Probe = def.Timeouts.Probe
	}
	if c.Timeouts.Command <= 0 {
		c.Timeouts.Command = def.Timeouts.Command
	}
	if c.Timeouts.Install <= 0 {
		c.Timeouts.Install = def.Timeouts.Install
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.Verbose {
		c.LogLevel = "debug"
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	c.UI = strings.ToLower(strings.TrimSpace(c.UI))
	if c.Quiet {
		c.UI = "quiet"
	}
	if c.UI == "" {
		c.UI = def.UI
	}
	c.CatalogFile = strings.TrimSpace(c.CatalogFile)
	c.ProfilePath = strings.TrimSpace(c.ProfilePath)
}

// ToJSON serializa la configuración a JSON (útil para debugging).
func (c Config) ToJSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

// parseDuration accepts Go durations ("90s", "15m") or bare seconds.
func parseDuration(v string, def time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if s, err := strconv.Atoi(v); err == nil {
		return time.Duration(s) * time.Second
	}
	return def
}
