// internal/platform/shellprofile/configurator.go
package shellprofile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/errors"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/logx"
)

const markerTag = "devenv"

// StartMarker is the first line of the managed block for a tool.
func StartMarker(tool string) string {
	return fmt.Sprintf("# >>> %s:%s >>>", markerTag, tool)
}

// EndMarker is the last line of the managed block for a tool.
func EndMarker(tool string) string {
	return fmt.Sprintf("# <<< %s:%s <<<", markerTag, tool)
}

// PathFunc resolves the profile file at call time.
type PathFunc func() string

// Configurator appends marker-delimited blocks to the user's shell profile.
// Apply is idempotent: a block whose start marker is already in the file is
// never written again.
type Configurator struct {
	fs     afero.Fs
	path   PathFunc
	logger logx.Logger

	mu sync.Mutex
}

// NewConfigurator crea un Configurator sobre fs.
func NewConfigurator(fs afero.Fs, path PathFunc, logger logx.Logger) *Configurator {
	if logger == nil {
		logger = logx.NewNop()
	}
	return &Configurator{
		fs:     fs,
		path:   path,
		logger: logger.With("component", "shellprofile"),
	}
}

// Path devuelve el fichero de perfil gestionado.
func (c *Configurator) Path() string {
	return expandHome(c.path())
}

// Block renders the managed block for a tool, or "" when the tool needs no
// shell configuration. Exports are sorted by name.
func Block(tool domain.ToolDescriptor) string {
	if !tool.NeedsShellConfiguration() {
		return ""
	}
	var b strings.Builder
	b.WriteString(StartMarker(tool.BlockName()))
	b.WriteByte('\n')

	names := make([]string, 0, len(tool.EnvironmentVariables))
	for name := range tool.EnvironmentVariables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "export %s=\"%s\"\n", name, quoteValue(tool.EnvironmentVariables[name]))
	}

	if snippet := strings.TrimRight(tool.ShellProfileSnippet, "\n"); strings.TrimSpace(snippet) != "" {
		b.WriteString(snippet)
		b.WriteByte('\n')
	}
	b.WriteString(EndMarker(tool.BlockName()))
	b.WriteByte('\n')
	return b.String()
}

// valueEscaper escapes what a double-quoted shell word would interpret,
// except $ so that $HOME and $PATH still expand.
var valueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`")

func quoteValue(v string) string {
	return valueEscaper.Replace(v)
}

// Apply writes the tool's block unless it is already present. It returns
// true only when the file was written.
func (c *Configurator) Apply(tool domain.ToolDescriptor) (bool, error) {
	block := Block(tool)
	if block == "" {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.Path()
	content, err := c.read(path)
	if err != nil {
		return false, err
	}
	if strings.Contains(content, StartMarker(tool.BlockName())) {
		c.logger.Debug("profile block already present", "tool", tool.Name, "block", tool.BlockName(), "path", path)
		return false, nil
	}

	var prefix string
	switch {
	case content == "":
	case strings.HasSuffix(content, "\n"):
		prefix = "\n"
	default:
		prefix = "\n\n"
	}

	if err := c.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, errors.Wrapf(err, "create directory for %s", path)
	}
	f, err := c.fs.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return false, errors.Wrapf(err, "open %s", path)
	}
	if _, err := f.WriteString(prefix + block); err != nil {
		_ = f.Close()
		return false, errors.Wrapf(err, "append to %s", path)
	}
	if err := f.Close(); err != nil {
		return false, errors.Wrapf(err, "close %s", path)
	}

	c.logger.Info("profile block written", "tool", tool.Name, "path", path)
	return true, nil
}

// IsConfigured reports whether the named block is already in the profile.
func (c *Configurator) IsConfigured(tool string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	content, err := c.read(c.Path())
	if err != nil {
		return false, err
	}
	return strings.Contains(content, StartMarker(tool)), nil
}

// read treats a missing file as empty content.
func (c *Configurator) read(path string) (string, error) {
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "read %s", path)
	}
	return string(data), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
