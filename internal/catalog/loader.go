// internal/catalog/loader.go
package catalog

import (
	"bytes"
	_ "embed"
	"io"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/errors"
)

//go:embed catalog.yaml
var builtinYAML []byte

// document is the on-disk layout shared by the embedded and user catalogs.
type document struct {
	Tools []domain.ToolDescriptor `yaml:"tools"`
}

// Parse decodes a catalog document. Unknown keys are rejected so typos in a
// user catalog surface instead of silently dropping an install method.
func Parse(data []byte) ([]domain.ToolDescriptor, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	return doc.Tools, nil
}

// Builtin returns the embedded catalog.
func Builtin() (*Catalog, error) {
	tools, err := Parse(builtinYAML)
	if err != nil {
		return nil, errors.Wrap(err, "parse built-in catalog")
	}
	return New(tools)
}

// Load builds the catalog from the embedded table plus, when path is set,
// the user file at path. A missing user file is an error: the path was
// configured explicitly.
func Load(fs afero.Fs, path string) (*Catalog, error) {
	base, err := Parse(builtinYAML)
	if err != nil {
		return nil, errors.Wrap(err, "parse built-in catalog")
	}
	if path == "" {
		return New(base)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: catalog file %s does not exist", errors.ErrInvalidConfig, path)
		}
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}
	overlay, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse catalog %s", path)
	}

	c, err := New(Merge(base, overlay))
	if err != nil {
		return nil, errors.Errorf("%w: catalog %s: %w", errors.ErrInvalidConfig, path, err)
	}
	return c, nil
}
