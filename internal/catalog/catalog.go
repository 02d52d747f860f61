// Package catalog holds the static table of installable tools.
//
// The table is data, not code: tools come from the embedded catalog.yaml and
// optionally from a user file with the same layout. A Catalog is immutable
// once built and hands out copies, so it can be shared between the installer
// and the validator.
package catalog

import (
	"sort"
	"strings"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/errors"
	"github.com/cmwen/mcp-dev-env-setup/internal/platform/validator"
)

// Catalog es la tabla de herramientas en orden de definición.
type Catalog struct {
	tools []domain.ToolDescriptor
	index map[string]int // lower-cased name or alias -> position in tools
}

// New validates the descriptors and builds a Catalog. Names and aliases are
// unique case-insensitively, every prerequisite must exist and the
// prerequisite graph must be acyclic.
func New(tools []domain.ToolDescriptor) (*Catalog, error) {
	c := &Catalog{
		tools: make([]domain.ToolDescriptor, 0, len(tools)),
		index: make(map[string]int, len(tools)*2),
	}
	for _, t := range tools {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if !validator.IsToolName(t.Name) {
			return nil, errors.Errorf("%w: name %q must be lower-case letters, digits, dots or hyphens",
				domain.ErrInvalidTool, t.Name)
		}
		if t.ProfileBlock != "" && !validator.IsToolName(t.ProfileBlock) {
			return nil, errors.Errorf("%w: %s has invalid profile block %q", domain.ErrInvalidTool, t.Name, t.ProfileBlock)
		}
		pos := len(c.tools)
		for _, key := range append([]string{t.Name}, t.Aliases...) {
			k := normalize(key)
			if k == "" {
				continue
			}
			if other, dup := c.index[k]; dup && other != pos {
				return nil, errors.Errorf("%w: %q is used by %s and %s",
					domain.ErrDuplicateTool, key, c.tools[other].Name, t.Name)
			}
			c.index[k] = pos
		}
		c.tools = append(c.tools, t.Clone())
	}
	if err := c.checkPrerequisites(); err != nil {
		return nil, err
	}
	if err := c.checkSharedBlocks(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew is New for tables known to be valid, such as test fixtures.
func MustNew(tools []domain.ToolDescriptor) *Catalog {
	c, err := New(tools)
	if err != nil {
		panic(err)
	}
	return c
}

// Get looks a tool up by canonical name or alias, ignoring case.
func (c *Catalog) Get(name string) (domain.ToolDescriptor, bool) {
	pos, ok := c.index[normalize(name)]
	if !ok {
		return domain.ToolDescriptor{}, false
	}
	return c.tools[pos].Clone(), true
}

// Names lista los nombres canónicos en orden de definición.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.tools))
	for i, t := range c.tools {
		out[i] = t.Name
	}
	return out
}

// All returns every descriptor in definition order.
func (c *Catalog) All() []domain.ToolDescriptor {
	out := make([]domain.ToolDescriptor, len(c.tools))
	for i, t := range c.tools {
		out[i] = t.Clone()
	}
	return out
}

// ByCategory filters the catalog, keeping definition order.
func (c *Catalog) ByCategory(category domain.Category) []domain.ToolDescriptor {
	var out []domain.ToolDescriptor
	for _, t := range c.tools {
		if t.Category == category {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Len devuelve el número de herramientas.
func (c *Catalog) Len() int {
	return len(c.tools)
}

// Categories returns the categories present, in domain.AllCategories order.
func (c *Catalog) Categories() []domain.Category {
	seen := make(map[domain.Category]bool)
	for _, t := range c.tools {
		seen[t.Category] = true
	}
	var out []domain.Category
	for _, cat := range domain.AllCategories {
		if seen[cat] {
			out = append(out, cat)
		}
	}
	return out
}

// Merge overlays tools onto base: an entry whose name matches a base tool
// replaces it in place, new entries are appended in their own order.
func Merge(base, overlay []domain.ToolDescriptor) []domain.ToolDescriptor {
	out := make([]domain.ToolDescriptor, len(base), len(base)+len(overlay))
	copy(out, base)
	pos := make(map[string]int, len(base))
	for i, t := range base {
		pos[normalize(t.Name)] = i
	}
	for _, t := range overlay {
		if i, ok := pos[normalize(t.Name)]; ok {
			out[i] = t
			continue
		}
		pos[normalize(t.Name)] = len(out)
		out = append(out, t)
	}
	return out
}

func (c *Catalog) checkPrerequisites() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(c.tools))

	var visit func(i int, path []string) error
	visit = func(i int, path []string) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return errors.Errorf("%w: %s", domain.ErrPrerequisiteCycle, strings.Join(append(path, c.tools[i].Name), " -> "))
		}
		state[i] = visiting
		path = append(path, c.tools[i].Name)
		for _, pre := range c.tools[i].Prerequisites {
			j, ok := c.index[normalize(pre)]
			if !ok {
				return errors.Errorf("%w: %s requires unknown tool %q", domain.ErrInvalidTool, c.tools[i].Name, pre)
			}
			if err := visit(j, path); err != nil {
				return err
			}
		}
		state[i] = done
		return nil
	}

	for i := range c.tools {
		if err := visit(i, nil); err != nil {
			return err
		}
	}
	return nil
}

// checkSharedBlocks requires tools that share a profile block to write the
// same content.
func (c *Catalog) checkSharedBlocks() error {
	owners := make(map[string]domain.ToolDescriptor)
	for _, t := range c.tools {
		if !t.NeedsShellConfiguration() {
			continue
		}
		first, seen := owners[t.BlockName()]
		if !seen {
			owners[t.BlockName()] = t
			continue
		}
		if !sameShellConfiguration(first, t) {
			return errors.Errorf("%w: %s and %s share profile block %q with different content",
				domain.ErrInvalidTool, first.Name, t.Name, t.BlockName())
		}
	}
	return nil
}

func sameShellConfiguration(a, b domain.ToolDescriptor) bool {
	if strings.TrimSpace(a.ShellProfileSnippet) != strings.TrimSpace(b.ShellProfileSnippet) ||
		len(a.EnvironmentVariables) != len(b.EnvironmentVariables) {
		return false
	}
	for k, v := range a.EnvironmentVariables {
		if w, ok := b.EnvironmentVariables[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// SortedNames is Names in lexical order, for help text and completion.
func (c *Catalog) SortedNames() []string {
	names := c.Names()
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return validator.NormalizeToolName(name)
}
