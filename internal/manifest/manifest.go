package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/audree-labs/layergen/internal/catalog"
	"github.com/audree-labs/layergen/internal/entity"
	"github.com/audree-labs/layergen/internal/version"
)

var (
	// ErrInvalidManifest is returned when a batch spec fails schema
	// validation or names an entity twice.
	ErrInvalidManifest = errors.New("invalid batch spec")
	// ErrVersionConstraint is returned when the running version does not
	// satisfy the file's requires constraint.
	ErrVersionConstraint = errors.New("version constraint not satisfied")
)

// Manifest is a decoded batch spec.
type Manifest struct {
	Requires string        `yaml:"requires,omitempty"`
	Entities []EntityEntry `yaml:"entities"`
}

// EntityEntry is one entity in a batch spec.
type EntityEntry struct {
	Name       string     `yaml:"name"`
	Operations Operations `yaml:"operations,omitempty"`
}

// Operations is either the keyword "all" or a list of operation names.
// An absent value selects no operations.
type Operations struct {
	All   bool
	Names []string
}

// UnmarshalYAML accepts the scalar "all", lower case only, or a sequence
// of names.
func (o *Operations) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value != "all" {
			return fmt.Errorf("line %d: operations must be \"all\" or a list, got %q", node.Line, node.Value)
		}
		o.All = true
		return nil
	case yaml.SequenceNode:
		return node.Decode(&o.Names)
	default:
		return fmt.Errorf("line %d: operations must be \"all\" or a list", node.Line)
	}
}

// Set resolves the operation names against the catalog.
func (o Operations) Set() (catalog.Set, error) {
	if o.All {
		return catalog.FullSet(), nil
	}
	var ops []catalog.Operation
	for _, name := range o.Names {
		op, err := catalog.Parse(name)
		if err != nil {
			return 0, err
		}
		ops = append(ops, op)
	}
	return catalog.NewSet(ops...), nil
}

// Parse validates data against the batch spec schema and decodes it.
func Parse(data []byte) (*Manifest, error) {
	issues, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if len(issues) > 0 {
		msgs := make([]string, len(issues))
		for i, issue := range issues {
			msgs[i] = issue.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidManifest, strings.Join(msgs, "; "))
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	return &m, nil
}

// LoadFile reads and parses the batch spec at path.
func LoadFile(fsys afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading batch spec %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// CheckVersion reports whether toolVersion satisfies the requires constraint.
// Versions that are not semver, such as local "dev" builds, always pass.
func (m *Manifest) CheckVersion(toolVersion string) error {
	if m.Requires == "" {
		return nil
	}
	if _, err := semver.NewConstraint(m.Requires); err != nil {
		return fmt.Errorf("%w: requires %q: %w", ErrInvalidManifest, m.Requires, err)
	}
	if !version.IsRelease(toolVersion) {
		return nil
	}
	ok, err := version.Satisfies(toolVersion, m.Requires)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s does not satisfy %q", ErrVersionConstraint, toolVersion, m.Requires)
	}
	return nil
}

// Specs converts every entry into an entity spec, in file order.
func (m *Manifest) Specs() ([]entity.Spec, error) {
	seen := make(map[string]bool, len(m.Entities))
	specs := make([]entity.Spec, 0, len(m.Entities))
	for i, e := range m.Entities {
		set, err := e.Operations.Set()
		if err != nil {
			return nil, fmt.Errorf("%w: entities[%d] (%s): %w", ErrInvalidManifest, i, e.Name, err)
		}
		spec, err := entity.NewWithSet(e.Name, set)
		if err != nil {
			return nil, fmt.Errorf("%w: entities[%d] (%s): %w", ErrInvalidManifest, i, e.Name, err)
		}
		if seen[spec.Name()] {
			return nil, fmt.Errorf("%w: entity %s is listed more than once", ErrInvalidManifest, spec.Name())
		}
		seen[spec.Name()] = true
		specs = append(specs, spec)
	}
	return specs, nil
}
