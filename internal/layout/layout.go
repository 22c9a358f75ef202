package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/audree-labs/layergen/internal/branding"
)

const projectFile = "project.yaml"

// Layout names the projects of the target solution and the registration file.
// Project names double as root namespaces, as in the target project family.
type Layout struct {
	Extension         string       `yaml:"extension"`
	APIProject        string       `yaml:"api_project"`
	BusinessProject   string       `yaml:"business_project"`
	RepositoryProject string       `yaml:"repository_project"`
	ModelProject      string       `yaml:"model_project"`
	CommonNamespace   string       `yaml:"common_namespace"`
	DBConnection      string       `yaml:"db_connection"`
	Registration      Registration `yaml:"registration"`
}

// Registration describes the dependency-registration file and its anchors.
type Registration struct {
	File             string `yaml:"file"`
	RepositoryAnchor string `yaml:"repository_anchor"`
	BusinessAnchor   string `yaml:"business_anchor"`
	Lifetime         string `yaml:"lifetime"`
}

// Lifetimes accepted for the registration binding, i.e. services.Add<Lifetime>.
var Lifetimes = []string{"Transient", "Scoped", "Singleton"}

// Default returns the layout of the Audree DMS solution.
func Default() Layout {
	return Layout{
		Extension:         "cs",
		APIProject:        "Audree.DMS.API",
		BusinessProject:   "Audree.DMS.API.Business",
		RepositoryProject: "Audree.DMS.API.Repository",
		ModelProject:      "Audree.DMS.API.Model",
		CommonNamespace:   "Audree.DMS.Common",
		DBConnection:      "IDMSDbConnection",
		Registration: Registration{
			File:             filepath.Join("Audree.DMS.API", "DependencyConfigurations", "DependencyConfigurator.cs"),
			RepositoryAnchor: "InjectRepositoryDependencies",
			BusinessAnchor:   "InjectBusinessDependencies",
			Lifetime:         "Transient",
		},
	}
}

// Validate checks that every name the templates interpolate is set.
func (l Layout) Validate() error {
	var errs []error
	required := []struct {
		key, value string
	}{
		{"extension", l.Extension},
		{"api_project", l.APIProject},
		{"business_project", l.BusinessProject},
		{"repository_project", l.RepositoryProject},
		{"model_project", l.ModelProject},
		{"common_namespace", l.CommonNamespace},
		{"db_connection", l.DBConnection},
		{"registration.file", l.Registration.File},
		{"registration.repository_anchor", l.Registration.RepositoryAnchor},
		{"registration.business_anchor", l.Registration.BusinessAnchor},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", r.key))
		}
	}

	validLifetime := false
	for _, lt := range Lifetimes {
		if l.Registration.Lifetime == lt {
			validLifetime = true
			break
		}
	}
	if !validLifetime {
		errs = append(errs, fmt.Errorf("registration.lifetime %q must be one of %v", l.Registration.Lifetime, Lifetimes))
	}

	return errors.Join(errs...)
}

// Output paths, relative to the project root.

// ControllerPath returns <Api>/Controllers/<E>Controller.<ext>.
func (l Layout) ControllerPath(name string) string {
	return filepath.Join(l.APIProject, "Controllers", name+"Controller."+l.Extension)
}

// BusinessContractPath returns <Business>/Contracts/I<E>Business.<ext>.
func (l Layout) BusinessContractPath(name string) string {
	return filepath.Join(l.BusinessProject, "Contracts", "I"+name+"Business."+l.Extension)
}

// BusinessImplPath returns <Business>/Implementations/<E>Business.<ext>.
func (l Layout) BusinessImplPath(name string) string {
	return filepath.Join(l.BusinessProject, "Implementations", name+"Business."+l.Extension)
}

// RepositoryContractPath returns <Repository>/Contracts/I<E>Repository.<ext>.
func (l Layout) RepositoryContractPath(name string) string {
	return filepath.Join(l.RepositoryProject, "Contracts", "I"+name+"Repository."+l.Extension)
}

// RepositoryImplPath returns <Repository>/Implementations/<E>Repository.<ext>.
func (l Layout) RepositoryImplPath(name string) string {
	return filepath.Join(l.RepositoryProject, "Implementations", name+"Repository."+l.Extension)
}

// ModelPath returns <Model>/<E>.<ext>.
func (l Layout) ModelPath(name string) string {
	return filepath.Join(l.ModelProject, name+"."+l.Extension)
}

// Directories returns the output directories the generator writes into.
func (l Layout) Directories() []string {
	return []string{
		filepath.Join(l.APIProject, "Controllers"),
		filepath.Join(l.BusinessProject, "Contracts"),
		filepath.Join(l.BusinessProject, "Implementations"),
		filepath.Join(l.RepositoryProject, "Contracts"),
		filepath.Join(l.RepositoryProject, "Implementations"),
		l.ModelProject,
	}
}

// ProjectConfigPath returns the full path to .layergen/project.yaml for a project.
func ProjectConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, branding.ProjectDir(), projectFile)
}

// Load reads .layergen/project.yaml and overlays it on Default. A project
// without the file uses the default layout.
func Load(fsys afero.Fs, projectRoot string) (Layout, error) {
	l := Default()

	data, err := afero.ReadFile(fsys, ProjectConfigPath(projectRoot))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l, nil
		}
		return Layout{}, fmt.Errorf("reading project config: %w", err)
	}

	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parsing project config: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, fmt.Errorf("invalid project config %s: %w", ProjectConfigPath(projectRoot), err)
	}

	return l, nil
}

// Save writes the layout to .layergen/project.yaml.
func Save(fsys afero.Fs, projectRoot string, l Layout) error {
	path := ProjectConfigPath(projectRoot)

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s directory: %w", branding.ProjectDir(), err)
	}

	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshaling project config: %w", err)
	}

	if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
		return fmt.Errorf("writing project config: %w", err)
	}

	return nil
}

// Init writes the default layout unless the project already has one.
// It reports whether a file was written.
func Init(fsys afero.Fs, projectRoot string, force bool) (bool, error) {
	exists, err := afero.Exists(fsys, ProjectConfigPath(projectRoot))
	if err != nil {
		return false, fmt.Errorf("checking project config: %w", err)
	}
	if exists && !force {
		return false, nil
	}
	if err := Save(fsys, projectRoot, Default()); err != nil {
		return false, err
	}
	return true, nil
}
