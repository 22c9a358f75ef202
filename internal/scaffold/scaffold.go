package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/audree-labs/layergen/internal/entity"
	"github.com/audree-labs/layergen/internal/layout"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("scaffold").ParseFS(templateFS, "templates/*.tmpl"))

// Kind identifies one generated artifact.
type Kind int

const (
	Controller Kind = iota
	BusinessContract
	BusinessImpl
	RepositoryContract
	RepositoryImpl
	Model
)

var kindNames = [...]string{
	Controller:         "Controller",
	BusinessContract:   "BusinessContract",
	BusinessImpl:       "BusinessImpl",
	RepositoryContract: "RepositoryContract",
	RepositoryImpl:     "RepositoryImpl",
	Model:              "Model",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns every artifact kind in generation order.
func Kinds() []Kind {
	return []Kind{Controller, BusinessContract, BusinessImpl, RepositoryContract, RepositoryImpl, Model}
}

// Artifact is one generated file. RelativePath is relative to the project root.
type Artifact struct {
	Kind         Kind
	RelativePath string
	Content      string
}

// artifactData holds the template variables available to every artifact template.
type artifactData struct {
	Entity    string
	Var       string
	Layout    layout.Layout
	Methods   []method
	Namespace string // contracts only
	TypeName  string // contracts only
}

// Composer renders the six artifacts of an entity for one project layout.
type Composer struct {
	layout layout.Layout
}

// NewComposer creates a Composer for l.
func NewComposer(l layout.Layout) *Composer {
	return &Composer{layout: l}
}

// Compose renders every artifact kind for spec, in Kinds order. It has no
// side effects. An empty selection still yields six artifacts.
func (c *Composer) Compose(spec entity.Spec) ([]Artifact, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	base := artifactData{
		Entity:  spec.Name(),
		Var:     spec.VarName(),
		Layout:  c.layout,
		Methods: describe(spec),
	}

	artifacts := make([]Artifact, 0, len(kindNames))
	for _, kind := range Kinds() {
		tmplName, path, data := c.plan(kind, spec, base)

		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, tmplName, data); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", kind, err)
		}

		artifacts = append(artifacts, Artifact{
			Kind:         kind,
			RelativePath: path,
			Content:      buf.String(),
		})
	}

	return artifacts, nil
}

// plan maps a kind to its template, output path and template data.
func (c *Composer) plan(kind Kind, spec entity.Spec, base artifactData) (string, string, artifactData) {
	l := c.layout
	name := spec.Name()

	switch kind {
	case Controller:
		return "controller.cs.tmpl", l.ControllerPath(name), base
	case BusinessContract:
		data := base
		data.Namespace = l.BusinessProject + ".Contracts"
		data.TypeName = spec.BusinessContract()
		return "contract.cs.tmpl", l.BusinessContractPath(name), data
	case BusinessImpl:
		return "business.cs.tmpl", l.BusinessImplPath(name), base
	case RepositoryContract:
		data := base
		data.Namespace = l.RepositoryProject + ".Contracts"
		data.TypeName = spec.RepositoryContract()
		return "contract.cs.tmpl", l.RepositoryContractPath(name), data
	case RepositoryImpl:
		return "repository.cs.tmpl", l.RepositoryImplPath(name), base
	default:
		data := base
		data.Methods = nil
		return "model.cs.tmpl", l.ModelPath(name), data
	}
}
