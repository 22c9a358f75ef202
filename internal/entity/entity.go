// Package entity holds the immutable input of one generation run: the
// entity name and the selected operations.
package entity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/audree-labs/layergen/internal/catalog"
)

// ErrInvalidSpec is returned when an entity spec cannot be generated.
var ErrInvalidSpec = errors.New("invalid entity spec")

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// keywords are the C# reserved words, plus await, which cannot name a
// parameter of an async method.
var keywords = map[string]bool{
	"abstract": true, "as": true, "await": true, "base": true, "bool": true,
	"break": true, "byte": true, "case": true, "catch": true, "char": true,
	"checked": true, "class": true, "const": true, "continue": true, "decimal": true,
	"default": true, "delegate": true, "do": true, "double": true, "else": true,
	"enum": true, "event": true, "explicit": true, "extern": true, "false": true,
	"finally": true, "fixed": true, "float": true, "for": true, "foreach": true,
	"goto": true, "if": true, "implicit": true, "in": true, "int": true,
	"interface": true, "internal": true, "is": true, "lock": true, "long": true,
	"namespace": true, "new": true, "null": true, "object": true, "operator": true,
	"out": true, "override": true, "params": true, "private": true, "protected": true,
	"public": true, "readonly": true, "ref": true, "return": true, "sbyte": true,
	"sealed": true, "short": true, "sizeof": true, "stackalloc": true, "static": true,
	"string": true, "struct": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "uint": true, "ulong": true,
	"unchecked": true, "unsafe": true, "ushort": true, "using": true, "virtual": true,
	"void": true, "volatile": true, "while": true,
}

// Spec is an entity name plus the selected operations. Build it with New;
// the zero value is not valid.
type Spec struct {
	name    string
	varName string
	ops     catalog.Set
}

// New validates name and builds a Spec. The name is used verbatim for type
// names, so it must be a plain identifier.
func New(name string, ops ...catalog.Operation) (Spec, error) {
	return NewWithSet(name, catalog.NewSet(ops...))
}

// NewWithSet is New for an already built selection.
func NewWithSet(name string, ops catalog.Set) (Spec, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Spec{}, fmt.Errorf("%w: entity name cannot be empty", ErrInvalidSpec)
	}
	if !identPattern.MatchString(name) {
		return Spec{}, fmt.Errorf("%w: entity name %q must match %s", ErrInvalidSpec, name, identPattern.String())
	}
	if keywords[name] {
		return Spec{}, fmt.Errorf("%w: entity name %q is a C# keyword", ErrInvalidSpec, name)
	}
	return Spec{
		name:    name,
		varName: strings.ToLower(name),
		ops:     ops,
	}, nil
}

// Name is the entity name used for type names, e.g. "Product".
func (s Spec) Name() string { return s.name }

// VarName is the lower-cased name used inside composed identifiers such as
// "_productBusiness", e.g. "product".
func (s Spec) VarName() string { return s.varName }

// ParamName is VarName as a standalone parameter name. Keywords get the
// verbatim prefix, so "Event" yields "@event".
func (s Spec) ParamName() string {
	if keywords[s.varName] {
		return "@" + s.varName
	}
	return s.varName
}

// Operations returns the selection.
func (s Spec) Operations() catalog.Set { return s.ops }

// Has reports whether op was selected.
func (s Spec) Has(op catalog.Operation) bool { return s.ops.Has(op) }

// Validate reports ErrInvalidSpec for a zero-value Spec.
func (s Spec) Validate() error {
	if s.name == "" {
		return fmt.Errorf("%w: entity name cannot be empty", ErrInvalidSpec)
	}
	return nil
}

// Derived type names shared by every artifact and by the registration patch.

// BusinessContract returns "I<Name>Business".
func (s Spec) BusinessContract() string { return "I" + s.name + "Business" }

// BusinessImpl returns "<Name>Business".
func (s Spec) BusinessImpl() string { return s.name + "Business" }

// RepositoryContract returns "I<Name>Repository".
func (s Spec) RepositoryContract() string { return "I" + s.name + "Repository" }

// RepositoryImpl returns "<Name>Repository".
func (s Spec) RepositoryImpl() string { return s.name + "Repository" }

// Controller returns "<Name>Controller".
func (s Spec) Controller() string { return s.name + "Controller" }

func (s Spec) String() string {
	return fmt.Sprintf("%s[%s]", s.name, s.ops)
}
