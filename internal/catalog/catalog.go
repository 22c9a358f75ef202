// Package catalog defines the fixed set of operations a generated layer can
// expose. The catalog order is the only order in which operations appear in
// generated code; selecting a subset never reorders it.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOperation is returned when an operation name is not in the catalog.
var ErrUnknownOperation = errors.New("unknown operation")

// Operation identifies one catalog entry. Its value is the catalog position.
type Operation int

const (
	GetAll Operation = iota
	GetByID
	Create
	Update
	Enable
	Disable
)

// Shape groups operations by how the generated controller validates input.
type Shape int

const (
	// ShapeQuery reads data; an id parameter, when present, must be positive.
	ShapeQuery Shape = iota
	// ShapeMutation takes an entity body that must be present.
	ShapeMutation
	// ShapeToggle flips the enabled flag of the entity with the given id.
	ShapeToggle
)

// Param is the kind of argument an operation takes.
type Param int

const (
	ParamNone Param = iota
	ParamID
	ParamBody
)

// Returns is the async return shape of an operation.
type Returns int

const (
	ReturnsCollection Returns = iota // Task<IEnumerable<E>>
	ReturnsOptional                  // Task<E?>
	ReturnsEntity                    // Task<E>
	ReturnsBool                      // Task<bool>
)

// Entry is the per-layer method shape of one operation.
type Entry struct {
	Op             Operation
	Name           string // "GetById", used verbatim in identifiers
	Verb           string // controller HTTP verb: Get, Post, Put
	Route          string // route segment, empty for the controller root
	Param          Param
	Returns        Returns
	Shape          Shape
	SuccessMessage string // ApplicationMessages member set after success, may be empty
}

// MethodName returns the business/repository method name, e.g. "GetByIdAsync".
func (e Entry) MethodName() string {
	return e.Name + "Async"
}

// HTTPAttribute returns the controller attribute, e.g. `[HttpGet("GetById")]`.
func (e Entry) HTTPAttribute() string {
	if e.Route == "" {
		return "[Http" + e.Verb + "]"
	}
	return fmt.Sprintf("[Http%s(%q)]", e.Verb, e.Route)
}

var entries = [...]Entry{
	{Op: GetAll, Name: "GetAll", Verb: "Get", Param: ParamNone, Returns: ReturnsCollection, Shape: ShapeQuery},
	{Op: GetByID, Name: "GetById", Verb: "Get", Route: "GetById", Param: ParamID, Returns: ReturnsOptional, Shape: ShapeQuery},
	{Op: Create, Name: "Create", Verb: "Post", Param: ParamBody, Returns: ReturnsEntity, Shape: ShapeMutation, SuccessMessage: "CreatedSuccessfully"},
	{Op: Update, Name: "Update", Verb: "Put", Route: "Update", Param: ParamBody, Returns: ReturnsOptional, Shape: ShapeMutation, SuccessMessage: "UpdatedSuccessfully"},
	{Op: Enable, Name: "Enable", Verb: "Put", Route: "Enable", Param: ParamID, Returns: ReturnsBool, Shape: ShapeToggle, SuccessMessage: "EnabledSuccessfully"},
	{Op: Disable, Name: "Disable", Verb: "Put", Route: "Disable", Param: ParamID, Returns: ReturnsBool, Shape: ShapeToggle, SuccessMessage: "DisabledSuccessfully"},
}

// All returns every operation in catalog order.
func All() []Operation {
	ops := make([]Operation, len(entries))
	for i, e := range entries {
		ops[i] = e.Op
	}
	return ops
}

// Entries returns a copy of the catalog in order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries[:])
	return out
}

// Valid reports whether op is a catalog operation.
func (op Operation) Valid() bool {
	return op >= 0 && int(op) < len(entries)
}

// Entry returns the catalog entry for op. It panics for an invalid operation.
func (op Operation) Entry() Entry {
	if !op.Valid() {
		panic(fmt.Sprintf("catalog: invalid operation %d", int(op)))
	}
	return entries[op]
}

// String returns the stable operation name.
func (op Operation) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Operation(%d)", int(op))
	}
	return entries[op].Name
}

// Parse resolves an operation name, ignoring case and surrounding space.
func Parse(name string) (Operation, error) {
	trimmed := strings.TrimSpace(name)
	for _, e := range entries {
		if strings.EqualFold(e.Name, trimmed) {
			return e.Op, nil
		}
	}
	return 0, fmt.Errorf("%w %q (valid: %s)", ErrUnknownOperation, trimmed, strings.Join(Names(), ", "))
}

// ParseList parses a comma-separated list such as "GetAll, create".
// Empty items are skipped.
func ParseList(list string) ([]Operation, error) {
	var ops []Operation
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		op, err := Parse(part)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Names returns the operation names in catalog order.
func Names() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Set is a selection of operations. The zero value is an empty selection.
type Set uint8

// NewSet builds a selection from ops. Invalid operations are ignored.
func NewSet(ops ...Operation) Set {
	var s Set
	for _, op := range ops {
		if op.Valid() {
			s |= 1 << uint(op)
		}
	}
	return s
}

// FullSet selects every operation.
func FullSet() Set {
	return NewSet(All()...)
}

// Has reports whether op is selected.
func (s Set) Has(op Operation) bool {
	return op.Valid() && s&(1<<uint(op)) != 0
}

// Len returns the number of selected operations.
func (s Set) Len() int {
	n := 0
	for _, op := range All() {
		if s.Has(op) {
			n++
		}
	}
	return n
}

// Entries returns the selected catalog entries in catalog order.
func (s Set) Entries() []Entry {
	var out []Entry
	for _, e := range entries {
		if s.Has(e.Op) {
			out = append(out, e)
		}
	}
	return out
}

// Operations returns the selected operations in catalog order.
func (s Set) Operations() []Operation {
	var out []Operation
	for _, e := range entries {
		if s.Has(e.Op) {
			out = append(out, e.Op)
		}
	}
	return out
}

// String renders the selection as a comma-separated list in catalog order.
func (s Set) String() string {
	ops := s.Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.String()
	}
	return strings.Join(names, ",")
}
