package scaffold

import (
	"fmt"

	"github.com/audree-labs/layergen/internal/catalog"
	"github.com/audree-labs/layergen/internal/entity"
)

// method is one operation rendered for one entity. Every artifact renders
// from the same slice, so names and signatures cannot drift between layers.
type method struct {
	Name           string // GetById
	MethodName     string // GetByIdAsync
	Attribute      string // [HttpGet("GetById")]
	ReturnType     string // Task<Product?>
	Params         string // int id
	Args           string // id
	HandlerParams  string // [FromBody] Product product
	Guard          string // id <= 0
	SuccessMessage string // CreatedSuccessfully
}

// describe derives the method list for spec in catalog order.
func describe(spec entity.Spec) []method {
	entries := spec.Operations().Entries()
	methods := make([]method, 0, len(entries))
	for _, e := range entries {
		methods = append(methods, describeEntry(e, spec.Name(), paramName(spec)))
	}
	return methods
}

// handlerLocals are the locals declared by every controller handler.
var handlerLocals = map[string]bool{"response": true, "result": true, "ex": true}

// paramName is the entity parameter name, kept clear of handler locals.
func paramName(spec entity.Spec) string {
	p := spec.ParamName()
	if handlerLocals[p] {
		return p + "Model"
	}
	return p
}

func describeEntry(e catalog.Entry, name, param string) method {
	m := method{
		Name:           e.Name,
		MethodName:     e.MethodName(),
		Attribute:      e.HTTPAttribute(),
		ReturnType:     returnType(e.Returns, name),
		SuccessMessage: e.SuccessMessage,
	}

	switch e.Param {
	case catalog.ParamID:
		m.Params = "int id"
		m.Args = "id"
		m.HandlerParams = "int id"
		m.Guard = "id <= 0"
	case catalog.ParamBody:
		m.Params = name + " " + param
		m.Args = param
		m.HandlerParams = "[FromBody] " + name + " " + param
		m.Guard = param + " == null"
	}

	return m
}

func returnType(r catalog.Returns, name string) string {
	switch r {
	case catalog.ReturnsCollection:
		return fmt.Sprintf("Task<IEnumerable<%s>>", name)
	case catalog.ReturnsOptional:
		return fmt.Sprintf("Task<%s?>", name)
	case catalog.ReturnsEntity:
		return fmt.Sprintf("Task<%s>", name)
	default:
		return "Task<bool>"
	}
}

// Signatures returns the contract method declarations for spec, in catalog
// order, as they appear in both contract interfaces.
func Signatures(spec entity.Spec) []string {
	methods := describe(spec)
	out := make([]string, len(methods))
	for i, m := range methods {
		out[i] = fmt.Sprintf("%s %s(%s);", m.ReturnType, m.MethodName, m.Params)
	}
	return out
}
