package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/spec.schema.json
var schemaBytes []byte

var (
	batchSchema     *jsonschema.Schema
	batchSchemaErr  error
	batchSchemaOnce sync.Once
	printer         = message.NewPrinter(language.English)
)

// Issue is one schema violation in a batch spec.
type Issue struct {
	Location string // e.g. "entities[0] (Product).operations[1]"
	Entity   string // name of the enclosing entity entry, if it has one
	Line     int    // 1-based line in the file, 0 when unknown
	Keyword  string
	Message  string
}

func (i Issue) String() string {
	var b strings.Builder
	if i.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", i.Line)
	}
	if i.Location != "" {
		b.WriteString(i.Location)
		b.WriteString(": ")
	}
	b.WriteString(i.Message)
	return b.String()
}

func loadSchema() (*jsonschema.Schema, error) {
	batchSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			batchSchemaErr = fmt.Errorf("decoding batch spec schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("spec.schema.json", doc); err != nil {
			batchSchemaErr = fmt.Errorf("adding batch spec schema: %w", err)
			return
		}
		if batchSchema, err = c.Compile("spec.schema.json"); err != nil {
			batchSchemaErr = fmt.Errorf("compiling batch spec schema: %w", err)
		}
	})
	return batchSchema, batchSchemaErr
}

// Validate checks a YAML batch spec against the embedded schema. It returns
// no issues for a valid document; the error is for malformed YAML only.
func Validate(data []byte) ([]Issue, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	root := documentRoot(&doc)

	value, err := nodeValue(root)
	if err != nil {
		return nil, err
	}
	// The validator wants json.Number, so round-trip through JSON.
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("converting batch spec to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("converting batch spec to JSON: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("validating batch spec: %w", err)
	}

	var leaves []*jsonschema.ValidationError
	collectLeaves(ve, &leaves)
	if len(leaves) == 0 {
		return []Issue{{Line: lineOf(root), Message: ve.Error()}}, nil
	}

	var issues []Issue
	seen := make(map[string]bool)
	for _, leaf := range leaves {
		issue := Issue{
			Location: describeLocation(leaf.InstanceLocation, value),
			Entity:   entityName(leaf.InstanceLocation, value),
			Line:     lineOf(nodeAt(root, leaf.InstanceLocation)),
			Keyword:  keyword(leaf),
			Message:  leaf.ErrorKind.LocalizedString(printer),
		}
		key := issue.Location + "|" + issue.Keyword + "|" + issue.Message
		if seen[key] {
			continue
		}
		seen[key] = true
		issues = append(issues, issue)
	}
	return issues, nil
}

func keyword(ve *jsonschema.ValidationError) string {
	if ve.ErrorKind == nil {
		return ""
	}
	path := ve.ErrorKind.KeywordPath()
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}

// collectLeaves gathers the failing keywords under ve. For "operations"
// (a oneOf of the "all" keyword and a list) only the branch matching the
// value's type is kept, so a bad list reports its bad item rather than
// "want string".
func collectLeaves(ve *jsonschema.ValidationError, out *[]*jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		switch keyword(ve) {
		case "", "oneOf", "allOf", "$ref":
			return
		}
		*out = append(*out, ve)
		return
	}

	causes := ve.Causes
	if keyword(ve) == "oneOf" {
		var matching []*jsonschema.ValidationError
		for _, branch := range causes {
			if !typeMismatchAt(branch, ve.InstanceLocation) {
				matching = append(matching, branch)
			}
		}
		if len(matching) > 0 {
			causes = matching
		}
	}
	for _, cause := range causes {
		collectLeaves(cause, out)
	}
}

// typeMismatchAt reports whether ve rejects the value at loc by type.
func typeMismatchAt(ve *jsonschema.ValidationError, loc []string) bool {
	if len(ve.Causes) == 0 {
		return keyword(ve) == "type" && slices.Equal(ve.InstanceLocation, loc)
	}
	for _, cause := range ve.Causes {
		if typeMismatchAt(cause, loc) {
			return true
		}
	}
	return false
}

// describeLocation renders a JSON pointer such as /entities/0/operations/1
// as entities[0] (Product).operations[1].
func describeLocation(loc []string, value any) string {
	var b strings.Builder
	for i, tok := range loc {
		if _, err := strconv.Atoi(tok); err == nil {
			fmt.Fprintf(&b, "[%s]", tok)
			if i == 1 && loc[0] == "entities" {
				if name := entityName(loc, value); name != "" {
					fmt.Fprintf(&b, " (%s)", name)
				}
			}
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(tok)
	}
	return b.String()
}

// entityName returns the name of the entity entry loc points into.
func entityName(loc []string, value any) string {
	if len(loc) < 2 || loc[0] != "entities" {
		return ""
	}
	idx, err := strconv.Atoi(loc[1])
	if err != nil {
		return ""
	}
	top, _ := value.(map[string]any)
	entries, _ := top["entities"].([]any)
	if idx < 0 || idx >= len(entries) {
		return ""
	}
	entry, _ := entries[idx].(map[string]any)
	name, _ := entry["name"].(string)
	return name
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return nil
}

// nodeValue converts a YAML node into plain values that encoding/json can
// marshal. Mapping keys are always rendered as strings.
func nodeValue(n *yaml.Node) (any, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		a := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			a[i] = v
		}
		return a, nil
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
}

// nodeAt follows a JSON pointer through the YAML tree and returns the
// deepest node it reaches.
func nodeAt(n *yaml.Node, loc []string) *yaml.Node {
	for _, tok := range loc {
		if n == nil {
			return nil
		}
		if n.Kind == yaml.AliasNode {
			n = n.Alias
		}
		var next *yaml.Node
		switch n.Kind {
		case yaml.MappingNode:
			for i := 0; i+1 < len(n.Content); i += 2 {
				if n.Content[i].Value == tok {
					next = n.Content[i+1]
					break
				}
			}
		case yaml.SequenceNode:
			if idx, err := strconv.Atoi(tok); err == nil && idx >= 0 && idx < len(n.Content) {
				next = n.Content[idx]
			}
		}
		if next == nil {
			return n
		}
		n = next
	}
	return n
}

func lineOf(n *yaml.Node) int {
	if n == nil {
		return 0
	}
	return n.Line
}
