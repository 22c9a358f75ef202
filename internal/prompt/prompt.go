// Package prompt collects an entity definition interactively over any
// reader/writer pair.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/audree-labs/layergen/internal/catalog"
	"github.com/audree-labs/layergen/internal/entity"
)

// ErrEmptyName is returned when no entity name was entered.
var ErrEmptyName = errors.New("entity name cannot be empty")

// Answers holds what the user entered. Root is empty when the user chose
// the current directory.
type Answers struct {
	Spec entity.Spec
	Root string
}

// Prompter asks questions on w and reads answers from r, one line each.
// End of input answers every remaining question with an empty line.
type Prompter struct {
	reader *bufio.Reader
	w      io.Writer
}

// New creates a Prompter.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(r), w: w}
}

// Collect asks for the entity name, the solution path and one yes/no
// question per catalog operation, in catalog order.
func (p *Prompter) Collect() (*Answers, error) {
	return p.collect(nil)
}

// CollectWithOperations asks only for the entity name and the solution
// path; ops is used as the selection.
func (p *Prompter) CollectWithOperations(ops catalog.Set) (*Answers, error) {
	return p.collect(&ops)
}

func (p *Prompter) collect(preset *catalog.Set) (*Answers, error) {
	name, err := p.Ask("Enter entity name: ")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrEmptyName
	}

	root, err := p.Ask("Enter solution path (or press Enter for current directory): ")
	if err != nil {
		return nil, err
	}

	var set catalog.Set
	if preset != nil {
		set = *preset
	} else if set, err = p.selectOperations(); err != nil {
		return nil, err
	}

	spec, err := entity.NewWithSet(name, set)
	if err != nil {
		return nil, err
	}
	return &Answers{Spec: spec, Root: root}, nil
}

func (p *Prompter) selectOperations() (catalog.Set, error) {
	fmt.Fprintln(p.w, "\nSelect methods to include (y/n):")
	var set catalog.Set
	for _, op := range catalog.All() {
		yes, err := p.Confirm(fmt.Sprintf("Do you want to add %q method? (y/n): ", op.String()))
		if err != nil {
			return 0, err
		}
		if yes {
			set |= catalog.NewSet(op)
		}
	}
	return set, nil
}

// Ask prints question and returns the trimmed answer.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprint(p.w, question)
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm prints question and reports whether the answer was y or yes,
// ignoring case. Any other answer is no.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.Ask(question)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
